// This file is part of GopherAdvance.
//
// GopherAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAdvance.  If not, see <https://www.gnu.org/licenses/>.

package interrupts

import "fmt"

// Source of an interrupt. The value is the bit number in the IE and IF
// registers.
type Source int

// List of interrupt sources common to both layouts.
const (
	VBlank  Source = 0
	HBlank  Source = 1
	VCount  Source = 2
	Timer0  Source = 3
	Timer1  Source = 4
	Timer2  Source = 5
	Timer3  Source = 6
	Serial  Source = 7
	DMA0    Source = 8
	DMA1    Source = 9
	DMA2    Source = 10
	DMA3    Source = 11
	Keypad  Source = 12
	GamePak Source = 13
)

// List of interrupt sources only found on the dual-CPU system.
const (
	IPCSync         Source = 16
	IPCSendEmpty    Source = 17
	IPCRecvNotEmpty Source = 18
	CardTransfer    Source = 19
	CardIREQ        Source = 20
	GeometryFIFO    Source = 21
	Unfold          Source = 22
	SPI             Source = 23
	Wifi            Source = 24
)

// TimerSource returns the interrupt source for the numbered timer.
func TimerSource(timer int) Source {
	return Timer0 + Source(timer)
}

// DMASource returns the interrupt source for the numbered DMA channel.
func DMASource(channel int) Source {
	return DMA0 + Source(channel)
}

func (s Source) String() string {
	switch s {
	case VBlank:
		return "VBlank"
	case HBlank:
		return "HBlank"
	case VCount:
		return "VCount"
	case Timer0, Timer1, Timer2, Timer3:
		return fmt.Sprintf("Timer%d", s-Timer0)
	case Serial:
		return "Serial"
	case DMA0, DMA1, DMA2, DMA3:
		return fmt.Sprintf("DMA%d", s-DMA0)
	case Keypad:
		return "Keypad"
	case GamePak:
		return "GamePak"
	case IPCSync:
		return "IPC sync"
	case IPCSendEmpty:
		return "IPC send empty"
	case IPCRecvNotEmpty:
		return "IPC recv not empty"
	case CardTransfer:
		return "card transfer"
	case CardIREQ:
		return "card IREQ"
	case GeometryFIFO:
		return "geometry FIFO"
	case Unfold:
		return "unfold"
	case SPI:
		return "SPI"
	case Wifi:
		return "wifi"
	}
	return fmt.Sprintf("source %d", int(s))
}
