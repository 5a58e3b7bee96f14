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

package dma

import (
	"fmt"
)

// Variant of the DMA controller.
type Variant int

// List of valid Variant values.
const (
	GBA Variant = iota
	NDS7
	NDS9
)

// Timing is the start condition of a channel.
type Timing int

// List of valid Timing values. Not every timing is available for every
// variant.
const (
	Immediate Timing = iota
	VBlank
	HBlank
	Special
	DisplayStart
	MainMemoryDisplay
	Card
	GBACart
	GeometryFIFO
	Wireless
)

func (t Timing) String() string {
	switch t {
	case Immediate:
		return "immediate"
	case VBlank:
		return "vblank"
	case HBlank:
		return "hblank"
	case Special:
		return "special"
	case DisplayStart:
		return "display start"
	case MainMemoryDisplay:
		return "main memory display"
	case Card:
		return "card"
	case GBACart:
		return "gba cart"
	case GeometryFIFO:
		return "geometry fifo"
	case Wireless:
		return "wireless"
	}
	return "unknown timing"
}

// address stepping modes
const (
	stepIncrement = iota
	stepDecrement
	stepFixed
	stepReload
)

// bits in the CNT register. the count is in the low bits and the control in
// the high halfword
const (
	cntRepeat = 1 << 25
	cntWord   = 1 << 26
	cntIRQ    = 1 << 30
	cntEnable = 1 << 31
)

// Channel is a single DMA channel.
type Channel struct {
	index   int
	variant Variant

	// the register values
	sad uint32
	dad uint32
	cnt uint32

	srcMask   uint32
	dstMask   uint32
	countMask uint32

	// the internal registers. latched on the enable edge
	src       uint32
	dst       uint32
	remaining uint32

	// waiting to be run by the next DMA event
	pending bool

	// the most recent value transferred. reads that the DMA unit can't make
	// return this value
	latch uint32
}

func (ch *Channel) String() string {
	return fmt.Sprintf("dma%d: %08x -> %08x (%d) %s", ch.index, ch.src, ch.dst, ch.remaining, ch.Timing())
}

// Enabled returns true if the enable bit is set.
func (ch *Channel) Enabled() bool {
	return ch.cnt&cntEnable == cntEnable
}

// Pending returns true if the channel will run at the next DMA event.
func (ch *Channel) Pending() bool {
	return ch.pending
}

// Source returns the internal source address.
func (ch *Channel) Source() uint32 {
	return ch.src
}

// Destination returns the internal destination address.
func (ch *Channel) Destination() uint32 {
	return ch.dst
}

// Remaining returns the number of units left in the current transfer.
func (ch *Channel) Remaining() uint32 {
	return ch.remaining
}

func (ch *Channel) srcStep() int {
	return int(ch.cnt>>23) & 0x03
}

func (ch *Channel) dstStep() int {
	return int(ch.cnt>>21) & 0x03
}

// Timing decodes the start timing bits for the channel's variant.
func (ch *Channel) Timing() Timing {
	switch ch.variant {
	case NDS9:
		return [8]Timing{Immediate, VBlank, HBlank, DisplayStart, MainMemoryDisplay, Card, GBACart, GeometryFIFO}[(ch.cnt>>27)&0x07]
	case NDS7:
		switch (ch.cnt >> 28) & 0x03 {
		case 0:
			return Immediate
		case 1:
			return VBlank
		case 2:
			return Card
		}
		if ch.index&1 == 0 {
			return Wireless
		}
		return GBACart
	}
	return [4]Timing{Immediate, VBlank, HBlank, Special}[(ch.cnt>>28)&0x03]
}

// count returns the count register with zero meaning the maximum.
func (ch *Channel) count() uint32 {
	c := ch.cnt & ch.countMask
	if c == 0 {
		return ch.countMask + 1
	}
	return c
}

// unit size in bytes
func (ch *Channel) unit() uint32 {
	if ch.cnt&cntWord == cntWord {
		return 4
	}
	return 2
}

// fifo mode is the special timing of GBA channels 1 and 2
func (ch *Channel) fifo() bool {
	return ch.variant == GBA && (ch.index == 1 || ch.index == 2) && ch.Timing() == Special
}

// latchAddresses is called on the enable edge
func (ch *Channel) latchAddresses() {
	u := ch.unit()
	if ch.fifo() {
		u = 4
	}
	ch.src = (ch.sad & ch.srcMask) &^ (u - 1)
	ch.dst = (ch.dad & ch.dstMask) &^ (u - 1)
	ch.remaining = ch.count()
}
