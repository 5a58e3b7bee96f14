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

package gba

import (
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/audio"
	"github.com/jetsetilly/gopheradvance/hardware/dma"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/hardware/timers"
)

// State stores every aspect of the system that changes during emulation. The
// cartridge ROM and the BIOS are not part of the state.
type State struct {
	CPU    *arm.ARMState
	Sched  *scheduler.State
	IRQ    *interrupts.State
	Timers *timers.State
	DMA    *dma.State
	LCD    *lcd.State
	Audio  *audio.State

	Keypad  keypad.State
	Waitcnt uint16

	EWRAM   []byte
	IWRAM   []byte
	Palette []byte
	VRAM    []byte
	OAM     []byte

	// nil if the cartridge has no backup memory
	Backup []byte
}

// Snapshot creates a copy of the current system state.
func (g *GBA) Snapshot() *State {
	s := &State{
		CPU:     g.CPU.Snapshot(),
		Sched:   g.Sched.Snapshot(),
		IRQ:     g.IRQ.Snapshot(),
		Timers:  g.Timers.Snapshot(),
		DMA:     g.DMA.Snapshot(),
		LCD:     g.LCD.Snapshot(),
		Audio:   g.Audio.Snapshot(),
		Keypad:  g.Keypad.Snapshot(),
		Waitcnt: g.Waitcnt.value,
		EWRAM:   append([]byte(nil), g.ewram...),
		IWRAM:   append([]byte(nil), g.iwram...),
		Palette: append([]byte(nil), g.palette...),
		VRAM:    append([]byte(nil), g.vram...),
		OAM:     append([]byte(nil), g.oam...),
	}

	if g.Cart.Backup != nil {
		s.Backup = g.Cart.Backup.Peek()
	}

	return s
}

// Plumb a previous snapshot into the system. The snapshot must have been made
// by a system with the same cartridge.
func (g *GBA) Plumb(s *State) error {
	g.Sched.Plumb(s.Sched)
	g.IRQ.Plumb(s.IRQ)
	g.Timers.Plumb(s.Timers)
	g.DMA.Plumb(s.DMA)
	g.LCD.Plumb(s.LCD)
	g.Audio.Plumb(s.Audio)

	g.Keypad.Plumb(s.Keypad)
	g.Waitcnt.set(s.Waitcnt)

	copy(g.ewram, s.EWRAM)
	copy(g.iwram, s.IWRAM)
	copy(g.palette, s.Palette)
	copy(g.vram, s.VRAM)
	copy(g.oam, s.OAM)

	if g.Cart.Backup != nil && s.Backup != nil {
		if err := g.Cart.Backup.Plumb(s.Backup); err != nil {
			return err
		}
	}

	g.CPU.Plumb(s.CPU, g.Mem, g.IRQ)

	return nil
}
