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

package nds

import (
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/dma"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/ipc"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/maths"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/hardware/timers"
)

// State stores every aspect of the system that changes during emulation. The
// card image and the BIOS images are not part of the state.
type State struct {
	ARM9       *arm.ARMState
	ARM7       *arm.ARMState
	Sched      *scheduler.State
	Interleave *scheduler.InterleaveState

	IRQ9    *interrupts.State
	IRQ7    *interrupts.State
	Timers9 *timers.State
	Timers7 *timers.State
	DMA9    *dma.State
	DMA7    *dma.State
	Keypad9 keypad.State
	Keypad7 keypad.State

	IPC   *ipc.State
	Maths *maths.State
	LCD   *lcd.State

	WRAMCnt     uint8
	VRAMCnt     [3]uint8
	VRAMCntABCD []uint32
	VRAMCntHI   []uint32
	PowCnt      []uint32
	RCnt        uint16

	MainRAM    []byte
	SharedWRAM []byte
	ARM7WRAM   []byte
	Palette    []byte
	VRAM       []byte
	OAM        []byte
	ARM7VRAM   []byte
	ITCM       []byte
	DTCM       []byte
}

// Snapshot creates a copy of the current system state.
func (n *NDS) Snapshot() *State {
	return &State{
		ARM9:        n.ARM9.Snapshot(),
		ARM7:        n.ARM7.Snapshot(),
		Sched:       n.Sched.Snapshot(),
		Interleave:  n.Interleave.Snapshot(),
		IRQ9:        n.IRQ9.Snapshot(),
		IRQ7:        n.IRQ7.Snapshot(),
		Timers9:     n.Timers9.Snapshot(),
		Timers7:     n.Timers7.Snapshot(),
		DMA9:        n.DMA9.Snapshot(),
		DMA7:        n.DMA7.Snapshot(),
		Keypad9:     n.Keypad9.Snapshot(),
		Keypad7:     n.Keypad7.Snapshot(),
		IPC:         n.IPC.Snapshot(),
		Maths:       n.Maths.Snapshot(),
		LCD:         n.LCD.Snapshot(),
		WRAMCnt:     n.WRAM.cnt,
		VRAMCnt:     n.WRAM.vramcnt,
		VRAMCntABCD: n.vramcnt[0].Words(),
		VRAMCntHI:   n.vramcnt[1].Words(),
		PowCnt:      n.powcnt.Words(),
		RCnt:        n.rcnt.rcnt,
		MainRAM:     append([]byte(nil), n.mainRAM...),
		SharedWRAM:  append([]byte(nil), n.WRAM.data[:]...),
		ARM7WRAM:    append([]byte(nil), n.arm7WRAM...),
		Palette:     append([]byte(nil), n.palette...),
		VRAM:        append([]byte(nil), n.lcdcVRAM...),
		OAM:         append([]byte(nil), n.oam...),
		ARM7VRAM:    append([]byte(nil), n.arm7VRAM...),
		ITCM:        append([]byte(nil), n.tcm.itcm...),
		DTCM:        append([]byte(nil), n.tcm.dtcm...),
	}
}

// Plumb a previous snapshot into the system. The snapshot must have been made
// by a system with the same card image.
func (n *NDS) Plumb(s *State) error {
	n.Sched.Plumb(s.Sched)
	n.Interleave.Plumb(s.Interleave)
	n.IRQ9.Plumb(s.IRQ9)
	n.IRQ7.Plumb(s.IRQ7)
	n.Timers9.Plumb(s.Timers9)
	n.Timers7.Plumb(s.Timers7)
	n.DMA9.Plumb(s.DMA9)
	n.DMA7.Plumb(s.DMA7)
	n.Keypad9.Plumb(s.Keypad9)
	n.Keypad7.Plumb(s.Keypad7)
	n.IPC.Plumb(s.IPC)
	n.Maths.Plumb(s.Maths)
	n.LCD.Plumb(s.LCD)

	n.WRAM.SetCnt(s.WRAMCnt)
	n.WRAM.vramcnt = s.VRAMCnt
	n.vramcnt[0].Restore(s.VRAMCntABCD)
	n.vramcnt[1].Restore(s.VRAMCntHI)
	n.powcnt.Restore(s.PowCnt)
	n.rcnt.rcnt = s.RCnt

	copy(n.mainRAM, s.MainRAM)
	copy(n.WRAM.data[:], s.SharedWRAM)
	copy(n.arm7WRAM, s.ARM7WRAM)
	copy(n.palette, s.Palette)
	copy(n.lcdcVRAM, s.VRAM)
	copy(n.oam, s.OAM)
	copy(n.arm7VRAM, s.ARM7VRAM)
	copy(n.tcm.itcm, s.ITCM)
	copy(n.tcm.dtcm, s.DTCM)

	// plumbing the ARM9 calls OnTCMChange() which updates the TCM bus
	n.ARM9.Plumb(s.ARM9, n.tcm, n.IRQ9)
	n.ARM7.Plumb(s.ARM7, n.Mem7, n.IRQ7)

	return nil
}
