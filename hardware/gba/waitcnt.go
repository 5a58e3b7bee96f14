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
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// address of the WAITCNT register
const regWaitcnt = 0x04000204

// the number of cycles for a non-sequential access, indexed by a two bit
// field of WAITCNT. the value includes the access cycle
var nonSeqCycles = [4]int{5, 4, 3, 9}

// the number of cycles for a sequential access to each wait state, indexed
// by the single bit field of WAITCNT
var seqCycles = [3][2]int{
	{3, 2},
	{5, 2},
	{9, 2},
}

// Waitcnt is the wait state control register. The cartridge regions share
// their Timing values with the Waitcnt type so that a write to the register
// changes the access time of the regions immediately.
type Waitcnt struct {
	value uint16

	// ROM wait states 0 to 2
	ws [3]*memory.Timing

	sram *memory.Timing
}

func newWaitcnt() *Waitcnt {
	w := &Waitcnt{
		sram: &memory.Timing{},
	}
	for i := range w.ws {
		w.ws[i] = &memory.Timing{}
	}
	w.set(0)
	return w
}

// Value returns the current value of the register.
func (w *Waitcnt) Value() uint16 {
	return w.value
}

// WaitState returns the timing of cartridge wait state 0, 1 or 2.
func (w *Waitcnt) WaitState(i int) memory.Timing {
	return *w.ws[i]
}

// SRAM returns the timing of the cartridge backup region.
func (w *Waitcnt) SRAM() memory.Timing {
	return *w.sram
}

func (w *Waitcnt) set(v uint16) {
	// bit 15 is the read-only gamepak type flag
	w.value = v & 0x5fff

	n := nonSeqCycles[v&0x03]
	*w.sram = *memory.NewTiming(n)

	for i := range w.ws {
		shift := 2 + uint(i)*3
		n := nonSeqCycles[(v>>shift)&0x03]
		s := seqCycles[i][(v>>(shift+2))&0x01]
		*w.ws[i] = *memory.NewTiming16(n, s)
	}
}

// Read32 implements the memory.Registers interface.
func (w *Waitcnt) Read32(_ uint32) uint32 {
	return uint32(w.value)
}

// Write32 implements the memory.Registers interface.
func (w *Waitcnt) Write32(_ uint32, val uint32, mask uint32) {
	if mask&0xffff == 0 {
		return
	}
	w.set(uint16(memory.Merge(uint32(w.value), val, mask)))
}
