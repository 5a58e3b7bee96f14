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
	"encoding/binary"

	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// sizes of the tightly coupled memories. the TCMs are mirrored over the size
// of the region set in CP15
const (
	itcmSize = 0x8000
	dtcmSize = 0x4000
)

// tcmBus is the memory of the ARM9 as seen by the CPU. accesses inside the
// TCM regions configured in CP15 are to the TCMs, all other accesses are to
// the main bus. the DMA channels use the main bus directly and can't see the
// TCMs
type tcmBus struct {
	bus *memory.Bus
	cpu *arm.ARM

	itcm []byte
	dtcm []byte

	// copies of the CP15 settings. updated with update()
	itcmRegion arm.TCMRegion
	dtcmRegion arm.TCMRegion
}

func newTCMBus(bus *memory.Bus) *tcmBus {
	return &tcmBus{
		bus:  bus,
		itcm: make([]byte, itcmSize),
		dtcm: make([]byte, dtcmSize),
	}
}

// update should be called whenever the CP15 TCM settings change
func (b *tcmBus) update() {
	if b.cpu == nil {
		return
	}
	b.itcmRegion = b.cpu.ITCM()
	b.dtcmRegion = b.cpu.DTCM()
}

// tcm returns the TCM data for the address. the ITCM takes priority over the
// DTCM. returns nil if the address is not in a TCM
func (b *tcmBus) tcm(addr uint32) []byte {
	if b.itcmRegion.Contains(addr) {
		return b.itcm[addr&(itcmSize-1):]
	}
	if b.dtcmRegion.Contains(addr) {
		return b.dtcm[(addr-b.dtcmRegion.Base)&(dtcmSize-1):]
	}
	return nil
}

// Read8 implements the arm.Bus interface.
func (b *tcmBus) Read8(addr uint32, seq bool) (uint8, int) {
	if t := b.tcm(addr); t != nil {
		return t[0], 1
	}
	return b.bus.Read8(addr, seq)
}

// Read16 implements the arm.Bus interface.
func (b *tcmBus) Read16(addr uint32, seq bool) (uint16, int) {
	if t := b.tcm(addr &^ 1); t != nil {
		return binary.LittleEndian.Uint16(t), 1
	}
	return b.bus.Read16(addr, seq)
}

// Read32 implements the arm.Bus interface.
func (b *tcmBus) Read32(addr uint32, seq bool) (uint32, int) {
	if t := b.tcm(addr &^ 3); t != nil {
		return binary.LittleEndian.Uint32(t), 1
	}
	return b.bus.Read32(addr, seq)
}

// Write8 implements the arm.Bus interface.
func (b *tcmBus) Write8(addr uint32, val uint8, seq bool) int {
	if t := b.tcm(addr); t != nil {
		t[0] = val
		return 1
	}
	return b.bus.Write8(addr, val, seq)
}

// Write16 implements the arm.Bus interface.
func (b *tcmBus) Write16(addr uint32, val uint16, seq bool) int {
	if t := b.tcm(addr &^ 1); t != nil {
		binary.LittleEndian.PutUint16(t, val)
		return 1
	}
	return b.bus.Write16(addr, val, seq)
}

// Write32 implements the arm.Bus interface.
func (b *tcmBus) Write32(addr uint32, val uint32, seq bool) int {
	if t := b.tcm(addr &^ 3); t != nil {
		binary.LittleEndian.PutUint32(t, val)
		return 1
	}
	return b.bus.Write32(addr, val, seq)
}
