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

	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

const sharedWRAMSize = 0x8000

// the register word that contains WRAMCNT in the ARM9 IO space. WRAMCNT is
// the top byte. the other bytes are VRAMCNT_E to VRAMCNT_G
const regWramcnt = 0x04000244

// the register word that contains WRAMSTAT in the ARM7 IO space. WRAMSTAT is
// the second byte
const regWramstat = 0x04000240

// SharedWRAM is the 32K of work RAM that is divided between the two CPUs by
// the WRAMCNT register.
//
//	WRAMCNT  ARM9       ARM7
//	0        32K        none (ARM7 WRAM is mirrored)
//	1        upper 16K  lower 16K
//	2        lower 16K  upper 16K
//	3        none       32K
type SharedWRAM struct {
	data [sharedWRAMSize]byte
	cnt  uint8

	// VRAMCNT_E to VRAMCNT_G. stored for the renderer
	vramcnt [3]uint8

	notify func(addr uint32, val uint32, mask uint32)
}

// Cnt returns the value of WRAMCNT.
func (w *SharedWRAM) Cnt() uint8 {
	return w.cnt
}

// SetCnt sets the value of WRAMCNT.
func (w *SharedWRAM) SetCnt(v uint8) {
	w.cnt = v & 0x03
}

// offset returns the index into data for the address as seen by the CPU. the
// second return value is false if the CPU has no access to shared WRAM with
// the current setting
func (w *SharedWRAM) offset(addr uint32, arm7 bool) (uint32, bool) {
	switch w.cnt {
	case 0:
		if arm7 {
			return 0, false
		}
		return addr & 0x7fff, true
	case 1:
		if arm7 {
			return addr & 0x3fff, true
		}
		return 0x4000 | addr&0x3fff, true
	case 2:
		if arm7 {
			return 0x4000 | addr&0x3fff, true
		}
		return addr & 0x3fff, true
	}
	if arm7 {
		return addr & 0x7fff, true
	}
	return 0, false
}

// the ARM9 WRAMCNT register word
type wramcnt struct {
	w *SharedWRAM
}

// Read32 implements the memory.Registers interface.
func (r wramcnt) Read32(_ uint32) uint32 {
	w := r.w
	return uint32(w.vramcnt[0]) | uint32(w.vramcnt[1])<<8 | uint32(w.vramcnt[2])<<16 | uint32(w.cnt)<<24
}

// Write32 implements the memory.Registers interface.
func (r wramcnt) Write32(addr uint32, val uint32, mask uint32) {
	w := r.w
	v := memory.Merge(r.Read32(addr), val, mask)
	w.vramcnt[0] = uint8(v)
	w.vramcnt[1] = uint8(v >> 8)
	w.vramcnt[2] = uint8(v >> 16)
	w.SetCnt(uint8(v >> 24))
	if w.notify != nil && mask&0x00ffffff != 0 {
		w.notify(addr, val, mask&0x00ffffff)
	}
}

// the ARM7 WRAMSTAT register word. read-only
type wramstat struct {
	w *SharedWRAM
}

// Read32 implements the memory.Registers interface.
func (r wramstat) Read32(_ uint32) uint32 {
	return uint32(r.w.cnt) << 8
}

// Write32 implements the memory.Registers interface.
func (r wramstat) Write32(_ uint32, _ uint32, _ uint32) {
}

// wramView is the shared WRAM as seen by one of the CPUs. it implements the
// memory.Device interface
type wramView struct {
	w    *SharedWRAM
	arm7 bool

	// accesses that can't be made to the shared WRAM go to the fallback
	// memory. can be nil
	fallback []byte
}

var _ memory.Device = wramView{}

func (v wramView) slice(addr uint32) []byte {
	if o, ok := v.w.offset(addr, v.arm7); ok {
		return v.w.data[o:]
	}
	if v.fallback != nil {
		return v.fallback[addr&uint32(len(v.fallback)-1):]
	}
	return nil
}

func (v wramView) Read8(addr uint32) uint8 {
	if b := v.slice(addr); b != nil {
		return b[0]
	}
	return 0
}

func (v wramView) Read16(addr uint32) uint16 {
	if b := v.slice(addr); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (v wramView) Read32(addr uint32) uint32 {
	if b := v.slice(addr); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (v wramView) Write8(addr uint32, val uint8) {
	if b := v.slice(addr); b != nil {
		b[0] = val
	}
}

func (v wramView) Write16(addr uint32, val uint16) {
	if b := v.slice(addr); b != nil {
		binary.LittleEndian.PutUint16(b, val)
	}
}

func (v wramView) Write32(addr uint32, val uint32) {
	if b := v.slice(addr); b != nil {
		binary.LittleEndian.PutUint32(b, val)
	}
}
