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

package cartridge

import (
	"bytes"

	"github.com/jetsetilly/gopheradvance/curated"
)

// size of the battery backed SRAM
const sramSize = 0x8000

// SRAM is battery backed static RAM on an 8-bit bus. It should be mapped with
// the memory.Bus8 flag.
type SRAM struct {
	data  []byte
	dirty bool
}

// NewSRAM is the preferred method of initialisation for the SRAM type.
func NewSRAM() *SRAM {
	s := &SRAM{
		data: make([]byte, sramSize),
	}
	for i := range s.data {
		s.data[i] = 0xff
	}
	return s
}

// Read8 implements the memory.Device interface.
func (s *SRAM) Read8(addr uint32) uint8 {
	return s.data[addr&(sramSize-1)]
}

// Read16 implements the memory.Device interface.
func (s *SRAM) Read16(addr uint32) uint16 {
	return uint16(s.Read8(addr)) * 0x0101
}

// Read32 implements the memory.Device interface.
func (s *SRAM) Read32(addr uint32) uint32 {
	return uint32(s.Read8(addr)) * 0x01010101
}

// Write8 implements the memory.Device interface.
func (s *SRAM) Write8(addr uint32, val uint8) {
	s.data[addr&(sramSize-1)] = val
	s.dirty = true
}

// Write16 implements the memory.Device interface.
func (s *SRAM) Write16(addr uint32, val uint16) {
	s.Write8(addr, uint8(val))
}

// Write32 implements the memory.Device interface.
func (s *SRAM) Write32(addr uint32, val uint32) {
	s.Write8(addr, uint8(val))
}

// Data implements the memory.Backup interface.
func (s *SRAM) Data() []byte {
	s.dirty = false
	return append([]byte(nil), s.data...)
}

// Restore implements the memory.Backup interface.
func (s *SRAM) Restore(data []byte) error {
	if len(data) != len(s.data) {
		return curated.Errorf("sram: %v", "save data is the wrong size")
	}
	copy(s.data, data)
	s.dirty = false
	return nil
}

// Peek implements the memory.Backup interface.
func (s *SRAM) Peek() []byte {
	return append([]byte(nil), s.data...)
}

// Plumb implements the memory.Backup interface.
func (s *SRAM) Plumb(data []byte) error {
	if len(data) != len(s.data) {
		return curated.Errorf("sram: %v", "save data is the wrong size")
	}
	if !bytes.Equal(s.data, data) {
		copy(s.data, data)
		s.dirty = true
	}
	return nil
}

// Dirty implements the memory.Backup interface.
func (s *SRAM) Dirty() bool {
	return s.dirty
}
