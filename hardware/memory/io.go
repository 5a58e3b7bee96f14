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

package memory

import (
	"github.com/jetsetilly/gopheradvance/logger"
)

// Registers is implemented by components with memory mapped registers.
// Addresses are full bus addresses aligned to a word boundary.
type Registers interface {
	Read32(addr uint32) uint32

	// only the bits set in mask are being written
	Write32(addr uint32, val uint32, mask uint32)
}

// the number of words in the IO space that are indexed directly. addresses
// above this are found with a map
const ioDirectWords = 0x1000 / 4

// IO is a Device that dispatches register access to the components
// registered with Map().
type IO struct {
	tag    string
	origin uint32

	direct [ioDirectWords]Registers
	sparse map[uint32]Registers

	// LogUnmapped is checked on every unhandled access. can be nil
	LogUnmapped func() bool
	logged      map[uint32]bool

	// OpenBus supplies the value of an unhandled read. if it is nil then
	// unhandled reads return zero
	OpenBus func() uint32
}

// NewIO is the preferred method of initialisation for the IO type. The tag is
// used when logging.
func NewIO(tag string, origin uint32) *IO {
	return &IO{
		tag:    tag,
		origin: origin,
		sparse: make(map[uint32]Registers),
		logged: make(map[uint32]bool),
	}
}

// Map the component to every word in the address range. The to address is
// inclusive. Mapping a word a second time replaces the earlier mapping.
func (io *IO) Map(from uint32, to uint32, r Registers) {
	for a := from &^ 3; a <= to; a += 4 {
		o := (a - io.origin) >> 2
		if o < ioDirectWords {
			io.direct[o] = r
		} else {
			io.sparse[a] = r
		}
	}
}

func (io *IO) lookup(addr uint32) Registers {
	addr &^= 3
	o := (addr - io.origin) >> 2
	if o < ioDirectWords {
		return io.direct[o]
	}
	return io.sparse[addr]
}

func (io *IO) unmapped(access string, addr uint32) {
	if io.LogUnmapped == nil || !io.LogUnmapped() {
		return
	}
	if io.logged[addr] {
		return
	}
	io.logged[addr] = true
	logger.Logf(logger.Allow, io.tag, "unmapped %s %08x", access, addr)
}

// Read32 implements the Device interface.
func (io *IO) Read32(addr uint32) uint32 {
	r := io.lookup(addr)
	if r == nil {
		io.unmapped("read", addr)
		if io.OpenBus == nil {
			return 0
		}
		return io.OpenBus()
	}
	return r.Read32(addr &^ 3)
}

// Read16 implements the Device interface.
func (io *IO) Read16(addr uint32) uint16 {
	return uint16(io.Read32(addr) >> ((addr & 2) * 8))
}

// Read8 implements the Device interface.
func (io *IO) Read8(addr uint32) uint8 {
	return uint8(io.Read32(addr) >> ((addr & 3) * 8))
}

func (io *IO) write(addr uint32, val uint32, mask uint32) {
	r := io.lookup(addr)
	if r == nil {
		io.unmapped("write", addr)
		return
	}
	r.Write32(addr&^3, val&mask, mask)
}

// Write32 implements the Device interface.
func (io *IO) Write32(addr uint32, val uint32) {
	io.write(addr, val, 0xffffffff)
}

// Write16 implements the Device interface.
func (io *IO) Write16(addr uint32, val uint16) {
	s := (addr & 2) * 8
	io.write(addr, uint32(val)<<s, 0xffff<<s)
}

// Write8 implements the Device interface.
func (io *IO) Write8(addr uint32, val uint8) {
	s := (addr & 3) * 8
	io.write(addr, uint32(val)<<s, 0xff<<s)
}

// Peek8 implements the Peeker interface. Registers that change on read (FIFO
// receive registers) are peeked as zero.
func (io *IO) Peek8(addr uint32) uint8 {
	r := io.lookup(addr)
	if r == nil {
		return 0
	}
	if v, ok := r.(Volatile); ok && v.Volatile(addr&^3) {
		return 0
	}
	return uint8(r.Read32(addr&^3) >> ((addr & 3) * 8))
}

// Volatile is an optional interface for Registers implementations with
// registers that change state when read.
type Volatile interface {
	Volatile(addr uint32) bool
}

// Merge is a helper for implementations of Registers. It returns the result
// of writing val to the bits of old that are selected by mask.
func Merge(old uint32, val uint32, mask uint32) uint32 {
	return (old &^ mask) | (val & mask)
}

// Store is a simple implementation of Registers that stores the values
// written to it. It's useful for registers that have no effect other than to
// hold a value, and as a base for more complex components.
type Store struct {
	origin uint32
	words  []uint32

	// Notify is called after every write. can be nil
	Notify func(addr uint32, val uint32, mask uint32)
}

// NewStore is the preferred method of initialisation for the Store type.
// The size is in bytes.
func NewStore(origin uint32, size uint32) *Store {
	return &Store{
		origin: origin,
		words:  make([]uint32, (size+3)/4),
	}
}

// Read32 implements the Registers interface.
func (s *Store) Read32(addr uint32) uint32 {
	o := (addr - s.origin) >> 2
	if o >= uint32(len(s.words)) {
		return 0
	}
	return s.words[o]
}

// Write32 implements the Registers interface.
func (s *Store) Write32(addr uint32, val uint32, mask uint32) {
	o := (addr - s.origin) >> 2
	if o >= uint32(len(s.words)) {
		return
	}
	s.words[o] = Merge(s.words[o], val, mask)
	if s.Notify != nil {
		s.Notify(addr, s.words[o], mask)
	}
}

// Reset all stored values to zero.
func (s *Store) Reset() {
	clear(s.words)
}

// Words returns a copy of the stored values.
func (s *Store) Words() []uint32 {
	return append([]uint32(nil), s.words...)
}

// Restore stored values. Used by snapshot plumbing.
func (s *Store) Restore(words []uint32) {
	copy(s.words, words)
}
