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

// Peek8 returns the byte at the address without side effects. Returns false
// if the address is not mapped.
func (b *Bus) Peek8(addr uint32) (uint8, bool) {
	r := b.Lookup(addr)
	if r == nil {
		return 0, false
	}
	if r.Device != nil {
		if p, ok := r.Device.(Peeker); ok {
			return p.Peek8(addr), true
		}
		return r.Device.Read8(addr), true
	}
	o := r.offset(addr)
	if o >= uint32(len(r.Data)) {
		return 0, false
	}
	return r.Data[o], true
}

// Poke8 writes the byte to the address without side effects. Writes to
// read-only regions are allowed. Returns false if the address is not mapped
// or is backed by a device.
func (b *Bus) Poke8(addr uint32, val uint8) bool {
	r := b.Lookup(addr)
	if r == nil || r.Device != nil {
		return false
	}
	o := r.offset(addr)
	if o >= uint32(len(r.Data)) {
		return false
	}
	r.Data[o] = val
	return true
}

// Peek32 returns the little-endian word at the address, which is not
// aligned. Unmapped bytes read as zero.
func (b *Bus) Peek32(addr uint32) uint32 {
	var v uint32
	for i := uint32(0); i < 4; i++ {
		d, _ := b.Peek8(addr + i)
		v |= uint32(d) << (i * 8)
	}
	return v
}

// Poke32 writes the little-endian word to the address, which is not aligned.
func (b *Bus) Poke32(addr uint32, val uint32) {
	for i := uint32(0); i < 4; i++ {
		b.Poke8(addr+i, uint8(val>>(i*8)))
	}
}

// PokeBlock copies data to memory starting at the address.
func (b *Bus) PokeBlock(addr uint32, data []byte) {
	for i, d := range data {
		b.Poke8(addr+uint32(i), d)
	}
}
