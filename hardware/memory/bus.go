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
	"encoding/binary"
	"sort"

	"github.com/jetsetilly/gopheradvance/curated"
)

// Bus decodes addresses to regions.
type Bus struct {
	name    string
	regions []*Region

	// regions indexed by the top eight bits of the address
	pages [256][]*Region

	openBus uint32
}

// NewBus is the preferred method of initialisation for the Bus type. The
// regions must not overlap.
func NewBus(name string, openBus uint32, regions ...*Region) (*Bus, error) {
	b := &Bus{
		name:    name,
		openBus: openBus,
	}

	for _, r := range regions {
		if r.Memtop < r.Origin {
			return nil, curated.Errorf("memory: region %s ends before it begins", r.Name)
		}
		if r.Data == nil && r.Device == nil {
			return nil, curated.Errorf("memory: region %s has no storage", r.Name)
		}
		b.regions = append(b.regions, r)
	}

	sort.Slice(b.regions, func(i, j int) bool {
		return b.regions[i].Origin < b.regions[j].Origin
	})

	for i := 1; i < len(b.regions); i++ {
		if b.regions[i].Origin <= b.regions[i-1].Memtop {
			return nil, curated.Errorf("memory: region %s overlaps %s", b.regions[i].Name, b.regions[i-1].Name)
		}
	}

	for _, r := range b.regions {
		for p := r.Origin >> 24; p <= r.Memtop>>24; p++ {
			b.pages[p] = append(b.pages[p], r)
		}
	}

	return b, nil
}

func (b *Bus) String() string {
	return b.name
}

// Regions returns the regions of the bus in address order.
func (b *Bus) Regions() []*Region {
	return b.regions
}

// SetOpenBus changes the value returned by reads of unmapped addresses.
func (b *Bus) SetOpenBus(v uint32) {
	b.openBus = v
}

// OpenBus returns the value of reads of unmapped addresses.
func (b *Bus) OpenBus() uint32 {
	return b.openBus
}

// Lookup returns the region containing the address or nil.
func (b *Bus) Lookup(addr uint32) *Region {
	for _, r := range b.pages[addr>>24] {
		if r.contains(addr) {
			return r
		}
	}
	return nil
}

func (b *Bus) openBus32(r *Region, addr uint32) uint32 {
	if r != nil && r.OpenBus != nil {
		return r.OpenBus(addr)
	}
	return b.openBus
}

// the value returned for a read of size bytes at offset o in the region. the
// offset is known to be aligned to the size
func (b *Bus) readData(r *Region, addr uint32, o uint32, size uint32) uint32 {
	if o+size > uint32(len(r.Data)) {
		v := b.openBus32(r, addr&^3)
		return v >> ((addr & 3) * 8)
	}
	switch size {
	case 1:
		return uint32(r.Data[o])
	case 2:
		return uint32(binary.LittleEndian.Uint16(r.Data[o:]))
	}
	return binary.LittleEndian.Uint32(r.Data[o:])
}

func (b *Bus) writeData(r *Region, o uint32, size uint32, val uint32) {
	if o+size > uint32(len(r.Data)) {
		return
	}
	switch size {
	case 1:
		r.Data[o] = uint8(val)
	case 2:
		binary.LittleEndian.PutUint16(r.Data[o:], uint16(val))
	default:
		binary.LittleEndian.PutUint32(r.Data[o:], val)
	}
}

// Read8 returns the byte at the address and the number of cycles taken.
func (b *Bus) Read8(addr uint32, seq bool) (uint8, int) {
	r := b.Lookup(addr)
	if r == nil {
		return uint8(b.openBus >> ((addr & 3) * 8)), 1
	}
	return b.read8(r, addr), r.cycles(seq, false)
}

func (b *Bus) read8(r *Region, addr uint32) uint8 {
	if r.Device != nil {
		return r.Device.Read8(addr)
	}
	return uint8(b.readData(r, addr, r.offset(addr), 1))
}

// Read16 returns the halfword at the address and the number of cycles taken.
// The address is aligned to a halfword boundary unless the region is on an
// 8-bit bus.
func (b *Bus) Read16(addr uint32, seq bool) (uint16, int) {
	r := b.Lookup(addr)
	if r == nil {
		return uint16(b.openBus >> ((addr & 2) * 8)), 1
	}
	c := r.cycles(seq, false)

	if r.Flags&Bus8 == Bus8 {
		v := uint16(b.read8(r, addr))
		return v | v<<8, c
	}

	addr &^= 1
	if r.Device != nil {
		return r.Device.Read16(addr), c
	}
	return uint16(b.readData(r, addr, r.offset(addr), 2)), c
}

// Read32 returns the word at the address and the number of cycles taken. The
// address is aligned to a word boundary unless the region is on an 8-bit bus.
func (b *Bus) Read32(addr uint32, seq bool) (uint32, int) {
	r := b.Lookup(addr)
	if r == nil {
		return b.openBus, 1
	}
	c := r.cycles(seq, true)

	if r.Flags&Bus8 == Bus8 {
		return uint32(b.read8(r, addr)) * 0x01010101, c
	}

	addr &^= 3
	if r.Device != nil {
		return r.Device.Read32(addr), c
	}
	return b.readData(r, addr, r.offset(addr), 4), c
}

// Write8 writes the byte to the address and returns the number of cycles
// taken.
func (b *Bus) Write8(addr uint32, val uint8, seq bool) int {
	r := b.Lookup(addr)
	if r == nil {
		return 1
	}
	c := r.cycles(seq, false)

	if r.Flags&(ReadOnly|ByteWriteIgnore) != 0 {
		return c
	}

	if r.Flags&ByteWriteDup == ByteWriteDup {
		addr &^= 1
		v := uint16(val) | uint16(val)<<8
		if r.Device != nil {
			r.Device.Write16(addr, v)
		} else {
			b.writeData(r, r.offset(addr), 2, uint32(v))
		}
		return c
	}

	if r.Device != nil {
		r.Device.Write8(addr, val)
	} else {
		b.writeData(r, r.offset(addr), 1, uint32(val))
	}
	return c
}

// Write16 writes the halfword to the address and returns the number of
// cycles taken.
func (b *Bus) Write16(addr uint32, val uint16, seq bool) int {
	r := b.Lookup(addr)
	if r == nil {
		return 1
	}
	c := r.cycles(seq, false)

	if r.Flags&ReadOnly == ReadOnly {
		return c
	}

	if r.Flags&Bus8 == Bus8 {
		v := uint8(val >> ((addr & 1) * 8))
		if r.Device != nil {
			r.Device.Write8(addr, v)
		} else {
			b.writeData(r, r.offset(addr), 1, uint32(v))
		}
		return c
	}

	addr &^= 1
	if r.Device != nil {
		r.Device.Write16(addr, val)
	} else {
		b.writeData(r, r.offset(addr), 2, uint32(val))
	}
	return c
}

// Write32 writes the word to the address and returns the number of cycles
// taken.
func (b *Bus) Write32(addr uint32, val uint32, seq bool) int {
	r := b.Lookup(addr)
	if r == nil {
		return 1
	}
	c := r.cycles(seq, true)

	if r.Flags&ReadOnly == ReadOnly {
		return c
	}

	if r.Flags&Bus8 == Bus8 {
		v := uint8(val >> ((addr & 3) * 8))
		if r.Device != nil {
			r.Device.Write8(addr, v)
		} else {
			b.writeData(r, r.offset(addr), 1, uint32(v))
		}
		return c
	}

	addr &^= 3
	if r.Device != nil {
		r.Device.Write32(addr, val)
	} else {
		b.writeData(r, r.offset(addr), 4, val)
	}
	return c
}
