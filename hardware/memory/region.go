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

import "fmt"

// Flags modify how the Bus accesses a region.
type Flags uint8

// List of valid Flags.
const (
	// writes are ignored
	ReadOnly Flags = 1 << iota

	// byte writes are written to both bytes of the halfword
	ByteWriteDup

	// byte writes are ignored
	ByteWriteIgnore

	// the region is connected to an 8-bit data bus. halfword and word reads
	// replicate the byte at the address. halfword and word writes store only
	// the byte lane selected by the address
	Bus8
)

// Timing is the total number of cycles for an access to a region. The 16
// fields are used for byte and halfword accesses.
type Timing struct {
	N16 int
	S16 int
	N32 int
	S32 int
}

// NewTiming returns a Timing for a region with a 32-bit bus where every
// access takes the same number of cycles.
func NewTiming(cycles int) *Timing {
	return &Timing{N16: cycles, S16: cycles, N32: cycles, S32: cycles}
}

// NewTiming16 returns a Timing for a region with a 16-bit bus. Word accesses
// take two halfword accesses.
func NewTiming16(n, s int) *Timing {
	return &Timing{N16: n, S16: s, N32: n + s, S32: s + s}
}

func (t *Timing) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", t.N16, t.S16, t.N32, t.S32)
}

// Device is implemented by regions that are not plain memory. The address is
// the full bus address, aligned to the size of the access.
type Device interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, val uint8)
	Write16(addr uint32, val uint16)
	Write32(addr uint32, val uint32)
}

// Peeker is an optional interface for devices that can be read without side
// effects. Devices that do not implement Peeker are peeked with Read8().
type Peeker interface {
	Peek8(addr uint32) uint8
}

// Backup is a device that holds save data.
type Backup interface {
	Device

	// Data returns a copy of the save data. The dirty flag is cleared
	Data() []byte

	// Peek returns a copy of the save data without clearing the dirty flag
	Peek() []byte

	// Restore save data. The length must match the size of the device. The
	// dirty flag is cleared
	Restore(data []byte) error

	// Plumb replaces the save data with data from a snapshot. The dirty flag
	// is set if the data changes and is otherwise left alone
	Plumb(data []byte) error

	// Dirty is true if the data has been written since the last call to
	// Data() or Restore()
	Dirty() bool
}

// Region is a contiguous range of the address space.
type Region struct {
	Name string

	// the first and last address of the region
	Origin uint32
	Memtop uint32

	// the offset of an address is masked with this value. this is the
	// mirroring period minus one
	Mask uint32

	// Remap is applied to the masked offset, for mirroring patterns that
	// are not a power of two. Can be nil
	Remap func(offset uint32) uint32

	// one of Data or Device should be set
	Data   []byte
	Device Device

	Flags Flags

	// nil timing means every access takes one cycle
	Timing *Timing

	// OpenBus is called for reads beyond the end of Data. if it is nil
	// then the open bus value of the Bus is used
	OpenBus func(addr uint32) uint32
}

func (r *Region) String() string {
	return fmt.Sprintf("%s %08x-%08x", r.Name, r.Origin, r.Memtop)
}

func (r *Region) contains(addr uint32) bool {
	return addr >= r.Origin && addr <= r.Memtop
}

// offset returns the index into Data for the address.
func (r *Region) offset(addr uint32) uint32 {
	o := (addr - r.Origin) & r.Mask
	if r.Remap != nil {
		o = r.Remap(o)
	}
	return o
}

func (r *Region) cycles(seq bool, word bool) int {
	if r.Timing == nil {
		return 1
	}
	if word {
		if seq {
			return r.Timing.S32
		}
		return r.Timing.N32
	}
	if seq {
		return r.Timing.S16
	}
	return r.Timing.N16
}
