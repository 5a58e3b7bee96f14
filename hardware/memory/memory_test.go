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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/test"
)

func newTestBus(t *testing.T) (*memory.Bus, *memory.IO) {
	t.Helper()

	io := memory.NewIO("test io", 0x04000000)

	b, err := memory.NewBus("test", 0xdeadbeef,
		&memory.Region{
			Name:   "ewram",
			Origin: 0x02000000,
			Memtop: 0x02ffffff,
			Mask:   0x3ffff,
			Data:   make([]byte, 0x40000),
			Timing: memory.NewTiming16(3, 3),
		},
		&memory.Region{
			Name:   "iwram",
			Origin: 0x03000000,
			Memtop: 0x03ffffff,
			Mask:   0x7fff,
			Data:   make([]byte, 0x8000),
		},
		&memory.Region{
			Name:   "io",
			Origin: 0x04000000,
			Memtop: 0x040003ff,
			Device: io,
		},
		&memory.Region{
			Name:   "palette",
			Origin: 0x05000000,
			Memtop: 0x05ffffff,
			Mask:   0x3ff,
			Data:   make([]byte, 0x400),
			Flags:  memory.ByteWriteDup,
		},
		&memory.Region{
			Name:   "oam",
			Origin: 0x07000000,
			Memtop: 0x07ffffff,
			Mask:   0x3ff,
			Data:   make([]byte, 0x400),
			Flags:  memory.ByteWriteIgnore,
		},
		&memory.Region{
			Name:   "rom",
			Origin: 0x08000000,
			Memtop: 0x09ffffff,
			Mask:   0x1ffffff,
			Data:   []byte{0x01, 0x02, 0x03, 0x04},
			Flags:  memory.ReadOnly,
			OpenBus: func(addr uint32) uint32 {
				lo := (addr >> 1) & 0xffff
				return lo | ((lo + 1) << 16)
			},
		},
		&memory.Region{
			Name:   "sram",
			Origin: 0x0e000000,
			Memtop: 0x0effffff,
			Mask:   0x7fff,
			Data:   make([]byte, 0x8000),
			Flags:  memory.Bus8,
		},
	)
	test.DemandSuccess(t, err)

	return b, io
}

func TestMirroring(t *testing.T) {
	b, _ := newTestBus(t)

	c := b.Write32(0x03000010, 0x11223344, false)
	test.ExpectEquality(t, c, 1)

	v, _ := b.Read32(0x03008010, false)
	test.ExpectEquality(t, v, uint32(0x11223344))
	v, _ = b.Read32(0x03ff8010, false)
	test.ExpectEquality(t, v, uint32(0x11223344))

	h, _ := b.Read16(0x03000012, false)
	test.ExpectEquality(t, h, uint16(0x1122))
	d, _ := b.Read8(0x03000011, false)
	test.ExpectEquality(t, d, uint8(0x33))
}

func TestAlignment(t *testing.T) {
	b, _ := newTestBus(t)

	b.Write32(0x02000001, 0xaabbccdd, false)
	v, _ := b.Read32(0x02000000, false)
	test.ExpectEquality(t, v, uint32(0xaabbccdd))

	// the bus aligns the address. rotation is the responsibility of the CPU
	v, _ = b.Read32(0x02000003, false)
	test.ExpectEquality(t, v, uint32(0xaabbccdd))
}

func TestTiming(t *testing.T) {
	b, _ := newTestBus(t)

	_, c := b.Read16(0x02000000, false)
	test.ExpectEquality(t, c, 3)
	_, c = b.Read32(0x02000000, false)
	test.ExpectEquality(t, c, 6)
	_, c = b.Read32(0x02000000, true)
	test.ExpectEquality(t, c, 6)
}

func TestUnmapped(t *testing.T) {
	b, _ := newTestBus(t)

	v, c := b.Read32(0x10000000, false)
	test.ExpectEquality(t, v, uint32(0xdeadbeef))
	test.ExpectEquality(t, c, 1)

	d, _ := b.Read8(0x10000001, false)
	test.ExpectEquality(t, d, uint8(0xbe))

	test.ExpectEquality(t, b.Write32(0x10000000, 0, false), 1)
}

func TestReadOnlyAndOpenBus(t *testing.T) {
	b, _ := newTestBus(t)

	b.Write32(0x08000000, 0xffffffff, false)
	v, _ := b.Read32(0x08000000, false)
	test.ExpectEquality(t, v, uint32(0x04030201))

	// beyond the end of the data
	h, _ := b.Read16(0x08000100, false)
	test.ExpectEquality(t, h, uint16(0x0080))
	v, _ = b.Read32(0x08000100, false)
	test.ExpectEquality(t, v, uint32(0x00810080))
}

func TestByteWrites(t *testing.T) {
	b, _ := newTestBus(t)

	b.Write8(0x05000003, 0x7f, false)
	h, _ := b.Read16(0x05000002, false)
	test.ExpectEquality(t, h, uint16(0x7f7f))

	b.Write8(0x07000000, 0x7f, false)
	h, _ = b.Read16(0x07000000, false)
	test.ExpectEquality(t, h, uint16(0))

	b.Write16(0x07000000, 0x1234, false)
	h, _ = b.Read16(0x07000000, false)
	test.ExpectEquality(t, h, uint16(0x1234))
}

func TestBus8(t *testing.T) {
	b, _ := newTestBus(t)

	b.Write8(0x0e000001, 0x5a, false)
	h, _ := b.Read16(0x0e000001, false)
	test.ExpectEquality(t, h, uint16(0x5a5a))
	v, _ := b.Read32(0x0e000001, false)
	test.ExpectEquality(t, v, uint32(0x5a5a5a5a))

	// byte lane selected by address
	b.Write32(0x0e000002, 0x44332211, false)
	d, _ := b.Read8(0x0e000002, false)
	test.ExpectEquality(t, d, uint8(0x33))
}

type testRegs struct {
	val   uint32
	masks []uint32
}

func (r *testRegs) Read32(addr uint32) uint32 {
	return r.val
}

func (r *testRegs) Write32(addr uint32, val uint32, mask uint32) {
	r.val = memory.Merge(r.val, val, mask)
	r.masks = append(r.masks, mask)
}

func TestIO(t *testing.T) {
	b, io := newTestBus(t)

	r := &testRegs{}
	io.Map(0x04000200, 0x04000203, r)

	b.Write16(0x04000202, 0xabcd, false)
	b.Write8(0x04000201, 0x12, false)
	v, _ := b.Read32(0x04000200, false)
	test.ExpectEquality(t, v, uint32(0xabcd1200))
	h, _ := b.Read16(0x04000202, false)
	test.ExpectEquality(t, h, uint16(0xabcd))

	test.DemandEquality(t, len(r.masks), 2)
	test.ExpectEquality(t, r.masks[0], uint32(0xffff0000))
	test.ExpectEquality(t, r.masks[1], uint32(0x0000ff00))

	// unhandled registers read as zero
	v, _ = b.Read32(0x04000300, false)
	test.ExpectEquality(t, v, uint32(0))
	b.Write32(0x04000300, 0xffffffff, false)
}

func TestIOOpenBus(t *testing.T) {
	b, io := newTestBus(t)
	io.OpenBus = b.OpenBus

	r := &testRegs{val: 0x12345678}
	io.Map(0x04000200, 0x04000203, r)

	v, _ := b.Read32(0x04000300, false)
	test.ExpectEquality(t, v, uint32(0xdeadbeef))
	h, _ := b.Read16(0x04000302, false)
	test.ExpectEquality(t, h, uint16(0xdead))
	d, _ := b.Read8(0x04000301, false)
	test.ExpectEquality(t, d, uint8(0xbe))

	// open bus follows the bus value
	b.SetOpenBus(0x01020304)
	v, _ = b.Read32(0x04000300, false)
	test.ExpectEquality(t, v, uint32(0x01020304))

	// handled registers are unaffected
	v, _ = b.Read32(0x04000200, false)
	test.ExpectEquality(t, v, uint32(0x12345678))
}

func TestStore(t *testing.T) {
	s := memory.NewStore(0x04000060, 0x50)
	var notified uint32
	s.Notify = func(addr uint32, val uint32, mask uint32) {
		notified = addr
	}
	s.Write32(0x04000064, 0x00ff00ff, 0x0000ffff)
	test.ExpectEquality(t, s.Read32(0x04000064), uint32(0x000000ff))
	test.ExpectEquality(t, notified, uint32(0x04000064))
	test.ExpectEquality(t, s.Read32(0x04001000), uint32(0))
}

func TestPeekPoke(t *testing.T) {
	b, _ := newTestBus(t)

	b.Poke32(0x08000000, 0xcafef00d)
	test.ExpectEquality(t, b.Peek32(0x08000000), uint32(0xcafef00d))

	b.PokeBlock(0x03000001, []byte{1, 2, 3})
	test.ExpectEquality(t, b.Peek32(0x03000000), uint32(0x03020100))

	_, ok := b.Peek8(0x10000000)
	test.ExpectFailure(t, ok)
}

func TestOverlap(t *testing.T) {
	_, err := memory.NewBus("bad", 0,
		&memory.Region{Name: "a", Origin: 0x1000, Memtop: 0x1fff, Data: make([]byte, 0x1000)},
		&memory.Region{Name: "b", Origin: 0x1800, Memtop: 0x2fff, Data: make([]byte, 0x1000)},
	)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.IsAny(err))
}
