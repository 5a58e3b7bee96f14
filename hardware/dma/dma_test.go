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

package dma_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/dma"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/test"
)

type system struct {
	sched *scheduler.Scheduler
	bus   *memory.Bus
	io    *memory.IO
	irq   *interrupts.Controller
	dma   *dma.DMA
	stall int
}

func newSystem(t *testing.T, variant dma.Variant) *system {
	t.Helper()

	s := &system{}
	s.sched = scheduler.NewScheduler()
	s.io = memory.NewIO("test", 0x04000000)

	var err error
	s.bus, err = memory.NewBus("test", 0,
		&memory.Region{
			Name:   "bios",
			Origin: 0x00000000,
			Memtop: 0x00003fff,
			Mask:   0x3fff,
			Data:   make([]byte, 0x4000),
		},
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
			Device: s.io,
		},
		&memory.Region{
			Name:   "rom",
			Origin: 0x08000000,
			Memtop: 0x09ffffff,
			Mask:   0x1ffffff,
			Data:   []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88},
			Flags:  memory.ReadOnly,
		},
	)
	test.DemandSuccess(t, err)

	layout := interrupts.LayoutGBA
	if variant != dma.GBA {
		layout = interrupts.LayoutNDS
	}
	s.irq = interrupts.NewController(layout, 0, s.sched)
	s.irq.Map(s.io)

	s.dma = dma.NewDMA(variant, s.sched, 0, s.bus, s.irq)
	s.dma.Map(s.io)
	s.dma.Stall = func(cycles int) {
		s.stall += cycles
		s.sched.Elapse(cycles)
	}

	return s
}

func TestVBlankHalfwords(t *testing.T) {
	s := newSystem(t, dma.GBA)

	for i := uint32(0); i < 8; i++ {
		s.bus.Poke8(0x02000000+i, uint8(0x10+i))
	}

	s.io.Write32(0x040000b0, 0x02000000)
	s.io.Write32(0x040000b4, 0x03000100)

	// count 4, halfword, increment, vblank timing, irq, enable
	s.io.Write32(0x040000b8, 0xd0000004)

	// nothing happens until vblank
	s.sched.Dispatch()
	test.ExpectEquality(t, s.bus.Peek32(0x03000100), uint32(0))
	test.ExpectSuccess(t, s.dma.Channel(0).Enabled())

	s.dma.Trigger(dma.VBlank)
	s.sched.Dispatch()

	test.ExpectEquality(t, s.bus.Peek32(0x03000100), uint32(0x13121110))
	test.ExpectEquality(t, s.bus.Peek32(0x03000104), uint32(0x17161514))
	test.ExpectEquality(t, s.bus.Peek32(0x03000108), uint32(0))

	test.ExpectEquality(t, s.irq.Pending()&(1<<interrupts.DMA0), uint32(0))
	test.ExpectEquality(t, s.io.Read16(0x04000202), uint16(1<<interrupts.DMA0))

	// no repeat so the channel is disabled
	test.ExpectFailure(t, s.dma.Channel(0).Enabled())
	test.ExpectEquality(t, s.io.Read16(0x040000ba)&0x8000, uint16(0))

	// start cycles + N + S*3 for both reads and writes
	test.ExpectEquality(t, s.stall, 2+4*3+4*1)
}

func TestImmediateWords(t *testing.T) {
	s := newSystem(t, dma.GBA)

	s.bus.Poke32(0x03000000, 0xaabbccdd)
	s.bus.Poke32(0x03000004, 0x11223344)

	// unaligned source and destination are force aligned
	s.io.Write32(0x040000d4, 0x03000003)
	s.io.Write32(0x040000d8, 0x02000011)
	s.io.Write32(0x040000dc, 0x84000002)

	test.ExpectEquality(t, s.dma.Channel(3).Source(), uint32(0x03000000))
	test.ExpectEquality(t, s.dma.Channel(3).Destination(), uint32(0x02000010))

	s.sched.Dispatch()
	test.ExpectEquality(t, s.bus.Peek32(0x02000010), uint32(0xaabbccdd))
	test.ExpectEquality(t, s.bus.Peek32(0x02000014), uint32(0x11223344))
	test.ExpectEquality(t, s.dma.Channel(3).Destination(), uint32(0x02000018))
	test.ExpectFailure(t, s.dma.Channel(3).Enabled())
}

func TestAddressModes(t *testing.T) {
	s := newSystem(t, dma.GBA)

	s.bus.Poke32(0x03000000, 0x00000001)
	s.bus.Poke32(0x03000004, 0x00000002)
	s.bus.Poke32(0x03000008, 0x00000003)

	// source decrement from 0x03000008, destination fixed
	s.io.Write32(0x040000d4, 0x03000008)
	s.io.Write32(0x040000d8, 0x02000000)
	s.io.Write32(0x040000dc, 0x84000003|(1<<23)|(2<<21))
	s.sched.Dispatch()

	// last write wins at the fixed destination
	test.ExpectEquality(t, s.bus.Peek32(0x02000000), uint32(0x00000001))
	test.ExpectEquality(t, s.bus.Peek32(0x02000004), uint32(0))
	test.ExpectEquality(t, s.dma.Channel(3).Source(), uint32(0x02fffffc))
}

func TestROMSourceDecrementIncrements(t *testing.T) {
	s := newSystem(t, dma.GBA)

	s.io.Write32(0x040000d4, 0x08000000)
	s.io.Write32(0x040000d8, 0x02000000)
	s.io.Write32(0x040000dc, 0x84000002|(1<<23))
	s.sched.Dispatch()

	test.ExpectEquality(t, s.bus.Peek32(0x02000000), uint32(0x44332211))
	test.ExpectEquality(t, s.bus.Peek32(0x02000004), uint32(0x88776655))
}

func TestOpenBusSource(t *testing.T) {
	s := newSystem(t, dma.GBA)

	s.bus.Poke32(0x03000000, 0xcafef00d)
	s.io.Write32(0x040000d4, 0x03000000)
	s.io.Write32(0x040000d8, 0x02000000)
	s.io.Write32(0x040000dc, 0x84000001)
	s.sched.Dispatch()

	// reads from the BIOS region are not made. the latch is written instead
	s.io.Write32(0x040000d4, 0x00000000)
	s.io.Write32(0x040000d8, 0x02000004)
	s.io.Write32(0x040000dc, 0x84000001)
	s.sched.Dispatch()
	test.ExpectEquality(t, s.bus.Peek32(0x02000004), uint32(0xcafef00d))
}

func TestRepeatReload(t *testing.T) {
	s := newSystem(t, dma.GBA)

	// hblank, repeat, increment-and-reload destination
	s.io.Write32(0x040000bc, 0x03000000)
	s.io.Write32(0x040000c0, 0x02000000)
	s.io.Write32(0x040000c4, 0xa2000002|(3<<21))

	s.dma.Trigger(dma.HBlank)
	s.sched.Dispatch()
	test.ExpectSuccess(t, s.dma.Channel(1).Enabled())
	test.ExpectEquality(t, s.dma.Channel(1).Destination(), uint32(0x02000000))
	test.ExpectEquality(t, s.dma.Channel(1).Source(), uint32(0x03000004))
	test.ExpectEquality(t, s.dma.Channel(1).Remaining(), uint32(2))

	// vblank does not trigger an hblank channel
	s.dma.Trigger(dma.VBlank)
	s.sched.Dispatch()
	test.ExpectEquality(t, s.dma.Channel(1).Source(), uint32(0x03000004))
}

func TestFIFORequest(t *testing.T) {
	s := newSystem(t, dma.GBA)

	s.io.Write32(0x040000bc, 0x03000000)
	s.io.Write32(0x040000c0, 0x040000a0)
	s.io.Write32(0x040000c4, 0xb6000000)

	s.dma.FIFORequest(0x040000a4)
	test.ExpectFailure(t, s.dma.Active())

	s.dma.FIFORequest(0x040000a0)
	test.ExpectSuccess(t, s.dma.Active())
	s.sched.Dispatch()

	// four words and the destination did not move
	test.ExpectEquality(t, s.dma.Channel(1).Source(), uint32(0x03000010))
	test.ExpectEquality(t, s.dma.Channel(1).Destination(), uint32(0x040000a0))
	test.ExpectSuccess(t, s.dma.Channel(1).Enabled())
}

func TestVideoCapture(t *testing.T) {
	s := newSystem(t, dma.GBA)

	s.io.Write32(0x040000d4, 0x03000000)
	s.io.Write32(0x040000d8, 0x02000000)
	s.io.Write32(0x040000dc, 0xb2000001)

	s.dma.VideoCapture(1)
	test.ExpectFailure(t, s.dma.Active())
	s.dma.VideoCapture(2)
	test.ExpectSuccess(t, s.dma.Active())
	s.sched.Dispatch()

	s.dma.VideoCapture(162)
	test.ExpectFailure(t, s.dma.Channel(3).Enabled())
}

func TestPriority(t *testing.T) {
	s := newSystem(t, dma.GBA)

	var order []uint32
	s.bus.Poke32(0x03000000, 0)

	// both channels write to the same address. channel 0 runs first so
	// channel 2 writes last
	s.bus.Poke32(0x03000010, 0x22222222)
	s.bus.Poke32(0x03000020, 0x00000000)
	s.io.Write32(0x040000c8, 0x03000010)
	s.io.Write32(0x040000cc, 0x02000000)
	s.io.Write32(0x040000d0, 0x94000001)
	s.io.Write32(0x040000b0, 0x03000020)
	s.io.Write32(0x040000b4, 0x02000000)
	s.io.Write32(0x040000b8, 0x94000001)

	s.dma.Trigger(dma.VBlank)
	s.sched.Dispatch()
	order = append(order, s.bus.Peek32(0x02000000))
	test.ExpectEquality(t, order[0], uint32(0x22222222))
}

func TestNDS9(t *testing.T) {
	s := newSystem(t, dma.NDS9)

	s.io.Write32(0x040000e0, 0x12345678)
	test.ExpectEquality(t, s.io.Read32(0x040000e0), uint32(0x12345678))

	// copy from fill register using a fixed source
	s.io.Write32(0x040000b0, 0x040000e0)
	s.io.Write32(0x040000b4, 0x02000000)
	s.io.Write32(0x040000b8, 0x84000000|(2<<23)|2)
	s.sched.Dispatch()

	test.ExpectEquality(t, s.bus.Peek32(0x02000000), uint32(0x12345678))
	test.ExpectEquality(t, s.bus.Peek32(0x02000004), uint32(0x12345678))

	// timing bits 27-29
	s.io.Write32(0x040000c4, 0x80000000|(7<<27)|1)
	test.ExpectEquality(t, s.dma.Channel(1).Timing(), dma.GeometryFIFO)

	// 21-bit count with zero meaning maximum
	s.io.Write32(0x040000d0, 0x80000000|(1<<27))
	test.ExpectEquality(t, s.dma.Channel(2).Remaining(), uint32(0x200000))
}

func TestSnapshot(t *testing.T) {
	s := newSystem(t, dma.GBA)

	s.io.Write32(0x040000b0, 0x03000000)
	s.io.Write32(0x040000b4, 0x02000000)
	s.io.Write32(0x040000b8, 0x90000004)

	snap := s.dma.Snapshot()
	s.dma.Reset()
	test.ExpectFailure(t, s.dma.Channel(0).Enabled())

	s.dma.Plumb(snap)
	test.ExpectSuccess(t, s.dma.Channel(0).Enabled())
	test.ExpectEquality(t, s.dma.Channel(0).Remaining(), uint32(4))
}
