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

package ipc_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/ipc"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/test"
)

type requests struct {
	sources []interrupts.Source
}

func (r *requests) Request(src interrupts.Source) {
	r.sources = append(r.sources, src)
}

type system struct {
	ipc  *ipc.IPC
	io9  *memory.IO
	io7  *memory.IO
	irq9 *requests
	irq7 *requests
}

func newSystem() *system {
	s := &system{
		io9:  memory.NewIO("arm9", 0x04000000),
		io7:  memory.NewIO("arm7", 0x04000000),
		irq9: &requests{},
		irq7: &requests{},
	}
	s.ipc = ipc.NewIPC(s.irq9, s.irq7)
	s.ipc.Endpoint(ipc.ARM9).Map(s.io9)
	s.ipc.Endpoint(ipc.ARM7).Map(s.io7)
	return s
}

func TestSync(t *testing.T) {
	s := newSystem()

	// ARM7 enables the sync interrupt
	s.io7.Write16(0x04000180, 0x4000)

	// ARM9 sends the value 5 and requests the interrupt
	s.io9.Write16(0x04000180, 0x2500)
	test.ExpectEquality(t, s.io7.Read16(0x04000180)&0x000f, uint16(5))
	test.ExpectEquality(t, s.io9.Read16(0x04000180), uint16(0x0500))
	test.DemandEquality(t, len(s.irq7.sources), 1)
	test.ExpectEquality(t, s.irq7.sources[0], interrupts.IPCSync)

	// the ARM9 has not enabled the interrupt
	s.io7.Write16(0x04000180, 0x6000)
	test.ExpectEquality(t, len(s.irq9.sources), 0)
}

func TestFIFO(t *testing.T) {
	s := newSystem()

	// enable both sides. ARM7 wants the receive interrupt
	s.io9.Write16(0x04000184, 0x8000)
	s.io7.Write16(0x04000184, 0x8400)

	test.ExpectEquality(t, s.io9.Read16(0x04000184)&0x0101, uint16(0x0101))

	s.io9.Write32(0x04000188, 0x12345678)
	s.io9.Write32(0x04000188, 0x9abcdef0)

	// the interrupt is edge triggered. only the first value raises it
	test.DemandEquality(t, len(s.irq7.sources), 1)
	test.ExpectEquality(t, s.irq7.sources[0], interrupts.IPCRecvNotEmpty)
	test.ExpectEquality(t, s.io7.Read16(0x04000184)&0x0100, uint16(0))

	test.ExpectEquality(t, s.io7.Read32(0x04100000), uint32(0x12345678))
	test.ExpectEquality(t, s.io7.Read32(0x04100000), uint32(0x9abcdef0))

	// reading an empty queue sets the error flag and returns the last value
	test.ExpectEquality(t, s.io7.Read32(0x04100000), uint32(0x9abcdef0))
	test.ExpectEquality(t, s.io7.Read16(0x04000184)&0x4000, uint16(0x4000))

	// writing one to the error bit acknowledges it
	s.io7.Write16(0x04000184, 0xc400)
	test.ExpectEquality(t, s.io7.Read16(0x04000184)&0x4000, uint16(0))
}

func TestFIFOFull(t *testing.T) {
	s := newSystem()
	s.io9.Write16(0x04000184, 0x8000)

	for i := range 16 {
		s.io9.Write32(0x04000188, uint32(i))
	}
	test.ExpectEquality(t, s.io9.Read16(0x04000184)&0x4002, uint16(0x0002))
	test.ExpectEquality(t, s.io7.Read16(0x04000184)&0x0200, uint16(0x0200))

	s.io9.Write32(0x04000188, 0xff)
	test.ExpectEquality(t, s.io9.Read16(0x04000184)&0x4000, uint16(0x4000))

	// clearing the queue
	s.io9.Write16(0x04000184, 0x8008)
	test.ExpectEquality(t, s.io9.Read16(0x04000184)&0x0001, uint16(0x0001))
}

func TestSendEmptyIRQ(t *testing.T) {
	s := newSystem()
	s.io7.Write16(0x04000184, 0x8000)

	// enabling the interrupt while the queue is empty raises it
	s.io9.Write16(0x04000184, 0x8004)
	test.DemandEquality(t, len(s.irq9.sources), 1)
	test.ExpectEquality(t, s.irq9.sources[0], interrupts.IPCSendEmpty)

	s.io9.Write32(0x04000188, 1)
	s.io7.Read32(0x04100000)
	test.DemandEquality(t, len(s.irq9.sources), 2)
	test.ExpectEquality(t, s.irq9.sources[1], interrupts.IPCSendEmpty)
}

func TestPeekDoesNotReceive(t *testing.T) {
	s := newSystem()
	s.io9.Write16(0x04000184, 0x8000)
	s.io7.Write16(0x04000184, 0x8000)
	s.io9.Write32(0x04000188, 0x55)

	test.ExpectEquality(t, s.io7.Peek8(0x04100000), uint8(0))
	test.ExpectEquality(t, s.io7.Read32(0x04100000), uint32(0x55))
}

func TestSnapshot(t *testing.T) {
	s := newSystem()
	s.io9.Write16(0x04000184, 0x8000)
	s.io7.Write16(0x04000184, 0x8000)
	s.io9.Write32(0x04000188, 1)
	s.io9.Write32(0x04000188, 2)

	state := s.ipc.Snapshot()
	test.ExpectEquality(t, s.io7.Read32(0x04100000), uint32(1))

	s.ipc.Plumb(state)
	test.ExpectEquality(t, s.io7.Read32(0x04100000), uint32(1))
	test.ExpectEquality(t, s.io7.Read32(0x04100000), uint32(2))
}
