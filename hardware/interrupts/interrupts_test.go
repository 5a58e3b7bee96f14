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

package interrupts_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/test"
)

func newGBA() (*interrupts.Controller, *memory.IO, *scheduler.Scheduler) {
	sched := scheduler.NewScheduler()
	io := memory.NewIO("test", 0x04000000)
	c := interrupts.NewController(interrupts.LayoutGBA, 0, sched)
	c.Map(io)
	return c, io, sched
}

func TestLine(t *testing.T) {
	c, io, sched := newGBA()

	c.Request(interrupts.VBlank)
	sched.Dispatch()
	test.ExpectFailure(t, c.Line())

	// enable in IE but not IME
	io.Write16(0x04000200, 0x0001)
	sched.Dispatch()
	test.ExpectFailure(t, c.Line())

	io.Write16(0x04000208, 0x0001)

	// the line is not refreshed until the checkpoint
	test.ExpectFailure(t, c.Line())
	sched.Dispatch()
	test.ExpectSuccess(t, c.Line())

	// IF is never cleared by the line being asserted
	test.ExpectEquality(t, io.Read16(0x04000202), uint16(0x0001))

	// acknowledge by writing one
	io.Write16(0x04000202, 0x0001)
	sched.Dispatch()
	test.ExpectFailure(t, c.Line())
	test.ExpectEquality(t, io.Read16(0x04000202), uint16(0x0000))
}

func TestAcknowledgeOnlyWrittenBits(t *testing.T) {
	c, io, sched := newGBA()

	c.Request(interrupts.Timer0)
	c.Request(interrupts.DMA3)
	sched.Dispatch()
	test.ExpectEquality(t, io.Read16(0x04000202), uint16(0x0808))

	// a byte write to IE must not acknowledge anything
	io.Write8(0x04000200, 0xff)
	test.ExpectEquality(t, io.Read16(0x04000202), uint16(0x0808))

	io.Write8(0x04000203, 0x08)
	test.ExpectEquality(t, io.Read16(0x04000202), uint16(0x0008))
	test.ExpectEquality(t, io.Read16(0x04000200), uint16(0x00ff))
}

func TestHalt(t *testing.T) {
	c, io, sched := newGBA()

	io.Write16(0x04000200, 1<<interrupts.VBlank)
	io.Write16(0x04000208, 1)
	io.Write8(0x04000301, 0x00)
	test.ExpectSuccess(t, c.Halted())
	test.ExpectEquality(t, c.Mode(), interrupts.Halt)

	// a request for a disabled source does not wake the CPU
	c.Request(interrupts.HBlank)
	sched.Dispatch()
	test.ExpectSuccess(t, c.Halted())

	c.Request(interrupts.VBlank)
	sched.Dispatch()
	test.ExpectFailure(t, c.Halted())
	test.ExpectSuccess(t, c.Line())
}

func TestStop(t *testing.T) {
	c, io, sched := newGBA()

	io.Write16(0x04000200, 1<<interrupts.VBlank|1<<interrupts.Keypad)
	io.Write16(0x04000208, 1)
	io.Write8(0x04000301, 0x80)
	test.ExpectEquality(t, c.Mode(), interrupts.Stop)

	c.Request(interrupts.VBlank)
	sched.Dispatch()
	test.ExpectSuccess(t, c.Halted())

	c.Request(interrupts.Keypad)
	sched.Dispatch()
	test.ExpectFailure(t, c.Halted())
}

func TestNDSLayout(t *testing.T) {
	sched := scheduler.NewScheduler()
	io := memory.NewIO("test", 0x04000000)
	c := interrupts.NewController(interrupts.LayoutNDS, 1, sched)
	c.Map(io)

	io.Write32(0x04000210, 1<<interrupts.IPCRecvNotEmpty)
	io.Write32(0x04000208, 1)
	c.Request(interrupts.IPCRecvNotEmpty)
	sched.Dispatch()
	test.ExpectSuccess(t, c.Line())
	test.ExpectEquality(t, io.Read32(0x04000214), uint32(1<<interrupts.IPCRecvNotEmpty))

	io.Write32(0x04000214, 1<<interrupts.IPCRecvNotEmpty)
	sched.Dispatch()
	test.ExpectFailure(t, c.Line())

	// HALTCNT bits 6-7
	io.Write8(0x04000301, 0x80)
	test.ExpectEquality(t, c.Mode(), interrupts.Halt)
}

func TestSnapshot(t *testing.T) {
	c, io, sched := newGBA()

	io.Write16(0x04000200, 0x3fff)
	io.Write16(0x04000208, 1)
	c.Request(interrupts.Timer2)
	sched.Dispatch()

	s := c.Snapshot()
	c.Reset()
	test.ExpectFailure(t, c.Line())

	c.Plumb(s)
	test.ExpectSuccess(t, c.Line())
	test.ExpectEquality(t, c.Pending(), uint32(1<<interrupts.Timer2))
}

func TestSourceNames(t *testing.T) {
	test.ExpectEquality(t, interrupts.TimerSource(2).String(), "Timer2")
	test.ExpectEquality(t, interrupts.DMASource(3), interrupts.DMA3)
}
