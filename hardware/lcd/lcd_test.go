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

package lcd_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/dma"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/test"
)

type recorder struct {
	triggers  []dma.Timing
	captures  []int
	scanlines int
	vblanks   int
	writes    []uint32
}

func (r *recorder) Trigger(timing dma.Timing) {
	r.triggers = append(r.triggers, timing)
}

func (r *recorder) VideoCapture(line int) {
	r.captures = append(r.captures, line)
}

func (r *recorder) RegisterWrite(addr uint32, val uint32, mask uint32) {
	r.writes = append(r.writes, addr, val, mask)
}

func (r *recorder) Scanline(line int) {
	r.scanlines++
}

func (r *recorder) VBlank() {
	r.vblanks++
}

func (r *recorder) count(timing dma.Timing) int {
	var n int
	for _, t := range r.triggers {
		if t == timing {
			n++
		}
	}
	return n
}

type system struct {
	sched *scheduler.Scheduler
	io    *memory.IO
	irq   *interrupts.Controller
	lcd   *lcd.LCD
	disp  *lcd.Display
	rec   *recorder
}

func newSystem(timing lcd.Timing) *system {
	s := &system{rec: &recorder{}}
	s.sched = scheduler.NewScheduler()
	s.io = memory.NewIO("test", 0x04000000)
	s.irq = interrupts.NewController(interrupts.LayoutGBA, 0, s.sched)
	s.irq.Map(s.io)
	s.lcd = lcd.NewLCD(timing, s.sched)
	s.disp = s.lcd.AddDisplay(s.irq, s.rec, s.rec)
	s.disp.Map(s.io, [2]uint32{0x04000000, 0x04000057})
	s.lcd.Reset()
	return s
}

func (s *system) line(n int) uint64 {
	return uint64(n * s.lcd.Timing().CyclesPerLine())
}

func TestLineTiming(t *testing.T) {
	s := newSystem(lcd.GBATiming)

	test.ExpectEquality(t, s.lcd.Timing().CyclesPerLine(), 1232)
	test.ExpectEquality(t, s.lcd.Timing().CyclesPerFrame(), 280896)

	s.sched.AdvanceTo(1005)
	test.ExpectEquality(t, s.disp.Dispstat()&0x0002, 0)
	test.ExpectEquality(t, s.rec.count(dma.HBlank), 0)

	s.sched.AdvanceTo(1006)
	test.ExpectEquality(t, s.disp.Dispstat()&0x0002, 0x0002)
	test.ExpectEquality(t, s.rec.count(dma.HBlank), 1)
	test.ExpectEquality(t, s.rec.scanlines, 1)

	s.sched.AdvanceTo(1231)
	test.ExpectEquality(t, s.lcd.VCount(), 0)

	s.sched.AdvanceTo(1232)
	test.ExpectEquality(t, s.lcd.VCount(), 1)
	test.ExpectEquality(t, s.disp.Dispstat()&0x0002, 0)
	test.ExpectEquality(t, s.io.Read16(0x04000006), 1)
}

func TestFrame(t *testing.T) {
	s := newSystem(lcd.GBATiming)

	var frames []uint64
	s.lcd.OnFrame = func(frame uint64) {
		frames = append(frames, frame)
	}

	s.sched.AdvanceTo(s.line(160) - 1)
	test.ExpectEquality(t, s.disp.Dispstat()&0x0001, 0)
	test.ExpectEquality(t, s.rec.count(dma.HBlank), 160)
	test.ExpectEquality(t, s.rec.count(dma.VBlank), 0)

	s.sched.AdvanceTo(s.line(160))
	test.ExpectEquality(t, s.lcd.VCount(), 160)
	test.ExpectEquality(t, s.disp.Dispstat()&0x0001, 0x0001)
	test.ExpectEquality(t, s.rec.count(dma.VBlank), 1)
	test.ExpectEquality(t, s.rec.vblanks, 1)
	test.ExpectEquality(t, len(frames), 1)
	test.ExpectEquality(t, s.lcd.Frame(), 1)

	// no HBlank DMA during the vertical blank but the HBlank flag is still set
	s.sched.AdvanceTo(s.line(160) + 1006)
	test.ExpectEquality(t, s.rec.count(dma.HBlank), 160)
	test.ExpectEquality(t, s.disp.Dispstat()&0x0002, 0x0002)

	s.sched.AdvanceTo(s.line(227))
	test.ExpectEquality(t, s.disp.Dispstat()&0x0001, 0)

	s.sched.AdvanceTo(s.line(228))
	test.ExpectEquality(t, s.lcd.VCount(), 0)
	test.ExpectEquality(t, s.rec.scanlines, 160)

	s.sched.AdvanceTo(s.line(228) + s.line(160))
	test.ExpectEquality(t, len(frames), 2)
	test.ExpectEquality(t, frames[1], 2)
}

func TestVideoCaptureLines(t *testing.T) {
	s := newSystem(lcd.GBATiming)
	s.sched.AdvanceTo(s.line(3))
	test.ExpectEquality(t, len(s.rec.captures), 3)
	test.ExpectEquality(t, s.rec.captures[0], 1)
	test.ExpectEquality(t, s.rec.captures[2], 3)
}

func TestInterrupts(t *testing.T) {
	s := newSystem(lcd.GBATiming)

	// VCount setting of 5 and all three interrupts enabled
	s.io.Write16(0x04000004, 0x0538)
	test.ExpectEquality(t, s.disp.Dispstat(), 0x0538)

	s.sched.AdvanceTo(1006)
	test.ExpectEquality(t, s.io.Read16(0x04000202), 1<<interrupts.HBlank)

	// acknowledge
	s.io.Write16(0x04000202, 0xffff)
	test.ExpectEquality(t, s.io.Read16(0x04000202), 0)

	s.sched.AdvanceTo(s.line(5) - 1)
	test.ExpectEquality(t, s.io.Read16(0x04000202)&(1<<interrupts.VCount), 0)
	s.sched.AdvanceTo(s.line(5))
	test.ExpectEquality(t, s.io.Read16(0x04000202)&(1<<interrupts.VCount), 1<<interrupts.VCount)
	test.ExpectEquality(t, s.disp.Dispstat()&0x0004, 0x0004)

	s.sched.AdvanceTo(s.line(6))
	test.ExpectEquality(t, s.disp.Dispstat()&0x0004, 0)

	s.io.Write16(0x04000202, 0xffff)
	s.sched.AdvanceTo(s.line(160))
	test.ExpectEquality(t, s.io.Read16(0x04000202)&(1<<interrupts.VBlank), 1<<interrupts.VBlank)
}

func TestReadOnlyBits(t *testing.T) {
	s := newSystem(lcd.GBATiming)
	s.io.Write32(0x04000004, 0xffffffff)
	test.ExpectEquality(t, s.disp.Dispstat(), 0xff38)
	test.ExpectEquality(t, s.lcd.VCount(), 0)

	// the GBA has no ninth bit of the VCOUNT setting
	s.io.Write16(0x04000004, 0x0080)
	test.ExpectEquality(t, s.io.Read16(0x04000004)&0x0080, 0)

	s = newSystem(lcd.NDSTiming)
	s.io.Write32(0x04000004, 0xffffffff)
	test.ExpectEquality(t, s.disp.Dispstat(), 0xffb8)
}

func TestVideoRegisters(t *testing.T) {
	s := newSystem(lcd.GBATiming)
	s.io.Write16(0x04000000, 0x0403)
	test.ExpectEquality(t, s.io.Read16(0x04000000), 0x0403)
	test.DemandEquality(t, len(s.rec.writes), 3)
	test.ExpectEquality(t, s.rec.writes[0], 0x04000000)
	test.ExpectEquality(t, s.rec.writes[1], 0x0403)
	test.ExpectEquality(t, s.rec.writes[2], 0xffff)

	// BG0CNT is in the second half of the first word of the stored range
	s.io.Write16(0x0400000a, 0x1234)
	test.ExpectEquality(t, s.io.Read16(0x0400000a), 0x1234)
}

func TestNDSVCountHighBit(t *testing.T) {
	s := newSystem(lcd.NDSTiming)

	// setting of 0x105 is beyond the visible lines
	s.io.Write16(0x04000004, 0x05a0)
	s.sched.AdvanceTo(s.line(5))
	test.ExpectEquality(t, s.io.Read16(0x04000202)&(1<<interrupts.VCount), 0)
	s.sched.AdvanceTo(s.line(0x105))
	test.ExpectEquality(t, s.lcd.VCount(), 0x105)
	test.ExpectEquality(t, s.io.Read16(0x04000202)&(1<<interrupts.VCount), 1<<interrupts.VCount)
}

func TestSnapshot(t *testing.T) {
	s := newSystem(lcd.GBATiming)
	s.io.Write16(0x04000004, 0x0008)
	s.io.Write16(0x04000000, 0x0100)
	s.sched.AdvanceTo(s.line(10) + 5)

	sched := s.sched.Snapshot()
	snap := s.lcd.Snapshot()

	s.io.Write16(0x04000000, 0x0200)
	s.sched.AdvanceTo(s.line(200))
	test.ExpectEquality(t, s.lcd.VCount(), 200)

	s.sched.Plumb(sched)
	s.lcd.Plumb(snap)
	test.ExpectEquality(t, s.lcd.VCount(), 10)
	test.ExpectEquality(t, s.disp.Dispstat(), 0x0008)
	test.ExpectEquality(t, s.io.Read16(0x04000000), 0x0100)

	s.sched.AdvanceTo(s.line(11))
	test.ExpectEquality(t, s.lcd.VCount(), 11)
}
