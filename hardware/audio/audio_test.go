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

package audio_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/audio"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/test"
)

type recorder struct {
	requests []uint32
	samples  [2][]int8
	writes   int
}

func (r *recorder) FIFORequest(addr uint32) {
	r.requests = append(r.requests, addr)
}

func (r *recorder) PushSample(channel int, sample int8) {
	r.samples[channel] = append(r.samples[channel], sample)
}

func (r *recorder) RegisterWrite(_ uint32, _ uint32, _ uint32) {
	r.writes++
}

func TestFIFO(t *testing.T) {
	var f audio.FIFO
	test.ExpectEquality(t, f.Pop(), 0)
	test.ExpectEquality(t, f.NeedsRefill(), true)

	for i := range 40 {
		f.Push(int8(i))
	}
	test.ExpectEquality(t, f.Len(), 32)
	test.ExpectEquality(t, f.NeedsRefill(), false)

	// the oldest eight samples were overwritten
	test.ExpectEquality(t, f.Pop(), 8)
	test.ExpectEquality(t, f.Pop(), 9)
	test.ExpectEquality(t, f.Len(), 30)

	for range 13 {
		f.Pop()
	}
	test.ExpectEquality(t, f.Len(), 17)
	test.ExpectEquality(t, f.NeedsRefill(), false)
	f.Pop()
	test.ExpectEquality(t, f.NeedsRefill(), true)

	f.Reset()
	test.ExpectEquality(t, f.Len(), 0)
}

func newAudio() (*audio.Audio, *memory.IO, *recorder) {
	rec := &recorder{}
	io := memory.NewIO("test", 0x04000000)
	a := audio.NewAudio(rec, rec, rec)
	a.Map(io)
	return a, io, rec
}

func TestFIFOWrites(t *testing.T) {
	a, io, _ := newAudio()

	io.Write32(0x040000a0, 0x04030201)
	test.ExpectEquality(t, a.FIFO(0).Len(), 4)
	io.Write16(0x040000a6, 0xfffe)
	test.ExpectEquality(t, a.FIFO(1).Len(), 2)
	io.Write8(0x040000a5, 0x7f)
	test.ExpectEquality(t, a.FIFO(1).Len(), 3)

	test.ExpectEquality(t, a.FIFO(0).Pop(), 1)
	test.ExpectEquality(t, a.FIFO(1).Pop(), -2)
	test.ExpectEquality(t, a.FIFO(1).Pop(), -1)
	test.ExpectEquality(t, a.FIFO(1).Pop(), 0x7f)

	// write-only
	test.ExpectEquality(t, io.Read32(0x040000a0), 0)
}

func TestTimerOverflow(t *testing.T) {
	a, io, rec := newAudio()

	// FIFO A on timer 0, FIFO B on timer 1
	io.Write16(0x04000082, 0x4000)

	for range 5 {
		io.Write32(0x040000a0, 0x04030201)
	}
	io.Write32(0x040000a4, 0x80808080)

	a.TimerOverflow(0)
	test.DemandEquality(t, len(rec.samples[0]), 1)
	test.ExpectEquality(t, rec.samples[0][0], 1)
	test.ExpectEquality(t, len(rec.samples[1]), 0)
	test.ExpectEquality(t, a.Sample(0), 1)

	// 19 samples remain so no refill is requested
	test.ExpectEquality(t, len(rec.requests), 0)

	a.TimerOverflow(0)
	a.TimerOverflow(0)
	a.TimerOverflow(0)
	test.ExpectEquality(t, len(rec.requests), 1)
	test.ExpectEquality(t, rec.requests[0], 0x040000a0)

	a.TimerOverflow(1)
	test.ExpectEquality(t, rec.samples[1][0], -128)
	test.ExpectEquality(t, rec.requests[1], 0x040000a4)

	// timers 2 and 3 never drive the FIFOs
	a.TimerOverflow(2)
	test.ExpectEquality(t, len(rec.samples[0]), 4)
}

func TestSoundCnt(t *testing.T) {
	a, io, rec := newAudio()

	io.Write32(0x040000a0, 0x04030201)
	io.Write32(0x040000a4, 0x04030201)

	// reset FIFO A only. the reset bits read back as zero
	io.Write16(0x04000082, 0x0c00)
	test.ExpectEquality(t, a.FIFO(0).Len(), 0)
	test.ExpectEquality(t, a.FIFO(1).Len(), 4)
	test.ExpectEquality(t, io.Read16(0x04000082), 0x0400)
	test.ExpectEquality(t, rec.writes, 1)

	// other sound registers are stored and forwarded
	io.Write16(0x04000084, 0x0080)
	test.ExpectEquality(t, io.Read16(0x04000084), 0x0080)
	test.ExpectEquality(t, rec.writes, 2)
}

func TestSnapshot(t *testing.T) {
	a, io, _ := newAudio()
	io.Write32(0x040000a0, 0x04030201)
	io.Write16(0x04000082, 0x0400)

	s := a.Snapshot()
	a.Reset()
	test.ExpectEquality(t, a.FIFO(0).Len(), 0)

	a.Plumb(s)
	test.ExpectEquality(t, a.FIFO(0).Len(), 4)
	test.ExpectEquality(t, a.FIFO(0).Pop(), 1)
	test.ExpectEquality(t, io.Read16(0x04000082), 0x0400)
}
