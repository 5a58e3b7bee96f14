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

package audio

// size of each Direct Sound FIFO in bytes
const fifoSize = 32

// the FIFO requests more data when the number of samples falls to this level
const fifoRefill = 16

// FIFO is a Direct Sound sample buffer.
type FIFO struct {
	buf    [fifoSize]int8
	head   int
	length int
}

// Push a sample onto the FIFO. The oldest sample is overwritten if the FIFO
// is full.
func (f *FIFO) Push(s int8) {
	if f.length == fifoSize {
		f.head = (f.head + 1) % fifoSize
		f.length--
	}
	f.buf[(f.head+f.length)%fifoSize] = s
	f.length++
}

// Pop the oldest sample from the FIFO. Returns zero if the FIFO is empty.
func (f *FIFO) Pop() int8 {
	if f.length == 0 {
		return 0
	}
	s := f.buf[f.head]
	f.head = (f.head + 1) % fifoSize
	f.length--
	return s
}

// Len returns the number of samples in the FIFO.
func (f *FIFO) Len() int {
	return f.length
}

// NeedsRefill returns true if the FIFO has fallen to the refill level.
func (f *FIFO) NeedsRefill() bool {
	return f.length <= fifoRefill
}

// Reset empties the FIFO.
func (f *FIFO) Reset() {
	*f = FIFO{}
}

// FIFOState is the serialisable state of a FIFO.
type FIFOState struct {
	Samples []int8
}

func (f *FIFO) snapshot() FIFOState {
	s := FIFOState{Samples: make([]int8, 0, f.length)}
	for i := range f.length {
		s.Samples = append(s.Samples, f.buf[(f.head+i)%fifoSize])
	}
	return s
}

func (f *FIFO) plumb(s FIFOState) {
	f.Reset()
	for _, v := range s.Samples {
		f.Push(v)
	}
}
