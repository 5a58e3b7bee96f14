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

package ipc

// the number of words in each direction
const fifoSize = 16

type fifo struct {
	data [fifoSize]uint32
	head int
	n    int
}

func (f *fifo) empty() bool {
	return f.n == 0
}

func (f *fifo) full() bool {
	return f.n == fifoSize
}

func (f *fifo) push(v uint32) {
	f.data[(f.head+f.n)%fifoSize] = v
	f.n++
}

func (f *fifo) pop() uint32 {
	v := f.data[f.head]
	f.head = (f.head + 1) % fifoSize
	f.n--
	return v
}

func (f *fifo) front() uint32 {
	return f.data[f.head]
}

func (f *fifo) clear() {
	f.head = 0
	f.n = 0
}

// contents in queue order
func (f *fifo) words() []uint32 {
	w := make([]uint32, f.n)
	for i := range f.n {
		w[i] = f.data[(f.head+i)%fifoSize]
	}
	return w
}

func (f *fifo) restore(w []uint32) {
	f.clear()
	for _, v := range w {
		if f.full() {
			return
		}
		f.push(v)
	}
}
