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

package test

import (
	"strings"
	"sync"
)

// CompareWriter is an implementation of the io.Writer interface. It should be
// used to capture output and to compare with predefined strings. It is safe
// to write to from more than one goroutine.
type CompareWriter struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (cw *CompareWriter) Write(p []byte) (int, error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.buf.Write(p)
}

// Clear empties the write buffer.
func (cw *CompareWriter) Clear() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.buf.Reset()
}

// Compare buffered output with predefined/example string.
func (cw *CompareWriter) Compare(s string) bool {
	return cw.String() == s
}

func (cw *CompareWriter) String() string {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.buf.String()
}
