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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopheradvance/logger"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	w.Reset()
	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// fewer entries
	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	// and no entries
	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Logf(logger.Allow, "IO", "unmapped read %08x", 0x04000500)
	log.Logf(logger.Allow, "IO", "unmapped read %08x", 0x04000500)
	log.Logf(logger.Allow, "IO", "unmapped read %08x", 0x04000500)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "IO: unmapped read 04000500 (repeat x3)\n")
}

func TestPermission(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Log(logger.Deny, "test", "should not appear")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")

	w.Reset()
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")

	w.Reset()
	log.Log(logger.Allow, "d", "4")
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "d: 4\n")
}

func TestColorizer(t *testing.T) {
	w := &strings.Builder{}
	c := logger.NewColorizer(w)
	c.Write([]byte("first\nsecond"))
	test.ExpectEquality(t, w.String(), "first\n\033[2;31msecond\n\033[0m")
}
