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

package test_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/gopheradvance/test"
)

func TestRingWriter(t *testing.T) {
	r, err := test.NewRingWriter(8)
	test.DemandSuccess(t, err)

	fmt.Fprint(r, "abc")
	test.ExpectEquality(t, r.String(), "abc")

	fmt.Fprint(r, "defgh")
	test.ExpectEquality(t, r.String(), "abcdefgh")

	fmt.Fprint(r, "ij")
	test.ExpectEquality(t, r.String(), "cdefghij")

	fmt.Fprint(r, "0123456789")
	test.ExpectEquality(t, r.String(), "23456789")

	r.Reset()
	test.ExpectEquality(t, r.String(), "")
}
