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

package performance_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/performance"
	"github.com/jetsetilly/gopheradvance/test"
)

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(60.0, 300, 5.0)
	test.ExpectApproximate(t, fps, 60.0, 0.0001)
	test.ExpectApproximate(t, accuracy, 100.0, 0.0001)

	fps, accuracy = performance.CalcFPS(60.0, 150, 5.0)
	test.ExpectApproximate(t, fps, 30.0, 0.0001)
	test.ExpectApproximate(t, accuracy, 50.0, 0.0001)
}

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("cpu, trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "CPU,TRACE")

	p, err = performance.ParseProfileString("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfileString("disk")
	test.ExpectFailure(t, err)
}

func TestRunProfilerNone(t *testing.T) {
	var ran bool
	err := performance.RunProfiler(performance.ProfileNone, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)
}
