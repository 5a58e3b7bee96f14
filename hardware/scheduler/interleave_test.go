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

package scheduler_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/test"
)

type testCore struct {
	name   string
	cycles int
	halted bool
	log    *[]string
}

func (c *testCore) Step() int {
	*c.log = append(*c.log, c.name)
	return c.cycles
}

func (c *testCore) Halted() bool {
	return c.halted
}

func TestInterleave(t *testing.T) {
	s := scheduler.NewScheduler()
	il := scheduler.NewInterleave(s)

	var log []string
	arm9 := &testCore{name: "9", cycles: 1, log: &log}
	arm7 := &testCore{name: "7", cycles: 1, log: &log}
	il.AddCore(arm9, 1)
	il.AddCore(arm7, 2)

	for range 6 {
		il.Step()
	}

	// ARM9 wins the tie at zero. ARM7 cycles count double
	test.ExpectEquality(t, len(log), 6)
	expected := []string{"9", "7", "9", "9", "7", "9"}
	for i := range expected {
		test.ExpectEquality(t, log[i], expected[i], i)
	}
	test.ExpectEquality(t, il.LocalTime(0), uint64(4))
	test.ExpectEquality(t, il.LocalTime(1), uint64(4))
	test.ExpectEquality(t, s.Now(), uint64(4))
}

func TestInterleaveAllHalted(t *testing.T) {
	s := scheduler.NewScheduler()
	il := scheduler.NewInterleave(s)

	var log []string
	arm9 := &testCore{name: "9", cycles: 1, halted: true, log: &log}
	arm7 := &testCore{name: "7", cycles: 1, halted: true, log: &log}
	il.AddCore(arm9, 1)
	il.AddCore(arm7, 2)

	var woken bool
	s.Register(scheduler.Interrupt, 0, func(_ scheduler.Event) {
		woken = true
		arm9.halted = false
	})
	s.Schedule(1000, scheduler.Interrupt, 0, 0)

	test.ExpectEquality(t, il.Step(), -1)
	test.ExpectSuccess(t, woken)
	test.ExpectEquality(t, s.Now(), uint64(1000))
	test.ExpectEquality(t, il.LocalTime(1), uint64(1000))

	test.ExpectEquality(t, il.Step(), 0)
	test.ExpectEquality(t, il.LocalTime(0), uint64(1001))

	// no events and every core halted
	arm9.halted = true
	test.ExpectEquality(t, il.Step(), -1)
	test.ExpectEquality(t, s.Now(), uint64(1001))
}

func TestInterleaveStall(t *testing.T) {
	s := scheduler.NewScheduler()
	il := scheduler.NewInterleave(s)

	var log []string
	arm9 := &testCore{name: "9", cycles: 1, log: &log}
	arm7 := &testCore{name: "7", cycles: 1, log: &log}
	il.AddCore(arm9, 1)
	il.AddCore(arm7, 2)

	il.Stall(0, 10)
	for range 3 {
		il.Step()
	}
	expected := []string{"7", "7", "7"}
	for i := range expected {
		test.ExpectEquality(t, log[i], expected[i], i)
	}
}
