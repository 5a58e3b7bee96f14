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

type recorder struct {
	events []scheduler.Event
	at     []uint64
}

func (r *recorder) register(s *scheduler.Scheduler, kind scheduler.Kind, owner int) {
	s.Register(kind, owner, func(ev scheduler.Event) {
		r.events = append(r.events, ev)
		r.at = append(r.at, s.Now())
	})
}

func TestOrdering(t *testing.T) {
	s := scheduler.NewScheduler()
	r := &recorder{}
	r.register(s, scheduler.TimerOverflow, 0)
	r.register(s, scheduler.TimerOverflow, 1)
	r.register(s, scheduler.DMA, 0)
	r.register(s, scheduler.Interrupt, 0)

	// scheduled in reverse order of expected dispatch
	s.Schedule(10, scheduler.Interrupt, 0, 1)
	s.Schedule(10, scheduler.DMA, 0, 2)
	s.Schedule(10, scheduler.TimerOverflow, 1, 3)
	s.Schedule(10, scheduler.TimerOverflow, 0, 4)
	s.Schedule(5, scheduler.Interrupt, 0, 5)

	test.ExpectEquality(t, s.NextEvent(), uint64(5))

	s.AdvanceTo(20)
	test.ExpectEquality(t, s.Now(), uint64(20))
	test.DemandEquality(t, len(r.events), 5)

	expected := []uint32{5, 4, 3, 2, 1}
	for i, ev := range r.events {
		test.ExpectEquality(t, ev.Payload, expected[i], i)
	}

	// the clock is at the due cycle when the handler is called
	test.ExpectEquality(t, r.at[0], uint64(5))
	test.ExpectEquality(t, r.at[1], uint64(10))

	test.ExpectEquality(t, s.NextEvent(), uint64(scheduler.Never))
}

func TestInsertionOrder(t *testing.T) {
	s := scheduler.NewScheduler()
	r := &recorder{}
	r.register(s, scheduler.DMA, 0)

	for i := range 4 {
		s.Schedule(3, scheduler.DMA, 0, uint32(i))
	}
	s.AdvanceTo(3)
	test.DemandEquality(t, len(r.events), 4)
	for i, ev := range r.events {
		test.ExpectEquality(t, ev.Payload, uint32(i))
	}
}

func TestScheduleInPast(t *testing.T) {
	s := scheduler.NewScheduler()
	r := &recorder{}
	r.register(s, scheduler.LCD, 0)

	s.Elapse(100)
	s.Schedule(50, scheduler.LCD, 0, 0)
	test.ExpectEquality(t, s.NextEvent(), uint64(100))

	s.Dispatch()
	test.DemandEquality(t, len(r.events), 1)
	test.ExpectEquality(t, r.events[0].Due, uint64(100))
}

func TestCancel(t *testing.T) {
	s := scheduler.NewScheduler()
	r := &recorder{}
	r.register(s, scheduler.TimerOverflow, 0)
	r.register(s, scheduler.TimerOverflow, 1)

	s.Schedule(10, scheduler.TimerOverflow, 0, 0)
	s.Schedule(10, scheduler.TimerOverflow, 1, 0)
	s.Cancel(scheduler.TimerOverflow, 0)
	test.ExpectFailure(t, s.Pending(scheduler.TimerOverflow, 0))
	test.ExpectSuccess(t, s.Pending(scheduler.TimerOverflow, 1))

	s.AdvanceTo(10)
	test.DemandEquality(t, len(r.events), 1)
	test.ExpectEquality(t, r.events[0].Owner, 1)
}

func TestHandlerReschedules(t *testing.T) {
	s := scheduler.NewScheduler()

	var count int
	s.Register(scheduler.LCD, 0, func(ev scheduler.Event) {
		count++
		s.Schedule(ev.Due+10, scheduler.LCD, 0, 0)
	})
	s.Schedule(10, scheduler.LCD, 0, 0)

	s.AdvanceTo(100)
	test.ExpectEquality(t, count, 10)
	test.ExpectEquality(t, s.NextEvent(), uint64(110))
}

func TestHandlerElapses(t *testing.T) {
	s := scheduler.NewScheduler()

	s.Register(scheduler.DMA, 0, func(ev scheduler.Event) {
		s.Elapse(50)
	})
	s.Schedule(10, scheduler.DMA, 0, 0)

	s.AdvanceTo(20)
	test.ExpectEquality(t, s.Now(), uint64(60))
}

func TestSnapshot(t *testing.T) {
	s := scheduler.NewScheduler()
	r := &recorder{}
	r.register(s, scheduler.Interrupt, 0)

	s.Schedule(10, scheduler.Interrupt, 0, 1)
	s.Schedule(20, scheduler.Interrupt, 0, 2)
	s.Elapse(5)

	snap := s.Snapshot()
	s.AdvanceTo(30)
	test.ExpectEquality(t, len(r.events), 2)

	s.Plumb(snap)
	test.ExpectEquality(t, s.Now(), uint64(5))
	test.ExpectEquality(t, s.NextEvent(), uint64(10))
	s.AdvanceTo(30)
	test.ExpectEquality(t, len(r.events), 4)
	test.ExpectEquality(t, r.events[2].Payload, uint32(1))
}
