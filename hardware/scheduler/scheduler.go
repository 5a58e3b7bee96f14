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

package scheduler

import (
	"math"
	"sort"
)

// Never is returned by NextEvent() when no event is pending.
const Never = math.MaxUint64

type handlerKey struct {
	kind  Kind
	owner int
}

// Scheduler keeps the event queue and the current cycle.
type Scheduler struct {
	now uint64

	// sorted by dispatch order. the number of pending events is always small
	// so insertion into a sorted slice is fast enough
	events []Event
	seq    uint64

	handlers map[handlerKey]Handler
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{
		events:   make([]Event, 0, 32),
		handlers: make(map[handlerKey]Handler),
	}
}

// Reset empties the event queue and sets the clock to zero. Registered
// handlers are kept.
func (s *Scheduler) Reset() {
	s.now = 0
	s.seq = 0
	s.events = s.events[:0]
}

// Register the handler for events of the kind and owner. Registering a
// second handler for the same kind and owner replaces the first.
func (s *Scheduler) Register(kind Kind, owner int, h Handler) {
	s.handlers[handlerKey{kind: kind, owner: owner}] = h
}

// Now returns the current cycle.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Schedule an event. An event due in the past is due now.
func (s *Scheduler) Schedule(due uint64, kind Kind, owner int, payload uint32) {
	due = max(due, s.now)

	ev := Event{
		Due:     due,
		Kind:    kind,
		Owner:   owner,
		Payload: payload,
		seq:     s.seq,
	}
	s.seq++

	i := sort.Search(len(s.events), func(i int) bool {
		return ev.before(s.events[i])
	})
	s.events = append(s.events, Event{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = ev
}

// Cancel all pending events of the kind and owner.
func (s *Scheduler) Cancel(kind Kind, owner int) {
	n := 0
	for _, ev := range s.events {
		if ev.Kind == kind && ev.Owner == owner {
			continue
		}
		s.events[n] = ev
		n++
	}
	s.events = s.events[:n]
}

// Pending returns true if there is an event of the kind and owner in the
// queue.
func (s *Scheduler) Pending(kind Kind, owner int) bool {
	for _, ev := range s.events {
		if ev.Kind == kind && ev.Owner == owner {
			return true
		}
	}
	return false
}

// NextEvent returns the cycle of the earliest pending event. Returns Never if
// there are no pending events.
func (s *Scheduler) NextEvent() uint64 {
	if len(s.events) == 0 {
		return Never
	}
	return s.events[0].Due
}

// Elapse advances the clock without dispatching any events.
func (s *Scheduler) Elapse(cycles int) {
	s.now += uint64(cycles)
}

// Dispatch every event that is due at or before the current cycle.
func (s *Scheduler) Dispatch() {
	for len(s.events) > 0 && s.events[0].Due <= s.now {
		s.fire()
	}
}

// AdvanceTo dispatches every event due at or before the target cycle, in
// order, moving the clock forward to each event as it is dispatched. The
// clock is then set to the target.
//
// The clock never moves backwards. If a handler elapses time beyond the
// target then the clock is left there.
func (s *Scheduler) AdvanceTo(target uint64) {
	for len(s.events) > 0 && s.events[0].Due <= target {
		s.now = max(s.now, s.events[0].Due)
		s.fire()
	}
	s.now = max(s.now, target)
}

// fire removes the first event from the queue and calls its handler.
func (s *Scheduler) fire() {
	ev := s.events[0]
	copy(s.events, s.events[1:])
	s.events = s.events[:len(s.events)-1]

	if h, ok := s.handlers[handlerKey{kind: ev.Kind, owner: ev.Owner}]; ok {
		h(ev)
	}
}

// State is the serialisable state of the scheduler.
type State struct {
	Now    uint64
	Seq    uint64
	Events []Event
}

// Snapshot returns a copy of the scheduler state. Handlers are not part of
// the state.
func (s *Scheduler) Snapshot() *State {
	return &State{
		Now:    s.now,
		Seq:    s.seq,
		Events: append([]Event(nil), s.events...),
	}
}

// Plumb restores a previous snapshot.
func (s *Scheduler) Plumb(state *State) {
	s.now = state.Now
	s.seq = state.Seq
	s.events = append(s.events[:0], state.Events...)
}
