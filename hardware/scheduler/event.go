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

import "fmt"

// Kind of event. The order of the values is the dispatch priority for events
// due on the same cycle.
type Kind int

// List of valid Kind values.
const (
	TimerOverflow Kind = iota
	DMA
	Interrupt
	LCD
	numKinds
)

func (k Kind) String() string {
	switch k {
	case TimerOverflow:
		return "timer overflow"
	case DMA:
		return "dma"
	case Interrupt:
		return "interrupt"
	case LCD:
		return "lcd"
	}
	return "unknown event"
}

// Event is a single entry in the event queue. Owner distinguishes between
// components of the same Kind (the timer number, the CPU index, etc.). The
// meaning of the Payload depends on the Kind.
type Event struct {
	Due     uint64
	Kind    Kind
	Owner   int
	Payload uint32

	// insertion order. breaks ties between events that are otherwise equal
	seq uint64
}

func (ev Event) String() string {
	return fmt.Sprintf("%s [%d] @ %d (%#x)", ev.Kind, ev.Owner, ev.Due, ev.Payload)
}

// before returns true if ev should be dispatched before o.
func (ev Event) before(o Event) bool {
	if ev.Due != o.Due {
		return ev.Due < o.Due
	}
	if ev.Kind != o.Kind {
		return ev.Kind < o.Kind
	}
	if ev.Owner != o.Owner {
		return ev.Owner < o.Owner
	}
	return ev.seq < o.seq
}

// Handler is called when an event is dispatched.
type Handler func(ev Event)
