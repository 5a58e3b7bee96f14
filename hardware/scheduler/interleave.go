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

// Core is a CPU core that can be run by Interleave.
type Core interface {
	// Step executes one instruction, or one exception entry, and returns
	// the number of cycles consumed in the core's own clock
	Step() int

	// Halted returns true if the core is halted. the core is expected to wake
	// itself, the next time Halted() is called, once the reason for the halt
	// is gone
	Halted() bool
}

type interleaved struct {
	core  Core
	scale uint64
	local uint64
}

// Interleave runs more than one CPU core against a single scheduler. The
// clock of the scheduler is the master clock and each core has a local time
// measured in master clock cycles.
//
// The core with the lowest local time is always the next to be stepped,
// with the first core added winning ties. After every step the scheduler is
// advanced to the lowest local time of the running cores. A halted core does
// not hold back the clock: its local time follows the scheduler, and if every
// core is halted the scheduler jumps to the next event.
type Interleave struct {
	sched *Scheduler
	cores []interleaved
}

// NewInterleave is the preferred method of initialisation for the Interleave
// type.
func NewInterleave(sched *Scheduler) *Interleave {
	return &Interleave{
		sched: sched,
	}
}

// AddCore adds a core to the interleave. The scale value is the number of
// master cycles in one of the core's cycles. The index of the core is
// returned.
func (il *Interleave) AddCore(c Core, scale int) int {
	il.cores = append(il.cores, interleaved{
		core:  c,
		scale: uint64(max(scale, 1)),
		local: il.sched.Now(),
	})
	return len(il.cores) - 1
}

// Stall adds master cycles to the local time of a core. Used when a bus
// master other than the core (ie. DMA) holds the bus.
func (il *Interleave) Stall(core int, cycles int) {
	il.cores[core].local += uint64(cycles)
}

// LocalTime returns the local time of the core in master cycles.
func (il *Interleave) LocalTime(core int) uint64 {
	return il.cores[core].local
}

// Reset the local time of every core to the scheduler's current time.
func (il *Interleave) Reset() {
	for i := range il.cores {
		il.cores[i].local = il.sched.Now()
	}
}

// Step the core with the lowest local time. Returns the index of the core
// stepped or -1 if every core was halted and the scheduler was advanced to
// the next event instead.
func (il *Interleave) Step() int {
	best := il.earliest()

	if best == -1 {
		next := il.sched.NextEvent()
		if next == Never {
			// nothing will ever wake the cores
			return -1
		}
		il.sched.AdvanceTo(next)

		// every core was halted up to this point so any core woken by the
		// events starts from now
		now := il.sched.Now()
		for i := range il.cores {
			il.cores[i].local = max(il.cores[i].local, now)
		}
		return -1
	}

	c := &il.cores[best]

	// events up to the core's local time must be seen before the core runs
	il.sched.AdvanceTo(c.local)

	c.local += uint64(c.core.Step()) * c.scale

	if e := il.earliest(); e != -1 {
		il.sched.AdvanceTo(il.cores[e].local)
	}
	il.follow()

	return best
}

// earliest returns the running core with the lowest local time.
func (il *Interleave) earliest() int {
	best := -1
	for i := range il.cores {
		if il.cores[i].core.Halted() {
			continue
		}
		if best == -1 || il.cores[i].local < il.cores[best].local {
			best = i
		}
	}
	return best
}

// follow moves the local time of halted cores up to the scheduler.
func (il *Interleave) follow() {
	now := il.sched.Now()
	for i := range il.cores {
		if il.cores[i].core.Halted() {
			il.cores[i].local = max(il.cores[i].local, now)
		}
	}
}

// InterleaveState is the serialisable state of the Interleave type.
type InterleaveState struct {
	Local []uint64
}

// Snapshot returns the local times of the cores.
func (il *Interleave) Snapshot() *InterleaveState {
	s := &InterleaveState{}
	for _, c := range il.cores {
		s.Local = append(s.Local, c.local)
	}
	return s
}

// Plumb restores the local times of the cores.
func (il *Interleave) Plumb(state *InterleaveState) {
	for i := range il.cores {
		if i < len(state.Local) {
			il.cores[i].local = state.Local[i]
		}
	}
}
