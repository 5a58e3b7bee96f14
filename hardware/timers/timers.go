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

package timers

import (
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// NumTimers is the number of timer units of a CPU.
const NumTimers = 4

// the address of the first timer register
const regBase = 0x04000100

// Interrupter is implemented by the interrupt controller.
type Interrupter interface {
	Request(src interrupts.Source)
}

// Timers is the set of timer units of a CPU.
type Timers struct {
	sched *scheduler.Scheduler
	irq   Interrupter

	// the owner value of the first timer in scheduler events
	ownerBase int

	// number of scheduler cycles for every timer clock cycle
	clockScale uint64

	timers [NumTimers]Timer

	// the scheduler cycle the counter of each timer was last brought up to
	// date and the number of scheduler cycles since the last increment
	lastSync [NumTimers]uint64
	sub      [NumTimers]uint64

	// OnOverflow is called whenever a timer overflows. can be nil
	OnOverflow func(timer int)
}

// NewTimers is the preferred method of initialisation for the Timers type.
// The clockScale value is the number of scheduler cycles for every cycle of
// the timer clock.
func NewTimers(sched *scheduler.Scheduler, irq Interrupter, ownerBase int, clockScale int) *Timers {
	tms := &Timers{
		sched:      sched,
		irq:        irq,
		ownerBase:  ownerBase,
		clockScale: uint64(max(clockScale, 1)),
	}

	for i := range tms.timers {
		tms.timers[i].index = i
		sched.Register(scheduler.TimerOverflow, ownerBase+i, func(ev scheduler.Event) {
			tms.sync(i, ev.Due)
			tms.reschedule(i)
		})
	}

	return tms
}

// Map the timer registers on the IO device.
func (tms *Timers) Map(io *memory.IO) {
	io.Map(regBase, regBase+NumTimers*4-1, tms)
}

// Reset all timers to their power-on state.
func (tms *Timers) Reset() {
	for i := range tms.timers {
		tms.timers[i].counter = 0
		tms.timers[i].reload = 0
		tms.timers[i].control = 0
		tms.lastSync[i] = tms.sched.Now()
		tms.sub[i] = 0
		tms.sched.Cancel(scheduler.TimerOverflow, tms.ownerBase+i)
	}
}

// Timer returns the numbered timer. The counter is synchronised first.
func (tms *Timers) Timer(i int) *Timer {
	tms.sync(i, tms.sched.Now())
	return &tms.timers[i]
}

// period is the number of scheduler cycles for one increment of the timer
func (tms *Timers) period(i int) uint64 {
	return tms.timers[i].Prescale() * tms.clockScale
}

// free-running timers are enabled and not in cascade mode
func (tms *Timers) freeRunning(i int) bool {
	return tms.timers[i].Enabled() && !tms.timers[i].Cascade()
}

// sync brings the counter of a free-running timer up to date with the
// cycle. overflows are processed.
func (tms *Timers) sync(i int, now uint64) {
	if !tms.freeRunning(i) {
		tms.lastSync[i] = now
		return
	}
	if now <= tms.lastSync[i] {
		return
	}

	p := tms.period(i)
	total := tms.sub[i] + (now - tms.lastSync[i])
	tms.lastSync[i] = now
	tms.sub[i] = total % p

	n := tms.timers[i].Tick(total / p)
	for range n {
		tms.overflow(i)
	}
}

// overflow of timer i. the counter has already been reloaded
func (tms *Timers) overflow(i int) {
	if tms.timers[i].IRQ() {
		tms.irq.Request(interrupts.TimerSource(i))
	}

	if tms.OnOverflow != nil {
		tms.OnOverflow(i)
	}

	if i+1 < NumTimers {
		next := &tms.timers[i+1]
		if next.Enabled() && next.Cascade() {
			for range next.Tick(1) {
				tms.overflow(i + 1)
			}
		}
	}
}

// reschedule the overflow event of a free-running timer.
func (tms *Timers) reschedule(i int) {
	owner := tms.ownerBase + i
	tms.sched.Cancel(scheduler.TimerOverflow, owner)
	if !tms.freeRunning(i) {
		return
	}
	due := tms.lastSync[i] + tms.timers[i].ticksToOverflow()*tms.period(i) - tms.sub[i]
	tms.sched.Schedule(due, scheduler.TimerOverflow, owner, 0)
}

// Read32 implements the memory.Registers interface.
func (tms *Timers) Read32(addr uint32) uint32 {
	i := int(addr-regBase) >> 2
	tms.sync(i, tms.sched.Now())
	tm := &tms.timers[i]
	return uint32(tm.counter) | uint32(tm.control)<<16
}

// Write32 implements the memory.Registers interface.
func (tms *Timers) Write32(addr uint32, val uint32, mask uint32) {
	i := int(addr-regBase) >> 2
	tm := &tms.timers[i]

	if mask&0xffff != 0 {
		tm.reload = uint16(memory.Merge(uint32(tm.reload), val, mask))
	}

	if mask&0x00ff0000 == 0 {
		return
	}

	now := tms.sched.Now()
	tms.sync(i, now)

	wasEnabled := tm.Enabled()
	tm.control = uint8(val>>16) & ctrlMask

	if !wasEnabled && tm.Enabled() {
		tm.counter = tm.reload
		tms.sub[i] = 0
	}
	tms.lastSync[i] = now

	tms.reschedule(i)
}

// State is the serialisable state of the timers.
type State struct {
	Counter  [NumTimers]uint16
	Reload   [NumTimers]uint16
	Control  [NumTimers]uint8
	LastSync [NumTimers]uint64
	Sub      [NumTimers]uint64
}

// Snapshot returns a copy of the timer state. Pending overflow events are
// part of the scheduler state.
func (tms *Timers) Snapshot() *State {
	s := &State{
		LastSync: tms.lastSync,
		Sub:      tms.sub,
	}
	for i, tm := range tms.timers {
		s.Counter[i] = tm.counter
		s.Reload[i] = tm.reload
		s.Control[i] = tm.control
	}
	return s
}

// Plumb restores a previous snapshot.
func (tms *Timers) Plumb(s *State) {
	tms.lastSync = s.LastSync
	tms.sub = s.Sub
	for i := range tms.timers {
		tms.timers[i].counter = s.Counter[i]
		tms.timers[i].reload = s.Reload[i]
		tms.timers[i].control = s.Control[i]
	}
}
