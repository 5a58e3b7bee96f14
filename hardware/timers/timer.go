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

import "fmt"

// bits in the control register
const (
	ctrlPrescale = 0x03
	ctrlCascade  = 0x04
	ctrlIRQ      = 0x40
	ctrlEnable   = 0x80
	ctrlMask     = ctrlPrescale | ctrlCascade | ctrlIRQ | ctrlEnable
)

// the number of clock cycles for each prescale setting
var prescales = [4]uint64{1, 64, 256, 1024}

// Timer is a single timer unit.
type Timer struct {
	index   int
	counter uint16
	reload  uint16
	control uint8
}

func (tm *Timer) String() string {
	return fmt.Sprintf("timer%d: %04x (reload %04x) %02x", tm.index, tm.counter, tm.reload, tm.control)
}

// Enabled returns true if the timer is running.
func (tm *Timer) Enabled() bool {
	return tm.control&ctrlEnable == ctrlEnable
}

// Cascade returns true if the timer is in cascade mode. The cascade bit of
// timer 0 is ignored.
func (tm *Timer) Cascade() bool {
	return tm.index > 0 && tm.control&ctrlCascade == ctrlCascade
}

// IRQ returns true if the timer requests an interrupt on overflow.
func (tm *Timer) IRQ() bool {
	return tm.control&ctrlIRQ == ctrlIRQ
}

// Prescale returns the number of timer clock cycles for every increment of
// the counter.
func (tm *Timer) Prescale() uint64 {
	return prescales[tm.control&ctrlPrescale]
}

// Counter returns the current value of the counter. The value is only
// accurate immediately after the timer has been synchronised.
func (tm *Timer) Counter() uint16 {
	return tm.counter
}

// Tick increments the counter by the number of ticks, reloading the counter
// on overflow. Returns the number of overflows.
func (tm *Timer) Tick(ticks uint64) int {
	toOverflow := 0x10000 - uint64(tm.counter)
	if ticks < toOverflow {
		tm.counter += uint16(ticks)
		return 0
	}

	ticks -= toOverflow
	period := 0x10000 - uint64(tm.reload)
	tm.counter = tm.reload + uint16(ticks%period)
	return 1 + int(ticks/period)
}

// ticksToOverflow returns the number of ticks before the next overflow.
func (tm *Timer) ticksToOverflow() uint64 {
	return 0x10000 - uint64(tm.counter)
}
