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

package gba

import (
	"context"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/govern"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// Step executes one CPU instruction, or advances the scheduler to the next
// event if the CPU is halted. Returns the number of cycles that have passed.
func (g *GBA) Step() (int, error) {
	if g.IRQ.Halted() {
		next := g.Sched.NextEvent()
		if next == scheduler.Never {
			return 0, curated.Errorf("gba: %v", "CPU is halted and there are no pending events")
		}
		now := g.Sched.Now()
		g.Sched.AdvanceTo(next)
		return int(g.Sched.Now() - now), nil
	}

	c, _ := g.CPU.Step()
	g.Sched.Elapse(c)
	g.Sched.Dispatch()

	return c, nil
}

// RunFrame runs the emulation until the end of the current frame. The context
// is checked periodically.
func (g *GBA) RunFrame(ctx context.Context) error {
	frame := g.LCD.Frame()

	var brake int
	for g.LCD.Frame() == frame {
		if _, err := g.Step(); err != nil {
			return err
		}

		brake++
		if brake >= govern.PerformanceBrake {
			brake = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	return nil
}

// RunUntilHalt steps the emulation until the CPU is in the halt or stop
// state at the end of a step, or until the limit number of cycles have
// passed. Returns true if the CPU halted.
//
// A CPU that is halted when the function is called must wake and then halt
// again, unless no interrupt is pending in which case the first step leaves
// it halted.
func (g *GBA) RunUntilHalt(limit uint64) (bool, error) {
	var elapsed uint64
	for elapsed < limit {
		c, err := g.Step()
		if err != nil {
			return false, err
		}
		elapsed += uint64(c)

		if g.IRQ.Mode() != interrupts.Running {
			return true, nil
		}
	}

	return false, nil
}

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every step and can be nil.
func (g *GBA) Run(ctx context.Context, continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error
	var brake int

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running, govern.Stepping:
			if _, err := g.Step(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("gba: unsupported emulation state (%d) in Run() function", state)
		}

		brake++
		if brake >= govern.PerformanceBrake {
			brake = 0
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}
