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

package nds

import (
	"context"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/govern"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// The CPU values for the RunUntilHalt() function.
const (
	CPU9 = 0
	CPU7 = 1
)

// Step executes one instruction on the CPU that is furthest behind, or
// advances the scheduler to the next event if both CPUs are halted. Returns
// the CPU that was stepped or -1 if neither was.
func (n *NDS) Step() (int, error) {
	if n.IRQ9.Halted() && n.IRQ7.Halted() && n.Sched.NextEvent() == scheduler.Never {
		return -1, curated.Errorf("nds: %v", "both CPUs are halted and there are no pending events")
	}

	switch n.Interleave.Step() {
	case n.core9:
		return CPU9, nil
	case n.core7:
		return CPU7, nil
	}
	return -1, nil
}

// RunFrame runs the emulation until the end of the current frame. The context
// is checked periodically.
func (n *NDS) RunFrame(ctx context.Context) error {
	frame := n.LCD.Frame()

	var brake int
	for n.LCD.Frame() == frame {
		if _, err := n.Step(); err != nil {
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

// RunUntilHalt steps the emulation until the CPU (CPU9 or CPU7) is no longer
// running at the end of a step, or until the limit number of master cycles
// have passed. Returns true if the CPU halted.
func (n *NDS) RunUntilHalt(cpu int, limit uint64) (bool, error) {
	irq := n.IRQ9
	if cpu == CPU7 {
		irq = n.IRQ7
	}

	start := n.Sched.Now()
	for n.Sched.Now()-start < limit {
		if _, err := n.Step(); err != nil {
			return false, err
		}
		if irq.Mode() != interrupts.Running {
			return true, nil
		}
	}

	return false, nil
}

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every step and can be nil.
func (n *NDS) Run(ctx context.Context, continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error
	var brake int

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running, govern.Stepping:
			if _, err := n.Step(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("nds: unsupported emulation state (%d) in Run() function", state)
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
