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

package performance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/govern"
	"github.com/jetsetilly/gopheradvance/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the period at the start of the check that isn't measured, to allow the
// frame rate to settle
const leadTime = 2 * time.Second

// Check the performance of the emulator running on the console.
//
// Emulation will run for the specified duration and will create a cpu, memory
// profile, a trace (or a combination of those) as defined by the Profile
// argument.
func Check(output io.Writer, profile Profile, con hardware.Console, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	startFrame := con.FrameCount()

	runner := func() error {
		// signals false when the lead time has elapsed and true when the
		// measurement period has elapsed
		timerChan := make(chan bool, 1)

		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		// the continue check is called every step. checking the timerChan is
		// relatively expensive so it's only done every PerformanceBrake steps
		var performanceBrake int

		return con.Run(context.Background(), func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < govern.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}
				startFrame = con.FrameCount()
			default:
			}

			return govern.Running, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	numFrames := con.FrameCount() - startFrame
	fps, accuracy := CalcFPS(con.RefreshRate(), numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
