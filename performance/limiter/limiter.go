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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FPSLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(59.73)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		con.RunFrame(ctx)
//	}
package limiter

import (
	"time"

	"github.com/jetsetilly/gopheradvance/curated"
)

// FPSLimiter will trigger at the requested number of frames per second.
type FPSLimiter struct {
	secondsPerFrame time.Duration
	next            time.Time
}

// NewFPSLimiter is the preferred method of initialisation for FPSLimiter type.
func NewFPSLimiter(framesPerSecond float64) (*FPSLimiter, error) {
	lim := &FPSLimiter{}
	if err := lim.SetLimit(framesPerSecond); err != nil {
		return nil, err
	}
	return lim, nil
}

// SetLimit changes the rate at which the FPSLimiter triggers.
func (lim *FPSLimiter) SetLimit(framesPerSecond float64) error {
	if framesPerSecond <= 0 {
		return curated.Errorf("limiter: %v", "frames per second must be positive")
	}
	lim.secondsPerFrame = time.Duration(float64(time.Second) / framesPerSecond)
	lim.next = time.Now()
	return nil
}

// Wait will block until the next trigger. If the caller has fallen more than
// a frame behind the limiter catches up rather than triggering repeatedly.
func (lim *FPSLimiter) Wait() {
	now := time.Now()
	if d := lim.next.Sub(now); d > 0 {
		time.Sleep(d)
		lim.next = lim.next.Add(lim.secondsPerFrame)
		return
	}
	if now.Sub(lim.next) > lim.secondsPerFrame {
		lim.next = now
	}
	lim.next = lim.next.Add(lim.secondsPerFrame)
}

// HasWaited will return true if the trigger time has already passed and false
// if it is still yet to happen. The next trigger is scheduled if the return
// value is true.
func (lim *FPSLimiter) HasWaited() bool {
	if time.Now().Before(lim.next) {
		return false
	}
	lim.next = lim.next.Add(lim.secondsPerFrame)
	return true
}
