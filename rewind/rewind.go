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

// Package rewind keeps a history of console snapshots so that the emulation
// can be returned to an earlier frame. A snapshot is taken at the end of every
// Freq frames. Returning to a frame between snapshots plumbs in the nearest
// earlier snapshot and runs the emulation forward to the requested frame.
package rewind

import (
	"context"
	"fmt"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware"
)

// Console is the part of the hardware.Console interface required by the
// rewind system.
type Console interface {
	FrameCount() uint64
	RunFrame(ctx context.Context) error
	Snapshot() *hardware.Snapshot
	Plumb(s *hardware.Snapshot) error
}

// State is a single entry in the history.
type State struct {
	frame uint64
	snap  *hardware.Snapshot
}

func (s State) String() string {
	return fmt.Sprintf("frame %d", s.frame)
}

// Rewind contains a history of machine states for the emulation.
type Rewind struct {
	con   Console
	Prefs *Preferences

	// circular array of snapshotted entries. the length of the array is
	// decided by the MaxEntries preference at the time of the last Reset()
	entries []*State
	start   int
	end     int
}

// NewRewind is the preferred method of initialisation for the Rewind type. The
// prefs argument can be nil, in which case the default preferences are used.
func NewRewind(con Console, prefs *Preferences) *Rewind {
	if prefs == nil {
		prefs = DefaultPreferences()
	}
	r := &Rewind{
		con:   con,
		Prefs: prefs,
	}
	r.Reset()
	return r
}

// Reset removes all entries and takes a snapshot of the current state. This
// should be called whenever the console has been reset.
func (r *Rewind) Reset() {
	n := r.Prefs.MaxEntries.Get().(int)
	if n < 2 {
		n = 2
	}

	// one element of the circular array is always unused
	r.entries = make([]*State, n+1)
	r.start = 0
	r.end = 0
	r.append()
}

// Len returns the number of entries in the history.
func (r *Rewind) Len() int {
	if r.end >= r.start {
		return r.end - r.start
	}
	return len(r.entries) - r.start + r.end
}

func (r *Rewind) last() int {
	e := r.end - 1
	if e < 0 {
		e += len(r.entries)
	}
	return e
}

func (r *Rewind) append() {
	r.entries[r.end] = &State{
		frame: r.con.FrameCount(),
		snap:  r.con.Snapshot(),
	}

	r.end++
	if r.end >= len(r.entries) {
		r.end = 0
	}

	// push start index along
	if r.end == r.start {
		r.entries[r.start] = nil
		r.start++
		if r.start >= len(r.entries) {
			r.start = 0
		}
	}
}

// RecordFrame should be called at the end of every frame. A snapshot is taken
// if the frame number is a multiple of the Freq preference. Entries for frames
// at or after the current frame, left by an earlier call to GotoFrame(), are
// forgotten first.
func (r *Rewind) RecordFrame() {
	fn := r.con.FrameCount()

	// the timeline has diverged from the history
	for r.Len() > 1 && r.entries[r.last()].frame >= fn {
		r.entries[r.last()] = nil
		r.end = r.last()
	}

	if r.entries[r.last()].frame >= fn {
		return
	}

	freq := max(r.Prefs.Freq.Get().(int), 1)
	if fn%uint64(freq) != 0 {
		return
	}

	r.append()
}

// Frames of the current state of the rewind system.
type Frames struct {
	Start   uint64
	End     uint64
	Current uint64
}

// GetFrames returns the frame numbers of the earliest and latest entries in
// the history and the frame number of the console.
func (r *Rewind) GetFrames() Frames {
	return Frames{
		Start:   r.entries[r.start].frame,
		End:     r.entries[r.last()].frame,
		Current: r.con.FrameCount(),
	}
}

// plumb the entry into the console and run the emulation until the frame
func (r *Rewind) plumb(idx int, frame uint64) error {
	err := r.con.Plumb(r.entries[idx].snap)
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	for r.con.FrameCount() < frame {
		err := r.con.RunFrame(context.Background())
		if err != nil {
			return curated.Errorf("rewind: %v", err)
		}
	}

	return nil
}

// GotoLast sets the console to the state of the latest entry.
func (r *Rewind) GotoLast() error {
	idx := r.last()
	return r.plumb(idx, r.entries[idx].frame)
}

// GotoFrame searches the history for the frame number. Requests outside of the
// history plumb in the nearest entry. Returns the frame the console is at after
// the search.
func (r *Rewind) GotoFrame(frame uint64) (uint64, error) {
	if frame <= r.entries[r.start].frame {
		return r.entries[r.start].frame, r.plumb(r.start, r.entries[r.start].frame)
	}

	e := r.last()
	if frame >= r.entries[e].frame {
		return r.entries[e].frame, r.plumb(e, r.entries[e].frame)
	}

	// binary search for the latest entry at or before the frame. the search is
	// over the logical positions of the circular array
	lo := 0
	hi := r.Len() - 1
	for lo < hi {
		m := (lo + hi + 1) / 2
		if r.at(m).frame <= frame {
			lo = m
		} else {
			hi = m - 1
		}
	}

	idx := (r.start + lo) % len(r.entries)
	return frame, r.plumb(idx, frame)
}

// the entry at the logical position in the history
func (r *Rewind) at(i int) *State {
	return r.entries[(r.start+i)%len(r.entries)]
}
