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

package lcd

import (
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// payload values of LCD events
const (
	eventHBlank = iota
	eventLineEnd
)

// LCD drives the line counter and the displays.
type LCD struct {
	timing Timing
	sched  *scheduler.Scheduler

	vcount   int
	frame    uint64
	displays []*Display

	// OnFrame is called at the start of the vertical blank. can be nil
	OnFrame func(frame uint64)
}

// NewLCD is the preferred method of initialisation for the LCD type.
func NewLCD(timing Timing, sched *scheduler.Scheduler) *LCD {
	l := &LCD{
		timing: timing,
		sched:  sched,
	}

	sched.Register(scheduler.LCD, 0, func(ev scheduler.Event) {
		switch ev.Payload {
		case eventHBlank:
			l.hblank(ev.Due)
		case eventLineEnd:
			l.lineEnd(ev.Due)
		}
	})

	return l
}

// AddDisplay creates a new display for a CPU. The dma argument can be nil.
func (l *LCD) AddDisplay(irq Interrupter, dma DMA, renderer Renderer) *Display {
	if renderer == nil {
		renderer = NullRenderer{}
	}
	d := &Display{
		lcd:      l,
		irq:      irq,
		dma:      dma,
		renderer: renderer,
	}
	l.displays = append(l.displays, d)
	return d
}

// Timing returns the timing of the LCD.
func (l *LCD) Timing() Timing {
	return l.timing
}

// VCount returns the current scanline.
func (l *LCD) VCount() int {
	return l.vcount
}

// Frame returns the number of frames completed.
func (l *LCD) Frame() uint64 {
	return l.frame
}

// Reset the LCD to the start of the first scanline and schedule the events
// for that line.
func (l *LCD) Reset() {
	l.vcount = 0
	l.frame = 0
	for _, d := range l.displays {
		d.dispstat = 0
		for _, s := range d.video {
			s.Reset()
		}
	}
	l.sched.Cancel(scheduler.LCD, 0)
	l.schedule(l.sched.Now())
}

// schedule the events of the line that starts at the cycle
func (l *LCD) schedule(lineStart uint64) {
	l.sched.Schedule(lineStart+uint64(l.timing.HBlankStart), scheduler.LCD, 0, eventHBlank)
	l.sched.Schedule(lineStart+uint64(l.timing.CyclesPerLine()), scheduler.LCD, 0, eventLineEnd)
}

func (l *LCD) hblank(_ uint64) {
	for _, d := range l.displays {
		d.hblank(l.vcount)
	}
}

func (l *LCD) lineEnd(due uint64) {
	l.vcount++
	if l.vcount >= l.timing.Lines {
		l.vcount = 0
	}

	for _, d := range l.displays {
		d.lineStart(l.vcount)
	}

	if l.vcount == l.timing.VisibleLines {
		l.frame++
		if l.OnFrame != nil {
			l.OnFrame(l.frame)
		}
	}

	l.schedule(due)
}

// DisplayState is the serialisable state of a Display.
type DisplayState struct {
	Dispstat uint16
	Video    [][]uint32
}

// State is the serialisable state of the LCD.
type State struct {
	VCount   int
	Frame    uint64
	Displays []DisplayState
}

// Snapshot returns a copy of the LCD state. The pending line events are part
// of the scheduler state.
func (l *LCD) Snapshot() *State {
	s := &State{
		VCount: l.vcount,
		Frame:  l.frame,
	}
	for _, d := range l.displays {
		ds := DisplayState{Dispstat: d.dispstat}
		for _, v := range d.video {
			ds.Video = append(ds.Video, v.Words())
		}
		s.Displays = append(s.Displays, ds)
	}
	return s
}

// Plumb restores a previous snapshot.
func (l *LCD) Plumb(s *State) {
	l.vcount = s.VCount
	l.frame = s.Frame
	for i, d := range l.displays {
		if i >= len(s.Displays) {
			break
		}
		d.dispstat = s.Displays[i].Dispstat
		for j, v := range d.video {
			if j < len(s.Displays[i].Video) {
				v.Restore(s.Displays[i].Video[j])
			}
		}
	}
}

// ensure Display implements the memory.Registers interface
var _ memory.Registers = (*Display)(nil)
