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

package interrupts

import (
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// Layout of the interrupt registers.
type Layout int

// List of valid Layout values.
const (
	// IE 0x04000200 (16 bit), IF 0x04000202 (16 bit), IME 0x04000208
	LayoutGBA Layout = iota

	// IME 0x04000208, IE 0x04000210 (32 bit), IF 0x04000214 (32 bit)
	LayoutNDS
)

// Register addresses.
const (
	regIEIF   = 0x04000200
	regIME    = 0x04000208
	regIE     = 0x04000210
	regIF     = 0x04000214
	regSystem = 0x04000300
)

// the interrupt sources that wake the CPU from stop mode
const stopWake = 1<<Keypad | 1<<GamePak | 1<<Serial

// HaltMode of the CPU.
type HaltMode int

// List of valid HaltMode values.
const (
	Running HaltMode = iota
	Halt
	Stop
)

func (m HaltMode) String() string {
	switch m {
	case Halt:
		return "halt"
	case Stop:
		return "stop"
	}
	return "running"
}

// Controller is the interrupt controller of one CPU.
type Controller struct {
	layout Layout
	owner  int
	sched  *scheduler.Scheduler

	ie   uint32
	iff  uint32
	ime  bool
	mask uint32

	// the state of the interrupt line as of the most recent Interrupt event
	line bool

	halt    HaltMode
	postflg uint8

	// HaltWritable is false for CPUs that can't halt through HALTCNT (the
	// ARM9 of the dual-CPU system)
	HaltWritable bool
}

// NewController is the preferred method of initialisation for the Controller
// type. The owner value identifies the CPU in scheduler events.
func NewController(layout Layout, owner int, sched *scheduler.Scheduler) *Controller {
	c := &Controller{
		layout:       layout,
		owner:        owner,
		sched:        sched,
		HaltWritable: true,
	}

	switch layout {
	case LayoutGBA:
		c.mask = 0x3fff
	case LayoutNDS:
		c.mask = 0x01ff3fff
	}

	sched.Register(scheduler.Interrupt, owner, func(_ scheduler.Event) {
		c.refresh()
	})

	return c
}

func (c *Controller) String() string {
	return fmt.Sprintf("IE=%08x IF=%08x IME=%v %s", c.ie, c.iff, c.ime, c.halt)
}

// Map the controller's registers on the IO device.
func (c *Controller) Map(io *memory.IO) {
	switch c.layout {
	case LayoutGBA:
		io.Map(regIEIF, regIEIF+3, c)
	case LayoutNDS:
		io.Map(regIE, regIF+3, c)
	}
	io.Map(regIME, regIME+3, c)
	io.Map(regSystem, regSystem+3, c)
}

// Reset the controller to its power-on state.
func (c *Controller) Reset() {
	c.ie = 0
	c.iff = 0
	c.ime = false
	c.line = false
	c.halt = Running
	c.postflg = 0
}

// Request an interrupt from the source.
func (c *Controller) Request(src Source) {
	c.iff |= (1 << src) & c.mask
	c.checkpoint()
}

// schedule an Interrupt event at the current cycle
func (c *Controller) checkpoint() {
	c.sched.Schedule(c.sched.Now(), scheduler.Interrupt, c.owner, 0)
}

func (c *Controller) refresh() {
	c.line = c.pending()
}

func (c *Controller) pending() bool {
	return c.ime && c.ie&c.iff != 0
}

// Line returns the state of the interrupt line to the CPU. The CPU should
// take the interrupt if the line is asserted and its I bit is clear.
func (c *Controller) Line() bool {
	return c.line
}

// Pending returns the interrupt sources that are both enabled and requested.
func (c *Controller) Pending() uint32 {
	return c.ie & c.iff
}

// Halt the CPU until an interrupt is pending.
func (c *Controller) Halt() {
	c.halt = Halt
}

// Halted returns true if the CPU is halted or stopped. The CPU is woken if
// the condition for leaving the halt mode is met.
func (c *Controller) Halted() bool {
	switch c.halt {
	case Halt:
		if c.pending() {
			c.halt = Running
		}
	case Stop:
		if c.ie&c.iff&stopWake != 0 {
			c.halt = Running
		}
	}
	return c.halt != Running
}

// Mode returns the current halt mode.
func (c *Controller) Mode() HaltMode {
	return c.halt
}

// Read32 implements the memory.Registers interface.
func (c *Controller) Read32(addr uint32) uint32 {
	switch addr {
	case regIEIF:
		if c.layout == LayoutGBA {
			return c.ie | c.iff<<16
		}
	case regIME:
		if c.ime {
			return 1
		}
		return 0
	case regIE:
		return c.ie
	case regIF:
		return c.iff
	case regSystem:
		return uint32(c.postflg)
	}
	return 0
}

// Write32 implements the memory.Registers interface.
func (c *Controller) Write32(addr uint32, val uint32, mask uint32) {
	switch addr {
	case regIEIF:
		if c.layout != LayoutGBA {
			return
		}
		c.ie = memory.Merge(c.ie, val, mask&0xffff) & c.mask
		c.iff &^= (val & mask) >> 16
	case regIME:
		if mask&1 == 1 {
			c.ime = val&1 == 1
		}
	case regIE:
		c.ie = memory.Merge(c.ie, val, mask) & c.mask
	case regIF:
		c.iff &^= val & mask
	case regSystem:
		if mask&0xff != 0 {
			c.postflg = uint8(val) & 0x01
		}
		if mask&0xff00 != 0 && c.HaltWritable {
			c.writeHaltcnt(uint8(val >> 8))
		}
		return
	default:
		return
	}
	c.checkpoint()
}

func (c *Controller) writeHaltcnt(v uint8) {
	switch c.layout {
	case LayoutGBA:
		if v&0x80 == 0x80 {
			c.halt = Stop
		} else {
			c.halt = Halt
		}
	case LayoutNDS:
		switch v >> 6 {
		case 2:
			c.halt = Halt
		case 3:
			c.halt = Stop
		}
	}
}

// State is the serialisable state of the controller.
type State struct {
	IE      uint32
	IF      uint32
	IME     bool
	Line    bool
	Halt    HaltMode
	PostFlg uint8
}

// Snapshot returns a copy of the controller state.
func (c *Controller) Snapshot() *State {
	return &State{
		IE:      c.ie,
		IF:      c.iff,
		IME:     c.ime,
		Line:    c.line,
		Halt:    c.halt,
		PostFlg: c.postflg,
	}
}

// Plumb restores a previous snapshot.
func (c *Controller) Plumb(s *State) {
	c.ie = s.IE
	c.iff = s.IF
	c.ime = s.IME
	c.line = s.Line
	c.halt = s.Halt
	c.postflg = s.PostFlg
}
