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

package hardware

import (
	"context"
	"fmt"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/govern"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/audio"
	"github.com/jetsetilly/gopheradvance/hardware/cartridge"
	"github.com/jetsetilly/gopheradvance/hardware/gba"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/nds"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
)

// Kind of console.
type Kind int

// List of valid Kind values.
const (
	GBA Kind = iota
	NDS
)

func (k Kind) String() string {
	switch k {
	case GBA:
		return "GBA"
	case NDS:
		return "NDS"
	}
	return "unknown console"
}

// Files are the images used to create a console. BIOS images that are nil are
// replaced with stubs, in which case the guest is always started without the
// BIOS boot sequence.
type Files struct {
	// the cartridge image or the card image
	Image []byte

	// backup memory type of a cartridge. not used by the NDS
	SaveType cartridge.SaveType

	// the BIOS image of the GBA
	BIOS []byte

	// the BIOS images of the NDS
	BIOS9 []byte
	BIOS7 []byte
}

// Snapshot is the state of a console. Only the field for the kind of console
// that created the snapshot is set.
type Snapshot struct {
	GBA *gba.State
	NDS *nds.State
}

// Console is the interface to both kinds of console.
type Console interface {
	fmt.Stringer
	Kind() Kind

	Reset() error
	Step() error
	RunFrame(ctx context.Context) error
	Run(ctx context.Context, continueCheck func() (govern.State, error)) error

	// returns true if the main CPU halted before the limit number of cycles
	RunUntilHalt(limit uint64) (bool, error)

	FrameCount() uint64

	// the number of frames per second of the real hardware
	RefreshRate() float64

	SetButtons(pressed keypad.Button)

	Snapshot() *Snapshot
	Plumb(s *Snapshot) error

	// the main CPU and its bus. for the NDS this is the ARM9 and the bus
	// doesn't include the TCMs
	CPU() *arm.ARM
	Bus() *memory.Bus

	// backup memory. nil if there is none
	Backup() memory.Backup
}

// NewConsole is the preferred method of initialisation for the Console type.
// The renderer, mixer and sink can all be nil. The mixer and sink are not used
// by the NDS.
func NewConsole(kind Kind, prefs *preferences.Preferences, files Files,
	renderer lcd.Renderer, mixer audio.Mixer, sink audio.SampleSink) (Console, error) {

	if renderer == nil {
		renderer = lcd.NullRenderer{}
	}

	switch kind {
	case GBA:
		cart, err := cartridge.Load(files.Image, files.SaveType)
		if err != nil {
			return nil, err
		}
		g, err := gba.NewGBA(prefs, cart, files.BIOS, renderer, mixer, sink)
		if err != nil {
			return nil, err
		}
		return &gbaConsole{GBA: g}, nil

	case NDS:
		n, err := nds.NewNDS(prefs, files.Image, files.BIOS9, files.BIOS7, renderer)
		if err != nil {
			return nil, err
		}
		return &ndsConsole{NDS: n}, nil
	}

	return nil, curated.Errorf("hardware: %v", fmt.Sprintf("unsupported console kind (%d)", kind))
}

// the master clock rates in cycles per second
const (
	gbaClock = 16777216
	ndsClock = 67027964
)

type gbaConsole struct {
	*gba.GBA
}

func (c *gbaConsole) Kind() Kind {
	return GBA
}

func (c *gbaConsole) RefreshRate() float64 {
	return gbaClock / float64(c.LCD.Timing().CyclesPerFrame())
}

func (c *gbaConsole) Reset() error {
	c.GBA.Reset()
	return nil
}

func (c *gbaConsole) Step() error {
	_, err := c.GBA.Step()
	return err
}

func (c *gbaConsole) Snapshot() *Snapshot {
	return &Snapshot{GBA: c.GBA.Snapshot()}
}

func (c *gbaConsole) Plumb(s *Snapshot) error {
	if s == nil || s.GBA == nil {
		return curated.Errorf("hardware: %v", "snapshot is not for a GBA")
	}
	return c.GBA.Plumb(s.GBA)
}

func (c *gbaConsole) CPU() *arm.ARM {
	return c.GBA.CPU
}

func (c *gbaConsole) Bus() *memory.Bus {
	return c.GBA.Mem
}

func (c *gbaConsole) Backup() memory.Backup {
	return c.GBA.Cart.Backup
}

type ndsConsole struct {
	*nds.NDS
}

func (c *ndsConsole) Kind() Kind {
	return NDS
}

func (c *ndsConsole) RefreshRate() float64 {
	return ndsClock / float64(c.LCD.Timing().CyclesPerFrame())
}

func (c *ndsConsole) Step() error {
	_, err := c.NDS.Step()
	return err
}

func (c *ndsConsole) RunUntilHalt(limit uint64) (bool, error) {
	return c.NDS.RunUntilHalt(nds.CPU9, limit)
}

func (c *ndsConsole) Snapshot() *Snapshot {
	return &Snapshot{NDS: c.NDS.Snapshot()}
}

func (c *ndsConsole) Plumb(s *Snapshot) error {
	if s == nil || s.NDS == nil {
		return curated.Errorf("hardware: %v", "snapshot is not for an NDS")
	}
	return c.NDS.Plumb(s.NDS)
}

func (c *ndsConsole) CPU() *arm.ARM {
	return c.NDS.ARM9
}

func (c *ndsConsole) Bus() *memory.Bus {
	return c.NDS.Mem9
}

func (c *ndsConsole) Backup() memory.Backup {
	return nil
}
