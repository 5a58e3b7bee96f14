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
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/arm/architecture"
	"github.com/jetsetilly/gopheradvance/hardware/audio"
	"github.com/jetsetilly/gopheradvance/hardware/bios"
	"github.com/jetsetilly/gopheradvance/hardware/cartridge"
	"github.com/jetsetilly/gopheradvance/hardware/dma"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/hardware/timers"
	"github.com/jetsetilly/gopheradvance/logger"
)

// the initial register values after the BIOS boot sequence
const (
	fastBootSVC   = 0x03007fe0
	fastBootIRQ   = 0x03007fa0
	fastBootSYS   = 0x03007f00
	fastBootEntry = originWS0
)

// GBA is the single-CPU system.
type GBA struct {
	Prefs *preferences.Preferences

	Sched   *scheduler.Scheduler
	CPU     *arm.ARM
	Mem     *memory.Bus
	IO      *memory.IO
	IRQ     *interrupts.Controller
	Timers  *timers.Timers
	DMA     *dma.DMA
	LCD     *lcd.LCD
	Display *lcd.Display
	Audio   *audio.Audio
	Keypad  *keypad.Keypad
	Waitcnt *Waitcnt
	Cart    *cartridge.Cartridge

	bios     []byte
	biosStub bool

	ewram   []byte
	iwram   []byte
	palette []byte
	vram    []byte
	oam     []byte
}

// NewGBA creates a new single-CPU system and resets it. The bios argument can
// be nil, in which case a stub BIOS is used and the system always boots the
// cartridge directly. The renderer must not be nil but the mixer and sink
// can be.
func NewGBA(prefs *preferences.Preferences, cart *cartridge.Cartridge, biosData []byte,
	renderer lcd.Renderer, mixer audio.Mixer, sink audio.SampleSink) (*GBA, error) {

	img, stub, err := bios.Load(bios.GBA, biosData)
	if err != nil {
		return nil, err
	}
	if stub {
		logger.Log(logger.Allow, "gba", "using stub BIOS")
	}

	g := &GBA{
		Prefs:    prefs,
		Cart:     cart,
		bios:     img,
		biosStub: stub,
		ewram:    make([]byte, ewramSize),
		iwram:    make([]byte, iwramSize),
		palette:  make([]byte, paletteSize),
		vram:     make([]byte, vramSize),
		oam:      make([]byte, oamSize),
		Sched:    scheduler.NewScheduler(),
		IO:       memory.NewIO("gba", originIO),
		Waitcnt:  newWaitcnt(),
	}

	g.IO.LogUnmapped = func() bool {
		return g.Prefs.LogUnmappedIO.Get().(bool)
	}

	g.Mem, err = memory.NewBus("gba", 0, g.regions()...)
	if err != nil {
		return nil, err
	}
	g.IO.OpenBus = g.Mem.OpenBus

	g.IRQ = interrupts.NewController(interrupts.LayoutGBA, 0, g.Sched)
	g.IRQ.Map(g.IO)

	g.DMA = dma.NewDMA(dma.GBA, g.Sched, 0, g.Mem, g.IRQ)
	g.DMA.Stall = g.Sched.Elapse
	g.DMA.Map(g.IO)

	g.Audio = audio.NewAudio(mixer, sink, g.DMA)
	g.Audio.Map(g.IO)

	g.Timers = timers.NewTimers(g.Sched, g.IRQ, 0, 1)
	g.Timers.OnOverflow = g.Audio.TimerOverflow
	g.Timers.Map(g.IO)

	g.LCD = lcd.NewLCD(lcd.GBATiming, g.Sched)
	g.Display = g.LCD.AddDisplay(g.IRQ, g.DMA, renderer)
	g.Display.Map(g.IO, [2]uint32{0x04000000, 0x04000057})

	g.Keypad = keypad.NewKeypad(g.IRQ)
	g.Keypad.Map(g.IO)
	g.IO.Map(regWaitcnt, regWaitcnt+3, g.Waitcnt)

	g.CPU = arm.NewARM(architecture.NewMap(architecture.ARMv4T, "ARM7TDMI"), prefs, g.Mem, g.IRQ)

	g.Reset()

	return g, nil
}

func (g *GBA) String() string {
	return fmt.Sprintf("GBA: %s (%s)", g.Cart.Title, g.Cart.GameCode)
}

// FastBoot returns true if the system starts the cartridge without the BIOS
// boot sequence.
func (g *GBA) FastBoot() bool {
	return g.biosStub || g.Prefs.FastBoot.Get().(bool)
}

// Reset the system to its power-on state. The backup memory of the cartridge
// is not changed.
func (g *GBA) Reset() {
	g.Sched.Reset()

	clear(g.ewram)
	clear(g.iwram)
	clear(g.palette)
	clear(g.vram)
	clear(g.oam)

	g.Waitcnt.set(0)
	g.IRQ.Reset()
	g.Timers.Reset()
	g.DMA.Reset()
	g.LCD.Reset()
	g.Audio.Reset()
	g.Keypad.Reset()
	g.CPU.Reset()

	if g.FastBoot() {
		g.CPU.SetBankedRegister(arm.ModeSVC, arm.SP, fastBootSVC)
		g.CPU.SetBankedRegister(arm.ModeIRQ, arm.SP, fastBootIRQ)
		g.CPU.SetCPSR(uint32(arm.ModeSYS))
		g.CPU.SetRegister(arm.SP, fastBootSYS)
		g.CPU.SetRegister(arm.PC, fastBootEntry)
	}
}

// SetButtons sets the buttons that are pressed on the keypad.
func (g *GBA) SetButtons(pressed keypad.Button) {
	g.Keypad.SetButtons(pressed)
}

// FrameCount returns the number of frames completed since the last reset.
func (g *GBA) FrameCount() uint64 {
	return g.LCD.Frame()
}
