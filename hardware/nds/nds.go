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
	"fmt"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/arm/architecture"
	"github.com/jetsetilly/gopheradvance/hardware/bios"
	"github.com/jetsetilly/gopheradvance/hardware/cartridge"
	"github.com/jetsetilly/gopheradvance/hardware/dma"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/ipc"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/maths"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
	"github.com/jetsetilly/gopheradvance/hardware/timers"
	"github.com/jetsetilly/gopheradvance/logger"
)

// the owner values of the per-CPU components in scheduler events
const (
	owner9 = 0
	owner7 = 1
)

// the number of master clock cycles in one ARM7 cycle. the timers run at
// the same rate as the ARM7
const arm7Scale = 2

// the video registers of the two graphics engines
var (
	engineA = [2]uint32{0x04000000, 0x0400006f}
	engineB = [2]uint32{0x04001000, 0x0400106f}
)

// NDS is the dual-CPU system.
type NDS struct {
	Prefs *preferences.Preferences

	Sched      *scheduler.Scheduler
	Interleave *scheduler.Interleave

	ARM9 *arm.ARM
	ARM7 *arm.ARM

	// the main buses. the ARM9 CPU sees Mem9 through the TCMs
	Mem9 *memory.Bus
	Mem7 *memory.Bus
	IO9  *memory.IO
	IO7  *memory.IO

	IRQ9    *interrupts.Controller
	IRQ7    *interrupts.Controller
	Timers9 *timers.Timers
	Timers7 *timers.Timers
	DMA9    *dma.DMA
	DMA7    *dma.DMA
	Keypad9 *keypad.Keypad
	Keypad7 *keypad.Keypad

	IPC   *ipc.IPC
	Maths *maths.Maths
	WRAM  *SharedWRAM

	LCD      *lcd.LCD
	Display9 *lcd.Display
	Display7 *lcd.Display

	// nil if the system was created without a card image
	Header *cartridge.Header
	image  []byte

	tcm *tcmBus

	bios9    []byte
	bios7    []byte
	biosStub bool

	mainRAM  []byte
	arm7WRAM []byte
	palette  []byte
	lcdcVRAM []byte
	oam      []byte
	arm7VRAM []byte

	// VRAMCNT_A to VRAMCNT_D and VRAMCNT_H to VRAMCNT_I. VRAMCNT_E to
	// VRAMCNT_G are in the SharedWRAM type
	vramcnt [2]*memory.Store
	powcnt  *memory.Store
	rcnt    *extKeyIn

	core9 int
	core7 int
}

// core adapts a CPU and its interrupt controller for the scheduler's
// Interleave type
type core struct {
	cpu *arm.ARM
	irq *interrupts.Controller
}

func (c core) Step() int {
	n, _ := c.cpu.Step()
	return n
}

func (c core) Halted() bool {
	return c.irq.Halted()
}

// NewNDS creates a new dual-CPU system and resets it. The image is the card
// image and can be nil if both BIOS images are supplied and fast boot is not
// required. The renderer must not be nil.
func NewNDS(prefs *preferences.Preferences, image []byte, bios9Data []byte, bios7Data []byte, renderer lcd.Renderer) (*NDS, error) {
	img9, stub9, err := bios.Load(bios.NDS9, bios9Data)
	if err != nil {
		return nil, err
	}
	img7, stub7, err := bios.Load(bios.NDS7, bios7Data)
	if err != nil {
		return nil, err
	}
	if stub9 || stub7 {
		logger.Log(logger.Allow, "nds", "using stub BIOS")
	}

	n := &NDS{
		Prefs:    prefs,
		Sched:    scheduler.NewScheduler(),
		IO9:      memory.NewIO("nds9", originIO),
		IO7:      memory.NewIO("nds7", originIO),
		WRAM:     &SharedWRAM{notify: renderer.RegisterWrite},
		image:    image,
		bios9:    img9,
		bios7:    img7,
		biosStub: stub9 || stub7,
		mainRAM:  make([]byte, mainRAMSize),
		arm7WRAM: make([]byte, arm7WRAMSize),
		palette:  make([]byte, paletteSize),
		lcdcVRAM: make([]byte, lcdcVRAMSize),
		oam:      make([]byte, oamSize),
		arm7VRAM: make([]byte, arm7VRAMSize),
	}

	if image != nil {
		n.Header, err = cartridge.ParseHeader(image)
		if err != nil {
			return nil, err
		}
		logger.Logf(logger.Allow, "nds", "card %q (%s)", n.Header.Title, n.Header.GameCode)
		logger.Logf(logger.Allow, "nds", "arm9 %s", n.Header.ARM9)
		logger.Logf(logger.Allow, "nds", "arm7 %s", n.Header.ARM7)
	} else if n.FastBoot() {
		return nil, curated.Errorf("nds: %v", "a card image is required to boot without the BIOS")
	}

	logUnmapped := func() bool {
		return n.Prefs.LogUnmappedIO.Get().(bool)
	}
	n.IO9.LogUnmapped = logUnmapped
	n.IO7.LogUnmapped = logUnmapped

	n.Mem9, err = memory.NewBus("nds9", 0, n.arm9Regions()...)
	if err != nil {
		return nil, err
	}
	n.Mem7, err = memory.NewBus("nds7", 0, n.arm7Regions()...)
	if err != nil {
		return nil, err
	}
	n.IO9.OpenBus = n.Mem9.OpenBus
	n.IO7.OpenBus = n.Mem7.OpenBus

	n.IRQ9 = interrupts.NewController(interrupts.LayoutNDS, owner9, n.Sched)
	n.IRQ9.HaltWritable = false
	n.IRQ9.Map(n.IO9)
	n.IRQ7 = interrupts.NewController(interrupts.LayoutNDS, owner7, n.Sched)
	n.IRQ7.Map(n.IO7)

	n.Timers9 = timers.NewTimers(n.Sched, n.IRQ9, 0, arm7Scale)
	n.Timers9.Map(n.IO9)
	n.Timers7 = timers.NewTimers(n.Sched, n.IRQ7, timers.NumTimers, arm7Scale)
	n.Timers7.Map(n.IO7)

	n.Interleave = scheduler.NewInterleave(n.Sched)

	n.DMA9 = dma.NewDMA(dma.NDS9, n.Sched, owner9, n.Mem9, n.IRQ9)
	n.DMA9.Stall = func(cycles int) {
		n.Interleave.Stall(n.core9, cycles*n.arm9Scale())
	}
	n.DMA9.Map(n.IO9)
	n.DMA7 = dma.NewDMA(dma.NDS7, n.Sched, owner7, n.Mem7, n.IRQ7)
	n.DMA7.Stall = func(cycles int) {
		n.Interleave.Stall(n.core7, cycles*arm7Scale)
	}
	n.DMA7.Map(n.IO7)

	n.IPC = ipc.NewIPC(n.IRQ9, n.IRQ7)
	n.IPC.Endpoint(ipc.ARM9).Map(n.IO9)
	n.IPC.Endpoint(ipc.ARM7).Map(n.IO7)

	n.Maths = maths.NewMaths()
	n.Maths.Map(n.IO9)

	n.LCD = lcd.NewLCD(lcd.NDSTiming, n.Sched)
	n.Display9 = n.LCD.AddDisplay(n.IRQ9, n.DMA9, renderer)
	n.Display9.Map(n.IO9, engineA, engineB)
	n.Display7 = n.LCD.AddDisplay(n.IRQ7, n.DMA7, lcd.NullRenderer{})
	n.Display7.Map(n.IO7)

	n.Keypad9 = keypad.NewKeypad(n.IRQ9)
	n.Keypad9.Map(n.IO9)
	n.Keypad7 = keypad.NewKeypad(n.IRQ7)
	n.Keypad7.Map(n.IO7)
	n.rcnt = &extKeyIn{keypad: n.Keypad7}
	n.IO7.Map(regRCNT, regRCNT+3, n.rcnt)

	n.vramcnt[0] = memory.NewStore(0x04000240, 4)
	n.vramcnt[0].Notify = renderer.RegisterWrite
	n.vramcnt[1] = memory.NewStore(0x04000248, 4)
	n.vramcnt[1].Notify = renderer.RegisterWrite
	n.IO9.Map(0x04000240, 0x04000243, n.vramcnt[0])
	n.IO9.Map(0x04000248, 0x0400024b, n.vramcnt[1])
	n.IO9.Map(regWramcnt, regWramcnt+3, wramcnt{w: n.WRAM})
	n.IO7.Map(regWramstat, regWramstat+3, wramstat{w: n.WRAM})

	n.powcnt = memory.NewStore(0x04000304, 4)
	n.powcnt.Notify = renderer.RegisterWrite
	n.IO9.Map(0x04000304, 0x04000307, n.powcnt)

	n.tcm = newTCMBus(n.Mem9)
	n.ARM9 = arm.NewARM(architecture.NewMap(architecture.ARMv5TE, "ARM946E-S"), prefs, n.tcm, n.IRQ9)
	n.ARM9.OnTCMChange = n.tcm.update
	n.ARM9.OnWaitForInterrupt = n.IRQ9.Halt
	n.tcm.cpu = n.ARM9
	n.ARM7 = arm.NewARM(architecture.NewMap(architecture.ARMv4T, "ARM7TDMI"), prefs, n.Mem7, n.IRQ7)

	// the ARM9 is first so that it wins ties
	n.core9 = n.Interleave.AddCore(core{cpu: n.ARM9, irq: n.IRQ9}, n.arm9Scale())
	n.core7 = n.Interleave.AddCore(core{cpu: n.ARM7, irq: n.IRQ7}, arm7Scale)

	if err := n.Reset(); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *NDS) String() string {
	if n.Header == nil {
		return "NDS: no card"
	}
	return fmt.Sprintf("NDS: %s (%s)", n.Header.Title, n.Header.GameCode)
}

func (n *NDS) arm9Scale() int {
	return max(n.Prefs.NDS.ARM9ClockMultiplier.Get().(int), 1)
}

// FastBoot returns true if the system starts the card without the BIOS boot
// sequence.
func (n *NDS) FastBoot() bool {
	return n.biosStub || n.Prefs.FastBoot.Get().(bool)
}

// Reset the system to its power-on state. If fast boot is required the card
// binaries are copied to memory and the CPUs are set up to start them.
func (n *NDS) Reset() error {
	n.Sched.Reset()

	clear(n.mainRAM)
	clear(n.arm7WRAM)
	clear(n.palette)
	clear(n.lcdcVRAM)
	clear(n.oam)
	clear(n.arm7VRAM)
	clear(n.tcm.itcm)
	clear(n.tcm.dtcm)
	clear(n.WRAM.data[:])
	clear(n.WRAM.vramcnt[:])
	n.WRAM.SetCnt(0)
	n.vramcnt[0].Reset()
	n.vramcnt[1].Reset()
	n.powcnt.Reset()
	n.rcnt.rcnt = 0

	n.IRQ9.Reset()
	n.IRQ7.Reset()
	n.Timers9.Reset()
	n.Timers7.Reset()
	n.DMA9.Reset()
	n.DMA7.Reset()
	n.IPC.Reset()
	n.Maths.Reset()
	n.LCD.Reset()
	n.Keypad9.Reset()
	n.Keypad7.Reset()
	n.ARM9.Reset()
	n.ARM7.Reset()
	n.tcm.update()
	n.Interleave.Reset()

	if n.FastBoot() {
		return n.directBoot()
	}
	return nil
}

// SetButtons sets the buttons that are pressed. Both CPUs see the same
// buttons.
func (n *NDS) SetButtons(pressed keypad.Button) {
	n.Keypad9.SetButtons(pressed)
	n.Keypad7.SetButtons(pressed)
}

// FrameCount returns the number of frames completed since the last reset.
func (n *NDS) FrameCount() uint64 {
	return n.LCD.Frame()
}
