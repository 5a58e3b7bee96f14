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

package gba_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/cartridge"
	"github.com/jetsetilly/gopheradvance/hardware/gba"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/test"
)

// a cartridge image with the program at the start and data at offset 0x100
func newTestGBA(t *testing.T, saveType cartridge.SaveType, program []uint32, data []uint32) *gba.GBA {
	t.Helper()

	rom := make([]byte, 0x400)
	for i, w := range program {
		binary.LittleEndian.PutUint32(rom[i*4:], w)
	}
	for i, w := range data {
		binary.LittleEndian.PutUint32(rom[0x100+i*4:], w)
	}

	cart, err := cartridge.Load(rom, saveType)
	test.DemandSuccess(t, err)

	g, err := gba.NewGBA(preferences.Defaults(), cart, nil, lcd.NullRenderer{}, nil, nil)
	test.DemandSuccess(t, err)

	return g
}

// b .
var spin = []uint32{0xeafffffe}

func TestFastBoot(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveNone, spin, nil)

	test.ExpectSuccess(t, g.FastBoot())
	test.ExpectEquality(t, g.CPU.Mode(), arm.ModeSYS)
	test.ExpectEquality(t, g.CPU.Register(arm.PC), uint32(0x08000000))
	test.ExpectEquality(t, g.CPU.Register(arm.SP), uint32(0x03007f00))
	test.ExpectEquality(t, g.CPU.BankedRegister(arm.ModeSVC, arm.SP), uint32(0x03007fe0))
	test.ExpectEquality(t, g.CPU.BankedRegister(arm.ModeIRQ, arm.SP), uint32(0x03007fa0))
	test.ExpectEquality(t, g.CPU.CPSR()&0x80, 0)

	// the spin loop doesn't change the PC
	for range 10 {
		_, err := g.Step()
		test.ExpectSuccess(t, err)
	}
	test.ExpectEquality(t, g.CPU.Register(arm.PC), uint32(0x08000000))
}

func TestMemoryMap(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveSRAM, spin, []uint32{0xdeadbeef})

	// work RAM mirrors
	g.Mem.Write32(0x02000010, 0x12345678, false)
	v, _ := g.Mem.Read32(0x02040010, false)
	test.ExpectEquality(t, v, uint32(0x12345678))

	g.Mem.Write16(0x03000020, 0xabcd, false)
	h, _ := g.Mem.Read16(0x03ff8020, false)
	test.ExpectEquality(t, h, uint16(0xabcd))

	// the top 32K of the VRAM mirror repeats the object tiles
	g.Mem.Write16(0x06010000, 0x1234, false)
	h, _ = g.Mem.Read16(0x06018000, false)
	test.ExpectEquality(t, h, uint16(0x1234))

	// byte writes to palette RAM are written to both bytes
	g.Mem.Write8(0x05000001, 0xab, false)
	h, _ = g.Mem.Read16(0x05000000, false)
	test.ExpectEquality(t, h, uint16(0xabab))

	// byte writes to OAM are ignored
	g.Mem.Write8(0x07000000, 0xab, false)
	h, _ = g.Mem.Read16(0x07000000, false)
	test.ExpectEquality(t, h, uint16(0))

	// cartridge is mirrored in each wait state region and is read-only
	for _, a := range []uint32{0x08000100, 0x0a000100, 0x0c000100} {
		v, _ = g.Mem.Read32(a, false)
		test.ExpectEquality(t, v, uint32(0xdeadbeef), a)
	}
	g.Mem.Write32(0x08000100, 0, false)
	v, _ = g.Mem.Read32(0x08000100, false)
	test.ExpectEquality(t, v, uint32(0xdeadbeef))

	// reads beyond the end of the image
	h, _ = g.Mem.Read16(0x08001000, false)
	test.ExpectEquality(t, h, uint16(0x0800))

	// SRAM
	g.Mem.Write8(0x0e000004, 0x55, false)
	b, _ := g.Mem.Read8(0x0e000004, false)
	test.ExpectEquality(t, b, uint8(0x55))
	test.ExpectSuccess(t, g.Cart.Backup.Dirty())
}

func TestWaitcnt(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveSRAM, spin, nil)

	_, c := g.Mem.Read16(0x08000000, false)
	test.ExpectEquality(t, c, 5)
	_, c = g.Mem.Read16(0x08000000, true)
	test.ExpectEquality(t, c, 3)
	_, c = g.Mem.Read32(0x08000000, false)
	test.ExpectEquality(t, c, 8)

	// SRAM 9 cycles, WS0 4/2, WS1 5/5, WS2 9/9 and the prefetch bit
	g.Mem.Write16(0x04000204, 0x4317, false)
	v, _ := g.Mem.Read16(0x04000204, false)
	test.ExpectEquality(t, v, uint16(0x4317))

	ws0 := g.Waitcnt.WaitState(0)
	test.ExpectEquality(t, ws0.N16, 4)
	test.ExpectEquality(t, ws0.S16, 2)
	test.ExpectEquality(t, ws0.N32, 6)
	test.ExpectEquality(t, ws0.S32, 4)

	ws1 := g.Waitcnt.WaitState(1)
	test.ExpectEquality(t, ws1.N16, 5)
	test.ExpectEquality(t, ws1.S16, 5)

	ws2 := g.Waitcnt.WaitState(2)
	test.ExpectEquality(t, ws2.N16, 9)
	test.ExpectEquality(t, ws2.S16, 9)

	test.ExpectEquality(t, g.Waitcnt.SRAM().N16, 9)

	// the timing of the regions changes immediately
	_, c = g.Mem.Read16(0x08000000, false)
	test.ExpectEquality(t, c, 4)
	_, c = g.Mem.Read32(0x08000000, true)
	test.ExpectEquality(t, c, 4)
	_, c = g.Mem.Read8(0x0e000000, false)
	test.ExpectEquality(t, c, 9)

	g.Reset()
	_, c = g.Mem.Read16(0x08000000, false)
	test.ExpectEquality(t, c, 5)
}

func TestKeypad(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveNone, spin, nil)

	v, _ := g.Mem.Read16(0x04000130, false)
	test.ExpectEquality(t, v, uint16(0x03ff))

	g.SetButtons(keypad.ButtonA | keypad.ButtonStart)
	v, _ = g.Mem.Read16(0x04000130, false)
	test.ExpectEquality(t, v, uint16(0x03f6))

	// KEYINPUT is read-only
	g.Mem.Write16(0x04000130, 0, false)
	v, _ = g.Mem.Read16(0x04000130, false)
	test.ExpectEquality(t, v, uint16(0x03f6))

	g.SetButtons(0)

	// IRQ when either L or R is pressed
	g.Mem.Write16(0x04000132, 0x4000|uint16(keypad.ButtonL|keypad.ButtonR), false)
	g.Mem.Write16(0x04000200, 1<<interrupts.Keypad, false)

	g.SetButtons(keypad.ButtonA)
	test.ExpectEquality(t, g.IRQ.Pending(), 0)
	g.SetButtons(keypad.ButtonR)
	test.ExpectEquality(t, g.IRQ.Pending(), 1<<interrupts.Keypad)

	// acknowledge
	g.Mem.Write16(0x04000202, 1<<interrupts.Keypad, false)
	test.ExpectEquality(t, g.IRQ.Pending(), 0)

	// IRQ when both L and R are pressed
	g.SetButtons(0)
	g.Mem.Write16(0x04000132, 0xc000|uint16(keypad.ButtonL|keypad.ButtonR), false)
	g.SetButtons(keypad.ButtonR)
	test.ExpectEquality(t, g.IRQ.Pending(), 0)
	g.SetButtons(keypad.ButtonR | keypad.ButtonL)
	test.ExpectEquality(t, g.IRQ.Pending(), 1<<interrupts.Keypad)
}

// enables the VBlank interrupt, installs an IRQ handler and then loops
// around the Halt SWI. the handler acknowledges the interrupt. r5 counts the
// number of times the program wakes from the halt
var haltProgram = []uint32{
	0xe3a00301, // mov r0, #0x04000000
	0xe3a01008, // mov r1, #8
	0xe1c010b4, // strh r1, [r0, #4]        DISPSTAT VBlank IRQ
	0xe3a01001, // mov r1, #1
	0xe2802c02, // add r2, r0, #0x200
	0xe1c210b0, // strh r1, [r2]            IE VBlank
	0xe5821008, // str r1, [r2, #8]         IME
	0xe3a03302, // mov r3, #0x08000000
	0xe2833c01, // add r3, r3, #0x100
	0xe3a04301, // mov r4, #0x04000000
	0xe5043004, // str r3, [r4, #-4]        IRQ handler address
	0xe3a05000, // mov r5, #0
	0xef020000, // swi 0x020000             Halt
	0xe2855001, // add r5, r5, #1
	0xeafffffc, // b swi
}

// the IRQ handler at offset 0x100
var haltHandler = []uint32{
	0xe3a00301, // mov r0, #0x04000000
	0xe2800c02, // add r0, r0, #0x200
	0xe3a01001, // mov r1, #1
	0xe1c010b2, // strh r1, [r0, #2]        acknowledge VBlank
	0xe12fff1e, // bx lr
}

func TestHaltPattern(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveNone, haltProgram, haltHandler)

	// the setup code runs and the CPU halts well before the first VBlank
	halted, err := g.RunUntilHalt(1000)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, halted)
	test.ExpectEquality(t, g.IRQ.Mode(), interrupts.Halt)
	test.ExpectEquality(t, g.CPU.Register(5), 0)

	ctx := context.Background()
	for range 3 {
		test.ExpectSuccess(t, g.RunFrame(ctx))
	}

	// the frame ends on the cycle the VBlank interrupt is requested so the
	// CPU hasn't yet woken from the most recent halt
	test.ExpectEquality(t, g.FrameCount(), uint64(3))
	test.ExpectEquality(t, g.IRQ.Mode(), interrupts.Halt)
	test.ExpectEquality(t, g.CPU.Register(5), 2)

	// the interrupt was acknowledged by the handler
	_, err = g.RunUntilHalt(10000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, g.CPU.Register(5), 3)
	test.ExpectEquality(t, g.IRQ.Pending(), 0)

	// while halted the CPU uses no instructions so a frame passes in very
	// few steps
	var steps int
	frame := g.FrameCount()
	for g.FrameCount() == frame {
		_, err := g.Step()
		test.DemandSuccess(t, err)
		steps++
	}
	test.ExpectSuccess(t, steps < 1000)
}

func TestVBlankDMA(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveNone, spin, []uint32{0x11111111, 0x22222222, 0x33333333, 0x44444444})

	// DMA3 four words from the cartridge to work RAM on VBlank
	g.Mem.Write32(0x040000d4, 0x08000100, false)
	g.Mem.Write32(0x040000d8, 0x02000000, false)
	g.Mem.Write32(0x040000dc, 0x0004|(0x8000|0x1000|0x0400)<<16, false)

	test.ExpectSuccess(t, g.DMA.Channel(3).Enabled())
	test.ExpectEquality(t, g.Mem.Peek32(0x02000000), 0)

	test.ExpectSuccess(t, g.RunFrame(context.Background()))

	test.ExpectEquality(t, g.Mem.Peek32(0x02000000), uint32(0x11111111))
	test.ExpectEquality(t, g.Mem.Peek32(0x0200000c), uint32(0x44444444))
	test.ExpectFailure(t, g.DMA.Channel(3).Enabled())
	test.ExpectEquality(t, g.LCD.VCount(), 160)
}

func TestRunFrameTiming(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveNone, spin, nil)

	ctx := context.Background()
	test.ExpectSuccess(t, g.RunFrame(ctx))
	first := g.Sched.Now()

	test.ExpectSuccess(t, g.RunFrame(ctx))
	test.ExpectApproximate(t, int(g.Sched.Now()-first), lcd.GBATiming.CyclesPerFrame(), 0.0001)

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	test.ExpectFailure(t, g.RunFrame(ctx))
}

func TestSnapshot(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveSRAM, haltProgram, haltHandler)
	ctx := context.Background()

	test.ExpectSuccess(t, g.RunFrame(ctx))
	g.Mem.Write8(0x0e000000, 0x42, false)
	s := g.Snapshot()

	for range 2 {
		test.ExpectSuccess(t, g.RunFrame(ctx))
	}
	regs := g.CPU.Registers()
	now := g.Sched.Now()
	frame := g.FrameCount()
	g.Mem.Write8(0x0e000000, 0x00, false)

	test.ExpectSuccess(t, g.Plumb(s))
	b, _ := g.Mem.Read8(0x0e000000, false)
	test.ExpectEquality(t, b, uint8(0x42))
	test.ExpectEquality(t, g.FrameCount(), uint64(1))

	for range 2 {
		test.ExpectSuccess(t, g.RunFrame(ctx))
	}
	test.ExpectEquality(t, g.CPU.Registers(), regs)
	test.ExpectEquality(t, g.Sched.Now(), now)
	test.ExpectEquality(t, g.FrameCount(), frame)
}

func TestSnapshotBackupDirty(t *testing.T) {
	g := newTestGBA(t, cartridge.SaveSRAM, spin, nil)

	g.Mem.Write8(0x0e000000, 0x42, false)
	test.ExpectSuccess(t, g.Cart.Backup.Dirty())

	// taking a snapshot doesn't count as saving the backup
	s := g.Snapshot()
	test.ExpectSuccess(t, g.Cart.Backup.Dirty())
	test.ExpectEquality(t, s.Backup[0], uint8(0x42))

	// the backup is saved
	data := g.Cart.Backup.Data()
	test.ExpectFailure(t, g.Cart.Backup.Dirty())

	// plumbing the same data leaves the backup clean
	test.ExpectSuccess(t, g.Plumb(s))
	test.ExpectFailure(t, g.Cart.Backup.Dirty())

	// plumbing different data makes the backup dirty again
	data[0] = 0x99
	test.ExpectSuccess(t, g.Cart.Backup.Restore(data))
	test.ExpectFailure(t, g.Cart.Backup.Dirty())
	test.ExpectSuccess(t, g.Plumb(s))
	test.ExpectSuccess(t, g.Cart.Backup.Dirty())
	b, _ := g.Mem.Read8(0x0e000000, false)
	test.ExpectEquality(t, b, uint8(0x42))
}
