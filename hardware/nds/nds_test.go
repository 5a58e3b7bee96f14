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

package nds_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/nds"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/test"
)

const (
	arm9Entry = 0x02000000
	arm7Entry = 0x02380000
)

// a card image with the ARM9 program at offset 0x200 and the ARM7 program at
// offset 0x400
func cardImage(arm9 []uint32, arm7 []uint32) []byte {
	image := make([]byte, 0x600)
	copy(image, "GOPHERTEST")
	copy(image[0x0c:], "GADV")

	binary.LittleEndian.PutUint32(image[0x20:], 0x200)
	binary.LittleEndian.PutUint32(image[0x24:], arm9Entry)
	binary.LittleEndian.PutUint32(image[0x28:], arm9Entry)
	binary.LittleEndian.PutUint32(image[0x2c:], uint32(len(arm9)*4))

	binary.LittleEndian.PutUint32(image[0x30:], 0x400)
	binary.LittleEndian.PutUint32(image[0x34:], arm7Entry)
	binary.LittleEndian.PutUint32(image[0x38:], arm7Entry)
	binary.LittleEndian.PutUint32(image[0x3c:], uint32(len(arm7)*4))

	for i, w := range arm9 {
		binary.LittleEndian.PutUint32(image[0x200+i*4:], w)
	}
	for i, w := range arm7 {
		binary.LittleEndian.PutUint32(image[0x400+i*4:], w)
	}

	return image
}

func newTestNDS(t *testing.T, arm9 []uint32, arm7 []uint32) *nds.NDS {
	t.Helper()
	n, err := nds.NewNDS(preferences.Defaults(), cardImage(arm9, arm7), nil, nil, lcd.NullRenderer{})
	test.DemandSuccess(t, err)
	return n
}

// b .
var spin = []uint32{0xeafffffe}

// halt through the BIOS with no interrupts enabled
var sleep = []uint32{
	0xef060000, // swi 0x060000
	0xeafffffe, // b .
}

func TestDirectBoot(t *testing.T) {
	n := newTestNDS(t, spin, spin)
	test.ExpectSuccess(t, n.FastBoot())
	test.ExpectEquality(t, n.Header.Title, "GOPHERTEST")
	test.ExpectEquality(t, n.Header.GameCode, "GADV")

	test.ExpectEquality(t, n.ARM9.Mode(), arm.ModeSYS)
	test.ExpectEquality(t, n.ARM9.Register(arm.PC), uint32(arm9Entry))
	test.ExpectEquality(t, n.ARM9.Register(arm.SP), uint32(0x027c3ec0))
	test.ExpectEquality(t, n.ARM9.BankedRegister(arm.ModeSVC, arm.SP), uint32(0x027c3fc0))
	test.ExpectEquality(t, n.ARM9.BankedRegister(arm.ModeIRQ, arm.SP), uint32(0x027c3fa0))
	test.ExpectSuccess(t, n.ARM9.HighVectors())
	test.ExpectEquality(t, n.ARM9.DTCM().Base, uint32(0x027c0000))
	test.ExpectEquality(t, n.ARM9.DTCM().Size, uint32(0x4000))

	test.ExpectEquality(t, n.ARM7.Mode(), arm.ModeSYS)
	test.ExpectEquality(t, n.ARM7.Register(arm.PC), uint32(arm7Entry))
	test.ExpectEquality(t, n.ARM7.Register(arm.SP), uint32(0x0380ff00))
	test.ExpectEquality(t, n.ARM7.BankedRegister(arm.ModeSVC, arm.SP), uint32(0x0380ffdc))

	// binaries and the header are in main RAM, which both CPUs can see
	test.ExpectEquality(t, n.Mem9.Peek32(arm9Entry), uint32(0xeafffffe))
	test.ExpectEquality(t, n.Mem7.Peek32(arm7Entry), uint32(0xeafffffe))
	test.ExpectEquality(t, n.Mem7.Peek32(0x027ffe20), uint32(0x200))
	test.ExpectEquality(t, n.Mem9.Peek32(0x027ffe34), uint32(arm7Entry))

	// POSTFLG
	v, _ := n.Mem9.Read8(0x04000300, false)
	test.ExpectEquality(t, v, uint8(1))
	v, _ = n.Mem7.Read8(0x04000300, false)
	test.ExpectEquality(t, v, uint8(1))

	// both CPUs spin without changing the PC
	for range 100 {
		_, err := n.Step()
		test.DemandSuccess(t, err)
	}
	test.ExpectEquality(t, n.ARM9.Register(arm.PC), uint32(arm9Entry))
	test.ExpectEquality(t, n.ARM7.Register(arm.PC), uint32(arm7Entry))

	// the ARM9 runs at twice the rate of the ARM7 so the scheduler has moved
	// on by roughly the same amount for both CPUs
	test.ExpectApproximate(t, int(n.Interleave.LocalTime(0)), int(n.Interleave.LocalTime(1)), 0.1)
}

func TestNoCard(t *testing.T) {
	_, err := nds.NewNDS(preferences.Defaults(), nil, nil, nil, lcd.NullRenderer{})
	test.ExpectFailure(t, err)

	// a header that points beyond the end of the image
	image := cardImage(spin, spin)
	binary.LittleEndian.PutUint32(image[0x2c:], 0x10000)
	_, err = nds.NewNDS(preferences.Defaults(), image, nil, nil, lcd.NullRenderer{})
	test.ExpectFailure(t, err)
}

func TestSharedWRAM(t *testing.T) {
	n := newTestNDS(t, spin, spin)

	// after boot the ARM7 has all of shared WRAM
	test.ExpectEquality(t, n.WRAM.Cnt(), uint8(3))
	n.Mem7.Write32(0x03000000, 0x11111111, false)
	n.Mem7.Write32(0x03004000, 0x22222222, false)
	test.ExpectEquality(t, n.Mem9.Peek32(0x03000000), 0)

	// ARM9 has all of shared WRAM and the ARM7 sees its own WRAM instead
	n.Mem9.Write8(0x04000247, 0, false)
	test.ExpectEquality(t, n.WRAM.Cnt(), uint8(0))
	test.ExpectEquality(t, n.Mem9.Peek32(0x03000000), uint32(0x11111111))
	test.ExpectEquality(t, n.Mem9.Peek32(0x03004000), uint32(0x22222222))
	n.Mem7.Write32(0x03800000, 0x33333333, false)
	test.ExpectEquality(t, n.Mem7.Peek32(0x03000000), uint32(0x33333333))

	// split. ARM9 has the upper half and the ARM7 the lower half
	n.Mem9.Write8(0x04000247, 1, false)
	test.ExpectEquality(t, n.Mem9.Peek32(0x03000000), uint32(0x22222222))
	test.ExpectEquality(t, n.Mem7.Peek32(0x03000000), uint32(0x11111111))
	test.ExpectEquality(t, n.Mem7.Peek32(0x03004000), uint32(0x11111111))

	// the ARM7 can see the setting in WRAMSTAT but can't change it
	v, _ := n.Mem7.Read8(0x04000241, false)
	test.ExpectEquality(t, v, uint8(1))
	n.Mem7.Write8(0x04000241, 2, false)
	test.ExpectEquality(t, n.WRAM.Cnt(), uint8(1))
}

// writes to the DTCM and reads it back
var dtcmProgram = []uint32{
	0xe3a0079f, // mov r0, #0x027c0000
	0xe3a010ab, // mov r1, #0xab
	0xe5801000, // str r1, [r0]
	0xe5902000, // ldr r2, [r0]
	0xeafffffe, // b .
}

func TestTCM(t *testing.T) {
	n := newTestNDS(t, dtcmProgram, sleep)

	halted, err := n.RunUntilHalt(nds.CPU7, 10000)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, halted)

	for range 20 {
		_, err := n.Step()
		test.DemandSuccess(t, err)
	}
	test.ExpectEquality(t, n.ARM9.Register(2), uint32(0xab))

	// the DTCM isn't on the main bus. the same address on the main bus is a
	// mirror of main RAM
	test.ExpectEquality(t, n.Mem9.Peek32(0x027c0000), 0)
}

func TestIPC(t *testing.T) {
	n := newTestNDS(t, spin, spin)

	// IPCSYNC output of one CPU is the input of the other
	n.Mem9.Write16(0x04000180, 0x0500, false)
	v, _ := n.Mem7.Read16(0x04000180, false)
	test.ExpectEquality(t, v&0x000f, uint16(5))

	// the FIFO
	n.Mem9.Write16(0x04000184, 0x8000, false)
	n.Mem7.Write16(0x04000184, 0x8000, false)
	n.Mem9.Write32(0x04000188, 0xcafef00d, false)
	n.Mem9.Write32(0x04000188, 0x12345678, false)

	w, _ := n.Mem7.Read32(0x04100000, false)
	test.ExpectEquality(t, w, uint32(0xcafef00d))
	w, _ = n.Mem7.Read32(0x04100000, false)
	test.ExpectEquality(t, w, uint32(0x12345678))
}

func TestMaths(t *testing.T) {
	n := newTestNDS(t, spin, spin)

	n.Mem9.Write32(0x04000280, 0, false)
	n.Mem9.Write32(0x04000290, 100, false)
	n.Mem9.Write32(0x04000298, 7, false)

	v, _ := n.Mem9.Read32(0x040002a0, false)
	test.ExpectEquality(t, v, uint32(14))
	v, _ = n.Mem9.Read32(0x040002a8, false)
	test.ExpectEquality(t, v, uint32(2))

	n.Mem9.Write32(0x040002b8, 144, false)
	v, _ = n.Mem9.Read32(0x040002b4, false)
	test.ExpectEquality(t, v, uint32(12))

	// the ARM7 has no maths unit
	v, _ = n.Mem7.Read32(0x040002a0, false)
	test.ExpectEquality(t, v, 0)
}

func TestKeypad(t *testing.T) {
	n := newTestNDS(t, spin, spin)

	n.SetButtons(keypad.ButtonA | keypad.ButtonX)
	v, _ := n.Mem9.Read16(0x04000130, false)
	test.ExpectEquality(t, v, uint16(0x03fe))
	v, _ = n.Mem7.Read16(0x04000130, false)
	test.ExpectEquality(t, v, uint16(0x03fe))

	// X and Y are in EXTKEYIN on the ARM7
	v, _ = n.Mem7.Read16(0x04000136, false)
	test.ExpectEquality(t, v, uint16(0x007e))
}

// enables the VBlank interrupt, installs an IRQ handler in the DTCM and then
// loops around the wait for interrupt SWI. the handler acknowledges the
// interrupt and counts it in r5
var wfiProgram = []uint32{
	0xe3a00301, // mov r0, #0x04000000
	0xe3a01008, // mov r1, #8
	0xe1c010b4, // strh r1, [r0, #4]        DISPSTAT VBlank IRQ
	0xe3a01001, // mov r1, #1
	0xe5801210, // str r1, [r0, #0x210]     IE VBlank
	0xe5801208, // str r1, [r0, #0x208]     IME
	0xe59f2018, // ldr r2, [pc, #0x18]      handler
	0xe59f3018, // ldr r3, [pc, #0x18]      end of DTCM
	0xe5832000, // str r2, [r3]
	0xe3a05000, // mov r5, #0
	0xef060000, // swi 0x060000             WaitForInterrupt
	0xeafffffd, // b swi
	0x00000000,
	0x00000000,
	0x02000040, // handler
	0x027c3ffc, // end of DTCM

	// handler
	0xe3a00301, // mov r0, #0x04000000
	0xe3a01001, // mov r1, #1
	0xe5801214, // str r1, [r0, #0x214]     acknowledge VBlank
	0xe2855001, // add r5, r5, #1
	0xe12fff1e, // bx lr
}

func TestWaitForInterrupt(t *testing.T) {
	n := newTestNDS(t, wfiProgram, sleep)

	halted, err := n.RunUntilHalt(nds.CPU9, 100000)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, halted)
	test.ExpectEquality(t, n.IRQ9.Mode(), interrupts.Halt)
	test.ExpectEquality(t, n.ARM9.Register(5), 0)

	ctx := context.Background()
	for range 3 {
		test.ExpectSuccess(t, n.RunFrame(ctx))
	}
	test.ExpectEquality(t, n.FrameCount(), uint64(3))
	test.ExpectEquality(t, n.ARM9.Register(5), 2)

	// with both CPUs halted a frame passes in very few steps
	var steps int
	frame := n.FrameCount()
	for n.FrameCount() == frame {
		_, err := n.Step()
		test.DemandSuccess(t, err)
		steps++
	}
	test.ExpectSuccess(t, steps < 1000)
	test.ExpectEquality(t, n.ARM9.Register(5), 3)
}

func TestStuck(t *testing.T) {
	n := newTestNDS(t, sleep, sleep)

	// both CPUs halt with no interrupts enabled but the LCD events continue
	ctx := context.Background()
	test.ExpectSuccess(t, n.RunFrame(ctx))
	test.ExpectEquality(t, n.IRQ9.Mode(), interrupts.Halt)
	test.ExpectEquality(t, n.IRQ7.Mode(), interrupts.Halt)

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	test.ExpectFailure(t, n.RunFrame(ctx))
}

func TestFrameTiming(t *testing.T) {
	n := newTestNDS(t, spin, spin)

	ctx := context.Background()
	test.ExpectSuccess(t, n.RunFrame(ctx))
	first := n.Sched.Now()

	test.ExpectSuccess(t, n.RunFrame(ctx))
	test.ExpectApproximate(t, int(n.Sched.Now()-first), lcd.NDSTiming.CyclesPerFrame(), 0.0001)
}

func TestSnapshot(t *testing.T) {
	n := newTestNDS(t, wfiProgram, dtcmProgram)

	ctx := context.Background()
	test.ExpectSuccess(t, n.RunFrame(ctx))
	n.Mem9.Write32(0x02100000, 0xaaaaaaaa, false)

	s := n.Snapshot()

	for range 2 {
		test.ExpectSuccess(t, n.RunFrame(ctx))
	}
	regs9 := n.ARM9.Registers()
	regs7 := n.ARM7.Registers()
	now := n.Sched.Now()

	n.Mem9.Write32(0x02100000, 0x55555555, false)
	test.DemandSuccess(t, n.Plumb(s))
	test.ExpectEquality(t, n.Mem9.Peek32(0x02100000), uint32(0xaaaaaaaa))

	for range 2 {
		test.ExpectSuccess(t, n.RunFrame(ctx))
	}
	test.ExpectEquality(t, n.ARM9.Registers(), regs9)
	test.ExpectEquality(t, n.ARM7.Registers(), regs7)
	test.ExpectEquality(t, n.Sched.Now(), now)
	test.ExpectEquality(t, n.FrameCount(), uint64(3))
}
