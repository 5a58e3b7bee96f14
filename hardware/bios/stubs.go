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

package bios

// the exception vectors shared by the stubs. the reset vector is filled in
// separately and the IRQ and SWI vectors branch to the handlers
var vectors = []uint32{
	0xe1b0f00e, // 04: undefined    movs pc, lr
	0x00000000, // 08: swi          (branch to handler)
	0xe25ef004, // 0c: prefetch     subs pc, lr, #4
	0xe25ef008, // 10: data abort   subs pc, lr, #8
	0xeafffffe, // 14: reserved     b .
	0x00000000, // 18: irq          (branch to handler)
	0xe25ef004, // 1c: fiq          subs pc, lr, #4
}

func stubVectors(reset uint32, swi uint32, irq uint32) []uint32 {
	v := append([]uint32{reset}, vectors...)
	v[2] = swi
	v[6] = irq
	return v
}

// irq handler that calls the address stored at 0x03fffffc
var irqHandler = []uint32{
	0xe92d500f, // stmfd sp!, {r0-r3, r12, lr}
	0xe3a00301, // mov r0, #0x04000000
	0xe28fe000, // add lr, pc, #0
	0xe510f004, // ldr pc, [r0, #-4]
	0xe8bd500f, // ldmfd sp!, {r0-r3, r12, lr}
	0xe25ef004, // subs pc, lr, #4
}

// irq handler that calls the address stored at the end of DTCM
var irqHandlerDTCM = []uint32{
	0xe92d500f, // stmfd sp!, {r0-r3, r12, lr}
	0xee190f11, // mrc p15, 0, r0, c9, c1, 0
	0xe1a00620, // mov r0, r0, lsr #12
	0xe1a00600, // mov r0, r0, lsl #12
	0xe2800901, // add r0, r0, #0x4000
	0xe28fe000, // add lr, pc, #0
	0xe510f004, // ldr pc, [r0, #-4]
	0xe8bd500f, // ldmfd sp!, {r0-r3, r12, lr}
	0xe25ef004, // subs pc, lr, #4
}

// decode the SWI comment from the calling instruction into r0. works for
// both ARM and Thumb callers
var swiComment = []uint32{
	0xe92d4003, // stmfd sp!, {r0, r1, lr}
	0xe14f0000, // mrs r0, spsr
	0xe3100020, // tst r0, #0x20
	0x115e00b2, // ldrneh r0, [lr, #-2]
	0x051e0004, // ldreq r0, [lr, #-4]
	0x01a00820, // moveq r0, r0, lsr #16
	0xe20000ff, // and r0, r0, #0xff
}

var swiReturn = []uint32{
	0xe8bd4003, // ldmfd sp!, {r0, r1, lr}
	0xe1b0f00e, // movs pc, lr
}

// halt by writing to HALTCNT if the SWI number matches
func swiHaltcnt(swi uint32, haltcnt uint32) []uint32 {
	h := append([]uint32{}, swiComment...)
	h = append(h,
		0xe3500000|swi,     // cmp r0, #swi
		0x03a00301,         // moveq r0, #0x04000000
		0x03a01000|haltcnt, // moveq r1, #haltcnt
		0x05c01301,         // strbeq r1, [r0, #0x301]
	)
	return append(h, swiReturn...)
}

// halt with the CP15 wait for interrupt operation if the SWI number matches
func swiWaitForInterrupt(swi uint32) []uint32 {
	h := append([]uint32{}, swiComment...)
	h = append(h,
		0xe3500000|swi, // cmp r0, #swi
		0x0e070f90,     // mcreq p15, 0, r0, c7, c0, 4
	)
	return append(h, swiReturn...)
}

const (
	ldrPCReset = 0xe59ff018 // ldr pc, [pc, #0x18]
	branchSelf = 0xeafffffe // b .
)

var gbaStub = map[uint32][]uint32{
	0x0000: stubVectors(ldrPCReset, 0xea00004c, 0xea000042),
	0x0020: {0x08000000},
	0x0128: irqHandler,
	0x0140: swiHaltcnt(0x02, 0x00),
}

var nds7Stub = map[uint32][]uint32{
	0x0000: stubVectors(branchSelf, 0xea00004c, 0xea000042),
	0x0128: irqHandler,
	0x0140: swiHaltcnt(0x06, 0x80),
}

var nds9Stub = map[uint32][]uint32{
	0x0000: stubVectors(branchSelf, 0xea000054, 0xea000042),
	0x0128: irqHandlerDTCM,
	0x0160: swiWaitForInterrupt(0x06),
}
