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

package arm

import "math/bits"

// data processing operations
const (
	opAND = iota
	opEOR
	opSUB
	opRSB
	opADD
	opADC
	opSBC
	opRSC
	opTST
	opTEQ
	opCMP
	opCMN
	opORR
	opMOV
	opBIC
	opMVN
)

// aluOperation performs the data processing operation. returns the result
// and whether the result should be written to the destination register.
// the logical operations use the shifter carry
func (arm *ARM) aluOperation(op uint32, a uint32, b uint32, shifterCarry bool, setFlags bool) (uint32, bool) {
	var r uint32
	var c uint32
	if arm.state.status.carry {
		c = 1
	}

	logical := false

	switch op {
	case opAND:
		r = a & b
		logical = true
	case opEOR:
		r = a ^ b
		logical = true
	case opSUB:
		r = arm.sub(a, b, 1, setFlags)
	case opRSB:
		r = arm.sub(b, a, 1, setFlags)
	case opADD:
		r = arm.add(a, b, 0, setFlags)
	case opADC:
		r = arm.add(a, b, c, setFlags)
	case opSBC:
		r = arm.sub(a, b, c, setFlags)
	case opRSC:
		r = arm.sub(b, a, c, setFlags)
	case opTST:
		r = a & b
		logical = true
	case opTEQ:
		r = a ^ b
		logical = true
	case opCMP:
		r = arm.sub(a, b, 1, setFlags)
	case opCMN:
		r = arm.add(a, b, 0, setFlags)
	case opORR:
		r = a | b
		logical = true
	case opMOV:
		r = b
		logical = true
	case opBIC:
		r = a &^ b
		logical = true
	case opMVN:
		r = ^b
		logical = true
	}

	if setFlags {
		arm.state.status.setNZ(r)
		if logical {
			arm.state.status.carry = shifterCarry
		}
	}

	return r, op < opTST || op > opCMN
}

func (arm *ARM) decodeARMDataProcessing(opcode uint32) decodeFunction {
	immediate := opcode&0x02000000 == 0x02000000
	op := (opcode >> 21) & 0x0f
	setFlags := opcode&0x00100000 == 0x00100000
	rn := (opcode >> 16) & 0x0f
	rd := (opcode >> 12) & 0x0f

	if immediate {
		rot := ((opcode >> 8) & 0x0f) * 2
		imm := bits.RotateLeft32(opcode&0xff, -int(rot))

		return func() {
			carry := arm.state.status.carry
			if rot != 0 {
				carry = imm&0x80000000 == 0x80000000
			}
			arm.dataProcessing(op, rn, rd, imm, carry, setFlags)
		}
	}

	rm := opcode & 0x0f
	typ := (opcode >> 5) & 0x03

	if opcode&0x10 == 0x10 {
		// shift by register. takes an extra internal cycle and the PC reads
		// as one instruction further ahead
		rs := (opcode >> 8) & 0x0f

		return func() {
			arm.iCycle()
			arm.state.registers[rPC] += 4
			amount := arm.state.registers[rs]
			b, carry := shiftRegister(typ, arm.state.registers[rm], amount, arm.state.status.carry)
			a := arm.state.registers[rn]
			arm.state.registers[rPC] -= 4
			arm.dataProcessingOperands(op, a, rd, b, carry, setFlags)
		}
	}

	amount := (opcode >> 7) & 0x1f

	return func() {
		b, carry := shiftImmediate(typ, arm.state.registers[rm], amount, arm.state.status.carry)
		arm.dataProcessing(op, rn, rd, b, carry, setFlags)
	}
}

func (arm *ARM) dataProcessing(op uint32, rn uint32, rd uint32, b uint32, carry bool, setFlags bool) {
	arm.dataProcessingOperands(op, arm.state.registers[rn], rd, b, carry, setFlags)
}

func (arm *ARM) dataProcessingOperands(op uint32, a uint32, rd uint32, b uint32, carry bool, setFlags bool) {
	// writing to the PC with the S bit set restores the CPSR from the SPSR.
	// the flags are not otherwise affected
	restore := setFlags && rd == rPC
	if restore {
		setFlags = false
	}

	r, write := arm.aluOperation(op, a, b, carry, setFlags)

	if restore {
		arm.SetCPSR(arm.SPSR())
	}

	if write {
		arm.writeRegister(rd, r)
	}
}
