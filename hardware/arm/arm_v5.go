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

func (arm *ARM) decodeARMCountLeadingZeros(opcode uint32) decodeFunction {
	rd := (opcode >> 12) & 0x0f
	rm := opcode & 0x0f

	return func() {
		arm.state.registers[rd] = uint32(bits.LeadingZeros32(arm.state.registers[rm]))
	}
}

// saturate clamps a 64 bit result to the signed 32 bit range and sets the Q
// flag if the value was clamped
func (arm *ARM) saturate(v int64) uint32 {
	switch {
	case v > 0x7fffffff:
		arm.state.status.saturation = true
		return 0x7fffffff
	case v < -0x80000000:
		arm.state.status.saturation = true
		return 0x80000000
	}
	return uint32(int32(v))
}

func (arm *ARM) decodeARMSaturatingArithmetic(opcode uint32) decodeFunction {
	op := (opcode >> 21) & 0x03
	rn := (opcode >> 16) & 0x0f
	rd := (opcode >> 12) & 0x0f
	rm := opcode & 0x0f

	return func() {
		a := int64(int32(arm.state.registers[rm]))
		b := int64(int32(arm.state.registers[rn]))

		// QDADD and QDSUB double the second operand with saturation
		if op&0x02 == 0x02 {
			b = int64(int32(arm.saturate(b * 2)))
		}

		var v uint32
		if op&0x01 == 0x01 {
			v = arm.saturate(a - b)
		} else {
			v = arm.saturate(a + b)
		}
		arm.writeRegister(rd, v)
	}
}

// halfword selects the top or bottom signed halfword of a register
func halfword(v uint32, top bool) int32 {
	if top {
		return int32(int16(v >> 16))
	}
	return int32(int16(v))
}

func (arm *ARM) decodeARMSignedMultiplyHalfword(opcode uint32) decodeFunction {
	op := (opcode >> 21) & 0x03
	rd := (opcode >> 16) & 0x0f
	rn := (opcode >> 12) & 0x0f
	rs := (opcode >> 8) & 0x0f
	rm := opcode & 0x0f
	x := opcode&0x20 == 0x20
	y := opcode&0x40 == 0x40

	switch op {
	case 0b00:
		// SMLAxy
		return func() {
			p := int64(halfword(arm.state.registers[rm], x)) * int64(halfword(arm.state.registers[rs], y))
			acc := int64(int32(arm.state.registers[rn]))
			r := p + acc
			if r != int64(int32(r)) {
				arm.state.status.saturation = true
			}
			arm.writeRegister(rd, uint32(r))
		}

	case 0b01:
		// SMLAWy and SMULWy. the x bit selects the accumulate form when
		// clear
		accumulate := !x
		return func() {
			p := (int64(int32(arm.state.registers[rm])) * int64(halfword(arm.state.registers[rs], y))) >> 16
			if accumulate {
				acc := int64(int32(arm.state.registers[rn]))
				r := p + acc
				if r != int64(int32(r)) {
					arm.state.status.saturation = true
				}
				p = r
			}
			arm.writeRegister(rd, uint32(p))
		}

	case 0b10:
		// SMLALxy. rn is the low word of the accumulator and rd the high word
		return func() {
			p := int64(halfword(arm.state.registers[rm], x)) * int64(halfword(arm.state.registers[rs], y))
			acc := int64(uint64(arm.state.registers[rd])<<32 | uint64(arm.state.registers[rn]))
			r := uint64(acc + p)
			arm.iCycle()
			arm.state.registers[rn] = uint32(r)
			arm.writeRegister(rd, uint32(r>>32))
		}
	}

	// SMULxy
	return func() {
		p := halfword(arm.state.registers[rm], x) * halfword(arm.state.registers[rs], y)
		arm.writeRegister(rd, uint32(p))
	}
}
