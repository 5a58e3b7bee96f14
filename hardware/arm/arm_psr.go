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

func (arm *ARM) decodeARMPSRTransfer(opcode uint32) decodeFunction {
	useSPSR := opcode&0x00400000 == 0x00400000

	// MRS
	if opcode&0x00200000 == 0x00000000 {
		rd := (opcode >> 12) & 0x0f
		return func() {
			if useSPSR {
				arm.state.registers[rd] = arm.SPSR()
			} else {
				arm.state.registers[rd] = arm.CPSR()
			}
		}
	}

	// MSR
	var mask uint32
	if opcode&0x00010000 == 0x00010000 {
		mask |= 0x000000ff
	}
	if opcode&0x00020000 == 0x00020000 {
		mask |= 0x0000ff00
	}
	if opcode&0x00040000 == 0x00040000 {
		mask |= 0x00ff0000
	}
	if opcode&0x00080000 == 0x00080000 {
		mask |= 0xff000000
	}

	// bits that can be written to the status registers
	if arm.mmap.V5 {
		mask &= 0xf80000ff
	} else {
		mask &= 0xf00000ff
	}

	var operand func() uint32
	if opcode&0x02000000 == 0x02000000 {
		rot := ((opcode >> 8) & 0x0f) * 2
		imm := bits.RotateLeft32(opcode&0xff, -int(rot))
		operand = func() uint32 {
			return imm
		}
	} else {
		rm := opcode & 0x0f
		operand = func() uint32 {
			return arm.state.registers[rm]
		}
	}

	return func() {
		v := operand()

		if useSPSR {
			if arm.state.status.mode.bank() == bankUSR {
				return
			}
			arm.setSPSR((arm.SPSR() &^ mask) | (v & mask))
			return
		}

		m := mask
		if arm.state.status.mode == ModeUSR {
			// user mode can only write the flags
			m &= 0xff000000
		}

		// the T bit cannot be changed with MSR
		m &^= flagT

		arm.SetCPSR((arm.CPSR() &^ m) | (v & m))
	}
}
