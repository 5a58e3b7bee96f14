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

func (arm *ARM) decodeARMMultiply(opcode uint32) decodeFunction {
	accumulate := opcode&0x00200000 == 0x00200000
	setFlags := opcode&0x00100000 == 0x00100000
	rd := (opcode >> 16) & 0x0f
	rn := (opcode >> 12) & 0x0f
	rs := (opcode >> 8) & 0x0f
	rm := opcode & 0x0f

	return func() {
		s := arm.state.registers[rs]
		r := arm.state.registers[rm] * s
		for range multiplyCycles(s, true) {
			arm.iCycle()
		}
		if accumulate {
			r += arm.state.registers[rn]
			arm.iCycle()
		}
		if setFlags {
			arm.state.status.setNZ(r)
		}
		arm.writeRegister(rd, r)
	}
}

func (arm *ARM) decodeARMMultiplyLong(opcode uint32) decodeFunction {
	signed := opcode&0x00400000 == 0x00400000
	accumulate := opcode&0x00200000 == 0x00200000
	setFlags := opcode&0x00100000 == 0x00100000
	rdHi := (opcode >> 16) & 0x0f
	rdLo := (opcode >> 12) & 0x0f
	rs := (opcode >> 8) & 0x0f
	rm := opcode & 0x0f

	return func() {
		s := arm.state.registers[rs]
		m := arm.state.registers[rm]

		var r uint64
		if signed {
			r = uint64(int64(int32(m)) * int64(int32(s)))
		} else {
			r = uint64(m) * uint64(s)
		}

		for range multiplyCycles(s, signed) + 1 {
			arm.iCycle()
		}

		if accumulate {
			r += uint64(arm.state.registers[rdHi])<<32 | uint64(arm.state.registers[rdLo])
			arm.iCycle()
		}

		if setFlags {
			arm.state.status.negative = r&0x8000000000000000 == 0x8000000000000000
			arm.state.status.zero = r == 0
		}

		arm.writeRegister(rdLo, uint32(r))
		arm.writeRegister(rdHi, uint32(r>>32))
	}
}

func (arm *ARM) decodeARMSingleDataSwap(opcode uint32) decodeFunction {
	byteSwap := opcode&0x00400000 == 0x00400000
	rn := (opcode >> 16) & 0x0f
	rd := (opcode >> 12) & 0x0f
	rm := opcode & 0x0f

	return func() {
		addr := arm.state.registers[rn]
		v := arm.state.registers[rm]

		if byteSwap {
			r := arm.read8(addr, false)
			arm.write8(addr, uint8(v), false)
			arm.writeRegister(rd, uint32(r))
		} else {
			r := arm.readRotated(addr)
			arm.write32(addr, v, false)
			arm.writeRegister(rd, r)
		}

		arm.iCycle()
		arm.storeRegisterCycles()
	}
}
