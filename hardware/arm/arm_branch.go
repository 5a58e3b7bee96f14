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

func (arm *ARM) decodeARMBranch(opcode uint32) decodeFunction {
	link := opcode&0x01000000 == 0x01000000
	offset := uint32(int32(opcode<<8) >> 6)

	return func() {
		if link {
			arm.state.registers[rLR] = arm.executingPC + 4
		}
		arm.branch(arm.state.registers[rPC] + offset)
	}
}

func (arm *ARM) decodeARMBranchExchange(opcode uint32) decodeFunction {
	rm := opcode & 0x0f

	return func() {
		arm.branchExchange(arm.state.registers[rm])
	}
}

func (arm *ARM) decodeARMBranchLinkExchange(opcode uint32) decodeFunction {
	rm := opcode & 0x0f

	return func() {
		target := arm.state.registers[rm]
		arm.state.registers[rLR] = arm.executingPC + 4
		arm.branchExchange(target)
	}
}

// the unconditional instructions are only found in ARMv5. on ARMv4 the NV
// condition means the instruction is never executed and this function is
// never called
func (arm *ARM) decodeARMUnconditional(opcode uint32) decodeFunction {
	switch {
	case opcode&0x0e000000 == 0x0a000000:
		// BLX immediate. the H bit adds a halfword to the offset
		offset := uint32(int32(opcode<<8)>>6) | ((opcode >> 23) & 0x02)
		return func() {
			arm.state.registers[rLR] = arm.executingPC + 4
			target := arm.state.registers[rPC] + offset
			arm.state.status.thumb = true
			arm.branch(target)
		}

	case opcode&0x0d70f000 == 0x0550f000:
		// PLD
		return func() {}
	}

	return arm.undefined
}
