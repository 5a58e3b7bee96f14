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

// thumbFormat is the format of a Thumb instruction. the numbering follows
// Figure 5-1 of the ARM7TDMI Data Sheet
type thumbFormat int

// List of valid thumbFormat values.
const (
	thumbUndefined thumbFormat = iota
	thumbMoveShiftedRegister
	thumbAddSubtract
	thumbMovCmpAddSubImm
	thumbALUoperations
	thumbHiRegisterOps
	thumbPCrelativeLoad
	thumbLoadStoreWithRegisterOffset
	thumbLoadStoreSignExtendedByteHalfword
	thumbLoadStoreWithImmOffset
	thumbLoadStoreHalfword
	thumbSPRelativeLoadStore
	thumbLoadAddress
	thumbAddOffsetToSP
	thumbPushPopRegisters
	thumbMultipleLoadStore
	thumbConditionalBranch
	thumbSoftwareInterrupt
	thumbUnconditionalBranch
	thumbLongBranchWithLink

	// ARMv5TE only
	thumbBranchLinkExchangeSuffix
	thumbBreakpoint
)

var thumbTable [1024]thumbFormat

func init() {
	for i := range thumbTable {
		thumbTable[i] = classifyThumb(uint16(i << 6))
	}
}

// classifyThumb returns the format of the opcode. only bits 15 to 6 are
// considered.
//
// working backwards up the table in Figure 5-1 of the ARM7TDMI Data Sheet
func classifyThumb(opcode uint16) thumbFormat {
	if opcode&0xf000 == 0xf000 {
		return thumbLongBranchWithLink
	} else if opcode&0xf800 == 0xe800 {
		return thumbBranchLinkExchangeSuffix
	} else if opcode&0xf800 == 0xe000 {
		return thumbUnconditionalBranch
	} else if opcode&0xff00 == 0xdf00 {
		return thumbSoftwareInterrupt
	} else if opcode&0xff00 == 0xde00 {
		return thumbUndefined
	} else if opcode&0xf000 == 0xd000 {
		return thumbConditionalBranch
	} else if opcode&0xf000 == 0xc000 {
		return thumbMultipleLoadStore
	} else if opcode&0xff00 == 0xbe00 {
		return thumbBreakpoint
	} else if opcode&0xf600 == 0xb400 {
		return thumbPushPopRegisters
	} else if opcode&0xff00 == 0xb000 {
		return thumbAddOffsetToSP
	} else if opcode&0xf000 == 0xb000 {
		return thumbUndefined
	} else if opcode&0xf000 == 0xa000 {
		return thumbLoadAddress
	} else if opcode&0xf000 == 0x9000 {
		return thumbSPRelativeLoadStore
	} else if opcode&0xf000 == 0x8000 {
		return thumbLoadStoreHalfword
	} else if opcode&0xe000 == 0x6000 {
		return thumbLoadStoreWithImmOffset
	} else if opcode&0xf200 == 0x5200 {
		return thumbLoadStoreSignExtendedByteHalfword
	} else if opcode&0xf200 == 0x5000 {
		return thumbLoadStoreWithRegisterOffset
	} else if opcode&0xf800 == 0x4800 {
		return thumbPCrelativeLoad
	} else if opcode&0xfc00 == 0x4400 {
		return thumbHiRegisterOps
	} else if opcode&0xfc00 == 0x4000 {
		return thumbALUoperations
	} else if opcode&0xe000 == 0x2000 {
		return thumbMovCmpAddSubImm
	} else if opcode&0xf800 == 0x1800 {
		return thumbAddSubtract
	}
	return thumbMoveShiftedRegister
}

// returns an instance of decodeFunction for the Thumb opcode
func (arm *ARM) decodeThumb(opcode uint16) decodeFunction {
	switch thumbTable[opcode>>6] {
	case thumbMoveShiftedRegister:
		return arm.decodeThumbMoveShiftedRegister(opcode)
	case thumbAddSubtract:
		return arm.decodeThumbAddSubtract(opcode)
	case thumbMovCmpAddSubImm:
		return arm.decodeThumbMovCmpAddSubImm(opcode)
	case thumbALUoperations:
		return arm.decodeThumbALUoperations(opcode)
	case thumbHiRegisterOps:
		return arm.decodeThumbHiRegisterOps(opcode)
	case thumbPCrelativeLoad:
		return arm.decodeThumbPCrelativeLoad(opcode)
	case thumbLoadStoreWithRegisterOffset:
		return arm.decodeThumbLoadStoreWithRegisterOffset(opcode)
	case thumbLoadStoreSignExtendedByteHalfword:
		return arm.decodeThumbLoadStoreSignExtendedByteHalfword(opcode)
	case thumbLoadStoreWithImmOffset:
		return arm.decodeThumbLoadStoreWithImmOffset(opcode)
	case thumbLoadStoreHalfword:
		return arm.decodeThumbLoadStoreHalfword(opcode)
	case thumbSPRelativeLoadStore:
		return arm.decodeThumbSPRelativeLoadStore(opcode)
	case thumbLoadAddress:
		return arm.decodeThumbLoadAddress(opcode)
	case thumbAddOffsetToSP:
		return arm.decodeThumbAddOffsetToSP(opcode)
	case thumbPushPopRegisters:
		return arm.decodeThumbPushPopRegisters(opcode)
	case thumbMultipleLoadStore:
		return arm.decodeThumbMultipleLoadStore(opcode)
	case thumbConditionalBranch:
		return arm.decodeThumbConditionalBranch(opcode)
	case thumbSoftwareInterrupt:
		return arm.softwareInterrupt
	case thumbUnconditionalBranch:
		return arm.decodeThumbUnconditionalBranch(opcode)
	case thumbLongBranchWithLink:
		return arm.decodeThumbLongBranchWithLink(opcode)
	case thumbBranchLinkExchangeSuffix:
		if arm.mmap.V5 && opcode&0x01 == 0x00 {
			return arm.decodeThumbBranchLinkExchangeSuffix(opcode)
		}
	case thumbBreakpoint:
		if arm.mmap.V5 {
			return arm.prefetchAbort
		}
	}
	return arm.undefined
}

func (arm *ARM) decodeThumbMoveShiftedRegister(opcode uint16) decodeFunction {
	// format 1 - Move shifted register
	op := uint32(opcode&0x1800) >> 11
	shift := uint32(opcode&0x7c0) >> 6
	srcReg := (opcode & 0x38) >> 3
	destReg := opcode & 0x07

	return func() {
		v, carry := shiftImmediate(op, arm.state.registers[srcReg], shift, arm.state.status.carry)
		arm.state.registers[destReg] = v
		arm.state.status.carry = carry
		arm.state.status.setNZ(v)
	}
}

func (arm *ARM) decodeThumbAddSubtract(opcode uint16) decodeFunction {
	// format 2 - Add/subtract
	immediate := opcode&0x0400 == 0x0400
	subtract := opcode&0x0200 == 0x0200
	imm := uint32(opcode&0x01c0) >> 6
	srcReg := (opcode & 0x38) >> 3
	destReg := opcode & 0x07

	return func() {
		b := imm
		if !immediate {
			b = arm.state.registers[imm]
		}
		a := arm.state.registers[srcReg]

		var r uint32
		if subtract {
			r = arm.sub(a, b, 1, true)
		} else {
			r = arm.add(a, b, 0, true)
		}
		arm.state.status.setNZ(r)
		arm.state.registers[destReg] = r
	}
}

func (arm *ARM) decodeThumbMovCmpAddSubImm(opcode uint16) decodeFunction {
	// format 3 - Move/compare/add/subtract immediate
	op := (opcode & 0x1800) >> 11
	destReg := (opcode & 0x0700) >> 8
	imm := uint32(opcode & 0x00ff)

	return func() {
		a := arm.state.registers[destReg]

		switch op {
		case 0b00:
			arm.state.registers[destReg] = imm
			arm.state.status.setNZ(imm)
		case 0b01:
			arm.state.status.setNZ(arm.sub(a, imm, 1, true))
		case 0b10:
			r := arm.add(a, imm, 0, true)
			arm.state.status.setNZ(r)
			arm.state.registers[destReg] = r
		case 0b11:
			r := arm.sub(a, imm, 1, true)
			arm.state.status.setNZ(r)
			arm.state.registers[destReg] = r
		}
	}
}

// ALU operations of format 4 that are not also data processing operations
const (
	thumbALUShiftLSL = 0b0010
	thumbALUShiftLSR = 0b0011
	thumbALUShiftASR = 0b0100
	thumbALUShiftROR = 0b0111
	thumbALUNEG      = 0b1001
	thumbALUMUL      = 0b1101
)

func (arm *ARM) decodeThumbALUoperations(opcode uint16) decodeFunction {
	// format 4 - ALU operations
	op := uint32(opcode&0x03c0) >> 6
	srcReg := (opcode & 0x38) >> 3
	destReg := opcode & 0x07

	shift := func(typ uint32) decodeFunction {
		return func() {
			arm.iCycle()
			v, carry := shiftRegister(typ, arm.state.registers[destReg], arm.state.registers[srcReg], arm.state.status.carry)
			arm.state.registers[destReg] = v
			arm.state.status.carry = carry
			arm.state.status.setNZ(v)
		}
	}

	switch op {
	case thumbALUShiftLSL:
		return shift(shiftLSL)
	case thumbALUShiftLSR:
		return shift(shiftLSR)
	case thumbALUShiftASR:
		return shift(shiftASR)
	case thumbALUShiftROR:
		return shift(shiftROR)

	case thumbALUNEG:
		return func() {
			r := arm.sub(0, arm.state.registers[srcReg], 1, true)
			arm.state.status.setNZ(r)
			arm.state.registers[destReg] = r
		}

	case thumbALUMUL:
		return func() {
			rs := arm.state.registers[destReg]
			r := arm.state.registers[srcReg] * rs
			for range multiplyCycles(rs, true) {
				arm.iCycle()
			}
			arm.state.status.setNZ(r)
			arm.state.registers[destReg] = r
		}
	}

	// the remaining operations share the numbering of the ARM data
	// processing operations
	return func() {
		r, write := arm.aluOperation(op, arm.state.registers[destReg], arm.state.registers[srcReg], arm.state.status.carry, true)
		if write {
			arm.state.registers[destReg] = r
		}
	}
}

func (arm *ARM) decodeThumbHiRegisterOps(opcode uint16) decodeFunction {
	// format 5 - Hi register operations/branch exchange
	op := (opcode & 0x0300) >> 8
	hi1 := opcode&0x0080 == 0x0080
	hi2 := opcode&0x0040 == 0x0040
	srcReg := uint32(opcode&0x38) >> 3
	destReg := uint32(opcode & 0x07)

	if hi1 {
		destReg += 8
	}
	if hi2 {
		srcReg += 8
	}

	switch op {
	case 0b00:
		return func() {
			arm.writeRegister(destReg, arm.state.registers[destReg]+arm.state.registers[srcReg])
		}
	case 0b01:
		return func() {
			r := arm.sub(arm.state.registers[destReg], arm.state.registers[srcReg], 1, true)
			arm.state.status.setNZ(r)
		}
	case 0b10:
		return func() {
			arm.writeRegister(destReg, arm.state.registers[srcReg])
		}
	}

	// BX and, on ARMv5, BLX with the H1 bit
	if hi1 {
		if !arm.mmap.V5 {
			return arm.undefined
		}
		return func() {
			target := arm.state.registers[srcReg]
			arm.state.registers[rLR] = (arm.executingPC + 2) | 0x01
			arm.branchExchange(target)
		}
	}

	return func() {
		arm.branchExchange(arm.state.registers[srcReg])
	}
}

func (arm *ARM) decodeThumbPCrelativeLoad(opcode uint16) decodeFunction {
	// format 6 - PC-relative load
	destReg := (opcode & 0x0700) >> 8
	imm := uint32(opcode&0x00ff) << 2

	return func() {
		addr := (arm.state.registers[rPC] &^ 0x03) + imm
		arm.state.registers[destReg] = arm.read32(addr, false)
		arm.iCycle()
	}
}

// thumbLoad and thumbStore are the common implementation of the Thumb single
// load and store formats
const (
	thumbWord = iota
	thumbByte
	thumbHalfword
	thumbSignedByte
	thumbSignedHalfword
)

func (arm *ARM) thumbLoad(addr uint32, size int, destReg uint16) {
	var v uint32
	switch size {
	case thumbWord:
		v = arm.readRotated(addr)
	case thumbByte:
		v = uint32(arm.read8(addr, false))
	case thumbHalfword:
		v = arm.readHalfword(addr)
	case thumbSignedByte:
		v = arm.readSignedByte(addr)
	case thumbSignedHalfword:
		v = arm.readSignedHalfword(addr)
	}
	arm.iCycle()
	arm.state.registers[destReg] = v
}

func (arm *ARM) thumbStore(addr uint32, size int, srcReg uint16) {
	v := arm.state.registers[srcReg]
	switch size {
	case thumbWord:
		arm.write32(addr, v, false)
	case thumbByte:
		arm.write8(addr, uint8(v), false)
	case thumbHalfword:
		arm.write16(addr, uint16(v), false)
	}
	arm.storeRegisterCycles()
}

func (arm *ARM) decodeThumbLoadStoreWithRegisterOffset(opcode uint16) decodeFunction {
	// format 7 - Load/store with register offset
	load := opcode&0x0800 == 0x0800
	size := thumbWord
	if opcode&0x0400 == 0x0400 {
		size = thumbByte
	}
	offsetReg := (opcode & 0x01c0) >> 6
	baseReg := (opcode & 0x0038) >> 3
	reg := opcode & 0x0007

	if load {
		return func() {
			arm.thumbLoad(arm.state.registers[baseReg]+arm.state.registers[offsetReg], size, reg)
		}
	}
	return func() {
		arm.thumbStore(arm.state.registers[baseReg]+arm.state.registers[offsetReg], size, reg)
	}
}

func (arm *ARM) decodeThumbLoadStoreSignExtendedByteHalfword(opcode uint16) decodeFunction {
	// format 8 - Load/store sign-extended byte/halfword
	op := (opcode & 0x0c00) >> 10
	offsetReg := (opcode & 0x01c0) >> 6
	baseReg := (opcode & 0x0038) >> 3
	reg := opcode & 0x0007

	if op == 0b00 {
		return func() {
			arm.thumbStore(arm.state.registers[baseReg]+arm.state.registers[offsetReg], thumbHalfword, reg)
		}
	}

	size := [...]int{0, thumbSignedByte, thumbHalfword, thumbSignedHalfword}[op]
	return func() {
		arm.thumbLoad(arm.state.registers[baseReg]+arm.state.registers[offsetReg], size, reg)
	}
}

func (arm *ARM) decodeThumbLoadStoreWithImmOffset(opcode uint16) decodeFunction {
	// format 9 - Load/store with immediate offset
	load := opcode&0x0800 == 0x0800
	offset := uint32(opcode&0x07c0) >> 6
	size := thumbWord
	if opcode&0x1000 == 0x1000 {
		size = thumbByte
	} else {
		offset <<= 2
	}
	baseReg := (opcode & 0x0038) >> 3
	reg := opcode & 0x0007

	if load {
		return func() {
			arm.thumbLoad(arm.state.registers[baseReg]+offset, size, reg)
		}
	}
	return func() {
		arm.thumbStore(arm.state.registers[baseReg]+offset, size, reg)
	}
}

func (arm *ARM) decodeThumbLoadStoreHalfword(opcode uint16) decodeFunction {
	// format 10 - Load/store halfword
	load := opcode&0x0800 == 0x0800
	offset := uint32(opcode&0x07c0) >> 5
	baseReg := (opcode & 0x0038) >> 3
	reg := opcode & 0x0007

	if load {
		return func() {
			arm.thumbLoad(arm.state.registers[baseReg]+offset, thumbHalfword, reg)
		}
	}
	return func() {
		arm.thumbStore(arm.state.registers[baseReg]+offset, thumbHalfword, reg)
	}
}

func (arm *ARM) decodeThumbSPRelativeLoadStore(opcode uint16) decodeFunction {
	// format 11 - SP-relative load/store
	load := opcode&0x0800 == 0x0800
	reg := (opcode & 0x0700) >> 8
	offset := uint32(opcode&0x00ff) << 2

	if load {
		return func() {
			arm.thumbLoad(arm.state.registers[rSP]+offset, thumbWord, reg)
		}
	}
	return func() {
		arm.thumbStore(arm.state.registers[rSP]+offset, thumbWord, reg)
	}
}

func (arm *ARM) decodeThumbLoadAddress(opcode uint16) decodeFunction {
	// format 12 - Load address
	sp := opcode&0x0800 == 0x0800
	destReg := (opcode & 0x0700) >> 8
	offset := uint32(opcode&0x00ff) << 2

	if sp {
		return func() {
			arm.state.registers[destReg] = arm.state.registers[rSP] + offset
		}
	}
	return func() {
		arm.state.registers[destReg] = (arm.state.registers[rPC] &^ 0x03) + offset
	}
}

func (arm *ARM) decodeThumbAddOffsetToSP(opcode uint16) decodeFunction {
	// format 13 - Add offset to stack pointer
	negative := opcode&0x0080 == 0x0080
	offset := uint32(opcode&0x007f) << 2

	if negative {
		return func() {
			arm.state.registers[rSP] -= offset
		}
	}
	return func() {
		arm.state.registers[rSP] += offset
	}
}

func (arm *ARM) decodeThumbPushPopRegisters(opcode uint16) decodeFunction {
	// format 14 - Push/pop registers
	pop := opcode&0x0800 == 0x0800
	list := opcode & 0x00ff

	if pop {
		if opcode&0x0100 == 0x0100 {
			list |= 1 << rPC
		}
		return func() {
			arm.blockTransfer(rSP, list, false, true, false, true, true)
		}
	}

	if opcode&0x0100 == 0x0100 {
		list |= 1 << rLR
	}
	return func() {
		arm.blockTransfer(rSP, list, true, false, false, true, false)
	}
}

func (arm *ARM) decodeThumbMultipleLoadStore(opcode uint16) decodeFunction {
	// format 15 - Multiple load/store
	load := opcode&0x0800 == 0x0800
	baseReg := uint32(opcode&0x0700) >> 8
	list := opcode & 0x00ff

	return func() {
		arm.blockTransfer(baseReg, list, false, true, false, true, load)
	}
}

func (arm *ARM) decodeThumbConditionalBranch(opcode uint16) decodeFunction {
	// format 16 - Conditional branch
	cond := uint32(opcode&0x0f00) >> 8
	offset := uint32(int32(int8(opcode&0x00ff)) << 1)

	return func() {
		if arm.state.status.condition(cond) {
			arm.branch(arm.state.registers[rPC] + offset)
		}
	}
}

func (arm *ARM) decodeThumbUnconditionalBranch(opcode uint16) decodeFunction {
	// format 18 - Unconditional branch
	offset := uint32(int32(uint32(opcode)<<21) >> 20)

	return func() {
		arm.branch(arm.state.registers[rPC] + offset)
	}
}

func (arm *ARM) decodeThumbLongBranchWithLink(opcode uint16) decodeFunction {
	// format 19 - Long branch with link
	low := opcode&0x0800 == 0x0800
	offset := uint32(opcode & 0x07ff)

	if !low {
		// first instruction of the pair. the high part of the offset is added
		// to the PC and stored in the LR
		high := uint32(int32(offset<<21) >> 9)
		return func() {
			arm.state.registers[rLR] = arm.state.registers[rPC] + high
		}
	}

	offset <<= 1
	return func() {
		target := arm.state.registers[rLR] + offset
		arm.state.registers[rLR] = (arm.executingPC + 2) | 0x01
		arm.branch(target)
	}
}

// second instruction of the BLX pair. the target is in the ARM instruction set
func (arm *ARM) decodeThumbBranchLinkExchangeSuffix(opcode uint16) decodeFunction {
	offset := uint32(opcode&0x07ff) << 1

	return func() {
		target := (arm.state.registers[rLR] + offset) &^ 0x03
		arm.state.registers[rLR] = (arm.executingPC + 2) | 0x01
		arm.state.status.thumb = false
		arm.branch(target)
	}
}
