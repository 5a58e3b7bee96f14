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

// armInstruction is the class of an ARM instruction. the class is found by
// looking up bits 27 to 20 and 7 to 4 of the opcode in armTable
type armInstruction int

// List of valid armInstruction values.
const (
	armUndefined armInstruction = iota
	armDataProcessing
	armPSRTransfer
	armMultiply
	armMultiplyLong
	armSingleDataSwap
	armBranchExchange
	armHalfwordTransfer
	armSingleDataTransfer
	armBlockDataTransfer
	armBranch
	armCoprocessorRegister
	armSoftwareInterrupt

	// ARMv5TE only
	armCountLeadingZeros
	armSaturatingArithmetic
	armSignedMultiplyHalfword
	armBranchLinkExchange
	armBreakpoint
	armDoublewordTransfer
)

var armTable [4096]armInstruction

func init() {
	for i := range armTable {
		armTable[i] = classifyARM(uint32(i>>4), uint32(i&0x0f))
	}
}

// the index into armTable for the opcode
func armIndex(opcode uint32) uint32 {
	return ((opcode >> 16) & 0xff0) | ((opcode >> 4) & 0x0f)
}

// classifyARM returns the instruction class for bits 27 to 20 (hi) and bits 7
// to 4 (lo) of an opcode.
//
// following the table in "4.1 Instruction Set Summary" of the "ARM7TDMI Data
// Sheet" and "A3.1 Instruction set encoding" of the "ARM Architecture
// Reference Manual"
func classifyARM(hi uint32, lo uint32) armInstruction {
	switch hi >> 5 {
	case 0b000:
		if lo == 0b1001 {
			switch {
			case hi&0xfc == 0x00:
				return armMultiply
			case hi&0xf8 == 0x08:
				return armMultiplyLong
			case hi&0xfb == 0x10:
				return armSingleDataSwap
			}
			return armUndefined
		}

		if lo&0b1001 == 0b1001 {
			// bit 7 and bit 4 set. bits 6 and 5 select the type of transfer
			if hi&0x01 == 0x00 && lo&0b0110 != 0b0010 {
				return armDoublewordTransfer
			}
			return armHalfwordTransfer
		}

		// the test and compare instructions without the S bit are the
		// miscellaneous instructions
		if hi&0xf9 == 0x10 {
			switch {
			case lo == 0b0000:
				return armPSRTransfer
			case lo == 0b0001 && hi == 0x12:
				return armBranchExchange
			case lo == 0b0001 && hi == 0x16:
				return armCountLeadingZeros
			case lo == 0b0011 && hi == 0x12:
				return armBranchLinkExchange
			case lo == 0b0101:
				return armSaturatingArithmetic
			case lo == 0b0111 && hi == 0x12:
				return armBreakpoint
			case lo&0b1001 == 0b1000:
				return armSignedMultiplyHalfword
			}
			return armUndefined
		}

		return armDataProcessing

	case 0b001:
		if hi&0xfb == 0x32 {
			return armPSRTransfer
		}
		if hi&0xfb == 0x30 {
			return armUndefined
		}
		return armDataProcessing

	case 0b010:
		return armSingleDataTransfer

	case 0b011:
		if lo&0x01 == 0x01 {
			return armUndefined
		}
		return armSingleDataTransfer

	case 0b100:
		return armBlockDataTransfer

	case 0b101:
		return armBranch

	case 0b110:
		// coprocessor data transfer. there are no coprocessors that support
		// LDC/STC
		return armUndefined

	case 0b111:
		if hi&0x10 == 0x10 {
			return armSoftwareInterrupt
		}
		if lo&0x01 == 0x01 {
			return armCoprocessorRegister
		}
		return armUndefined
	}

	return armUndefined
}

// returns an instance of decodeFunction for the opcode. the function raises
// the undefined instruction exception if the opcode is not valid for the
// architecture
func (arm *ARM) decodeARM(opcode uint32) decodeFunction {
	if opcode>>28 == 0b1111 {
		return arm.decodeARMUnconditional(opcode)
	}

	class := armTable[armIndex(opcode)]

	switch class {
	case armDataProcessing:
		return arm.decodeARMDataProcessing(opcode)
	case armPSRTransfer:
		return arm.decodeARMPSRTransfer(opcode)
	case armMultiply:
		return arm.decodeARMMultiply(opcode)
	case armMultiplyLong:
		return arm.decodeARMMultiplyLong(opcode)
	case armSingleDataSwap:
		return arm.decodeARMSingleDataSwap(opcode)
	case armBranchExchange:
		return arm.decodeARMBranchExchange(opcode)
	case armHalfwordTransfer:
		return arm.decodeARMHalfwordTransfer(opcode)
	case armSingleDataTransfer:
		return arm.decodeARMSingleDataTransfer(opcode)
	case armBlockDataTransfer:
		return arm.decodeARMBlockDataTransfer(opcode)
	case armBranch:
		return arm.decodeARMBranch(opcode)
	case armCoprocessorRegister:
		return arm.decodeARMCoprocessorRegister(opcode)
	case armSoftwareInterrupt:
		return arm.softwareInterrupt
	}

	if !arm.mmap.V5 {
		return arm.undefined
	}

	switch class {
	case armCountLeadingZeros:
		return arm.decodeARMCountLeadingZeros(opcode)
	case armSaturatingArithmetic:
		return arm.decodeARMSaturatingArithmetic(opcode)
	case armSignedMultiplyHalfword:
		return arm.decodeARMSignedMultiplyHalfword(opcode)
	case armBranchLinkExchange:
		return arm.decodeARMBranchLinkExchange(opcode)
	case armBreakpoint:
		return arm.prefetchAbort
	case armDoublewordTransfer:
		return arm.decodeARMDoublewordTransfer(opcode)
	}

	return arm.undefined
}
