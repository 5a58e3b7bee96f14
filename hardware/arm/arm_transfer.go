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

// addressing returns the address to use for the transfer and the value to
// write back to the base register
func addressing(base uint32, offset uint32, pre bool, up bool) (addr uint32, writeback uint32) {
	if up {
		writeback = base + offset
	} else {
		writeback = base - offset
	}
	if pre {
		return writeback, writeback
	}
	return base, writeback
}

func (arm *ARM) decodeARMSingleDataTransfer(opcode uint32) decodeFunction {
	registerOffset := opcode&0x02000000 == 0x02000000
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	byteTransfer := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000 || !pre
	load := opcode&0x00100000 == 0x00100000
	rn := (opcode >> 16) & 0x0f
	rd := (opcode >> 12) & 0x0f

	var offset func() uint32
	if registerOffset {
		rm := opcode & 0x0f
		typ := (opcode >> 5) & 0x03
		amount := (opcode >> 7) & 0x1f
		offset = func() uint32 {
			v, _ := shiftImmediate(typ, arm.state.registers[rm], amount, arm.state.status.carry)
			return v
		}
	} else {
		imm := opcode & 0xfff
		offset = func() uint32 {
			return imm
		}
	}

	if load {
		return func() {
			addr, wb := addressing(arm.state.registers[rn], offset(), pre, up)

			var v uint32
			if byteTransfer {
				v = uint32(arm.read8(addr, false))
			} else {
				v = arm.readRotated(addr)
			}
			arm.iCycle()

			// the loaded value takes precedence over the writeback
			if writeback {
				arm.writeRegister(rn, wb)
			}
			if rd == rPC {
				arm.branchLoad(v)
			} else {
				arm.state.registers[rd] = v
			}
		}
	}

	return func() {
		addr, wb := addressing(arm.state.registers[rn], offset(), pre, up)

		// storing the PC stores the address of the instruction plus 12
		v := arm.state.registers[rd]
		if rd == rPC {
			v += 4
		}

		if byteTransfer {
			arm.write8(addr, uint8(v), false)
		} else {
			arm.write32(addr, v, false)
		}
		arm.storeRegisterCycles()

		if writeback {
			arm.writeRegister(rn, wb)
		}
	}
}

func (arm *ARM) decodeARMHalfwordTransfer(opcode uint32) decodeFunction {
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	immediate := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000 || !pre
	load := opcode&0x00100000 == 0x00100000
	rn := (opcode >> 16) & 0x0f
	rd := (opcode >> 12) & 0x0f
	sh := (opcode >> 5) & 0x03

	var offset func() uint32
	if immediate {
		imm := ((opcode >> 4) & 0xf0) | (opcode & 0x0f)
		offset = func() uint32 {
			return imm
		}
	} else {
		rm := opcode & 0x0f
		offset = func() uint32 {
			return arm.state.registers[rm]
		}
	}

	if load {
		return func() {
			addr, wb := addressing(arm.state.registers[rn], offset(), pre, up)

			var v uint32
			switch sh {
			case 0b01:
				v = arm.readHalfword(addr)
			case 0b10:
				v = arm.readSignedByte(addr)
			case 0b11:
				v = arm.readSignedHalfword(addr)
			}
			arm.iCycle()

			if writeback {
				arm.writeRegister(rn, wb)
			}
			if rd == rPC {
				arm.branchLoad(v)
			} else {
				arm.state.registers[rd] = v
			}
		}
	}

	// STRH. the doubleword transfers are decoded separately
	return func() {
		addr, wb := addressing(arm.state.registers[rn], offset(), pre, up)
		v := arm.state.registers[rd]
		if rd == rPC {
			v += 4
		}
		arm.write16(addr, uint16(v), false)
		arm.storeRegisterCycles()
		if writeback {
			arm.writeRegister(rn, wb)
		}
	}
}

func (arm *ARM) decodeARMDoublewordTransfer(opcode uint32) decodeFunction {
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	immediate := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000 || !pre
	rn := (opcode >> 16) & 0x0f
	rd := (opcode >> 12) & 0x0f
	store := opcode&0x20 == 0x20

	// the first register must be even
	if rd&0x01 == 0x01 {
		return arm.undefined
	}

	var offset func() uint32
	if immediate {
		imm := ((opcode >> 4) & 0xf0) | (opcode & 0x0f)
		offset = func() uint32 {
			return imm
		}
	} else {
		rm := opcode & 0x0f
		offset = func() uint32 {
			return arm.state.registers[rm]
		}
	}

	if store {
		return func() {
			addr, wb := addressing(arm.state.registers[rn], offset(), pre, up)
			addr &^= 3
			arm.write32(addr, arm.state.registers[rd], false)
			v := arm.state.registers[rd+1]
			if rd+1 == rPC {
				v += 4
			}
			arm.write32(addr+4, v, true)
			arm.storeRegisterCycles()
			if writeback {
				arm.writeRegister(rn, wb)
			}
		}
	}

	return func() {
		addr, wb := addressing(arm.state.registers[rn], offset(), pre, up)
		addr &^= 3
		lo := arm.read32(addr, false)
		hi := arm.read32(addr+4, true)
		arm.iCycle()
		if writeback {
			arm.writeRegister(rn, wb)
		}
		arm.state.registers[rd] = lo
		if rd+1 == rPC {
			arm.branchLoad(hi)
		} else {
			arm.state.registers[rd+1] = hi
		}
	}
}

func (arm *ARM) decodeARMBlockDataTransfer(opcode uint32) decodeFunction {
	pre := opcode&0x01000000 == 0x01000000
	up := opcode&0x00800000 == 0x00800000
	psr := opcode&0x00400000 == 0x00400000
	writeback := opcode&0x00200000 == 0x00200000
	load := opcode&0x00100000 == 0x00100000
	rn := (opcode >> 16) & 0x0f
	list := uint16(opcode)

	return func() {
		arm.blockTransfer(rn, list, pre, up, psr, writeback, load)
	}
}

// blockTransfer is used by LDM/STM and by the Thumb PUSH/POP and LDMIA/STMIA
// instructions. the lowest register is always transferred to or from the
// lowest address
// ldmWriteback returns true if the writeback of a load multiple replaces the
// value loaded into the base register. ARMv4 cores always keep the loaded
// value. ARMv5 cores keep it only when the base is the last of two or more
// registers in the list
func (arm *ARM) ldmWriteback(rn uint32, list uint16) bool {
	if list&(1<<rn) == 0 {
		return true
	}
	if !arm.mmap.V5 {
		return false
	}
	last := uint32(15 - bits.LeadingZeros16(list))
	return bits.OnesCount16(list) == 1 || rn != last
}

func (arm *ARM) blockTransfer(rn uint32, list uint16, pre bool, up bool, psr bool, writeback bool, load bool) {
	base := arm.state.registers[rn]

	n := uint32(bits.OnesCount16(list))
	size := n * 4
	if n == 0 {
		if arm.mmap.EmptyListQuirk {
			// the PC is transferred and the base changes as if all sixteen
			// registers had been transferred
			list = 1 << rPC
			size = 0x40
		} else {
			// nothing is transferred but the base still changes
			size = 0x40
		}
	}

	// lowest address of the transfer and the writeback value
	var addr, wb uint32
	if up {
		addr = base
		wb = base + size
		if pre {
			addr += 4
		}
	} else {
		addr = base - size
		wb = addr
		if !pre {
			addr += 4
		}
	}
	addr &^= 3

	// the S bit with LDM and the PC in the list is an exception return.
	// otherwise the S bit means the user bank registers are transferred
	restoreCPSR := psr && load && list&(1<<rPC) != 0
	userBank := psr && !restoreCPSR

	seq := false

	if load {
		var pc uint32
		loadPC := false

		for r := range uint32(16) {
			if list&(1<<r) == 0 {
				continue
			}
			v := arm.read32(addr, seq)
			seq = true
			addr += 4

			switch {
			case r == rPC:
				pc = v
				loadPC = true
			case userBank:
				arm.setUserRegister(int(r), v)
			default:
				arm.state.registers[r] = v
			}
		}
		arm.iCycle()

		if writeback && arm.ldmWriteback(rn, list) {
			arm.state.registers[rn] = wb
		}

		if loadPC {
			if restoreCPSR {
				arm.SetCPSR(arm.SPSR())
				arm.branch(pc)
			} else {
				arm.branchLoad(pc)
			}
		}

		return
	}

	first := true
	for r := range uint32(16) {
		if list&(1<<r) == 0 {
			continue
		}

		var v uint32
		switch {
		case r == rPC:
			v = arm.state.registers[rPC]
			if !arm.state.status.thumb {
				v += 4
			}
		case r == rn && !first:
			// the base register is stored with the written back value
			// unless it is the first register in the list
			if writeback {
				v = wb
			} else {
				v = base
			}
		case userBank:
			v = arm.userRegister(int(r))
		default:
			v = arm.state.registers[r]
		}

		arm.write32(addr, v, seq)
		seq = true
		addr += 4
		first = false
	}
	arm.storeRegisterCycles()

	if writeback {
		arm.writeRegister(rn, wb)
	}
}
