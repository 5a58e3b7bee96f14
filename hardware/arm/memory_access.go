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

func (arm *ARM) read8(addr uint32, seq bool) uint8 {
	v, c := arm.bus.Read8(addr, seq)
	arm.cycles += c
	return v
}

func (arm *ARM) read16(addr uint32, seq bool) uint16 {
	v, c := arm.bus.Read16(addr&^1, seq)
	arm.cycles += c
	return v
}

func (arm *ARM) read32(addr uint32, seq bool) uint32 {
	v, c := arm.bus.Read32(addr&^3, seq)
	arm.cycles += c
	return v
}

func (arm *ARM) write8(addr uint32, val uint8, seq bool) {
	arm.cycles += arm.bus.Write8(addr, val, seq)
}

func (arm *ARM) write16(addr uint32, val uint16, seq bool) {
	arm.cycles += arm.bus.Write16(addr&^1, val, seq)
}

func (arm *ARM) write32(addr uint32, val uint32, seq bool) {
	arm.cycles += arm.bus.Write32(addr&^3, val, seq)
}

// readRotated is the word load used by LDR and SWP. a misaligned address
// reads the aligned word rotated so that the addressed byte is in the least
// significant position
func (arm *ARM) readRotated(addr uint32) uint32 {
	v := arm.read32(addr, false)
	return bits.RotateLeft32(v, -int(addr&3)*8)
}

// readHalfword is the halfword load used by LDRH. on ARMv4 a misaligned
// address reads the aligned halfword rotated by eight bits
func (arm *ARM) readHalfword(addr uint32) uint32 {
	v := uint32(arm.read16(addr, false))
	if addr&1 == 1 && arm.mmap.MisalignedHalfwordRotate {
		return bits.RotateLeft32(v, -8)
	}
	return v
}

// readSignedHalfword is the halfword load used by LDRSH. on ARMv4 a
// misaligned address reads the sign-extended byte at the address
func (arm *ARM) readSignedHalfword(addr uint32) uint32 {
	if addr&1 == 1 && arm.mmap.MisalignedHalfwordRotate {
		return uint32(int32(int8(arm.read8(addr, false))))
	}
	return uint32(int32(int16(arm.read16(addr, false))))
}

// readSignedByte is the byte load used by LDRSB
func (arm *ARM) readSignedByte(addr uint32) uint32 {
	return uint32(int32(int8(arm.read8(addr, false))))
}
