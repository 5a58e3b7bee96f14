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

// shift types
const (
	shiftLSL = 0b00
	shiftLSR = 0b01
	shiftASR = 0b10
	shiftROR = 0b11
)

// shiftImmediate applies a shift with an immediate amount to v. a zero amount
// has the special meanings of LSR #32, ASR #32 and RRX for the LSR, ASR and
// ROR shift types. returns the shifted value and the carry out
func shiftImmediate(typ uint32, v uint32, amount uint32, carry bool) (uint32, bool) {
	switch typ {
	case shiftLSL:
		if amount == 0 {
			return v, carry
		}
		return v << amount, (v>>(32-amount))&0x01 == 0x01
	case shiftLSR:
		if amount == 0 {
			return 0, v&0x80000000 == 0x80000000
		}
		return v >> amount, (v>>(amount-1))&0x01 == 0x01
	case shiftASR:
		if amount == 0 {
			if v&0x80000000 == 0x80000000 {
				return 0xffffffff, true
			}
			return 0, false
		}
		return uint32(int32(v) >> amount), (v>>(amount-1))&0x01 == 0x01
	}

	// ROR
	if amount == 0 {
		// RRX
		r := v >> 1
		if carry {
			r |= 0x80000000
		}
		return r, v&0x01 == 0x01
	}
	return bits.RotateLeft32(v, -int(amount)), (v>>(amount-1))&0x01 == 0x01
}

// shiftRegister applies a shift with the amount taken from the bottom byte
// of a register
func shiftRegister(typ uint32, v uint32, amount uint32, carry bool) (uint32, bool) {
	amount &= 0xff
	if amount == 0 {
		return v, carry
	}

	switch typ {
	case shiftLSL:
		switch {
		case amount < 32:
			return v << amount, (v>>(32-amount))&0x01 == 0x01
		case amount == 32:
			return 0, v&0x01 == 0x01
		}
		return 0, false
	case shiftLSR:
		switch {
		case amount < 32:
			return v >> amount, (v>>(amount-1))&0x01 == 0x01
		case amount == 32:
			return 0, v&0x80000000 == 0x80000000
		}
		return 0, false
	case shiftASR:
		if amount < 32 {
			return uint32(int32(v) >> amount), (v>>(amount-1))&0x01 == 0x01
		}
		if v&0x80000000 == 0x80000000 {
			return 0xffffffff, true
		}
		return 0, false
	}

	// ROR
	amount &= 0x1f
	if amount == 0 {
		return v, v&0x80000000 == 0x80000000
	}
	return bits.RotateLeft32(v, -int(amount)), (v>>(amount-1))&0x01 == 0x01
}

// add returns a+b+c and sets the carry and overflow flags in the status
// register if setFlags is true
func (arm *ARM) add(a uint32, b uint32, c uint32, setFlags bool) uint32 {
	r := a + b + c
	if setFlags {
		arm.state.status.isCarry(a, b, c)
		arm.state.status.isOverflow(a, b, c)
	}
	return r
}

// sub returns a-b-(1-c). the carry flag is the inverse of the borrow
func (arm *ARM) sub(a uint32, b uint32, c uint32, setFlags bool) uint32 {
	return arm.add(a, ^b, c, setFlags)
}
