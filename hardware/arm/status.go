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

import (
	"fmt"
	"strings"
)

// Mode is the processor mode in the mode bits of the CPSR.
type Mode uint32

// List of valid Mode values.
const (
	ModeUSR Mode = 0x10
	ModeFIQ Mode = 0x11
	ModeIRQ Mode = 0x12
	ModeSVC Mode = 0x13
	ModeABT Mode = 0x17
	ModeUND Mode = 0x1b
	ModeSYS Mode = 0x1f
)

func (m Mode) String() string {
	switch m {
	case ModeUSR:
		return "USR"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSVC:
		return "SVC"
	case ModeABT:
		return "ABT"
	case ModeUND:
		return "UND"
	case ModeSYS:
		return "SYS"
	}
	return fmt.Sprintf("%#02x", uint32(m))
}

// Valid returns true if the Mode is one of the defined modes.
func (m Mode) Valid() bool {
	return m.bank() >= 0
}

// the register bank used by the mode. USR and SYS share a bank. returns -1
// for invalid modes
func (m Mode) bank() int {
	switch m {
	case ModeUSR, ModeSYS:
		return bankUSR
	case ModeFIQ:
		return bankFIQ
	case ModeIRQ:
		return bankIRQ
	case ModeSVC:
		return bankSVC
	case ModeABT:
		return bankABT
	case ModeUND:
		return bankUND
	}
	return -1
}

// CPSR bits
const (
	flagN     = 0x80000000
	flagZ     = 0x40000000
	flagC     = 0x20000000
	flagV     = 0x10000000
	flagQ     = 0x08000000
	flagI     = 0x00000080
	flagF     = 0x00000040
	flagT     = 0x00000020
	maskMode  = 0x0000001f
	maskFlags = 0xf0000000
)

// the status register is the CPSR split into fields.
type status struct {
	negative   bool
	zero       bool
	carry      bool
	overflow   bool
	saturation bool

	irqDisable bool
	fiqDisable bool
	thumb      bool
	mode       Mode
}

func (sr status) String() string {
	s := strings.Builder{}

	flag := func(b bool, set rune, clr rune) {
		if b {
			s.WriteRune(set)
		} else {
			s.WriteRune(clr)
		}
	}

	flag(sr.negative, 'N', 'n')
	flag(sr.zero, 'Z', 'z')
	flag(sr.carry, 'C', 'c')
	flag(sr.overflow, 'V', 'v')
	flag(sr.saturation, 'Q', 'q')
	flag(sr.irqDisable, 'I', 'i')
	flag(sr.fiqDisable, 'F', 'f')
	flag(sr.thumb, 'T', 't')
	s.WriteRune(' ')
	s.WriteString(sr.mode.String())

	return s.String()
}

// value returns the status register in its packed form.
func (sr status) value() uint32 {
	v := uint32(sr.mode)
	if sr.negative {
		v |= flagN
	}
	if sr.zero {
		v |= flagZ
	}
	if sr.carry {
		v |= flagC
	}
	if sr.overflow {
		v |= flagV
	}
	if sr.saturation {
		v |= flagQ
	}
	if sr.irqDisable {
		v |= flagI
	}
	if sr.fiqDisable {
		v |= flagF
	}
	if sr.thumb {
		v |= flagT
	}
	return v
}

// setFlags sets the condition flags (and the Q flag) from the packed form.
func (sr *status) setFlags(v uint32) {
	sr.negative = v&flagN == flagN
	sr.zero = v&flagZ == flagZ
	sr.carry = v&flagC == flagC
	sr.overflow = v&flagV == flagV
	sr.saturation = v&flagQ == flagQ
}

func (sr *status) isNegative(a uint32) {
	sr.negative = a&0x80000000 == 0x80000000
}

func (sr *status) isZero(a uint32) {
	sr.zero = a == 0x00
}

// setNZ sets the negative and zero flags from the result
func (sr *status) setNZ(a uint32) {
	sr.isNegative(a)
	sr.isZero(a)
}

func (sr *status) isOverflow(a, b, c uint32) {
	d := (a & 0x7fffffff) + (b & 0x7fffffff) + c
	d >>= 31
	e := (d & 0x01) + ((a >> 31) & 0x01) + ((b >> 31) & 0x01)
	e >>= 1
	sr.overflow = (d^e)&0x01 == 0x01
}

func (sr *status) isCarry(a, b, c uint32) {
	d := (a & 0x7fffffff) + (b & 0x7fffffff) + c
	d = (d >> 31) + (a >> 31) + (b >> 31)
	sr.carry = d&0x02 == 0x02
}

// condition returns true if the condition field of an instruction passes.
// the NV condition (0b1111) never passes
func (sr *status) condition(cond uint32) bool {
	switch cond {
	case 0b0000:
		// equal
		return sr.zero
	case 0b0001:
		// not equal
		return !sr.zero
	case 0b0010:
		// carry set
		return sr.carry
	case 0b0011:
		// carry clear
		return !sr.carry
	case 0b0100:
		// minus
		return sr.negative
	case 0b0101:
		// plus
		return !sr.negative
	case 0b0110:
		// overflow
		return sr.overflow
	case 0b0111:
		// no overflow
		return !sr.overflow
	case 0b1000:
		// unsigned higher C==1 and Z==0
		return sr.carry && !sr.zero
	case 0b1001:
		// unsigned lower or same C==0 or Z==1
		return !sr.carry || sr.zero
	case 0b1010:
		// signed greater than or equal N==V
		return sr.negative == sr.overflow
	case 0b1011:
		// signed less than N!=V
		return sr.negative != sr.overflow
	case 0b1100:
		// signed greater than Z==0 and N==V
		return !sr.zero && sr.negative == sr.overflow
	case 0b1101:
		// signed less than or equal Z==1 or N!=V
		return sr.zero || sr.negative != sr.overflow
	case 0b1110:
		return true
	}
	return false
}
