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

package maths

import (
	"fmt"
	"math/bits"

	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// Register addresses.
const (
	regDivCnt    = 0x04000280
	regNumer     = 0x04000290
	regDenom     = 0x04000298
	regResult    = 0x040002a0
	regRemainder = 0x040002a8
	regSqrtCnt   = 0x040002b0
	regSqrt      = 0x040002b4
	regParam     = 0x040002b8
)

// DivMode selects the width of the division operands.
type DivMode int

// List of valid DivMode values.
const (
	Div32 DivMode = iota // 32 bit numerator, 32 bit denominator
	Div64_32             // 64 bit numerator, 32 bit denominator
	Div64                // 64 bit numerator, 64 bit denominator
)

func (m DivMode) String() string {
	switch m {
	case Div32:
		return "32/32"
	case Div64_32:
		return "64/32"
	}
	return "64/64"
}

// the divide by zero flag of DIVCNT
const divByZero = 0x4000

// Maths is the division and square root hardware.
type Maths struct {
	divMode   DivMode
	numer     uint64
	denom     uint64
	result    uint64
	remainder uint64

	sqrt64 bool
	param  uint64
	root   uint32
}

// NewMaths is the preferred method of initialisation for the Maths type.
func NewMaths() *Maths {
	m := &Maths{}
	m.Reset()
	return m
}

func (m *Maths) String() string {
	return fmt.Sprintf("div %s %d/%d=%d rem %d", m.divMode, int64(m.numer), int64(m.denom), int64(m.result), int64(m.remainder))
}

// Map the registers on the IO device.
func (m *Maths) Map(io *memory.IO) {
	io.Map(regDivCnt, regDivCnt+3, m)
	io.Map(regNumer, regParam+7, m)
}

// Reset to the power-on state.
func (m *Maths) Reset() {
	*m = Maths{}
	m.divide()
	m.squareRoot()
}

func (m *Maths) divide() {
	var n, d int64

	switch m.divMode {
	case Div32:
		n = int64(int32(m.numer))
		d = int64(int32(m.denom))
	case Div64_32:
		n = int64(m.numer)
		d = int64(int32(m.denom))
	default:
		n = int64(m.numer)
		d = int64(m.denom)
	}

	if d == 0 {
		m.remainder = uint64(n)
		if n < 0 {
			m.result = 1
		} else {
			m.result = 0xffffffffffffffff
		}

		// the 32 bit mode inverts the high word of the result
		if m.divMode == Div32 {
			m.result ^= 0xffffffff00000000
		}
		return
	}

	m.result = uint64(n / d)
	m.remainder = uint64(n % d)
}

func (m *Maths) squareRoot() {
	v := m.param
	if !m.sqrt64 {
		v &= 0xffffffff
	}
	m.root = isqrt(v)
}

// isqrt returns the integer square root of v, rounded down
func isqrt(v uint64) uint32 {
	var r uint64
	b := uint64(1) << ((63 - bits.LeadingZeros64(v|1)) &^ 1)
	for b != 0 {
		if v >= r+b {
			v -= r + b
			r = (r >> 1) + b
		} else {
			r >>= 1
		}
		b >>= 2
	}
	return uint32(r)
}

func (m *Maths) divCnt() uint32 {
	v := uint32(m.divMode)
	if m.denom == 0 {
		v |= divByZero
	}
	return v
}

// Read32 implements the memory.Registers interface.
func (m *Maths) Read32(addr uint32) uint32 {
	switch addr {
	case regDivCnt:
		return m.divCnt()
	case regNumer:
		return uint32(m.numer)
	case regNumer + 4:
		return uint32(m.numer >> 32)
	case regDenom:
		return uint32(m.denom)
	case regDenom + 4:
		return uint32(m.denom >> 32)
	case regResult:
		return uint32(m.result)
	case regResult + 4:
		return uint32(m.result >> 32)
	case regRemainder:
		return uint32(m.remainder)
	case regRemainder + 4:
		return uint32(m.remainder >> 32)
	case regSqrtCnt:
		if m.sqrt64 {
			return 1
		}
		return 0
	case regSqrt:
		return m.root
	case regParam:
		return uint32(m.param)
	case regParam + 4:
		return uint32(m.param >> 32)
	}
	return 0
}

func mergeLow(old uint64, val uint32, mask uint32) uint64 {
	return (old &^ 0xffffffff) | uint64(memory.Merge(uint32(old), val, mask))
}

func mergeHigh(old uint64, val uint32, mask uint32) uint64 {
	return (old & 0xffffffff) | uint64(memory.Merge(uint32(old>>32), val, mask))<<32
}

// Write32 implements the memory.Registers interface.
func (m *Maths) Write32(addr uint32, val uint32, mask uint32) {
	switch addr {
	case regDivCnt:
		if mask&0x03 != 0 {
			m.divMode = DivMode(min(val&0x03, 2))
		}
	case regNumer:
		m.numer = mergeLow(m.numer, val, mask)
	case regNumer + 4:
		m.numer = mergeHigh(m.numer, val, mask)
	case regDenom:
		m.denom = mergeLow(m.denom, val, mask)
	case regDenom + 4:
		m.denom = mergeHigh(m.denom, val, mask)
	case regSqrtCnt:
		if mask&0x01 != 0 {
			m.sqrt64 = val&0x01 == 0x01
		}
		m.squareRoot()
		return
	case regParam:
		m.param = mergeLow(m.param, val, mask)
		m.squareRoot()
		return
	case regParam + 4:
		m.param = mergeHigh(m.param, val, mask)
		m.squareRoot()
		return
	default:
		return
	}
	m.divide()
}

// State is the serialisable state of the maths hardware.
type State struct {
	DivMode DivMode
	Numer   uint64
	Denom   uint64
	Sqrt64  bool
	Param   uint64
}

// Snapshot returns a copy of the state. Results are not stored because they
// are recalculated by Plumb().
func (m *Maths) Snapshot() *State {
	return &State{
		DivMode: m.divMode,
		Numer:   m.numer,
		Denom:   m.denom,
		Sqrt64:  m.sqrt64,
		Param:   m.param,
	}
}

// Plumb restores a previous snapshot.
func (m *Maths) Plumb(s *State) {
	m.divMode = s.DivMode
	m.numer = s.Numer
	m.denom = s.Denom
	m.sqrt64 = s.Sqrt64
	m.param = s.Param
	m.divide()
	m.squareRoot()
}
