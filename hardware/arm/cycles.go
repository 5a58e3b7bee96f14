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

// iCycle adds an internal cycle.
func (arm *ARM) iCycle() {
	arm.cycles++
}

// fillPipeline is called after a branch. the instruction at the new PC is
// fetched with an N cycle and the following instruction with an S cycle.
func (arm *ARM) fillPipeline() {
	pc := arm.state.registers[rPC]
	if arm.state.status.thumb {
		_, n := arm.bus.Read16(pc, false)
		_, s := arm.bus.Read16(pc+2, true)
		arm.cycles += n + s
	} else {
		_, n := arm.bus.Read32(pc, false)
		_, s := arm.bus.Read32(pc+4, true)
		arm.cycles += n + s
	}
	arm.state.prefetchSeq = true
}

// storeRegisterCycles is called after a store instruction. the next
// instruction fetch is an N cycle
func (arm *ARM) storeRegisterCycles() {
	arm.state.prefetchSeq = false
}

// multiplyCycles returns the number of internal cycles for a multiply with
// the multiplier value rs. for signed multiplies the early termination
// checks for the top bits being all zero or all one.
//
// from "6.17 Multiply and Multiply-Accumulate" in "ARM7TDMI Technical Reference
// Manual"
func multiplyCycles(rs uint32, signed bool) int {
	check := func(mask uint32) bool {
		if rs&mask == 0 {
			return true
		}
		return signed && rs&mask == mask
	}

	switch {
	case check(0xffffff00):
		return 1
	case check(0xffff0000):
		return 2
	case check(0xff000000):
		return 3
	}
	return 4
}
