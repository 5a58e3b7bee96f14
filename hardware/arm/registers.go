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

// register names
const (
	rSP = 13
	rLR = 14
	rPC = 15

	NumRegisters = 16
)

// SP, LR and PC are the register numbers of the stack pointer, link register
// and program counter.
const (
	SP = rSP
	LR = rLR
	PC = rPC
)

// register banks. the USR bank is shared with SYS mode
const (
	bankUSR = iota
	bankFIQ
	bankIRQ
	bankSVC
	bankABT
	bankUND
	numBanks
)

// ARMState is the complete register file of the CPU. The active registers
// always match the mode in the status register.
type ARMState struct {
	// the active registers
	registers [NumRegisters]uint32
	status    status

	// R8 to R12. index zero is used by every mode except FIQ, which uses
	// index one
	bankedR8 [2][5]uint32

	// R13 and R14 for each bank
	bankedSP [numBanks]uint32
	bankedLR [numBanks]uint32

	// saved program status register for each bank. the USR bank has no SPSR
	spsr [numBanks]uint32

	// the type of access for the next instruction fetch. an instruction fetch
	// is sequential unless the previous instruction was a store or branch
	prefetchSeq bool

	// system control coprocessor registers. unused if the architecture has
	// no CP15
	cp15 cp15Registers
}

// Snapshot makes a copy of the ARMState.
func (s *ARMState) Snapshot() *ARMState {
	n := *s
	return &n
}

// the index into bankedR8 for the bank
func r8Bank(b int) int {
	if b == bankFIQ {
		return 1
	}
	return 0
}

// SwitchMode changes the processor mode and swaps the register banks. an
// invalid mode is ignored and the return value is false.
func (arm *ARM) SwitchMode(mode Mode) bool {
	nb := mode.bank()
	if nb < 0 {
		return false
	}

	st := &arm.state
	ob := st.status.mode.bank()

	if ob != nb {
		// R8 to R12 only need to be swapped when entering or leaving FIQ
		if ob == bankFIQ || nb == bankFIQ {
			copy(st.bankedR8[r8Bank(ob)][:], st.registers[8:13])
			copy(st.registers[8:13], st.bankedR8[r8Bank(nb)][:])
		}

		st.bankedSP[ob] = st.registers[rSP]
		st.bankedLR[ob] = st.registers[rLR]
		st.registers[rSP] = st.bankedSP[nb]
		st.registers[rLR] = st.bankedLR[nb]
	}

	st.status.mode = mode
	return true
}

// CPSR returns the current program status register.
func (arm *ARM) CPSR() uint32 {
	return arm.state.status.value()
}

// SetCPSR sets the current program status register. If the mode bits are
// invalid the mode does not change.
func (arm *ARM) SetCPSR(v uint32) {
	arm.SwitchMode(Mode(v & maskMode))
	arm.state.status.setFlags(v)
	arm.state.status.irqDisable = v&flagI == flagI
	arm.state.status.fiqDisable = v&flagF == flagF
	arm.state.status.thumb = v&flagT == flagT
}

// SPSR returns the saved program status register of the current mode. The
// USR and SYS modes have no SPSR and the function returns the CPSR.
func (arm *ARM) SPSR() uint32 {
	b := arm.state.status.mode.bank()
	if b == bankUSR {
		return arm.CPSR()
	}
	return arm.state.spsr[b]
}

func (arm *ARM) setSPSR(v uint32) {
	b := arm.state.status.mode.bank()
	if b == bankUSR {
		return
	}
	arm.state.spsr[b] = v
}

// Mode returns the current processor mode.
func (arm *ARM) Mode() Mode {
	return arm.state.status.mode
}

// Thumb returns true if the CPU is in the Thumb state.
func (arm *ARM) Thumb() bool {
	return arm.state.status.thumb
}

// Registers returns a copy of the active registers. The PC is the address of
// the next instruction.
func (arm *ARM) Registers() [NumRegisters]uint32 {
	return arm.state.registers
}

// Register returns the value of the register in the current mode.
func (arm *ARM) Register(reg int) uint32 {
	return arm.state.registers[reg&0x0f]
}

// SetRegister sets the value of the register in the current mode. Setting
// the PC changes the address of the next instruction.
func (arm *ARM) SetRegister(reg int, value uint32) {
	arm.state.registers[reg&0x0f] = value
	if reg&0x0f == rPC {
		arm.state.prefetchSeq = false
	}
}

// BankedRegister returns the value of R13 or R14 for the mode, whether or
// not it is the current mode.
func (arm *ARM) BankedRegister(mode Mode, reg int) uint32 {
	b := mode.bank()
	if b < 0 {
		return 0
	}
	if b == arm.state.status.mode.bank() {
		return arm.state.registers[reg&0x0f]
	}
	switch reg {
	case rSP:
		return arm.state.bankedSP[b]
	case rLR:
		return arm.state.bankedLR[b]
	}
	if reg >= 8 && reg <= 12 {
		if (b == bankFIQ) == (arm.state.status.mode.bank() == bankFIQ) {
			return arm.state.registers[reg]
		}
		return arm.state.bankedR8[r8Bank(b)][reg-8]
	}
	return arm.state.registers[reg&0x0f]
}

// SetBankedRegister sets R13 or R14 for the mode, whether or not it is the
// current mode.
func (arm *ARM) SetBankedRegister(mode Mode, reg int, value uint32) {
	b := mode.bank()
	if b < 0 {
		return
	}
	if b == arm.state.status.mode.bank() {
		arm.state.registers[reg&0x0f] = value
		return
	}
	switch reg {
	case rSP:
		arm.state.bankedSP[b] = value
	case rLR:
		arm.state.bankedLR[b] = value
	}
}

// userRegister returns the value of the register in the USR bank. used by
// LDM/STM with the S bit
func (arm *ARM) userRegister(reg int) uint32 {
	if reg == rPC {
		return arm.state.registers[rPC]
	}
	return arm.BankedRegister(ModeUSR, reg)
}

func (arm *ARM) setUserRegister(reg int, value uint32) {
	b := arm.state.status.mode.bank()
	switch {
	case reg < 8 || reg == rPC:
		arm.state.registers[reg] = value
	case reg <= 12:
		if b == bankFIQ {
			arm.state.bankedR8[0][reg-8] = value
		} else {
			arm.state.registers[reg] = value
		}
	default:
		if b == bankUSR {
			arm.state.registers[reg] = value
		} else if reg == rSP {
			arm.state.bankedSP[bankUSR] = value
		} else {
			arm.state.bankedLR[bankUSR] = value
		}
	}
}
