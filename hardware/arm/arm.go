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

	"github.com/jetsetilly/gopheradvance/hardware/arm/architecture"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/logger"
)

// decodeFunction executes a single decoded instruction. the function should
// only depend on the opcode it was decoded from so that it can be cached
type decodeFunction func()

// an entry in the decode cache. the entry is only valid if the opcode and
// instruction set match the instruction that has been fetched
type cacheEntry struct {
	opcode uint32
	thumb  bool
	f      decodeFunction
}

// exception vectors
const (
	vectorReset         = 0x00
	vectorUndefined     = 0x04
	vectorSWI           = 0x08
	vectorPrefetchAbort = 0x0c
	vectorDataAbort     = 0x10
	vectorIRQ           = 0x18
	vectorFIQ           = 0x1c
)

// the base address of the vectors when the CP15 high vectors bit is set
const highVectors = 0xffff0000

// ARM implements the ARM7TDMI and ARM946E-S processors.
type ARM struct {
	prefs *preferences.ARMPreferences
	mmap  architecture.Map
	bus   Bus
	irq   InterruptLine

	state ARMState

	// the number of cycles used by the current step
	cycles int

	// the address and opcode of the instruction being executed
	executingPC uint32
	opcode      uint32

	// the PC has been written by the current instruction
	branched bool

	// exception entry happened during the current step
	excepted bool

	// decode cache. useCache is updated from the preferences on Reset()
	useCache    bool
	decodeCache map[uint32]cacheEntry

	logUndefined bool

	// OnWaitForInterrupt is called when the CP15 wait for interrupt operation
	// is performed. can be nil
	OnWaitForInterrupt func()

	// OnTCMChange is called when the CP15 control or TCM region registers are
	// written, and after Plumb(). can be nil
	OnTCMChange func()
}

// NewARM is the preferred method of initialisation for the ARM type.
func NewARM(mmap architecture.Map, prefs *preferences.Preferences, bus Bus, irq InterruptLine) *ARM {
	arm := &ARM{
		prefs:       prefs.ARM,
		mmap:        mmap,
		bus:         bus,
		irq:         irq,
		decodeCache: make(map[uint32]cacheEntry),
	}
	arm.Reset()
	return arm
}

func (arm *ARM) String() string {
	s := strings.Builder{}
	for i := range NumRegisters {
		if i > 0 {
			if i%4 == 0 {
				s.WriteString("\n")
			} else {
				s.WriteString(" ")
			}
		}
		s.WriteString(fmt.Sprintf("R%-2d=%08x", i, arm.state.registers[i]))
	}
	s.WriteString("\n")
	s.WriteString(arm.state.status.String())
	return s.String()
}

// Architecture returns the architecture map of the CPU.
func (arm *ARM) Architecture() architecture.Map {
	return arm.mmap
}

// updatePrefs should be called whenever the preferences may have changed
func (arm *ARM) updatePrefs() {
	useCache := arm.prefs.DecodeCache.Get().(bool)
	if useCache != arm.useCache {
		arm.ClearCaches()
	}
	arm.useCache = useCache
	arm.logUndefined = arm.prefs.AbortOnUndefined.Get().(bool)
}

// ClearCaches empties the decode cache.
func (arm *ARM) ClearCaches() {
	clear(arm.decodeCache)
}

// Reset the CPU to the power-on state. The CPU starts in SVC mode with both
// interrupts disabled, at the reset vector.
func (arm *ARM) Reset() {
	arm.state = ARMState{}
	arm.state.status.mode = ModeSVC
	arm.state.status.irqDisable = true
	arm.state.status.fiqDisable = true
	arm.resetCP15()
	arm.state.registers[rPC] = arm.vectorBase() + vectorReset
	arm.ClearCaches()
	arm.updatePrefs()
}

// Snapshot makes a copy of the ARM state.
func (arm *ARM) Snapshot() *ARMState {
	return arm.state.Snapshot()
}

// Plumb restores the ARM state and updates the references to the bus and
// interrupt line. The state argument can be nil, in which case the state
// does not change.
func (arm *ARM) Plumb(state *ARMState, bus Bus, irq InterruptLine) {
	if state != nil {
		arm.state = *state
	}
	arm.bus = bus
	arm.irq = irq
	arm.ClearCaches()
	arm.updatePrefs()
	if arm.OnTCMChange != nil {
		arm.OnTCMChange()
	}
}

func (arm *ARM) vectorBase() uint32 {
	if arm.HighVectors() {
		return highVectors
	}
	return 0
}

// Step executes one instruction, or performs IRQ exception entry if the
// interrupt line is asserted and interrupts are enabled. Returns the number
// of cycles used and whether an exception was raised during the step. That
// is IRQ entry or an exception raised by the instruction (SWI, BKPT or an
// undefined instruction).
func (arm *ARM) Step() (int, bool) {
	arm.cycles = 0
	arm.excepted = false

	if arm.irq != nil && !arm.state.status.irqDisable && arm.irq.Line() {
		arm.branched = false
		arm.exception(vectorIRQ, ModeIRQ, arm.state.registers[rPC]+4)
		arm.fillPipeline()
		return arm.cycles, true
	}

	if arm.state.status.thumb {
		arm.stepThumb()
	} else {
		arm.stepARM()
	}

	return arm.cycles, arm.excepted
}

func (arm *ARM) stepARM() {
	pc := arm.state.registers[rPC] &^ 3
	arm.executingPC = pc

	opcode, c := arm.bus.Read32(pc, arm.state.prefetchSeq)
	arm.cycles += c
	arm.opcode = opcode
	arm.state.prefetchSeq = true

	// pipeline value of the PC
	arm.state.registers[rPC] = pc + 8
	arm.branched = false

	cond := opcode >> 28
	switch cond {
	case 0b1110:
	case 0b1111:
		// the unconditional instructions of ARMv5 are decoded as normal
		if !arm.mmap.V5 {
			arm.state.registers[rPC] = pc + 4
			return
		}
	default:
		if !arm.state.status.condition(cond) {
			arm.state.registers[rPC] = pc + 4
			return
		}
	}

	arm.lookupARM(pc, opcode)()

	if arm.branched {
		arm.fillPipeline()
	} else {
		arm.state.registers[rPC] = pc + 4
	}
}

func (arm *ARM) stepThumb() {
	pc := arm.state.registers[rPC] &^ 1
	arm.executingPC = pc

	opcode, c := arm.bus.Read16(pc, arm.state.prefetchSeq)
	arm.cycles += c
	arm.opcode = uint32(opcode)
	arm.state.prefetchSeq = true

	arm.state.registers[rPC] = pc + 4
	arm.branched = false

	arm.lookupThumb(pc, opcode)()

	if arm.branched {
		arm.fillPipeline()
	} else {
		arm.state.registers[rPC] = pc + 2
	}
}

func (arm *ARM) lookupARM(pc uint32, opcode uint32) decodeFunction {
	if !arm.useCache {
		return arm.decodeARM(opcode)
	}
	if e, ok := arm.decodeCache[pc]; ok && e.opcode == opcode && !e.thumb {
		return e.f
	}
	f := arm.decodeARM(opcode)
	arm.decodeCache[pc] = cacheEntry{opcode: opcode, f: f}
	return f
}

func (arm *ARM) lookupThumb(pc uint32, opcode uint16) decodeFunction {
	if !arm.useCache {
		return arm.decodeThumb(opcode)
	}
	if e, ok := arm.decodeCache[pc]; ok && e.opcode == uint32(opcode) && e.thumb {
		return e.f
	}
	f := arm.decodeThumb(opcode)
	arm.decodeCache[pc] = cacheEntry{opcode: uint32(opcode), thumb: true, f: f}
	return f
}

// branch sets the PC. the pipeline is refilled at the end of the step
func (arm *ARM) branch(target uint32) {
	if arm.state.status.thumb {
		target &^= 1
	} else {
		target &^= 3
	}
	arm.state.registers[rPC] = target
	arm.branched = true
}

// branchExchange sets the PC and selects the instruction set with bit zero
// of the target address
func (arm *ARM) branchExchange(target uint32) {
	arm.state.status.thumb = target&0x01 == 0x01
	arm.branch(target)
}

// branchLoad sets the PC with a value loaded from memory. ARMv5 cores change
// the instruction set
func (arm *ARM) branchLoad(target uint32) {
	if arm.mmap.V5 {
		arm.branchExchange(target)
	} else {
		arm.branch(target)
	}
}

// writeRegister writes a value to a register. writing to the PC is a branch
func (arm *ARM) writeRegister(reg uint32, v uint32) {
	if reg == rPC {
		arm.branch(v)
		return
	}
	arm.state.registers[reg] = v
}

// exception entry. the lr value is the return address as it should be
// stored in the link register of the exception mode
func (arm *ARM) exception(vector uint32, mode Mode, lr uint32) {
	arm.excepted = true
	cpsr := arm.CPSR()
	arm.SwitchMode(mode)
	arm.setSPSR(cpsr)
	arm.state.registers[rLR] = lr
	arm.state.status.irqDisable = true
	if vector == vectorReset || vector == vectorFIQ {
		arm.state.status.fiqDisable = true
	}
	arm.state.status.thumb = false
	arm.branch(arm.vectorBase() + vector)
}

// width of the current instruction set in bytes
func (arm *ARM) width() uint32 {
	if arm.state.status.thumb {
		return 2
	}
	return 4
}

// undefined instruction exception
func (arm *ARM) undefined() {
	if arm.logUndefined {
		logger.Logf(logger.Allow, arm.mmap.Name, "undefined instruction %08x at %08x (thumb=%v)", arm.opcode, arm.executingPC, arm.state.status.thumb)
	}
	arm.exception(vectorUndefined, ModeUND, arm.executingPC+arm.width())
}

// software interrupt exception
func (arm *ARM) softwareInterrupt() {
	arm.exception(vectorSWI, ModeSVC, arm.executingPC+arm.width())
}

// prefetch abort exception. raised by the BKPT instruction
func (arm *ARM) prefetchAbort() {
	arm.exception(vectorPrefetchAbort, ModeABT, arm.executingPC+4)
}

// ExecutingPC returns the address of the most recent instruction executed.
func (arm *ARM) ExecutingPC() uint32 {
	return arm.executingPC
}

// Opcode returns the opcode of the most recent instruction executed.
func (arm *ARM) Opcode() uint32 {
	return arm.opcode
}
