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

import "github.com/jetsetilly/gopheradvance/logger"

// the values of the read-only identification registers of the ARM946E-S
const (
	cp15MainID    = 0x41059461
	cp15CacheType = 0x0f0d2112
	cp15TCMSize   = 0x00140180
)

// control register bits
const (
	cp15ControlDTCMEnable  = 0x00010000
	cp15ControlITCMEnable  = 0x00040000
	cp15ControlHighVectors = 0x00002000

	// bits that can be written. bits 3 to 6 always read as one
	cp15ControlWritable = 0x000ff085
	cp15ControlFixed    = 0x00000078
	cp15ControlReset    = 0x00002078
)

// TCMRegion is the location of a tightly coupled memory.
type TCMRegion struct {
	Enabled bool
	Base    uint32
	Size    uint32
}

// Contains returns true if the address is inside the region.
func (r TCMRegion) Contains(addr uint32) bool {
	return r.Enabled && addr-r.Base < r.Size
}

// cp15Registers is the writable state of the system control coprocessor
type cp15Registers struct {
	control uint32

	// protection unit
	dataCacheable  uint32
	instCacheable  uint32
	bufferable     uint32
	instPermission uint32
	dataPermission uint32
	regions        [8]uint32

	// cache lockdown
	dataLockdown uint32
	instLockdown uint32

	// TCM region registers
	dtcm uint32
	itcm uint32

	// process ID
	processID uint32
}

func (arm *ARM) resetCP15() {
	arm.state.cp15 = cp15Registers{}
	if !arm.mmap.HasCP15 {
		return
	}
	arm.state.cp15.control = cp15ControlReset
}

// HighVectors returns true if the exception vectors are at 0xffff0000.
func (arm *ARM) HighVectors() bool {
	return arm.mmap.HasCP15 && arm.state.cp15.control&cp15ControlHighVectors != 0
}

// tcmSize returns the size of a TCM region from the value of the region
// register. the smallest size is 4KB
func tcmSize(v uint32) uint32 {
	n := (v >> 1) & 0x1f
	if n < 3 {
		n = 3
	}
	if n > 23 {
		n = 23
	}
	return 512 << n
}

// DTCM returns the current data TCM region.
func (arm *ARM) DTCM() TCMRegion {
	if !arm.mmap.HasCP15 {
		return TCMRegion{}
	}
	v := arm.state.cp15.dtcm
	return TCMRegion{
		Enabled: arm.state.cp15.control&cp15ControlDTCMEnable != 0,
		Base:    v & 0xfffff000,
		Size:    tcmSize(v),
	}
}

// ITCM returns the current instruction TCM region. The ITCM is always based
// at address zero.
func (arm *ARM) ITCM() TCMRegion {
	if !arm.mmap.HasCP15 {
		return TCMRegion{}
	}
	return TCMRegion{
		Enabled: arm.state.cp15.control&cp15ControlITCMEnable != 0,
		Base:    0,
		Size:    tcmSize(arm.state.cp15.itcm),
	}
}

func (arm *ARM) decodeARMCoprocessorRegister(opcode uint32) decodeFunction {
	cp := (opcode >> 8) & 0x0f
	if cp != 15 || !arm.mmap.HasCP15 {
		return arm.undefined
	}

	load := opcode&0x00100000 == 0x00100000
	rd := (opcode >> 12) & 0x0f
	crn := (opcode >> 16) & 0x0f
	crm := opcode & 0x0f
	op2 := (opcode >> 5) & 0x07

	if load {
		return func() {
			v := arm.readCP15(crn, crm, op2)
			if rd == rPC {
				arm.state.status.setFlags(v)
				return
			}
			arm.state.registers[rd] = v
		}
	}

	return func() {
		v := arm.state.registers[rd]
		if rd == rPC {
			v += 4
		}
		arm.writeCP15(crn, crm, op2, v)
	}
}

func (arm *ARM) readCP15(crn uint32, crm uint32, op2 uint32) uint32 {
	c := &arm.state.cp15

	switch crn {
	case 0:
		switch op2 {
		case 1:
			return cp15CacheType
		case 2:
			return cp15TCMSize
		}
		return cp15MainID
	case 1:
		return c.control
	case 2:
		if op2 == 1 {
			return c.instCacheable
		}
		return c.dataCacheable
	case 3:
		return c.bufferable
	case 5:
		if op2 == 1 {
			return c.instPermission
		}
		return c.dataPermission
	case 6:
		return c.regions[crm&0x07]
	case 9:
		switch crm {
		case 0:
			if op2 == 1 {
				return c.instLockdown
			}
			return c.dataLockdown
		case 1:
			if op2 == 1 {
				return c.itcm
			}
			return c.dtcm
		}
	case 13:
		return c.processID
	}

	logger.Logf(logger.Allow, arm.mmap.Name, "unsupported CP15 read c%d,c%d,%d", crn, crm, op2)
	return 0
}

func (arm *ARM) writeCP15(crn uint32, crm uint32, op2 uint32, v uint32) {
	c := &arm.state.cp15

	switch crn {
	case 1:
		c.control = (v & cp15ControlWritable) | cp15ControlFixed
		arm.tcmChanged()
		return
	case 2:
		if op2 == 1 {
			c.instCacheable = v
		} else {
			c.dataCacheable = v
		}
		return
	case 3:
		c.bufferable = v
		return
	case 5:
		if op2 == 1 {
			c.instPermission = v
		} else {
			c.dataPermission = v
		}
		return
	case 6:
		c.regions[crm&0x07] = v
		return
	case 7:
		// cache operations have no effect. the two forms of wait for
		// interrupt halt the CPU
		if (crm == 0 && op2 == 4) || (crm == 8 && op2 == 2) {
			if arm.OnWaitForInterrupt != nil {
				arm.OnWaitForInterrupt()
			}
		}
		return
	case 9:
		switch crm {
		case 0:
			if op2 == 1 {
				c.instLockdown = v
			} else {
				c.dataLockdown = v
			}
			return
		case 1:
			if op2 == 1 {
				c.itcm = v
			} else {
				c.dtcm = v
			}
			arm.tcmChanged()
			return
		}
	case 13:
		c.processID = v
		return
	}

	logger.Logf(logger.Allow, arm.mmap.Name, "unsupported CP15 write c%d,c%d,%d = %08x", crn, crm, op2, v)
}

func (arm *ARM) tcmChanged() {
	if arm.OnTCMChange != nil {
		arm.OnTCMChange()
	}
}

// ReadCP15 returns the value of a CP15 register in the same way as the MRC
// instruction. Returns zero if the architecture has no CP15.
func (arm *ARM) ReadCP15(crn uint32, crm uint32, op2 uint32) uint32 {
	if !arm.mmap.HasCP15 {
		return 0
	}
	return arm.readCP15(crn, crm, op2)
}

// WriteCP15 writes a CP15 register in the same way as the MCR instruction.
// Used to set up the coprocessor when booting without the BIOS.
func (arm *ARM) WriteCP15(crn uint32, crm uint32, op2 uint32, v uint32) {
	if !arm.mmap.HasCP15 {
		return
	}
	arm.writeCP15(crn, crm, op2, v)
}
