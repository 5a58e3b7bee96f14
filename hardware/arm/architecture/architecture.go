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

// Package architecture defines the Map type that is used to specify the
// differences between the ARM cores of the emulated systems.
package architecture

// ARMArchitecture defines the instruction set of the ARM core.
type ARMArchitecture string

// List of valid ARMArchitecture values.
const (
	ARMv4T  ARMArchitecture = "ARMv4T"
	ARMv5TE ARMArchitecture = "ARMv5TE"
)

// Map of the differences between architectures.
type Map struct {
	ARMArchitecture ARMArchitecture

	// the name of the core. used in log tags
	Name string

	// the core has the ARMv5TE instructions: BLX, CLZ, the saturating
	// arithmetic and the DSP multiplies, LDRD/STRD and PLD. loads to the PC
	// change the instruction set according to bit zero of the value loaded
	V5 bool

	// the core has the system control coprocessor (CP15)
	HasCP15 bool

	// the ARMv4 behaviour of LDRH and LDRSH for misaligned addresses. when
	// false misaligned halfword loads are force-aligned
	MisalignedHalfwordRotate bool

	// the ARMv4 behaviour of LDM and STM when the register list is empty.
	// the PC is transferred and the base register changes by 0x40
	EmptyListQuirk bool
}

// NewMap is the preferred method of initialisation for the Map type.
func NewMap(arch ARMArchitecture, name string) Map {
	mmap := Map{
		ARMArchitecture: arch,
		Name:            name,
	}

	switch mmap.ARMArchitecture {
	default:
		mmap.ARMArchitecture = ARMv4T
		fallthrough

	case ARMv4T:
		mmap.MisalignedHalfwordRotate = true
		mmap.EmptyListQuirk = true

	case ARMv5TE:
		mmap.V5 = true
		mmap.HasCP15 = true
	}

	return mmap
}
