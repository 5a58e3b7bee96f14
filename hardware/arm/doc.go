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

// Package arm implements the ARM7TDMI (ARMv4T) and ARM946E-S (ARMv5TE) CPU
// cores. The differences between the two cores are described by the
// architecture.Map type.
//
// Both the ARM and the Thumb instruction sets are decoded with tables that
// are built once, in the package init() function. The ARM table has 4096
// entries and is indexed by bits 27 to 20 and bits 7 to 4 of the opcode. The
// Thumb table has 1024 entries and is indexed by bits 15 to 6 of the opcode.
// Each entry is an instruction class. Decoding the class for a specific
// opcode produces a decodeFunction, which is a closure that executes the
// instruction.
//
// Decoded functions can be cached by instruction address. The cache is
// checked against the opcode that has been fetched, and the instruction set,
// so there is no need to invalidate the cache when memory changes. Use of the
// cache is controlled by the hardware.arm.decodeCache preference. Execution
// is identical whether the cache is used or not.
//
// The PC register holds the address of the next instruction between calls
// to Step(). While an instruction is executing the PC register reads as the
// address of the instruction plus two instruction widths, in the same way as
// the pipelined hardware.
//
// Cycles are counted with the N/S/I model. The number of cycles for each
// memory access is returned by the Bus.
//
// Guest code cannot cause the emulation to panic. Undefined instructions
// raise the undefined instruction exception.
package arm
