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

// Package memory implements the address decoding layer of the emulated
// systems.
//
// A Bus is built once from a list of Region instances. Each region covers a
// contiguous range of the address space and is backed either by a byte slice
// or by a Device. Regions are mirrored within their range according to the
// Mask field.
//
// Every access through the Bus returns the number of cycles the access took,
// according to the Timing of the region and whether the access was
// sequential. A read from an address that no region covers returns the open
// bus value. A write to such an address is ignored. Neither case is an error.
//
// Memory mapped registers are handled by the IO device. Components register
// themselves with the IO device over a range of addresses by implementing the
// Registers interface. All register access is word granular: byte and
// halfword writes are presented to the component as a masked word write.
//
// Peek and Poke functions access memory without side effects and without
// cycle cost. They are intended for tests, snapshots and scripting.
package memory
