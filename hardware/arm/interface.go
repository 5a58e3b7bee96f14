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

// Bus is the memory as seen by the CPU. The cycles returned by the functions
// include wait states. The seq argument indicates a sequential access.
type Bus interface {
	Read8(addr uint32, seq bool) (uint8, int)
	Read16(addr uint32, seq bool) (uint16, int)
	Read32(addr uint32, seq bool) (uint32, int)
	Write8(addr uint32, val uint8, seq bool) int
	Write16(addr uint32, val uint16, seq bool) int
	Write32(addr uint32, val uint32, seq bool) int
}

// InterruptLine is the IRQ input of the CPU.
type InterruptLine interface {
	Line() bool
}
