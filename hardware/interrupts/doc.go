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

// Package interrupts implements the interrupt controller of a CPU.
//
// The controller holds the enable (IE), request (IF) and master enable (IME)
// registers. Peripherals call Request() with the source of the interrupt.
// The interrupt line of the CPU is refreshed when the Interrupt event that
// Request() schedules is dispatched. The CPU tests the line together with the
// I bit of its status register before every instruction.
//
// Delivery of an interrupt to the CPU never clears the request. The guest
// program acknowledges an interrupt by writing a one to the bit in IF.
//
// The controller also implements the halt state of the CPU.
package interrupts
