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

// Package bios provides the BIOS images for the CPUs.
//
// A BIOS image supplied by the user is checked for size and used as it is.
// When no image is supplied a small stub is used instead. The stub is not an
// emulation of the BIOS functions. It contains the exception vectors, an IRQ
// handler that calls the handler address installed by the guest at the end
// of work RAM (or DTCM on the ARM9), and an SWI handler that implements the
// Halt function. Every other SWI returns immediately.
//
// The stub is enough for guest images that are booted directly, ie. without
// the BIOS boot sequence.
package bios
