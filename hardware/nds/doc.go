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

// Package nds is the dual-CPU system. It creates the memory maps of the
// ARM946E-S and the ARM7TDMI and connects the components that each CPU has
// its own copy of (interrupt controller, timers, DMA channels and keypad)
// with the components that are shared (scheduler, LCD timing, IPC, work RAM
// and the division and square root unit).
//
// Both CPUs are driven by a single scheduler. The master clock runs at the
// rate of the ARM9 and the ARM7 runs at half that rate. The CPU that is
// furthest behind in master time is always stepped next.
//
// The ARM9 sees memory through its tightly coupled memories. The DMA
// channels of the ARM9 see the main bus only.
//
// The card is started without the BIOS boot sequence if the hardware.fastBoot
// preference is set or if stub BIOS images are used. In that case the card
// binaries are copied to memory and both CPUs start at the entry points in
// the card header.
package nds
