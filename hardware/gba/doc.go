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

// Package gba is the single-CPU system. It creates the memory map for the
// ARM7TDMI and connects the scheduler, interrupt controller, timers, DMA
// channels, LCD timing, Direct Sound FIFOs and the cartridge.
//
// The system is stepped one CPU instruction at a time. The cycles used by
// the instruction advance the scheduler, which dispatches any events that
// have become due. When the CPU is halted the scheduler is advanced directly
// to the next event. For example, to run the emulation for one frame:
//
//	g, err := gba.NewGBA(prefs, cart, nil, lcd.NullRenderer{}, nil, nil)
//	if err != nil {
//		return err
//	}
//	err = g.RunFrame(ctx)
//
// The guest program is started without the BIOS boot sequence if the
// hardware.fastBoot preference is set, or if no BIOS image is supplied.
package gba
