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

// Package dma implements the four DMA channels of a CPU.
//
// A channel is armed when its enable bit is written. Channels with immediate
// timing start at once, by scheduling a DMA event at the current cycle.
// Channels with other timings wait for the system to call Trigger() with
// the matching timing (VBlank, HBlank, etc.) or, on the GBA, for the audio
// FIFOs to call FIFORequest() and for the LCD to call VideoCapture().
//
// When the DMA event is dispatched every pending channel runs to completion
// in priority order, channel 0 first. The number of cycles the transfers
// take on the bus is passed to the Stall callback, which is how the CPU is
// held off the bus while the transfer happens.
package dma
