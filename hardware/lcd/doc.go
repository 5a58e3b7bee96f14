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

// Package lcd produces the timing signals of the video hardware.
//
// Pixels are not drawn by this package. Instead, video register writes and
// the scanline and frame boundaries are forwarded to a Renderer, which is an
// external collaborator of the emulation.
//
// The LCD type drives the line counter (VCOUNT) with two scheduler events
// per line: the start of the horizontal blank and the end of the line. Each
// CPU has its own Display with its own DISPSTAT register, interrupt
// controller and DMA controller.
package lcd
