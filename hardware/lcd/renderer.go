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

package lcd

// Renderer is notified of video register writes and of scanline and frame
// boundaries.
type Renderer interface {
	// a video register has been written. the value is the full word after
	// the write and the mask shows which bits were written
	RegisterWrite(addr uint32, val uint32, mask uint32)

	// the visible part of the scanline has finished
	Scanline(line int)

	// the vertical blank has started
	VBlank()
}

// NullRenderer implements the Renderer interface and does nothing.
type NullRenderer struct{}

// RegisterWrite implements the Renderer interface.
func (NullRenderer) RegisterWrite(_ uint32, _ uint32, _ uint32) {}

// Scanline implements the Renderer interface.
func (NullRenderer) Scanline(_ int) {}

// VBlank implements the Renderer interface.
func (NullRenderer) VBlank() {}
