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

// Timing of the display in scheduler cycles.
type Timing struct {
	CyclesPerDot int
	Dots         int
	VisibleDots  int

	// the cycle within the line that the horizontal blank starts
	HBlankStart int

	Lines        int
	VisibleLines int

	// the number of bits in the VCount setting of DISPSTAT
	VCountBits int
}

// CyclesPerLine returns the number of scheduler cycles in a scanline.
func (t Timing) CyclesPerLine() int {
	return t.CyclesPerDot * t.Dots
}

// CyclesPerFrame returns the number of scheduler cycles in a frame.
func (t Timing) CyclesPerFrame() int {
	return t.CyclesPerLine() * t.Lines
}

// GBATiming is the display timing of the single-CPU system.
var GBATiming = Timing{
	CyclesPerDot: 4,
	Dots:         308,
	VisibleDots:  240,
	HBlankStart:  1006,
	Lines:        228,
	VisibleLines: 160,
	VCountBits:   8,
}

// NDSTiming is the display timing of the dual-CPU system, measured in ARM9
// cycles.
var NDSTiming = Timing{
	CyclesPerDot: 12,
	Dots:         355,
	VisibleDots:  256,
	HBlankStart:  256 * 12,
	Lines:        263,
	VisibleLines: 192,
	VCountBits:   9,
}
