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

package nds

import (
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// the register word that contains RCNT and EXTKEYIN in the ARM7 IO space
const regRCNT = 0x04000134

// EXTKEYIN bits. a button that is pressed reads as zero. the pen is never
// down and the hinge is always open
const (
	extKeyX       = 0x0001
	extKeyY       = 0x0002
	extKeyFixed   = 0x0034
	extKeyDebug   = 0x0008
	extKeyPenDown = 0x0040
)

// extKeyIn is the RCNT register and the EXTKEYIN register with the X and Y
// buttons
type extKeyIn struct {
	keypad *keypad.Keypad
	rcnt   uint16
}

func (e *extKeyIn) extKeyIn() uint16 {
	v := uint16(extKeyFixed | extKeyDebug | extKeyPenDown | extKeyX | extKeyY)
	p := e.keypad.Pressed()
	if p&keypad.ButtonX == keypad.ButtonX {
		v &^= extKeyX
	}
	if p&keypad.ButtonY == keypad.ButtonY {
		v &^= extKeyY
	}
	return v
}

// Read32 implements the memory.Registers interface.
func (e *extKeyIn) Read32(_ uint32) uint32 {
	return uint32(e.rcnt) | uint32(e.extKeyIn())<<16
}

// Write32 implements the memory.Registers interface. EXTKEYIN is read-only.
func (e *extKeyIn) Write32(_ uint32, val uint32, mask uint32) {
	e.rcnt = uint16(memory.Merge(uint32(e.rcnt), val, mask&0xffff))
}
