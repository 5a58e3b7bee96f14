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

package keypad

import (
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// address of the KEYINPUT and KEYCNT registers
const regKeypad = 0x04000130

// Button is a bit mask of buttons.
type Button uint16

// List of valid Button values.
const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
	ButtonR
	ButtonL

	// the additional buttons of the dual-CPU system. they are not part of
	// KEYINPUT
	ButtonX
	ButtonY

	// the mask of buttons connected to KEYINPUT
	ButtonAll Button = 0x03ff
)

// KEYCNT bits
const (
	keycntIRQ = 0x4000
	keycntAND = 0x8000
)

// Interrupter is implemented by the interrupt controller.
type Interrupter interface {
	Request(src interrupts.Source)
}

// Keypad implements the KEYINPUT and KEYCNT registers of one CPU.
type Keypad struct {
	irq Interrupter

	// the buttons that are pressed. KEYINPUT is the inverse of this value
	pressed Button
	keycnt  uint16

	// the IRQ condition was met when last checked
	condition bool
}

// NewKeypad is the preferred method of initialisation for the Keypad type.
func NewKeypad(irq Interrupter) *Keypad {
	return &Keypad{irq: irq}
}

// Map the keypad registers on the IO device.
func (k *Keypad) Map(io *memory.IO) {
	io.Map(regKeypad, regKeypad+3, k)
}

// Reset the keypad to its power-on state.
func (k *Keypad) Reset() {
	k.pressed = 0
	k.keycnt = 0
	k.condition = false
}

// SetButtons sets the buttons that are pressed. Buttons not in the mask are
// released.
func (k *Keypad) SetButtons(pressed Button) {
	k.pressed = pressed
	k.check()
}

// Pressed returns the buttons that are pressed.
func (k *Keypad) Pressed() Button {
	return k.pressed
}

// KeyInput returns the value of the KEYINPUT register. A button that is
// pressed reads as zero.
func (k *Keypad) KeyInput() uint16 {
	return uint16(^k.pressed & ButtonAll)
}

// the IRQ is requested when the condition changes from false to true
func (k *Keypad) check() {
	sel := Button(k.keycnt) & ButtonAll
	var c bool
	if k.keycnt&keycntAND == keycntAND {
		c = sel != 0 && k.pressed&sel == sel
	} else {
		c = k.pressed&sel != 0
	}
	if c && !k.condition && k.keycnt&keycntIRQ == keycntIRQ {
		k.irq.Request(interrupts.Keypad)
	}
	k.condition = c
}

// Read32 implements the memory.Registers interface.
func (k *Keypad) Read32(_ uint32) uint32 {
	return uint32(k.KeyInput()) | uint32(k.keycnt)<<16
}

// Write32 implements the memory.Registers interface. KEYINPUT is read-only.
func (k *Keypad) Write32(_ uint32, val uint32, mask uint32) {
	if mask&0xffff0000 == 0 {
		return
	}
	v := memory.Merge(uint32(k.keycnt)<<16, val, mask&0xffff0000)
	k.keycnt = uint16(v>>16) & 0xc3ff
	k.check()
}

// State is the serialisable state of the keypad.
type State struct {
	Pressed   Button
	Keycnt    uint16
	Condition bool
}

// Snapshot returns a copy of the keypad state.
func (k *Keypad) Snapshot() State {
	return State{
		Pressed:   k.pressed,
		Keycnt:    k.keycnt,
		Condition: k.condition,
	}
}

// Plumb restores a previous snapshot.
func (k *Keypad) Plumb(s State) {
	k.pressed = s.Pressed
	k.keycnt = s.Keycnt
	k.condition = s.Condition
}
