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

package cartridge

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopheradvance/curated"
)

// EEPROMState records how incoming bits to the EEPROM are interpreted.
type EEPROMState int

// List of valid EEPROMState values.
const (
	EEPROMIdle EEPROMState = iota
	EEPROMRequest
	EEPROMAddress
	EEPROMData
	EEPROMStop
)

func (s EEPROMState) String() string {
	switch s {
	case EEPROMIdle:
		return "idle"
	case EEPROMRequest:
		return "request"
	case EEPROMAddress:
		return "address"
	case EEPROMData:
		return "data"
	case EEPROMStop:
		return "stop"
	}
	return "unknown eeprom state"
}

// the two bit request values
const (
	eepromRead  = 0b11
	eepromWrite = 0b10
)

// number of bits in a read response. four ignored bits followed by the 64
// data bits
const eepromResponseBits = 68

// EEPROM is serial EEPROM. Each access transfers one bit in bit zero of a
// halfword.
type EEPROM struct {
	data     []byte
	addrBits int

	State   EEPROMState
	Request uint64

	// bits received for the current state
	Bits   uint64
	BitsCt int

	// the block (of eight bytes) being accessed
	Address uint32

	// the number of response bits sent. reading is in progress when
	// Response is less than eepromResponseBits
	Response int

	dirty bool
}

// NewEEPROM is the preferred method of initialisation for the EEPROM type.
// The large argument selects the 8K device, which uses 14 address bits
// rather than six.
func NewEEPROM(large bool) *EEPROM {
	e := &EEPROM{
		data:     make([]byte, 512),
		addrBits: 6,
		Response: eepromResponseBits,
	}
	if large {
		e.data = make([]byte, 0x2000)
		e.addrBits = 14
	}
	for i := range e.data {
		e.data[i] = 0xff
	}
	return e
}

func (e *EEPROM) String() string {
	return fmt.Sprintf("eeprom %d bytes [%s] block %d", len(e.data), e.State, e.Address)
}

func (e *EEPROM) resetBits() {
	e.Bits = 0
	e.BitsCt = 0
}

func (e *EEPROM) block() []byte {
	o := (e.Address * 8) % uint32(len(e.data))
	return e.data[o : o+8]
}

func (e *EEPROM) recvBit(bit uint64) {
	e.Bits = e.Bits<<1 | bit
	e.BitsCt++

	switch e.State {
	case EEPROMIdle:
		e.State = EEPROMRequest

	case EEPROMRequest:
		e.Request = e.Bits
		e.resetBits()
		if e.Request == eepromRead || e.Request == eepromWrite {
			e.State = EEPROMAddress
			e.Response = eepromResponseBits
		} else {
			e.State = EEPROMIdle
		}

	case EEPROMAddress:
		if e.BitsCt < e.addrBits {
			return
		}
		e.Address = uint32(e.Bits) & uint32(len(e.data)/8-1)
		e.resetBits()
		if e.Request == eepromWrite {
			e.State = EEPROMData
		} else {
			e.State = EEPROMStop
		}

	case EEPROMData:
		if e.BitsCt < 64 {
			return
		}
		binary.BigEndian.PutUint64(e.block(), e.Bits)
		e.dirty = true
		e.resetBits()
		e.State = EEPROMStop

	case EEPROMStop:
		e.resetBits()
		e.State = EEPROMIdle
		if e.Request == eepromRead {
			e.Response = 0
		}
	}
}

func (e *EEPROM) sendBit() uint16 {
	if e.Response >= eepromResponseBits {
		// ready
		return 1
	}
	n := e.Response
	e.Response++
	if n < 4 {
		return 0
	}
	v := binary.BigEndian.Uint64(e.block())
	return uint16(v>>(63-(n-4))) & 0x01
}

// Read8 implements the memory.Device interface.
func (e *EEPROM) Read8(addr uint32) uint8 {
	return uint8(e.sendBit())
}

// Read16 implements the memory.Device interface.
func (e *EEPROM) Read16(addr uint32) uint16 {
	return e.sendBit()
}

// Read32 implements the memory.Device interface.
func (e *EEPROM) Read32(addr uint32) uint32 {
	return uint32(e.sendBit())
}

// Peek8 implements the memory.Peeker interface.
func (e *EEPROM) Peek8(addr uint32) uint8 {
	return 1
}

// Write8 implements the memory.Device interface.
func (e *EEPROM) Write8(addr uint32, val uint8) {
	e.recvBit(uint64(val & 0x01))
}

// Write16 implements the memory.Device interface.
func (e *EEPROM) Write16(addr uint32, val uint16) {
	e.recvBit(uint64(val & 0x01))
}

// Write32 implements the memory.Device interface.
func (e *EEPROM) Write32(addr uint32, val uint32) {
	e.recvBit(uint64(val & 0x01))
}

// Data implements the memory.Backup interface.
func (e *EEPROM) Data() []byte {
	e.dirty = false
	return append([]byte(nil), e.data...)
}

// Restore implements the memory.Backup interface.
func (e *EEPROM) Restore(data []byte) error {
	if len(data) != len(e.data) {
		return curated.Errorf("eeprom: %v", "save data is the wrong size")
	}
	copy(e.data, data)
	e.dirty = false
	return nil
}

// Peek implements the memory.Backup interface.
func (e *EEPROM) Peek() []byte {
	return append([]byte(nil), e.data...)
}

// Plumb implements the memory.Backup interface.
func (e *EEPROM) Plumb(data []byte) error {
	if len(data) != len(e.data) {
		return curated.Errorf("eeprom: %v", "save data is the wrong size")
	}
	if !bytes.Equal(e.data, data) {
		copy(e.data, data)
		e.dirty = true
	}
	return nil
}

// Dirty implements the memory.Backup interface.
func (e *EEPROM) Dirty() bool {
	return e.dirty
}
