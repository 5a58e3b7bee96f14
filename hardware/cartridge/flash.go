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
	"fmt"

	"github.com/jetsetilly/gopheradvance/curated"
)

const (
	flashBankSize   = 0x10000
	flashSectorSize = 0x1000
)

// device IDs. the low byte is the manufacturer and the high byte is the
// device
const (
	flashPanasonic64 = 0x1b32
	flashSanyo128    = 0x1362
)

// FlashState records how the next write to the Flash device is interpreted.
type FlashState int

// List of valid FlashState values.
const (
	FlashReady FlashState = iota
	FlashUnlock1
	FlashUnlock2
)

func (s FlashState) String() string {
	switch s {
	case FlashReady:
		return "ready"
	case FlashUnlock1:
		return "unlock 1"
	case FlashUnlock2:
		return "unlock 2"
	}
	return "unknown flash state"
}

// Flash is a flash memory device with the command protocol. It should be
// mapped with the memory.Bus8 flag.
type Flash struct {
	data []byte
	id   uint16

	State FlashState

	// the effect of the commands that have been received
	IDMode      bool
	ErasePrefix bool
	WriteByte   bool
	BankSelect  bool
	Bank        int

	dirty bool
}

// NewFlash is the preferred method of initialisation for the Flash type.
// The large argument selects the 128K device.
func NewFlash(large bool) *Flash {
	f := &Flash{
		data: make([]byte, flashBankSize),
		id:   flashPanasonic64,
	}
	if large {
		f.data = make([]byte, flashBankSize*2)
		f.id = flashSanyo128
	}
	for i := range f.data {
		f.data[i] = 0xff
	}
	return f
}

func (f *Flash) String() string {
	return fmt.Sprintf("flash %dK [%s] bank %d", len(f.data)/1024, f.State, f.Bank)
}

// Read8 implements the memory.Device interface.
func (f *Flash) Read8(addr uint32) uint8 {
	o := addr & (flashBankSize - 1)
	if f.IDMode && o < 2 {
		return uint8(f.id >> (o * 8))
	}
	return f.data[uint32(f.Bank)*flashBankSize+o]
}

// Read16 implements the memory.Device interface.
func (f *Flash) Read16(addr uint32) uint16 {
	return uint16(f.Read8(addr)) * 0x0101
}

// Read32 implements the memory.Device interface.
func (f *Flash) Read32(addr uint32) uint32 {
	return uint32(f.Read8(addr)) * 0x01010101
}

// Peek8 implements the memory.Peeker interface. The device ID is never
// returned.
func (f *Flash) Peek8(addr uint32) uint8 {
	return f.data[uint32(f.Bank)*flashBankSize+addr&(flashBankSize-1)]
}

// Write8 implements the memory.Device interface.
func (f *Flash) Write8(addr uint32, val uint8) {
	o := addr & (flashBankSize - 1)

	if f.WriteByte {
		f.WriteByte = false
		f.data[uint32(f.Bank)*flashBankSize+o] = val
		f.dirty = true
		return
	}

	if f.BankSelect {
		f.BankSelect = false
		if o == 0 && len(f.data) > flashBankSize {
			f.Bank = int(val & 0x01)
		}
		return
	}

	switch f.State {
	case FlashReady:
		if o == 0x5555 && val == 0xaa {
			f.State = FlashUnlock1
		} else if val == 0xf0 {
			f.IDMode = false
			f.ErasePrefix = false
		}

	case FlashUnlock1:
		if o == 0x2aaa && val == 0x55 {
			f.State = FlashUnlock2
		} else {
			f.State = FlashReady
		}

	case FlashUnlock2:
		f.State = FlashReady
		f.command(o, val)
	}
}

func (f *Flash) command(o uint32, val uint8) {
	if f.ErasePrefix && val == 0x30 {
		f.ErasePrefix = false
		s := uint32(f.Bank)*flashBankSize + o&^(flashSectorSize-1)
		for i := range uint32(flashSectorSize) {
			f.data[s+i] = 0xff
		}
		f.dirty = true
		return
	}

	if o != 0x5555 {
		return
	}

	switch val {
	case 0x90:
		f.IDMode = true
	case 0xf0:
		f.IDMode = false
		f.ErasePrefix = false
	case 0x80:
		f.ErasePrefix = true
	case 0x10:
		if f.ErasePrefix {
			f.ErasePrefix = false
			for i := range f.data {
				f.data[i] = 0xff
			}
			f.dirty = true
		}
	case 0xa0:
		f.WriteByte = true
	case 0xb0:
		f.BankSelect = true
	}
}

// Write16 implements the memory.Device interface.
func (f *Flash) Write16(addr uint32, val uint16) {
	f.Write8(addr, uint8(val))
}

// Write32 implements the memory.Device interface.
func (f *Flash) Write32(addr uint32, val uint32) {
	f.Write8(addr, uint8(val))
}

// Data implements the memory.Backup interface.
func (f *Flash) Data() []byte {
	f.dirty = false
	return append([]byte(nil), f.data...)
}

// Restore implements the memory.Backup interface.
func (f *Flash) Restore(data []byte) error {
	if len(data) != len(f.data) {
		return curated.Errorf("flash: %v", "save data is the wrong size")
	}
	copy(f.data, data)
	f.dirty = false
	return nil
}

// Peek implements the memory.Backup interface.
func (f *Flash) Peek() []byte {
	return append([]byte(nil), f.data...)
}

// Plumb implements the memory.Backup interface.
func (f *Flash) Plumb(data []byte) error {
	if len(data) != len(f.data) {
		return curated.Errorf("flash: %v", "save data is the wrong size")
	}
	if !bytes.Equal(f.data, data) {
		copy(f.data, data)
		f.dirty = true
	}
	return nil
}

// Dirty implements the memory.Backup interface.
func (f *Flash) Dirty() bool {
	return f.dirty
}
