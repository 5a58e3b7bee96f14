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
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopheradvance/curated"
)

// the size of the header of a card image
const ndsHeaderSize = 0x200

// the range of main RAM in the address space of both CPUs
const (
	mainRAMOrigin = 0x02000000
	mainRAMMemtop = 0x023fffff
)

// the range of shared and ARM7 WRAM in the address space of the ARM7
const (
	wramOrigin = 0x03000000
	wramMemtop = 0x03ffffff
)

// Binary describes one of the two CPU binaries in a card image.
type Binary struct {
	ROMOffset  uint32
	Entry      uint32
	RAMAddress uint32
	Size       uint32
}

func (b Binary) String() string {
	return fmt.Sprintf("rom %#08x entry %#08x ram %#08x size %#x", b.ROMOffset, b.Entry, b.RAMAddress, b.Size)
}

// Header is the information in the header of a card image that is needed to
// boot the card without the BIOS.
type Header struct {
	Title    string
	GameCode string

	ARM9 Binary
	ARM7 Binary
}

func parseBinary(data []byte, o int) Binary {
	return Binary{
		ROMOffset:  binary.LittleEndian.Uint32(data[o:]),
		Entry:      binary.LittleEndian.Uint32(data[o+4:]),
		RAMAddress: binary.LittleEndian.Uint32(data[o+8:]),
		Size:       binary.LittleEndian.Uint32(data[o+12:]),
	}
}

// ParseHeader reads the header of a card image and checks that the two
// binaries can be copied to memory.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < ndsHeaderSize {
		return nil, curated.Errorf("cartridge: %v", "card image is too small for a header")
	}

	h := &Header{
		Title:    headerString(data[0x00:0x0c]),
		GameCode: headerString(data[0x0c:0x10]),
		ARM9:     parseBinary(data, 0x20),
		ARM7:     parseBinary(data, 0x30),
	}

	if err := h.ARM9.check(data, "arm9", func(addr uint32) bool {
		return addr >= mainRAMOrigin && addr <= mainRAMMemtop
	}); err != nil {
		return nil, err
	}

	if err := h.ARM7.check(data, "arm7", func(addr uint32) bool {
		return (addr >= mainRAMOrigin && addr <= mainRAMMemtop) || (addr >= wramOrigin && addr <= wramMemtop)
	}); err != nil {
		return nil, err
	}

	return h, nil
}

func (b Binary) check(data []byte, name string, valid func(uint32) bool) error {
	if uint64(b.ROMOffset)+uint64(b.Size) > uint64(len(data)) {
		return curated.Errorf("cartridge: %v", fmt.Sprintf("%s binary is beyond the end of the card image", name))
	}
	if b.Size == 0 {
		return curated.Errorf("cartridge: %v", fmt.Sprintf("%s binary is empty", name))
	}
	if !valid(b.RAMAddress) || !valid(b.RAMAddress+b.Size-1) {
		return curated.Errorf("cartridge: %v", fmt.Sprintf("%s binary does not fit in memory (%#08x)", name, b.RAMAddress))
	}
	return nil
}

// Data returns the bytes of the binary in the card image. The header must
// have been returned by ParseHeader() for the same image.
func (b Binary) Data(image []byte) []byte {
	return image[b.ROMOffset : b.ROMOffset+b.Size]
}
