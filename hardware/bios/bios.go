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

package bios

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopheradvance/curated"
)

// Kind of BIOS.
type Kind int

// List of valid Kind values.
const (
	GBA Kind = iota
	NDS7
	NDS9
)

func (k Kind) String() string {
	switch k {
	case GBA:
		return "GBA"
	case NDS7:
		return "NDS7"
	case NDS9:
		return "NDS9"
	}
	return "unknown bios"
}

// Size returns the size of the BIOS image for the Kind.
func (k Kind) Size() int {
	if k == NDS9 {
		return 0x1000
	}
	return 0x4000
}

// Load returns the BIOS image to use. If data is empty the stub is returned
// and the stub return value is true.
func Load(kind Kind, data []byte) (image []byte, stub bool, err error) {
	if len(data) == 0 {
		return Stub(kind), true, nil
	}
	if err := Validate(kind, data); err != nil {
		return nil, false, err
	}
	image = make([]byte, len(data))
	copy(image, data)
	return image, false, nil
}

// Validate checks that the data is suitable as a BIOS image for the Kind.
func Validate(kind Kind, data []byte) error {
	if len(data) != kind.Size() {
		return curated.Errorf("bios: %v", fmt.Sprintf("%s image should be %d bytes not %d", kind, kind.Size(), len(data)))
	}
	return nil
}

// Stub returns the stub image for the Kind.
func Stub(kind Kind) []byte {
	img := make([]byte, kind.Size())

	var code map[uint32][]uint32
	switch kind {
	case GBA:
		code = gbaStub
	case NDS7:
		code = nds7Stub
	case NDS9:
		code = nds9Stub
	}

	for org, words := range code {
		for i, w := range words {
			binary.LittleEndian.PutUint32(img[org+uint32(i)*4:], w)
		}
	}

	return img
}
