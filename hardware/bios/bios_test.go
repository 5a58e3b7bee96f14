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

package bios_test

import (
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware/bios"
	"github.com/jetsetilly/gopheradvance/test"
)

func word(img []byte, addr uint32) uint32 {
	return binary.LittleEndian.Uint32(img[addr:])
}

func TestStubGBA(t *testing.T) {
	img, stub, err := bios.Load(bios.GBA, nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, stub)
	test.ExpectEquality(t, len(img), 0x4000)

	// reset loads the PC from the literal at 0x20
	test.ExpectEquality(t, word(img, 0x00), 0xe59ff018)
	test.ExpectEquality(t, word(img, 0x20), 0x08000000)

	// branches to the handlers
	test.ExpectEquality(t, word(img, 0x08), 0xea00004c)
	test.ExpectEquality(t, word(img, 0x18), 0xea000042)
	test.ExpectEquality(t, word(img, 0x128), 0xe92d500f)
	test.ExpectEquality(t, word(img, 0x13c), 0xe25ef004)
	test.ExpectEquality(t, word(img, 0x140), 0xe92d4003)

	// SWI 0x02 writes zero to HALTCNT
	test.ExpectEquality(t, word(img, 0x15c), 0xe3500002)
	test.ExpectEquality(t, word(img, 0x164), 0x03a01000)
}

func TestStubNDS(t *testing.T) {
	img := bios.Stub(bios.NDS7)
	test.ExpectEquality(t, len(img), 0x4000)
	test.ExpectEquality(t, word(img, 0x15c), 0xe3500006)
	test.ExpectEquality(t, word(img, 0x164), 0x03a01080)

	img = bios.Stub(bios.NDS9)
	test.ExpectEquality(t, len(img), 0x1000)
	test.ExpectEquality(t, word(img, 0x08), 0xea000054)
	test.ExpectEquality(t, word(img, 0x12c), 0xee190f11)
	test.ExpectEquality(t, word(img, 0x160), 0xe92d4003)
	test.ExpectEquality(t, word(img, 0x180), 0x0e070f90)
}

func TestValidate(t *testing.T) {
	_, _, err := bios.Load(bios.GBA, make([]byte, 0x1000))
	test.ExpectFailure(t, err)

	img, stub, err := bios.Load(bios.NDS9, make([]byte, 0x1000))
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, stub)
	test.ExpectEquality(t, len(img), 0x1000)

	test.ExpectFailure(t, bios.Validate(bios.NDS7, make([]byte, 0x1000)))
	test.ExpectSuccess(t, bios.Validate(bios.NDS7, make([]byte, 0x4000)))
}
