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

import "bytes"

// the library identifiers that the official SDK leaves in cartridges that use
// backup memory. the identifier is always followed by a three digit version
// number
var fingerprints = []struct {
	id       []byte
	saveType SaveType
}{
	{id: []byte("FLASH1M_V"), saveType: SaveFlash128},
	{id: []byte("FLASH512_V"), saveType: SaveFlash64},
	{id: []byte("FLASH_V"), saveType: SaveFlash64},
	{id: []byte("EEPROM_V"), saveType: SaveEEPROM8K},
	{id: []byte("SRAM_V"), saveType: SaveSRAM},
}

// Fingerprint searches the ROM for the identifier of a backup memory library
// and returns the save type it implies. EEPROM cartridges are assumed to be
// the 8K variety.
func Fingerprint(rom []byte) SaveType {
	for _, f := range fingerprints {
		if i := bytes.Index(rom, f.id); i >= 0 && i+len(f.id)+3 <= len(rom) {
			return f.saveType
		}
	}
	return SaveNone
}
