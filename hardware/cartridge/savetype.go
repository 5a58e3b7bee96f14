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
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
)

// SaveType is the type of backup memory in the cartridge.
type SaveType int

// List of valid SaveType values.
const (
	SaveNone SaveType = iota
	SaveSRAM
	SaveFlash64
	SaveFlash128
	SaveEEPROM512
	SaveEEPROM8K
)

func (s SaveType) String() string {
	switch s {
	case SaveNone:
		return "NONE"
	case SaveSRAM:
		return "SRAM"
	case SaveFlash64:
		return "FLASH64"
	case SaveFlash128:
		return "FLASH128"
	case SaveEEPROM512:
		return "EEPROM512"
	case SaveEEPROM8K:
		return "EEPROM8K"
	}
	return "unknown save type"
}

// IsEEPROM returns true if the save type is one of the EEPROM types.
func (s SaveType) IsEEPROM() bool {
	return s == SaveEEPROM512 || s == SaveEEPROM8K
}

// ParseSaveType converts a string to a SaveType. The comparison is case
// insensitive. The empty string is the same as "NONE".
func ParseSaveType(s string) (SaveType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return SaveNone, nil
	}
	for t := SaveNone; t <= SaveEEPROM8K; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return SaveNone, curated.Errorf("cartridge: %v", "unrecognised save type: "+s)
}
