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
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/logger"
)

// the largest cartridge image supported
const MaxSize = 0x2000000

// header fields of a cartridge image
const (
	headerTitle    = 0xa0
	headerGameCode = 0xac
	headerFixed    = 0xb2
	headerSize     = 0xc0

	headerFixedValue = 0x96
)

// Cartridge is a loaded guest image and its backup memory.
type Cartridge struct {
	ROM      []byte
	Title    string
	GameCode string

	SaveType SaveType

	// Backup is nil if the SaveType is SaveNone
	Backup memory.Backup
}

// Load checks the guest image and creates the backup memory. The data is
// not copied.
func Load(data []byte, saveType SaveType) (*Cartridge, error) {
	if len(data) == 0 {
		return nil, curated.Errorf("cartridge: %v", "image is empty")
	}
	if len(data) > MaxSize {
		return nil, curated.Errorf("cartridge: %v", "image is larger than 32MB")
	}

	c := &Cartridge{
		ROM:      data,
		SaveType: saveType,
	}

	if len(data) >= headerSize {
		c.Title = headerString(data[headerTitle : headerTitle+12])
		c.GameCode = headerString(data[headerGameCode : headerGameCode+4])
		if data[headerFixed] != headerFixedValue {
			logger.Logf(logger.Allow, "cartridge", "header fixed value is missing (%#02x)", data[headerFixed])
		}
	} else {
		logger.Log(logger.Allow, "cartridge", "image is too small to have a header")
	}

	switch saveType {
	case SaveNone:
	case SaveSRAM:
		c.Backup = NewSRAM()
	case SaveFlash64:
		c.Backup = NewFlash(false)
	case SaveFlash128:
		c.Backup = NewFlash(true)
	case SaveEEPROM512:
		c.Backup = NewEEPROM(false)
	case SaveEEPROM8K:
		c.Backup = NewEEPROM(true)
	default:
		return nil, curated.Errorf("cartridge: %v", "unsupported save type")
	}

	logger.Logf(logger.Allow, "cartridge", "loaded %q (%s) %d bytes, %s", c.Title, c.GameCode, len(data), saveType)

	return c, nil
}

func headerString(b []byte) string {
	return strings.TrimRight(string(b), "\x00 ")
}

// OpenBus returns the value of a read beyond the end of the image. Each
// halfword of the value is the halfword address of the access.
func (c *Cartridge) OpenBus(addr uint32) uint32 {
	addr &= MaxSize - 1
	lo := (addr >> 1) & 0xffff
	hi := ((addr + 2) >> 1) & 0xffff
	return lo | hi<<16
}
