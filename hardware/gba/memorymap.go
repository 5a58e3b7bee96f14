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

package gba

import (
	"github.com/jetsetilly/gopheradvance/hardware/cartridge"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// sizes of the internal memories
const (
	biosSize    = 0x4000
	ewramSize   = 0x40000
	iwramSize   = 0x8000
	paletteSize = 0x400
	vramSize    = 0x18000
	oamSize     = 0x400
)

// origins of the memory regions
const (
	originEWRAM   = 0x02000000
	originIWRAM   = 0x03000000
	originIO      = 0x04000000
	originPalette = 0x05000000
	originVRAM    = 0x06000000
	originOAM     = 0x07000000
	originWS0     = 0x08000000
	originWS1     = 0x0a000000
	originWS2     = 0x0c000000
	originEEPROM  = 0x0d000000
	originSRAM    = 0x0e000000
)

// the top of the IO region. the registers of the system are all below this
// address
const memtopIO = 0x040003ff

// the 96K of VRAM is mirrored in a 128K period. the last 32K of the period
// repeats the preceding 32K
func vramRemap(offset uint32) uint32 {
	if offset >= vramSize {
		return offset - 0x8000
	}
	return offset
}

// regions creates the memory map. the cartridge timings are shared with the
// Waitcnt type
func (g *GBA) regions() []*memory.Region {
	rom := func(name string, origin uint32, memtop uint32, timing *memory.Timing) *memory.Region {
		return &memory.Region{
			Name:    name,
			Origin:  origin,
			Memtop:  memtop,
			Mask:    cartridge.MaxSize - 1,
			Data:    g.Cart.ROM,
			Flags:   memory.ReadOnly,
			Timing:  timing,
			OpenBus: g.Cart.OpenBus,
		}
	}

	r := []*memory.Region{
		{
			Name:   "BIOS",
			Origin: 0x00000000,
			Memtop: biosSize - 1,
			Mask:   biosSize - 1,
			Data:   g.bios,
			Flags:  memory.ReadOnly,
		},
		{
			Name:   "EWRAM",
			Origin: originEWRAM,
			Memtop: originIWRAM - 1,
			Mask:   ewramSize - 1,
			Data:   g.ewram,
			Timing: memory.NewTiming16(3, 3),
		},
		{
			Name:   "IWRAM",
			Origin: originIWRAM,
			Memtop: originIO - 1,
			Mask:   iwramSize - 1,
			Data:   g.iwram,
		},
		{
			Name:   "IO",
			Origin: originIO,
			Memtop: memtopIO,
			Device: g.IO,
		},
		{
			Name:   "Palette",
			Origin: originPalette,
			Memtop: originVRAM - 1,
			Mask:   paletteSize - 1,
			Data:   g.palette,
			Flags:  memory.ByteWriteDup,
			Timing: memory.NewTiming16(1, 1),
		},
		{
			Name:   "VRAM",
			Origin: originVRAM,
			Memtop: originOAM - 1,
			Mask:   0x1ffff,
			Remap:  vramRemap,
			Data:   g.vram,
			Flags:  memory.ByteWriteDup,
			Timing: memory.NewTiming16(1, 1),
		},
		{
			Name:   "OAM",
			Origin: originOAM,
			Memtop: originWS0 - 1,
			Mask:   oamSize - 1,
			Data:   g.oam,
			Flags:  memory.ByteWriteIgnore,
		},
		rom("ROM WS0", originWS0, originWS1-1, g.Waitcnt.ws[0]),
		rom("ROM WS1", originWS1, originWS2-1, g.Waitcnt.ws[1]),
	}

	if g.Cart.SaveType.IsEEPROM() {
		r = append(r,
			rom("ROM WS2", originWS2, originEEPROM-1, g.Waitcnt.ws[2]),
			&memory.Region{
				Name:   "EEPROM",
				Origin: originEEPROM,
				Memtop: originSRAM - 1,
				Device: g.Cart.Backup,
				Timing: g.Waitcnt.ws[2],
			},
		)
	} else {
		r = append(r, rom("ROM WS2", originWS2, originSRAM-1, g.Waitcnt.ws[2]))
		if g.Cart.Backup != nil {
			r = append(r, &memory.Region{
				Name:   "SRAM",
				Origin: originSRAM,
				Memtop: 0x0fffffff,
				Device: g.Cart.Backup,
				Flags:  memory.Bus8,
				Timing: g.Waitcnt.sram,
			})
		}
	}

	return r
}
