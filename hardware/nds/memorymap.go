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

package nds

import (
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// sizes of the memories
const (
	mainRAMSize  = 0x400000
	arm7WRAMSize = 0x10000
	paletteSize  = 0x800
	oamSize      = 0x800

	// the VRAM banks A to I as seen through the LCDC mapping of the ARM9
	lcdcVRAMSize = 0xa4000

	// the VRAM banks C and D as seen by the ARM7
	arm7VRAMSize = 0x40000
)

// origins of the memory regions
const (
	originMainRAM  = 0x02000000
	originWRAM     = 0x03000000
	originARM7WRAM = 0x03800000
	originIO       = 0x04000000
	originPalette  = 0x05000000
	originVRAM     = 0x06000000
	originLCDC     = 0x06800000
	originOAM      = 0x07000000
	originGBASlot  = 0x08000000
	memtopGBASlot  = 0x0affffff
	originBIOS9    = 0xffff0000
)

// the memory timings in the cycles of each CPU. these are approximations of
// the real timings, which depend on the cache and write buffer of the ARM9
var (
	arm9MainRAM = &memory.Timing{N16: 18, S16: 2, N32: 20, S32: 4}
	arm9Fast    = memory.NewTiming(2)
	arm9Video   = &memory.Timing{N16: 2, S16: 2, N32: 4, S32: 4}
	arm9Slot    = memory.NewTiming16(16, 12)
	arm7MainRAM = memory.NewTiming16(8, 1)
	arm7Video   = memory.NewTiming16(1, 1)
	arm7Slot    = memory.NewTiming16(8, 6)
)

// the GBA slot is empty. reads return all bits set
func emptySlot(_ uint32) uint32 {
	return 0xffffffff
}

func (n *NDS) arm9Regions() []*memory.Region {
	return []*memory.Region{
		{
			Name:   "Main RAM",
			Origin: originMainRAM,
			Memtop: originWRAM - 1,
			Mask:   mainRAMSize - 1,
			Data:   n.mainRAM,
			Timing: arm9MainRAM,
		},
		{
			Name:   "Shared WRAM",
			Origin: originWRAM,
			Memtop: originIO - 1,
			Device: wramView{w: n.WRAM},
			Timing: arm9Fast,
		},
		{
			Name:   "IO",
			Origin: originIO,
			Memtop: originPalette - 1,
			Device: n.IO9,
			Timing: arm9Fast,
		},
		{
			Name:   "Palette",
			Origin: originPalette,
			Memtop: originVRAM - 1,
			Mask:   paletteSize - 1,
			Data:   n.palette,
			Flags:  memory.ByteWriteIgnore,
			Timing: arm9Video,
		},
		{
			Name:   "VRAM LCDC",
			Origin: originLCDC,
			Memtop: originOAM - 1,
			Mask:   0xfffff,
			Data:   n.lcdcVRAM,
			Timing: arm9Video,
		},
		{
			Name:   "OAM",
			Origin: originOAM,
			Memtop: originGBASlot - 1,
			Mask:   oamSize - 1,
			Data:   n.oam,
			Flags:  memory.ByteWriteIgnore,
			Timing: arm9Fast,
		},
		{
			Name:    "GBA Slot",
			Origin:  originGBASlot,
			Memtop:  memtopGBASlot,
			Data:    []byte{},
			Flags:   memory.ReadOnly,
			Timing:  arm9Slot,
			OpenBus: emptySlot,
		},
		{
			Name:   "BIOS",
			Origin: originBIOS9,
			Memtop: 0xffffffff,
			Mask:   uint32(len(n.bios9) - 1),
			Data:   n.bios9,
			Flags:  memory.ReadOnly,
			Timing: arm9Fast,
		},
	}
}

func (n *NDS) arm7Regions() []*memory.Region {
	return []*memory.Region{
		{
			Name:   "BIOS",
			Origin: 0x00000000,
			Memtop: uint32(len(n.bios7) - 1),
			Mask:   uint32(len(n.bios7) - 1),
			Data:   n.bios7,
			Flags:  memory.ReadOnly,
		},
		{
			Name:   "Main RAM",
			Origin: originMainRAM,
			Memtop: originWRAM - 1,
			Mask:   mainRAMSize - 1,
			Data:   n.mainRAM,
			Timing: arm7MainRAM,
		},
		{
			Name:   "Shared WRAM",
			Origin: originWRAM,
			Memtop: originARM7WRAM - 1,
			Device: wramView{w: n.WRAM, arm7: true, fallback: n.arm7WRAM},
		},
		{
			Name:   "ARM7 WRAM",
			Origin: originARM7WRAM,
			Memtop: originIO - 1,
			Mask:   arm7WRAMSize - 1,
			Data:   n.arm7WRAM,
		},
		{
			Name:   "IO",
			Origin: originIO,
			Memtop: originPalette - 1,
			Device: n.IO7,
		},
		{
			Name:   "VRAM",
			Origin: originVRAM,
			Memtop: originOAM - 1,
			Mask:   arm7VRAMSize - 1,
			Data:   n.arm7VRAM,
			Timing: arm7Video,
		},
		{
			Name:    "GBA Slot",
			Origin:  originGBASlot,
			Memtop:  memtopGBASlot,
			Data:    []byte{},
			Flags:   memory.ReadOnly,
			Timing:  arm7Slot,
			OpenBus: emptySlot,
		},
	}
}
