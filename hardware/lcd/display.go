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

package lcd

import (
	"github.com/jetsetilly/gopheradvance/hardware/dma"
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// DISPSTAT bits
const (
	statVBlank     = 0x0001
	statHBlank     = 0x0002
	statVCount     = 0x0004
	statVBlankIRQ  = 0x0008
	statHBlankIRQ  = 0x0010
	statVCountIRQ  = 0x0020
	statVCountHigh = 0x0080
	statWritable   = 0xff38
)

// address of DISPSTAT and VCOUNT
const regDispstat = 0x04000004

// Interrupter is implemented by the interrupt controller.
type Interrupter interface {
	Request(src interrupts.Source)
}

// DMA is implemented by the DMA controller.
type DMA interface {
	Trigger(timing dma.Timing)
	VideoCapture(line int)
}

// Display is the view of the LCD from one CPU.
type Display struct {
	lcd      *LCD
	irq      Interrupter
	dma      DMA
	renderer Renderer

	dispstat uint16

	// video registers that are stored and forwarded to the renderer
	video []*memory.Store
}

// Map DISPSTAT/VCOUNT and the video registers on the IO device. The video
// register ranges are given as pairs of origin and memtop.
func (d *Display) Map(io *memory.IO, video ...[2]uint32) {
	for _, r := range video {
		s := memory.NewStore(r[0], r[1]-r[0]+1)
		s.Notify = d.renderer.RegisterWrite
		d.video = append(d.video, s)
		io.Map(r[0], r[1], s)
	}

	// mapped last so that it takes precedence over the video ranges
	io.Map(regDispstat, regDispstat+3, d)
}

// Dispstat returns the current value of the DISPSTAT register.
func (d *Display) Dispstat() uint16 {
	return d.dispstat
}

func (d *Display) vcountSetting() int {
	s := int(d.dispstat >> 8)
	if d.lcd.timing.VCountBits > 8 && d.dispstat&statVCountHigh == statVCountHigh {
		s |= 0x100
	}
	return s
}

func (d *Display) hblank(line int) {
	d.dispstat |= statHBlank
	if d.dispstat&statHBlankIRQ == statHBlankIRQ {
		d.irq.Request(interrupts.HBlank)
	}
	if line < d.lcd.timing.VisibleLines {
		if d.dma != nil {
			d.dma.Trigger(dma.HBlank)
		}
		d.renderer.Scanline(line)
	}
}

func (d *Display) lineStart(line int) {
	d.dispstat &^= statHBlank

	if line == d.vcountSetting() {
		d.dispstat |= statVCount
		if d.dispstat&statVCountIRQ == statVCountIRQ {
			d.irq.Request(interrupts.VCount)
		}
	} else {
		d.dispstat &^= statVCount
	}

	switch line {
	case d.lcd.timing.VisibleLines:
		d.dispstat |= statVBlank
		if d.dispstat&statVBlankIRQ == statVBlankIRQ {
			d.irq.Request(interrupts.VBlank)
		}
		if d.dma != nil {
			d.dma.Trigger(dma.VBlank)
		}
		d.renderer.VBlank()
	case d.lcd.timing.Lines - 1:
		d.dispstat &^= statVBlank
	}

	if d.dma != nil {
		d.dma.VideoCapture(line)
	}
}

// bit 7 of DISPSTAT only exists when the VCOUNT setting is wider than a byte
func (d *Display) writable() uint16 {
	if d.lcd.timing.VCountBits > 8 {
		return statWritable | statVCountHigh
	}
	return statWritable
}

// Read32 implements the memory.Registers interface.
func (d *Display) Read32(addr uint32) uint32 {
	return uint32(d.dispstat) | uint32(d.lcd.vcount)<<16
}

// Write32 implements the memory.Registers interface. VCOUNT is read-only.
func (d *Display) Write32(addr uint32, val uint32, mask uint32) {
	m := uint16(mask) & d.writable()
	d.dispstat = (d.dispstat &^ m) | (uint16(val) & m)
}
