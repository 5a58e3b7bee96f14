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

package dma

import (
	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
	"github.com/jetsetilly/gopheradvance/hardware/scheduler"
)

// NumChannels is the number of DMA channels of a CPU.
const NumChannels = 4

// register addresses
const (
	regBase     = 0x040000b0
	regStride   = 12
	regFillBase = 0x040000e0
)

// the number of words transferred by a FIFO request
const fifoUnits = 4

// the address range where source decrement and fixed modes act as increment
const (
	romOrigin = 0x08000000
	romMemtop = 0x0dffffff
)

// reads from below this address are not made by the DMA unit
const lowestSource = 0x02000000

// Bus is the memory bus used by the DMA unit.
type Bus interface {
	Read16(addr uint32, seq bool) (uint16, int)
	Read32(addr uint32, seq bool) (uint32, int)
	Write16(addr uint32, val uint16, seq bool) int
	Write32(addr uint32, val uint32, seq bool) int
}

// Interrupter is implemented by the interrupt controller.
type Interrupter interface {
	Request(src interrupts.Source)
}

// DMA is the set of DMA channels of a CPU.
type DMA struct {
	variant Variant
	sched   *scheduler.Scheduler
	owner   int
	bus     Bus
	irq     Interrupter

	channels [NumChannels]Channel

	// the NDS9 fill registers
	fill [NumChannels]uint32

	// Stall is called with the number of cycles taken by the transfers of a
	// DMA event. can be nil
	Stall func(cycles int)
}

// NewDMA is the preferred method of initialisation for the DMA type. The owner
// value identifies the controller in scheduler events.
func NewDMA(variant Variant, sched *scheduler.Scheduler, owner int, bus Bus, irq Interrupter) *DMA {
	d := &DMA{
		variant: variant,
		sched:   sched,
		owner:   owner,
		bus:     bus,
		irq:     irq,
	}

	for i := range d.channels {
		ch := &d.channels[i]
		ch.index = i
		ch.variant = variant
		switch variant {
		case NDS9:
			ch.srcMask = 0x0fffffff
			ch.dstMask = 0x0fffffff
			ch.countMask = 0x1fffff
		default:
			ch.srcMask = 0x0fffffff
			ch.dstMask = 0x07ffffff
			ch.countMask = 0x3fff
			if i == 0 {
				ch.srcMask = 0x07ffffff
			}
			if i == 3 {
				ch.dstMask = 0x0fffffff
				ch.countMask = 0xffff
			}
		}
	}

	sched.Register(scheduler.DMA, owner, func(_ scheduler.Event) {
		d.run()
	})

	return d
}

// Map the DMA registers on the IO device.
func (d *DMA) Map(io *memory.IO) {
	io.Map(regBase, regBase+NumChannels*regStride-1, d)
	if d.variant == NDS9 {
		io.Map(regFillBase, regFillBase+NumChannels*4-1, d)
	}
}

// Reset all channels to their power-on state.
func (d *DMA) Reset() {
	for i := range d.channels {
		ch := &d.channels[i]
		ch.sad = 0
		ch.dad = 0
		ch.cnt = 0
		ch.src = 0
		ch.dst = 0
		ch.remaining = 0
		ch.pending = false
		ch.latch = 0
	}
	clear(d.fill[:])
	d.sched.Cancel(scheduler.DMA, d.owner)
}

// Channel returns the numbered channel.
func (d *DMA) Channel(i int) *Channel {
	return &d.channels[i]
}

// Active returns true if any channel is waiting to run.
func (d *DMA) Active() bool {
	for i := range d.channels {
		if d.channels[i].pending {
			return true
		}
	}
	return false
}

func (d *DMA) schedule() {
	if !d.sched.Pending(scheduler.DMA, d.owner) {
		d.sched.Schedule(d.sched.Now(), scheduler.DMA, d.owner, 0)
	}
}

// Trigger arms every enabled channel with the timing.
func (d *DMA) Trigger(timing Timing) {
	var armed bool
	for i := range d.channels {
		ch := &d.channels[i]
		if ch.Enabled() && ch.Timing() == timing {
			ch.pending = true
			armed = true
		}
	}
	if armed {
		d.schedule()
	}
}

// FIFORequest is called by an audio FIFO that needs more data. Channels 1 and
// 2 in FIFO mode with a destination of the FIFO address are armed.
func (d *DMA) FIFORequest(addr uint32) {
	if d.variant != GBA {
		return
	}
	for _, i := range []int{1, 2} {
		ch := &d.channels[i]
		if ch.Enabled() && ch.fifo() && ch.dad&ch.dstMask == addr {
			ch.pending = true
			d.schedule()
		}
	}
}

// VideoCapture is called by the LCD at the start of every scanline. Channel
// 3 with special timing runs on lines 2 to 161 and is disabled at line 162.
func (d *DMA) VideoCapture(line int) {
	if d.variant != GBA {
		return
	}
	ch := &d.channels[3]
	if !ch.Enabled() || ch.Timing() != Special {
		return
	}
	switch {
	case line >= 2 && line < 162:
		ch.pending = true
		d.schedule()
	case line == 162:
		ch.cnt &^= cntEnable
		ch.pending = false
	}
}

// run every pending channel in priority order
func (d *DMA) run() {
	cycles := 0
	for i := range d.channels {
		ch := &d.channels[i]
		if ch.pending && ch.Enabled() {
			cycles += d.transfer(ch)
		}
		ch.pending = false
	}
	if cycles > 0 && d.Stall != nil {
		d.Stall(cycles)
	}
}

func step(addr uint32, mode int, unit uint32) uint32 {
	switch mode {
	case stepDecrement:
		return addr - unit
	case stepFixed:
		return addr
	}
	return addr + unit
}

// transfer runs the channel to completion and returns the number of cycles
// taken.
func (d *DMA) transfer(ch *Channel) int {
	unit := ch.unit()
	units := ch.remaining
	dstMode := ch.dstStep()
	if ch.fifo() {
		unit = 4
		units = fifoUnits
		dstMode = stepFixed
	}

	srcMode := ch.srcStep()
	if srcMode == stepReload {
		srcMode = stepIncrement
	}
	if ch.src >= romOrigin && ch.src <= romMemtop && srcMode != stepIncrement {
		srcMode = stepIncrement
	}

	// two internal cycles to start the transfer
	cycles := 2

	for k := uint32(0); k < units; k++ {
		seq := k > 0

		if unit == 4 {
			if ch.src >= lowestSource {
				v, c := d.bus.Read32(ch.src, seq)
				ch.latch = v
				cycles += c
			} else {
				cycles++
			}
			cycles += d.bus.Write32(ch.dst, ch.latch, seq)
		} else {
			if ch.src >= lowestSource {
				v, c := d.bus.Read16(ch.src, seq)
				ch.latch = uint32(v) | uint32(v)<<16
				cycles += c
			} else {
				cycles++
			}
			cycles += d.bus.Write16(ch.dst, uint16(ch.latch>>((ch.dst&2)*8)), seq)
		}

		ch.src = step(ch.src, srcMode, unit)
		ch.dst = step(ch.dst, dstMode, unit)
	}

	if !ch.fifo() {
		ch.remaining = 0
	}

	if ch.cnt&cntIRQ == cntIRQ {
		d.irq.Request(interrupts.DMASource(ch.index))
	}

	if ch.cnt&cntRepeat == cntRepeat && ch.Timing() != Immediate {
		ch.remaining = ch.count()
		if ch.dstStep() == stepReload {
			ch.dst = (ch.dad & ch.dstMask) &^ (unit - 1)
		}
	} else {
		ch.cnt &^= cntEnable
	}

	return cycles
}

// Read32 implements the memory.Registers interface.
func (d *DMA) Read32(addr uint32) uint32 {
	if addr >= regFillBase {
		return d.fill[(addr-regFillBase)>>2]
	}
	ch := &d.channels[(addr-regBase)/regStride]
	switch (addr - regBase) % regStride {
	case 8:
		if d.variant == NDS9 {
			return ch.cnt
		}
		return ch.cnt & 0xffff0000
	}
	return 0
}

// Write32 implements the memory.Registers interface.
func (d *DMA) Write32(addr uint32, val uint32, mask uint32) {
	if addr >= regFillBase {
		i := (addr - regFillBase) >> 2
		d.fill[i] = memory.Merge(d.fill[i], val, mask)
		return
	}

	ch := &d.channels[(addr-regBase)/regStride]
	switch (addr - regBase) % regStride {
	case 0:
		ch.sad = memory.Merge(ch.sad, val, mask)
	case 4:
		ch.dad = memory.Merge(ch.dad, val, mask)
	case 8:
		wasEnabled := ch.Enabled()
		ch.cnt = memory.Merge(ch.cnt, val, mask)

		// the GBA and NDS7 count is only 16 bits. the unused bits of the
		// control halfword read as zero
		if d.variant != NDS9 {
			ch.cnt &= 0xffe0ffff
		}

		switch {
		case !wasEnabled && ch.Enabled():
			ch.latchAddresses()
			if ch.Timing() == Immediate {
				ch.pending = true
				d.schedule()
			}
		case !ch.Enabled():
			ch.pending = false
		}
	}
}

// ChannelState is the serialisable state of a channel.
type ChannelState struct {
	SAD       uint32
	DAD       uint32
	CNT       uint32
	Src       uint32
	Dst       uint32
	Remaining uint32
	Pending   bool
	Latch     uint32
}

// State is the serialisable state of the DMA controller.
type State struct {
	Channels [NumChannels]ChannelState
	Fill     [NumChannels]uint32
}

// Snapshot returns a copy of the DMA state.
func (d *DMA) Snapshot() *State {
	s := &State{Fill: d.fill}
	for i, ch := range d.channels {
		s.Channels[i] = ChannelState{
			SAD:       ch.sad,
			DAD:       ch.dad,
			CNT:       ch.cnt,
			Src:       ch.src,
			Dst:       ch.dst,
			Remaining: ch.remaining,
			Pending:   ch.pending,
			Latch:     ch.latch,
		}
	}
	return s
}

// Plumb restores a previous snapshot.
func (d *DMA) Plumb(s *State) {
	d.fill = s.Fill
	for i := range d.channels {
		ch := &d.channels[i]
		cs := s.Channels[i]
		ch.sad = cs.SAD
		ch.dad = cs.DAD
		ch.cnt = cs.CNT
		ch.src = cs.Src
		ch.dst = cs.Dst
		ch.remaining = cs.Remaining
		ch.pending = cs.Pending
		ch.latch = cs.Latch
	}
}
