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

package audio

import (
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// register addresses
const (
	regSoundOrigin = 0x04000060
	regSoundMemtop = 0x0400009f
	regSoundCnt    = 0x04000080
	regFIFOA       = 0x040000a0
	regFIFOB       = 0x040000a4
)

// SOUNDCNT_H bits (as they appear in the upper half of the SOUNDCNT word)
const (
	cntTimerA = 1 << (10 + 16)
	cntResetA = 1 << (11 + 16)
	cntTimerB = 1 << (14 + 16)
	cntResetB = 1 << (15 + 16)
)

// Mixer is notified of every write to the sound registers.
type Mixer interface {
	RegisterWrite(addr uint32, val uint32, mask uint32)
}

// SampleSink receives the samples popped from the FIFOs. The channel is 0 for
// FIFO A and 1 for FIFO B.
type SampleSink interface {
	PushSample(channel int, sample int8)
}

// Requester is implemented by the DMA controller.
type Requester interface {
	FIFORequest(addr uint32)
}

// Audio is the Direct Sound hardware.
type Audio struct {
	fifo   [2]FIFO
	sample [2]int8

	// the SOUNDCNT word (SOUNDCNT_L and SOUNDCNT_H)
	soundcnt uint32

	regs *memory.Store

	mixer Mixer
	sink  SampleSink
	dma   Requester
}

// NewAudio is the preferred method of initialisation for the Audio type. The
// mixer and sink arguments can be nil.
func NewAudio(mixer Mixer, sink SampleSink, dma Requester) *Audio {
	a := &Audio{
		mixer: mixer,
		sink:  sink,
		dma:   dma,
		regs:  memory.NewStore(regSoundOrigin, regSoundMemtop-regSoundOrigin+1),
	}
	a.regs.Notify = a.notify
	return a
}

func (a *Audio) notify(addr uint32, val uint32, mask uint32) {
	if a.mixer != nil {
		a.mixer.RegisterWrite(addr, val, mask)
	}
}

// Map the sound registers on the IO device.
func (a *Audio) Map(io *memory.IO) {
	io.Map(regSoundOrigin, regSoundMemtop, a.regs)
	io.Map(regSoundCnt, regSoundCnt+3, a)
	io.Map(regFIFOA, regFIFOB+3, a)
}

// Reset the FIFOs and the sound registers.
func (a *Audio) Reset() {
	a.fifo[0].Reset()
	a.fifo[1].Reset()
	a.sample = [2]int8{}
	a.soundcnt = 0
	a.regs.Reset()
}

// FIFO returns the numbered FIFO. Zero for FIFO A and one for FIFO B.
func (a *Audio) FIFO(i int) *FIFO {
	return &a.fifo[i]
}

// Sample returns the most recent sample popped from the numbered FIFO.
func (a *Audio) Sample(i int) int8 {
	return a.sample[i]
}

// timer returns the timer that drives the numbered FIFO.
func (a *Audio) timer(i int) int {
	bit := uint32(cntTimerA)
	if i == 1 {
		bit = cntTimerB
	}
	if a.soundcnt&bit == bit {
		return 1
	}
	return 0
}

// TimerOverflow should be called whenever timer 0 or 1 overflows. Each FIFO
// driven by that timer pops a sample and requests DMA if it is running low.
func (a *Audio) TimerOverflow(timer int) {
	if timer > 1 {
		return
	}
	for i := range a.fifo {
		if a.timer(i) != timer {
			continue
		}
		a.sample[i] = a.fifo[i].Pop()
		if a.sink != nil {
			a.sink.PushSample(i, a.sample[i])
		}
		if a.fifo[i].NeedsRefill() && a.dma != nil {
			a.dma.FIFORequest(regFIFOA + uint32(i)*4)
		}
	}
}

// Read32 implements the memory.Registers interface. The FIFO registers are
// write-only.
func (a *Audio) Read32(addr uint32) uint32 {
	if addr == regSoundCnt {
		return a.soundcnt
	}
	return 0
}

// Write32 implements the memory.Registers interface.
func (a *Audio) Write32(addr uint32, val uint32, mask uint32) {
	switch addr {
	case regSoundCnt:
		if val&cntResetA == cntResetA {
			a.fifo[0].Reset()
		}
		if val&cntResetB == cntResetB {
			a.fifo[1].Reset()
		}
		a.soundcnt = memory.Merge(a.soundcnt, val, mask) &^ (cntResetA | cntResetB)
		a.notify(addr, a.soundcnt, mask)
	case regFIFOA, regFIFOB:
		f := &a.fifo[(addr-regFIFOA)/4]
		for b := range 4 {
			if mask&(0xff<<(b*8)) != 0 {
				f.Push(int8(val >> (b * 8)))
			}
		}
	}
}

// State is the serialisable state of the Direct Sound hardware.
type State struct {
	FIFO     [2]FIFOState
	Sample   [2]int8
	SoundCnt uint32
	Regs     []uint32
}

// Snapshot returns a copy of the audio state.
func (a *Audio) Snapshot() *State {
	return &State{
		FIFO:     [2]FIFOState{a.fifo[0].snapshot(), a.fifo[1].snapshot()},
		Sample:   a.sample,
		SoundCnt: a.soundcnt,
		Regs:     a.regs.Words(),
	}
}

// Plumb restores a previous snapshot.
func (a *Audio) Plumb(s *State) {
	a.fifo[0].plumb(s.FIFO[0])
	a.fifo[1].plumb(s.FIFO[1])
	a.sample = s.Sample
	a.soundcnt = s.SoundCnt
	a.regs.Restore(s.Regs)
}
