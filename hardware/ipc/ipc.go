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

package ipc

import (
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/interrupts"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// Register addresses. The same addresses are used by both CPUs.
const (
	regSync    = 0x04000180
	regFIFOCnt = 0x04000184
	regSend    = 0x04000188
	regRecv    = 0x04100000
)

// IPCFIFOCNT bits
const (
	cntSendEmpty     = 0x0001
	cntSendFull      = 0x0002
	cntSendIRQ       = 0x0004
	cntSendClear     = 0x0008
	cntRecvEmpty     = 0x0100
	cntRecvFull      = 0x0200
	cntRecvIRQ       = 0x0400
	cntError         = 0x4000
	cntEnable        = 0x8000
	cntWritableFlags = cntSendIRQ | cntRecvIRQ | cntEnable
)

// IPCSYNC bits
const (
	syncSendIRQ   = 0x2000
	syncIRQEnable = 0x4000
)

// Interrupter is the interrupt controller of a CPU.
type Interrupter interface {
	Request(src interrupts.Source)
}

// The two sides of the IPC hardware.
const (
	ARM9 = 0
	ARM7 = 1
)

// IPC is the hardware shared by the two CPUs.
type IPC struct {
	endpoints [2]*Endpoint
}

// Endpoint is the view of the IPC hardware from one CPU.
type Endpoint struct {
	ipc    *IPC
	side   int
	irq    Interrupter
	remote *Endpoint

	// the four bit value sent to the other CPU
	syncOut   uint8
	syncIRQ   bool
	sendIRQ   bool
	recvIRQ   bool
	errorFlag bool
	enabled   bool

	// the queue of values sent by this CPU. the receive queue is the send
	// queue of the remote endpoint
	send fifo

	// the most recent value received
	last uint32
}

// NewIPC is the preferred method of initialisation for the IPC type.
func NewIPC(irq9 Interrupter, irq7 Interrupter) *IPC {
	ipc := &IPC{}
	ipc.endpoints[ARM9] = &Endpoint{ipc: ipc, side: ARM9, irq: irq9}
	ipc.endpoints[ARM7] = &Endpoint{ipc: ipc, side: ARM7, irq: irq7}
	ipc.endpoints[ARM9].remote = ipc.endpoints[ARM7]
	ipc.endpoints[ARM7].remote = ipc.endpoints[ARM9]
	return ipc
}

// Endpoint returns the view of the IPC hardware for the CPU. The side
// argument should be ARM9 or ARM7.
func (ipc *IPC) Endpoint(side int) *Endpoint {
	return ipc.endpoints[side]
}

// Reset both endpoints to the power-on state.
func (ipc *IPC) Reset() {
	for _, ep := range ipc.endpoints {
		ep.syncOut = 0
		ep.syncIRQ = false
		ep.sendIRQ = false
		ep.recvIRQ = false
		ep.errorFlag = false
		ep.enabled = false
		ep.send.clear()
		ep.last = 0
	}
}

func (ep *Endpoint) String() string {
	side := "ARM9"
	if ep.side == ARM7 {
		side = "ARM7"
	}
	return fmt.Sprintf("%s sync=%x send=%d recv=%d", side, ep.syncOut, ep.send.n, ep.remote.send.n)
}

// Map the endpoint's registers on the IO device of its CPU.
func (ep *Endpoint) Map(io *memory.IO) {
	io.Map(regSync, regSend+3, ep)
	io.Map(regRecv, regRecv+3, ep)
}

// Volatile implements the memory.Volatile interface. Reading the receive
// register removes a value from the queue.
func (ep *Endpoint) Volatile(addr uint32) bool {
	return addr == regRecv
}

func (ep *Endpoint) fifoCnt() uint32 {
	var v uint32
	if ep.send.empty() {
		v |= cntSendEmpty
	}
	if ep.send.full() {
		v |= cntSendFull
	}
	if ep.sendIRQ {
		v |= cntSendIRQ
	}
	if ep.remote.send.empty() {
		v |= cntRecvEmpty
	}
	if ep.remote.send.full() {
		v |= cntRecvFull
	}
	if ep.recvIRQ {
		v |= cntRecvIRQ
	}
	if ep.errorFlag {
		v |= cntError
	}
	if ep.enabled {
		v |= cntEnable
	}
	return v
}

// Read32 implements the memory.Registers interface.
func (ep *Endpoint) Read32(addr uint32) uint32 {
	switch addr {
	case regSync:
		v := uint32(ep.remote.syncOut) | uint32(ep.syncOut)<<8
		if ep.syncIRQ {
			v |= syncIRQEnable
		}
		return v
	case regFIFOCnt:
		return ep.fifoCnt()
	case regRecv:
		return ep.receive()
	}
	return 0
}

// Write32 implements the memory.Registers interface.
func (ep *Endpoint) Write32(addr uint32, val uint32, mask uint32) {
	switch addr {
	case regSync:
		if mask&0x0f00 != 0 {
			ep.syncOut = uint8(val>>8) & 0x0f
		}
		if mask&syncIRQEnable != 0 {
			ep.syncIRQ = val&syncIRQEnable != 0
		}
		if val&mask&syncSendIRQ != 0 && ep.remote.syncIRQ {
			ep.remote.irq.Request(interrupts.IPCSync)
		}
	case regFIFOCnt:
		ep.writeFIFOCnt(val, mask)
	case regSend:
		if mask == 0xffffffff {
			ep.sendValue(val)
		}
	}
}

func (ep *Endpoint) writeFIFOCnt(val uint32, mask uint32) {
	val &= mask

	if val&cntSendClear != 0 {
		ep.send.clear()
		if ep.sendIRQ {
			ep.irq.Request(interrupts.IPCSendEmpty)
		}
	}

	if val&cntError != 0 {
		ep.errorFlag = false
	}

	if mask&cntWritableFlags == 0 {
		return
	}

	sendIRQ := ep.sendIRQ
	recvIRQ := ep.recvIRQ

	ep.sendIRQ = val&cntSendIRQ != 0
	ep.recvIRQ = val&cntRecvIRQ != 0
	ep.enabled = val&cntEnable != 0

	// enabling an interrupt while its condition is true raises the
	// interrupt
	if !sendIRQ && ep.sendIRQ && ep.send.empty() {
		ep.irq.Request(interrupts.IPCSendEmpty)
	}
	if !recvIRQ && ep.recvIRQ && !ep.remote.send.empty() {
		ep.irq.Request(interrupts.IPCRecvNotEmpty)
	}
}

func (ep *Endpoint) sendValue(v uint32) {
	if !ep.enabled {
		return
	}
	if ep.send.full() {
		ep.errorFlag = true
		return
	}

	wasEmpty := ep.send.empty()
	ep.send.push(v)
	if wasEmpty && ep.remote.recvIRQ {
		ep.remote.irq.Request(interrupts.IPCRecvNotEmpty)
	}
}

func (ep *Endpoint) receive() uint32 {
	queue := &ep.remote.send

	if !ep.enabled {
		if queue.empty() {
			return ep.last
		}
		return queue.front()
	}

	if queue.empty() {
		ep.errorFlag = true
		return ep.last
	}

	ep.last = queue.pop()
	if queue.empty() && ep.remote.sendIRQ {
		ep.remote.irq.Request(interrupts.IPCSendEmpty)
	}
	return ep.last
}

// EndpointState is the serialisable state of one endpoint.
type EndpointState struct {
	SyncOut uint8
	SyncIRQ bool
	SendIRQ bool
	RecvIRQ bool
	Error   bool
	Enabled bool
	Send    []uint32
	Last    uint32
}

// State is the serialisable state of the IPC hardware.
type State struct {
	Endpoints [2]EndpointState
}

// Snapshot returns a copy of the IPC state.
func (ipc *IPC) Snapshot() *State {
	s := &State{}
	for i, ep := range ipc.endpoints {
		s.Endpoints[i] = EndpointState{
			SyncOut: ep.syncOut,
			SyncIRQ: ep.syncIRQ,
			SendIRQ: ep.sendIRQ,
			RecvIRQ: ep.recvIRQ,
			Error:   ep.errorFlag,
			Enabled: ep.enabled,
			Send:    ep.send.words(),
			Last:    ep.last,
		}
	}
	return s
}

// Plumb restores a previous snapshot.
func (ipc *IPC) Plumb(s *State) {
	for i, ep := range ipc.endpoints {
		e := s.Endpoints[i]
		ep.syncOut = e.SyncOut
		ep.syncIRQ = e.SyncIRQ
		ep.sendIRQ = e.SendIRQ
		ep.recvIRQ = e.RecvIRQ
		ep.errorFlag = e.Error
		ep.enabled = e.Enabled
		ep.send.restore(e.Send)
		ep.last = e.Last
	}
}
