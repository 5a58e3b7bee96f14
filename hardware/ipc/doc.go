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

// Package ipc implements the hardware used by the two CPUs of the dual-CPU
// system to talk to each other.
//
// Each CPU sees the registers through its own Endpoint. IPCSYNC exchanges a
// four bit value in each direction and can raise an interrupt on the other
// CPU. The FIFO registers give each CPU a sixteen word queue to send values
// to the other. The interrupts raised by the FIFOs are edge triggered: the
// send-empty interrupt is raised when the send queue becomes empty and the
// receive-not-empty interrupt when the receive queue stops being empty.
package ipc
