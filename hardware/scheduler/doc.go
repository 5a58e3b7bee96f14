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

// Package scheduler owns the global cycle counter of the emulation and the
// queue of timed events.
//
// Components schedule events at the exact cycle they are due. CPU cores
// advance the clock with Elapse() and the system dispatches events that have
// fallen due with Dispatch() or AdvanceTo(). Events at the same cycle are
// dispatched in order of Kind, then owner, then insertion order. This means
// that a timer overflow is always seen before a DMA transfer and a DMA
// transfer before interrupt delivery.
//
// For systems with more than one CPU core, the Interleave type runs the
// cores against the one scheduler. See the Interleave type for details.
package scheduler
