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

// Package timers implements the four 16-bit timer units of a CPU.
//
// Timers are event driven. A running timer that is not in cascade mode
// schedules a TimerOverflow event at the exact cycle of its next overflow
// and its counter is only brought up to date (synchronised) when it is read,
// when it is written, or when the overflow event is dispatched. A timer in
// cascade mode is incremented once every time the timer below it overflows,
// regardless of its own prescale setting.
package timers
