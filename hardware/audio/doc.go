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

// Package audio implements the Direct Sound FIFOs of the single-CPU system.
//
// Sound synthesis and mixing are not part of the emulation. The sound
// registers are stored and every write is forwarded to a Mixer. The FIFOs are
// emulated because they are consumed on timer overflow and refilled by DMA,
// which makes them part of the timing of the machine. Samples popped from the
// FIFOs are passed to a SampleSink.
package audio
