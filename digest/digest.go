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

// Package digest is used to create hash values of the emulation's output.
// The Video type implements the lcd.Renderer interface and the Audio type
// implements the audio.SampleSink interface.
//
// The hash values are chained. The hash of every frame (or every block of
// audio samples) includes the hash of the previous frame. Two runs of the
// same program will result in the same hash only if their output was
// identical at every step.
package digest

// Digest implementations compute a hash value of the emulation's output.
type Digest interface {
	Hash() string
	ResetDigest()
}
