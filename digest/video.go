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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/lcd"
)

// the size in bytes of each record in the frame buffer
const recordSize = 14

// Video is an implemention of the lcd.Renderer interface with an embedded
// hash value. The hash is of every video register write, in order and with the
// scanline it happened on, during a frame.
type Video struct {
	digest [sha1.Size]byte
	frame  []byte
	line   int
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	dig := &Video{}
	dig.ResetDigest()
	return dig
}

var _ lcd.Renderer = (*Video)(nil)

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frame = append(dig.frame[:0], dig.digest[:]...)
	dig.line = 0
	dig.frames = 0
}

// Frames returns the number of frames included in the hash.
func (dig *Video) Frames() int {
	return dig.frames
}

// RegisterWrite implements the lcd.Renderer interface.
func (dig *Video) RegisterWrite(addr uint32, val uint32, mask uint32) {
	var r [recordSize]byte
	binary.LittleEndian.PutUint32(r[0:], addr)
	binary.LittleEndian.PutUint32(r[4:], val&mask)
	binary.LittleEndian.PutUint32(r[8:], mask)
	binary.LittleEndian.PutUint16(r[12:], uint16(dig.line))
	dig.frame = append(dig.frame, r[:]...)
}

// Scanline implements the lcd.Renderer interface.
func (dig *Video) Scanline(line int) {
	dig.line = line + 1
}

// VBlank implements the lcd.Renderer interface.
func (dig *Video) VBlank() {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the next frame
	dig.digest = sha1.Sum(dig.frame)
	dig.frame = append(dig.frame[:0], dig.digest[:]...)
	dig.line = 0
	dig.frames++
}
