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
	"fmt"

	"github.com/jetsetilly/gopheradvance/hardware/audio"
)

// the number of bytes in a block. each sample takes two bytes. the hash value
// is updated at the end of every block
const audioBlockLength = 2048

// Audio is an implementation of the audio.SampleSink interface with an
// embedded hash value.
type Audio struct {
	digest [sha1.Size]byte

	// the first sha1.Size bytes of the buffer is the previous hash value
	buffer   []byte
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{
		buffer: make([]byte, sha1.Size+audioBlockLength),
	}
	dig.ResetDigest()
	return dig
}

var _ audio.SampleSink = (*Audio)(nil)

// Hash implements the Digest interface. Samples that have not yet filled a
// block are included.
func (dig *Audio) Hash() string {
	if dig.bufferCt > sha1.Size {
		dig.flush()
	}
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	clear(dig.buffer)
	dig.bufferCt = sha1.Size
}

// PushSample implements the audio.SampleSink interface. The channel is
// included in the hash.
func (dig *Audio) PushSample(channel int, sample int8) {
	dig.buffer[dig.bufferCt] = uint8(channel)
	dig.buffer[dig.bufferCt+1] = uint8(sample)
	dig.bufferCt += 2
	if dig.bufferCt >= len(dig.buffer) {
		dig.flush()
	}
}

func (dig *Audio) flush() {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = sha1.Size
}
