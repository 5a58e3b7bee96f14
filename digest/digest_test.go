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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/gopheradvance/digest"
	"github.com/jetsetilly/gopheradvance/test"
)

func videoFrame(dig *digest.Video, val uint32) {
	dig.RegisterWrite(0x04000000, val, 0xffff)
	dig.Scanline(0)
	dig.RegisterWrite(0x04000010, 0x10, 0x01ff)
	dig.VBlank()
}

func TestVideo(t *testing.T) {
	a := digest.NewVideo()
	b := digest.NewVideo()
	zero := a.Hash()

	videoFrame(a, 0x0403)
	videoFrame(b, 0x0403)
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectInequality(t, a.Hash(), zero)
	test.ExpectEquality(t, a.Frames(), 1)

	// a different write in the second frame
	videoFrame(a, 0x0403)
	videoFrame(b, 0x0400)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	// chaining means the same frame after a different history is different
	videoFrame(a, 0x0403)
	videoFrame(b, 0x0403)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), zero)
	test.ExpectEquality(t, a.Frames(), 0)

	// a write on a different scanline
	a.RegisterWrite(0x04000000, 0x0403, 0xffff)
	a.VBlank()
	b.ResetDigest()
	b.Scanline(10)
	b.RegisterWrite(0x04000000, 0x0403, 0xffff)
	b.VBlank()
	test.ExpectInequality(t, a.Hash(), b.Hash())
}

func TestAudio(t *testing.T) {
	a := digest.NewAudio()
	b := digest.NewAudio()
	zero := a.Hash()

	for i := range 3000 {
		a.PushSample(i&1, int8(i))
		b.PushSample(i&1, int8(i))
	}
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectInequality(t, a.Hash(), zero)

	// the channel is part of the hash
	a.PushSample(0, 1)
	b.PushSample(1, 1)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), zero)
}
