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

package regression

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
)

// DigestMode specifies which of the digests are compared by a digest
// regression.
type DigestMode int

// Valid digest modes. Use String() and ParseDigestMode() to convert to and
// from string representations.
const (
	DigestUndefined DigestMode = iota
	DigestVideoOnly
	DigestAudioOnly
	DigestBoth
)

var digestModeNames = [...]string{
	DigestUndefined: "undefined",
	DigestVideoOnly: "video",
	DigestAudioOnly: "audio",
	DigestBoth:      "both",
}

func (mod DigestMode) String() string {
	if mod < DigestUndefined || mod > DigestBoth {
		return digestModeNames[DigestUndefined]
	}
	return digestModeNames[mod]
}

func (mod DigestMode) video() bool {
	return mod == DigestVideoOnly || mod == DigestBoth
}

func (mod DigestMode) audio() bool {
	return mod == DigestAudioOnly || mod == DigestBoth
}

// ParseDigestMode converts a string to a DigestMode. The string "undefined"
// is not accepted.
func ParseDigestMode(mode string) (DigestMode, error) {
	m := strings.ToLower(strings.TrimSpace(mode))
	for i := DigestVideoOnly; i <= DigestBoth; i++ {
		if digestModeNames[i] == m {
			return i, nil
		}
	}
	return DigestUndefined, curated.Errorf("regression: %v", fmt.Sprintf("invalid digest mode (%s)", mode))
}
