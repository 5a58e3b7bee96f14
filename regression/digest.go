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
	"context"
	"fmt"
	"strconv"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/digest"
)

const digestEntryType = "digest"

const (
	digestFieldImage int = iota
	digestFieldKind
	digestFieldSaveType
	digestFieldMode
	digestFieldNumFrames
	digestFieldVideo
	digestFieldAudio
	digestFieldNotes
	numDigestFields
)

// DigestRegression runs an image for a set number of frames and compares the
// digests at the end of the run.
type DigestRegression struct {
	Loader    cartridgeloader.Loader
	Mode      DigestMode
	NumFrames int
	Notes     string

	videoDigest string
	audioDigest string
}

// NewDigestRegression is the preferred method of initialisation for the
// DigestRegression type.
func NewDigestRegression(cl cartridgeloader.Loader, mode DigestMode, numFrames int, notes string) (*DigestRegression, error) {
	if mode == DigestUndefined {
		return nil, curated.Errorf("regression: %v", "digest mode must be defined")
	}
	if numFrames <= 0 {
		return nil, curated.Errorf("regression: %v", fmt.Sprintf("number of frames must be positive (%d)", numFrames))
	}
	return &DigestRegression{
		Loader:    cl,
		Mode:      mode,
		NumFrames: numFrames,
		Notes:     notes,
	}, nil
}

func deserialiseDigestEntry(fields []string) (database.Entry, error) {
	if len(fields) != numDigestFields {
		return nil, curated.Errorf("regression: %v", "wrong number of fields for digest entry")
	}

	cl, err := cartridgeloader.NewLoader(fields[digestFieldImage], fields[digestFieldKind], fields[digestFieldSaveType])
	if err != nil {
		return nil, curated.Errorf("regression: %v", err)
	}

	reg := &DigestRegression{
		Loader:      cl,
		Notes:       fields[digestFieldNotes],
		videoDigest: fields[digestFieldVideo],
		audioDigest: fields[digestFieldAudio],
	}

	reg.Mode, err = ParseDigestMode(fields[digestFieldMode])
	if err != nil {
		return nil, err
	}

	reg.NumFrames, err = strconv.Atoi(fields[digestFieldNumFrames])
	if err != nil {
		return nil, curated.Errorf("regression: %v", fmt.Sprintf("invalid number of frames (%s)", fields[digestFieldNumFrames]))
	}

	return reg, nil
}

// EntryType implements the database.Entry interface.
func (reg *DigestRegression) EntryType() string {
	return digestEntryType
}

// Serialise implements the database.Entry interface.
func (reg *DigestRegression) Serialise() ([]string, error) {
	return []string{
		reg.Loader.Filename,
		reg.Loader.Kind.String(),
		reg.Loader.SaveType.String(),
		reg.Mode.String(),
		strconv.Itoa(reg.NumFrames),
		reg.videoDigest,
		reg.audioDigest,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg *DigestRegression) CleanUp() error {
	return nil
}

func (reg *DigestRegression) String() string {
	s := fmt.Sprintf("[%s/%s] %s frames=%d mode=%s", reg.Loader.Kind, reg.Loader.SaveType,
		reg.Loader.ShortName(), reg.NumFrames, reg.Mode)
	if reg.Notes != "" {
		s = fmt.Sprintf("%s [%s]", s, reg.Notes)
	}
	return s
}

func (reg *DigestRegression) regress(ctx context.Context, newRegression bool) (bool, error) {
	cl := reg.Loader
	if err := cl.Load(ctx); err != nil {
		return false, curated.Errorf("regression: %v", err)
	}

	video := digest.NewVideo()
	audio := digest.NewAudio()

	con, err := newConsole(cl.Kind, cl.Files(), video, audio)
	if err != nil {
		return false, curated.Errorf("regression: %v", err)
	}

	for i := 0; i < reg.NumFrames; i++ {
		if err := con.RunFrame(ctx); err != nil {
			return false, curated.Errorf("regression: %v", err)
		}
	}

	videoDigest := video.Hash()
	audioDigest := audio.Hash()

	if newRegression {
		// the save type may have been fingerprinted by the loader
		reg.Loader.SaveType = cl.SaveType
		if reg.Mode.video() {
			reg.videoDigest = videoDigest
		}
		if reg.Mode.audio() {
			reg.audioDigest = audioDigest
		}
		return true, nil
	}

	if reg.Mode == DigestUndefined {
		return false, curated.Errorf("regression: %v", "digest mode must be defined")
	}

	if reg.Mode.video() && videoDigest != reg.videoDigest {
		return false, nil
	}
	if reg.Mode.audio() && audioDigest != reg.audioDigest {
		return false, nil
	}

	return true, nil
}
