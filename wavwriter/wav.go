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

// Package wavwriter allows writing of Direct Sound samples to disk as a WAV
// file. Samples are buffered in memory in their entirety, and written to disk
// when the writer is closed. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/logger"
)

// the number of audio channels in the output file. channel 0 is FIFO A and
// channel 1 is FIFO B
const numChannels = 2

// WavWriter implements the audio.SampleSink interface of the hardware
// package.
type WavWriter struct {
	filename   string
	sampleRate int

	crit   sync.Mutex
	buffer []int

	// the most recent sample for each channel. a sample is emitted to the
	// buffer every time channel 0 receives a sample
	latest [numChannels]int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf("wavwriter: %v", "sample rate must be positive")
	}
	return &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0, sampleRate*numChannels),
	}, nil
}

// PushSample implements the SampleSink interface. The sample is an 8-bit
// signed value from one of the Direct Sound FIFOs.
func (aw *WavWriter) PushSample(channel int, sample int8) {
	if channel < 0 || channel >= numChannels {
		return
	}

	aw.crit.Lock()
	defer aw.crit.Unlock()

	aw.latest[channel] = int(sample)
	if channel == 0 {
		aw.buffer = append(aw.buffer, aw.latest[:]...)
	}
}

// Len returns the number of sample frames buffered so far.
func (aw *WavWriter) Len() int {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	return len(aw.buffer) / numChannels
}

// Close writes the buffered samples to disk.
func (aw *WavWriter) Close() (rerr error) {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, 8, numChannels, 1)

	// go-audio writes 8-bit data as unsigned values
	data := make([]int, len(aw.buffer))
	for i, v := range aw.buffer {
		data[i] = v + 128
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  aw.sampleRate,
		},
		Data:           data,
		SourceBitDepth: 8,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
