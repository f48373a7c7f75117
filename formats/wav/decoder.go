// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"time"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/pcm"
)

const formatPCM = 1

type Decoder struct{}

// Decode reads the RIFF headers and returns a Source positioned at the first
// sample. Inputs that cannot seek are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyIntegerPCM, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrOnlyIntegerPCM, depth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	frames := dec.PCMLen() / int64(depth/8*channels)

	src := pcm.NewSource(dec, pcm.Format{
		SampleRate: rate,
		Channels:   channels,
		BitDepth:   depth,
		Unsigned:   depth == 8,
		Duration:   time.Duration(frames) * time.Second / time.Duration(rate),
	})
	if c, ok := r.(io.Closer); ok {
		src.WithCloser(c)
	}
	return src, nil
}
