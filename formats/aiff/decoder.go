// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/pcm"
)

type Decoder struct{}

// Decode parses the COMM chunk and returns a Source over the sound data.
// Inputs that cannot seek are buffered in memory.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, depth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	d, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	src := pcm.NewSource(dec, pcm.Format{
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   depth,
		Duration:   d,
	})
	if c, ok := r.(io.Closer); ok {
		src.WithCloser(c)
	}
	return src, nil
}
