// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns the number of samples
	// (not frames) written.
	Read(p []float32) (int, error)
	// Length is the stream length in frames, 0 when unknown.
	Length() int64
}

type source struct {
	dec    oggReader
	closer io.Closer
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Duration() time.Duration {
	return time.Duration(s.dec.Length()) * time.Second / time.Duration(s.dec.SampleRate())
}

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.dec.Channels() != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	// the reader hands out at most one decoded packet per call
	total := 0
	for total < len(dst) {
		n, err := s.dec.Read(dst[total:])
		total += n
		if errors.Is(err, io.EOF) {
			return total, io.EOF
		}
		if err != nil {
			return total, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() <= 0 {
		return nil, ErrNotVorbisFile
	}

	src := &source{dec: dec}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}
