// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM decoders of github.com/go-audio to
// audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audmix/audio"
)

// Reader is the streaming half of go-audio's wav and aiff decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Format describes the integer stream a Reader produces.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	// Unsigned is set for 8-bit WAV, which is stored with a 128 offset.
	Unsigned bool
	Duration time.Duration
}

// Source converts integer PCM to float32 in [-1, 1).
type Source struct {
	dec    Reader
	format Format
	scale  float32
	offset int
	buf    *goaudio.IntBuffer
	closer io.Closer
}

func NewSource(dec Reader, f Format) *Source {
	s := &Source{
		dec:    dec,
		format: f,
		scale:  1 / float32(int64(1)<<(f.BitDepth-1)),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			Data:           make([]int, 4096-4096%f.Channels),
			SourceBitDepth: f.BitDepth,
		},
	}
	if f.Unsigned {
		s.offset = 1 << (f.BitDepth - 1)
	}
	return s
}

// WithCloser makes Close close c as well.
func (s *Source) WithCloser(c io.Closer) *Source {
	s.closer = c
	return s
}

func (s *Source) SampleRate() int         { return s.format.SampleRate }
func (s *Source) Channels() int           { return s.format.Channels }
func (s *Source) BufSize() int            { return cap(s.buf.Data) }
func (s *Source) Duration() time.Duration { return s.format.Duration }

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.format.Channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	switch {
	case err != nil && err != io.EOF:
		return n, fmt.Errorf("%w", err)
	case n == 0:
		// go-audio signals the end of the PCM chunk with an empty read
		return 0, io.EOF
	}
	return n, nil
}

// ReadSeeker returns r itself when it can seek, otherwise r is read into memory.
// go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
