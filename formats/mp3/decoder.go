// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/audio"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const (
	channels      = 2
	bytesPerFrame = 4
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	// Length is the decoded stream size in bytes, -1 when unknown.
	Length() int64
}

type source struct {
	dec    mp3Reader
	buf    []byte
	closer io.Closer
	done   bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

// Duration is zero when the input was not seekable.
func (s *source) Duration() time.Duration {
	n := s.dec.Length()
	if n <= 0 {
		return 0
	}
	return time.Duration(n/bytesPerFrame) * time.Second / time.Duration(s.dec.SampleRate())
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
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	samples := n / bytesPerFrame * channels
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("%w", err)
	}
}

type Decoder struct{}

// Decode starts decoding r. The duration is only known when r can seek.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	src := &source{dec: dec, buf: make([]byte, 8192)}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}
