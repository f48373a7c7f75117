// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic sources and helpers for tests. It
// mirrors the audio.Source method set without importing the audio package, so
// any package in the module can use it.
package audiotest

import (
	"errors"
	"io"
	"math"
	"time"
)

// Waveform returns the sample value of channel ch at frame index frame.
type Waveform func(frame, ch int) float32

// MockSource generates a fixed number of frames from a Waveform.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform

	Closed bool
}

// NewMockSource creates a source of frames frames produced by wave.
func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewRampSource produces frame/frames on every channel, a handy position marker.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Duration is the total length of the generated stream.
func (m *MockSource) Duration() time.Duration {
	return time.Duration(m.frames) * time.Second / time.Duration(m.sampleRate)
}

// Reset rewinds the source to the first frame.
func (m *MockSource) Reset() {
	m.pos = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.wave(m.pos+f, ch)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// ErrInjected is returned by FailingSource.
var ErrInjected = errors.New("audiotest: injected failure")

// FailingSource fails every read and close with ErrInjected.
type FailingSource struct {
	Rate int
	Chan int
}

func (f FailingSource) SampleRate() int { return f.Rate }
func (f FailingSource) Channels() int   { return f.Chan }
func (f FailingSource) BufSize() int    { return 4096 }
func (f FailingSource) Close() error    { return ErrInjected }

func (f FailingSource) ReadSamples([]float32) (int, error) {
	return 0, ErrInjected
}

// Reader is the read half of audio.Source.
type Reader interface {
	Channels() int
	ReadSamples(dst []float32) (int, error)
}

// Drain reads r until io.EOF and returns every sample. Any other error is
// returned with the samples read so far.
func Drain(r Reader, bufSize int) ([]float32, error) {
	buf := make([]float32, bufSize-bufSize%r.Channels())
	var out []float32
	for {
		n, err := r.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, io.ErrNoProgress
		}
	}
}
