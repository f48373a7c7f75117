// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Remixer converts src to another channel count.
//
//   - same count: pass-through
//   - to mono: channels are averaged
//   - from mono: the channel is copied to every output channel
//   - otherwise: the first channels are copied, missing ones are silent
type Remixer struct {
	src      Source
	channels int
	tmp      []float32
}

// NewRemixer returns a Source with channels channels. channels must be positive.
func NewRemixer(src Source, channels int) (*Remixer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLayout, channels)
	}
	return &Remixer{src: src, channels: channels}, nil
}

// NewMonoMixer averages every channel of src into one.
func NewMonoMixer(src Source) *Remixer {
	return &Remixer{src: src, channels: 1}
}

// NewStereoMixer up-mixes mono and keeps the first two channels of anything wider.
func NewStereoMixer(src Source) *Remixer {
	return &Remixer{src: src, channels: 2}
}

func (m *Remixer) SampleRate() int { return m.src.SampleRate() }
func (m *Remixer) Channels() int   { return m.channels }
func (m *Remixer) BufSize() int    { return m.src.BufSize() }

func (m *Remixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *Remixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	in := m.src.Channels()
	if in == m.channels {
		return m.src.ReadSamples(dst)
	}
	if len(dst) == 0 {
		return 0, nil
	}

	frames := len(dst) / m.channels
	need := frames * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	got := n / in

	switch {
	case m.channels == 1:
		scale := 1 / float32(in)
		for f := range got {
			var sum float32
			for _, v := range m.tmp[f*in : (f+1)*in] {
				sum += v
			}
			dst[f] = sum * scale
		}
	case in == 1:
		for f := range got {
			out := dst[f*m.channels : (f+1)*m.channels]
			for c := range out {
				out[c] = m.tmp[f]
			}
		}
	default:
		for f := range got {
			out := dst[f*m.channels : (f+1)*m.channels]
			frame := m.tmp[f*in : (f+1)*in]
			for c := range out {
				if c < in {
					out[c] = frame[c]
				} else {
					out[c] = 0
				}
			}
		}
	}

	return got * m.channels, err
}
