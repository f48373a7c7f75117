// SPDX-License-Identifier: EPL-2.0

package multitrack

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
)

const mixChannels = 2

type input struct {
	src    audio.Source // stereo
	offset int          // first frame on the output timeline
	read   int          // frames consumed
	done   bool
}

// end is the output frame after the last frame of a finished input.
func (in *input) end() int { return in.offset + in.read }

// mix sums stereo inputs placed at frame offsets.
type mix struct {
	rate   int
	inputs []*input
	pos    int // output frames produced
	tmp    []float32
}

func newMix(rate int, inputs []*input) *mix {
	return &mix{rate: rate, inputs: inputs}
}

func (m *mix) SampleRate() int { return m.rate }
func (m *mix) Channels() int   { return mixChannels }
func (m *mix) BufSize() int    { return 4096 }

func (m *mix) Close() error {
	var errs []error
	for _, in := range m.inputs {
		if err := in.src.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *mix) ReadSamples(dst []float32) (int, error) {
	if len(dst)%mixChannels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	frames := len(dst) / mixChannels
	if frames == 0 {
		return 0, nil
	}
	clear(dst)

	if cap(m.tmp) < len(dst) {
		m.tmp = make([]float32, len(dst))
	}

	for _, in := range m.inputs {
		if in.done {
			continue
		}
		skip := in.offset - m.pos
		if skip >= frames {
			continue
		}
		skip = max(skip, 0)

		if err := m.add(in, dst[skip*mixChannels:]); err != nil {
			return 0, err
		}
	}

	n := frames
	if m.finished() {
		n = min(frames, max(m.end()-m.pos, 0))
	}

	for i, v := range dst[:n*mixChannels] {
		dst[i] = min(max(v, -1), 1)
	}
	m.pos += n

	if m.finished() && m.pos >= m.end() {
		return n * mixChannels, io.EOF
	}
	return n * mixChannels, nil
}

// add reads from in until out is full or in ends, summing into out.
func (m *mix) add(in *input, out []float32) error {
	buf := m.tmp[:len(out)]
	filled := 0
	for filled < len(out) {
		n, err := in.src.ReadSamples(buf[filled:])
		for i, v := range buf[filled : filled+n] {
			out[filled+i] += v
		}
		filled += n
		in.read += n / mixChannels

		if errors.Is(err, io.EOF) {
			in.done = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w", io.ErrNoProgress)
		}
	}
	return nil
}

func (m *mix) finished() bool {
	for _, in := range m.inputs {
		if !in.done {
			return false
		}
	}
	return true
}

func (m *mix) end() int {
	var e int
	for _, in := range m.inputs {
		e = max(e, in.end())
	}
	return e
}
