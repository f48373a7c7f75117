// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler streams src at another sample rate using Catmull-Rom cubic
// interpolation over a four frame window. The channel count is preserved.
// When downsampling a one-pole low-pass is applied to incoming frames.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// window holds frames t-1, t0, t+1 and t+2 around the read position.
	window [4][]float32
	real   [4]bool
	frac   float64
	primed bool

	in     []float32
	inPos  int
	inLen  int
	srcErr error

	lowpass []float32
	warm    bool
}

const lowpassAlpha = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	ch := src.Channels()
	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: ch,
		in:       make([]float32, max(ch, src.BufSize()-src.BufSize()%ch)),
	}
	for i := range r.window {
		r.window[i] = make([]float32, ch)
	}
	if r.step > 1 {
		r.lowpass = make([]float32, ch)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted or failed; the failure is kept in srcErr.
func (r *Resampler) pull(dst []float32) bool {
	for r.inPos >= r.inLen {
		if r.srcErr != nil {
			return false
		}
		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n/r.channels
		if err != nil {
			r.srcErr = err
		} else if n == 0 {
			r.srcErr = io.ErrNoProgress
		}
	}

	frame := r.in[r.inPos*r.channels : (r.inPos+1)*r.channels]
	r.inPos++

	if r.lowpass == nil {
		copy(dst, frame)
		return true
	}
	if !r.warm {
		copy(r.lowpass, frame)
		r.warm = true
	}
	for c, v := range frame {
		r.lowpass[c] = lowpassAlpha*v + (1-lowpassAlpha)*r.lowpass[c]
		dst[c] = r.lowpass[c]
	}
	return true
}

// advance slides the window forward by one source frame.
func (r *Resampler) advance() {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = first

	r.real[3] = r.real[2] && r.pull(r.window[3])
	if !r.real[3] {
		copy(r.window[3], r.window[2])
	}
}

func (r *Resampler) prime() {
	r.primed = true
	r.real[1] = r.pull(r.window[1])
	copy(r.window[0], r.window[1])
	r.real[0] = r.real[1]

	for i := 2; i < 4; i++ {
		r.real[i] = r.real[i-1] && r.pull(r.window[i])
		if !r.real[i] {
			copy(r.window[i], r.window[i-1])
		}
	}
}

// ReadSamples produces interleaved samples at the target rate. len(dst) must be
// a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		r.prime()
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.frac >= 1 && r.real[1] {
			r.frac--
			r.advance()
		}
		// the last real frame is only emitted on an exact hit
		if !r.real[1] || (!r.real[2] && r.frac > 0) {
			break
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(
				r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		written++
		r.frac += r.step
	}

	if written == frames {
		return written * r.channels, nil
	}
	if r.srcErr != nil && !errors.Is(r.srcErr, io.EOF) {
		return written * r.channels, fmt.Errorf("%w", r.srcErr)
	}
	return written * r.channels, io.EOF
}
