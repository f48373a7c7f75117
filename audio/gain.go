// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Gain scales every sample of src by a level that may be changed while reading.
type Gain struct {
	src   Source
	level atomic.Uint32 // float32 bits
}

func NewGain(src Source, level float32) *Gain {
	g := &Gain{src: src}
	g.SetLevel(level)
	return g
}

// SetLevel sets the linear gain. Negative levels are treated as zero.
func (g *Gain) SetLevel(level float32) {
	g.level.Store(math.Float32bits(max(0, level)))
}

func (g *Gain) Level() float32 {
	return math.Float32frombits(g.level.Load())
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }

func (g *Gain) Close() error {
	if err := g.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)
	if level := g.Level(); level != 1 {
		for i := range dst[:n] {
			dst[i] *= level
		}
	}
	return n, err
}
