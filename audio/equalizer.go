// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"sync"
)

const (
	MinBandGain = -40.0
	MaxBandGain = 40.0
	BandQ       = 1.0
)

// EqualizerBands are the center frequencies of the ten equalizer bands in Hz.
var EqualizerBands = []float64{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

func bandKind(freq float64) FilterKind {
	switch {
	case freq <= 32:
		return LowShelf
	case freq >= 16000:
		return HighShelf
	default:
		return Peaking
	}
}

// Equalizer runs src through a chain of ten biquads. Band gains can be changed
// while reading; filter state of a band is kept across gain changes and
// cleared while the band sits at 0 dB.
type Equalizer struct {
	src Source

	mtx     sync.Mutex
	gains   []float64
	filters []Biquad

	active []Biquad // snapshot used by ReadSamples
	state  [][]biquadState
}

func NewEqualizer(src Source) *Equalizer {
	e := &Equalizer{
		src:     src,
		gains:   make([]float64, len(EqualizerBands)),
		filters: make([]Biquad, len(EqualizerBands)),
		state:   make([][]biquadState, len(EqualizerBands)),
	}
	for i := range EqualizerBands {
		e.design(i)
		e.state[i] = make([]biquadState, src.Channels())
	}
	return e
}

func (e *Equalizer) design(band int) {
	freq := EqualizerBands[band]
	e.filters[band] = NewBiquad(bandKind(freq), freq, BandQ, e.gains[band], e.src.SampleRate())
}

// Bands returns the band center frequencies.
func (e *Equalizer) Bands() []float64 {
	return append([]float64(nil), EqualizerBands...)
}

// SetGain sets the gain of band in dB, clamped to [MinBandGain, MaxBandGain].
func (e *Equalizer) SetGain(band int, db float64) error {
	if band < 0 || band >= len(EqualizerBands) {
		return fmt.Errorf("%w: %d", ErrInvalidBand, band)
	}
	if db != db {
		db = 0
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.gains[band] = min(max(db, MinBandGain), MaxBandGain)
	e.design(band)
	return nil
}

func (e *Equalizer) Gain(band int) (float64, error) {
	if band < 0 || band >= len(EqualizerBands) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBand, band)
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.gains[band], nil
}

// Gains returns a copy of every band gain in dB.
func (e *Equalizer) Gains() []float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return append([]float64(nil), e.gains...)
}

// Reset sets every band back to 0 dB.
func (e *Equalizer) Reset() {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	for i := range e.gains {
		e.gains[i] = 0
		e.design(i)
	}
}

// ResponseDB is the combined magnitude response of all bands at freq.
func (e *Equalizer) ResponseDB(freq float64) float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	var sum float64
	for _, f := range e.filters {
		sum += f.ResponseDB(freq, e.src.SampleRate())
	}
	return sum
}

func (e *Equalizer) SampleRate() int { return e.src.SampleRate() }
func (e *Equalizer) Channels() int   { return e.src.Channels() }
func (e *Equalizer) BufSize() int    { return e.src.BufSize() }

func (e *Equalizer) Close() error {
	if err := e.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (e *Equalizer) ReadSamples(dst []float32) (int, error) {
	ch := e.src.Channels()
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}

	n, err := e.src.ReadSamples(dst)
	if n == 0 {
		return n, err
	}

	e.mtx.Lock()
	e.active = append(e.active[:0], e.filters...)
	e.mtx.Unlock()

	for b := range e.active {
		f := &e.active[b]
		if f.GainDB == 0 {
			// a band coming back starts from silence, not old history
			clear(e.state[b])
			continue
		}
		state := e.state[b]
		for i := range dst[:n] {
			dst[i] = float32(f.process(&state[i%ch], float64(dst[i])))
		}
	}

	return n, err
}
