// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"math/cmplx"
)

// FilterKind selects the biquad response.
type FilterKind int

const (
	LowShelf FilterKind = iota
	Peaking
	HighShelf
)

func (k FilterKind) String() string {
	switch k {
	case LowShelf:
		return "lowshelf"
	case HighShelf:
		return "highshelf"
	default:
		return "peaking"
	}
}

// Biquad holds normalized second order filter coefficients (a0 == 1), computed
// with the Audio EQ Cookbook formulas. Shelves use a slope of 1 and ignore Q.
type Biquad struct {
	Kind      FilterKind
	Frequency float64
	Q         float64
	GainDB    float64

	b0, b1, b2 float64
	a1, a2     float64
}

// NewBiquad designs a filter for sampleRate. The frequency is kept below
// 0.45 of the sample rate so the poles stay inside the unit circle.
func NewBiquad(kind FilterKind, frequency, q, gainDB float64, sampleRate int) Biquad {
	f := Biquad{Kind: kind, Frequency: frequency, Q: q, GainDB: gainDB}

	fs := float64(sampleRate)
	f0 := min(max(frequency, 1), 0.45*fs)
	w0 := 2 * math.Pi * f0 / fs
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	a := math.Pow(10, gainDB/40)

	var b0, b1, b2, a0, a1, a2 float64
	switch kind {
	case LowShelf, HighShelf:
		alpha := sinw / 2 * math.Sqrt2
		k := 2 * math.Sqrt(a) * alpha
		if kind == LowShelf {
			b0 = a * ((a + 1) - (a-1)*cosw + k)
			b1 = 2 * a * ((a - 1) - (a+1)*cosw)
			b2 = a * ((a + 1) - (a-1)*cosw - k)
			a0 = (a + 1) + (a-1)*cosw + k
			a1 = -2 * ((a - 1) + (a+1)*cosw)
			a2 = (a + 1) + (a-1)*cosw - k
		} else {
			b0 = a * ((a + 1) + (a-1)*cosw + k)
			b1 = -2 * a * ((a - 1) + (a+1)*cosw)
			b2 = a * ((a + 1) + (a-1)*cosw - k)
			a0 = (a + 1) - (a-1)*cosw + k
			a1 = 2 * ((a - 1) - (a+1)*cosw)
			a2 = (a + 1) - (a-1)*cosw - k
		}
	default:
		alpha := sinw / (2 * q)
		b0 = 1 + alpha*a
		b1 = -2 * cosw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosw
		a2 = 1 - alpha/a
	}

	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1, f.a2 = a1/a0, a2/a0
	return f
}

// ResponseDB is the magnitude response in dB at freq.
func (f Biquad) ResponseDB(freq float64, sampleRate int) float64 {
	w := 2 * math.Pi * freq / float64(sampleRate)
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(f.b0, 0) + complex(f.b1, 0)*z1 + complex(f.b2, 0)*z2
	den := 1 + complex(f.a1, 0)*z1 + complex(f.a2, 0)*z2
	return 20 * math.Log10(cmplx.Abs(num/den))
}

// biquadState is the transposed direct form II delay line of one channel.
type biquadState struct {
	z1, z2 float64
}

func (f *Biquad) process(s *biquadState, x float64) float64 {
	y := f.b0*x + s.z1
	s.z1 = f.b1*x - f.a1*y + s.z2
	s.z2 = f.b2*x - f.a2*y
	return y
}
