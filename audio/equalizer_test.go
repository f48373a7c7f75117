// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
)

func TestBiquad_PeakingGainAtCenter(t *testing.T) {
	t.Parallel()

	for _, db := range []float64{-12, -3, 6, 24} {
		f := NewBiquad(Peaking, 1000, 1, db, 44100)
		if got := f.ResponseDB(1000, 44100); math.Abs(got-db) > 1e-6 {
			t.Errorf("gain %v dB: response at center = %v", db, got)
		}
	}
}

func TestBiquad_Shelves(t *testing.T) {
	t.Parallel()

	low := NewBiquad(LowShelf, 100, 1, 12, 44100)
	if got := low.ResponseDB(10, 44100); math.Abs(got-12) > 0.1 {
		t.Errorf("low shelf below corner = %v dB, want about 12", got)
	}
	if got := low.ResponseDB(10000, 44100); math.Abs(got) > 0.1 {
		t.Errorf("low shelf far above corner = %v dB, want about 0", got)
	}

	high := NewBiquad(HighShelf, 4000, 1, -12, 44100)
	if got := high.ResponseDB(20000, 44100); math.Abs(got+12) > 0.5 {
		t.Errorf("high shelf above corner = %v dB, want about -12", got)
	}
	if got := high.ResponseDB(50, 44100); math.Abs(got) > 0.1 {
		t.Errorf("high shelf far below corner = %v dB, want about 0", got)
	}
}

func TestEqualizer_BandKinds(t *testing.T) {
	t.Parallel()

	want := []FilterKind{LowShelf, Peaking, Peaking, Peaking, Peaking, Peaking, Peaking, Peaking, Peaking, HighShelf}
	for i, f := range EqualizerBands {
		if got := bandKind(f); got != want[i] {
			t.Errorf("band %v Hz = %s, want %s", f, got, want[i])
		}
	}
}

func TestEqualizer_SetGain(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer(audiotest.NewSilentSource(44100, 2, 10))

	tests := []struct {
		band    int
		db      float64
		want    float64
		wantErr error
	}{
		{0, 6, 6, nil},
		{5, 55, MaxBandGain, nil},
		{9, -100, MinBandGain, nil},
		{3, math.NaN(), 0, nil},
		{-1, 3, 0, ErrInvalidBand},
		{10, 3, 0, ErrInvalidBand},
	}

	for _, tt := range tests {
		err := eq.SetGain(tt.band, tt.db)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("SetGain(%d, %v) error = %v, want %v", tt.band, tt.db, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if got, _ := eq.Gain(tt.band); got != tt.want {
			t.Errorf("Gain(%d) = %v, want %v", tt.band, got, tt.want)
		}
	}

	eq.Reset()
	for i, g := range eq.Gains() {
		if g != 0 {
			t.Errorf("band %d = %v dB after Reset", i, g)
		}
	}
	if len(eq.Bands()) != 10 {
		t.Errorf("Bands() = %v", eq.Bands())
	}
}

func TestEqualizer_FlatIsPassThrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 512, 1000)
	want, _ := audiotest.Drain(audiotest.NewSineSource(44100, 2, 512, 1000), 256)
	got, err := audiotest.Drain(NewEqualizer(src), 256)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func rms(samples []float32) float64 {
	var sum float64
	for _, v := range samples {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func TestEqualizer_BoostsBand(t *testing.T) {
	t.Parallel()

	const frames = 44100 / 2
	flat, _ := audiotest.Drain(audiotest.NewSineSource(44100, 1, frames, 1000), 1024)

	eq := NewEqualizer(audiotest.NewSineSource(44100, 1, frames, 1000))
	if err := eq.SetGain(5, 12); err != nil { // 1 kHz
		t.Fatal(err)
	}
	boosted, err := audiotest.Drain(eq, 1024)
	if err != nil {
		t.Fatal(err)
	}

	// skip the filter transient
	gain := 20 * math.Log10(rms(boosted[4410:])/rms(flat[4410:]))
	if math.Abs(gain-12) > 1 {
		t.Errorf("gain at 1 kHz = %.2f dB, want about 12", gain)
	}
	if got := eq.ResponseDB(1000); math.Abs(got-12) > 1 {
		t.Errorf("ResponseDB(1000) = %.2f, want about 12", got)
	}
}

func TestEqualizer_BypassedBandForgetsHistory(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer(audiotest.NewSineSource(44100, 2, 44100, 1000))
	buf := make([]float32, 1024)

	if err := eq.SetGain(5, 12); err != nil {
		t.Fatal(err)
	}
	if _, err := eq.ReadSamples(buf); err != nil {
		t.Fatal(err)
	}
	if eq.state[5][0] == (biquadState{}) {
		t.Fatal("active band kept no state")
	}

	if err := eq.SetGain(5, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := eq.ReadSamples(buf); err != nil {
		t.Fatal(err)
	}
	for ch, s := range eq.state[5] {
		if s != (biquadState{}) {
			t.Errorf("channel %d state after bypass = %+v, want zero", ch, s)
		}
	}
}
