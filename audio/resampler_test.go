// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
)

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)
	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 100)
	got, err := audiotest.Drain(NewResampler(src, 8000), 64)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 200 {
		t.Fatalf("samples = %d, want 200", len(got))
	}
	for i, v := range got {
		want := float32(i/2) / 100
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		frames   int
		channels int
		want     int // output frames
	}{
		{"down 44100 to 16000", 44100, 16000, 44100, 1, 16000},
		{"down 48000 to 8000 stereo", 48000, 8000, 48000, 2, 8000},
		{"up 8000 to 16000", 8000, 16000, 8000, 1, 15999},
		{"up 22050 to 44100 stereo", 22050, 44100, 100, 2, 199},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 440)
			got, err := audiotest.Drain(NewResampler(src, tt.dstRate), 4096)
			if err != nil {
				t.Fatal(err)
			}
			if frames := len(got) / tt.channels; frames != tt.want {
				t.Errorf("frames = %d, want %d", frames, tt.want)
			}
		})
	}
}

func TestResampler_UpsampleInterpolates(t *testing.T) {
	t.Parallel()

	// a linear ramp stays linear under Catmull-Rom away from the edges
	src := audiotest.NewRampSource(1000, 1, 10)
	got, err := audiotest.Drain(NewResampler(src, 2000), 64)
	if err != nil {
		t.Fatal(err)
	}

	for i := 2; i < len(got)-4; i++ {
		want := float32(i) / 20
		if math.Abs(float64(got[i]-want)) > 1e-5 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestResampler_DownsampleKeepsLevel(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(48000, 1, 4800, 0.5)
	got, err := audiotest.Drain(NewResampler(src, 16000), 512)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if math.Abs(float64(v-0.5)) > 1e-5 {
			t.Fatalf("sample %d = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_InvalidDst(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 10), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.FailingSource{Rate: 44100, Chan: 1}, 8000)
	if _, err := r.ReadSamples(make([]float32, 16)); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("ReadSamples() error = %v, want ErrInjected", err)
	}
	if err := r.Close(); !errors.Is(err, audiotest.ErrInjected) {
		t.Errorf("Close() error = %v, want ErrInjected", err)
	}
}

func BenchmarkResampler_44100To16000(b *testing.B) {
	buf := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 16000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
