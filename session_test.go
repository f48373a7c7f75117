// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/routing"
)

// writeStereoWAV writes frames frames of constant left/right values.
func writeStereoWAV(t *testing.T, rate, frames int, left, right int16) string {
	t.Helper()

	samples := make([]int16, frames*2)
	for f := range frames {
		samples[f*2] = left
		samples[f*2+1] = right
	}

	path := filepath.Join(t.TempDir(), "take.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, rate, 2, samples); err != nil {
		t.Fatal(err)
	}
	return path
}

func firstFrame(t *testing.T, s *Session) (float32, float32) {
	t.Helper()

	buf := make([]float32, 64)
	n, err := s.Source().ReadSamples(buf)
	if err != nil || n < 2 {
		t.Fatalf("ReadSamples = %d, %v", n, err)
	}
	return buf[0], buf[1]
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.wav":           "wav",
		"/x/y/B.MP3":      "mp3",
		"song.ogg":        "ogg",
		"noext":           "",
		"dir.v1/take.Aif": "aif",
	}
	for in, want := range tests {
		if got := FormatOf(in); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	got := DefaultRegistry().Formats()
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := writeStereoWAV(t, 8000, 8000, 8192, 16384)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	info := s.Info()
	if info.SampleRate != 8000 || info.Channels != 2 || info.Duration.Seconds() != 1 {
		t.Errorf("Info() = %+v", info)
	}
	if s.Transport().Duration() != 1 {
		t.Errorf("transport duration = %v", s.Transport().Duration())
	}
	if s.Pads() != routing.DefaultPads() || s.Gains() != routing.DefaultGains() {
		t.Errorf("initial pads/gains = %+v / %+v", s.Pads(), s.Gains())
	}
	if s.Plan().Mode != routing.ModeDefault {
		t.Errorf("initial mode = %v", s.Plan().Mode)
	}

	if l, r := firstFrame(t, s); !near(l, 0.25) || !near(r, 0.5) {
		t.Errorf("default route = (%v, %v), want (0.25, 0.5)", l, r)
	}
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Open(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(txt); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("unknown format error = %v", err)
	}

	bogus := filepath.Join(dir, "bogus.wav")
	if err := os.WriteFile(bogus, []byte("definitely not a riff file"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(bogus); !errors.Is(err, wav.ErrNotWavFile) {
		t.Errorf("bad wav error = %v", err)
	}
}

func TestNewSessionNeedsDuration(t *testing.T) {
	t.Parallel()

	src := audiotest.FailingSource{Rate: 8000, Chan: 2}
	if _, err := NewSession(src); !errors.Is(err, ErrUnknownDuration) {
		t.Errorf("NewSession error = %v", err)
	}
}

func TestSessionRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pads routing.PadState
		mode routing.Mode
		l, r float32
	}{
		{"default", routing.DefaultPads(), routing.ModeDefault, 0.25, 0.5},
		{"swap", routing.PadState{TopRight: true, BottomLeft: true}, routing.ModeDiagonal, 0.5, 0.25},
		{"top", routing.PadState{TopLeft: true, TopRight: true}, routing.ModeTop, 0.25, 0},
		{"bottom", routing.PadState{BottomLeft: true, BottomRight: true}, routing.ModeBottom, 0, 0.5},
		{"all", routing.PadState{TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true}, routing.ModeAll, 0.75, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSession(audiotest.NewMockSource(8000, 2, 8000, func(_, ch int) float32 {
				return []float32{0.25, 0.5}[ch]
			}))
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()

			plan, err := s.SetPads(tt.pads)
			if err != nil {
				t.Fatal(err)
			}
			if plan.Mode != tt.mode || s.Plan().Mode != tt.mode {
				t.Errorf("mode = %v, want %v", plan.Mode, tt.mode)
			}
			if l, r := firstFrame(t, s); !near(l, tt.l) || !near(r, tt.r) {
				t.Errorf("frame = (%v, %v), want (%v, %v)", l, r, tt.l, tt.r)
			}
		})
	}
}

func TestSessionMuteToggles(t *testing.T) {
	t.Parallel()

	s, err := NewSession(audiotest.NewConstantSource(8000, 2, 8000, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.SetGains(routing.Gains{Left: 0.5, Right: 1}); err != nil {
		t.Fatal(err)
	}

	plan, err := s.ToggleMuteLeft()
	if err != nil {
		t.Fatal(err)
	}
	if plan.LeftGain != 0 || plan.RightGain != 1 {
		t.Errorf("muted left plan gains = %v/%v", plan.LeftGain, plan.RightGain)
	}
	if l, r := firstFrame(t, s); l != 0 || !near(r, 0.5) {
		t.Errorf("muted left frame = (%v, %v)", l, r)
	}

	if _, err := s.ToggleMuteRight(); err != nil {
		t.Fatal(err)
	}
	if l, r := s.Muted(); !l || !r {
		t.Errorf("Muted() = %v, %v", l, r)
	}

	if _, err := s.ToggleMuteLeft(); err != nil {
		t.Fatal(err)
	}
	plan, err = s.ToggleMuteRight()
	if err != nil {
		t.Fatal(err)
	}
	if plan.LeftGain != 0.5 || plan.RightGain != 1 {
		t.Errorf("unmuted gains = %v/%v, want the stored 0.5/1", plan.LeftGain, plan.RightGain)
	}
	if s.Gains() != (routing.Gains{Left: 0.5, Right: 1}) {
		t.Errorf("stored gains changed: %+v", s.Gains())
	}
}

func TestSessionMonoSource(t *testing.T) {
	t.Parallel()

	s, err := NewSession(audiotest.NewConstantSource(8000, 1, 8000, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Info().MultiChannel() {
		t.Fatal("mono source reported as multi-channel")
	}

	// top-only is not honoured for mono input
	plan, err := s.SetPads(routing.PadState{TopLeft: true, TopRight: true})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Mode != routing.ModeDefault {
		t.Errorf("mode = %v, want default", plan.Mode)
	}
}

func TestSessionEqualizer(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(8000, 1, 8000, 1000)
	s, err := NewSession(src)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Equalizer().SetGain(5, 12); err != nil {
		t.Fatal(err)
	}
	if g, _ := s.Equalizer().Gain(5); g != 12 {
		t.Errorf("band gain = %v", g)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !src.Closed {
		t.Error("Close did not reach the decoder")
	}
}

func TestSessionGainsFollowDiagonal(t *testing.T) {
	t.Parallel()

	s, err := NewSession(audiotest.NewConstantSource(8000, 2, 8000, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.SetGains(routing.Gains{Left: 0.3, Right: 0.2}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleMuteRight(); err != nil {
		t.Fatal(err)
	}

	plan, err := s.SetPads(routing.PadState{TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true})
	if err != nil {
		t.Fatal(err)
	}
	if plan.LeftGain != 1 || plan.RightGain != 1 {
		t.Errorf("all pads gains = %v/%v, want 1/1", plan.LeftGain, plan.RightGain)
	}
	if l, r := firstFrame(t, s); !near(l, 1) || !near(r, 1) {
		t.Errorf("all pads frame = (%v, %v), want (1, 1)", l, r)
	}

	plan, err = s.SetPads(routing.PadState{TopRight: true, BottomLeft: true})
	if err != nil {
		t.Fatal(err)
	}
	if plan.LeftGain != 0.3 || plan.RightGain != 0 {
		t.Errorf("diagonal gains = %v/%v, want 0.3/0", plan.LeftGain, plan.RightGain)
	}
}
