// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/region"
	"github.com/ik5/audmix/routing"
)

func TestParsePads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    routing.PadState
		wantErr bool
	}{
		{"tl,br", routing.DefaultPads(), false},
		{"TR, bl", routing.PadState{TopRight: true, BottomLeft: true}, false},
		{"all", routing.PadState{TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true}, false},
		{"none", routing.PadState{}, false},
		{"", routing.PadState{}, false},
		{"tl,xx", routing.PadState{}, true},
	}

	for _, tt := range tests {
		got, err := parsePads(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePads(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePads(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseEQ(t *testing.T) {
	t.Parallel()

	got, err := parseEQ([]string{"32=3", "1000Hz = -6", "16000=40"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]float64{0: 3, 5: -6, 9: 40}
	if len(got) != len(want) {
		t.Fatalf("parseEQ = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("band %d = %v, want %v", k, got[k], v)
		}
	}

	for _, bad := range []string{"1000", "999=3", "1000=loud"} {
		if _, err := parseEQ([]string{bad}); !errors.Is(err, errBadFlag) {
			t.Errorf("parseEQ(%q) error = %v", bad, err)
		}
	}
}

func TestDescribeExit(t *testing.T) {
	t.Parallel()

	r := region.Region{ID: "r1", Start: 0, End: 1}
	tests := []struct {
		act  region.Action
		want string
	}{
		{region.Action{Kind: region.ActionStop}, "stop"},
		{region.Action{Kind: region.ActionReplay, Region: r}, "replay r1"},
		{region.Action{Kind: region.ActionPlay, Region: r}, "play r1"},
	}
	for _, tt := range tests {
		if got := describeExit(tt.act); got != tt.want {
			t.Errorf("describeExit(%v) = %q, want %q", tt.act.Kind, got, tt.want)
		}
	}
}

// execute runs the root command; commands share flag state so callers must
// not run in parallel.
func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("audmix %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()

	samples := make([]int16, 2*800)
	for f := range 800 {
		samples[2*f] = 8192
		samples[2*f+1] = -8192
	}

	path := filepath.Join(dir, "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := wav.WriteWAV16(f, 8000, 2, samples); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "session.yaml")
	in := writeInput(t, dir)

	out := execute(t, "--config", cfgPath, "info", in)
	for _, want := range []string{"sample_rate: 8000", "channels: 2", "route: default"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	routed := filepath.Join(dir, "routed.wav")
	execute(t, "--config", cfgPath, "route", "--pads", "tr,bl", "--mono", "--save", in, routed)

	f, err := os.Open(routed)
	if err != nil {
		t.Fatal(err)
	}
	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := audiotest.Drain(src, 256)
	if err != nil {
		t.Fatal(err)
	}
	if src.Channels() != 1 || len(samples) != 800 {
		t.Errorf("routed file: %d channels, %d samples", src.Channels(), len(samples))
	}
	_ = src.Close()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pads != (routing.PadState{TopRight: true, BottomLeft: true}) {
		t.Errorf("saved pads = %+v", cfg.Pads)
	}

	id := strings.TrimSpace(execute(t, "--config", cfgPath, "regions", "add", "1", "2"))
	execute(t, "--config", cfgPath, "regions", "add", "0.5", "0.75")

	listing := execute(t, "--config", cfgPath, "regions")
	lines := strings.Split(strings.TrimSpace(listing), "\n")
	if len(lines) != 3 {
		t.Fatalf("regions listing:\n%s", listing)
	}
	if !strings.Contains(lines[1], "play "+id) || !strings.Contains(lines[2], "stop") {
		t.Errorf("unexpected chain:\n%s", listing)
	}

	execute(t, "--config", cfgPath, "regions", "rm", id)
	if cfg, _ := config.Load(cfgPath); len(cfg.Regions) != 1 {
		t.Errorf("regions after rm = %+v", cfg.Regions)
	}

	cfg, _ = config.Load(cfgPath)
	cfg.Tracks = []config.Track{
		{Path: in, Start: 0, Volume: 1},
		{Path: in, Start: 0.05, Volume: 0.5},
	}
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatal(err)
	}

	mixed := filepath.Join(dir, "mix.wav")
	execute(t, "--config", cfgPath, "mix", "--rate", "8000", mixed)

	f, err = os.Open(mixed)
	if err != nil {
		t.Fatal(err)
	}
	src, err = wav.Decoder{}.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if samples, _ := audiotest.Drain(src, 256); len(samples) != 2*(800+400) {
		t.Errorf("mix length = %d samples, want %d", len(samples), 2*(800+400))
	}
}
