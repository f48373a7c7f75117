// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"regexp"
	"testing"
)

func TestFormatTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00"},
		{0.99, "00:00:00"},
		{59.9, "00:00:59"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{3725.5, "01:02:05"},
		{86399, "23:59:59"},
		{360000 + 62, "00:01:02"},
		{-5, "00:00:00"},
		{math.NaN(), "00:00:00"},
		{99*3600 + 59*60 + 59, "99:59:59"},
		{360000*1e6 + 3661, "01:01:01"},
		{math.Inf(1), "00:00:00"},
		{math.Inf(-1), "00:00:00"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, huge := range []float64{1e19, 1e300, math.MaxFloat64} {
		if got := FormatTime(huge); len(got) != len("00:00:00") {
			t.Errorf("FormatTime(%v) = %q", huge, got)
		}
	}
}

func TestVolumeIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want VolumeLevel
	}{
		{0, VolumeMuted},
		{-1, VolumeMuted},
		{0.1, VolumeLow},
		{50, VolumeLow},
		{50.01, VolumeHigh},
		{100, VolumeHigh},
	}

	for _, tt := range tests {
		if got := VolumeIcon(tt.in); got != tt.want {
			t.Errorf("VolumeIcon(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

var rgba = regexp.MustCompile(`^rgba\((\d{1,3}), (\d{1,3}), (\d{1,3}), 0\.5\)$`)

func TestRandomColor(t *testing.T) {
	t.Parallel()

	for range 100 {
		c := RandomColor()
		if !rgba.MatchString(c) {
			t.Fatalf("RandomColor() = %q", c)
		}
	}

	if got := randomColor(func(n int) int { return n - 1 }); got != "rgba(255, 255, 255, 0.5)" {
		t.Errorf("randomColor(max) = %q", got)
	}
	if got := randomColor(func(int) int { return 0 }); got != "rgba(0, 0, 0, 0.5)" {
		t.Errorf("randomColor(min) = %q", got)
	}
}
