// SPDX-License-Identifier: EPL-2.0

package routing

// PadState is the 2x2 channel grid. Top/bottom rows select decoded channels,
// left/right columns select output ears.
type PadState struct {
	TopLeft     bool `yaml:"top_left" json:"top_left"`
	TopRight    bool `yaml:"top_right" json:"top_right"`
	BottomLeft  bool `yaml:"bottom_left" json:"bottom_left"`
	BottomRight bool `yaml:"bottom_right" json:"bottom_right"`
}

// DefaultPads is the grid a freshly loaded track starts with.
func DefaultPads() PadState {
	return PadState{TopLeft: true, BottomRight: true}
}

func (p PadState) all() bool {
	return p.TopLeft && p.TopRight && p.BottomLeft && p.BottomRight
}

func (p PadState) topOnly() bool {
	return p.TopLeft && p.TopRight && !p.BottomLeft && !p.BottomRight
}

func (p PadState) bottomOnly() bool {
	return p.BottomLeft && p.BottomRight && !p.TopLeft && !p.TopRight
}

func (p PadState) leftOnly() bool {
	return p.TopLeft && p.BottomLeft && !p.TopRight && !p.BottomRight
}

func (p PadState) rightOnly() bool {
	return p.TopRight && p.BottomRight && !p.TopLeft && !p.BottomLeft
}

// diagonal is top-right + bottom-left only. The opposite diagonal falls through
// to the default route.
func (p PadState) diagonal() bool {
	return p.TopRight && p.BottomLeft && !p.TopLeft && !p.BottomRight
}

// Diagonal reports whether either diagonal pair alone is active. Per-ear gain
// controls are only meaningful in that state.
func (p PadState) Diagonal() bool {
	return p.diagonal() ||
		(p.TopLeft && p.BottomRight && !p.TopRight && !p.BottomLeft)
}

// Gains are the per-ear gain stage levels in [0, 1]. Compute ignores them
// unless a diagonal is selected.
type Gains struct {
	Left  float64 `yaml:"left" json:"left"`
	Right float64 `yaml:"right" json:"right"`
}

func DefaultGains() Gains {
	return Gains{Left: 1, Right: 1}
}

func (g Gains) clamped() Gains {
	return Gains{Left: clamp01(g.Left), Right: clamp01(g.Right)}
}

func clamp01(v float64) float64 {
	if v != v || v < 0 { // NaN or negative
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
