// SPDX-License-Identifier: EPL-2.0

// Package config loads and saves the audmix session document.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/region"
	"github.com/ik5/audmix/routing"
	"github.com/ik5/audmix/transport"
)

// EnvPath overrides the location returned by Path.
const EnvPath = "AUDMIX_CONFIG"

// Region is a stored region. Color is a CSS color used by listings.
type Region struct {
	ID    string  `yaml:"id"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Color string  `yaml:"color,omitempty"`
}

// Track is one lane of the multi-track mix.
type Track struct {
	Path   string  `yaml:"path"`
	Label  string  `yaml:"label,omitempty"`
	Start  float64 `yaml:"start"`
	Volume float64 `yaml:"volume"`
	Muted  bool    `yaml:"muted,omitempty"`
}

// Config is the session document.
type Config struct {
	Pads      routing.PadState `yaml:"pads"`
	Gains     routing.Gains    `yaml:"gains"`
	MuteLeft  bool             `yaml:"mute_left,omitempty"`
	MuteRight bool             `yaml:"mute_right,omitempty"`
	Equalizer []float64        `yaml:"equalizer"`
	Loop      bool             `yaml:"loop"`
	RateIndex int              `yaml:"rate_index"`
	Zoom      float64          `yaml:"zoom"`
	Regions   []Region         `yaml:"regions,omitempty"`
	Tracks    []Track          `yaml:"tracks,omitempty"`
}

func Default() *Config {
	return &Config{
		Pads:      routing.DefaultPads(),
		Gains:     routing.DefaultGains(),
		Equalizer: make([]float64, len(audio.EqualizerBands)),
		RateIndex: transport.DefaultRateIndex,
		Zoom:      transport.DefaultZoom,
	}
}

// Path returns $AUDMIX_CONFIG, or session.yaml under ~/.config/audmix.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}
	return filepath.Join(home, ".config", "audmix", "session.yaml"), nil
}

// Load reads the document at path. A missing file yields the defaults. Fields
// absent from the file keep their default value.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Validate checks values that cannot be clamped into range.
func (c *Config) Validate() error {
	if c.RateIndex < 0 || c.RateIndex >= len(transport.PlaybackRates) {
		return fmt.Errorf("%w: %d", transport.ErrInvalidRate, c.RateIndex)
	}
	if len(c.Equalizer) > len(audio.EqualizerBands) {
		return fmt.Errorf("%w: %d gains for %d bands",
			audio.ErrInvalidBand, len(c.Equalizer), len(audio.EqualizerBands))
	}
	for _, r := range c.Regions {
		if err := r.Region().Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r Region) Region() region.Region {
	return region.Region{ID: r.ID, Start: r.Start, End: r.End}
}

// AddRegion stores r with a color.
func (c *Config) AddRegion(r region.Region, color string) {
	c.Regions = append(c.Regions, Region{ID: r.ID, Start: r.Start, End: r.End, Color: color})
}

// Sequencer returns the stored regions in timeline order.
func (c *Config) Sequencer() *region.Sequencer {
	seq := region.NewSequencer()
	for _, r := range c.Regions {
		seq.Insert(r.Region())
	}
	return seq
}
