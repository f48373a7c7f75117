// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"

	"github.com/ik5/audmix"
)

// Apply restores the routing, equalizer, transport and regions of s from c.
func (c *Config) Apply(s *audmix.Session) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if _, err := s.SetGains(c.Gains); err != nil {
		return fmt.Errorf("gains: %w", err)
	}
	left, right := s.Muted()
	if left != c.MuteLeft {
		if _, err := s.ToggleMuteLeft(); err != nil {
			return fmt.Errorf("mute left: %w", err)
		}
	}
	if right != c.MuteRight {
		if _, err := s.ToggleMuteRight(); err != nil {
			return fmt.Errorf("mute right: %w", err)
		}
	}
	if _, err := s.SetPads(c.Pads); err != nil {
		return fmt.Errorf("pads: %w", err)
	}

	eq := s.Equalizer()
	eq.Reset()
	for band, db := range c.Equalizer {
		if err := eq.SetGain(band, db); err != nil {
			return err
		}
	}

	t := s.Transport()
	if err := t.SetRateIndex(c.RateIndex); err != nil {
		return err
	}
	t.SetZoom(c.Zoom)

	p := s.Player()
	p.SetLoop(c.Loop)
	for _, r := range c.Regions {
		if err := p.AddRegion(r.Region()); err != nil {
			return err
		}
	}
	return nil
}

// Capture copies the current state of s into c. Region colors are kept for
// regions that still exist.
func (c *Config) Capture(s *audmix.Session) {
	c.Pads = s.Pads()
	c.Gains = s.Gains()
	c.MuteLeft, c.MuteRight = s.Muted()
	c.Equalizer = s.Equalizer().Gains()

	t := s.Transport()
	c.RateIndex = t.RateIndex()
	c.Zoom = t.Zoom()
	c.Loop = s.Player().Loop()

	colors := make(map[string]string, len(c.Regions))
	for _, r := range c.Regions {
		colors[r.ID] = r.Color
	}

	c.Regions = nil
	for _, r := range s.Player().Regions() {
		c.AddRegion(r, colors[r.ID])
	}
}
