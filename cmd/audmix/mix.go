// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/multitrack"
	"github.com/ik5/audmix/utils"
)

var mixFlags struct {
	rate int
	bits int
}

var mixCmd = &cobra.Command{
	Use:   "mix <out.wav>",
	Short: "Mix the tracks of the session document into one stereo file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMix,
}

func init() {
	mixCmd.Flags().IntVarP(&mixFlags.rate, "rate", "r", 44100, "output sample rate")
	mixCmd.Flags().IntVar(&mixFlags.bits, "bits", 16, "output bit depth: 16, 24 or 32")
}

func runMix(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Tracks) == 0 {
		return multitrack.ErrNoTracks
	}

	m, err := openTracks(cfg.Tracks)
	if err != nil {
		return err
	}

	src, err := m.Mix(mixFlags.rate)
	if err != nil {
		closeTracks(m)
		return err
	}
	defer src.Close()

	logger.Info("mixing", "tracks", m.Len(), "length", utils.FormatTime(m.Duration()))

	frames, err := writeWAV(args[0], src, mixFlags.bits)
	if err != nil {
		return err
	}
	logger.Info("wrote", "out", args[0], "frames", frames)
	return nil
}

func openTracks(tracks []config.Track) (*multitrack.Mixer, error) {
	reg := audmix.DefaultRegistry()
	m := multitrack.NewMixer()

	for _, tc := range tracks {
		src, err := decodeFile(reg, tc.Path)
		if err != nil {
			closeTracks(m)
			return nil, err
		}

		label := tc.Label
		if label == "" {
			label = tc.Path
		}
		t := multitrack.NewTrack(label, tc.Start, src)
		t.Volume = tc.Volume
		t.Muted = tc.Muted
		i := m.Add(t)

		logger.Debug("track", "index", i, "label", label,
			"start", tc.Start, "duration", t.Duration,
			"volume", utils.VolumeIcon(t.Level()*100))
	}
	return m, nil
}

func decodeFile(reg *audio.Registry, path string) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := reg.Decode(audmix.FormatOf(path), f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

func closeTracks(m *multitrack.Mixer) {
	var errs []error
	for _, t := range m.Tracks() {
		if t.Source != nil {
			errs = append(errs, t.Source.Close())
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Warn("close tracks", "err", err)
	}
}
