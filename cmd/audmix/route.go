// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/routing"
)

var errBadFlag = errors.New("invalid flag value")

var routeFlags struct {
	pads      string
	left      float64
	right     float64
	muteLeft  bool
	muteRight bool
	eq        []string
	mono      bool
	rate      int
	bits      int
	save      bool
}

var routeCmd = &cobra.Command{
	Use:   "route <in> <out.wav>",
	Short: "Render a file through the pad grid, gains and equalizer",
	Long: `route renders <in> to a WAV file. Settings start from the session
document; flags given on the command line override them.

Pads are a comma separated list of tl, tr, bl, br (top/bottom = decoded
channel, left/right = output ear), or "all" / "none".
Equalizer gains are band=dB pairs where band is a center frequency in Hz.`,
	Args: cobra.ExactArgs(2),
	RunE: runRoute,
}

func init() {
	f := routeCmd.Flags()
	f.StringVarP(&routeFlags.pads, "pads", "p", "", "active pads, e.g. tl,br")
	f.Float64Var(&routeFlags.left, "left", 1, "left gain [0, 1]")
	f.Float64Var(&routeFlags.right, "right", 1, "right gain [0, 1]")
	f.BoolVar(&routeFlags.muteLeft, "mute-left", false, "mute the left ear")
	f.BoolVar(&routeFlags.muteRight, "mute-right", false, "mute the right ear")
	f.StringSliceVar(&routeFlags.eq, "eq", nil, "equalizer gain, e.g. 1000=6 (repeatable)")
	f.BoolVar(&routeFlags.mono, "mono", false, "fold the output down to mono")
	f.IntVarP(&routeFlags.rate, "rate", "r", 0, "output sample rate (default: input rate)")
	f.IntVar(&routeFlags.bits, "bits", 16, "output bit depth: 16, 24 or 32")
	f.BoolVar(&routeFlags.save, "save", false, "store the resulting settings in the session document")
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := audmix.Open(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	if err := cfg.Apply(s); err != nil {
		return fmt.Errorf("session document: %w", err)
	}

	fl := cmd.Flags()
	if fl.Changed("left") || fl.Changed("right") {
		g := s.Gains()
		if fl.Changed("left") {
			g.Left = routeFlags.left
		}
		if fl.Changed("right") {
			g.Right = routeFlags.right
		}
		if _, err := s.SetGains(g); err != nil {
			return err
		}
	}

	left, right := s.Muted()
	if fl.Changed("mute-left") && left != routeFlags.muteLeft {
		if _, err := s.ToggleMuteLeft(); err != nil {
			return err
		}
	}
	if fl.Changed("mute-right") && right != routeFlags.muteRight {
		if _, err := s.ToggleMuteRight(); err != nil {
			return err
		}
	}

	if fl.Changed("pads") {
		pads, err := parsePads(routeFlags.pads)
		if err != nil {
			return err
		}
		if _, err := s.SetPads(pads); err != nil {
			return err
		}
	}

	gains, err := parseEQ(routeFlags.eq)
	if err != nil {
		return err
	}
	for band, db := range gains {
		if err := s.Equalizer().SetGain(band, db); err != nil {
			return err
		}
	}

	plan := s.Plan()
	logger.Info("routing", "in", args[0], "mode", plan.Mode,
		"left_gain", plan.LeftGain, "right_gain", plan.RightGain,
		"channels", s.Info().Channels)

	var out audio.Source = s.Source()
	if routeFlags.rate > 0 && routeFlags.rate != out.SampleRate() {
		out = audio.NewResampler(out, routeFlags.rate)
	}
	if routeFlags.mono {
		out = audio.NewMonoMixer(out)
	}

	frames, err := writeWAV(args[1], out, routeFlags.bits)
	if err != nil {
		return err
	}
	logger.Info("wrote", "out", args[1], "frames", frames,
		"rate", out.SampleRate(), "channels", out.Channels())

	if routeFlags.save {
		cfg.Capture(s)
		if err := cfg.Save(cfgPath); err != nil {
			return err
		}
		logger.Debug("saved session", "path", cfgPath)
	}
	return nil
}

func writeWAV(path string, src audio.Source, bits int) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	frames, err := wav.Encode(f, src, bits)
	if err != nil {
		_ = f.Close()
		return frames, err
	}
	return frames, f.Close()
}

// parsePads reads "tl,tr,bl,br", "all" or "none".
func parsePads(s string) (routing.PadState, error) {
	var p routing.PadState
	for _, tok := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "tl":
			p.TopLeft = true
		case "tr":
			p.TopRight = true
		case "bl":
			p.BottomLeft = true
		case "br":
			p.BottomRight = true
		case "all":
			p = routing.PadState{TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true}
		case "none", "":
		default:
			return routing.PadState{}, fmt.Errorf("%w: pad %q", errBadFlag, tok)
		}
	}
	return p, nil
}

// parseEQ maps "freq=dB" pairs to band index and gain.
func parseEQ(pairs []string) (map[int]float64, error) {
	out := make(map[int]float64, len(pairs))
	for _, pair := range pairs {
		freq, db, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: eq %q", errBadFlag, pair)
		}

		band := bandIndex(strings.TrimSpace(freq))
		if band < 0 {
			return nil, fmt.Errorf("%w: eq band %q", errBadFlag, freq)
		}

		gain, err := strconv.ParseFloat(strings.TrimSpace(db), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: eq gain %q", errBadFlag, db)
		}
		out[band] = gain
	}
	return out, nil
}

func bandIndex(freq string) int {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(freq), "hz"), 64)
	if err != nil {
		return -1
	}
	for i, b := range audio.EqualizerBands {
		if b == f {
			return i
		}
	}
	return -1
}
