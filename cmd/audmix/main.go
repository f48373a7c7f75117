// SPDX-License-Identifier: EPL-2.0

// Command audmix routes, equalizes and mixes audio files from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/internal/config"
)

var (
	logger = slog.Default()

	flags struct {
		config string
		debug  bool
	}
)

var rootCmd = &cobra.Command{
	Use:   "audmix",
	Short: "Channel routing, equalizer and multi-track mixing for audio files",
	Long: `audmix decodes WAV, MP3, Ogg Vorbis and AIFF files and renders them
through a 2x2 channel pad grid, a ten band equalizer and optional resampling.

The session document (pads, gains, equalizer, regions, tracks) is read from
--config, $AUDMIX_CONFIG or ~/.config/audmix/session.yaml.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		initLogger(flags.debug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "",
		"session document (default $AUDMIX_CONFIG or ~/.config/audmix/session.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false,
		"enable debug logging")

	rootCmd.AddCommand(infoCmd, routeCmd, regionsCmd, mixCmd)
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
	slog.SetDefault(logger)
}

func configPath() (string, error) {
	if flags.config != "" {
		return flags.config, nil
	}
	return config.Path()
}

func loadConfig() (*config.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("loaded session", "path", path,
		"regions", len(cfg.Regions), "tracks", len(cfg.Tracks))
	return cfg, path, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
