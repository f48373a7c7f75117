// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/utils"
)

type fileInfo struct {
	Path         string `yaml:"path"`
	Format       string `yaml:"format"`
	SampleRate   int    `yaml:"sample_rate"`
	Channels     int    `yaml:"channels"`
	Duration     string `yaml:"duration"`
	MultiChannel bool   `yaml:"multi_channel"`
	Route        string `yaml:"route"`
}

var infoCmd = &cobra.Command{
	Use:   "info <file>...",
	Short: "Print the format, length and initial route of audio files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := make([]fileInfo, 0, len(args))
	for _, path := range args {
		s, err := audmix.Open(path)
		if err != nil {
			return err
		}

		info := s.Info()
		out = append(out, fileInfo{
			Path:         path,
			Format:       audmix.FormatOf(path),
			SampleRate:   info.SampleRate,
			Channels:     info.Channels,
			Duration:     utils.FormatTime(info.Duration.Seconds()),
			MultiChannel: info.MultiChannel(),
			Route:        s.Plan().Mode.String(),
		})

		if err := s.Close(); err != nil {
			logger.Warn("close failed", "path", path, "err", err)
		}
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	enc.SetIndent(2)
	return enc.Encode(out)
}
