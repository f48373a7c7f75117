// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/region"
	"github.com/ik5/audmix/utils"
)

var regionsLoop bool

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions of the session in playback order",
	Args:  cobra.NoArgs,
	RunE:  runRegions,
}

var regionsAddCmd = &cobra.Command{
	Use:   "add <start> <end>",
	Short: "Add a region, times in seconds",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegionsAdd,
}

var regionsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a region",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegionsRm,
}

func init() {
	regionsCmd.Flags().BoolVar(&regionsLoop, "loop", false,
		"show the action taken with looping enabled (default: session setting)")
	regionsCmd.AddCommand(regionsAddCmd, regionsRmCmd)
}

// runRegions prints every region with what plays once it ends.
func runRegions(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	loop := cfg.Loop
	if cmd.Flags().Changed("loop") {
		loop = regionsLoop
	}

	colors := make(map[string]string, len(cfg.Regions))
	for _, r := range cfg.Regions {
		colors[r.ID] = r.Color
	}

	seq := cfg.Sequencer()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tSTART\tEND\tCOLOR\tTHEN")
	for i, r := range seq.Regions() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i, r.ID, utils.FormatTime(r.Start), utils.FormatTime(r.End),
			colors[r.ID], describeExit(seq.OnRegionExit(r, loop)))
	}
	return w.Flush()
}

func describeExit(a region.Action) string {
	switch a.Kind {
	case region.ActionStop:
		return "stop"
	default:
		return a.Kind.String() + " " + a.Region.ID
	}
}

func runRegionsAdd(cmd *cobra.Command, args []string) error {
	start, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: start %q", errBadFlag, args[0])
	}
	end, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: end %q", errBadFlag, args[1])
	}

	r := region.New(start, end)
	if err := r.Validate(); err != nil {
		return err
	}

	return updateConfig(func(cfg *config.Config) {
		cfg.AddRegion(r, utils.RandomColor())
		fmt.Fprintln(cmd.OutOrStdout(), r.ID)
	})
}

func runRegionsRm(cmd *cobra.Command, args []string) error {
	found := false
	err := updateConfig(func(cfg *config.Config) {
		kept := cfg.Regions[:0]
		for _, r := range cfg.Regions {
			if r.ID == args[0] {
				found = true
				continue
			}
			kept = append(kept, r)
		}
		cfg.Regions = kept
	})
	if err != nil {
		return err
	}
	if !found {
		logger.Warn("no such region", "id", args[0])
	}
	return nil
}

func updateConfig(fn func(*config.Config)) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	fn(cfg)
	if err := cfg.Save(path); err != nil {
		return err
	}
	logger.Debug("saved session", "path", path)
	return nil
}
