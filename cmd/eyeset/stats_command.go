package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eyeset/internal/config"
	"eyeset/internal/dataset"
)

type statsOutput struct {
	OutputRoot string               `json:"output_root"`
	Buckets    dataset.BucketCounts `json:"buckets"`
	Total      int                  `json:"total"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var outputRoot string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count images in each train/val bucket of an existing tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := cfg.Paths.OutputRoot
			if value := strings.TrimSpace(outputRoot); value != "" {
				if root, err = config.ExpandPath(value); err != nil {
					return fmt.Errorf("resolve --output: %w", err)
				}
			}

			counts, err := dataset.NewLayout(root).Count()
			if err != nil {
				return fmt.Errorf("count buckets: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), statsOutput{OutputRoot: root, Buckets: counts, Total: counts.Total()})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderInfoLine("Output", root))
			fmt.Fprintln(out, renderBucketTable(counts))
			if counts.Total() == 0 {
				fmt.Fprintln(out, "No images found; run `eyeset materialize` first")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputRoot, "output", "", "Output root directory (overrides paths.output_root)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print counts as JSON")
	return cmd
}
