package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"eyeset/internal/scratch"
)

func newCleanScratchCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration
	var listOnly bool

	cmd := &cobra.Command{
		Use:   "clean-scratch",
		Short: "Remove scratch directories left behind by interrupted runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			root := cfg.Paths.ScratchDir

			if listOnly {
				dirs, err := scratch.ListDirectories(root)
				if err != nil {
					return fmt.Errorf("list scratch directories: %w", err)
				}
				if len(dirs) == 0 {
					fmt.Fprintf(out, "No scratch directories under %s\n", root)
					return nil
				}
				rows := make([][]string, 0, len(dirs))
				for _, dir := range dirs {
					rows = append(rows, []string{dir.Name, humanize.Time(dir.ModTime), humanize.IBytes(uint64(dir.Size))})
				}
				fmt.Fprintln(out, renderTable([]string{"Directory", "Modified", "Size"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight}))
				return nil
			}

			age := maxAge
			if !cmd.Flags().Changed("max-age") {
				age = cfg.ScratchMaxAge()
			}
			result := scratch.CleanStale(cmd.Context(), root, age, ctx.loggerFor(cfg))
			for _, path := range result.Removed {
				fmt.Fprintf(out, "Removed %s\n", path)
			}
			if len(result.Removed) == 0 {
				fmt.Fprintf(out, "No scratch directories older than %s\n", age)
			}
			if len(result.Errors) > 0 {
				for _, failure := range result.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "Failed to remove %s: %v\n", failure.Path, failure.Error)
				}
				return fmt.Errorf("clean-scratch: %d director(ies) could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 24*time.Hour, "Remove run directories older than this (defaults to scratch.max_age_hours)")
	cmd.Flags().BoolVar(&listOnly, "list", false, "List scratch directories without removing anything")
	return cmd
}
