package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"eyeset/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List past materialization runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openHistory(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), run)
				}
				writeRunDetail(cmd, run)
				return nil
			}

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []*history.Run{}
				}
				return writeJSON(cmd.OutOrStdout(), runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func renderHistoryTable(runs []*history.Run, now time.Time) string {
	headers := []string{"Run", "Started", "Status", "Train", "Val", "Duration", "Error"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		duration := "-"
		if run.FinishedAt != nil {
			duration = run.Duration().Round(time.Second).String()
		}
		rows = append(rows, []string{
			shortRunID(run.RunID),
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			string(run.Status),
			strconv.Itoa(run.Train()),
			strconv.Itoa(run.Val()),
			duration,
			run.ErrorKind,
		})
	}
	return renderTable(headers, rows, aligns)
}

func writeRunDetail(cmd *cobra.Command, run *history.Run) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderInfoLine("Run", run.RunID))
	fmt.Fprintln(out, renderInfoLine("Status", string(run.Status)))
	fmt.Fprintln(out, renderInfoLine("Started", run.StartedAt.Local().Format(time.RFC3339)))
	if run.FinishedAt != nil {
		fmt.Fprintln(out, renderInfoLine("Duration", run.Duration().Round(time.Millisecond).String()))
	}
	fmt.Fprintln(out, renderInfoLine("Archive", run.ArchivePath))
	fmt.Fprintln(out, renderInfoLine("Output", run.OutputRoot))
	fmt.Fprintln(out, renderInfoLine("Seed", fmt.Sprintf("%d (validation ratio %.2f)", run.Seed, run.ValidationRatio)))
	fmt.Fprintln(out, renderInfoLine("Images", fmt.Sprintf("%d found, %d skipped", run.Found, run.Skipped)))
	fmt.Fprintln(out, renderInfoLine("Train", fmt.Sprintf("%d (open %d, closed %d)", run.Train(), run.TrainOpen, run.TrainClosed)))
	fmt.Fprintln(out, renderInfoLine("Val", fmt.Sprintf("%d (open %d, closed %d)", run.Val(), run.ValOpen, run.ValClosed)))
	if run.ErrorMessage != "" {
		fmt.Fprintln(out, renderInfoLine("Error", fmt.Sprintf("[%s] %s", run.ErrorKind, run.ErrorMessage)))
	}
}

func shortRunID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
