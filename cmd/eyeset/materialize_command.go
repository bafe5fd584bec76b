package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"eyeset/internal/config"
	"eyeset/internal/dataset"
	"eyeset/internal/history"
	"eyeset/internal/logging"
	"eyeset/internal/preflight"
)

func newMaterializeCommand(ctx *commandContext) *cobra.Command {
	var archivePath string
	var outputRoot string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "materialize",
		Aliases: []string{"setup"},
		Short:   "Extract the dataset archive into labeled train/val directories",
		Long: "Extract the dataset archive into scratch space, label every image from its\n" +
			"filename, split the images into train and validation subsets with the\n" +
			"configured seed, and copy them into <output>/{train,val}/{open,closed}.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := dataset.OptionsFromConfig(cfg)
			if err := applyPathOverrides(&opts, archivePath, outputRoot); err != nil {
				return err
			}
			opts.RunID = uuid.NewString()

			logger := ctx.loggerFor(cfg)
			warnPreflight(cfg, opts, logger)

			if errOut := cmd.ErrOrStderr(); !jsonOutput && shouldColorize(errOut) {
				progress := newCopyProgress(errOut)
				defer progress.finish()
				opts.Progress = progress.update
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			report, runErr := runWithHistory(signalCtx, ctx, cfg, opts, logger)
			if runErr != nil {
				return runErr
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			writeReport(cmd.OutOrStdout(), report, opts, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().StringVar(&archivePath, "archive", "", "Dataset zip file (overrides paths.archive)")
	cmd.Flags().StringVar(&outputRoot, "output", "", "Output root directory (overrides paths.output_root)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run report as JSON")
	return cmd
}

func applyPathOverrides(opts *dataset.Options, archivePath, outputRoot string) error {
	if value := strings.TrimSpace(archivePath); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve --archive: %w", err)
		}
		opts.ArchivePath = expanded
	}
	if value := strings.TrimSpace(outputRoot); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		opts.OutputRoot = expanded
	}
	return nil
}

// warnPreflight logs failing space and permission checks without blocking
// the run; the materializer reports the authoritative error.
func warnPreflight(cfg *config.Config, opts dataset.Options, logger *slog.Logger) {
	checkCfg := *cfg
	checkCfg.Paths.Archive = opts.ArchivePath
	checkCfg.Paths.OutputRoot = opts.OutputRoot
	for _, result := range preflight.Failed(preflight.RunAll(&checkCfg)) {
		logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldEventType, "preflight_failed"),
		)
	}
}

// runWithHistory wraps Materialize with Begin/Finish history records. History
// failures are logged and never fail the run.
func runWithHistory(ctx context.Context, cmdCtx *commandContext, cfg *config.Config, opts dataset.Options, logger *slog.Logger) (*dataset.Report, error) {
	store, err := cmdCtx.openHistory(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_unavailable",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run will not appear in `eyeset history`"),
		)
		return dataset.Materialize(ctx, opts, logger)
	}
	defer store.Close()

	started := time.Now()
	recorded := true
	if err := store.Begin(ctx, history.Run{
		RunID:           opts.RunID,
		ArchivePath:     opts.ArchivePath,
		OutputRoot:      opts.OutputRoot,
		Seed:            opts.Seed,
		ValidationRatio: opts.ValidationRatio,
		StartedAt:       started,
	}); err != nil {
		recorded = false
		logger.Warn("failed to record run start", logging.Error(err))
	}

	report, runErr := dataset.Materialize(ctx, opts, logger)
	if !recorded {
		return report, runErr
	}

	status := history.StatusSucceeded
	if runErr != nil {
		status = history.StatusFailed
	}
	// The run context may already be cancelled; the outcome still needs writing.
	writeCtx := context.WithoutCancel(ctx)
	if err := store.Finish(writeCtx, opts.RunID, status, report, runErr); err != nil {
		logger.Warn("failed to record run outcome", logging.Error(err))
	}
	if heldLock(runErr) {
		if marked, err := store.MarkInterrupted(writeCtx, opts.OutputRoot, opts.RunID, started); err != nil {
			logger.Warn("failed to close out interrupted runs", logging.Error(err))
		} else if marked > 0 {
			logger.Info("marked interrupted runs as failed", logging.Int64("runs", marked))
		}
	}
	return report, runErr
}

// heldLock reports whether a run that ended with err got past the output
// lock, which only happens on success or on failures raised after locking.
// I/O failures are ambiguous about the lock and are left out.
func heldLock(err error) bool {
	return err == nil || errors.Is(err, dataset.ErrNotFound) || errors.Is(err, dataset.ErrEmptyDataset)
}

func writeReport(out io.Writer, report *dataset.Report, opts dataset.Options, colorize bool) {
	for _, line := range renderSectionHeader("Dataset setup complete", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderInfoLine("Run", report.RunID))
	fmt.Fprintln(out, renderInfoLine("Archive", fmt.Sprintf("%s (%d files, %s)",
		report.ArchivePath, report.Extracted.Files, humanize.IBytes(report.Extracted.Bytes))))
	fmt.Fprintln(out, renderInfoLine("Output", report.OutputRoot))
	fmt.Fprintln(out, renderInfoLine("Seed", fmt.Sprintf("%d (validation ratio %.2f)", report.Seed, opts.ValidationRatio)))
	fmt.Fprintln(out, renderInfoLine("Verified copies", yesNo(opts.VerifyCopies)))
	fmt.Fprintln(out, renderInfoLine("Images found", fmt.Sprintf("%d (open %d, closed %d)",
		report.Found, report.Labels.Open, report.Labels.Closed)))
	if report.Skipped > 0 {
		fmt.Fprintln(out, renderStatusLine("Skipped", statusWarn,
			fmt.Sprintf("%d image(s) did not match the filename pattern", report.Skipped), colorize))
	}
	if report.Buckets != report.Assigned {
		fmt.Fprintln(out, renderStatusLine("Output tree", statusWarn,
			fmt.Sprintf("%d file(s) on disk, %d copied this run; earlier files were kept",
				report.Buckets.Total(), report.Assigned.Total()), colorize))
	}
	fmt.Fprintln(out, renderInfoLine("Elapsed", report.Duration.Round(time.Millisecond).String()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderBucketTable(report.Buckets))
}
