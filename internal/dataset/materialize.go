package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"eyeset/internal/archive"
	"eyeset/internal/fileutil"
	"eyeset/internal/logging"
	"eyeset/internal/scratch"
)

// Pipeline step names used in errors and log lines.
const (
	StagePrepare = "prepare"
	StageExtract = "extract"
	StageCollect = "collect"
	StageSplit   = "split"
	StageCopy    = "copy"
	StageReport  = "report"
)

// Materialize builds the train/validation tree from the archive described by
// opts. The scratch directory is released on every return path.
func Materialize(ctx context.Context, opts Options, logger *slog.Logger) (*Report, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, Wrap(ErrIO, StagePrepare, "validate options", "", err)
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	started := time.Now()
	ctx = logging.WithRunID(ctx, opts.RunID)
	logger = logging.NewComponentLogger(logger, "dataset")
	stageLogger := func(stage string) *slog.Logger {
		return logging.WithContext(logging.WithStage(ctx, stage), logger)
	}

	layout := NewLayout(opts.OutputRoot)
	if err := layout.Ensure(); err != nil {
		return nil, Wrap(ErrIO, StagePrepare, "create output directories", "", err)
	}

	lock := flock.New(layout.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrIO, StagePrepare, "acquire output lock", "", err)
	}
	if !locked {
		return nil, Wrap(ErrLocked, StagePrepare, "acquire output lock",
			fmt.Sprintf("another run is writing to %s", opts.OutputRoot), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.String("path", layout.LockPath()), logging.Error(err))
		}
	}()

	if err := checkArchive(opts.ArchivePath); err != nil {
		return nil, err
	}

	dir, err := scratch.Acquire(opts.ScratchDir, opts.RunID)
	if err != nil {
		return nil, Wrap(ErrIO, StagePrepare, "acquire scratch directory", "", err)
	}
	defer func() {
		if err := dir.Release(); err != nil {
			logging.WarnWithContext(logger, "failed to remove scratch directory", "scratch_cleanup_failed",
				logging.String("path", dir.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run `eyeset clean-scratch` or remove it by hand"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
		}
	}()

	stageLogger(StageExtract).Info("extracting dataset", logging.String("archive", opts.ArchivePath))
	extracted, err := archive.Extract(ctx, opts.ArchivePath, dir.Path, stageLogger(StageExtract))
	if err != nil {
		return nil, Wrap(ErrIO, StageExtract, "extract archive", opts.ArchivePath, err)
	}

	stageLogger(StageCollect).Info("organizing dataset",
		logging.Int("files", extracted.Files),
		logging.Size("bytes", extracted.Bytes),
	)
	collected, err := Collect(ctx, dir.Path, opts.ImageExtension, opts.Rules)
	if err != nil {
		return nil, Wrap(ErrIO, StageCollect, "walk extracted tree", "", err)
	}
	if len(collected.Records) == 0 {
		return nil, Wrap(ErrEmptyDataset, StageCollect, "",
			"no images found in the dataset; check that the zip file is correctly structured", nil)
	}

	labels := collected.LabelCounts()
	stageLogger(StageCollect).Info("images found",
		logging.Int("total", len(collected.Records)),
		logging.Int("open", labels.Open),
		logging.Int("closed", labels.Closed),
		logging.Int("skipped", collected.Skipped),
	)

	assignment, err := Split(collected.Records, opts.ValidationRatio, opts.Seed)
	if err != nil {
		return nil, Wrap(ErrIO, StageSplit, "split records", "", err)
	}

	copyFn := fileutil.CopyFilePreserve
	if opts.VerifyCopies {
		copyFn = fileutil.CopyFileVerified
	}
	for _, subset := range Subsets {
		records := assignment.Records(subset)
		stageLogger(StageCopy).Info(copyMessage(subset), logging.Int("files", len(records)))
		if err := copyRecords(ctx, layout, subset, records, copyFn, opts.Progress); err != nil {
			return nil, err
		}
	}

	if err := dir.Release(); err != nil {
		return nil, Wrap(ErrIO, StageReport, "remove scratch directory", dir.Path, err)
	}

	buckets, err := layout.Count()
	if err != nil {
		return nil, Wrap(ErrIO, StageReport, "count buckets", "", err)
	}

	report := &Report{
		RunID:       opts.RunID,
		ArchivePath: opts.ArchivePath,
		OutputRoot:  opts.OutputRoot,
		Seed:        opts.Seed,
		Extracted:   extracted,
		Found:       len(collected.Records),
		Skipped:     collected.Skipped,
		Labels:      labels,
		Assigned:    assignment.Counts(),
		Buckets:     buckets,
		StartedAt:   started,
		Duration:    time.Since(started),
	}
	stageLogger(StageReport).Info("dataset setup complete",
		logging.Int("train", report.Assigned.Train.Total()),
		logging.Int("val", report.Assigned.Val.Total()),
		logging.Duration("elapsed", report.Duration),
	)
	return report, nil
}

func checkArchive(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Wrap(ErrNotFound, StagePrepare, "check archive",
				fmt.Sprintf("dataset zip file not found at %s; download it first", path), nil)
		}
		return Wrap(ErrIO, StagePrepare, "check archive", path, err)
	}
	if info.IsDir() {
		return Wrap(ErrIO, StagePrepare, "check archive", fmt.Sprintf("%s is a directory", path), nil)
	}
	return nil
}

func copyRecords(ctx context.Context, layout Layout, subset Subset, records []Record, copyFn func(src, dst string) error, progress ProgressFunc) error {
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return Wrap(ErrIO, StageCopy, "copy files", string(subset), err)
		}
		dst := filepath.Join(layout.Dir(subset, rec.Label), filepath.Base(rec.Path))
		if err := copyFn(rec.Path, dst); err != nil {
			return Wrap(ErrIO, StageCopy, "copy file", filepath.Base(rec.Path), err)
		}
		if progress != nil {
			progress(subset, i+1, len(records))
		}
	}
	return nil
}

func copyMessage(subset Subset) string {
	if subset == Val {
		return "copying files to validation set"
	}
	return "copying files to train set"
}
