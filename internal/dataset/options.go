package dataset

import (
	"errors"
	"strings"

	"eyeset/internal/config"
	"eyeset/internal/labeling"
)

// ProgressFunc observes the copy phase. It is called after each file with
// the number copied so far and the subset size.
type ProgressFunc func(subset Subset, copied, total int)

// Options configure a single materialization run.
type Options struct {
	RunID           string
	ArchivePath     string
	OutputRoot      string
	ScratchDir      string
	ImageExtension  string
	ValidationRatio float64
	Seed            int64
	Rules           labeling.Rules
	VerifyCopies    bool
	// Progress is optional.
	Progress ProgressFunc
}

// OptionsFromConfig maps configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ArchivePath:     cfg.Paths.Archive,
		OutputRoot:      cfg.Paths.OutputRoot,
		ScratchDir:      cfg.Paths.ScratchDir,
		ImageExtension:  cfg.Split.ImageExtension,
		ValidationRatio: cfg.Split.ValidationRatio,
		Seed:            cfg.Split.Seed,
		VerifyCopies:    cfg.Split.VerifyCopies,
		Rules: labeling.Rules{
			MinSegments: cfg.Labels.MinSegments,
			TokenIndex:  cfg.Labels.TokenIndex,
			ClosedToken: cfg.Labels.ClosedToken,
			OpenToken:   cfg.Labels.OpenToken,
		},
	}
}

func (o Options) withDefaults() Options {
	if o.ImageExtension == "" {
		o.ImageExtension = ".png"
	}
	if o.ValidationRatio == 0 {
		o.ValidationRatio = 0.2
	}
	if o.Rules == (labeling.Rules{}) {
		o.Rules = labeling.DefaultRules()
	}
	return o
}

func (o Options) validate() error {
	if strings.TrimSpace(o.ArchivePath) == "" {
		return errors.New("archive path is required")
	}
	if strings.TrimSpace(o.OutputRoot) == "" {
		return errors.New("output root is required")
	}
	if strings.TrimSpace(o.ScratchDir) == "" {
		return errors.New("scratch directory is required")
	}
	return nil
}
