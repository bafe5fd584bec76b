package testsupport

import (
	"path/filepath"
	"testing"

	"eyeset/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Archive = filepath.Join(base, "mrlEyes_2018_01.zip")
	cfgVal.Paths.OutputRoot = filepath.Join(base, "dataset")
	cfgVal.Paths.ScratchDir = filepath.Join(base, "scratch")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithArchive writes a zip archive with the given entries at the configured
// archive path.
func WithArchive(entries map[string]string) ConfigOption {
	return func(b *configBuilder) {
		WriteArchive(b.t, b.cfg.Paths.Archive, entries)
	}
}

// WithEyeImages writes a synthetic MRL-style archive with the given label counts.
func WithEyeImages(open, closed int) ConfigOption {
	return WithArchive(EyeImages(open, closed))
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputRoot)
}
