package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateLabels(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.Archive == "" {
		return errors.New("paths.archive must be set")
	}
	if c.Paths.OutputRoot == "" {
		return errors.New("paths.output_root must be set")
	}
	if c.Paths.ScratchDir == "" {
		return errors.New("paths.scratch_dir must be set")
	}
	if within(c.Paths.ScratchDir, c.Paths.OutputRoot) {
		return fmt.Errorf("paths.scratch_dir %q must not live inside paths.output_root", c.Paths.ScratchDir)
	}
	return nil
}

func (c *Config) validateSplit() error {
	if c.Split.ValidationRatio <= 0 || c.Split.ValidationRatio >= 1 {
		return errors.New("split.validation_ratio must be between 0 and 1 (exclusive)")
	}
	return nil
}

func (c *Config) validateLabels() error {
	if c.Labels.TokenIndex < 0 {
		return errors.New("labels.token_index must be >= 0")
	}
	if c.Labels.MinSegments <= c.Labels.TokenIndex {
		return fmt.Errorf("labels.min_segments (%d) must exceed labels.token_index (%d)", c.Labels.MinSegments, c.Labels.TokenIndex)
	}
	if c.Labels.ClosedToken == c.Labels.OpenToken {
		return errors.New("labels.closed_token and labels.open_token must differ")
	}
	if strings.Contains(c.Labels.ClosedToken, "_") || strings.Contains(c.Labels.OpenToken, "_") {
		return errors.New("label tokens must not contain underscores")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
