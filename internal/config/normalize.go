package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSplit()
	c.normalizeLabels()
	if c.Scratch.MaxAgeHours <= 0 {
		c.Scratch.MaxAgeHours = defaultScratchMaxAge
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Archive) == "" {
		c.Paths.Archive = defaultArchive
	}
	if c.Paths.Archive, err = expandPath(strings.TrimSpace(c.Paths.Archive)); err != nil {
		return fmt.Errorf("paths.archive: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputRoot) == "" {
		c.Paths.OutputRoot = defaultOutputRoot
	}
	if c.Paths.OutputRoot, err = expandPath(strings.TrimSpace(c.Paths.OutputRoot)); err != nil {
		return fmt.Errorf("paths.output_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir
	}
	if c.Paths.ScratchDir, err = expandPath(strings.TrimSpace(c.Paths.ScratchDir)); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSplit() {
	ext := strings.ToLower(strings.TrimSpace(c.Split.ImageExtension))
	if ext == "" {
		ext = defaultImageExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Split.ImageExtension = ext
}

func (c *Config) normalizeLabels() {
	c.Labels.ClosedToken = strings.TrimSpace(c.Labels.ClosedToken)
	c.Labels.OpenToken = strings.TrimSpace(c.Labels.OpenToken)
	if c.Labels.ClosedToken == "" {
		c.Labels.ClosedToken = defaultClosedToken
	}
	if c.Labels.OpenToken == "" {
		c.Labels.OpenToken = defaultOpenToken
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
