package preflight

import (
	"eyeset/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	archiveResult, stats := CheckArchive(cfg.Paths.Archive)
	results := []Result{
		archiveResult,
		CheckWritableTarget("Output root", cfg.Paths.OutputRoot),
		CheckWritableTarget("Scratch directory", cfg.Paths.ScratchDir),
	}

	// Space checks need the uncompressed size, so they are skipped when the
	// archive could not be read.
	if archiveResult.Passed {
		results = append(results,
			CheckFreeSpace("Scratch free space", cfg.Paths.ScratchDir, stats.Bytes),
			CheckFreeSpace("Output free space", cfg.Paths.OutputRoot, stats.Bytes),
		)
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
