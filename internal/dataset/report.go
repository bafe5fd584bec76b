package dataset

import (
	"time"

	"eyeset/internal/archive"
)

// Report describes a completed run.
type Report struct {
	RunID       string `json:"run_id"`
	ArchivePath string `json:"archive"`
	OutputRoot  string `json:"output_root"`
	Seed        int64  `json:"seed"`

	// Extracted summarizes what came out of the archive.
	Extracted archive.Stats `json:"extracted"`
	// Found is the number of accepted records.
	Found int `json:"found"`
	// Skipped counts image files whose names did not match the labeling rules.
	Skipped int `json:"skipped"`
	// Labels are accepted-record totals before the split.
	Labels LabelCounts `json:"labels"`
	// Assigned is the in-memory split.
	Assigned BucketCounts `json:"assigned"`
	// Buckets are counted back from the output directories after copying.
	// They exceed Assigned when the tree held files from earlier runs.
	Buckets BucketCounts `json:"buckets"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
