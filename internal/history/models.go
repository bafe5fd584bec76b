package history

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ParseStatus normalizes a user-supplied status name.
func ParseStatus(value string) (Status, error) {
	switch status := Status(strings.ToLower(strings.TrimSpace(value))); status {
	case StatusRunning, StatusSucceeded, StatusFailed:
		return status, nil
	default:
		return "", fmt.Errorf("unknown run status %q", value)
	}
}

// Run is one row of the history table.
type Run struct {
	RunID           string     `json:"run_id"`
	ArchivePath     string     `json:"archive"`
	OutputRoot      string     `json:"output_root"`
	Seed            int64      `json:"seed"`
	ValidationRatio float64    `json:"validation_ratio"`
	Status          Status     `json:"status"`
	ErrorKind       string     `json:"error_kind,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	Found           int        `json:"found"`
	Skipped         int        `json:"skipped"`
	TrainOpen       int        `json:"train_open"`
	TrainClosed     int        `json:"train_closed"`
	ValOpen         int        `json:"val_open"`
	ValClosed       int        `json:"val_closed"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}

// Duration reports how long the run took, or zero while it is still running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Train returns the number of images copied to the train subset.
func (r Run) Train() int { return r.TrainOpen + r.TrainClosed }

// Val returns the number of images copied to the validation subset.
func (r Run) Val() int { return r.ValOpen + r.ValClosed }
