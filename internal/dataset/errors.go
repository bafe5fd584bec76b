package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a missing input archive.
	ErrNotFound = errors.New("not found")
	// ErrEmptyDataset marks an archive in which no file matched the labeling rules.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrLocked marks an output root already being written by another run.
	ErrLocked = errors.New("output locked")
	// ErrIO marks every other filesystem or archive failure.
	ErrIO = errors.New("i/o failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above; nil defaults to ErrIO.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short machine-friendly name for the marker carried by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrEmptyDataset):
		return "empty_dataset"
	case errors.Is(err, ErrLocked):
		return "locked"
	default:
		return "io"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "dataset failure"
	}
	return strings.Join(parts, ": ")
}
