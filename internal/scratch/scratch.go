package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const dirPrefix = "run-"

// Dir is a scratch directory owned by a single run.
type Dir struct {
	Path string

	once sync.Once
	err  error
}

// Acquire creates a fresh scratch directory for runID beneath parent.
func Acquire(parent, runID string) (*Dir, error) {
	parent = strings.TrimSpace(parent)
	if parent == "" {
		return nil, errors.New("scratch parent directory is empty")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" || strings.ContainsAny(runID, `/\`) {
		return nil, fmt.Errorf("invalid run id %q", runID)
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}
	path := filepath.Join(parent, dirPrefix+runID)
	if err := os.Mkdir(path, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	return &Dir{Path: path}, nil
}

// Release removes the directory and everything in it. Calling Release more
// than once returns the first result.
func (d *Dir) Release() error {
	if d == nil {
		return nil
	}
	d.once.Do(func() {
		if err := os.RemoveAll(d.Path); err != nil {
			d.err = fmt.Errorf("remove scratch directory: %w", err)
		}
	})
	return d.err
}
