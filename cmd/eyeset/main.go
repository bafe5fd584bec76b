package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"eyeset/internal/dataset"
)

func main() {
	os.Exit(execute(newRootCommand(), os.Stderr))
}

// execute runs cmd and returns the process exit status. Any failure exits 1;
// a cancelled run exits quietly.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "eyeset: %v\n", err)
		if hint := failureHint(err); hint != "" {
			fmt.Fprintf(stderr, "hint: %s\n", hint)
		}
	}
	return 1
}

func failureHint(err error) string {
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return "download the MRL eye archive and point paths.archive at it"
	case errors.Is(err, dataset.ErrEmptyDataset):
		return "check split.image_extension and the [labels] rules against the archive's file names"
	case errors.Is(err, dataset.ErrLocked):
		return "another eyeset run is writing this output root; wait for it to finish"
	default:
		return ""
	}
}
