package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"eyeset/internal/dataset"
)

func failingCommand(err error) *cobra.Command {
	return &cobra.Command{
		Use:           "eyeset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return err
		},
	}
}

func TestExecuteReportsDatasetFailureWithHint(t *testing.T) {
	cmd := failingCommand(dataset.Wrap(dataset.ErrNotFound, dataset.StagePrepare, "check archive", "/x.zip", nil))
	cmd.SetArgs([]string{})
	var stderr bytes.Buffer

	if code := execute(cmd, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	requireContains(t, stderr.String(), "eyeset: not found: prepare: check archive: /x.zip")
	requireContains(t, stderr.String(), "hint: download the MRL eye archive")
}

func TestExecuteOmitsHintForUnclassifiedErrors(t *testing.T) {
	cmd := failingCommand(errors.New("bad flag"))
	cmd.SetArgs([]string{})
	var stderr bytes.Buffer

	if code := execute(cmd, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if got := stderr.String(); got != "eyeset: bad flag\n" {
		t.Fatalf("unexpected stderr %q", got)
	}
}

func TestExecuteCancelledIsQuiet(t *testing.T) {
	cmd := failingCommand(dataset.Wrap(dataset.ErrIO, dataset.StageCopy, "copy file", "", context.Canceled))
	cmd.SetArgs([]string{})
	var stderr bytes.Buffer

	if code := execute(cmd, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected no output on cancel, got %q", stderr.String())
	}
}

func TestExecuteSuccess(t *testing.T) {
	cmd := failingCommand(nil)
	cmd.SetArgs([]string{})
	var stderr bytes.Buffer
	if code := execute(cmd, &stderr); code != 0 || stderr.Len() != 0 {
		t.Fatalf("expected clean exit, got %d %q", code, stderr.String())
	}
}

func TestFailureHintByKind(t *testing.T) {
	for _, tc := range []struct {
		marker error
		want   string
	}{
		{dataset.ErrEmptyDataset, "split.image_extension"},
		{dataset.ErrLocked, "another eyeset run"},
		{dataset.ErrIO, ""},
	} {
		hint := failureHint(dataset.Wrap(tc.marker, dataset.StageCollect, "", "", nil))
		if tc.want == "" {
			if hint != "" {
				t.Fatalf("%v: expected no hint, got %q", tc.marker, hint)
			}
			continue
		}
		if !strings.Contains(hint, tc.want) {
			t.Fatalf("%v: hint %q missing %q", tc.marker, hint, tc.want)
		}
	}
}
