package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eyeset/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableTarget_Missing(t *testing.T) {
	result := CheckWritableTarget("output", filepath.Join(t.TempDir(), "a", "b"))
	if !result.Passed {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckWritableTarget_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckWritableTarget("output", filepath.Join(f, "child"))
	if result.Passed {
		t.Fatal("expected failure when ancestor is a file")
	}
}

func TestCheckArchive(t *testing.T) {
	dir := t.TempDir()

	missing, _ := CheckArchive(filepath.Join(dir, "absent.zip"))
	if missing.Passed || !strings.Contains(missing.Detail, "not found") {
		t.Fatalf("expected not found failure, got %+v", missing)
	}

	corrupt := filepath.Join(dir, "corrupt.zip")
	if err := os.WriteFile(corrupt, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result, _ := CheckArchive(corrupt); result.Passed {
		t.Fatal("expected failure for corrupt archive")
	}

	good := filepath.Join(dir, "eyes.zip")
	testsupport.WriteArchive(t, good, testsupport.EyeImages(2, 1))
	result, stats := CheckArchive(good)
	if !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if stats.Files != 3 || stats.Bytes == 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !strings.Contains(result.Detail, "3 files") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("space", filepath.Join(dir, "not-yet"), 1); !result.Passed {
		t.Fatalf("expected one byte to fit, got %s", result.Detail)
	}
	if result := CheckFreeSpace("space", dir, ^uint64(0)); result.Passed {
		t.Fatal("expected failure for impossible requirement")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEyeImages(2, 2))
	results := RunAll(cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %+v", len(results), results)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAllMissingArchiveSkipsSpaceChecks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Dataset archive" {
		t.Fatalf("expected only the archive check to fail, got %+v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("expected nil, got %+v", results)
	}
}
