package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"eyeset/internal/scratch"
	"eyeset/internal/testsupport"
)

func TestPreflightPasses(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithEyeImages(2, 2))

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err != nil {
		t.Fatalf("preflight: %v\n%s", err, out)
	}
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "5/5 checks passed")
	requireContains(t, out, "[OK]")
}

func TestPreflightReportsMissingArchive(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, err.Error(), "1 check(s) failed")
	requireContains(t, out, "failing: Dataset archive")
	requireContains(t, out, "[ERROR]")
}

func TestCleanScratchRemovesStaleDirectories(t *testing.T) {
	env := setupCLITestEnv(t)

	stale, err := scratch.Acquire(env.cfg.Paths.ScratchDir, "stale")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale.Path, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	fresh, err := scratch.Acquire(env.cfg.Paths.ScratchDir, "fresh")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	out, _, err := runCLI(t, []string{"clean-scratch", "--list"}, env.configPath)
	if err != nil {
		t.Fatalf("clean-scratch --list: %v", err)
	}
	requireContains(t, out, "run-stale")
	requireContains(t, out, "run-fresh")

	out, _, err = runCLI(t, []string{"clean-scratch"}, env.configPath)
	if err != nil {
		t.Fatalf("clean-scratch: %v", err)
	}
	requireContains(t, out, "Removed "+stale.Path)
	if _, err := os.Stat(stale.Path); !os.IsNotExist(err) {
		t.Fatalf("expected stale dir removed, stat err=%v", err)
	}
	if _, err := os.Stat(fresh.Path); err != nil {
		t.Fatalf("fresh dir should remain: %v", err)
	}

	out, _, err = runCLI(t, []string{"clean-scratch", "--max-age", "0s"}, env.configPath)
	if err != nil {
		t.Fatalf("clean-scratch --max-age: %v", err)
	}
	requireContains(t, out, "Removed "+fresh.Path)
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Config path: "+env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[split]\nvalidation_ratio = 2.0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "validation_ratio") {
		t.Fatalf("expected validation_ratio error, got %v", err)
	}
}

func TestLogLevelFlagValidated(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"--log-level", "chatty", "stats"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--log-level") {
		t.Fatalf("expected --log-level error, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"--log-level", "DEBUG", "stats"}, env.configPath); err != nil {
		t.Fatalf("stats with debug logging: %v", err)
	}
}
