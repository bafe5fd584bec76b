package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"eyeset/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.Archive != filepath.Join(workDir, "mrlEyes_2018_01.zip") {
		t.Fatalf("unexpected archive path: %q", cfg.Paths.Archive)
	}
	if cfg.Paths.OutputRoot != filepath.Join(workDir, "dataset") {
		t.Fatalf("unexpected output root: %q", cfg.Paths.OutputRoot)
	}
	wantScratch := filepath.Join(tempHome, ".cache", "eyeset", "scratch")
	if cfg.Paths.ScratchDir != wantScratch {
		t.Fatalf("unexpected scratch dir: got %q want %q", cfg.Paths.ScratchDir, wantScratch)
	}
	if cfg.Split.ValidationRatio != 0.2 {
		t.Fatalf("unexpected validation ratio: %v", cfg.Split.ValidationRatio)
	}
	if cfg.Split.Seed != 42 {
		t.Fatalf("unexpected seed: %d", cfg.Split.Seed)
	}
	if cfg.Labels.TokenIndex != 5 || cfg.Labels.MinSegments != 7 {
		t.Fatalf("unexpected label rules: %+v", cfg.Labels)
	}
	if cfg.HistoryPath() != filepath.Join(tempHome, ".local", "share", "eyeset", "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configDir := t.TempDir()
	configPath := filepath.Join(configDir, "config.toml")

	archive := filepath.Join(configDir, "eyes.zip")
	output := filepath.Join(configDir, "out")
	content := strings.Join([]string{
		"[paths]",
		"archive = \"" + archive + "\"",
		"output_root = \"" + output + "\"",
		"scratch_dir = \"~/scratch\"",
		"",
		"[split]",
		"validation_ratio = 0.25",
		"seed = 7",
		"image_extension = \"JPG\"",
		"",
		"[logging]",
		"format = \"JSON\"",
		"level = \"Debug\"",
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.Archive != archive {
		t.Fatalf("unexpected archive: %q", cfg.Paths.Archive)
	}
	if cfg.Paths.ScratchDir != filepath.Join(tempHome, "scratch") {
		t.Fatalf("expected scratch dir to expand, got %q", cfg.Paths.ScratchDir)
	}
	if cfg.Split.ImageExtension != ".jpg" {
		t.Fatalf("expected normalized extension, got %q", cfg.Split.ImageExtension)
	}
	if cfg.Split.Seed != 7 {
		t.Fatalf("unexpected seed: %d", cfg.Split.Seed)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\narchve = \"x.zip\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidate(t *testing.T) {
	base := t.TempDir()
	valid := func() config.Config {
		cfg := config.Default()
		cfg.Paths.Archive = filepath.Join(base, "eyes.zip")
		cfg.Paths.OutputRoot = filepath.Join(base, "dataset")
		cfg.Paths.ScratchDir = filepath.Join(base, "scratch")
		cfg.Paths.LogDir = filepath.Join(base, "logs")
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "ratio zero", mutate: func(c *config.Config) { c.Split.ValidationRatio = 0 }, want: "validation_ratio"},
		{name: "ratio one", mutate: func(c *config.Config) { c.Split.ValidationRatio = 1 }, want: "validation_ratio"},
		{name: "token beyond segments", mutate: func(c *config.Config) { c.Labels.TokenIndex = 7 }, want: "min_segments"},
		{name: "same tokens", mutate: func(c *config.Config) { c.Labels.OpenToken = "1" }, want: "must differ"},
		{name: "scratch inside output", mutate: func(c *config.Config) {
			c.Paths.ScratchDir = filepath.Join(c.Paths.OutputRoot, "tmp")
		}, want: "scratch_dir"},
		{name: "bad level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, want: "logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	defaults := config.Default()
	if decoded.Split != defaults.Split {
		t.Fatalf("sample split section drifted from defaults: %+v vs %+v", decoded.Split, defaults.Split)
	}
	if decoded.Labels != defaults.Labels {
		t.Fatalf("sample labels section drifted from defaults: %+v vs %+v", decoded.Labels, defaults.Labels)
	}
}
