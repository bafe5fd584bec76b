package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"eyeset/internal/labeling"
	"eyeset/internal/testsupport"
)

func TestCollectLabelsAndSkips(t *testing.T) {
	root := t.TempDir()
	files := map[string]int64{
		"s0016/s0016_00083_1_0_0_0_1_01.png": 4,
		"s0001/s0001_00001_0_1_1_1_1_02.png": 4,
		"s0001/s0001_00002_0_1_1_1_1_02.PNG": 4,
		"s0001/short_name_1.png":             4,
		"s0001/s0001_00003_0_1_1_9_1_02.png": 4,
		"s0001/s0001_00004_0_1_1_1_1_02.txt": 4,
		"stats.csv":                          4,
	}
	for rel, size := range files {
		testsupport.WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), size)
	}

	result, err := Collect(context.Background(), root, ".png", labeling.DefaultRules())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 accepted records, got %d: %+v", len(result.Records), result.Records)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped images, got %d", result.Skipped)
	}

	counts := result.LabelCounts()
	if counts.Open != 1 || counts.Closed != 1 {
		t.Fatalf("unexpected label counts: %+v", counts)
	}

	byName := make(map[string]labeling.Label)
	for _, rec := range result.Records {
		byName[filepath.Base(rec.Path)] = rec.Label
	}
	if byName["s0016_00083_1_0_0_0_1_01.png"] != labeling.Open {
		t.Fatal("expected s0016_00083_1_0_0_0_1_01.png to be open")
	}
	if byName["s0001_00001_0_1_1_1_1_02.png"] != labeling.Closed {
		t.Fatal("expected s0001_00001_0_1_1_1_1_02.png to be closed")
	}
	if _, ok := byName["s0001_00002_0_1_1_1_1_02.PNG"]; ok {
		t.Fatal("upper-case extension should not match .png")
	}
}

func TestCollectExtensionIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "s0001", "s0001_00002_0_1_1_1_1_02.PNG"), 4)
	testsupport.WriteFile(t, filepath.Join(root, "s0001", "s0001_00005_0_1_1_0_1_02.Png"), 4)

	result, err := Collect(context.Background(), root, ".png", labeling.DefaultRules())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(result.Records) != 0 || result.Skipped != 0 {
		t.Fatalf("expected mixed-case extensions to be ignored, got %d records, %d skipped", len(result.Records), result.Skipped)
	}
}

func TestCollectLexicalOrder(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"b/s_1_1_1_1_0_1.png", "a/s_2_1_1_1_0_1.png", "a/s_0_1_1_1_1_1.png"} {
		testsupport.WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), 1)
	}
	result, err := Collect(context.Background(), root, ".png", labeling.DefaultRules())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{"a/s_0_1_1_1_1_1.png", "a/s_2_1_1_1_0_1.png", "b/s_1_1_1_1_0_1.png"}
	for i, rec := range result.Records {
		rel, _ := filepath.Rel(root, rec.Path)
		if filepath.ToSlash(rel) != want[i] {
			t.Fatalf("record %d = %s, want %s", i, rel, want[i])
		}
	}
}

func TestCollectCancelled(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a_b_c_d_e_0_g.png"), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Collect(ctx, root, ".png", labeling.DefaultRules()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
