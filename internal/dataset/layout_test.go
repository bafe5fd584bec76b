package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"eyeset/internal/labeling"
	"eyeset/internal/testsupport"
)

func TestLayoutEnsureIsIdempotent(t *testing.T) {
	layout := NewLayout(filepath.Join(t.TempDir(), "dataset"))
	if err := layout.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	keep := filepath.Join(layout.Dir(Train, labeling.Open), "keep.png")
	testsupport.WriteFile(t, keep, 1)
	if err := layout.Ensure(); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("Ensure should not disturb existing files: %v", err)
	}
	for _, subset := range Subsets {
		for _, label := range labeling.All {
			info, err := os.Stat(layout.Dir(subset, label))
			if err != nil || !info.IsDir() {
				t.Fatalf("expected bucket %s/%s: %v", subset, label, err)
			}
		}
	}
}

func TestLayoutCount(t *testing.T) {
	layout := NewLayout(t.TempDir())
	if err := layout.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	write := func(subset Subset, label labeling.Label, names ...string) {
		for _, name := range names {
			testsupport.WriteFile(t, filepath.Join(layout.Dir(subset, label), name), 1)
		}
	}
	write(Train, labeling.Open, "a.png", "b.png", "c.png")
	write(Train, labeling.Closed, "d.png")
	write(Val, labeling.Closed, "e.png", "f.png")

	counts, err := layout.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	want := BucketCounts{
		Train: LabelCounts{Open: 3, Closed: 1},
		Val:   LabelCounts{Open: 0, Closed: 2},
	}
	if counts != want {
		t.Fatalf("Count = %+v, want %+v", counts, want)
	}
	if counts.Total() != 6 {
		t.Fatalf("Total = %d", counts.Total())
	}
}

func TestLayoutCountMissingRoot(t *testing.T) {
	counts, err := NewLayout(filepath.Join(t.TempDir(), "absent")).Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if counts.Total() != 0 {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}
