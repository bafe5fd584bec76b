package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"eyeset/internal/labeling"
)

// Subset names one side of the train/validation split.
type Subset string

const (
	Train Subset = "train"
	Val   Subset = "val"
)

// Subsets lists both subsets in report order.
var Subsets = []Subset{Train, Val}

// LabelCounts holds one count per label.
type LabelCounts struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// Add increments the count for label.
func (c *LabelCounts) Add(label labeling.Label) {
	switch label {
	case labeling.Open:
		c.Open++
	case labeling.Closed:
		c.Closed++
	}
}

// Get returns the count for label.
func (c LabelCounts) Get(label labeling.Label) int {
	switch label {
	case labeling.Open:
		return c.Open
	case labeling.Closed:
		return c.Closed
	default:
		return 0
	}
}

// Total returns the sum over both labels.
func (c LabelCounts) Total() int { return c.Open + c.Closed }

// BucketCounts holds one count per bucket (subset × label).
type BucketCounts struct {
	Train LabelCounts `json:"train"`
	Val   LabelCounts `json:"val"`
}

// Subset returns the counts for one side of the split.
func (b BucketCounts) Subset(subset Subset) LabelCounts {
	if subset == Val {
		return b.Val
	}
	return b.Train
}

func (b *BucketCounts) add(subset Subset, label labeling.Label) {
	if subset == Val {
		b.Val.Add(label)
		return
	}
	b.Train.Add(label)
}

// Labels sums both subsets per label.
func (b BucketCounts) Labels() LabelCounts {
	return LabelCounts{
		Open:   b.Train.Open + b.Val.Open,
		Closed: b.Train.Closed + b.Val.Closed,
	}
}

// Total returns the sum over all four buckets.
func (b BucketCounts) Total() int { return b.Train.Total() + b.Val.Total() }

// Layout is the destination tree: <root>/{train,val}/{open,closed}.
type Layout struct {
	Root string
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// Dir returns the bucket directory for subset and label.
func (l Layout) Dir(subset Subset, label labeling.Label) string {
	return filepath.Join(l.Root, string(subset), string(label))
}

// LockPath returns the lock file guarding the tree against concurrent runs.
func (l Layout) LockPath() string {
	return filepath.Join(l.Root, ".eyeset.lock")
}

// Ensure creates the four bucket directories. Existing directories and their
// contents are left untouched.
func (l Layout) Ensure() error {
	for _, subset := range Subsets {
		for _, label := range labeling.All {
			dir := l.Dir(subset, label)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create directory %q: %w", dir, err)
			}
		}
	}
	return nil
}

// Count reads every bucket directory and counts its entries. Missing bucket
// directories count as zero.
func (l Layout) Count() (BucketCounts, error) {
	var counts BucketCounts
	for _, subset := range Subsets {
		for _, label := range labeling.All {
			entries, err := os.ReadDir(l.Dir(subset, label))
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return BucketCounts{}, fmt.Errorf("read bucket %s/%s: %w", subset, label, err)
			}
			for range entries {
				counts.add(subset, label)
			}
		}
	}
	return counts, nil
}
