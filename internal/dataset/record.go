package dataset

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"eyeset/internal/labeling"
)

// Record is an accepted image: its path inside the extracted tree and the
// label derived from its filename.
type Record struct {
	Path  string
	Label labeling.Label
}

// CollectResult holds accepted records plus the number of image files that
// did not match the labeling rules.
type CollectResult struct {
	Records []Record
	Skipped int
}

// LabelCounts tallies accepted records per label.
func (r CollectResult) LabelCounts() LabelCounts {
	var counts LabelCounts
	for _, rec := range r.Records {
		counts.Add(rec.Label)
	}
	return counts
}

// Collect walks root in lexical order and labels every regular file whose
// name ends with ext. The suffix match is case-sensitive, so ".PNG" files
// are not images when ext is ".png". Files that fail the labeling rules are
// counted in Skipped and otherwise ignored.
func Collect(ctx context.Context, root, ext string, rules labeling.Rules) (CollectResult, error) {
	var result CollectResult
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		label, ok := rules.Classify(d.Name())
		if !ok {
			result.Skipped++
			return nil
		}
		result.Records = append(result.Records, Record{Path: path, Label: label})
		return nil
	})
	if err != nil {
		return CollectResult{}, err
	}
	return result, nil
}
