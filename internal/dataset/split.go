package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Assignment is the train/validation partition of the accepted records.
type Assignment struct {
	Train []Record
	Val   []Record
}

// Records returns the records assigned to subset.
func (a Assignment) Records(subset Subset) []Record {
	if subset == Val {
		return a.Val
	}
	return a.Train
}

// Counts tallies the assignment per bucket.
func (a Assignment) Counts() BucketCounts {
	var counts BucketCounts
	for _, subset := range Subsets {
		for _, rec := range a.Records(subset) {
			counts.add(subset, rec.Label)
		}
	}
	return counts
}

// Split shuffles records with a PRNG seeded by seed and assigns the first
// ceil(valRatio*n) of the permutation to validation and the rest to train.
// Labels play no part in the assignment. The input slice is not modified.
func Split(records []Record, valRatio float64, seed int64) (Assignment, error) {
	n := len(records)
	if n == 0 {
		return Assignment{}, errors.New("no records to split")
	}
	if valRatio <= 0 || valRatio >= 1 {
		return Assignment{}, fmt.Errorf("validation ratio %v outside (0, 1)", valRatio)
	}

	nVal := int(math.Ceil(valRatio * float64(n)))
	nTrain := n - nVal
	if nTrain == 0 {
		return Assignment{}, fmt.Errorf("%d record(s) at validation ratio %v leave the train split empty", n, valRatio)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	assignment := Assignment{
		Train: make([]Record, 0, nTrain),
		Val:   make([]Record, 0, nVal),
	}
	for i, idx := range perm {
		if i < nVal {
			assignment.Val = append(assignment.Val, records[idx])
		} else {
			assignment.Train = append(assignment.Train, records[idx])
		}
	}
	return assignment, nil
}
