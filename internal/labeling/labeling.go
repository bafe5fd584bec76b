// Package labeling derives eye-state labels from dataset filenames.
//
// MRL Eye filenames encode per-image annotations as underscore-separated
// tokens, e.g. s0016_00083_1_0_0_0_1_01.png. One fixed token carries the eye
// state; everything else about the name is ignored.
package labeling

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Label is the eye state assigned to an image.
type Label string

const (
	Open   Label = "open"
	Closed Label = "closed"
)

// All lists every label in report order.
var All = []Label{Open, Closed}

// ParseLabel converts a textual label into a Label.
func ParseLabel(value string) (Label, error) {
	switch Label(strings.ToLower(strings.TrimSpace(value))) {
	case Open:
		return Open, nil
	case Closed:
		return Closed, nil
	default:
		return "", fmt.Errorf("unknown label %q", value)
	}
}

// Rules locate the eye-state token inside a filename.
type Rules struct {
	MinSegments int
	TokenIndex  int
	ClosedToken string
	OpenToken   string
}

// DefaultRules match the MRL Eye naming scheme: at least seven segments, the
// sixth (index 5) holding "1" for closed and "0" for open.
func DefaultRules() Rules {
	return Rules{MinSegments: 7, TokenIndex: 5, ClosedToken: "1", OpenToken: "0"}
}

// Classify returns the label encoded in name, which may be a bare filename or
// a path. ok is false when the name has too few segments or the token is not
// one of the configured values.
func (r Rules) Classify(name string) (label Label, ok bool) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	segments := strings.Split(base, "_")
	if len(segments) < r.MinSegments || r.TokenIndex >= len(segments) {
		return "", false
	}
	switch segments[r.TokenIndex] {
	case r.ClosedToken:
		return Closed, true
	case r.OpenToken:
		return Open, true
	default:
		return "", false
	}
}
