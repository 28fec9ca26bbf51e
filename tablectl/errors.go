package tablectl

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	ErrShapeMismatch   = errors.New("row cell count does not match column count")
	ErrIndexOutOfRange = errors.New("column index out of range")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column label")
	ErrUnknownRow      = errors.New("unknown row")
)

// UnknownColumnError is returned by label lookups that miss. It matches
// ErrUnknownColumn with errors.Is.
type UnknownColumnError struct {
	Label      string
	Suggestion string // closest existing label, empty if nothing is close
}

func (e *UnknownColumnError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown column %q (did you mean %q?)", e.Label, e.Suggestion)
	}
	return fmt.Sprintf("unknown column %q", e.Label)
}

func (e *UnknownColumnError) Is(target error) bool { return target == ErrUnknownColumn }

// closestLabel picks the label within a third of the query's length in edit distance.
func closestLabel(label string, cols []Column) string {
	best := ""
	bestDist := len(label)/3 + 1
	for _, c := range cols {
		dist := levenshtein.ComputeDistance(label, c.Label)
		if dist < bestDist {
			best = c.Label
			bestDist = dist
		}
	}
	return best
}
