package survey

import (
	"errors"
	"fmt"
)

// ErrCRSMismatch reports input coordinates that cannot be geographic
// lon/lat. Inputs are expected in EPSG:4326 and projected on load.
var ErrCRSMismatch = errors.New("coordinates are not geographic lon/lat (expected EPSG:4326)")

// ErrDuplicateName reports a feature name appearing twice in one input file.
var ErrDuplicateName = errors.New("duplicate feature name")

// ErrEmptyBuffer reports a shoreline margin that eliminates a block polygon
// entirely, leaving nothing to sample from.
var ErrEmptyBuffer = errors.New("buffer margin eliminates polygon")

// ConstraintUnsatisfiableError is returned when the sampler exhausts its
// attempt bound without placing a point that honours the minimum pairwise
// distance.
type ConstraintUnsatisfiableError struct {
	Block    string
	Attempts int
}

func (e *ConstraintUnsatisfiableError) Error() string {
	return fmt.Sprintf("block %q: no valid point after %d attempts", e.Block, e.Attempts)
}
