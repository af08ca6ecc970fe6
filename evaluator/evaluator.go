// Package evaluator folds a History into a resolved Value, or reports the
// region where resolution first broke down (spec §4.7).
package evaluator

import (
	"fmt"

	"github.com/synchro-systems/synchro/history"
	"github.com/synchro-systems/synchro/observation"
	"github.com/synchro-systems/synchro/value"
)

// ConflictError reports that folding the history from a seed value could
// not produce a defined result: some region's predicate, applied to its
// predecessor's result, yielded Unknown, and no later region's predicate
// re-defined the value (e.g. via LastAssn).
type ConflictError[T any] struct {
	Reason       string
	Observations []observation.Observation[T]
	At           T
}

func (e *ConflictError[T]) Error() string {
	return fmt.Sprintf("conflict at %v: %s (%d observations in root region)", e.At, e.Reason, len(e.Observations))
}

// Evaluate folds seed through every live region of h in order (spec §4.7).
// Each region's cached-or-merged predicate is applied to the running
// value; the first region whose application yields no defined value marks
// the root of a conflict, tracked until a later region re-defines the
// value (for example, a subsequent LastAssn clears any earlier ambiguity).
// If the fold ends with a defined value, that value is returned; otherwise
// the conflict rooted at the first still-undefined region is reported.
func Evaluate[T history.Clock[T]](h *history.History[T], seed value.Value, at T) (value.Value, error) {
	current := &seed

	var conflictRegionObs []observation.Observation[T]
	conflicted := false

	for _, r := range h.Regions() {
		result := r.Apply(current)

		if result == nil && !conflicted {
			conflicted = true
			conflictRegionObs = r.Observations
		}
		if result != nil {
			conflicted = false
			conflictRegionObs = nil
		}

		current = result
	}

	if current != nil {
		return *current, nil
	}

	return value.Zero, &ConflictError[T]{
		Reason:       "region predicate left the value undefined",
		Observations: conflictRegionObs,
		At:           at,
	}
}
