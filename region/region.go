// Package region implements Region, the maximal set of pairwise-incomparable
// observations, and the merge procedure that collapses a region to a single
// predicate (spec §3, §4.3, §4.4).
package region

import (
	"github.com/synchro-systems/synchro/interval"
	"github.com/synchro-systems/synchro/observation"
	"github.com/synchro-systems/synchro/predicate"
	"github.com/synchro-systems/synchro/value"
)

// Region is a non-empty, pairwise-incomparable set of observations plus a
// lazily-computed cached predicate. Regions are unique: there is
// deliberately no Equal method.
type Region[T interval.Timeline[T]] struct {
	Observations []observation.Observation[T]
	cached       *predicate.Predicate
}

// New creates a single-observation region. The cache starts populated since
// a single observation's predicate needs no merge.
func New[T interval.Timeline[T]](obs observation.Observation[T]) *Region[T] {
	p := obs.Predicate
	return &Region[T]{
		Observations: []observation.Observation[T]{obs},
		cached:       &p,
	}
}

// Insert adds obs to the region and invalidates the cached predicate.
//
// TODO: topological insert to keep the maximal elements easy to find,
// instead of a flat append.
func (r *Region[T]) Insert(obs observation.Observation[T]) {
	r.Observations = append(r.Observations, obs)
	r.cached = nil
}

// Apply folds in through the region's predicate: computing (and caching) it
// via the merge procedure first if necessary.
func (r *Region[T]) Apply(in *value.Value) *value.Value {
	if r.cached == nil {
		merged := Merge(r.Observations)
		r.cached = &merged
	}
	return predicate.Apply(*r.cached, in)
}

// CompareWithObservation implements spec §4.3's three-way comparison of a
// region against a candidate observation: Less/Greater only if the
// observation is ordered the same way against every member; Incomparable
// the moment it disagrees with (or is incomparable to) any single member.
func (r *Region[T]) CompareWithObservation(obs observation.Observation[T]) interval.Order {
	lessComparable := true
	greaterComparable := true

	for _, contained := range r.Observations {
		switch observation.Cmp(obs, contained) {
		case interval.Less:
			greaterComparable = false
		case interval.Greater:
			lessComparable = false
		case interval.Incomparable:
			return interval.Incomparable
		}
	}

	switch {
	case lessComparable:
		return interval.Less
	case greaterComparable:
		return interval.Greater
	default:
		return interval.Incomparable
	}
}

// Merge implements the merge procedure of spec §4.4: a region of purely
// AllMut observations collapses to the summed delta; anything else (a
// Transition, an Unknown, or a mix involving LastAssn) collapses to
// Unknown, since mutations only commute with other mutations.
func Merge[T interval.Timeline[T]](observations []observation.Observation[T]) predicate.Predicate {
	allMutations := true
	var sum value.Delta

	for _, obs := range observations {
		switch obs.Predicate.Kind {
		case predicate.KindAllMut:
			if !allMutations {
				return predicate.Unknown()
			}
			sum += obs.Predicate.Delta
		default:
			// LastAssn, Transition, and Unknown all make the region
			// unmergeable: mutations only commute with other mutations.
			return predicate.Unknown()
		}
	}

	if allMutations {
		return predicate.AllMut(sum)
	}
	return predicate.Unknown()
}
