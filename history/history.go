// Package history implements History, the totally-ordered sequence of
// regions, its insertion automaton, and its horizon-based prune policy
// (spec §3, §4.5, §4.6).
package history

import (
	"time"

	"github.com/synchro-systems/synchro/interval"
	"github.com/synchro-systems/synchro/observation"
	"github.com/synchro-systems/synchro/region"
)

// Clock is the time type contract History needs beyond interval.Timeline:
// a way to measure elapsed duration for the prune policy.
type Clock[T any] interface {
	interval.Timeline[T]
	Sub(other T) time.Duration
}

// DefaultHorizon is the prune horizon spec §4.6 names as the default: a
// region older than this relative to "now" is dropped from the live
// history once the insertion cursor has walked past it.
const DefaultHorizon = 30 * time.Second

// History is the ordered sequence of regions the interpreter folds values
// through. The zero value is not usable; construct with New.
//
// Go has no LinkedList cursor API like the original implementation's
// std::collections::LinkedList, so this reimplements the same cursor-walk
// automaton over a plain slice — regions are few and already bounded by
// pruning, so slice insert/remove costs are not a concern in practice.
type History[T Clock[T]] struct {
	regions []*region.Region[T]
	horizon time.Duration
	prune   bool
}

// New creates an empty History pruning at the given horizon.
func New[T Clock[T]](horizon time.Duration) *History[T] {
	return &History[T]{horizon: horizon, prune: true}
}

// NewUnpruned creates an empty History with pruning disabled, for tests
// and tools that need to inspect the full history regardless of age.
func NewUnpruned[T Clock[T]]() *History[T] {
	return &History[T]{prune: false}
}

// Regions returns the live regions in history order (oldest first).
func (h *History[T]) Regions() []*region.Region[T] {
	return h.regions
}

// Len returns the number of live regions.
func (h *History[T]) Len() int {
	return len(h.regions)
}

// Insert runs the insertion automaton of spec §4.5 for a single
// observation and returns any regions pruned along the way (oldest first),
// so callers can fold them into the stable value before discarding them
// (spec §4.8).
func (h *History[T]) Insert(obs observation.Observation[T], now T) []*region.Region[T] {
	var pruned []*region.Region[T]

	i := 0
	for i < len(h.regions) {
		r := h.regions[i]
		switch r.CompareWithObservation(obs) {
		case interval.Incomparable:
			if i+1 < len(h.regions) && h.regions[i+1].CompareWithObservation(obs) == interval.Incomparable {
				return h.mergeCapture(i, obs, pruned)
			}
			r.Insert(obs)
			return pruned
		case interval.Less:
			h.insertRegionAt(i, region.New(obs))
			return pruned
		case interval.Greater:
			lo := r.Observations[0].Interval.Lo
			if h.prune && now.Sub(lo) > h.horizon {
				pruned = append(pruned, r)
				h.regions = append(h.regions[:i], h.regions[i+1:]...)
				continue
			}
			i++
		}
	}

	h.regions = append(h.regions, region.New(obs))
	return pruned
}

// mergeCapture implements the "Merge-Mode" branch of the insertion
// automaton: region i is incomparable with obs, and so is region i+1, so
// every region that the observation is incomparable-or-greater-than,
// starting from i, is absorbed into one region until a region strictly
// Less than obs (or the end of history) is reached.
func (h *History[T]) mergeCapture(i int, obs observation.Observation[T], pruned []*region.Region[T]) []*region.Region[T] {
	mergeInto := h.regions[i]
	for _, o := range h.regions[i+1].Observations {
		mergeInto.Insert(o)
	}

	j := i + 2
	for j < len(h.regions) {
		cr := h.regions[j]
		if cr.CompareWithObservation(obs) == interval.Less {
			break
		}
		for _, o := range cr.Observations {
			mergeInto.Insert(o)
		}
		j++
	}
	mergeInto.Insert(obs)

	tail := h.regions[j:]
	newRegions := make([]*region.Region[T], 0, i+1+len(tail))
	newRegions = append(newRegions, h.regions[:i]...)
	newRegions = append(newRegions, mergeInto)
	newRegions = append(newRegions, tail...)
	h.regions = newRegions

	return pruned
}

func (h *History[T]) insertRegionAt(i int, r *region.Region[T]) {
	h.regions = append(h.regions, nil)
	copy(h.regions[i+1:], h.regions[i:])
	h.regions[i] = r
}
