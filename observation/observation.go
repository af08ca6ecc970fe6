// Package observation implements the Observation type and its partial
// order (spec §3, §4.2): interval order first, falling back to a
// per-source monotonic tag only when two observations share a source.
package observation

import (
	"fmt"

	"github.com/synchro-systems/synchro/interval"
	"github.com/synchro-systems/synchro/predicate"
)

// PlatformMeta is a per-source monotonic tag: an integer sequence number or
// a source-native timestamp. Adapters MUST ensure that for any two of their
// own observations with overlapping intervals, their PlatformMeta values
// compare strictly (spec §6).
//
// Compare returns (order, ok). ok is false when the two values are not of
// the same concrete implementation and therefore cannot be compared — the
// caller (Cmp below) only ever calls this for observations that already
// share a Source, so in practice this should always be ok==true; ok==false
// surfaces a misbehaving adapter rather than panicking.
type PlatformMeta interface {
	Compare(other PlatformMeta) (order int, ok bool)
}

// SeqMeta is the default PlatformMeta: a per-adapter monotonic counter,
// grounded on the "poll_count" sequence number the original polling
// adapters stamp every observation with.
type SeqMeta uint64

func (s SeqMeta) Compare(other PlatformMeta) (int, bool) {
	o, ok := other.(SeqMeta)
	if !ok {
		return 0, false
	}
	switch {
	case s < o:
		return -1, true
	case s > o:
		return 1, true
	default:
		return 0, true
	}
}

// TimestampMeta is a PlatformMeta backed by a source's own native
// timestamp, for platforms that report one instead of a bare sequence
// number.
type TimestampMeta int64 // UnixNano, or any monotonic per-source counter unit

func (t TimestampMeta) Compare(other PlatformMeta) (int, bool) {
	o, ok := other.(TimestampMeta)
	if !ok {
		return 0, false
	}
	switch {
	case t < o:
		return -1, true
	case t > o:
		return 1, true
	default:
		return 0, true
	}
}

// Observation is a single time-uncertain report of change (spec §3).
// Observations are unique: there is deliberately no Equal method, matching
// the "equality always false" rule carried down from Interval.
type Observation[T interval.Timeline[T]] struct {
	Interval     interval.Interval[T]
	Predicate    predicate.Predicate
	SourceID     string
	PlatformMeta PlatformMeta
}

// New builds an Observation.
func New[T interval.Timeline[T]](iv interval.Interval[T], p predicate.Predicate, sourceID string, meta PlatformMeta) Observation[T] {
	return Observation[T]{Interval: iv, Predicate: p, SourceID: sourceID, PlatformMeta: meta}
}

// Cmp implements the Observation partial order of spec §4.2: consult
// interval order first; only when both observations share a SourceID and
// the intervals are incomparable, fall back to the per-source monotonic
// tag. Any other case where intervals are incomparable is Incomparable.
func Cmp[T interval.Timeline[T]](a, b Observation[T]) interval.Order {
	switch interval.Cmp(a.Interval, b.Interval) {
	case interval.Less:
		return interval.Less
	case interval.Greater:
		return interval.Greater
	case interval.Incomparable:
		if a.SourceID != b.SourceID {
			return interval.Incomparable
		}
		order, ok := a.PlatformMeta.Compare(b.PlatformMeta)
		if !ok {
			// A misbehaving adapter handed us two incomparable metadata
			// types from the same source; treat conservatively.
			return interval.Incomparable
		}
		switch {
		case order < 0:
			return interval.Less
		case order > 0:
			return interval.Greater
		default:
			// order == 0 is unreachable for well-behaved adapters: §6
			// requires strictly monotonic per-source tags for
			// overlapping intervals. Surfacing it as Incomparable (not
			// a panic) keeps Cmp total; no caller in this module detects
			// or reports the equal-tag case separately.
			return interval.Incomparable
		}
	default:
		panic("observation: unreachable interval.Order")
	}
}

func (o Observation[T]) String() string {
	return fmt.Sprintf("%s{%s %s}", o.SourceID, o.Predicate.Kind, o.Interval)
}
