package observation

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/synchro-systems/synchro/clock"
	"github.com/synchro-systems/synchro/interval"
	"github.com/synchro-systems/synchro/predicate"
)

func obs(source string, lo, hi int64, meta PlatformMeta) Observation[clock.Virtual] {
	iv := interval.New(clock.VirtualSeconds(lo), clock.VirtualSeconds(hi))
	return New(iv, predicate.Unknown(), source, meta)
}

func TestCmpDisjointIgnoresSource(t *testing.T) {
	a := obs("square", 1, 2, SeqMeta(0))
	b := obs("clover", 3, 4, SeqMeta(0))
	assert.Equal(t, interval.Less, Cmp(a, b))
}

func TestCmpOverlappingDifferentSourceIsIncomparable(t *testing.T) {
	a := obs("square", 1, 5, SeqMeta(9))
	b := obs("clover", 3, 7, SeqMeta(0))
	assert.Equal(t, interval.Incomparable, Cmp(a, b))
	assert.Equal(t, interval.Incomparable, Cmp(b, a))
}

// TestCmpOverlappingSameSourceTiebreaks is scenario S5: two same-source
// observations with overlapping/identical intervals but distinct sequence
// tags 7 then 8 are ordered by PlatformMeta, landing in separate regions
// rather than being merged into one.
func TestCmpOverlappingSameSourceTiebreaks(t *testing.T) {
	a := obs("square", 1, 5, SeqMeta(7))
	b := obs("square", 1, 5, SeqMeta(8))
	assert.Equal(t, interval.Less, Cmp(a, b))
	assert.Equal(t, interval.Greater, Cmp(b, a))
}

func TestCmpSameSourceEqualTagIsIncomparable(t *testing.T) {
	a := obs("square", 1, 5, SeqMeta(7))
	b := obs("square", 1, 5, SeqMeta(7))
	// A well-behaved adapter never produces this (§6 requires strictly
	// monotonic tags for overlapping intervals); Cmp stays total rather
	// than panicking.
	assert.Equal(t, interval.Incomparable, Cmp(a, b))
}

func TestCmpTimestampMeta(t *testing.T) {
	a := obs("clover", 1, 5, TimestampMeta(100))
	b := obs("clover", 1, 5, TimestampMeta(200))
	assert.Equal(t, interval.Less, Cmp(a, b))
}

func TestCmpMismatchedMetaTypesIsIncomparable(t *testing.T) {
	a := obs("square", 1, 5, SeqMeta(1))
	b := obs("square", 1, 5, TimestampMeta(1))
	assert.Equal(t, interval.Incomparable, Cmp(a, b))
}

// Test_SeqMetaProperties checks spec §8 property 3 ("no equal observations")
// for the overlapping-same-source case: distinct sequence numbers always
// produce a strict order, never Incomparable, modeled on the teacher's
// gopter property style.
func Test_SeqMetaProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("distinct SeqMeta tags on overlapping same-source observations are ordered", prop.ForAll(
		func(lo, hi int64, s1, s2 uint32) bool {
			if hi <= lo {
				hi = lo + 1
			}
			if s1 == s2 {
				s2++
			}
			a := obs("square", lo, hi, SeqMeta(s1))
			b := obs("square", lo, hi, SeqMeta(s2))
			order := Cmp(a, b)
			reverse := Cmp(b, a)
			if s1 < s2 {
				return order == interval.Less && reverse == interval.Greater
			}
			return order == interval.Greater && reverse == interval.Less
		},
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 1000),
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.TestingRun(t)
}
