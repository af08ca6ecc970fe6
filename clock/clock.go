// Package clock provides the two time types this system's observations are
// stamped with: wall-clock time for real adapters, and a virtual clock for
// the discrete-event simulator. Both satisfy interval.Timeline.
package clock

import "time"

// Wall is wall-clock time, used by real platform adapters.
type Wall struct {
	time.Time
}

// NewWall wraps a time.Time as a Wall timestamp.
func NewWall(t time.Time) Wall {
	return Wall{Time: t}
}

// Compare satisfies interval.Timeline[Wall].
func (w Wall) Compare(other Wall) int {
	return w.Time.Compare(other.Time)
}

// Sub returns the duration between two Wall timestamps, satisfying
// history.Clock[Wall].
func (w Wall) Sub(other Wall) time.Duration {
	return w.Time.Sub(other.Time)
}

// Virtual is a simulation's monotonic clock, measured in nanoseconds since
// the simulation epoch. It is a plain integer so test/simulation code can
// write literal timestamps the way spec §8's scenarios do ("T=0,1,2,...").
type Virtual int64

// VirtualSeconds builds a Virtual timestamp s seconds after the simulation
// epoch, matching the wall-time unit used throughout spec §8's scenarios.
func VirtualSeconds(s int64) Virtual {
	return Virtual(s * int64(time.Second))
}

// Compare satisfies interval.Timeline[Virtual].
func (v Virtual) Compare(other Virtual) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}

// Add returns v advanced by d.
func (v Virtual) Add(d time.Duration) Virtual {
	return v + Virtual(d)
}

// Sub returns the duration between two Virtual timestamps.
func (v Virtual) Sub(other Virtual) time.Duration {
	return time.Duration(v - other)
}
