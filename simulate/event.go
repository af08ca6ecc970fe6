// Package simulate implements the discrete-event simulation harness: out
// of spec.md's core scope (§1 names it a non-goal to "model every
// real-world platform"), but carried here as the ambient tooling a
// complete repo in this teacher's style would still ship, matching
// original_source/src/simulation/*'s nexosim-based event loop translated
// to a plain virtual-clock priority queue.
package simulate

import (
	"container/heap"
	"sync/atomic"
	"time"

	"github.com/synchro-systems/synchro/clock"
)

// Event is a single scheduled action at a point on the simulation's
// virtual clock.
type Event struct {
	At  clock.Virtual
	Run func()

	index int // heap.Interface bookkeeping
}

// eventQueue is a container/heap-ordered priority queue of Events, the Go
// analogue of nexosim's internal scheduled-event list: the original
// implementation schedules callbacks against a MonotonicTime via
// ctx.schedule_event; here, the simulation's own loop pops the earliest
// event and advances the virtual clock to match it.
type eventQueue []*Event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool { return q[i].At.Compare(q[j].At) < 0 }
func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x interface{}) {
	e := x.(*Event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *eventQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Scheduler drives events in virtual-time order. now is an atomic.Int64
// (not a plain clock.Virtual) since interpreter.Interpreter reads it via
// its now function from a separate goroutine than the one stepping the
// scheduler.
type Scheduler struct {
	queue eventQueue
	now   atomic.Int64
}

// NewScheduler creates an empty scheduler starting at virtual time zero.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.queue)
	return s
}

// Now returns the scheduler's current virtual time. Safe to call
// concurrently with Step.
func (s *Scheduler) Now() clock.Virtual {
	return clock.Virtual(s.now.Load())
}

// ScheduleAt enqueues run to fire once the scheduler's clock reaches at.
// Scheduling in the past is clamped to the scheduler's current time,
// matching ctx.schedule_event's "always in future" invariant the original
// interfaces relied on (schedule_keyed_event... "Always in future").
func (s *Scheduler) ScheduleAt(at clock.Virtual, run func()) {
	if at.Compare(s.Now()) < 0 {
		at = s.Now()
	}
	heap.Push(&s.queue, &Event{At: at, Run: run})
}

// ScheduleAfter enqueues run to fire d after the scheduler's current time.
func (s *Scheduler) ScheduleAfter(d time.Duration, run func()) {
	s.ScheduleAt(s.Now().Add(d), run)
}

// Step pops and runs the single earliest-scheduled event, advancing the
// virtual clock to its time. It returns false when the queue is empty.
func (s *Scheduler) Step() bool {
	if s.queue.Len() == 0 {
		return false
	}
	e := heap.Pop(&s.queue).(*Event)
	s.now.Store(int64(e.At))
	e.Run()
	return true
}

// Pending reports how many events are still queued.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}
