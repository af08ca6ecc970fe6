package simulate

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchro-systems/synchro/clock"
	"github.com/synchro-systems/synchro/interpreter"
	"github.com/synchro-systems/synchro/logging"
	"github.com/synchro-systems/synchro/predicate"
	"github.com/synchro-systems/synchro/value"
)

func TestSchedulerRunsEventsInTimeOrder(t *testing.T) {
	s := NewScheduler()
	var order []int

	s.ScheduleAt(clock.VirtualSeconds(5), func() { order = append(order, 5) })
	s.ScheduleAt(clock.VirtualSeconds(1), func() { order = append(order, 1) })
	s.ScheduleAt(clock.VirtualSeconds(3), func() { order = append(order, 3) })

	for s.Step() {
	}

	assert.Equal(t, []int{1, 3, 5}, order)
	assert.Equal(t, clock.VirtualSeconds(5), s.Now())
}

func TestScheduleAtClampsPastEvents(t *testing.T) {
	s := NewScheduler()
	s.ScheduleAt(clock.VirtualSeconds(10), func() {})
	s.Step()

	fired := false
	s.ScheduleAt(clock.VirtualSeconds(1), func() { fired = true }) // in the scheduler's past
	s.Step()

	assert.True(t, fired)
	assert.Equal(t, clock.VirtualSeconds(10), s.Now())
}

func TestNetworkDelaySampleIsPositive(t *testing.T) {
	d := NewNetworkDelay(50, 2, 1)
	for i := 0; i < 20; i++ {
		assert.Greater(t, d.Sample(), time.Duration(0))
	}
}

func TestNetworkDelaySampleIsReproducibleForAFixedSeed(t *testing.T) {
	a := NewNetworkDelay(50, 2, 42)
	b := NewNetworkDelay(50, 2, 42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Sample(), b.Sample())
	}
}

func TestLogRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewLog(&buf)

	require.NoError(t, log.Write(Record{Kind: "observation", SourceID: "square"}))
	v := int64(42)
	require.NoError(t, log.Write(Record{Kind: "stable_value", Value: &v}))

	records, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, log.RunID(), records[0].RunID)
	assert.Equal(t, "observation", records[0].Kind)
	require.NotNil(t, records[1].Value)
	assert.Equal(t, int64(42), *records[1].Value)
}

// TestSimulationEndToEnd drives a single scripted source through a full
// Simulation and checks the interpreter converges to the expected value,
// matching scenario S1's shape (commuting mutations from one source).
func TestSimulationEndToEnd(t *testing.T) {
	scheduler := NewScheduler()
	cfg := interpreter.Config{
		SeedValue:                  value.Value(100),
		Horizon:                    30 * time.Second,
		ObservationChannelCapacity: 16,
	}
	interp := interpreter.New[clock.Virtual](cfg, logging.Nop(), nil, "sim", NewInterpreterClock(scheduler))

	var buf bytes.Buffer
	sim := New(scheduler, interp, NewNetworkDelay(0, 2, 1), NewLog(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		interp.Run(ctx)
		close(done)
	}()

	sim.AddSource(ctx, SourceScript{
		SourceID: "square",
		Emits: []ScriptedEmit{
			{At: clock.VirtualSeconds(1), Pred: predicate.AllMut(-1)},
			{At: clock.VirtualSeconds(5), Pred: predicate.AllMut(-1)},
		},
	})

	for sim.Scheduler().Step() {
	}

	require.Eventually(t, func() bool {
		v, ok, _ := interp.Stable()
		return ok && v == value.Value(98)
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}

// TestSimulationRunBlocksUntilConverged exercises Simulation.Run directly
// (rather than stepping the scheduler manually and polling with Eventually,
// as TestSimulationEndToEnd does): Run must not return until the
// interpreter has actually folded in every scripted observation.
func TestSimulationRunBlocksUntilConverged(t *testing.T) {
	scheduler := NewScheduler()
	cfg := interpreter.Config{
		SeedValue:                  value.Value(100),
		Horizon:                    30 * time.Second,
		ObservationChannelCapacity: 16,
	}
	interp := interpreter.New[clock.Virtual](cfg, logging.Nop(), nil, "sim", NewInterpreterClock(scheduler))

	var buf bytes.Buffer
	sim := New(scheduler, interp, NewNetworkDelay(0, 2, 1), NewLog(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		interp.Run(ctx)
		close(done)
	}()

	sim.AddSource(ctx, SourceScript{
		SourceID: "square",
		Emits: []ScriptedEmit{
			{At: clock.VirtualSeconds(1), Pred: predicate.AllMut(-1)},
			{At: clock.VirtualSeconds(5), Pred: predicate.AllMut(-1)},
		},
	})

	val, ok := sim.Run(ctx)
	require.True(t, ok)
	assert.Equal(t, value.Value(98), val)

	cancel()
	<-done
}
