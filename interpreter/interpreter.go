// Package interpreter implements the interpreter façade (spec §4.8): a
// single-threaded actor that receives observations, runs the history
// automaton, folds pruned regions into a stable baseline, and publishes
// the resolved value to a watch channel for adapters to consume.
package interpreter

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/synchro-systems/synchro/evaluator"
	"github.com/synchro-systems/synchro/history"
	"github.com/synchro-systems/synchro/logging"
	"github.com/synchro-systems/synchro/observation"
	"github.com/synchro-systems/synchro/value"
)

// Config configures an Interpreter.
type Config struct {
	// SeedValue is the value every evaluation folds history from until a
	// pruned region has contributed a baseline.
	SeedValue value.Value
	// Horizon is the prune policy's age threshold (spec §4.6).
	Horizon time.Duration
	// ObservationChannelCapacity bounds the inbound observation channel;
	// once full, Observe blocks, applying backpressure to adapters rather
	// than dropping observations (spec §4.8's "Shared resources").
	ObservationChannelCapacity int
}

// Interpreter is the single-threaded façade actor of spec §4.8. Create one
// with New and drive it with Run; feed it observations with Observe and
// read published values from Stable.
type Interpreter[T history.Clock[T]] struct {
	cfg Config

	hist        *history.History[T]
	stableValue *value.Value // baseline after folding pruned regions, per spec §4.8 step 2

	obsCh  chan observation.Observation[T]
	idleCh chan chan struct{}
	now    func() T

	stable              *watch[value.Value]
	lastPublishUnixNano atomic.Int64

	log     logging.Logger
	metrics *metrics
}

// New constructs an Interpreter. now supplies the current time on the
// interpreter's own clock (wall time for real adapters, simulated time
// under the discrete-event harness).
func New[T history.Clock[T]](cfg Config, log logging.Logger, reg prometheus.Registerer, sourceID string, now func() T) *Interpreter[T] {
	i := &Interpreter[T]{
		cfg:    cfg,
		hist:   history.New[T](cfg.Horizon),
		obsCh:  make(chan observation.Observation[T], cfg.ObservationChannelCapacity),
		idleCh: make(chan chan struct{}),
		now:    now,
		stable: newWatch[value.Value](),
		log:    log,
	}
	i.metrics = newMetrics(reg, sourceID, i.stableValueAgeSeconds)
	return i
}

// stableValueAgeSeconds reports how long it has been since the stable value
// was last published, for the stableValueAge gauge. Returns 0 before the
// first publication.
func (i *Interpreter[T]) stableValueAgeSeconds() float64 {
	nano := i.lastPublishUnixNano.Load()
	if nano == 0 {
		return 0
	}
	return time.Since(time.Unix(0, nano)).Seconds()
}

// Observe enqueues an observation for processing. It blocks if the
// observation channel is full (backpressure), returning early only if ctx
// is canceled first.
func (i *Interpreter[T]) Observe(ctx context.Context, obs observation.Observation[T]) error {
	select {
	case i.obsCh <- obs:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stable returns the last published stable value (ok is false before the
// first successful evaluation) and a channel that closes on the next
// publication.
func (i *Interpreter[T]) Stable() (val value.Value, ok bool, changed <-chan struct{}) {
	return i.stable.Get()
}

// Run drives the façade loop until ctx is canceled: block for the first
// observation of a batch, greedily drain whatever else is immediately
// available, then run one evaluation cycle and publish (spec §4.8).
func (i *Interpreter[T]) Run(ctx context.Context) error {
	for {
		// Drain any queued observation before considering an idle request,
		// so Idle only acknowledges once every observation enqueued ahead
		// of the caller's Idle call has actually been folded in.
		select {
		case obs := <-i.obsCh:
			i.processBatch(ctx, obs)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case obs := <-i.obsCh:
			i.processBatch(ctx, obs)
		case done := <-i.idleCh:
			close(done)
		}
	}
}

// Idle blocks until the interpreter has no queued observations and has
// finished processing whatever batch it was working on — a quiescence
// barrier for callers (the simulate CLI, in particular) that need to read
// Stable() only after every observation enqueued before this call has been
// folded into the published value. Callers must not enqueue further
// observations concurrently with a call to Idle if they need its result to
// reflect a specific cutoff.
func (i *Interpreter[T]) Idle(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case i.idleCh <- done:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (i *Interpreter[T]) processBatch(ctx context.Context, first observation.Observation[T]) {
	batch := 1
	i.applyOne(first)

drain:
	for {
		select {
		case obs := <-i.obsCh:
			i.applyOne(obs)
			batch++
		default:
			break drain
		}
	}
	i.metrics.batchSize.Observe(float64(batch))

	seed := i.cfg.SeedValue
	if i.stableValue != nil {
		seed = *i.stableValue
	}

	result, err := evaluator.Evaluate(i.hist, seed, i.now())
	if err != nil {
		var conflict *evaluator.ConflictError[T]
		if errors.As(err, &conflict) {
			i.metrics.conflictCount.Inc()
			i.log.Warnw("evaluation conflict, stable value unchanged",
				"reason", conflict.Reason, "at", conflict.At, "observations", len(conflict.Observations))
			return
		}
		i.log.Errorw("unexpected evaluator error", "error", err)
		return
	}

	i.stable.Set(result)
	i.lastPublishUnixNano.Store(time.Now().UnixNano())
	i.metrics.regionCount.Set(float64(i.hist.Len()))
}

// applyOne runs the insertion automaton for a single observation and, per
// spec §4.8 step 2, folds any regions the insertion pruned into the
// stable-value baseline before the batch's main evaluation runs. A
// ConflictError while applying pruned regions is impossible by
// construction if the prune policy is honored (spec §7.2); this asserts
// that invariant rather than silently swallowing a violation.
func (i *Interpreter[T]) applyOne(obs observation.Observation[T]) {
	now := i.now()
	pruned := i.hist.Insert(obs, now)
	if len(pruned) == 0 {
		return
	}

	i.metrics.pruneCount.Add(float64(len(pruned)))

	seed := i.cfg.SeedValue
	if i.stableValue != nil {
		seed = *i.stableValue
	}
	for _, r := range pruned {
		result := r.Apply(&seed)
		if result == nil {
			i.log.Errorw("prune invariant violated: pruned region produced a conflict",
				"observations", len(r.Observations))
			continue
		}
		seed = *result
	}
	i.stableValue = &seed
}
