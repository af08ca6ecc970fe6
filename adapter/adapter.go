// Package adapter implements the platform-adapter contract of spec §6: a
// source of observations, an optional write-back path honoring the
// safe-polling guard, and a poll loop that retries polls with backoff and
// attempts one write-back per cycle, logging failures, so platform failures
// never reach the interpreter (spec §7, "Adapter-side errors").
package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/synchro-systems/synchro/clock"
	"github.com/synchro-systems/synchro/interpreter"
	"github.com/synchro-systems/synchro/interval"
	"github.com/synchro-systems/synchro/logging"
	"github.com/synchro-systems/synchro/observation"
	"github.com/synchro-systems/synchro/predicate"
	"github.com/synchro-systems/synchro/value"
)

// Interpretation selects how a changed poll result becomes a predicate,
// matching the original polling adapters' PollingInterpretation enum.
type Interpretation int

const (
	InterpretationTransition Interpretation = iota
	InterpretationMutation
	InterpretationAssignment
)

func (i Interpretation) String() string {
	switch i {
	case InterpretationTransition:
		return "transition"
	case InterpretationMutation:
		return "mutation"
	case InterpretationAssignment:
		return "assignment"
	default:
		panic("adapter: unreachable Interpretation")
	}
}

// WriteMode selects whether Adapter reflects the stable value back to the
// platform with a guard (the safe-polling contract of spec §6) or with a
// blind, unconditional write, matching the original implementation's two
// real-world adapter variants.
type WriteMode int

const (
	WriteModeBlind WriteMode = iota
	WriteModeGuarded
)

// PollResult is a single successful poll of the underlying platform.
type PollResult struct {
	Value     value.Value
	SentAt    time.Time
	RepliedAt time.Time
	// SequenceNumber is the platform's own monotonic ordering tag for this
	// poll, when it supplies one. Zero means "not supplied"; buildObservation
	// then falls back to the adapter's own counter.
	SequenceNumber uint64
}

// Source polls the underlying platform for its current value. Source
// implementations should return a plain error on any platform failure;
// Adapter wraps calls in backoff retries so failures never escape to the
// interpreter.
type Source interface {
	Poll(ctx context.Context) (PollResult, error)
}

// BlindWriter performs an unconditional write-back, for platforms with no
// compare-and-swap primitive.
type BlindWriter interface {
	Write(ctx context.Context, newValue value.Value) error
}

// GuardedWriter performs a compare-and-swap write-back (spec §6's
// safe-polling contract): the platform commits iff its current value still
// equals guard; otherwise ok is false and current reports what the
// platform actually held.
type GuardedWriter interface {
	Write(ctx context.Context, newValue, guard value.Value) (current value.Value, ok bool, err error)
}

// Config configures an Adapter.
type Config struct {
	SourceID       string
	Interpretation Interpretation
	WriteMode      WriteMode
	PollInterval   time.Duration
	Backoff        backoff.BackOff // retries within a single poll; nil uses backoff.NewExponentialBackOff()
}

// Adapter drives a Source/Writer pair against an Interpreter: polling on a
// cadence, translating changed values into observations per Config's
// Interpretation, and reflecting the stable value back with at most one
// outstanding write in flight (spec §6).
type Adapter struct {
	cfg    Config
	source Source
	blind  BlindWriter
	guard  GuardedWriter

	interp *interpreter.Interpreter[clock.Wall]
	log    logging.Logger

	seq  uint64
	last value.Value
}

// New constructs an Adapter. Exactly one of blind or guard should be
// non-nil, matching cfg.WriteMode; a read-only adapter passes both nil.
func New(cfg Config, source Source, blind BlindWriter, guard GuardedWriter, interp *interpreter.Interpreter[clock.Wall], log logging.Logger, initial value.Value) *Adapter {
	if cfg.Backoff == nil {
		cfg.Backoff = backoff.NewExponentialBackOff()
	}
	return &Adapter{
		cfg:    cfg,
		source: source,
		blind:  blind,
		guard:  guard,
		interp: interp,
		log:    log,
		last:   initial,
	}
}

// Run drives the poll loop until ctx is canceled.
func (a *Adapter) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	// Poll once immediately, then on cadence.
	if err := a.cycle(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.cycle(ctx); err != nil {
				return err
			}
		}
	}
}

// cycle runs one poll, emits an observation if the value changed, and
// attempts a write-back of the current stable value if one is available.
// Poll failures are retried with backoff; neither poll nor write-back
// failures surface past this method (spec §7: "Adapter-side errors...
// never reach the interpreter").
func (a *Adapter) cycle(ctx context.Context) error {
	sentAt := time.Now()
	var result PollResult
	err := backoff.Retry(func() error {
		r, err := a.source.Poll(ctx)
		if err != nil {
			a.log.Warnw("poll failed, retrying with backoff", "source_id", a.cfg.SourceID, "error", err)
			return err
		}
		result = r
		return nil
	}, backoff.WithContext(a.cfg.Backoff, ctx))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		// Backoff exhausted or permanently failed: log and skip this
		// cycle rather than propagating into the interpreter.
		a.log.Errorw("poll permanently failed this cycle", "source_id", a.cfg.SourceID, "error", err)
		return nil
	}

	if result.Value != a.last {
		obs := a.buildObservation(sentAt, result)
		if obsErr := a.interp.Observe(ctx, obs); obsErr != nil {
			return obsErr
		}
		a.last = result.Value
	}

	a.maybeWriteBack(ctx)
	return nil
}

func (a *Adapter) buildObservation(sentAt time.Time, result PollResult) observation.Observation[clock.Wall] {
	iv := interval.New(clock.NewWall(sentAt), clock.NewWall(result.RepliedAt))

	var p predicate.Predicate
	switch a.cfg.Interpretation {
	case InterpretationTransition:
		p = predicate.Transition(a.last, result.Value)
	case InterpretationMutation:
		p = predicate.AllMut(value.Delta(result.Value - a.last))
	case InterpretationAssignment:
		p = predicate.LastAssn(result.Value)
	default:
		panic("adapter: unreachable Interpretation")
	}

	seq := result.SequenceNumber
	if seq == 0 {
		a.seq++
		seq = a.seq
	}
	return observation.New(iv, p, a.cfg.SourceID, observation.SeqMeta(seq))
}

// maybeWriteBack attempts to reflect the current stable value to the
// platform. It does not track write-in-flight state across cycles beyond
// the underlying Write call's own lifetime, and a failed write is logged,
// not retried, so at most one write is ever
// outstanding per call to cycle — further reconciliation across the
// at-most-one-outstanding-write window described in spec §6 is handled by
// the next poll observing whatever the platform actually committed.
func (a *Adapter) maybeWriteBack(ctx context.Context) {
	stable, ok, _ := a.interp.Stable()
	if !ok || stable == a.last {
		return
	}

	switch a.cfg.WriteMode {
	case WriteModeBlind:
		if a.blind == nil {
			return
		}
		if err := a.blind.Write(ctx, stable); err != nil {
			a.log.Warnw("blind write-back failed", "source_id", a.cfg.SourceID, "error", err)
		}
	case WriteModeGuarded:
		if a.guard == nil {
			return
		}
		current, committed, err := a.guard.Write(ctx, stable, a.last)
		if err != nil {
			a.log.Warnw("guarded write-back failed", "source_id", a.cfg.SourceID, "error", err)
			return
		}
		if !committed {
			a.log.Debugw("guarded write rejected, platform value moved under us", "source_id", a.cfg.SourceID, "current", current)
		}
	default:
		panic("adapter: unreachable WriteMode")
	}
}
