package simulate

import (
	"context"

	"github.com/synchro-systems/synchro/clock"
	"github.com/synchro-systems/synchro/interpreter"
	"github.com/synchro-systems/synchro/interval"
	"github.com/synchro-systems/synchro/observation"
	"github.com/synchro-systems/synchro/predicate"
	"github.com/synchro-systems/synchro/value"
)

// SourceScript is a deterministic, scripted source for the simulator: a
// fixed sequence of (emit-at, predicate) pairs, the simulated analogue of
// a polling adapter whose real-world timing is instead driven by the
// scheduler. Grounded on original_source/src/simulation/polling/*,
// generalized away from Square/Clover-specific platform calls into a
// source the harness can drive without any live network.
type SourceScript struct {
	SourceID string
	Emits    []ScriptedEmit
}

// ScriptedEmit is one scripted observation: fire at virtual time At, with
// a network delay added by the simulated NetworkDelay model before the
// interpreter actually observes it.
type ScriptedEmit struct {
	At   clock.Virtual
	Pred predicate.Predicate
}

// Simulation drives one or more SourceScripts through an Interpreter on a
// virtual clock, recording every injected observation, and the stable value
// held once Run has drained the scheduler, to a Log.
type Simulation struct {
	scheduler *Scheduler
	interp    *interpreter.Interpreter[clock.Virtual]
	delay     NetworkDelay
	log       *Log
}

// New builds a Simulation driven by scheduler. Build interp with a now
// function of scheduler.Now so interpreter logic observes the same
// virtual clock the scheduler advances — see NewInterpreterClock.
func New(scheduler *Scheduler, interp *interpreter.Interpreter[clock.Virtual], delay NetworkDelay, log *Log) *Simulation {
	return &Simulation{
		scheduler: scheduler,
		interp:    interp,
		delay:     delay,
		log:       log,
	}
}

// NewInterpreterClock returns a now-function for interpreter.New that
// reads scheduler's virtual clock, so the interpreter and the simulation
// driving it never disagree about "now".
func NewInterpreterClock(scheduler *Scheduler) func() clock.Virtual {
	return scheduler.Now
}

// Scheduler exposes the underlying event scheduler for tests and for
// wiring additional scripted behavior (e.g. a simulated write-back).
func (s *Simulation) Scheduler() *Scheduler {
	return s.scheduler
}

// AddSource schedules every emit in script, each arriving at the
// interpreter after a sampled network delay past its nominal emission
// time, ordered and sequenced per-source via SeqMeta.
func (s *Simulation) AddSource(ctx context.Context, script SourceScript) {
	var seq uint64
	for _, emit := range script.Emits {
		emit := emit
		s.scheduler.ScheduleAt(emit.At, func() {
			seq++
			arrivalDelay := s.delay.Sample()
			deliverAt := s.scheduler.Now().Add(arrivalDelay)
			iv := interval.New(s.scheduler.Now(), deliverAt)
			obs := observation.New(iv, emit.Pred, script.SourceID, observation.SeqMeta(seq))

			s.log.Write(Record{
				VirtualNS: int64(deliverAt),
				Kind:      "observation",
				SourceID:  script.SourceID,
				Detail:    emit.Pred.Kind.String(),
			})

			s.scheduler.ScheduleAt(deliverAt, func() {
				_ = s.interp.Observe(ctx, obs)
			})
		})
	}
}

// Run drains the scheduler's event queue to completion. The caller must
// already have the interpreter's own façade loop running concurrently
// (interp.Run(ctx) in its own goroutine) so observations delivered
// mid-simulation are drained as they arrive; Run only advances virtual
// time and feeds the interpreter's input channel. Stepping the scheduler
// to completion only guarantees every observation has been enqueued, not
// that the interpreter goroutine has processed it, so Run blocks on
// interp.Idle before reading Stable.
func (s *Simulation) Run(ctx context.Context) (value.Value, bool) {
	for s.scheduler.Step() {
	}

	_ = s.interp.Idle(ctx) // best-effort: a canceled ctx still reads whatever Stable() last held

	val, ok, _ := s.interp.Stable()
	if ok {
		v := int64(val)
		s.log.Write(Record{VirtualNS: int64(s.scheduler.Now()), Kind: "stable_value", Value: &v})
	}
	return val, ok
}
