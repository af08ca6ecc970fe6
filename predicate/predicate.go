// Package predicate implements the definition-predicate algebra (spec §3,
// §4.1): a closed, four-variant sum type describing how an observed change
// redefines the synchronized value, plus the total function Apply that
// folds a predicate over an optional input.
package predicate

import "github.com/synchro-systems/synchro/value"

// Kind enumerates the DefinitionPredicate variants. It is exhaustively
// switched on everywhere in this module; adding a variant without updating
// every switch is a compile-time-silent bug, so each switch below ends in
// a panic on the default case rather than silently doing nothing.
type Kind int

const (
	// KindTransition is defined only when the input equals S0, yielding S1.
	KindTransition Kind = iota
	// KindAllMut is defined for every defined input, yielding input+Delta.
	KindAllMut
	// KindLastAssn is defined for every input, including "undefined",
	// yielding New unconditionally.
	KindLastAssn
	// KindUnknown is never defined.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindTransition:
		return "Transition"
	case KindAllMut:
		return "AllMut"
	case KindLastAssn:
		return "LastAssn"
	case KindUnknown:
		return "Unknown"
	default:
		panic("predicate: unreachable Kind")
	}
}

// Predicate is a DefinitionPredicate value. Only the fields relevant to Kind
// are meaningful; construct with the Transition/AllMut/LastAssn/Unknown
// helpers rather than a struct literal.
type Predicate struct {
	Kind  Kind
	S0    value.Value // Transition: required input
	S1    value.Value // Transition: output
	Delta value.Delta // AllMut: change applied
	New   value.Value // LastAssn: unconditional output
}

// Transition builds a DefinitionPredicate defined only for input s0,
// yielding s1.
func Transition(s0, s1 value.Value) Predicate {
	return Predicate{Kind: KindTransition, S0: s0, S1: s1}
}

// AllMut builds a DefinitionPredicate defined for any defined input,
// yielding input+delta.
func AllMut(delta value.Delta) Predicate {
	return Predicate{Kind: KindAllMut, Delta: delta}
}

// LastAssn builds a DefinitionPredicate defined unconditionally, yielding
// new.
func LastAssn(new value.Value) Predicate {
	return Predicate{Kind: KindLastAssn, New: new}
}

// Unknown builds a DefinitionPredicate that is never defined.
func Unknown() Predicate {
	return Predicate{Kind: KindUnknown}
}

// Apply is the total function apply(K, Option<Value>) -> Option<Value> of
// spec §3/§4.1. A nil *value.Value means "undefined at this point"; the
// returned pointer is nil under the same convention.
func Apply(k Predicate, in *value.Value) *value.Value {
	switch k.Kind {
	case KindTransition:
		if in != nil && *in == k.S0 {
			out := k.S1
			return &out
		}
		return nil
	case KindAllMut:
		if in == nil {
			return nil
		}
		out := in.Add(k.Delta)
		return &out
	case KindLastAssn:
		out := k.New
		return &out
	case KindUnknown:
		return nil
	default:
		panic("predicate: unreachable Kind in Apply")
	}
}
