// Package value defines the scalar type the interpreter synchronizes.
//
// A Value is a totally-ordered integer scalar: comparable for equality,
// closed under addition/subtraction, with zero as the additive identity.
// Platforms may report fractional quantities (see adapter.ParseQuantity); the
// adapter boundary is responsible for rounding those into a Value before
// anything in this module ever sees them.
package value

import "fmt"

// Value is the single logical scalar kept in sync across platforms.
type Value int64

// Delta is a signed change applied to a Value (AllMut's payload).
type Delta int64

// Zero is the additive identity: Zero.Add(v) == v for all v.
const Zero Value = 0

// Add returns v + d.
func (v Value) Add(d Delta) Value {
	return v + Value(d)
}

// Sub returns v - d.
func (v Value) Sub(d Delta) Value {
	return v - Value(d)
}

func (v Value) String() string {
	return fmt.Sprintf("%d", int64(v))
}

func (d Delta) String() string {
	return fmt.Sprintf("%+d", int64(d))
}
