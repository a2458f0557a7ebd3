// Package condition implements the per-feature predicates that decide whether
// a classifier matches a state. Two representations are provided: ternary
// symbol strings (wildcard or exact value) for discrete inputs, and
// ordered-bound intervals for real-valued inputs.
package condition

import "math/rand"

// Condition is a conjunctive sequence of per-feature predicates. A condition
// matches a state iff every predicate matches the corresponding feature.
//
// All stochastic operations take an explicit random source so that a fixed
// seed yields bit-reproducible runs.
type Condition interface {
	// Arity returns the number of input features the condition spans.
	Arity() int

	// Matches reports whether every predicate accepts the corresponding
	// feature of state. A state of different arity never matches.
	Matches(state []float64) bool

	// IsMoreGeneral reports whether this condition matches a strict superset
	// of the inputs other matches. Conditions of different representations or
	// arities are never comparable.
	IsMoreGeneral(other Condition) bool

	// CrossoverWith swaps a two-point slice of predicates between this
	// condition and other, in place. Callers are expected to operate on
	// clones. Mixing representations is an error.
	CrossoverWith(other Condition, rng *rand.Rand) error

	// Mutate perturbs each predicate independently with probability rate.
	// Ternary predicates toggle between wildcard and the exact value observed
	// in state; interval bounds shift by a uniform amount in [-magnitude,
	// magnitude] and are reordered so lower <= upper always holds.
	Mutate(state []float64, rate, magnitude float64, rng *rand.Rand)

	// Equal reports structural equality of the predicate sequences.
	Equal(other Condition) bool

	// Clone returns a deep copy.
	Clone() Condition

	// String renders the condition in a compact human-readable form.
	String() string
}

// crossoverPoints draws an ordered pair of cut indices over n features.
func crossoverPoints(n int, rng *rand.Rand) (int, int) {
	from := rng.Intn(n)
	to := rng.Intn(n)
	if from > to {
		from, to = to, from
	}
	return from, to
}
