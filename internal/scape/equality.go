package scape

import "math/rand"

// Equality is a single-step classification problem over two random bits: the
// correct action is 1 when the bits are equal and 0 when they differ. A
// correct guess pays RewardMax, anything else pays zero.
type Equality struct {
	bits [2]float64
	done bool
}

// RewardMax is the payoff for a correct classification in the bundled
// single-step environments.
const RewardMax = 1000.0

func NewEquality() *Equality {
	return &Equality{done: true}
}

func (e *Equality) Name() string { return "equality" }
func (e *Equality) Arity() int   { return 2 }
func (e *Equality) Actions() int { return 2 }

func (e *Equality) Reset(rng *rand.Rand) {
	e.bits[0] = float64(rng.Intn(2))
	e.bits[1] = float64(rng.Intn(2))
	e.done = false
}

func (e *Equality) State() []float64 {
	return []float64{e.bits[0], e.bits[1]}
}

func (e *Equality) Execute(action int) (float64, error) {
	if err := checkAction(action, e.Actions()); err != nil {
		return 0, err
	}
	e.done = true
	answer := 0
	if e.bits[0] == e.bits[1] {
		answer = 1
	}
	if action == answer {
		return RewardMax, nil
	}
	return 0, nil
}

func (e *Equality) Terminal() bool { return e.done }

func (e *Equality) MaxReward() float64 { return RewardMax }
