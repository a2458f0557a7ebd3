// Package scape defines the environment contract the learning engine drives,
// plus a set of bundled single-step and multi-step benchmark environments.
package scape

import (
	"fmt"
	"math/rand"
)

// Environment is the narrow contract between the engine and a problem. One
// episode is: Reset, then repeat State -> Execute until Terminal reports true.
// Actions are identified by 0..Actions()-1. All randomness is drawn from the
// random source passed to Reset so runs stay reproducible.
type Environment interface {
	Name() string

	// Arity is the fixed length of the state feature vector.
	Arity() int

	// Actions is the size of the finite action alphabet.
	Actions() int

	// Reset starts a new episode, drawing any stochastic initial state from
	// rng.
	Reset(rng *rand.Rand)

	// State returns the current feature vector.
	State() []float64

	// Execute performs the action and returns the immediate reward. An action
	// outside [0, Actions()) is a contract violation and returns an error.
	Execute(action int) (float64, error)

	// Terminal reports whether the episode has ended.
	Terminal() bool
}

// Graded is implemented by environments whose per-step reward has a known
// maximum, which lets the trainer score exploit episodes as correct or not.
type Graded interface {
	MaxReward() float64
}

// RealValued is implemented by environments whose features are continuous;
// the engine then covers with interval conditions instead of ternary ones.
type RealValued interface {
	RealValued() bool
}

// New resolves a bundled environment by name.
func New(name string) (Environment, error) {
	switch name {
	case "equality":
		return NewEquality(), nil
	case "multiplexer":
		return NewMultiplexer(2)
	case "threshold":
		return NewThreshold(0.5), nil
	case "corridor":
		return NewCorridor(5, 20)
	default:
		return nil, fmt.Errorf("unknown scape: %s", name)
	}
}

// Names lists the bundled environments in resolution order.
func Names() []string {
	return []string{"equality", "multiplexer", "threshold", "corridor"}
}

func checkAction(action, n int) error {
	if action < 0 || action >= n {
		return fmt.Errorf("action %d outside advertised set [0,%d)", action, n)
	}
	return nil
}
