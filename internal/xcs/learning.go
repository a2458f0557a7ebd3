package xcs

import (
	"errors"
	"fmt"
	"math"
)

// ErrFitnessShare is returned when the fitness-sharing denominator collapses
// to zero. Every classifier has positive accuracy, so this indicates a broken
// internal invariant rather than a recoverable condition.
var ErrFitnessShare = errors.New("fitness sharing denominator is zero")

// updater applies the reinforcement update to an action set after the
// environment reports a payoff.
type updater struct {
	cfg *Config
}

// accuracy maps prediction error to accuracy: exact (1.0) below the epsilon0
// tolerance, then a steep power-law falloff.
func (u *updater) accuracy(cl *Classifier) float64 {
	if cl.Error < u.cfg.Epsilon0 {
		return 1
	}
	return u.cfg.Alpha * math.Pow(cl.Error/u.cfg.Epsilon0, -u.cfg.Nu)
}

// Update applies the payoff to every classifier in the action set:
// experience, action-set-size estimate, prediction error (against the
// pre-update prediction), prediction, and finally the shared accuracy-based
// fitness. The payoff is the discounted return: raw reward on terminal
// steps, reward plus gamma times the next state's best estimate otherwise.
func (u *updater) Update(actionSet []*Classifier, payoff float64) error {
	if len(actionSet) == 0 {
		return fmt.Errorf("cannot update an empty action set")
	}
	beta := u.cfg.LearningRate
	setSize := float64(numerositySum(actionSet))

	for _, cl := range actionSet {
		cl.Experience++
		cl.ActionSetSize += beta * (setSize - cl.ActionSetSize)
		cl.Error += beta * (math.Abs(payoff-cl.Prediction) - cl.Error)
		cl.Prediction += beta * (payoff - cl.Prediction)
	}

	accuracies := make([]float64, len(actionSet))
	denominator := 0.0
	for i, cl := range actionSet {
		accuracies[i] = u.accuracy(cl)
		denominator += accuracies[i] * float64(cl.Numerosity)
	}
	if denominator <= 0 {
		return fmt.Errorf("%w: %d classifiers", ErrFitnessShare, len(actionSet))
	}
	for i, cl := range actionSet {
		relative := accuracies[i] * float64(cl.Numerosity) / denominator
		cl.Fitness += beta * (relative - cl.Fitness)
	}
	return nil
}
