package xcs

import (
	"fmt"
	"math/rand"

	"xcslab/internal/condition"
)

// coverer creates classifiers on demand when the match set leaves actions
// unrepresented.
type coverer struct {
	cfg        *Config
	realValued bool
}

// newClassifier synthesizes a covering classifier guaranteed to match state,
// carrying the configured initial statistics.
func (c *coverer) newClassifier(state []float64, action, timestamp int, rng *rand.Rand) *Classifier {
	var cond condition.Condition
	if c.realValued {
		cond = condition.CoverInterval(state, c.cfg.CoverSpread, rng)
	} else {
		cond = condition.CoverTernary(state, c.cfg.WildcardProb, rng)
	}
	return &Classifier{
		Condition:     cond,
		Action:        action,
		Prediction:    c.cfg.InitialPrediction,
		Error:         c.cfg.InitialError,
		Fitness:       c.cfg.InitialFitness,
		ActionSetSize: 1,
		Numerosity:    1,
		Timestamp:     timestamp,
	}
}

// missingActions lists the actions of [0,numActions) absent from the match
// set, in ascending order.
func missingActions(match []*Classifier, numActions int) []int {
	present := make([]bool, numActions)
	for _, cl := range match {
		if cl.Action >= 0 && cl.Action < numActions {
			present[cl.Action] = true
		}
	}
	var missing []int
	for a, ok := range present {
		if !ok {
			missing = append(missing, a)
		}
	}
	return missing
}

// buildMatchSet matches the population against state and covers until every
// action is represented. Each covering insertion removes one missing action,
// but the deletion that keeps the population within capacity can evict
// matching rules, so the match set is rebuilt after every insertion. If
// coverage is still incomplete after a bounded number of insertions the
// configuration is inconsistent and the error is surfaced instead of
// retrying forever.
func (c *coverer) buildMatchSet(pop *Population, state []float64, numActions, timestamp int, rng *rand.Rand) ([]*Classifier, error) {
	match := pop.MatchSet(state)
	budget := 2*numActions + 2
	for attempt := 0; attempt < budget; attempt++ {
		missing := missingActions(match, numActions)
		if len(missing) == 0 {
			return match, nil
		}
		action := missing[rng.Intn(len(missing))]
		cl := c.newClassifier(state, action, timestamp, rng)
		pop.Insert(cl)
		if err := pop.EnforceCapacity(c.cfg.ThetaDel, c.cfg.Delta, rng); err != nil {
			return nil, err
		}
		match = pop.MatchSet(state)
	}
	if missing := missingActions(match, numActions); len(missing) > 0 {
		return nil, fmt.Errorf("covering failed to represent %d of %d actions after %d insertions; configuration is inconsistent", len(missing), numActions, budget)
	}
	return match, nil
}

// actionSubset filters the match set down to the classifiers advocating
// action, skipping records already deleted down to zero numerosity.
func actionSubset(match []*Classifier, action int) []*Classifier {
	var subset []*Classifier
	for _, cl := range match {
		if cl.Action == action && cl.Numerosity > 0 {
			subset = append(subset, cl)
		}
	}
	return subset
}
