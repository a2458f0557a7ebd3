// Package xcs implements an accuracy-based classifier system: a population of
// condition-action rules evolved online through covering, reinforcement
// updates, and a steady-state genetic algorithm that niches inside action
// sets.
package xcs

import (
	"fmt"

	"xcslab/internal/condition"
)

// Classifier is one rule together with its learned statistics. A single
// record may represent several identical micro-classifiers, tracked by
// Numerosity; every capacity and deletion computation is numerosity-weighted.
type Classifier struct {
	Condition condition.Condition
	Action    int

	// Prediction estimates the payoff received when the action is taken in
	// states the condition matches.
	Prediction float64
	// Error is the running mean absolute error of Prediction.
	Error float64
	// Fitness is the niche-relative accuracy, the quantity the genetic
	// algorithm selects on.
	Fitness float64
	// ActionSetSize is a running average of the micro-classifier size of the
	// action sets this rule has participated in.
	ActionSetSize float64

	Numerosity int
	Experience int
	// Timestamp is the step counter at the rule's last participation in
	// genetic discovery.
	Timestamp int
}

// Identical reports whether two classifiers represent the same rule: equal
// condition and equal action. Identical rules are merged by numerosity
// instead of stored twice.
func (c *Classifier) Identical(other *Classifier) bool {
	return c.Action == other.Action && c.Condition.Equal(other.Condition)
}

// Clone deep-copies the classifier, condition included.
func (c *Classifier) Clone() *Classifier {
	copied := *c
	copied.Condition = c.Condition.Clone()
	return &copied
}

func (c *Classifier) String() string {
	return fmt.Sprintf("%s:%d p=%.2f e=%.2f f=%.4f as=%.1f n=%d exp=%d",
		c.Condition, c.Action, c.Prediction, c.Error, c.Fitness, c.ActionSetSize, c.Numerosity, c.Experience)
}

// numerositySum totals micro-classifiers across a transient set.
func numerositySum(set []*Classifier) int {
	total := 0
	for _, cl := range set {
		total += cl.Numerosity
	}
	return total
}
