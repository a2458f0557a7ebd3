package xcs

import (
	"math/rand"
	"testing"

	"xcslab/internal/condition"
)

func mustTernary(t *testing.T, pattern string) condition.Condition {
	t.Helper()

	cond, err := condition.ParseTernary(pattern)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	return cond
}

func newClassifier(t *testing.T, pattern string, action int) *Classifier {
	t.Helper()

	return &Classifier{
		Condition:     mustTernary(t, pattern),
		Action:        action,
		Prediction:    10,
		Error:         0,
		Fitness:       0.01,
		ActionSetSize: 1,
		Numerosity:    1,
	}
}

func TestNewPopulationRejectsZeroCapacity(t *testing.T) {
	if _, err := NewPopulation(0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}

func TestPopulationInsertMergesIdentical(t *testing.T) {
	pop, err := NewPopulation(10)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	pop.Insert(newClassifier(t, "1#", 0))
	pop.Insert(newClassifier(t, "1#", 0))
	if pop.Macro() != 1 {
		t.Fatalf("expected merged record, got %d macro", pop.Macro())
	}
	if pop.NumerositySum() != 2 {
		t.Fatalf("expected numerosity 2, got %d", pop.NumerositySum())
	}

	// Same condition with a different action stays a separate record.
	pop.Insert(newClassifier(t, "1#", 1))
	if pop.Macro() != 2 {
		t.Fatalf("expected 2 macro records, got %d", pop.Macro())
	}
}

func TestPopulationMatchSet(t *testing.T) {
	pop, err := NewPopulation(10)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	pop.Insert(newClassifier(t, "1#", 0))
	pop.Insert(newClassifier(t, "0#", 1))
	pop.Insert(newClassifier(t, "##", 1))

	match := pop.MatchSet([]float64{1, 0})
	if len(match) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(match))
	}
	for _, cl := range match {
		if !cl.Condition.Matches([]float64{1, 0}) {
			t.Fatalf("non-matching classifier in match set: %v", cl)
		}
	}
}

func TestEnforceCapacityKeepsNumerosityWithinBounds(t *testing.T) {
	pop, err := NewPopulation(5)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	patterns := []string{"1#", "0#", "11", "00", "#1", "#0", "10", "01", "##", "0#"}
	for i, pattern := range patterns {
		cl := newClassifier(t, pattern, i%2)
		cl.Fitness = 0.1 + float64(i)*0.05
		pop.Insert(cl)
	}

	rng := rand.New(rand.NewSource(7))
	if err := pop.EnforceCapacity(20, 0.1, rng); err != nil {
		t.Fatalf("enforce capacity: %v", err)
	}
	if pop.NumerositySum() > 5 {
		t.Fatalf("numerosity sum %d exceeds capacity", pop.NumerositySum())
	}
	for _, cl := range pop.Members() {
		if cl.Numerosity < 1 {
			t.Fatalf("zero-numerosity record survived: %v", cl)
		}
	}
}

func TestEnforceCapacityErrorsOnDegenerateVotes(t *testing.T) {
	pop, err := NewPopulation(1)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	for i := 0; i < 2; i++ {
		cl := newClassifier(t, "1#", i)
		cl.ActionSetSize = 0
		pop.Insert(cl)
	}

	if err := pop.EnforceCapacity(20, 0.1, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected error when every deletion vote is zero")
	}
}

func TestDeletionVoteScalesForWeakExperiencedRules(t *testing.T) {
	strong := &Classifier{Fitness: 0.5, ActionSetSize: 10, Numerosity: 1, Experience: 50}
	weak := &Classifier{Fitness: 0.001, ActionSetSize: 10, Numerosity: 1, Experience: 50}
	young := &Classifier{Fitness: 0.001, ActionSetSize: 10, Numerosity: 1, Experience: 5}

	mean := 0.25
	if got := deletionVote(strong, mean, 20, 0.1); got != 10 {
		t.Fatalf("strong rule should keep the base vote, got %g", got)
	}
	if got := deletionVote(weak, mean, 20, 0.1); got <= 10 {
		t.Fatalf("weak experienced rule should attract extra pressure, got %g", got)
	}
	if got := deletionVote(young, mean, 20, 0.1); got != 10 {
		t.Fatalf("inexperienced rule should keep the base vote, got %g", got)
	}
}
