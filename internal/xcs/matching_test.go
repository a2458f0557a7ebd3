package xcs

import (
	"math/rand"
	"testing"
)

func TestMissingActions(t *testing.T) {
	match := []*Classifier{
		newClassifier(t, "1#", 0),
		newClassifier(t, "##", 2),
	}
	missing := missingActions(match, 4)
	if len(missing) != 2 || missing[0] != 1 || missing[1] != 3 {
		t.Fatalf("unexpected missing actions: %v", missing)
	}
	if got := missingActions(match, 1); got != nil {
		t.Fatalf("expected full coverage, got %v", got)
	}
}

func TestBuildMatchSetCoversEveryAction(t *testing.T) {
	cfg := DefaultConfig()
	pop, err := NewPopulation(cfg.MaxPopulation)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	c := &coverer{cfg: &cfg}
	rng := rand.New(rand.NewSource(3))
	state := []float64{1, 0}

	match, err := c.buildMatchSet(pop, state, 2, 0, rng)
	if err != nil {
		t.Fatalf("build match set: %v", err)
	}
	if missing := missingActions(match, 2); len(missing) != 0 {
		t.Fatalf("actions left unrepresented: %v", missing)
	}
	for _, cl := range match {
		if !cl.Condition.Matches(state) {
			t.Fatalf("covering produced a non-matching condition: %v", cl)
		}
		if cl.Prediction != cfg.InitialPrediction || cl.Fitness != cfg.InitialFitness {
			t.Fatalf("covering classifier carries wrong initial stats: %v", cl)
		}
		if cl.Numerosity != 1 || cl.ActionSetSize != 1 {
			t.Fatalf("covering classifier carries wrong counters: %v", cl)
		}
	}
}

func TestBuildMatchSetCoversRealValuedStates(t *testing.T) {
	cfg := DefaultConfig()
	pop, err := NewPopulation(cfg.MaxPopulation)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	c := &coverer{cfg: &cfg, realValued: true}
	rng := rand.New(rand.NewSource(3))
	state := []float64{0.37}

	match, err := c.buildMatchSet(pop, state, 2, 0, rng)
	if err != nil {
		t.Fatalf("build match set: %v", err)
	}
	for _, cl := range match {
		if !cl.Condition.Matches(state) {
			t.Fatalf("interval covering missed the state: %v", cl)
		}
	}
}

func TestBuildMatchSetKeepsExistingMatchers(t *testing.T) {
	cfg := DefaultConfig()
	pop, err := NewPopulation(cfg.MaxPopulation)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	existing := newClassifier(t, "1#", 0)
	pop.Insert(existing)

	c := &coverer{cfg: &cfg}
	match, err := c.buildMatchSet(pop, []float64{1, 1}, 2, 0, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("build match set: %v", err)
	}
	found := false
	for _, cl := range match {
		if cl == existing {
			found = true
		}
	}
	if !found {
		t.Fatal("existing matching classifier missing from match set")
	}
}

func TestActionSubsetFiltersActionAndDeadRecords(t *testing.T) {
	alive := newClassifier(t, "1#", 1)
	dead := newClassifier(t, "11", 1)
	dead.Numerosity = 0
	other := newClassifier(t, "##", 0)

	subset := actionSubset([]*Classifier{alive, dead, other}, 1)
	if len(subset) != 1 || subset[0] != alive {
		t.Fatalf("unexpected subset: %v", subset)
	}
}
