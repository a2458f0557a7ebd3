package xcs

import (
	"math"
	"math/rand"
	"testing"
)

func newDiscovery(cfg *Config) *discovery {
	return &discovery{cfg: cfg, numActions: 2}
}

func TestShouldRunAgeTrigger(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)

	fresh := newClassifier(t, "1#", 0)
	fresh.Timestamp = 100
	if d.shouldRun([]*Classifier{fresh}, 100) {
		t.Fatal("a set touched this step must not trigger")
	}
	if !d.shouldRun([]*Classifier{fresh}, 100+cfg.ThetaGA+1) {
		t.Fatal("an aged set must trigger")
	}

	// The mean age is numerosity-weighted.
	old := newClassifier(t, "0#", 0)
	old.Timestamp = 0
	old.Numerosity = 1
	heavy := newClassifier(t, "##", 0)
	heavy.Timestamp = 100
	heavy.Numerosity = 99
	if d.shouldRun([]*Classifier{old, heavy}, 101) {
		t.Fatal("one stale micro-classifier in a fresh heavy set must not trigger")
	}
}

func TestSpawnAveragesParentsAndResets(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)

	parent := newClassifier(t, "1#", 0)
	parent.Prediction = 100
	parent.Error = 10
	parent.ActionSetSize = 4
	parent.Fitness = 0.6
	parent.Numerosity = 3
	parent.Experience = 40
	mate := newClassifier(t, "0#", 0)
	mate.Prediction = 200
	mate.Error = 30
	mate.ActionSetSize = 8
	mate.Fitness = 0.2
	mate.Numerosity = 1
	mate.Experience = 10

	child := d.spawn(parent, mate, 77)

	wantPrediction := (100*3 + 200*1) / 4.0
	if math.Abs(child.Prediction-wantPrediction) > 1e-9 {
		t.Fatalf("prediction %g, want %g", child.Prediction, wantPrediction)
	}
	wantError := (10*3 + 30*1) / 4.0
	if math.Abs(child.Error-wantError) > 1e-9 {
		t.Fatalf("error %g, want %g", child.Error, wantError)
	}
	wantFitness := cfg.FitnessReduction * (0.6*3 + 0.2*1) / 4.0
	if math.Abs(child.Fitness-wantFitness) > 1e-9 {
		t.Fatalf("fitness %g, want %g", child.Fitness, wantFitness)
	}
	if child.Numerosity != 1 || child.Experience != 0 || child.Timestamp != 77 {
		t.Fatalf("counters not reset: %v", child)
	}
	if !child.Condition.Equal(parent.Condition) {
		t.Fatal("child should inherit the first parent's condition")
	}
	// The condition is a copy, not shared storage.
	child.Condition.Mutate([]float64{0, 0}, 1, 0.1, rand.New(rand.NewSource(1)))
	if child.Condition.Equal(parent.Condition) {
		t.Fatal("child condition shares storage with its parent")
	}
}

func TestSelectParentRouletteFavorsFitness(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)

	weak := newClassifier(t, "1#", 0)
	weak.Fitness = 0.01
	strong := newClassifier(t, "0#", 0)
	strong.Fitness = 0.99

	rng := rand.New(rand.NewSource(13))
	strongPicks := 0
	for i := 0; i < 1000; i++ {
		if d.selectParent([]*Classifier{weak, strong}, rng) == strong {
			strongPicks++
		}
	}
	if strongPicks < 900 {
		t.Fatalf("strong parent picked %d/1000 times, expected a heavy majority", strongPicks)
	}

	// All-zero fitness falls back to a uniform draw.
	weak.Fitness = 0
	strong.Fitness = 0
	weakPicks := 0
	for i := 0; i < 1000; i++ {
		if d.selectParent([]*Classifier{weak, strong}, rng) == weak {
			weakPicks++
		}
	}
	if weakPicks < 400 || weakPicks > 600 {
		t.Fatalf("uniform fallback picked the first parent %d/1000 times", weakPicks)
	}
}

func TestSubsumesRequiresQualifiedGeneralParent(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)

	general := newClassifier(t, "1#", 0)
	general.Experience = cfg.ThetaSub + 1
	general.Error = 0
	specific := newClassifier(t, "11", 0)

	if !d.subsumes(general, specific) {
		t.Fatal("qualified general parent should subsume")
	}

	differentAction := newClassifier(t, "11", 1)
	if d.subsumes(general, differentAction) {
		t.Fatal("subsumption must not cross actions")
	}

	inexperienced := newClassifier(t, "1#", 0)
	inexperienced.Error = 0
	if d.subsumes(inexperienced, specific) {
		t.Fatal("inexperienced classifier must not subsume")
	}

	inaccurate := newClassifier(t, "1#", 0)
	inaccurate.Experience = cfg.ThetaSub + 1
	inaccurate.Error = cfg.Epsilon0 * 2
	if d.subsumes(inaccurate, specific) {
		t.Fatal("inaccurate classifier must not subsume")
	}

	if d.subsumes(general, general.Clone()) {
		t.Fatal("equal generality must not subsume")
	}
}

func TestInsertOffspringGASubsumption(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)
	pop, err := NewPopulation(50)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	absorber := newClassifier(t, "1#", 0)
	absorber.Experience = cfg.ThetaSub + 1
	absorber.Error = 0
	pop.Insert(absorber)

	child := newClassifier(t, "11", 0)
	d.insertOffspring(pop, child)

	if pop.Macro() != 1 {
		t.Fatalf("child should be absorbed, got %d macro records", pop.Macro())
	}
	if absorber.Numerosity != 2 {
		t.Fatalf("absorber numerosity %d, want 2", absorber.Numerosity)
	}

	cfg.DoGASubsumption = false
	d.insertOffspring(pop, newClassifier(t, "11", 0))
	if pop.Macro() != 2 {
		t.Fatalf("with GA subsumption off the child must be inserted, got %d macro", pop.Macro())
	}
}

func TestRunRespectsCapacityAndTimestamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPopulation = 6
	d := newDiscovery(&cfg)
	pop, err := NewPopulation(cfg.MaxPopulation)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	set := []*Classifier{
		newClassifier(t, "1#", 0),
		newClassifier(t, "10", 0),
		newClassifier(t, "11", 0),
	}
	for _, cl := range set {
		cl.Fitness = 0.3
		cl.Experience = 30
		pop.Insert(cl)
	}

	timestamp := cfg.ThetaGA * 3
	rng := rand.New(rand.NewSource(21))
	if err := d.Run(pop, set, []float64{1, 0}, timestamp, rng); err != nil {
		t.Fatalf("run: %v", err)
	}

	if pop.NumerositySum() > cfg.MaxPopulation {
		t.Fatalf("numerosity sum %d exceeds capacity %d", pop.NumerositySum(), cfg.MaxPopulation)
	}
	for _, cl := range set {
		if cl.Numerosity > 0 && cl.Timestamp != timestamp {
			t.Fatalf("participating classifier keeps stale timestamp %d", cl.Timestamp)
		}
	}
}

func TestRunSkipsFreshSets(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)
	pop, err := NewPopulation(cfg.MaxPopulation)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	cl := newClassifier(t, "1#", 0)
	cl.Timestamp = 10
	pop.Insert(cl)

	if err := d.Run(pop, []*Classifier{cl}, []float64{1, 0}, 10, rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("run: %v", err)
	}
	if pop.Macro() != 1 {
		t.Fatalf("fresh set must not breed, got %d macro records", pop.Macro())
	}
}

func TestActionSetSubsumptionCondensesNiche(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)
	pop, err := NewPopulation(50)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}

	general := newClassifier(t, "1#", 0)
	general.Experience = cfg.ThetaSub + 1
	general.Error = 0
	specific := newClassifier(t, "11", 0)
	specific.Numerosity = 3
	unrelated := newClassifier(t, "0#", 0)
	for _, cl := range []*Classifier{general, specific, unrelated} {
		pop.Insert(cl)
	}

	before := pop.NumerositySum()
	d.ActionSetSubsumption(pop, []*Classifier{general, specific})

	if pop.NumerositySum() != before {
		t.Fatalf("subsumption must conserve numerosity: before=%d after=%d", before, pop.NumerositySum())
	}
	if general.Numerosity != 4 {
		t.Fatalf("general numerosity %d, want 4", general.Numerosity)
	}
	if specific.Numerosity != 0 {
		t.Fatalf("absorbed numerosity %d, want 0", specific.Numerosity)
	}
	if pop.Macro() != 2 {
		t.Fatalf("absorbed record should be dropped, got %d macro", pop.Macro())
	}
}

func TestActionSetSubsumptionNoQualifiedSubsumer(t *testing.T) {
	cfg := DefaultConfig()
	d := newDiscovery(&cfg)
	pop, err := NewPopulation(50)
	if err != nil {
		t.Fatalf("new population: %v", err)
	}
	a := newClassifier(t, "1#", 0)
	b := newClassifier(t, "11", 0)
	pop.Insert(a)
	pop.Insert(b)

	d.ActionSetSubsumption(pop, []*Classifier{a, b})
	if pop.Macro() != 2 {
		t.Fatal("nothing should be absorbed without a qualified subsumer")
	}
}
