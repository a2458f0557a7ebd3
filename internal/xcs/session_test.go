package xcs

import (
	"context"
	"math/rand"
	"reflect"
	"testing"

	"xcslab/internal/model"
	"xcslab/internal/scape"
)

// wrongArityEnv advertises a larger arity than its states carry.
type wrongArityEnv struct {
	done bool
}

func (e *wrongArityEnv) Name() string       { return "wrong-arity" }
func (e *wrongArityEnv) Arity() int         { return 3 }
func (e *wrongArityEnv) Actions() int       { return 2 }
func (e *wrongArityEnv) Reset(_ *rand.Rand) { e.done = false }
func (e *wrongArityEnv) State() []float64   { return []float64{1} }
func (e *wrongArityEnv) Terminal() bool     { return e.done }
func (e *wrongArityEnv) Execute(int) (float64, error) {
	e.done = true
	return 0, nil
}

func newEqualitySession(t *testing.T, seed int64) *Session {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Seed = seed
	session, err := NewSession(cfg, scape.NewEquality())
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestNewSessionValidation(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewSession(cfg, nil); err == nil {
		t.Fatal("expected error without environment")
	}

	cfg.MaxPopulation = 0
	if _, err := NewSession(cfg, scape.NewEquality()); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestRunEpisodeMaintainsCapacity(t *testing.T) {
	session := newEqualitySession(t, 17)
	ctx := context.Background()

	for episode := 0; episode < 300; episode++ {
		if _, err := session.RunEpisode(ctx, episode%2 == 0); err != nil {
			t.Fatalf("episode %d: %v", episode, err)
		}
		pop := session.Population()
		if pop.NumerositySum() > pop.MaxSize() {
			t.Fatalf("episode %d: %d micro-classifiers over capacity %d",
				episode, pop.NumerositySum(), pop.MaxSize())
		}
		for _, cl := range pop.Members() {
			if cl.Numerosity < 1 {
				t.Fatalf("episode %d: dead record in population: %v", episode, cl)
			}
		}
	}
}

func TestRunEpisodeRejectsArityViolation(t *testing.T) {
	cfg := DefaultConfig()
	session, err := NewSession(cfg, &wrongArityEnv{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := session.RunEpisode(context.Background(), true); err == nil {
		t.Fatal("expected arity contract error")
	}
}

func TestRunEpisodeHonorsContext(t *testing.T) {
	session := newEqualitySession(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := session.RunEpisode(ctx, true); err == nil {
		t.Fatal("expected context error")
	}
}

func TestIdenticalSeedsProduceIdenticalRuns(t *testing.T) {
	ctx := context.Background()
	a := newEqualitySession(t, 99)
	b := newEqualitySession(t, 99)

	for episode := 0; episode < 200; episode++ {
		explore := episode%2 == 0
		resultA, err := a.RunEpisode(ctx, explore)
		if err != nil {
			t.Fatalf("session a episode %d: %v", episode, err)
		}
		resultB, err := b.RunEpisode(ctx, explore)
		if err != nil {
			t.Fatalf("session b episode %d: %v", episode, err)
		}
		if resultA != resultB {
			t.Fatalf("episode %d diverged: %+v vs %+v", episode, resultA, resultB)
		}
	}

	snapA, err := a.Population().Snapshot("s", "equality", 200)
	if err != nil {
		t.Fatalf("snapshot a: %v", err)
	}
	snapB, err := b.Population().Snapshot("s", "equality", 200)
	if err != nil {
		t.Fatalf("snapshot b: %v", err)
	}
	if !reflect.DeepEqual(snapA, snapB) {
		t.Fatal("identical seeds produced different populations")
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	ctx := context.Background()
	a := newEqualitySession(t, 1)
	b := newEqualitySession(t, 2)

	for episode := 0; episode < 50; episode++ {
		if _, err := a.RunEpisode(ctx, true); err != nil {
			t.Fatalf("session a: %v", err)
		}
		if _, err := b.RunEpisode(ctx, true); err != nil {
			t.Fatalf("session b: %v", err)
		}
	}

	snapA, _ := a.Population().Snapshot("s", "equality", 50)
	snapB, _ := b.Population().Snapshot("s", "equality", 50)
	if reflect.DeepEqual(snapA.Classifiers, snapB.Classifiers) {
		t.Fatal("different seeds should not evolve identical populations")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	session := newEqualitySession(t, 5)
	for episode := 0; episode < 100; episode++ {
		if _, err := session.RunEpisode(ctx, episode%2 == 0); err != nil {
			t.Fatalf("episode %d: %v", episode, err)
		}
	}

	snapshot, err := session.Population().Snapshot("pop-1", "equality", 100)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	restored, err := RestorePopulation(snapshot)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Macro() != session.Population().Macro() {
		t.Fatalf("macro mismatch: %d vs %d", restored.Macro(), session.Population().Macro())
	}
	if restored.NumerositySum() != session.Population().NumerositySum() {
		t.Fatalf("micro mismatch: %d vs %d", restored.NumerositySum(), session.Population().NumerositySum())
	}

	again, err := restored.Snapshot("pop-1", "equality", 100)
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if !reflect.DeepEqual(snapshot, again) {
		t.Fatal("snapshot round trip is not lossless")
	}
}

func TestRestorePopulationRejectsBadSnapshots(t *testing.T) {
	ctx := context.Background()
	session := newEqualitySession(t, 5)
	for episode := 0; episode < 20; episode++ {
		if _, err := session.RunEpisode(ctx, episode%2 == 0); err != nil {
			t.Fatalf("episode %d: %v", episode, err)
		}
	}
	snapshot, err := session.Population().Snapshot("pop-1", "equality", 20)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Classifiers) == 0 {
		t.Fatal("expected a populated snapshot")
	}

	mismatched := snapshot
	mismatched.MaxSize = snapshot.MaxSize * 2
	pop, err := RestorePopulation(mismatched)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := session.RestorePopulation(pop); err == nil {
		t.Fatal("expected capacity mismatch error")
	}

	dead := snapshot
	dead.Classifiers = append([]model.ClassifierRecord(nil), snapshot.Classifiers...)
	dead.Classifiers[0].Numerosity = 0
	if _, err := RestorePopulation(dead); err == nil {
		t.Fatal("expected numerosity validation error")
	}
}
