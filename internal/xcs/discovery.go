package xcs

import (
	"fmt"
	"math/rand"
)

// discovery runs the steady-state genetic algorithm inside action sets:
// roulette parent selection on fitness, two-point crossover, per-allele
// mutation, subsumption, and capacity-preserving insertion.
type discovery struct {
	cfg        *Config
	numActions int
}

// shouldRun triggers the GA when the numerosity-weighted mean time since the
// set's last participation exceeds theta_ga.
func (d *discovery) shouldRun(actionSet []*Classifier, timestamp int) bool {
	micro := 0
	weighted := 0
	for _, cl := range actionSet {
		micro += cl.Numerosity
		weighted += cl.Timestamp * cl.Numerosity
	}
	if micro == 0 {
		return false
	}
	age := float64(timestamp) - float64(weighted)/float64(micro)
	return age > float64(d.cfg.ThetaGA)
}

// selectParent draws one parent via fitness-proportionate roulette. Sampling
// is with replacement; a classifier may father both offspring.
func (d *discovery) selectParent(actionSet []*Classifier, rng *rand.Rand) *Classifier {
	total := 0.0
	for _, cl := range actionSet {
		total += cl.Fitness
	}
	if total <= 0 {
		return actionSet[rng.Intn(len(actionSet))]
	}
	point := rng.Float64() * total
	acc := 0.0
	for _, cl := range actionSet {
		acc += cl.Fitness
		if acc > point {
			return cl
		}
	}
	return actionSet[len(actionSet)-1]
}

// spawn clones a parent into a fresh offspring whose statistics are the
// numerosity-weighted average of both parents, with fitness scaled down so an
// unproven rule starts modestly.
func (d *discovery) spawn(parent, mate *Classifier, timestamp int) *Classifier {
	child := parent.Clone()
	weight := float64(parent.Numerosity + mate.Numerosity)
	child.Prediction = (parent.Prediction*float64(parent.Numerosity) + mate.Prediction*float64(mate.Numerosity)) / weight
	child.Error = (parent.Error*float64(parent.Numerosity) + mate.Error*float64(mate.Numerosity)) / weight
	child.ActionSetSize = (parent.ActionSetSize*float64(parent.Numerosity) + mate.ActionSetSize*float64(mate.Numerosity)) / weight
	child.Fitness = d.cfg.FitnessReduction * (parent.Fitness*float64(parent.Numerosity) + mate.Fitness*float64(mate.Numerosity)) / weight
	child.Numerosity = 1
	child.Experience = 0
	child.Timestamp = timestamp
	return child
}

// canSubsume reports whether a classifier is a qualified subsumer: enough
// reinforcement experience and a prediction error inside the accuracy
// tolerance.
func (d *discovery) canSubsume(cl *Classifier) bool {
	return cl.Experience > d.cfg.ThetaSub && cl.Error < d.cfg.Epsilon0
}

// subsumes reports whether general may absorb specific: same action, general
// qualified, and a strictly more general condition.
func (d *discovery) subsumes(general, specific *Classifier) bool {
	return general.Action == specific.Action &&
		d.canSubsume(general) &&
		general.Condition.IsMoreGeneral(specific.Condition)
}

// mutateChild mutates the offspring condition and, when enabled, reassigns
// its action uniformly among the alternatives.
func (d *discovery) mutateChild(child *Classifier, state []float64, rng *rand.Rand) {
	child.Condition.Mutate(state, d.cfg.MutationProb, d.cfg.MutationSpread, rng)
	if d.cfg.MutateAction && d.numActions > 1 && rng.Float64() < d.cfg.MutationProb {
		shift := 1 + rng.Intn(d.numActions-1)
		child.Action = (child.Action + shift) % d.numActions
	}
}

// insertOffspring places a child into the population. With GA subsumption
// enabled, a qualified strictly-more-general classifier with the same action
// absorbs the child by numerosity instead.
func (d *discovery) insertOffspring(pop *Population, child *Classifier) {
	if d.cfg.DoGASubsumption {
		for _, cl := range pop.Members() {
			if d.subsumes(cl, child) {
				cl.Numerosity += child.Numerosity
				return
			}
		}
	}
	pop.Insert(child)
}

// Run executes one GA invocation on the action set if the age trigger fires.
// state is the input the action set was matched against; offspring stay in
// its niche.
func (d *discovery) Run(pop *Population, actionSet []*Classifier, state []float64, timestamp int, rng *rand.Rand) error {
	if len(actionSet) == 0 || !d.shouldRun(actionSet, timestamp) {
		return nil
	}
	for _, cl := range actionSet {
		cl.Timestamp = timestamp
	}

	parent1 := d.selectParent(actionSet, rng)
	parent2 := d.selectParent(actionSet, rng)
	child1 := d.spawn(parent1, parent2, timestamp)
	child2 := d.spawn(parent2, parent1, timestamp)

	if rng.Float64() < d.cfg.CrossoverProb {
		if err := child1.Condition.CrossoverWith(child2.Condition, rng); err != nil {
			return fmt.Errorf("crossover: %w", err)
		}
	}
	d.mutateChild(child1, state, rng)
	d.mutateChild(child2, state, rng)

	d.insertOffspring(pop, child1)
	d.insertOffspring(pop, child2)
	return pop.EnforceCapacity(d.cfg.ThetaDel, d.cfg.Delta, rng)
}

// ActionSetSubsumption lets the most general qualified member of an action
// set absorb every member it strictly generalizes, transferring numerosity
// and dropping the absorbed records. This is the separately toggled variant,
// independent of the GA trigger.
func (d *discovery) ActionSetSubsumption(pop *Population, actionSet []*Classifier) {
	var subsumer *Classifier
	for _, cl := range actionSet {
		if !d.canSubsume(cl) {
			continue
		}
		if subsumer == nil || cl.Condition.IsMoreGeneral(subsumer.Condition) {
			subsumer = cl
		}
	}
	if subsumer == nil {
		return
	}
	for _, cl := range actionSet {
		if cl == subsumer || cl.Numerosity <= 0 {
			continue
		}
		if subsumer.Condition.IsMoreGeneral(cl.Condition) {
			subsumer.Numerosity += cl.Numerosity
			cl.Numerosity = 0
			pop.Remove(cl)
		}
	}
}
