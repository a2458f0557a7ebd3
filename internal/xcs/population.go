package xcs

import (
	"fmt"
	"math/rand"
)

// Population is the bounded multiset of classifiers. Capacity is measured in
// micro-classifiers: the numerosity sum never exceeds maxSize after
// EnforceCapacity runs.
type Population struct {
	maxSize int
	members []*Classifier
}

// NewPopulation creates an empty population with the given micro-classifier
// capacity.
func NewPopulation(maxSize int) (*Population, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("population capacity must be > 0, got %d", maxSize)
	}
	return &Population{maxSize: maxSize}, nil
}

// MaxSize returns the configured capacity in micro-classifiers.
func (p *Population) MaxSize() int { return p.maxSize }

// Macro returns the number of distinct classifier records.
func (p *Population) Macro() int { return len(p.members) }

// NumerositySum returns the micro-classifier count.
func (p *Population) NumerositySum() int {
	return numerositySum(p.members)
}

// Members returns the live records. The slice is shared; callers must not
// insert or remove through it.
func (p *Population) Members() []*Classifier {
	return p.members
}

// Insert adds a classifier, merging it into an identical existing record by
// numerosity instead of keeping a duplicate.
func (p *Population) Insert(cl *Classifier) {
	for _, existing := range p.members {
		if existing.Identical(cl) {
			existing.Numerosity += cl.Numerosity
			return
		}
	}
	p.members = append(p.members, cl)
}

// Remove drops a record entirely, transferring nothing. Used by subsumption
// after numerosity has been merged into the absorber.
func (p *Population) Remove(cl *Classifier) {
	for i, existing := range p.members {
		if existing == cl {
			p.members = append(p.members[:i], p.members[i+1:]...)
			return
		}
	}
}

// MatchSet returns the classifiers whose condition matches state. The result
// is a fresh slice over shared records.
func (p *Population) MatchSet(state []float64) []*Classifier {
	var match []*Classifier
	for _, cl := range p.members {
		if cl.Condition.Matches(state) {
			match = append(match, cl)
		}
	}
	return match
}

// meanFitness is the average fitness per micro-classifier across the whole
// population.
func (p *Population) meanFitness() float64 {
	total := 0.0
	micro := 0
	for _, cl := range p.members {
		total += cl.Fitness
		micro += cl.Numerosity
	}
	if micro == 0 {
		return 0
	}
	return total / float64(micro)
}

// deletionVote weights roulette deletion. The base vote grows with the
// action-set size estimate and numerosity; experienced rules whose per-micro
// fitness has fallen below delta times the population average attract extra
// pressure proportional to how far below average they are.
func deletionVote(cl *Classifier, meanFitness float64, thetaDel int, delta float64) float64 {
	vote := cl.ActionSetSize * float64(cl.Numerosity)
	perMicro := cl.Fitness / float64(cl.Numerosity)
	if cl.Experience > thetaDel && perMicro < delta*meanFitness && perMicro > 0 {
		vote *= meanFitness / perMicro
	}
	return vote
}

// EnforceCapacity deletes micro-classifiers by deletion-vote roulette until
// the numerosity sum fits the capacity. Records reaching zero numerosity are
// removed.
func (p *Population) EnforceCapacity(thetaDel int, delta float64, rng *rand.Rand) error {
	for p.NumerositySum() > p.maxSize {
		mean := p.meanFitness()
		total := 0.0
		for _, cl := range p.members {
			total += deletionVote(cl, mean, thetaDel, delta)
		}
		if total <= 0 {
			return fmt.Errorf("internal: deletion vote sum is %g over %d records", total, len(p.members))
		}

		point := rng.Float64() * total
		acc := 0.0
		victim := p.members[len(p.members)-1]
		for _, cl := range p.members {
			acc += deletionVote(cl, mean, thetaDel, delta)
			if acc > point {
				victim = cl
				break
			}
		}

		victim.Numerosity--
		if victim.Numerosity <= 0 {
			p.Remove(victim)
		}
	}
	return nil
}
