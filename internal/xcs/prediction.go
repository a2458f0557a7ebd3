package xcs

import "math/rand"

// Prediction is the per-action fitness-weighted payoff estimate computed from
// a match set. Actions with no advocates stay absent.
type Prediction struct {
	values  []float64
	present []bool
}

// ComputePrediction builds the prediction array: for each represented action,
// the fitness-weighted average prediction of the classifiers advocating it.
func ComputePrediction(match []*Classifier, numActions int) Prediction {
	weighted := make([]float64, numActions)
	weights := make([]float64, numActions)
	sums := make([]float64, numActions)
	counts := make([]int, numActions)
	for _, cl := range match {
		if cl.Action < 0 || cl.Action >= numActions {
			continue
		}
		weighted[cl.Action] += cl.Prediction * cl.Fitness
		weights[cl.Action] += cl.Fitness
		sums[cl.Action] += cl.Prediction
		counts[cl.Action]++
	}

	pr := Prediction{
		values:  make([]float64, numActions),
		present: make([]bool, numActions),
	}
	for a := 0; a < numActions; a++ {
		if counts[a] == 0 {
			continue
		}
		pr.present[a] = true
		if weights[a] > 0 {
			pr.values[a] = weighted[a] / weights[a]
		} else {
			// All advocates at zero fitness: fall back to a plain average.
			pr.values[a] = sums[a] / float64(counts[a])
		}
	}
	return pr
}

// Value returns the estimate for an action; absent actions report zero.
func (p Prediction) Value(action int) float64 {
	if action < 0 || action >= len(p.values) {
		return 0
	}
	return p.values[action]
}

// Present reports whether any classifier advocates the action.
func (p Prediction) Present(action int) bool {
	return action >= 0 && action < len(p.present) && p.present[action]
}

// Best returns the represented action with the highest estimate. Ties break
// toward the lowest action index, keeping exploitation deterministic.
func (p Prediction) Best() int {
	best := -1
	for a := range p.values {
		if !p.present[a] {
			continue
		}
		if best == -1 || p.values[a] > p.values[best] {
			best = a
		}
	}
	return best
}

// Random returns a uniformly chosen represented action.
func (p Prediction) Random(rng *rand.Rand) int {
	var candidates []int
	for a := range p.present {
		if p.present[a] {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[rng.Intn(len(candidates))]
}

// Max returns the highest represented estimate, the maxP' term of the
// discounted return. With no represented action it is zero.
func (p Prediction) Max() float64 {
	best := p.Best()
	if best == -1 {
		return 0
	}
	return p.values[best]
}
