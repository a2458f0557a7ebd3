package scape

import "math/rand"

// Threshold is a single-step problem over one continuous feature drawn
// uniformly from [0,1]: the correct action is 1 when the feature exceeds the
// boundary and 0 otherwise. It exercises interval conditions, which must
// evolve a partition near the boundary.
type Threshold struct {
	boundary float64
	value    float64
	done     bool
}

func NewThreshold(boundary float64) *Threshold {
	return &Threshold{boundary: boundary, done: true}
}

func (t *Threshold) Name() string { return "threshold" }
func (t *Threshold) Arity() int   { return 1 }
func (t *Threshold) Actions() int { return 2 }

func (t *Threshold) Reset(rng *rand.Rand) {
	t.value = rng.Float64()
	t.done = false
}

func (t *Threshold) State() []float64 {
	return []float64{t.value}
}

func (t *Threshold) Execute(action int) (float64, error) {
	if err := checkAction(action, t.Actions()); err != nil {
		return 0, err
	}
	t.done = true
	answer := 0
	if t.value > t.boundary {
		answer = 1
	}
	if action == answer {
		return RewardMax, nil
	}
	return 0, nil
}

func (t *Threshold) Terminal() bool { return t.done }

func (t *Threshold) MaxReward() float64 { return RewardMax }

func (t *Threshold) RealValued() bool { return true }
