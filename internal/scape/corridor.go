package scape

import (
	"fmt"
	"math/rand"
)

// Corridor is a multi-step chain of cells. The agent starts in a random
// non-goal cell, moves left or right, and is paid only on entering the
// rightmost cell. Reward for every other step is zero, so learning the chain
// requires propagating the discounted return backwards. The state is the
// one-hot encoding of the current cell.
type Corridor struct {
	length   int
	maxSteps int
	position int
	steps    int
	done     bool
}

const (
	corridorLeft  = 0
	corridorRight = 1
)

func NewCorridor(length, maxSteps int) (*Corridor, error) {
	if length < 2 {
		return nil, fmt.Errorf("corridor length must be >= 2, got %d", length)
	}
	if maxSteps < length {
		return nil, fmt.Errorf("max steps %d cannot be below corridor length %d", maxSteps, length)
	}
	return &Corridor{length: length, maxSteps: maxSteps, done: true}, nil
}

func (c *Corridor) Name() string { return "corridor" }
func (c *Corridor) Arity() int   { return c.length }
func (c *Corridor) Actions() int { return 2 }

func (c *Corridor) Reset(rng *rand.Rand) {
	c.position = rng.Intn(c.length - 1)
	c.steps = 0
	c.done = false
}

func (c *Corridor) State() []float64 {
	state := make([]float64, c.length)
	state[c.position] = 1
	return state
}

func (c *Corridor) Execute(action int) (float64, error) {
	if err := checkAction(action, c.Actions()); err != nil {
		return 0, err
	}
	switch action {
	case corridorLeft:
		if c.position > 0 {
			c.position--
		}
	case corridorRight:
		c.position++
	}
	c.steps++

	if c.position == c.length-1 {
		c.done = true
		return RewardMax, nil
	}
	if c.steps >= c.maxSteps {
		c.done = true
	}
	return 0, nil
}

func (c *Corridor) Terminal() bool { return c.done }

func (c *Corridor) MaxReward() float64 { return RewardMax }
