package scape

import (
	"fmt"
	"math/rand"
)

// Multiplexer is the boolean multiplexer, the canonical single-step benchmark
// for accuracy-based classifier systems. The first addressBits features
// select one of the remaining data bits; the correct action is the value of
// the addressed bit.
type Multiplexer struct {
	addressBits int
	bits        []float64
	done        bool
}

// NewMultiplexer builds a multiplexer with the given number of address bits;
// 2 address bits yields the classic 6-bit problem.
func NewMultiplexer(addressBits int) (*Multiplexer, error) {
	if addressBits < 1 || addressBits > 4 {
		return nil, fmt.Errorf("address bits must be in [1,4], got %d", addressBits)
	}
	arity := addressBits + (1 << addressBits)
	return &Multiplexer{
		addressBits: addressBits,
		bits:        make([]float64, arity),
		done:        true,
	}, nil
}

func (m *Multiplexer) Name() string { return "multiplexer" }
func (m *Multiplexer) Arity() int   { return len(m.bits) }
func (m *Multiplexer) Actions() int { return 2 }

func (m *Multiplexer) Reset(rng *rand.Rand) {
	for i := range m.bits {
		m.bits[i] = float64(rng.Intn(2))
	}
	m.done = false
}

func (m *Multiplexer) State() []float64 {
	out := make([]float64, len(m.bits))
	copy(out, m.bits)
	return out
}

func (m *Multiplexer) answer() int {
	address := 0
	for i := 0; i < m.addressBits; i++ {
		address = address<<1 | int(m.bits[i])
	}
	return int(m.bits[m.addressBits+address])
}

func (m *Multiplexer) Execute(action int) (float64, error) {
	if err := checkAction(action, m.Actions()); err != nil {
		return 0, err
	}
	m.done = true
	if action == m.answer() {
		return RewardMax, nil
	}
	return 0, nil
}

func (m *Multiplexer) Terminal() bool { return m.done }

func (m *Multiplexer) MaxReward() float64 { return RewardMax }
