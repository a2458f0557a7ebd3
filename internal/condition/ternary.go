package condition

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// WildcardChar renders a wildcard symbol in the string form of a ternary
// condition.
const WildcardChar = '#'

// Symbol is a single ternary predicate: a wildcard that accepts anything, or
// an exact value that accepts only itself.
type Symbol struct {
	Wildcard bool
	Value    float64
}

func (s Symbol) matches(v float64) bool {
	return s.Wildcard || s.Value == v
}

// Ternary is a condition over a discrete alphabet: each feature is either a
// wildcard or an exact value. Despite the name, alphabets larger than {0,1}
// work unchanged since values are plain numbers.
type Ternary struct {
	symbols []Symbol
}

// NewTernary builds a ternary condition from an explicit symbol sequence.
func NewTernary(symbols []Symbol) (*Ternary, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("ternary condition requires at least one symbol")
	}
	copied := make([]Symbol, len(symbols))
	copy(copied, symbols)
	return &Ternary{symbols: copied}, nil
}

// ParseTernary builds a condition from a compact string such as "1#0", where
// '#' is the wildcard and any other rune is parsed as a digit value.
func ParseTernary(s string) (*Ternary, error) {
	if s == "" {
		return nil, fmt.Errorf("ternary condition string is empty")
	}
	symbols := make([]Symbol, 0, len(s))
	for _, r := range s {
		if r == WildcardChar {
			symbols = append(symbols, Symbol{Wildcard: true})
			continue
		}
		v, err := strconv.Atoi(string(r))
		if err != nil {
			return nil, fmt.Errorf("invalid ternary symbol %q: %w", r, err)
		}
		symbols = append(symbols, Symbol{Value: float64(v)})
	}
	return &Ternary{symbols: symbols}, nil
}

// CoverTernary creates a ternary condition guaranteed to match state. Each
// feature turns into a wildcard with probability wildcardProb and otherwise
// pins the observed value.
func CoverTernary(state []float64, wildcardProb float64, rng *rand.Rand) *Ternary {
	symbols := make([]Symbol, len(state))
	for i, v := range state {
		if rng.Float64() < wildcardProb {
			symbols[i] = Symbol{Wildcard: true}
		} else {
			symbols[i] = Symbol{Value: v}
		}
	}
	return &Ternary{symbols: symbols}
}

func (t *Ternary) Arity() int {
	return len(t.symbols)
}

func (t *Ternary) Matches(state []float64) bool {
	if len(state) != len(t.symbols) {
		return false
	}
	for i, sym := range t.symbols {
		if !sym.matches(state[i]) {
			return false
		}
	}
	return true
}

func (t *Ternary) IsMoreGeneral(other Condition) bool {
	o, ok := other.(*Ternary)
	if !ok || len(o.symbols) != len(t.symbols) {
		return false
	}
	strictlyWider := false
	for i, sym := range t.symbols {
		os := o.symbols[i]
		if sym.Wildcard {
			if !os.Wildcard {
				strictlyWider = true
			}
			continue
		}
		if os.Wildcard || os.Value != sym.Value {
			return false
		}
	}
	return strictlyWider
}

func (t *Ternary) CrossoverWith(other Condition, rng *rand.Rand) error {
	o, ok := other.(*Ternary)
	if !ok {
		return fmt.Errorf("cannot cross ternary condition with %T", other)
	}
	if len(o.symbols) != len(t.symbols) {
		return fmt.Errorf("condition arity mismatch: %d vs %d", len(t.symbols), len(o.symbols))
	}
	from, to := crossoverPoints(len(t.symbols), rng)
	for i := from; i <= to; i++ {
		t.symbols[i], o.symbols[i] = o.symbols[i], t.symbols[i]
	}
	return nil
}

func (t *Ternary) Mutate(state []float64, rate, _ float64, rng *rand.Rand) {
	for i := range t.symbols {
		if rng.Float64() >= rate {
			continue
		}
		if t.symbols[i].Wildcard {
			value := 0.0
			if i < len(state) {
				value = state[i]
			}
			t.symbols[i] = Symbol{Value: value}
		} else {
			t.symbols[i] = Symbol{Wildcard: true}
		}
	}
}

func (t *Ternary) Equal(other Condition) bool {
	o, ok := other.(*Ternary)
	if !ok || len(o.symbols) != len(t.symbols) {
		return false
	}
	for i, sym := range t.symbols {
		if sym != o.symbols[i] {
			return false
		}
	}
	return true
}

func (t *Ternary) Clone() Condition {
	symbols := make([]Symbol, len(t.symbols))
	copy(symbols, t.symbols)
	return &Ternary{symbols: symbols}
}

// WildcardCount returns how many features are wildcards, a direct measure of
// generality.
func (t *Ternary) WildcardCount() int {
	count := 0
	for _, sym := range t.symbols {
		if sym.Wildcard {
			count++
		}
	}
	return count
}

// Symbols returns a copy of the predicate sequence.
func (t *Ternary) Symbols() []Symbol {
	out := make([]Symbol, len(t.symbols))
	copy(out, t.symbols)
	return out
}

func (t *Ternary) String() string {
	var b strings.Builder
	for _, sym := range t.symbols {
		if sym.Wildcard {
			b.WriteRune(WildcardChar)
		} else {
			b.WriteString(strconv.FormatFloat(sym.Value, 'f', -1, 64))
		}
	}
	return b.String()
}
