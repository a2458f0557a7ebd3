package condition

import (
	"fmt"
	"math/rand"
	"strings"
)

// Interval is a single ordered-bound predicate. It matches any value v with
// Lower <= v <= Upper. Lower <= Upper is an invariant enforced on
// construction and restored after every mutation.
type Interval struct {
	Lower float64
	Upper float64
}

func (iv Interval) matches(v float64) bool {
	return iv.Lower <= v && v <= iv.Upper
}

// IntervalCondition is a condition over real-valued inputs: one ordered-bound
// interval per feature.
type IntervalCondition struct {
	intervals []Interval
}

// NewIntervalCondition builds an interval condition from explicit bounds.
// A user-supplied interval with lower > upper is rejected.
func NewIntervalCondition(intervals []Interval) (*IntervalCondition, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("interval condition requires at least one interval")
	}
	copied := make([]Interval, len(intervals))
	for i, iv := range intervals {
		if iv.Lower > iv.Upper {
			return nil, fmt.Errorf("interval %d has lower %g > upper %g", i, iv.Lower, iv.Upper)
		}
		copied[i] = iv
	}
	return &IntervalCondition{intervals: copied}, nil
}

// CoverInterval creates an interval condition guaranteed to match state. Each
// bound spreads away from the observed value by a uniform amount in
// [0, spread].
func CoverInterval(state []float64, spread float64, rng *rand.Rand) *IntervalCondition {
	intervals := make([]Interval, len(state))
	for i, v := range state {
		intervals[i] = Interval{
			Lower: v - rng.Float64()*spread,
			Upper: v + rng.Float64()*spread,
		}
	}
	return &IntervalCondition{intervals: intervals}
}

func (c *IntervalCondition) Arity() int {
	return len(c.intervals)
}

func (c *IntervalCondition) Matches(state []float64) bool {
	if len(state) != len(c.intervals) {
		return false
	}
	for i, iv := range c.intervals {
		if !iv.matches(state[i]) {
			return false
		}
	}
	return true
}

func (c *IntervalCondition) IsMoreGeneral(other Condition) bool {
	o, ok := other.(*IntervalCondition)
	if !ok || len(o.intervals) != len(c.intervals) {
		return false
	}
	strictlyWider := false
	for i, iv := range c.intervals {
		ov := o.intervals[i]
		if iv.Lower > ov.Lower || iv.Upper < ov.Upper {
			return false
		}
		if iv.Lower < ov.Lower || iv.Upper > ov.Upper {
			strictlyWider = true
		}
	}
	return strictlyWider
}

func (c *IntervalCondition) CrossoverWith(other Condition, rng *rand.Rand) error {
	o, ok := other.(*IntervalCondition)
	if !ok {
		return fmt.Errorf("cannot cross interval condition with %T", other)
	}
	if len(o.intervals) != len(c.intervals) {
		return fmt.Errorf("condition arity mismatch: %d vs %d", len(c.intervals), len(o.intervals))
	}
	from, to := crossoverPoints(len(c.intervals), rng)
	for i := from; i <= to; i++ {
		c.intervals[i], o.intervals[i] = o.intervals[i], c.intervals[i]
	}
	return nil
}

func (c *IntervalCondition) Mutate(_ []float64, rate, magnitude float64, rng *rand.Rand) {
	for i := range c.intervals {
		if rng.Float64() >= rate {
			continue
		}
		iv := c.intervals[i]
		iv.Lower += (rng.Float64()*2 - 1) * magnitude
		iv.Upper += (rng.Float64()*2 - 1) * magnitude
		if iv.Lower > iv.Upper {
			iv.Lower, iv.Upper = iv.Upper, iv.Lower
		}
		c.intervals[i] = iv
	}
}

func (c *IntervalCondition) Equal(other Condition) bool {
	o, ok := other.(*IntervalCondition)
	if !ok || len(o.intervals) != len(c.intervals) {
		return false
	}
	for i, iv := range c.intervals {
		if iv != o.intervals[i] {
			return false
		}
	}
	return true
}

func (c *IntervalCondition) Clone() Condition {
	intervals := make([]Interval, len(c.intervals))
	copy(intervals, c.intervals)
	return &IntervalCondition{intervals: intervals}
}

// Intervals returns a copy of the per-feature bounds.
func (c *IntervalCondition) Intervals() []Interval {
	out := make([]Interval, len(c.intervals))
	copy(out, c.intervals)
	return out
}

func (c *IntervalCondition) String() string {
	var b strings.Builder
	for _, iv := range c.intervals {
		fmt.Fprintf(&b, "[%.3f,%.3f]", iv.Lower, iv.Upper)
	}
	return b.String()
}
