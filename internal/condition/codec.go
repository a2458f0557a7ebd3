package condition

import (
	"fmt"

	"xcslab/internal/model"
)

// ToRecord converts a condition into its persisted form.
func ToRecord(c Condition) (model.ConditionRecord, error) {
	switch typed := c.(type) {
	case *Ternary:
		symbols := make([]model.SymbolRecord, 0, typed.Arity())
		for _, sym := range typed.Symbols() {
			symbols = append(symbols, model.SymbolRecord{Wildcard: sym.Wildcard, Value: sym.Value})
		}
		return model.ConditionRecord{Kind: model.ConditionKindTernary, Symbols: symbols}, nil
	case *IntervalCondition:
		intervals := make([]model.IntervalRecord, 0, typed.Arity())
		for _, iv := range typed.Intervals() {
			intervals = append(intervals, model.IntervalRecord{Lower: iv.Lower, Upper: iv.Upper})
		}
		return model.ConditionRecord{Kind: model.ConditionKindInterval, Intervals: intervals}, nil
	default:
		return model.ConditionRecord{}, fmt.Errorf("unsupported condition type %T", c)
	}
}

// FromRecord rebuilds a condition from its persisted form.
func FromRecord(record model.ConditionRecord) (Condition, error) {
	switch record.Kind {
	case model.ConditionKindTernary:
		symbols := make([]Symbol, 0, len(record.Symbols))
		for _, sym := range record.Symbols {
			symbols = append(symbols, Symbol{Wildcard: sym.Wildcard, Value: sym.Value})
		}
		return NewTernary(symbols)
	case model.ConditionKindInterval:
		intervals := make([]Interval, 0, len(record.Intervals))
		for _, iv := range record.Intervals {
			intervals = append(intervals, Interval{Lower: iv.Lower, Upper: iv.Upper})
		}
		return NewIntervalCondition(intervals)
	default:
		return nil, fmt.Errorf("unsupported condition kind: %s", record.Kind)
	}
}
