package xcs

import (
	"fmt"

	"xcslab/internal/condition"
	"xcslab/internal/model"
)

// Snapshot dumps the population into the persisted record schema.
func (p *Population) Snapshot(id, scapeName string, episode int) (model.PopulationSnapshot, error) {
	records := make([]model.ClassifierRecord, 0, len(p.members))
	for _, cl := range p.members {
		cond, err := condition.ToRecord(cl.Condition)
		if err != nil {
			return model.PopulationSnapshot{}, fmt.Errorf("encode classifier condition: %w", err)
		}
		records = append(records, model.ClassifierRecord{
			Condition:     cond,
			Action:        cl.Action,
			Prediction:    cl.Prediction,
			Error:         cl.Error,
			Fitness:       cl.Fitness,
			ActionSetSize: cl.ActionSetSize,
			Numerosity:    cl.Numerosity,
			Experience:    cl.Experience,
			Timestamp:     cl.Timestamp,
		})
	}
	return model.PopulationSnapshot{
		ID:          id,
		Scape:       scapeName,
		Episode:     episode,
		MaxSize:     p.maxSize,
		Classifiers: records,
	}, nil
}

// RestorePopulation rebuilds a population from a snapshot.
func RestorePopulation(snapshot model.PopulationSnapshot) (*Population, error) {
	pop, err := NewPopulation(snapshot.MaxSize)
	if err != nil {
		return nil, err
	}
	for i, record := range snapshot.Classifiers {
		cond, err := condition.FromRecord(record.Condition)
		if err != nil {
			return nil, fmt.Errorf("decode classifier %d: %w", i, err)
		}
		if record.Numerosity < 1 {
			return nil, fmt.Errorf("classifier %d has numerosity %d", i, record.Numerosity)
		}
		pop.Insert(&Classifier{
			Condition:     cond,
			Action:        record.Action,
			Prediction:    record.Prediction,
			Error:         record.Error,
			Fitness:       record.Fitness,
			ActionSetSize: record.ActionSetSize,
			Numerosity:    record.Numerosity,
			Experience:    record.Experience,
			Timestamp:     record.Timestamp,
		})
	}
	if pop.NumerositySum() > snapshot.MaxSize {
		return nil, fmt.Errorf("snapshot holds %d micro-classifiers over capacity %d", pop.NumerositySum(), snapshot.MaxSize)
	}
	return pop, nil
}
