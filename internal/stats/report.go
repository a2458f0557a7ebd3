package stats

import (
	"sort"

	"xcslab/internal/model"
)

// PopulationReport summarizes a population snapshot for inspection.
type PopulationReport struct {
	Macro          int     `json:"macro"`
	Micro          int     `json:"micro"`
	MeanPrediction float64 `json:"mean_prediction"`
	MeanError      float64 `json:"mean_error"`
	MeanFitness    float64 `json:"mean_fitness"`
	AccurateShare  float64 `json:"accurate_share"`
}

// Summarize computes numerosity-weighted aggregates over snapshot records.
// AccurateShare is the micro-classifier fraction with prediction error below
// epsilon0.
func Summarize(classifiers []model.ClassifierRecord, epsilon0 float64) PopulationReport {
	report := PopulationReport{Macro: len(classifiers)}
	if len(classifiers) == 0 {
		return report
	}
	accurate := 0
	var prediction, errSum, fitness float64
	for _, cl := range classifiers {
		n := float64(cl.Numerosity)
		report.Micro += cl.Numerosity
		prediction += cl.Prediction * n
		errSum += cl.Error * n
		fitness += cl.Fitness
		if cl.Error < epsilon0 {
			accurate += cl.Numerosity
		}
	}
	if report.Micro > 0 {
		micro := float64(report.Micro)
		report.MeanPrediction = prediction / micro
		report.MeanError = errSum / micro
		report.MeanFitness = fitness / micro
		report.AccurateShare = float64(accurate) / micro
	}
	return report
}

// TopByNumerosity returns up to limit records ordered by numerosity, then
// experience, descending. Ordering is total so output is reproducible.
func TopByNumerosity(classifiers []model.ClassifierRecord, limit int) []model.ClassifierRecord {
	sorted := make([]model.ClassifierRecord, len(classifiers))
	copy(sorted, classifiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Numerosity != sorted[j].Numerosity {
			return sorted[i].Numerosity > sorted[j].Numerosity
		}
		return sorted[i].Experience > sorted[j].Experience
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}
