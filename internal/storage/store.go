// Package storage persists population snapshots, run records and per-episode
// diagnostics behind a backend-agnostic interface.
package storage

import (
	"context"

	"xcslab/internal/model"
)

// Store defines persistence operations for the core learning artifacts.
type Store interface {
	Init(ctx context.Context) error
	SavePopulation(ctx context.Context, snapshot model.PopulationSnapshot) error
	GetPopulation(ctx context.Context, id string) (model.PopulationSnapshot, bool, error)
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveDiagnostics(ctx context.Context, runID string, diagnostics []model.EpisodeDiagnostics) error
	GetDiagnostics(ctx context.Context, runID string) ([]model.EpisodeDiagnostics, bool, error)
}

// Resetter is implemented by stores that can drop all persisted state.
type Resetter interface {
	Reset(ctx context.Context) error
}
