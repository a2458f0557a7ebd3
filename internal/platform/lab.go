// Package platform hosts the lab: the long-lived coordinator that owns the
// store, resolves environments, runs training and answers queries about past
// runs.
package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"xcslab/internal/model"
	"xcslab/internal/scape"
	"xcslab/internal/storage"
	"xcslab/internal/xcs"
)

// Config assembles a lab.
type Config struct {
	Store  storage.Store
	Logger *slog.Logger
}

// StopReason distinguishes an orderly stop from a shutdown.
type StopReason string

const (
	StopReasonNormal   StopReason = "normal"
	StopReasonShutdown StopReason = "shutdown"
)

// ScapeFactory builds a fresh environment instance for one run.
type ScapeFactory func() (scape.Environment, error)

// Lab coordinates training runs against a shared store. Environments are
// registered as factories so each run drives its own instance.
type Lab struct {
	store  storage.Store
	logger *slog.Logger

	mu             sync.RWMutex
	scapes         map[string]ScapeFactory
	started        bool
	lastStopReason StopReason
}

var (
	defaultLabMu sync.Mutex
	defaultLab   *Lab
)

func NewLab(cfg Config) *Lab {
	return &Lab{
		store:          cfg.Store,
		logger:         cfg.Logger,
		scapes:         make(map[string]ScapeFactory),
		lastStopReason: StopReasonNormal,
	}
}

// StartDefault initializes the process-wide lab, reusing it when already
// started.
func StartDefault(ctx context.Context, cfg Config) (*Lab, error) {
	defaultLabMu.Lock()
	defer defaultLabMu.Unlock()

	if defaultLab != nil && defaultLab.Started() {
		return defaultLab, nil
	}

	lab := NewLab(cfg)
	if err := lab.Init(ctx); err != nil {
		return nil, err
	}
	defaultLab = lab
	return defaultLab, nil
}

// Default returns the process-wide lab if one is started.
func Default() (*Lab, bool) {
	defaultLabMu.Lock()
	lab := defaultLab
	defaultLabMu.Unlock()

	if lab == nil || !lab.Started() {
		return nil, false
	}
	return lab, true
}

// StopDefault stops and releases the process-wide lab.
func StopDefault(reason StopReason) error {
	defaultLabMu.Lock()
	lab := defaultLab
	defaultLabMu.Unlock()
	if lab == nil {
		return nil
	}
	if err := lab.StopWithReason(reason); err != nil {
		return err
	}
	defaultLabMu.Lock()
	if defaultLab == lab {
		defaultLab = nil
	}
	defaultLabMu.Unlock()
	return nil
}

// Init prepares the store and registers the bundled environments.
func (l *Lab) Init(ctx context.Context) error {
	if l.store == nil {
		return fmt.Errorf("store is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return nil
	}
	if err := l.store.Init(ctx); err != nil {
		return err
	}
	for _, name := range scape.Names() {
		name := name
		l.scapes[name] = func() (scape.Environment, error) {
			return scape.New(name)
		}
	}
	l.started = true
	return nil
}

// Reset stops the lab, clears the store when the backend supports it, and
// initializes again.
func (l *Lab) Reset(ctx context.Context) error {
	_ = l.StopWithReason(StopReasonShutdown)
	if err := l.store.Init(ctx); err != nil {
		return err
	}
	if resetter, ok := l.store.(storage.Resetter); ok {
		if err := resetter.Reset(ctx); err != nil {
			return err
		}
	}
	return l.Init(ctx)
}

// RegisterScape adds a named environment factory.
func (l *Lab) RegisterScape(name string, factory ScapeFactory) error {
	if name == "" {
		return fmt.Errorf("scape name is required")
	}
	if factory == nil {
		return fmt.Errorf("scape factory is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return fmt.Errorf("lab is not initialized")
	}
	l.scapes[name] = factory
	return nil
}

// RegisteredScapes lists the registered environment names.
func (l *Lab) RegisteredScapes() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.scapes))
	for name := range l.scapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Lab) Stop() {
	_ = l.StopWithReason(StopReasonNormal)
}

func (l *Lab) Shutdown() {
	_ = l.StopWithReason(StopReasonShutdown)
}

// StopWithReason stops the lab and records why.
func (l *Lab) StopWithReason(reason StopReason) error {
	if reason == "" {
		reason = StopReasonNormal
	}
	switch reason {
	case StopReasonNormal, StopReasonShutdown:
	default:
		return fmt.Errorf("unsupported stop reason: %s", reason)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = false
	l.lastStopReason = reason
	l.scapes = make(map[string]ScapeFactory)
	return nil
}

func (l *Lab) Started() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.started
}

func (l *Lab) LastStopReason() StopReason {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastStopReason
}

// TrainConfig shapes one training run.
type TrainConfig struct {
	// RunID defaults to a fresh UUID.
	RunID string
	// ScapeName selects the registered environment.
	ScapeName string
	// Episodes to run.
	Episodes int
	// Params are the learning parameters; the session validates them.
	Params xcs.Config
	// ExplorePolicy and WindowSize pass through to the trainer.
	ExplorePolicy string
	WindowSize    int
	LogEvery      int
	// ResumeFrom names a stored population snapshot to continue from.
	ResumeFrom string
}

// TrainReport is the persisted outcome of one training run.
type TrainReport struct {
	Run         model.RunRecord
	Result      xcs.TrainResult
	Diagnostics []model.EpisodeDiagnostics
}

// RunTraining executes a full training run and persists the resulting
// population snapshot, run record and per-episode diagnostics. The population
// snapshot shares the run's ID.
func (l *Lab) RunTraining(ctx context.Context, cfg TrainConfig) (TrainReport, error) {
	l.mu.RLock()
	factory, ok := l.scapes[cfg.ScapeName]
	started := l.started
	l.mu.RUnlock()

	if !started {
		return TrainReport{}, fmt.Errorf("lab is not initialized")
	}
	if !ok {
		return TrainReport{}, fmt.Errorf("scape not registered: %s", cfg.ScapeName)
	}

	env, err := factory()
	if err != nil {
		return TrainReport{}, fmt.Errorf("build scape %s: %w", cfg.ScapeName, err)
	}

	session, err := xcs.NewSession(cfg.Params, env)
	if err != nil {
		return TrainReport{}, err
	}

	if cfg.ResumeFrom != "" {
		snapshot, found, err := l.store.GetPopulation(ctx, cfg.ResumeFrom)
		if err != nil {
			return TrainReport{}, err
		}
		if !found {
			return TrainReport{}, fmt.Errorf("population snapshot not found: %s", cfg.ResumeFrom)
		}
		pop, err := xcs.RestorePopulation(snapshot)
		if err != nil {
			return TrainReport{}, fmt.Errorf("restore population %s: %w", cfg.ResumeFrom, err)
		}
		if err := session.RestorePopulation(pop); err != nil {
			return TrainReport{}, err
		}
	}

	trainer, err := xcs.NewTrainer(session, xcs.TrainerConfig{
		Episodes:      cfg.Episodes,
		ExplorePolicy: cfg.ExplorePolicy,
		WindowSize:    cfg.WindowSize,
		Logger:        l.logger,
		LogEvery:      cfg.LogEvery,
	})
	if err != nil {
		return TrainReport{}, err
	}

	result, err := trainer.Run(ctx)
	if err != nil {
		return TrainReport{}, err
	}

	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	snapshot, err := session.Population().Snapshot(runID, cfg.ScapeName, cfg.Episodes)
	if err != nil {
		return TrainReport{}, err
	}
	snapshot.VersionedRecord = storage.Stamp()
	if err := l.store.SavePopulation(ctx, snapshot); err != nil {
		return TrainReport{}, err
	}

	run := model.RunRecord{
		VersionedRecord:  storage.Stamp(),
		ID:               runID,
		CreatedAtUTC:     time.Now().UTC().Format(time.RFC3339),
		Scape:            cfg.ScapeName,
		Seed:             cfg.Params.Seed,
		Episodes:         cfg.Episodes,
		PopulationID:     runID,
		FinalAccuracy:    result.FinalAccuracy,
		MeanReward:       result.MeanReward,
		MacroClassifiers: session.Population().Macro(),
		MicroClassifiers: session.Population().NumerositySum(),
	}
	if err := l.store.SaveRun(ctx, run); err != nil {
		return TrainReport{}, err
	}
	if err := l.store.SaveDiagnostics(ctx, runID, result.Diagnostics); err != nil {
		return TrainReport{}, err
	}

	if l.logger != nil {
		l.logger.Info("run complete",
			slog.String("run_id", runID),
			slog.String("scape", cfg.ScapeName),
			slog.Float64("final_accuracy", result.FinalAccuracy),
			slog.Int("macro", run.MacroClassifiers),
			slog.Int("micro", run.MicroClassifiers),
		)
	}

	return TrainReport{Run: run, Result: result, Diagnostics: result.Diagnostics}, nil
}

// GetRun fetches one run record.
func (l *Lab) GetRun(ctx context.Context, id string) (model.RunRecord, bool, error) {
	if err := l.checkStarted(); err != nil {
		return model.RunRecord{}, false, err
	}
	return l.store.GetRun(ctx, id)
}

// ListRuns lists stored runs, newest first.
func (l *Lab) ListRuns(ctx context.Context) ([]model.RunRecord, error) {
	if err := l.checkStarted(); err != nil {
		return nil, err
	}
	return l.store.ListRuns(ctx)
}

// GetPopulation fetches a stored population snapshot.
func (l *Lab) GetPopulation(ctx context.Context, id string) (model.PopulationSnapshot, bool, error) {
	if err := l.checkStarted(); err != nil {
		return model.PopulationSnapshot{}, false, err
	}
	return l.store.GetPopulation(ctx, id)
}

// GetDiagnostics fetches the per-episode diagnostics of a run.
func (l *Lab) GetDiagnostics(ctx context.Context, runID string) ([]model.EpisodeDiagnostics, bool, error) {
	if err := l.checkStarted(); err != nil {
		return nil, false, err
	}
	return l.store.GetDiagnostics(ctx, runID)
}

func (l *Lab) checkStarted() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.started {
		return fmt.Errorf("lab is not initialized")
	}
	return nil
}
