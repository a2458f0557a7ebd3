// Package xcslab is the embedding surface: a client that wires a store and a
// lab together and exposes training, queries and export as plain method
// calls.
package xcslab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"xcslab/internal/model"
	"xcslab/internal/platform"
	"xcslab/internal/stats"
	"xcslab/internal/storage"
	"xcslab/internal/xcs"
)

const (
	defaultDBPath     = "xcslab.db"
	defaultExportsDir = "exports"
)

// Options configure a client. Zero values select the memory store and the
// default paths.
type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
	Logger     *slog.Logger
}

// Client is the embedding entry point.
type Client struct {
	store storage.Store
	lab   *platform.Lab

	exportsDir string
	logger     *slog.Logger
}

// TrainRequest selects an environment and shapes the learning run. Zero
// values fall back to the standard parameter setting.
type TrainRequest struct {
	Scape         string
	Episodes      int
	Population    int
	Seed          int64
	ExplorePolicy string
	WindowSize    int

	// GASubsumption and ActionSetSubsumption override the default toggles
	// when non-nil.
	GASubsumption        *bool
	ActionSetSubsumption *bool

	// ResumeFrom continues training from a stored population snapshot.
	ResumeFrom string
}

// TrainSummary reports the outcome of a training run.
type TrainSummary struct {
	RunID            string
	PopulationID     string
	Scape            string
	Episodes         int
	FinalAccuracy    float64
	MeanReward       float64
	MacroClassifiers int
	MicroClassifiers int
}

// RunsRequest lists stored runs, newest first.
type RunsRequest struct {
	Limit int
}

// RunItem is one row of the run listing.
type RunItem struct {
	RunID            string
	CreatedAtUTC     string
	Scape            string
	Seed             int64
	Episodes         int
	FinalAccuracy    float64
	MeanReward       float64
	MacroClassifiers int
	MicroClassifiers int
}

// PopulationRequest inspects the final population of a run.
type PopulationRequest struct {
	RunID  string
	Latest bool
	Top    int
}

// PopulationView summarizes a stored population.
type PopulationView struct {
	RunID   string
	Scape   string
	Episode int
	Report  stats.PopulationReport
	Top     []model.ClassifierRecord
}

// DiagnosticsRequest fetches per-episode diagnostics of a run.
type DiagnosticsRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

// ExportRequest writes a run's artifacts to disk.
type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

// ExportSummary names the exported run and its directory.
type ExportSummary struct {
	RunID     string
	Directory string
}

// New builds a client over the selected store backend.
func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		exportsDir: exportsDir,
		logger:     opts.Logger,
	}, nil
}

// Close releases the underlying store when the backend holds resources.
func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Init prepares the store and the lab.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.ensureLab(ctx)
	return err
}

// Reset drops all persisted state and reinitializes.
func (c *Client) Reset(ctx context.Context) error {
	lab, err := c.ensureLab(ctx)
	if err != nil {
		return err
	}
	return lab.Reset(ctx)
}

// Scapes lists the available environments.
func (c *Client) Scapes(ctx context.Context) ([]string, error) {
	lab, err := c.ensureLab(ctx)
	if err != nil {
		return nil, err
	}
	return lab.RegisteredScapes(), nil
}

// Train runs a learning session and persists its artifacts.
func (c *Client) Train(ctx context.Context, req TrainRequest) (TrainSummary, error) {
	if req.Scape == "" {
		req.Scape = "equality"
	}
	if req.Episodes <= 0 {
		req.Episodes = 2000
	}

	params := xcs.DefaultConfig()
	params.Seed = req.Seed
	if req.Population > 0 {
		params.MaxPopulation = req.Population
	}
	if req.GASubsumption != nil {
		params.DoGASubsumption = *req.GASubsumption
	}
	if req.ActionSetSubsumption != nil {
		params.DoActionSetSubsumption = *req.ActionSetSubsumption
	}

	lab, err := c.ensureLab(ctx)
	if err != nil {
		return TrainSummary{}, err
	}

	report, err := lab.RunTraining(ctx, platform.TrainConfig{
		ScapeName:     req.Scape,
		Episodes:      req.Episodes,
		Params:        params,
		ExplorePolicy: req.ExplorePolicy,
		WindowSize:    req.WindowSize,
		ResumeFrom:    req.ResumeFrom,
	})
	if err != nil {
		return TrainSummary{}, err
	}

	return TrainSummary{
		RunID:            report.Run.ID,
		PopulationID:     report.Run.PopulationID,
		Scape:            report.Run.Scape,
		Episodes:         report.Run.Episodes,
		FinalAccuracy:    report.Run.FinalAccuracy,
		MeanReward:       report.Run.MeanReward,
		MacroClassifiers: report.Run.MacroClassifiers,
		MicroClassifiers: report.Run.MicroClassifiers,
	}, nil
}

// Runs lists stored runs, newest first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	lab, err := c.ensureLab(ctx)
	if err != nil {
		return nil, err
	}
	runs, err := lab.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) > req.Limit {
		runs = runs[:req.Limit]
	}

	out := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunItem{
			RunID:            run.ID,
			CreatedAtUTC:     run.CreatedAtUTC,
			Scape:            run.Scape,
			Seed:             run.Seed,
			Episodes:         run.Episodes,
			FinalAccuracy:    run.FinalAccuracy,
			MeanReward:       run.MeanReward,
			MacroClassifiers: run.MacroClassifiers,
			MicroClassifiers: run.MicroClassifiers,
		})
	}
	return out, nil
}

// Population summarizes the final population of a run.
func (c *Client) Population(ctx context.Context, req PopulationRequest) (PopulationView, error) {
	if req.Top < 0 {
		return PopulationView{}, errors.New("top must be >= 0")
	}
	if req.Top == 0 {
		req.Top = 10
	}

	lab, err := c.ensureLab(ctx)
	if err != nil {
		return PopulationView{}, err
	}
	runID, err := c.resolveRunID(ctx, lab, req.RunID, req.Latest)
	if err != nil {
		return PopulationView{}, err
	}

	run, ok, err := lab.GetRun(ctx, runID)
	if err != nil {
		return PopulationView{}, err
	}
	if !ok {
		return PopulationView{}, fmt.Errorf("run not found: %s", runID)
	}
	snapshot, ok, err := lab.GetPopulation(ctx, run.PopulationID)
	if err != nil {
		return PopulationView{}, err
	}
	if !ok {
		return PopulationView{}, fmt.Errorf("population not found for run id: %s", runID)
	}

	return PopulationView{
		RunID:   runID,
		Scape:   snapshot.Scape,
		Episode: snapshot.Episode,
		Report:  stats.Summarize(snapshot.Classifiers, xcs.DefaultConfig().Epsilon0),
		Top:     stats.TopByNumerosity(snapshot.Classifiers, req.Top),
	}, nil
}

// Diagnostics returns the per-episode diagnostics of a run.
func (c *Client) Diagnostics(ctx context.Context, req DiagnosticsRequest) ([]model.EpisodeDiagnostics, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}

	lab, err := c.ensureLab(ctx)
	if err != nil {
		return nil, err
	}
	runID, err := c.resolveRunID(ctx, lab, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	diagnostics, ok, err := lab.GetDiagnostics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("diagnostics not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(diagnostics) > req.Limit {
		diagnostics = diagnostics[len(diagnostics)-req.Limit:]
	}
	out := make([]model.EpisodeDiagnostics, len(diagnostics))
	copy(out, diagnostics)
	return out, nil
}

// Export writes a run's record, population and diagnostics as JSON files.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	lab, err := c.ensureLab(ctx)
	if err != nil {
		return ExportSummary{}, err
	}
	runID, err := c.resolveRunID(ctx, lab, req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}

	run, ok, err := lab.GetRun(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("run not found: %s", runID)
	}
	snapshot, ok, err := lab.GetPopulation(ctx, run.PopulationID)
	if err != nil {
		return ExportSummary{}, err
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("population not found for run id: %s", runID)
	}
	diagnostics, _, err := lab.GetDiagnostics(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}

	runDir, err := stats.WriteRunArtifacts(req.OutDir, stats.RunArtifacts{
		Run:         run,
		Population:  snapshot,
		Diagnostics: diagnostics,
		Report:      stats.Summarize(snapshot.Classifiers, xcs.DefaultConfig().Epsilon0),
		Top:         stats.TopByNumerosity(snapshot.Classifiers, 10),
	})
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(runDir)}, nil
}

func (c *Client) resolveRunID(ctx context.Context, lab *platform.Lab, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if runID != "" {
		return runID, nil
	}
	if !latest {
		return "", errors.New("run id or latest is required")
	}
	runs, err := lab.ListRuns(ctx)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", errors.New("no runs available")
	}
	return runs[0].ID, nil
}

func (c *Client) ensureLab(ctx context.Context) (*platform.Lab, error) {
	if c.lab != nil {
		return c.lab, nil
	}
	lab := platform.NewLab(platform.Config{Store: c.store, Logger: c.logger})
	if err := lab.Init(ctx); err != nil {
		return nil, err
	}
	c.lab = lab
	return c.lab, nil
}
