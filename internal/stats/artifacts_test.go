package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"xcslab/internal/model"
)

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	if _, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{}); err == nil {
		t.Fatal("expected error without a run id")
	}
}

func TestWriteRunArtifacts(t *testing.T) {
	base := t.TempDir()
	artifacts := RunArtifacts{
		Run: model.RunRecord{ID: "run-1", Scape: "equality", Episodes: 100},
		Population: model.PopulationSnapshot{
			ID:          "run-1",
			Scape:       "equality",
			MaxSize:     200,
			Classifiers: []model.ClassifierRecord{record(100, 2, 0.8, 4, 30)},
		},
		Diagnostics: []model.EpisodeDiagnostics{{Episode: 0, Explore: true, Reward: 1000}},
		Report:      Summarize([]model.ClassifierRecord{record(100, 2, 0.8, 4, 30)}, 10),
		Top:         []model.ClassifierRecord{record(100, 2, 0.8, 4, 30)},
	}

	runDir, err := WriteRunArtifacts(base, artifacts)
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	if runDir != filepath.Join(base, "run-1") {
		t.Fatalf("unexpected run dir %q", runDir)
	}

	for _, name := range []string{"run.json", "population.json", "diagnostics.json", "report.json", "top_classifiers.json"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	payload, err := os.ReadFile(filepath.Join(runDir, "run.json"))
	if err != nil {
		t.Fatalf("read run.json: %v", err)
	}
	var run model.RunRecord
	if err := json.Unmarshal(payload, &run); err != nil {
		t.Fatalf("decode run.json: %v", err)
	}
	if run.ID != "run-1" || run.Episodes != 100 {
		t.Fatalf("run.json round trip mismatch: %+v", run)
	}
}

func TestWriteRunArtifactsOmitsEmptyTop(t *testing.T) {
	artifacts := RunArtifacts{Run: model.RunRecord{ID: "run-2"}}
	runDir, err := WriteRunArtifacts(t.TempDir(), artifacts)
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	if _, err := os.Stat(filepath.Join(runDir, "top_classifiers.json")); !os.IsNotExist(err) {
		t.Fatal("top_classifiers.json should be skipped for an empty top list")
	}
}
