package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"xcslab/internal/model"
)

// RunArtifacts bundles everything worth exporting about one run.
type RunArtifacts struct {
	Run         model.RunRecord            `json:"run"`
	Population  model.PopulationSnapshot   `json:"population"`
	Diagnostics []model.EpisodeDiagnostics `json:"diagnostics,omitempty"`
	Report      PopulationReport           `json:"report"`
	Top         []model.ClassifierRecord   `json:"top,omitempty"`
}

// WriteRunArtifacts writes the run's artifacts as JSON files under
// baseDir/<run id> and returns that directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "run.json"), artifacts.Run); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "population.json"), artifacts.Population); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "diagnostics.json"), artifacts.Diagnostics); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "report.json"), artifacts.Report); err != nil {
		return "", err
	}
	if len(artifacts.Top) > 0 {
		if err := writeJSON(filepath.Join(runDir, "top_classifiers.json"), artifacts.Top); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

func writeJSON(path string, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(payload, '\n'), 0o644)
}
