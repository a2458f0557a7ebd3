package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional yaml configuration. Command-line flags override
// its values.
type FileConfig struct {
	Store      string `yaml:"store"`
	DBPath     string `yaml:"db_path"`
	ExportsDir string `yaml:"exports_dir"`

	Train TrainDefaults `yaml:"train"`
}

// TrainDefaults seed the train command's flags.
type TrainDefaults struct {
	Scape         string `yaml:"scape"`
	Episodes      int    `yaml:"episodes"`
	Population    int    `yaml:"population"`
	Seed          int64  `yaml:"seed"`
	ExplorePolicy string `yaml:"explore_policy"`
	WindowSize    int    `yaml:"window_size"`

	GASubsumption        *bool `yaml:"ga_subsumption"`
	ActionSetSubsumption *bool `yaml:"action_set_subsumption"`
}

// LoadFileConfig reads the yaml config at path. An empty path yields the zero
// config; a missing file is an error so typos do not silently fall back.
func LoadFileConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(payload, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *FileConfig) validate() error {
	switch c.Store {
	case "", "memory", "bolt", "sqlite":
	default:
		return fmt.Errorf("unsupported store backend: %s", c.Store)
	}
	if c.Train.Episodes < 0 {
		return fmt.Errorf("train.episodes must be >= 0, got %d", c.Train.Episodes)
	}
	if c.Train.Population < 0 {
		return fmt.Errorf("train.population must be >= 0, got %d", c.Train.Population)
	}
	if c.Train.WindowSize < 0 {
		return fmt.Errorf("train.window_size must be >= 0, got %d", c.Train.WindowSize)
	}
	switch c.Train.ExplorePolicy {
	case "", "parity", "probability":
	default:
		return fmt.Errorf("unsupported explore policy: %s", c.Train.ExplorePolicy)
	}
	return nil
}
