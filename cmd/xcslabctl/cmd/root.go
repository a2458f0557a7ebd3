package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"xcslab/pkg/xcslab"
)

var rootCmd = &cobra.Command{
	Use:           "xcslabctl",
	Short:         "xcslabctl — train and inspect classifier populations",
	Long:          "Runs accuracy-based classifier learning against bundled environments and queries stored runs.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	flagConfig     string
	flagStore      string
	flagDBPath     string
	flagExportsDir string
	flagVerbose    bool
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "yaml config file")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "store backend: memory|bolt|sqlite")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "", "database path for file-backed stores")
	rootCmd.PersistentFlags().StringVar(&flagExportsDir, "exports-dir", "", "directory for exported run artifacts")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log training progress to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(populationCmd)
	rootCmd.AddCommand(diagnosticsCmd)
	rootCmd.AddCommand(scapesCmd)
	rootCmd.AddCommand(exportCmd)
}

// newClient assembles a client from the config file and flag overrides.
// Flags win over the file.
func newClient() (*xcslab.Client, *FileConfig, error) {
	cfg, err := LoadFileConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	store := cfg.Store
	if flagStore != "" {
		store = flagStore
	}
	dbPath := cfg.DBPath
	if flagDBPath != "" {
		dbPath = flagDBPath
	}
	exportsDir := cfg.ExportsDir
	if flagExportsDir != "" {
		exportsDir = flagExportsDir
	}

	var logger *slog.Logger
	if flagVerbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	client, err := xcslab.New(xcslab.Options{
		StoreKind:  store,
		DBPath:     dbPath,
		ExportsDir: exportsDir,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func closeClient(client *xcslab.Client) {
	if err := client.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close store: %v\n", err)
	}
}
