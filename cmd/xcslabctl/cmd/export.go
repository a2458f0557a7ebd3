package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"xcslab/pkg/xcslab"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a run's artifacts as JSON files",
	RunE:  runExport,
}

var (
	exportRunID  string
	exportLatest bool
	exportOutDir string
)

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "run id")
	exportCmd.Flags().BoolVar(&exportLatest, "latest", false, "export the most recent run")
	exportCmd.Flags().StringVar(&exportOutDir, "out", "", "output directory")
}

func runExport(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	summary, err := client.Export(cmd.Context(), xcslab.ExportRequest{
		RunID:  exportRunID,
		Latest: exportLatest,
		OutDir: exportOutDir,
	})
	if err != nil {
		return err
	}
	fmt.Printf("exported run %s to %s\n", summary.RunID, summary.Directory)
	return nil
}
