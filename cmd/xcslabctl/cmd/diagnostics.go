package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"xcslab/pkg/xcslab"
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "Show per-episode diagnostics of a run",
	RunE:  runDiagnostics,
}

var (
	diagnosticsRunID  string
	diagnosticsLatest bool
	diagnosticsLimit  int
)

func init() {
	diagnosticsCmd.Flags().StringVar(&diagnosticsRunID, "run", "", "run id")
	diagnosticsCmd.Flags().BoolVar(&diagnosticsLatest, "latest", false, "use the most recent run")
	diagnosticsCmd.Flags().IntVar(&diagnosticsLimit, "limit", 20, "show the last N episodes")
}

func runDiagnostics(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	diagnostics, err := client.Diagnostics(cmd.Context(), xcslab.DiagnosticsRequest{
		RunID:  diagnosticsRunID,
		Latest: diagnosticsLatest,
		Limit:  diagnosticsLimit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EPISODE\tMODE\tSTEPS\tREWARD\tACCURACY\tMACRO\tMICRO\tMEAN ERROR")
	for _, d := range diagnostics {
		mode := "exploit"
		if d.Explore {
			mode = "explore"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.1f\t%.3f\t%d\t%d\t%.2f\n",
			d.Episode, mode, d.Steps, d.Reward, d.WindowAccuracy, d.MacroClassifiers, d.MicroClassifiers, d.MeanError)
	}
	return w.Flush()
}
