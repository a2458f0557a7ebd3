package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"xcslab/pkg/xcslab"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs, newest first",
	RunE:  runRuns,
}

var runsLimit int

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum rows to list")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	runs, err := client.Runs(cmd.Context(), xcslab.RunsRequest{Limit: runsLimit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tCREATED\tSCAPE\tSEED\tEPISODES\tACCURACY\tMEAN REWARD\tMACRO\tMICRO")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3f\t%.1f\t%d\t%d\n",
			run.RunID, run.CreatedAtUTC, run.Scape, run.Seed, run.Episodes,
			run.FinalAccuracy, run.MeanReward, run.MacroClassifiers, run.MicroClassifiers)
	}
	return w.Flush()
}
