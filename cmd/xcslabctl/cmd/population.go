package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"xcslab/pkg/xcslab"
)

var populationCmd = &cobra.Command{
	Use:   "population",
	Short: "Summarize the final population of a run",
	RunE:  runPopulation,
}

var (
	populationRunID  string
	populationLatest bool
	populationTop    int
)

func init() {
	populationCmd.Flags().StringVar(&populationRunID, "run", "", "run id")
	populationCmd.Flags().BoolVar(&populationLatest, "latest", false, "use the most recent run")
	populationCmd.Flags().IntVar(&populationTop, "top", 10, "number of top classifiers to print")
}

func runPopulation(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	view, err := client.Population(cmd.Context(), xcslab.PopulationRequest{
		RunID:  populationRunID,
		Latest: populationLatest,
		Top:    populationTop,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s scape=%s episode=%d\n", view.RunID, view.Scape, view.Episode)
	fmt.Printf("  macro=%d micro=%d accurate_share=%.3f\n", view.Report.Macro, view.Report.Micro, view.Report.AccurateShare)
	fmt.Printf("  mean prediction=%.1f error=%.2f fitness=%.4f\n", view.Report.MeanPrediction, view.Report.MeanError, view.Report.MeanFitness)

	if len(view.Top) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tPREDICTION\tERROR\tFITNESS\tNUM\tEXP")
	for _, cl := range view.Top {
		fmt.Fprintf(w, "%d\t%.1f\t%.2f\t%.4f\t%d\t%d\n",
			cl.Action, cl.Prediction, cl.Error, cl.Fitness, cl.Numerosity, cl.Experience)
	}
	return w.Flush()
}
