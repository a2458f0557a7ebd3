package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"xcslab/pkg/xcslab"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run a training session and persist its artifacts",
	RunE:  runTrain,
}

var (
	trainScape         string
	trainEpisodes      int
	trainPopulation    int
	trainSeed          int64
	trainExplorePolicy string
	trainWindow        int
	trainResumeFrom    string
	trainGASub         bool
	trainASSub         bool
)

func init() {
	trainCmd.Flags().StringVar(&trainScape, "scape", "", "environment to train against")
	trainCmd.Flags().IntVar(&trainEpisodes, "episodes", 0, "number of episodes")
	trainCmd.Flags().IntVar(&trainPopulation, "population", 0, "population capacity in micro-classifiers")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 0, "random seed")
	trainCmd.Flags().StringVar(&trainExplorePolicy, "explore-policy", "", "explore policy: parity|probability")
	trainCmd.Flags().IntVar(&trainWindow, "window", 0, "accuracy window size over exploit episodes")
	trainCmd.Flags().StringVar(&trainResumeFrom, "resume-from", "", "population snapshot id to continue from")
	trainCmd.Flags().BoolVar(&trainGASub, "ga-subsumption", true, "subsume offspring into accurate general parents")
	trainCmd.Flags().BoolVar(&trainASSub, "action-set-subsumption", false, "condense action sets into their most general member")
}

func runTrain(cmd *cobra.Command, _ []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	req := xcslab.TrainRequest{
		Scape:         cfg.Train.Scape,
		Episodes:      cfg.Train.Episodes,
		Population:    cfg.Train.Population,
		Seed:          cfg.Train.Seed,
		ExplorePolicy: cfg.Train.ExplorePolicy,
		WindowSize:    cfg.Train.WindowSize,
		GASubsumption:        cfg.Train.GASubsumption,
		ActionSetSubsumption: cfg.Train.ActionSetSubsumption,
		ResumeFrom:           trainResumeFrom,
	}
	if trainScape != "" {
		req.Scape = trainScape
	}
	if trainEpisodes > 0 {
		req.Episodes = trainEpisodes
	}
	if trainPopulation > 0 {
		req.Population = trainPopulation
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = trainSeed
	}
	if trainExplorePolicy != "" {
		req.ExplorePolicy = trainExplorePolicy
	}
	if trainWindow > 0 {
		req.WindowSize = trainWindow
	}
	if cmd.Flags().Changed("ga-subsumption") {
		value := trainGASub
		req.GASubsumption = &value
	}
	if cmd.Flags().Changed("action-set-subsumption") {
		value := trainASSub
		req.ActionSetSubsumption = &value
	}

	summary, err := client.Train(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s\n", summary.RunID)
	fmt.Printf("  scape=%s episodes=%d seed=%d\n", summary.Scape, summary.Episodes, req.Seed)
	fmt.Printf("  accuracy=%.3f mean_reward=%.1f\n", summary.FinalAccuracy, summary.MeanReward)
	fmt.Printf("  population macro=%d micro=%d\n", summary.MacroClassifiers, summary.MicroClassifiers)
	return nil
}
