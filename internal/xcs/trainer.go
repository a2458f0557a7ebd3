package xcs

import (
	"context"
	"fmt"
	"log/slog"

	"xcslab/internal/model"
	"xcslab/internal/scape"
	"xcslab/internal/stats"
)

// Explore policies supported by the trainer.
const (
	// ExplorePolicyParity alternates explore and exploit episodes.
	ExplorePolicyParity = "parity"
	// ExplorePolicyProbability draws explore with probability PExplore.
	ExplorePolicyProbability = "probability"
)

// TrainerConfig shapes a training run around a session.
type TrainerConfig struct {
	// Episodes to run.
	Episodes int
	// ExplorePolicy selects how explore/exploit is decided per episode;
	// defaults to parity.
	ExplorePolicy string
	// WindowSize is the sliding accuracy window over exploit episodes;
	// defaults to 50.
	WindowSize int
	// Logger receives progress records; nil disables logging.
	Logger *slog.Logger
	// LogEvery logs a progress record each time this many episodes complete;
	// 0 picks a sensible default.
	LogEvery int
}

// TrainResult is the outcome of a training run.
type TrainResult struct {
	Episodes      int
	FinalAccuracy float64
	MeanReward    float64
	Diagnostics   []model.EpisodeDiagnostics
}

// Trainer runs episodes against a session, alternating exploration and
// exploitation, and collects per-episode diagnostics.
type Trainer struct {
	session *Session
	cfg     TrainerConfig
}

// NewTrainer validates the trainer configuration.
func NewTrainer(session *Session, cfg TrainerConfig) (*Trainer, error) {
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if cfg.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be > 0, got %d", cfg.Episodes)
	}
	switch cfg.ExplorePolicy {
	case "":
		cfg.ExplorePolicy = ExplorePolicyParity
	case ExplorePolicyParity, ExplorePolicyProbability:
	default:
		return nil, fmt.Errorf("unknown explore policy: %s", cfg.ExplorePolicy)
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 50
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = cfg.Episodes / 10
		if cfg.LogEvery == 0 {
			cfg.LogEvery = 1
		}
	}
	return &Trainer{session: session, cfg: cfg}, nil
}

// Run executes the configured number of episodes. Exploit episodes are scored
// as correct when the environment is graded and the episode collected the
// maximum payoff.
func (t *Trainer) Run(ctx context.Context) (TrainResult, error) {
	window := stats.NewWindow(t.cfg.WindowSize)
	graded, isGraded := t.session.Environment().(scape.Graded)

	result := TrainResult{Diagnostics: make([]model.EpisodeDiagnostics, 0, t.cfg.Episodes)}
	totalReward := 0.0

	for episode := 0; episode < t.cfg.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return TrainResult{}, err
		}

		var explore bool
		if t.cfg.ExplorePolicy == ExplorePolicyParity {
			explore = episode%2 == 0
		} else {
			explore = t.session.DrawExplore()
		}

		episodeResult, err := t.session.RunEpisode(ctx, explore)
		if err != nil {
			return TrainResult{}, fmt.Errorf("episode %d: %w", episode, err)
		}
		totalReward += episodeResult.Reward

		if !explore && isGraded {
			window.Add(episodeResult.Reward >= graded.MaxReward())
		}

		pop := t.session.Population()
		result.Diagnostics = append(result.Diagnostics, model.EpisodeDiagnostics{
			Episode:          episode,
			Explore:          explore,
			Steps:            episodeResult.Steps,
			Reward:           episodeResult.Reward,
			WindowAccuracy:   window.Accuracy(),
			MacroClassifiers: pop.Macro(),
			MicroClassifiers: pop.NumerositySum(),
			MeanError:        meanError(pop),
		})

		if t.cfg.Logger != nil && (episode+1)%t.cfg.LogEvery == 0 {
			t.cfg.Logger.Info("training progress",
				slog.Int("episode", episode+1),
				slog.Float64("window_accuracy", window.Accuracy()),
				slog.Int("macro", pop.Macro()),
				slog.Int("micro", pop.NumerositySum()),
			)
		}
	}

	result.Episodes = t.cfg.Episodes
	result.FinalAccuracy = window.Accuracy()
	result.MeanReward = totalReward / float64(t.cfg.Episodes)
	return result, nil
}

// meanError is the numerosity-weighted mean prediction error.
func meanError(pop *Population) float64 {
	total := 0.0
	micro := 0
	for _, cl := range pop.Members() {
		total += cl.Error * float64(cl.Numerosity)
		micro += cl.Numerosity
	}
	if micro == 0 {
		return 0
	}
	return total / float64(micro)
}
