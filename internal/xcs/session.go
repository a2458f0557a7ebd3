package xcs

import (
	"context"
	"fmt"
	"math/rand"

	"xcslab/internal/scape"
)

// Session drives one learning run against an environment. A decision step is
// strictly sequential: match (with covering), select, act, reinforce,
// conditionally discover, enforce capacity. All randomness flows through the
// session's single seeded source.
type Session struct {
	cfg Config
	env scape.Environment
	pop *Population
	rng *rand.Rand

	cover *coverer
	upd   *updater
	disc  *discovery

	timestamp int

	// pending buffers the previous step's action set in multi-step episodes
	// so the discounted update can use the next state's best estimate without
	// looking ahead.
	pending *pendingStep
}

type pendingStep struct {
	actionSet []*Classifier
	state     []float64
	reward    float64
}

// EpisodeResult summarizes one episode.
type EpisodeResult struct {
	Steps  int
	Reward float64
}

// NewSession validates the configuration and prepares an empty population.
func NewSession(cfg Config, env scape.Environment) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if env == nil {
		return nil, fmt.Errorf("environment is required")
	}
	pop, err := NewPopulation(cfg.MaxPopulation)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg: cfg,
		env: env,
		pop: pop,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	_, realValued := env.(scape.RealValued)
	s.cover = &coverer{cfg: &s.cfg, realValued: realValued}
	s.upd = &updater{cfg: &s.cfg}
	s.disc = &discovery{cfg: &s.cfg, numActions: env.Actions()}
	return s, nil
}

// Population exposes the evolving rule set for inspection and snapshots.
func (s *Session) Population() *Population { return s.pop }

// Environment returns the driven environment.
func (s *Session) Environment() scape.Environment { return s.env }

// Timestamp returns the decision-step counter.
func (s *Session) Timestamp() int { return s.timestamp }

// DrawExplore samples the explore-versus-exploit coin with the configured
// probability.
func (s *Session) DrawExplore() bool {
	return s.rng.Float64() < s.cfg.PExplore
}

// RestorePopulation replaces the session's population, e.g. when resuming
// from a snapshot.
func (s *Session) RestorePopulation(pop *Population) error {
	if pop == nil {
		return fmt.Errorf("population is required")
	}
	if pop.MaxSize() != s.cfg.MaxPopulation {
		return fmt.Errorf("snapshot capacity %d does not match configured %d", pop.MaxSize(), s.cfg.MaxPopulation)
	}
	s.pop = pop
	return nil
}

// checkState verifies the environment honors its advertised arity.
func (s *Session) checkState(state []float64) error {
	if len(state) != s.env.Arity() {
		return fmt.Errorf("environment %s returned state of arity %d, advertised %d", s.env.Name(), len(state), s.env.Arity())
	}
	return nil
}

// RunEpisode resets the environment and runs decision steps until the episode
// terminates. In explore mode actions are drawn uniformly; in exploit mode
// the best-predicted action is taken deterministically.
func (s *Session) RunEpisode(ctx context.Context, explore bool) (EpisodeResult, error) {
	s.env.Reset(s.rng)
	s.pending = nil

	var result EpisodeResult
	for !s.env.Terminal() {
		if err := ctx.Err(); err != nil {
			return EpisodeResult{}, err
		}

		state := s.env.State()
		if err := s.checkState(state); err != nil {
			return EpisodeResult{}, err
		}

		match, err := s.cover.buildMatchSet(s.pop, state, s.env.Actions(), s.timestamp, s.rng)
		if err != nil {
			return EpisodeResult{}, err
		}
		prediction := ComputePrediction(match, s.env.Actions())

		var action int
		if explore {
			action = prediction.Random(s.rng)
		} else {
			action = prediction.Best()
		}
		if action < 0 {
			return EpisodeResult{}, fmt.Errorf("internal: no represented action after covering")
		}
		actionSet := actionSubset(match, action)

		reward, err := s.env.Execute(action)
		if err != nil {
			return EpisodeResult{}, fmt.Errorf("environment %s: %w", s.env.Name(), err)
		}
		result.Reward += reward
		result.Steps++

		// The previous step's update was deferred until this state's best
		// estimate was known.
		if s.pending != nil {
			payoff := s.pending.reward + s.cfg.Gamma*prediction.Max()
			if err := s.reinforce(s.pending.actionSet, s.pending.state, payoff); err != nil {
				return EpisodeResult{}, err
			}
		}

		if s.env.Terminal() {
			if err := s.reinforce(actionSet, state, reward); err != nil {
				return EpisodeResult{}, err
			}
			s.pending = nil
		} else {
			s.pending = &pendingStep{actionSet: actionSet, state: state, reward: reward}
		}
		s.timestamp++
	}
	return result, nil
}

// reinforce applies the payoff to the action set, then runs the optional
// action-set subsumption and the conditionally triggered genetic discovery.
func (s *Session) reinforce(actionSet []*Classifier, state []float64, payoff float64) error {
	live := actionSet[:0:0]
	for _, cl := range actionSet {
		if cl.Numerosity > 0 {
			live = append(live, cl)
		}
	}
	if len(live) == 0 {
		return nil
	}
	if err := s.upd.Update(live, payoff); err != nil {
		return err
	}
	if s.cfg.DoActionSetSubsumption {
		s.disc.ActionSetSubsumption(s.pop, live)
		trimmed := live[:0]
		for _, cl := range live {
			if cl.Numerosity > 0 {
				trimmed = append(trimmed, cl)
			}
		}
		live = trimmed
	}
	return s.disc.Run(s.pop, live, state, s.timestamp, s.rng)
}
