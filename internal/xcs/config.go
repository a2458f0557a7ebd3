package xcs

import "fmt"

// Config carries every learning parameter. Parameter names follow the
// standard accuracy-based classifier-system literature. Zero values are not
// meaningful; start from DefaultConfig and override.
type Config struct {
	// MaxPopulation is the population capacity N, counted in
	// micro-classifiers.
	MaxPopulation int

	// LearningRate is beta, the step size of every running-average update.
	LearningRate float64

	// Alpha, Epsilon0 and Nu shape the accuracy function: accuracy is 1 when
	// the prediction error is below Epsilon0 and falls off as
	// Alpha*(error/Epsilon0)^-Nu above it.
	Alpha    float64
	Epsilon0 float64
	Nu       float64

	// Gamma discounts future payoff in multi-step problems.
	Gamma float64

	// ThetaGA is the mean action-set age that triggers genetic discovery.
	ThetaGA int
	// CrossoverProb is chi, the probability of crossing the two offspring.
	CrossoverProb float64
	// MutationProb is mu, the per-allele mutation probability.
	MutationProb float64
	// MutationSpread bounds the uniform shift applied to interval bounds on
	// mutation.
	MutationSpread float64
	// MutateAction additionally lets mutation reassign an offspring's action.
	MutateAction bool

	// ThetaDel and Delta gate the fitness-scaled deletion vote: experienced
	// (> ThetaDel) classifiers with per-micro fitness below Delta times the
	// population average attract extra deletion pressure.
	ThetaDel int
	Delta    float64

	// ThetaSub is the experience a classifier needs before it may subsume.
	ThetaSub               int
	DoGASubsumption        bool
	DoActionSetSubsumption bool

	// PExplore is the probability of an exploration step under the
	// probability policy.
	PExplore float64

	// WildcardProb generalizes covering conditions per feature (discrete
	// inputs); CoverSpread widens covering intervals (real inputs).
	WildcardProb float64
	CoverSpread  float64

	// Initial statistics for classifiers created by covering.
	InitialPrediction float64
	InitialError      float64
	InitialFitness    float64

	// FitnessReduction scales down the inherited fitness of GA offspring so
	// young rules cannot ride on their parents' reputation.
	FitnessReduction float64

	// Seed feeds the single random source threaded through every stochastic
	// operation.
	Seed int64
}

// DefaultConfig returns the standard parameter setting from the
// accuracy-based classifier-system literature.
func DefaultConfig() Config {
	return Config{
		MaxPopulation:          200,
		LearningRate:           0.2,
		Alpha:                  0.1,
		Epsilon0:               10,
		Nu:                     5,
		Gamma:                  0.71,
		ThetaGA:                25,
		CrossoverProb:          0.8,
		MutationProb:           0.04,
		MutationSpread:         0.1,
		ThetaDel:               20,
		Delta:                  0.1,
		ThetaSub:               20,
		DoGASubsumption:        true,
		DoActionSetSubsumption: false,
		PExplore:               0.5,
		WildcardProb:           0.33,
		CoverSpread:            0.25,
		InitialPrediction:      10,
		InitialError:           0,
		InitialFitness:         0.01,
		FitnessReduction:       0.1,
	}
}

// Validate fails fast on any parameter outside its legal range, so that a
// misconfigured run never starts.
func (c Config) Validate() error {
	if c.MaxPopulation <= 0 {
		return fmt.Errorf("max population must be > 0, got %d", c.MaxPopulation)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0,1], got %g", c.LearningRate)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("alpha must be > 0, got %g", c.Alpha)
	}
	if c.Epsilon0 <= 0 {
		return fmt.Errorf("epsilon0 must be > 0, got %g", c.Epsilon0)
	}
	if c.Nu <= 0 {
		return fmt.Errorf("nu must be > 0, got %g", c.Nu)
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("gamma must be in [0,1), got %g", c.Gamma)
	}
	if c.ThetaGA < 0 {
		return fmt.Errorf("theta_ga must be >= 0, got %d", c.ThetaGA)
	}
	for name, p := range map[string]float64{
		"crossover probability": c.CrossoverProb,
		"mutation probability":  c.MutationProb,
		"explore probability":   c.PExplore,
		"wildcard probability":  c.WildcardProb,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", name, p)
		}
	}
	if c.MutationSpread < 0 {
		return fmt.Errorf("mutation spread must be >= 0, got %g", c.MutationSpread)
	}
	if c.ThetaDel < 0 {
		return fmt.Errorf("theta_del must be >= 0, got %d", c.ThetaDel)
	}
	if c.Delta <= 0 || c.Delta > 1 {
		return fmt.Errorf("delta must be in (0,1], got %g", c.Delta)
	}
	if c.ThetaSub < 0 {
		return fmt.Errorf("theta_sub must be >= 0, got %d", c.ThetaSub)
	}
	if c.CoverSpread <= 0 {
		return fmt.Errorf("cover spread must be > 0, got %g", c.CoverSpread)
	}
	if c.InitialError < 0 {
		return fmt.Errorf("initial error must be >= 0, got %g", c.InitialError)
	}
	if c.InitialFitness <= 0 {
		return fmt.Errorf("initial fitness must be > 0, got %g", c.InitialFitness)
	}
	if c.FitnessReduction <= 0 || c.FitnessReduction > 1 {
		return fmt.Errorf("fitness reduction must be in (0,1], got %g", c.FitnessReduction)
	}
	return nil
}
