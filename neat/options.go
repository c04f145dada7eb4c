package neat

import "github.com/pkg/errors"

// Options is the single immutable configuration bundle threaded through the
// driver and every collaborator it calls into. All probability fields are
// plain float64 in [0, 1]; Genome.Mutate reads the genome-level mutation mix
// as roulette-wheel weights on each call.
type Options struct {
	// PopulationSize is the target slot count per generation.
	PopulationSize int `yaml:"population_size"`
	// SpecieThreshold is the compatibility distance under which two genomes are the same species.
	SpecieThreshold float64 `yaml:"specie_threshold"`
	// NoImprovementTruncate is the number of stagnant generations before a species' allocation is forced to zero.
	NoImprovementTruncate int `yaml:"no_improvement_truncate"`
	// ChampionPreservation is how many top members per species are copied unchanged into the next generation.
	ChampionPreservation int `yaml:"champion_preservation"`
	// ReproductionCopyRatio is the fraction of a species' offspring produced by clone+mutate rather than crossover.
	ReproductionCopyRatio float64 `yaml:"reproduction_copy_ratio"`

	// ExcessCoeff, DisjointCoeff, MutdiffCoeff weight the compatibility distance formula.
	ExcessCoeff   float64 `yaml:"excess_coeff"`
	DisjointCoeff float64 `yaml:"disjoint_coeff"`
	MutdiffCoeff  float64 `yaml:"mutdiff_coeff"`

	// ProbabilityPickLessFit is the crossover tie-break probability when both parents are equally fit.
	ProbabilityPickLessFit float64 `yaml:"probability_pick_less_fit"`
	// ProbabilityKeepDisabled is the probability a matching gene stays disabled in the offspring when either parent has it disabled.
	ProbabilityKeepDisabled float64 `yaml:"probability_keep_disabled"`

	// ParamReplaceProb is the probability a perturbed weight is replaced outright rather than nudged.
	ParamReplaceProb float64 `yaml:"param_replace_prob"`
	// ParamPerturbFactor scales the perturbation applied to a connection weight.
	ParamPerturbFactor float64 `yaml:"param_perturb_factor"`

	// NewConnectionProb, BisectProb, MutateConnProb are the genome-level mutation event mix.
	NewConnectionProb float64 `yaml:"new_connection_prob"`
	BisectProb        float64 `yaml:"bisect_prob"`
	MutateConnProb    float64 `yaml:"mutate_conn_prob"`

	// CtrnnPrecision is the number of Euler micro-steps per input application.
	CtrnnPrecision int `yaml:"ctrnn_precision"`

	// MaxGenerations is the implementation-defined safety bound on generations per run.
	MaxGenerations int `yaml:"max_generations"`
	// ParallelEvaluation enables the worker-pool evaluate phase.
	ParallelEvaluation bool `yaml:"parallel_evaluation"`

	// LogLevel is the ambient logger verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultOptions returns the Options bundle with every default value from the
// configuration table populated.
func DefaultOptions() *Options {
	return &Options{
		PopulationSize:          150,
		SpecieThreshold:         3.0,
		NoImprovementTruncate:   10,
		ChampionPreservation:    1,
		ReproductionCopyRatio:   0.25,
		ExcessCoeff:             1.0,
		DisjointCoeff:           1.0,
		MutdiffCoeff:            0.4,
		ProbabilityPickLessFit:  0.5,
		ProbabilityKeepDisabled: 0.75,
		ParamReplaceProb:        0.10,
		ParamPerturbFactor:      0.05,
		NewConnectionProb:       0.05,
		BisectProb:              0.15,
		MutateConnProb:          0.80,
		CtrnnPrecision:          10,
		MaxGenerations:          1000,
		ParallelEvaluation:      false,
		LogLevel:                "info",
	}
}

// Validate rejects configuration invalid at driver startup, before any
// generation runs: probabilities outside [0, 1], non-positive thresholds, or
// a zero population. This is the only place configuration errors are fatal.
func (o *Options) Validate() error {
	if o.PopulationSize <= 0 {
		return errors.New("population_size must be positive")
	}
	if o.SpecieThreshold <= 0 {
		return errors.New("specie_threshold must be positive")
	}
	if o.NoImprovementTruncate <= 0 {
		return errors.New("no_improvement_truncate must be positive")
	}
	if o.ChampionPreservation < 0 {
		return errors.New("champion_preservation must not be negative")
	}
	if o.CtrnnPrecision <= 0 {
		return errors.New("ctrnn_precision must be positive")
	}
	if o.MaxGenerations <= 0 {
		return errors.New("max_generations must be positive")
	}

	probs := map[string]float64{
		"reproduction_copy_ratio":   o.ReproductionCopyRatio,
		"probability_pick_less_fit": o.ProbabilityPickLessFit,
		"probability_keep_disabled": o.ProbabilityKeepDisabled,
		"param_replace_prob":        o.ParamReplaceProb,
		"param_perturb_factor":      o.ParamPerturbFactor,
	}
	for name, v := range probs {
		if v < 0 || v > 1 {
			return errors.Errorf("%s must be within [0, 1], got %f", name, v)
		}
	}

	if o.ExcessCoeff < 0 || o.DisjointCoeff < 0 || o.MutdiffCoeff < 0 {
		return errors.New("compatibility coefficients must not be negative")
	}

	mix := o.NewConnectionProb + o.BisectProb + o.MutateConnProb
	if o.NewConnectionProb < 0 || o.BisectProb < 0 || o.MutateConnProb < 0 || mix <= 0 {
		return errors.New("genome-level mutation mix must be non-negative and sum to a positive value")
	}

	return nil
}
