package driver

import "github.com/loom-evo/goneat/neat/genetics"

// SpeciesSnapshot is the read-only per-species breakdown handed to hooks
// alongside the whole-population Snapshot: identity, fitness-sharing value,
// and size, enough for a hook to log or plot species dynamics without
// reaching into the driver's live Species slice.
type SpeciesSnapshot struct {
	ID              int
	AdjustedFitness float64
	MaxFitness      float64
	Size            int
}

// Snapshot is the read-only view of one completed generation handed to
// hooks and the caller: the best genome found so far, its fitness, the
// per-species breakdown, and basic population shape for logging or
// early-stopping decisions.
type Snapshot struct {
	Generation      int
	BestGenome      *genetics.Genome
	BestFitness     float64
	SpeciesCount    int
	PopulationCount int
	Fitness         FitnessStats
	NonFiniteCount  int
	Species         []SpeciesSnapshot
}

// HookResult tells the driver whether to keep running after a generation.
type HookResult int

const (
	// Continue means keep running toward MaxGenerations.
	Continue HookResult = iota
	// Stop means the run is done; the driver returns normally.
	Stop
)

// TerminationHook is called after every generation's evaluation and
// statistics pass. Returning Stop ends the run immediately, before the next
// generation's reproduction phase runs — the final Snapshot's population is
// still the one that was just scored, not yet turned over.
type TerminationHook func(snap Snapshot) HookResult
