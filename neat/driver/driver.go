package driver

import (
	"context"
	"fmt"
	"math"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
	"github.com/loom-evo/goneat/neat/innovation"
	"github.com/loom-evo/goneat/neat/population"
	"github.com/loom-evo/goneat/neat/speciation"
)

// Run executes the generational loop until hook reports Stop or
// opts.MaxGenerations is reached, whichever comes first. ctx must carry an
// *neat.Options via neat.NewContext, recovered here with neat.FromContext —
// ErrNEATOptionsNotFound is returned if the caller forgot. hook may be nil,
// in which case the loop always runs to MaxGenerations.
//
// Each generation runs in seven phases: evaluate every genome's fitness,
// speciate the scored population, update each species' stagnation counter,
// roll statistics (including the per-species breakdown) and call hook,
// allocate next-generation slots across species, reproduce within each
// species, then re-select each species' representative and drop the species
// allocated zero slots. ctx is checked for cancellation at each generation
// boundary.
func Run(ctx context.Context, scenario Scenario, seed int64, init Initializer, hook TerminationHook) (Snapshot, error) {
	opts, found := neat.FromContext(ctx)
	if !found {
		return Snapshot{}, neat.ErrNEATOptionsNotFound
	}
	if err := opts.Validate(); err != nil {
		return Snapshot{}, err
	}

	rng := neat.NewRNG(seed)
	reg := innovation.NewRegistry(0)
	if init == nil {
		init = DefaultInitializer{SensoryCount: scenario.SensoryCount(), ActionCount: scenario.ActionCount()}
	}

	neat.InfoLog(">>>>> Spawning new population")
	genomes := init.Seed(opts.PopulationSize, rng, reg)
	nextGenomeID := len(genomes)
	neat.InfoLog(fmt.Sprintf("OK <<<<< %d genomes spawned", len(genomes)))

	var species []*speciation.Species
	nextSpeciesID := 1

	var best Snapshot
	best.BestFitness = math.Inf(-1)
	globalBestID := -1

	for generation := 0; generation < opts.MaxGenerations; generation++ {
		select {
		case <-ctx.Done():
			return best, ctx.Err()
		default:
		}

		neat.DebugLog(fmt.Sprintf(">>>>> generation %d: evaluating %d genomes", generation, len(genomes)))

		var fitnesses []float64
		var err error
		if opts.ParallelEvaluation {
			fitnesses, err = evaluateParallel(genomes, scenario, defaultWorkerCount(len(genomes)), rng)
		} else {
			fitnesses, err = evaluateSequential(genomes, scenario)
		}
		if err != nil {
			return best, err
		}

		nonFinite := 0
		for i, f := range fitnesses {
			if math.IsNaN(f) || math.IsInf(f, 1) {
				fitnesses[i] = math.Inf(-1)
				nonFinite++
			}
		}
		if nonFinite > 0 {
			neat.WarnLog(fmt.Sprintf("generation %d: %d genome(s) scored non-finite, clamped to -Inf", generation, nonFinite))
		}

		scored := make([]speciation.Member, len(genomes))
		for i, g := range genomes {
			scored[i] = speciation.Member{Genome: g, Fitness: fitnesses[i]}
			if fitnesses[i] > best.BestFitness {
				best.BestFitness = fitnesses[i]
				best.BestGenome = g
				globalBestID = g.ID
			}
		}

		reg.Roll()
		previousSpeciesIDs := speciesIDSet(species)
		species = speciation.Speciate(scored, species, opts, &nextSpeciesID)
		for _, sp := range species {
			sp.UpdateStagnation()
		}
		survivingSpeciesIDs := speciesIDSet(species)
		for id := range previousSpeciesIDs {
			if !survivingSpeciesIDs[id] {
				neat.InfoLog(fmt.Sprintf("generation %d: species %d extinct", generation, id))
			}
		}

		speciesSnaps := make([]SpeciesSnapshot, len(species))
		for i, sp := range species {
			speciesSnaps[i] = SpeciesSnapshot{
				ID:              sp.ID,
				AdjustedFitness: sp.AdjustedFitness(),
				MaxFitness:      sp.MaxFitness(),
				Size:            len(sp.Members),
			}
		}

		snap := Snapshot{
			Generation:      generation,
			BestGenome:      best.BestGenome,
			BestFitness:     best.BestFitness,
			SpeciesCount:    len(species),
			PopulationCount: len(genomes),
			Fitness:         summarize(fitnesses),
			NonFiniteCount:  nonFinite,
			Species:         speciesSnaps,
		}
		best.Generation = generation
		best.SpeciesCount = snap.SpeciesCount
		best.PopulationCount = snap.PopulationCount

		neat.InfoLog(fmt.Sprintf(">>>>> generation %d complete: %d species, best fitness %f",
			generation, len(species), best.BestFitness))

		if hook != nil && hook(snap) == Stop {
			return snap, nil
		}

		allocation := population.Allocate(species, opts.PopulationSize, globalBestID, opts)

		nextGenomes := make([]*genetics.Genome, 0, opts.PopulationSize)
		for i, sp := range species {
			if allocation[i] == 0 {
				neat.DebugLog(fmt.Sprintf("generation %d: species %d allocated 0 offspring, dropped", generation, sp.ID))
			}
			offspring, err := population.Reproduce(sp, allocation[i], &nextGenomeID, rng, reg, opts)
			if err != nil {
				return best, err
			}
			nextGenomes = append(nextGenomes, offspring...)
			sp.ReselectRepresentative(rng)
			sp.Members = nil
		}
		kept := species[:0]
		for i, sp := range species {
			if allocation[i] > 0 {
				kept = append(kept, sp)
			}
		}
		species = kept

		genomes = nextGenomes
	}

	return best, nil
}

// speciesIDSet indexes a species slice by id for set-membership checks, used
// to detect which species from the previous generation did not survive this
// generation's speciation pass.
func speciesIDSet(species []*speciation.Species) map[int]bool {
	ids := make(map[int]bool, len(species))
	for _, sp := range species {
		ids[sp.ID] = true
	}
	return ids
}

// defaultWorkerCount caps the parallel evaluation pool at the population
// size so no worker goroutine ever starves for work.
func defaultWorkerCount(populationSize int) int {
	const maxWorkers = 8
	if populationSize < maxWorkers {
		return populationSize
	}
	return maxWorkers
}
