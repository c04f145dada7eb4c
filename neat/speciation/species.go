// Package speciation partitions a scored population by genetic similarity,
// applying fitness sharing to protect young innovations from being
// outcompeted by early mass-fitness species.
package speciation

import (
	"math"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
)

// Member pairs a genome with the raw fitness the scenario assigned it this
// generation.
type Member struct {
	Genome  *genetics.Genome
	Fitness float64
}

// Species is a representative genome plus the scored members currently
// assigned to it. The representative is a clone fixed at the start of each
// generation's speciation pass; ReselectRepresentative swaps it for a random
// current member once that generation's reproduction completes. Members are
// cleared by the driver and rebuilt every generation by the speciator.
type Species struct {
	ID             int
	Representative *genetics.Genome

	Members []Member

	BestFitnessEver             float64
	GenerationsSinceImprovement int
}

// NewSpecies opens a new species with id, represented by a clone of seed.
// BestFitnessEver starts at -Inf, so the first UpdateStagnation always
// records the species' best, even when every fitness is negative.
func NewSpecies(id int, seed *genetics.Genome) *Species {
	return &Species{ID: id, Representative: seed.Clone(), BestFitnessEver: math.Inf(-1)}
}

// AdjustedFitness is the fitness-sharing value for this species: the mean
// raw fitness of its members (equivalently sum(f) / |members|).
func (s *Species) AdjustedFitness() float64 {
	if len(s.Members) == 0 {
		return 0
	}
	total := 0.0
	for _, m := range s.Members {
		total += m.Fitness
	}
	return total / float64(len(s.Members))
}

// MaxFitness returns the largest raw fitness among current members.
func (s *Species) MaxFitness() float64 {
	max := 0.0
	for i, m := range s.Members {
		if i == 0 || m.Fitness > max {
			max = m.Fitness
		}
	}
	return max
}

// UpdateStagnation compares this generation's max fitness against
// BestFitnessEver: if it improved, BestFitnessEver is updated and
// GenerationsSinceImprovement resets to zero; otherwise the counter
// increments.
func (s *Species) UpdateStagnation() {
	if len(s.Members) == 0 {
		s.GenerationsSinceImprovement++
		return
	}
	if max := s.MaxFitness(); max > s.BestFitnessEver {
		s.BestFitnessEver = max
		s.GenerationsSinceImprovement = 0
	} else {
		s.GenerationsSinceImprovement++
	}
}

// IsStagnant reports whether this species has gone more than truncateAfter
// generations without improving its best-ever fitness.
func (s *Species) IsStagnant(truncateAfter int) bool {
	return s.GenerationsSinceImprovement > truncateAfter
}

// ReselectRepresentative picks a random current member as the representative
// for the next generation's speciation pass. A no-op if the species has no
// members.
func (s *Species) ReselectRepresentative(rng *neat.RNG) {
	if len(s.Members) == 0 {
		return
	}
	s.Representative = s.Members[rng.Intn(len(s.Members))].Genome.Clone()
}
