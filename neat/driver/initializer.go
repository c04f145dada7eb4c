package driver

import (
	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
	"github.com/loom-evo/goneat/neat/innovation"
)

// Initializer builds the starting population's genomes. DefaultInitializer
// covers the common case; scenarios that need a custom seed topology can
// supply their own.
type Initializer interface {
	Seed(count int, rng *neat.RNG, reg *innovation.Registry) []*genetics.Genome
}

// DefaultInitializer spawns count copies of the fully-connected seed genome
// for a scenario with the given sensory and action node counts, each an
// independent clone with its own randomly drawn weights.
type DefaultInitializer struct {
	SensoryCount int
	ActionCount  int
}

// Seed implements Initializer.
func (d DefaultInitializer) Seed(count int, rng *neat.RNG, reg *innovation.Registry) []*genetics.Genome {
	genomes := make([]*genetics.Genome, count)
	for i := 0; i < count; i++ {
		genomes[i] = genetics.NewSeedGenome(i, d.SensoryCount, d.ActionCount, rng, reg)
	}
	return genomes
}
