package speciation

import (
	"testing"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genomeWithWeight(id int, w float64) *genetics.Genome {
	return &genetics.Genome{
		ID: id, NSensory: 1, NAction: 1, NBias: 1,
		Connections: []*genetics.ConnectionGene{
			{Innovation: 1, Source: 0, Target: 1, Weight: w, Enabled: true},
		},
	}
}

// Speciation with threshold 0 yields as many species as distinct genomes.
func TestSpeciate_ThresholdZero_OneSpeciesPerGenome(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.SpecieThreshold = 0
	nextID := 1

	scored := []Member{
		{Genome: genomeWithWeight(1, 1.0), Fitness: 1},
		{Genome: genomeWithWeight(2, 2.0), Fitness: 1},
		{Genome: genomeWithWeight(3, 3.0), Fitness: 1},
	}

	species := Speciate(scored, nil, opts, &nextID)
	assert.Len(t, species, 3)
}

// Speciation with threshold +Inf yields exactly one species.
func TestSpeciate_ThresholdInfinite_OneSpecies(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.SpecieThreshold = 1e18
	nextID := 1

	scored := []Member{
		{Genome: genomeWithWeight(1, 1.0), Fitness: 1},
		{Genome: genomeWithWeight(2, 2.0), Fitness: 1},
		{Genome: genomeWithWeight(3, 300.0), Fitness: 1},
	}

	species := Speciate(scored, nil, opts, &nextID)
	assert.Len(t, species, 1)
}

func TestSpeciate_DropsEmptySpecies(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.SpecieThreshold = 0.01
	nextID := 2 // id 1 is already taken by the stale species

	stale := NewSpecies(1, genomeWithWeight(99, 999.0))
	scored := []Member{
		{Genome: genomeWithWeight(1, 1.0), Fitness: 1},
	}

	species := Speciate(scored, []*Species{stale}, opts, &nextID)
	assert.Len(t, species, 1)
	assert.NotEqual(t, 1, species[0].ID, "stale empty species should have been dropped, new one opened")
}

func TestSpecies_AdjustedFitnessIsMean(t *testing.T) {
	sp := NewSpecies(1, genomeWithWeight(1, 1.0))
	sp.Members = []Member{
		{Genome: genomeWithWeight(1, 1.0), Fitness: 10},
		{Genome: genomeWithWeight(2, 2.0), Fitness: 20},
	}
	assert.Equal(t, 15.0, sp.AdjustedFitness())
}

func TestSpecies_UpdateStagnation(t *testing.T) {
	sp := NewSpecies(1, genomeWithWeight(1, 1.0))
	sp.Members = []Member{{Genome: genomeWithWeight(1, 1.0), Fitness: 5}}
	sp.UpdateStagnation()
	assert.Equal(t, 5.0, sp.BestFitnessEver)
	assert.Equal(t, 0, sp.GenerationsSinceImprovement)

	for i := 0; i < 11; i++ {
		sp.Members = []Member{{Genome: genomeWithWeight(1, 1.0), Fitness: 1}}
		sp.UpdateStagnation()
	}
	assert.True(t, sp.IsStagnant(10))
}

func TestSpecies_ReselectRepresentative_PicksFromMembers(t *testing.T) {
	rng := neat.NewRNG(1)
	sp := NewSpecies(1, genomeWithWeight(1, 1.0))
	sp.Members = []Member{
		{Genome: genomeWithWeight(2, 2.0), Fitness: 10},
		{Genome: genomeWithWeight(3, 3.0), Fitness: 20},
	}

	sp.ReselectRepresentative(rng)

	require.NotNil(t, sp.Representative)
	assert.True(t, sp.Representative.ID == 2 || sp.Representative.ID == 3)
}

func TestSpecies_ReselectRepresentative_NoopWhenEmpty(t *testing.T) {
	rng := neat.NewRNG(1)
	original := genomeWithWeight(1, 1.0)
	sp := NewSpecies(1, original)

	sp.ReselectRepresentative(rng)
	assert.Equal(t, original.ID, sp.Representative.ID)
}
