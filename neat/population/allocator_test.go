package population

import (
	"testing"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
	"github.com/loom-evo/goneat/neat/speciation"
	"github.com/stretchr/testify/assert"
)

func speciesWithFitness(id int, fitnesses ...float64) *speciation.Species {
	seed := &genetics.Genome{ID: id * 1000}
	sp := speciation.NewSpecies(id, seed)
	for i, f := range fitnesses {
		sp.Members = append(sp.Members, speciation.Member{
			Genome:  &genetics.Genome{ID: id*1000 + i},
			Fitness: f,
		})
	}
	return sp
}

func TestAllocate_ExactProportionalSplit(t *testing.T) {
	opts := neat.DefaultOptions()
	species := []*speciation.Species{
		speciesWithFitness(1, 10.0),
		speciesWithFitness(2, 5.0),
		speciesWithFitness(3, 3.0),
	}

	alloc := Allocate(species, 1000, -1, opts)
	assert.Equal(t, []int{555, 278, 167}, alloc)

	sum := 0
	for _, a := range alloc {
		sum += a
	}
	assert.Equal(t, 1000, sum)
}

func TestAllocate_NegativeFitnessShiftedPositive(t *testing.T) {
	opts := neat.DefaultOptions()
	species := []*speciation.Species{
		speciesWithFitness(1, -5.0),
		speciesWithFitness(2, 10.0),
	}

	alloc := Allocate(species, 1000, -1, opts)
	sum := 0
	for _, a := range alloc {
		sum += a
	}
	assert.Equal(t, 1000, sum)
	assert.Greater(t, alloc[1], alloc[0])
}

func TestAllocate_AllZeroFitnessSplitsEvenly(t *testing.T) {
	opts := neat.DefaultOptions()
	species := []*speciation.Species{
		speciesWithFitness(1, 0.0),
		speciesWithFitness(2, 0.0),
	}

	alloc := Allocate(species, 100, -1, opts)
	assert.Equal(t, []int{50, 50}, alloc)
}

func TestAllocate_NoNegativeOrFractionalSlots(t *testing.T) {
	opts := neat.DefaultOptions()
	species := []*speciation.Species{
		speciesWithFitness(1, 1.0),
		speciesWithFitness(2, 2.0),
		speciesWithFitness(3, 7.0),
	}

	alloc := Allocate(species, 17, -1, opts)
	sum := 0
	for _, a := range alloc {
		assert.GreaterOrEqual(t, a, 0)
		sum += a
	}
	assert.Equal(t, 17, sum)
}

func TestAllocate_StagnantSpeciesForcedToZero(t *testing.T) {
	opts := neat.DefaultOptions()
	stagnant := speciesWithFitness(1, 10.0)
	stagnant.UpdateStagnation() // records 10.0 as the best-ever fitness
	for i := 0; i <= opts.NoImprovementTruncate; i++ {
		stagnant.Members = []speciation.Member{{Genome: &genetics.Genome{ID: 1}, Fitness: 1.0}}
		stagnant.UpdateStagnation()
	}
	active := speciesWithFitness(2, 1.0)

	alloc := Allocate([]*speciation.Species{stagnant, active}, 100, -1, opts)
	assert.Equal(t, 0, alloc[0])
	assert.Equal(t, 100, alloc[1])
}

func TestAllocate_StagnantSpeciesKeepsGlobalBest(t *testing.T) {
	opts := neat.DefaultOptions()
	stagnant := speciesWithFitness(1, 10.0)
	stagnant.UpdateStagnation() // records 10.0 as the best-ever fitness
	for i := 0; i <= opts.NoImprovementTruncate; i++ {
		stagnant.Members = []speciation.Member{{Genome: &genetics.Genome{ID: 1}, Fitness: 1.0}}
		stagnant.UpdateStagnation()
	}
	active := speciesWithFitness(2, 1.0)

	// holding the global best exempts it, so it keeps its proportional share
	alloc := Allocate([]*speciation.Species{stagnant, active}, 100, 1, opts)
	assert.Equal(t, 50, alloc[0])
}

func TestAllocate_SingleSpeciesGetsEverything(t *testing.T) {
	opts := neat.DefaultOptions()
	species := []*speciation.Species{speciesWithFitness(1, 5.0)}

	alloc := Allocate(species, 42, -1, opts)
	assert.Equal(t, []int{42}, alloc)
}
