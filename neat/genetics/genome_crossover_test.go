package genetics

import (
	"testing"

	"github.com/loom-evo/goneat/neat"
	"github.com/stretchr/testify/assert"
)

func connGene(innov int64, source, target int, weight float64, enabled bool) *ConnectionGene {
	return &ConnectionGene{Innovation: innov, Source: source, Target: target, Weight: weight, Enabled: enabled}
}

// Two parents share innovations {1, 2, 3}; L has extra {5}, R has extra {4},
// with L the fitter parent. Offspring innovations must be exactly
// {1, 2, 3, 5}.
func TestCrossover_InnovationAlignment(t *testing.T) {
	rng := neat.NewRNG(42)
	opts := neat.DefaultOptions()

	l := &Genome{ID: 1, NSensory: 1, NAction: 1, NBias: 1, Connections: []*ConnectionGene{
		connGene(1, 0, 1, 1.0, true),
		connGene(2, 0, 1, 2.0, true),
		connGene(3, 0, 1, 3.0, true),
		connGene(5, 2, 1, 5.0, true),
	}}
	r := &Genome{ID: 2, NSensory: 1, NAction: 1, NBias: 1, Connections: []*ConnectionGene{
		connGene(1, 0, 1, -1.0, true),
		connGene(2, 0, 1, -2.0, true),
		connGene(3, 0, 1, -3.0, true),
		connGene(4, 2, 1, 4.0, true),
	}}

	child := Crossover(l, r, 10.0, 5.0, rng, opts, 3)

	innovations := make([]int64, len(child.Connections))
	for i, c := range child.Connections {
		innovations[i] = c.Innovation
	}
	assert.ElementsMatch(t, []int64{1, 2, 3, 5}, innovations)
}

// delta must be symmetric: delta(L, R) == delta(R, L).
func TestCompatibility_Symmetric(t *testing.T) {
	opts := neat.DefaultOptions()
	l := &Genome{Connections: []*ConnectionGene{
		connGene(1, 0, 1, 1.0, true),
		connGene(2, 0, 1, 2.0, true),
		connGene(4, 0, 1, 4.0, true),
	}}
	r := &Genome{Connections: []*ConnectionGene{
		connGene(1, 0, 1, 1.5, true),
		connGene(3, 0, 1, 3.0, true),
	}}

	assert.Equal(t, Compatibility(l, r, opts), Compatibility(r, l, opts))
}

func TestCompatibility_IdenticalGenomesAreZero(t *testing.T) {
	opts := neat.DefaultOptions()
	g := &Genome{Connections: []*ConnectionGene{
		connGene(1, 0, 1, 1.0, true),
		connGene(2, 0, 1, 2.0, true),
	}}
	assert.Equal(t, 0.0, Compatibility(g, g.Clone(), opts))
}

// For any two genomes sharing the exact same innovation-id set, crossover
// preserves that set.
func TestCrossover_PreservesSharedInnovationSet(t *testing.T) {
	rng := neat.NewRNG(7)
	opts := neat.DefaultOptions()

	l := &Genome{ID: 1, NSensory: 1, NAction: 1, NBias: 1, Connections: []*ConnectionGene{
		connGene(1, 0, 1, 1.0, true),
		connGene(2, 0, 1, 2.0, true),
		connGene(3, 2, 1, 3.0, true),
	}}
	r := &Genome{ID: 2, NSensory: 1, NAction: 1, NBias: 1, Connections: []*ConnectionGene{
		connGene(1, 0, 1, -1.0, true),
		connGene(2, 0, 1, -2.0, true),
		connGene(3, 2, 1, -3.0, true),
	}}

	child := Crossover(l, r, 1.0, 1.0, rng, opts, 3)
	innovations := make([]int64, len(child.Connections))
	for i, c := range child.Connections {
		innovations[i] = c.Innovation
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, innovations)
}
