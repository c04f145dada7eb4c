package genetics

import (
	"testing"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/innovation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedGenome_FullyConnected(t *testing.T) {
	rng := neat.NewRNG(1)
	reg := innovation.NewRegistry(0)

	g := NewSeedGenome(1, 2, 1, rng, reg)

	// 2 sensory + 1 bias, each wired to the single action node.
	require.Len(t, g.Connections, 3)
	for _, c := range g.Connections {
		assert.True(t, c.Enabled)
		assert.True(t, g.IsAction(c.Target))
		assert.False(t, g.IsSensory(c.Target))
		assert.False(t, g.IsBias(c.Target))
		assert.GreaterOrEqual(t, c.Weight, -3.0)
		assert.LessOrEqual(t, c.Weight, 3.0)
	}
	assert.Equal(t, 4, g.TotalNodes())
}

func TestGenome_Clone_IsIndependent(t *testing.T) {
	rng := neat.NewRNG(2)
	reg := innovation.NewRegistry(0)
	g := NewSeedGenome(1, 1, 1, rng, reg)

	clone := g.Clone()
	clone.Connections[0].Weight = 999

	assert.NotEqual(t, g.Connections[0].Weight, clone.Connections[0].Weight)
}

func TestGenome_Genesis_BuildsUsableNetwork(t *testing.T) {
	rng := neat.NewRNG(3)
	reg := innovation.NewRegistry(0)
	g := NewSeedGenome(1, 2, 1, rng, reg)

	net := g.Genesis(10)
	out := net.Activate([]float64{0.5, 0.5})
	assert.Len(t, out, 1)
}

func TestGenome_MutationEndpointsStayValid(t *testing.T) {
	rng := neat.NewRNG(4)
	reg := innovation.NewRegistry(0)
	opts := neat.DefaultOptions()
	g := NewSeedGenome(1, 3, 2, rng, reg)

	for i := 0; i < 200; i++ {
		require.NoError(t, g.Mutate(rng, reg, opts))
		total := g.TotalNodes()
		for _, c := range g.Connections {
			assert.Less(t, c.Source, total)
			assert.Less(t, c.Target, total)
			assert.False(t, g.IsSensory(c.Target))
			assert.False(t, g.IsBias(c.Target))
		}
	}
}
