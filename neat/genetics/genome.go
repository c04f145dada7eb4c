package genetics

import (
	"sort"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/ctrnn"
	"github.com/loom-evo/goneat/neat/innovation"
)

// Genome is an ordered collection of connection genes plus the node counts
// that fix node identity. For a genome with S sensory, A action, and B
// bias/static nodes, the first S ids are sensory, the next A are action, the
// next B are static, and ids beyond that are internal nodes added by
// topology mutation. This indexing never changes across a genome's lifetime
// and is preserved by crossover, because matching innovation ids imply
// matching endpoint ids.
type Genome struct {
	ID int

	NSensory  int
	NAction   int
	NBias     int
	NInternal int

	// Connections is kept sorted by Innovation ascending at all times.
	Connections []*ConnectionGene
}

// TotalNodes is the number of node ids referenced by this genome.
func (g *Genome) TotalNodes() int {
	return g.NSensory + g.NAction + g.NBias + g.NInternal
}

// IsSensory reports whether node is a sensory input.
func (g *Genome) IsSensory(node int) bool {
	return node < g.NSensory
}

// IsAction reports whether node is an action output.
func (g *Genome) IsAction(node int) bool {
	return node >= g.NSensory && node < g.NSensory+g.NAction
}

// IsBias reports whether node is a bias/static node.
func (g *Genome) IsBias(node int) bool {
	start := g.NSensory + g.NAction
	return node >= start && node < start+g.NBias
}

// newInternalNodeID allocates the next internal node id, incrementing NInternal.
func (g *Genome) newInternalNodeID() int {
	id := g.TotalNodes()
	g.NInternal++
	return id
}

// hasConnection reports whether an enabled connection already exists between
// source and target, per the genome invariant that no two enabled
// connections in one genome share the same endpoint pair.
func (g *Genome) hasConnection(source, target int) bool {
	for _, c := range g.Connections {
		if c.Enabled && c.Source == source && c.Target == target {
			return true
		}
	}
	return false
}

func (g *Genome) insertConnection(c *ConnectionGene) {
	g.Connections = append(g.Connections, c)
	sort.Slice(g.Connections, func(i, j int) bool {
		return g.Connections[i].Innovation < g.Connections[j].Innovation
	})
}

// Clone returns a deep, independent copy of the genome: an identical id but
// freshly allocated connection genes, suitable for use as a species
// representative snapshot or as the starting point of a mutation.
func (g *Genome) Clone() *Genome {
	conns := make([]*ConnectionGene, len(g.Connections))
	for i, c := range g.Connections {
		conns[i] = c.Clone()
	}
	return &Genome{
		ID:          g.ID,
		NSensory:    g.NSensory,
		NAction:     g.NAction,
		NBias:       g.NBias,
		NInternal:   g.NInternal,
		Connections: conns,
	}
}

// Genesis compiles the genome into an evaluable CTRNN, wiring every enabled
// connection gene into the dense weight matrix.
func (g *Genome) Genesis(precision int) *ctrnn.Network {
	edges := make([]ctrnn.Edge, 0, len(g.Connections))
	for _, c := range g.Connections {
		if !c.Enabled {
			continue
		}
		edges = append(edges, ctrnn.Edge{Source: c.Source, Target: c.Target, Weight: c.Weight})
	}
	return ctrnn.NewNetwork(g.TotalNodes(), edges, g.NSensory, g.NAction, g.NBias, precision)
}

// NewSeedGenome builds the default initial genome for a scenario with
// nSensory sensory inputs and nAction action outputs, plus a single bias
// node. Every edge from (sensory union bias) to action is created enabled,
// with a weight drawn uniformly from [-3, 3], as required of the default
// population initializer.
func NewSeedGenome(id, nSensory, nAction int, rng *neat.RNG, reg *innovation.Registry) *Genome {
	const nBias = 1
	g := &Genome{ID: id, NSensory: nSensory, NAction: nAction, NBias: nBias}

	biasNode := nSensory + nAction
	sources := make([]int, 0, nSensory+nBias)
	for s := 0; s < nSensory; s++ {
		sources = append(sources, s)
	}
	sources = append(sources, biasNode)

	for _, source := range sources {
		for a := 0; a < nAction; a++ {
			target := nSensory + a
			innov := reg.Intern(source, target)
			g.insertConnection(&ConnectionGene{
				Innovation: innov,
				Source:     source,
				Target:     target,
				Weight:     rng.UniformRange(-3, 3),
				Enabled:    true,
			})
		}
	}
	return g
}
