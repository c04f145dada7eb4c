package genetics

import (
	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/innovation"
)

// newLinkTries bounds how many random (source, target) pairs mutateAddConnection
// samples before giving up and reporting structural exhaustion. Not externally
// configurable: it only affects how hard the mutator looks for an open slot,
// not the evolutionary dynamics themselves.
const newLinkTries = 20

// toggleProbability is the small, fixed per-connection chance of flipping the
// enabled bit on every call to Mutate, applied independently of the
// roulette-selected structural/weight event (see Mutate). Not externally
// configurable; 0.01 matches the scale classical NEAT implementations use
// for this mutation.
const toggleProbability = 0.01

// Mutate applies exactly one structural or weight-mutation event to the
// genome, chosen by a single roulette throw over
// {NewConnectionProb, BisectProb, MutateConnProb}, then independently rolls
// the toggle/disable mutation on every connection. If the chosen event
// cannot proceed (structural exhaustion), it falls through to the remaining
// events in roulette order rather than leaving the genome unmutated.
func (g *Genome) Mutate(rng *neat.RNG, reg *innovation.Registry, opts *neat.Options) error {
	events := []func() (bool, error){
		func() (bool, error) { return g.mutateAddConnection(rng, reg, opts) },
		func() (bool, error) { return g.mutateBisectConnection(rng, reg, opts) },
		func() (bool, error) { return g.mutateWeights(rng, opts) },
	}
	weights := []float64{opts.NewConnectionProb, opts.BisectProb, opts.MutateConnProb}

	first := rng.WeightedIndex(weights)
	if first < 0 {
		first = 0
	}
	for offset := 0; offset < len(events); offset++ {
		idx := (first + offset) % len(events)
		applied, err := events[idx]()
		if err != nil {
			return err
		}
		if applied {
			break
		}
	}

	_, err := g.mutateToggleEnable(rng)
	return err
}

// mutateAddConnection picks an ordered pair (u, v) such that v is not a
// sensory or bias node and no enabled edge between them exists yet. A pair
// whose interned innovation id the genome already carries (a disabled gene
// from this generation) is skipped, so innovation ids stay unique within the
// genome. It reports (false, nil) — non-fatal — if no valid pair is found
// within newLinkTries attempts.
func (g *Genome) mutateAddConnection(rng *neat.RNG, reg *innovation.Registry, _ *neat.Options) (bool, error) {
	total := g.TotalNodes()
	if total < 2 {
		return false, nil
	}

	for attempt := 0; attempt < newLinkTries; attempt++ {
		source := rng.Intn(total)
		target := rng.Intn(total)
		if g.IsSensory(target) || g.IsBias(target) {
			continue
		}
		if g.hasConnection(source, target) {
			continue
		}

		innov := reg.Intern(source, target)
		duplicate := false
		for _, c := range g.Connections {
			if c.Innovation == innov {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		weight := rng.UniformRange(-3, 3)
		g.insertConnection(&ConnectionGene{
			Innovation: innov,
			Source:     source,
			Target:     target,
			Weight:     weight,
			Enabled:    true,
		})
		return true, nil
	}
	return false, nil
}

// mutateBisectConnection picks an enabled connection (u, v, w), disables it,
// allocates a fresh internal node k, and replaces it with (u, k, 1.0) and
// (k, v, w), preserving the signal path's magnitude.
func (g *Genome) mutateBisectConnection(rng *neat.RNG, reg *innovation.Registry, _ *neat.Options) (bool, error) {
	enabled := make([]*ConnectionGene, 0, len(g.Connections))
	for _, c := range g.Connections {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	if len(enabled) == 0 {
		return false, nil
	}

	chosen := enabled[rng.Intn(len(enabled))]
	chosen.Enabled = false

	k := g.newInternalNodeID()

	innov1 := reg.Intern(chosen.Source, k)
	g.insertConnection(&ConnectionGene{
		Innovation: innov1,
		Source:     chosen.Source,
		Target:     k,
		Weight:     1.0,
		Enabled:    true,
	})

	innov2 := reg.Intern(k, chosen.Target)
	g.insertConnection(&ConnectionGene{
		Innovation: innov2,
		Source:     k,
		Target:     chosen.Target,
		Weight:     chosen.Weight,
		Enabled:    true,
	})

	return true, nil
}

// mutateWeights perturbs every connection's weight: with ParamReplaceProb it
// is replaced by a fresh draw from [-3, 3]; otherwise it is nudged by
// ParamPerturbFactor times a draw from [-3, 3].
func (g *Genome) mutateWeights(rng *neat.RNG, opts *neat.Options) (bool, error) {
	if len(g.Connections) == 0 {
		return false, nil
	}
	for _, c := range g.Connections {
		if rng.Float64() < opts.ParamReplaceProb {
			c.Weight = rng.UniformRange(-3, 3)
		} else {
			c.Weight += opts.ParamPerturbFactor * rng.UniformRange(-3, 3)
		}
	}
	return true, nil
}

// mutateToggleEnable flips the enabled bit on each connection independently
// with probability toggleProbability.
func (g *Genome) mutateToggleEnable(rng *neat.RNG) (bool, error) {
	if len(g.Connections) == 0 {
		return false, nil
	}
	toggled := false
	for _, c := range g.Connections {
		if rng.Float64() < toggleProbability {
			c.Enabled = !c.Enabled
			toggled = true
		}
	}
	return toggled, nil
}
