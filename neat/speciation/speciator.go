package speciation

import (
	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
)

// Speciate partitions scored into species, reusing the representatives
// carried over in species (whose Members are assumed already cleared by the
// caller) and opening new species as needed via nextSpeciesID. Each genome is
// placed into the first species whose representative is within
// opts.SpecieThreshold compatibility distance — first-match, not
// nearest-match, by design: it avoids a quadratic pass and matches classical
// NEAT. Species left with no members after placement are dropped from the
// returned list.
func Speciate(scored []Member, species []*Species, opts *neat.Options, nextSpeciesID *int) []*Species {
	for _, m := range scored {
		placed := false
		for _, sp := range species {
			if genetics.Compatibility(m.Genome, sp.Representative, opts) < opts.SpecieThreshold {
				sp.Members = append(sp.Members, m)
				placed = true
				break
			}
		}
		if !placed {
			sp := NewSpecies(*nextSpeciesID, m.Genome)
			*nextSpeciesID++
			sp.Members = append(sp.Members, m)
			species = append(species, sp)
		}
	}

	survivors := species[:0]
	for _, sp := range species {
		if len(sp.Members) > 0 {
			survivors = append(survivors, sp)
		}
	}
	return survivors
}
