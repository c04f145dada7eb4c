package population

import (
	"math"
	"sort"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
	"github.com/loom-evo/goneat/neat/innovation"
	"github.com/loom-evo/goneat/neat/speciation"
)

// Reproduce fills allocation offspring slots for sp: the top
// opts.ChampionPreservation members are copied in unchanged;
// ceil(opts.ReproductionCopyRatio * allocation) further slots (at most the
// remaining ones) are asexual clone+mutate (parents sampled uniformly); the
// rest are crossover+mutate (parents sampled in proportion to fitness,
// without replacement within the pair when the species has more than one
// member). Offspring genome ids are drawn from *nextGenomeID, which is
// incremented in place.
func Reproduce(sp *speciation.Species, allocation int, nextGenomeID *int, rng *neat.RNG, reg *innovation.Registry, opts *neat.Options) ([]*genetics.Genome, error) {
	if allocation <= 0 || len(sp.Members) == 0 {
		return nil, nil
	}

	members := make([]speciation.Member, len(sp.Members))
	copy(members, sp.Members)
	sort.Slice(members, func(i, j int) bool { return members[i].Fitness > members[j].Fitness })

	offspring := make([]*genetics.Genome, 0, allocation)

	champions := opts.ChampionPreservation
	if champions > len(members) {
		champions = len(members)
	}
	if champions > allocation {
		champions = allocation
	}
	for i := 0; i < champions; i++ {
		clone := members[i].Genome.Clone()
		clone.ID = *nextGenomeID
		*nextGenomeID++
		offspring = append(offspring, clone)
	}

	remaining := allocation - champions
	copyCount := int(math.Ceil(opts.ReproductionCopyRatio * float64(allocation)))
	if copyCount > remaining {
		copyCount = remaining
	}
	crossCount := remaining - copyCount

	weights := reproductionWeights(members)

	for i := 0; i < copyCount; i++ {
		parent := members[rng.Intn(len(members))].Genome
		child := parent.Clone()
		child.ID = *nextGenomeID
		*nextGenomeID++
		if err := child.Mutate(rng, reg, opts); err != nil {
			return nil, err
		}
		offspring = append(offspring, child)
	}

	for i := 0; i < crossCount; i++ {
		a := rng.WeightedIndex(weights)
		b := rng.WeightedIndex(weights)
		if len(members) > 1 {
			for b == a {
				b = rng.WeightedIndex(weights)
			}
		}
		mom, dad := members[a], members[b]
		child := genetics.Crossover(mom.Genome, dad.Genome, mom.Fitness, dad.Fitness, rng, opts, *nextGenomeID)
		*nextGenomeID++
		if err := child.Mutate(rng, reg, opts); err != nil {
			return nil, err
		}
		offspring = append(offspring, child)
	}

	return offspring, nil
}

// reproductionWeights converts member fitnesses into non-negative sampling
// weights, shifting by the species minimum so an all-negative or all-equal
// fitness distribution still yields a valid (non-degenerate) roulette wheel.
func reproductionWeights(members []speciation.Member) []float64 {
	weights := make([]float64, len(members))
	min := 0.0
	for i, m := range members {
		weights[i] = m.Fitness
		if i == 0 || m.Fitness < min {
			min = m.Fitness
		}
	}
	if min < 0 {
		shift := -min + 1
		for i := range weights {
			weights[i] += shift
		}
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		for i := range weights {
			weights[i] = 1
		}
	}
	return weights
}
