// Package population turns a speciated, scored generation into the next
// generation's genomes: slot allocation across species, then reproduction
// within each species.
package population

import (
	"sort"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/speciation"
)

// Allocate distributes target slots across species in proportion to adjusted
// fitness, using Hamilton's largest-remainder method so the allocation sums
// to exactly target. Species whose GenerationsSinceImprovement exceeds
// opts.NoImprovementTruncate are forced to zero slots unless they contain the
// genome matching globalBestID, which always keeps at least one slot.
//
// The returned slice is aligned index-for-index with species.
func Allocate(species []*speciation.Species, target int, globalBestID int, opts *neat.Options) []int {
	n := len(species)
	allocation := make([]int, n)
	if n == 0 || target <= 0 {
		return allocation
	}

	// Stagnant species without the global best get no slots; the rest share the whole target.
	live := make([]*speciation.Species, 0, n)
	liveIdx := make([]int, 0, n)
	for i, sp := range species {
		if !sp.IsStagnant(opts.NoImprovementTruncate) || containsGenome(sp, globalBestID) {
			live = append(live, sp)
			liveIdx = append(liveIdx, i)
		}
	}
	if len(live) < n {
		for j, a := range Allocate(live, target, globalBestID, opts) {
			allocation[liveIdx[j]] = a
		}
		return allocation
	}

	adjusted := make([]float64, n)
	minAdjusted := 0.0
	for i, sp := range species {
		adjusted[i] = sp.AdjustedFitness()
		if i == 0 || adjusted[i] < minAdjusted {
			minAdjusted = adjusted[i]
		}
	}
	if minAdjusted < 0 {
		shift := -minAdjusted + 1
		for i := range adjusted {
			adjusted[i] += shift
		}
	}

	total := 0.0
	for _, v := range adjusted {
		total += v
	}

	if total == 0 {
		base := target / n
		remainder := target % n
		for i := range allocation {
			allocation[i] = base
			if i < remainder {
				allocation[i]++
			}
		}
	} else {
		exact := make([]float64, n)
		assigned := 0
		for i, v := range adjusted {
			exact[i] = float64(target) * v / total
			allocation[i] = int(exact[i])
			assigned += allocation[i]
		}

		leftover := target - assigned
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			fa := exact[order[a]] - float64(allocation[order[a]])
			fb := exact[order[b]] - float64(allocation[order[b]])
			return fa > fb
		})
		for i := 0; i < leftover; i++ {
			allocation[order[i]]++
		}
	}

	for i, sp := range species {
		if !sp.IsStagnant(opts.NoImprovementTruncate) {
			continue
		}
		if containsGenome(sp, globalBestID) {
			if allocation[i] == 0 {
				allocation[i] = 1
			}
			continue
		}
		allocation[i] = 0
	}

	return allocation
}

func containsGenome(sp *speciation.Species, genomeID int) bool {
	for _, m := range sp.Members {
		if m.Genome.ID == genomeID {
			return true
		}
	}
	return false
}
