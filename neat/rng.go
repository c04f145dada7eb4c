package neat

import (
	"hash/fnv"
	"math/rand"
)

// RNG is the single deterministic pseudo-random source owned by the driver
// for the duration of a run. Sub-passes receive a mutable borrow; parallel
// evaluation workers receive a distinct sub-stream via Split instead.
type RNG struct {
	source *rand.Rand
}

// NewRNG seeds a fresh deterministic source.
func NewRNG(seed int64) *RNG {
	return &RNG{source: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform integer in [0, n).
func (r *RNG) Intn(n int) int {
	return r.source.Intn(n)
}

// Float64 returns a uniform real in [0, 1).
func (r *RNG) Float64() float64 {
	return r.source.Float64()
}

// UniformRange returns a uniform real in [lo, hi).
func (r *RNG) UniformRange(lo, hi float64) float64 {
	return lo + r.source.Float64()*(hi-lo)
}

// Sign returns +1 or -1 with equal probability.
func (r *RNG) Sign() float64 {
	if r.source.Intn(2) == 0 {
		return -1.0
	}
	return 1.0
}

// WeightedIndex performs a single throw onto a roulette wheel whose segments
// are sized by weights, returning the chosen index. Mirrors the classical
// NEAT SingleRouletteThrow: segment i is selected with probability
// weights[i] / sum(weights). Returns -1 if weights is empty or sums to <= 0.
func (r *RNG) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	throw := r.source.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if throw <= acc {
			return i
		}
	}
	return len(weights) - 1
}

// Split derives a distinct sub-RNG for parallel-evaluation worker index idx,
// advancing the receiver's stream in the process. Because the receiver's
// stream is itself deterministic for a fixed seed, a fixed sequence of Split
// calls (one per worker, in worker-index order) always yields the same set
// of sub-streams run to run.
func (r *RNG) Split(idx int) *RNG {
	h := fnv.New64a()
	seedBytes := make([]byte, 8)
	seed := r.source.Int63()
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(seed >> (8 * i))
	}
	_, _ = h.Write(seedBytes)
	idxBytes := make([]byte, 8)
	for i := 0; i < 8; i++ {
		idxBytes[i] = byte(int64(idx) >> (8 * i))
	}
	_, _ = h.Write(idxBytes)
	return NewRNG(int64(h.Sum64()))
}
