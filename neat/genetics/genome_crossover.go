package genetics

import (
	"math"

	"github.com/loom-evo/goneat/neat"
)

// disjointInheritProb is the fixed probability (not separately configurable)
// that a disjoint or excess gene from the less-fit parent is inherited when
// both parents are equally fit, per the crossover contract's literal "0.5".
const disjointInheritProb = 0.5

// Crossover mates parents l and r, whose raw fitnesses are fitnessL and
// fitnessR, producing a child genome with the given id. Matching innovations
// are inherited from the fitter parent by default (randomly, 50/50, when
// parents are equally fit); disjoint and excess genes are inherited from the
// fitter parent, or with 0.5 probability when equally fit, and dropped
// otherwise. The child's node counts are the element-wise max across
// parents, so inherited internal-node ids stay valid.
func Crossover(l, r *Genome, fitnessL, fitnessR float64, rng *neat.RNG, opts *neat.Options, childID int) *Genome {
	child := &Genome{
		ID:        childID,
		NSensory:  maxInt(l.NSensory, r.NSensory),
		NAction:   maxInt(l.NAction, r.NAction),
		NBias:     maxInt(l.NBias, r.NBias),
		NInternal: maxInt(l.NInternal, r.NInternal),
	}

	equalFit := fitnessL == fitnessR
	lFitter := fitnessL > fitnessR

	i, j := 0, 0
	for i < len(l.Connections) || j < len(r.Connections) {
		switch {
		case i >= len(l.Connections):
			// excess/disjoint from r only
			if inheritFromLessFit(equalFit, !lFitter, rng) {
				child.appendInherited(r.Connections[j], false)
			}
			j++
		case j >= len(r.Connections):
			if inheritFromLessFit(equalFit, lFitter, rng) {
				child.appendInherited(l.Connections[i], false)
			}
			i++
		default:
			lg, rg := l.Connections[i], r.Connections[j]
			switch {
			case lg.Innovation == rg.Innovation:
				var chosen *ConnectionGene
				if equalFit {
					if rng.Float64() < opts.ProbabilityPickLessFit {
						chosen = rg
					} else {
						chosen = lg
					}
				} else if lFitter {
					chosen = lg
				} else {
					chosen = rg
				}
				disable := false
				if !lg.Enabled || !rg.Enabled {
					disable = rng.Float64() < opts.ProbabilityKeepDisabled
				}
				child.appendInherited(chosen, disable)
				i++
				j++
			case lg.Innovation < rg.Innovation:
				// disjoint on l
				if inheritFromLessFit(equalFit, lFitter, rng) {
					child.appendInherited(lg, false)
				}
				i++
			default:
				// disjoint on r
				if inheritFromLessFit(equalFit, !lFitter, rng) {
					child.appendInherited(rg, false)
				}
				j++
			}
		}
	}

	return child
}

// inheritFromLessFit decides whether to keep a disjoint/excess gene that
// belongs to the side identified by fromFitterSide: always keep if it is the
// fitter side, coin-flip at disjointInheritProb if equal fitness, otherwise
// drop.
func inheritFromLessFit(equalFit, fromFitterSide bool, rng *neat.RNG) bool {
	if equalFit {
		return rng.Float64() < disjointInheritProb
	}
	return fromFitterSide
}

func (g *Genome) appendInherited(source *ConnectionGene, forceDisabled bool) {
	clone := source.Clone()
	if forceDisabled {
		clone.Enabled = false
	}
	g.Connections = append(g.Connections, clone)
}

// Compatibility computes the compatibility distance between l and r:
// delta = c_e*E + c_d*D + c_w*W, where E is the excess gene count, D the
// disjoint gene count, and W the mean absolute weight difference over
// matching innovations. It is symmetric by construction and does not
// normalize by genome length.
func Compatibility(l, r *Genome, opts *neat.Options) float64 {
	var excess, disjoint, matching float64
	var weightDiffTotal float64

	i, j := 0, 0
	for i < len(l.Connections) || j < len(r.Connections) {
		switch {
		case i >= len(l.Connections):
			excess++
			j++
		case j >= len(r.Connections):
			excess++
			i++
		default:
			lg, rg := l.Connections[i], r.Connections[j]
			switch {
			case lg.Innovation == rg.Innovation:
				matching++
				weightDiffTotal += math.Abs(lg.Weight - rg.Weight)
				i++
				j++
			case lg.Innovation < rg.Innovation:
				disjoint++
				i++
			default:
				disjoint++
				j++
			}
		}
	}

	comp := opts.ExcessCoeff*excess + opts.DisjointCoeff*disjoint
	if matching > 0 {
		comp += opts.MutdiffCoeff * (weightDiffTotal / matching)
	}
	return comp
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
