// Package ctrnn implements the continuous-time recurrent neural network
// evaluator: a dense weight matrix stepped by forward Euler integration to
// turn sensory input into action output, carrying state between calls so
// recurrent connections are natural.
package ctrnn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// steepness is the fixed constant of the steepened sigmoid activation, per
// the CTRNN evaluator contract: sigma(z) = 1 / (1 + exp(-steepness*z)).
const steepness = 4.9

// defaultTimeConstant is tau for every node unless overridden.
const defaultTimeConstant = 0.1

// Edge is one directed, weighted connection compiled from an enabled genome
// connection gene.
type Edge struct {
	Source, Target int
	Weight         float64
}

// Network is a compiled, directly-evaluable CTRNN. All buffers are allocated
// once at construction and reused across every micro-step and every input
// application for the lifetime of the network, per the evaluator's
// performance contract.
type Network struct {
	n int

	sensoryCount int
	actionCount  int
	biasCount    int

	w     *mat.Dense   // n x n weight matrix
	y     *mat.VecDense // state vector, persists across Activate calls
	theta []float64     // 1 for bias/static nodes, 0 elsewhere
	tau   []float64     // per-node time constant

	// scratch, reused every micro-step
	a  *mat.VecDense // sigma(y + theta)
	wa *mat.VecDense // W * a

	precision int
}

// NewNetwork compiles a dense CTRNN from totalNodes nodes and the given
// edges. Node indices below sensoryCount are sensory, the next actionCount
// are action outputs, the next biasCount are bias/static (theta = 1), and
// any remaining indices are internal nodes added by topology mutation.
func NewNetwork(totalNodes int, edges []Edge, sensoryCount, actionCount, biasCount, precision int) *Network {
	w := mat.NewDense(totalNodes, totalNodes, nil)
	for _, e := range edges {
		w.Set(e.Target, e.Source, e.Weight)
	}

	theta := make([]float64, totalNodes)
	for i := sensoryCount + actionCount; i < sensoryCount+actionCount+biasCount; i++ {
		theta[i] = 1.0
	}

	tau := make([]float64, totalNodes)
	for i := range tau {
		tau[i] = defaultTimeConstant
	}

	return &Network{
		n:            totalNodes,
		sensoryCount: sensoryCount,
		actionCount:  actionCount,
		biasCount:    biasCount,
		w:            w,
		y:            mat.NewVecDense(totalNodes, nil),
		theta:        theta,
		tau:          tau,
		a:            mat.NewVecDense(totalNodes, nil),
		wa:           mat.NewVecDense(totalNodes, nil),
		precision:    precision,
	}
}

// Reset zeroes the state vector, as if the network had never been activated.
func (net *Network) Reset() {
	for i := 0; i < net.n; i++ {
		net.y.SetVec(i, 0)
	}
}

// Activate clamps inputs into the sensory slots and integrates the network
// for Precision Euler micro-steps, returning the raw (unsquashed) state at
// the action indices. State carries between calls, which is what makes
// recurrent connections meaningful.
func (net *Network) Activate(inputs []float64) []float64 {
	for step := 0; step < net.precision; step++ {
		for i, x := range inputs {
			if i >= net.sensoryCount {
				break
			}
			net.y.SetVec(i, x)
		}
		for i := 0; i < net.n; i++ {
			z := net.y.AtVec(i) + net.theta[i]
			net.a.SetVec(i, steepenedSigmoid(z))
		}
		net.wa.MulVec(net.w, net.a)
		for i := 0; i < net.n; i++ {
			net.y.SetVec(i, net.y.AtVec(i)+net.tau[i]*(net.wa.AtVec(i)-net.y.AtVec(i)))
		}
	}

	out := make([]float64, net.actionCount)
	for i := 0; i < net.actionCount; i++ {
		out[i] = net.y.AtVec(net.sensoryCount + i)
	}
	return out
}

func steepenedSigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-steepness*z))
}
