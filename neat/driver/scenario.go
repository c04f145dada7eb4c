// Package driver runs the generational loop: evaluate, speciate, check
// termination, allocate, reproduce, repeat. It depends downward on every
// other neat subpackage and is the only one that owns a full generation's
// control flow.
package driver

import (
	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
)

// Activator evaluates one genome's compiled network against a task and
// returns its raw fitness. It is the single point where a scenario's domain
// logic enters the driver; everything downstream of Activate operates only
// on fitness values and genome structure.
type Activator func(g *genetics.Genome) (fitness float64, err error)

// Scenario supplies everything the driver needs to run a population: how
// many sensory inputs and action outputs a genome has, and how to score one.
type Scenario interface {
	SensoryCount() int
	ActionCount() int
	Evaluate(g *genetics.Genome) (fitness float64, err error)
}

// StochasticScenario is an optional extension a Scenario may implement when
// its evaluation draws randomness of its own (e.g. sampling a noisy
// environment, stochastic rollouts). When present, evaluateParallel calls
// EvaluateStochastic with the calling worker's private RNG sub-stream
// instead of Evaluate, so concurrent workers never share RNG state. Which
// genome is scored on which worker's sub-stream depends on scheduling, so a
// fixed seed does not by itself fix each genome's draws. evaluateSequential
// always calls Evaluate.
type StochasticScenario interface {
	Scenario
	EvaluateStochastic(g *genetics.Genome, rng *neat.RNG) (fitness float64, err error)
}

// FuncScenario adapts a bare Activator function into a Scenario, for
// simple scenarios with no state beyond their node counts.
type FuncScenario struct {
	Sensory, Action int
	Activator       Activator
}

// SensoryCount implements Scenario.
func (f FuncScenario) SensoryCount() int { return f.Sensory }

// ActionCount implements Scenario.
func (f FuncScenario) ActionCount() int { return f.Action }

// Evaluate implements Scenario.
func (f FuncScenario) Evaluate(g *genetics.Genome) (float64, error) { return f.Activator(g) }
