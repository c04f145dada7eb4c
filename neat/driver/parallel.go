package driver

import (
	"sync"

	"github.com/loom-evo/goneat/neat"
	"github.com/loom-evo/goneat/neat/genetics"
)

type evaluationJob struct {
	index  int
	genome *genetics.Genome
}

type evaluationResult struct {
	index   int
	fitness float64
	err     error
}

// evaluateSequential scores every genome in order on the calling goroutine.
func evaluateSequential(genomes []*genetics.Genome, scenario Scenario) ([]float64, error) {
	fitnesses := make([]float64, len(genomes))
	for i, g := range genomes {
		f, err := scenario.Evaluate(g)
		if err != nil {
			return nil, err
		}
		fitnesses[i] = f
	}
	return fitnesses, nil
}

// evaluateParallel scores genomes across a bounded worker pool, one goroutine
// per worker, fanning jobs in over a channel and fitnesses back over another.
// rng is split once per worker into an independent sub-stream; if scenario
// implements StochasticScenario, each worker evaluates with its own
// sub-stream instead of the plain Evaluate method, so concurrent workers
// never read or advance a shared RNG. Jobs are pulled from a shared queue, so
// which genome lands on which worker (and therefore which draws from that
// worker's sub-stream it consumes) is not itself fixed by seed alone.
// evaluateSequential calls plain Evaluate and never EvaluateStochastic.
func evaluateParallel(genomes []*genetics.Genome, scenario Scenario, workers int, rng *neat.RNG) ([]float64, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(genomes) {
		workers = len(genomes)
	}
	if workers == 0 {
		return nil, nil
	}

	stochastic, isStochastic := scenario.(StochasticScenario)

	jobs := make(chan evaluationJob, len(genomes))
	results := make(chan evaluationResult, len(genomes))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		workerRNG := rng.Split(w)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				var f float64
				var err error
				if isStochastic {
					f, err = stochastic.EvaluateStochastic(job.genome, workerRNG)
				} else {
					f, err = scenario.Evaluate(job.genome)
				}
				results <- evaluationResult{index: job.index, fitness: f, err: err}
			}
		}()
	}

	for i, g := range genomes {
		jobs <- evaluationJob{index: i, genome: g}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	fitnesses := make([]float64, len(genomes))
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		fitnesses[res.index] = res.fitness
	}
	return fitnesses, nil
}
