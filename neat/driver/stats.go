package driver

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FitnessStats holds descriptive statistics over one generation's raw
// fitness values: min, max, mean, and standard deviation.
type FitnessStats struct {
	Min, Max, Mean, StdDev float64
}

// summarize computes FitnessStats over fitnesses. Returns the zero value if
// fitnesses is empty.
func summarize(fitnesses []float64) FitnessStats {
	if len(fitnesses) == 0 {
		return FitnessStats{}
	}
	return FitnessStats{
		Min:    floats.Min(fitnesses),
		Max:    floats.Max(fitnesses),
		Mean:   stat.Mean(fitnesses, nil),
		StdDev: stat.StdDev(fitnesses, nil),
	}
}
