package metrics

import (
	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
)

// Metric summarizes a finished trajectory as a single number.
type Metric interface {
	Name() string
	Evaluate(sys dynamo.System, sol *integrators.Solution) float64
}

func Defaults() []Metric {
	return []Metric{
		NewEnergyDrift(),
		NewStability(1e6),
		NewFinalNorm(),
	}
}

// Evaluate runs every metric over sol, keyed by metric name.
func Evaluate(sys dynamo.System, sol *integrators.Solution, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Evaluate(sys, sol)
	}
	return out
}
