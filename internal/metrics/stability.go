package metrics

import (
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
	"gonum.org/v1/gonum/floats"
)

// Stability is the fraction of states that are finite and whose largest
// component stays within threshold. 1 means the run never blew up.
type Stability struct {
	name      string
	threshold float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Evaluate(_ dynamo.System, sol *integrators.Solution) float64 {
	if sol == nil || len(sol.U) == 0 {
		return 1.0
	}
	violations := 0
	for _, u := range sol.U {
		if !u.IsValid() || floats.Norm(u, math.Inf(1)) > s.threshold {
			violations++
		}
	}
	return 1.0 - float64(violations)/float64(len(sol.U))
}

// FinalNorm is the Euclidean norm of the last state.
type FinalNorm struct{}

func NewFinalNorm() *FinalNorm { return &FinalNorm{} }

func (FinalNorm) Name() string { return "final_norm" }

func (FinalNorm) Evaluate(_ dynamo.System, sol *integrators.Solution) float64 {
	if sol == nil {
		return 0
	}
	final := sol.Final()
	if len(final) == 0 {
		return 0
	}
	return floats.Norm(final, 2)
}
