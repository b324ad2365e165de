package metrics

import (
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
)

// EnergyDrift is the largest relative energy error over the trajectory,
// max |E(u[n]) - E(u[0])| / |E(u[0])|. Systems without an energy report 0.
type EnergyDrift struct {
	name string
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Evaluate(sys dynamo.System, sol *integrators.Solution) float64 {
	h, ok := sys.(dynamo.Hamiltonian)
	if !ok || sol == nil || len(sol.U) == 0 {
		return 0
	}

	initial := h.Energy(sol.U[0])
	scale := math.Abs(initial)
	if scale == 0 {
		scale = 1
	}

	maxDrift := 0.0
	for _, u := range sol.U[1:] {
		drift := math.Abs(h.Energy(u)-initial) / scale
		if math.IsNaN(drift) {
			return math.Inf(1)
		}
		maxDrift = math.Max(maxDrift, drift)
	}
	return maxDrift
}
