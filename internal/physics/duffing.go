package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
)

// Duffing is the periodically forced oscillator
//
//	x'' + delta x' + alpha x + beta x^3 = gamma cos(omega t)
//
// with state [x, x']. It is the one model whose derivative depends on t.
// The defaults give the chaotic double-well regime.
type Duffing struct {
	Alpha float64
	Beta  float64
	Delta float64
	Gamma float64
	Omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{Alpha: -1, Beta: 1, Delta: 0.3, Gamma: 0.5, Omega: 1.2}
}

func (d *Duffing) StateDim() int { return 2 }

func (d *Duffing) DefaultState() dynamo.State { return dynamo.State{1, 0} }

func (d *Duffing) Derive(t float64, u dynamo.State) dynamo.State {
	x, v := u[0], u[1]
	restoring := d.Alpha*x + d.Beta*x*x*x
	return dynamo.State{v, d.Gamma*math.Cos(d.Omega*t) - d.Delta*v - restoring}
}

// Energy is the kinetic plus potential energy of the unforced, undamped
// oscillator.
func (d *Duffing) Energy(u dynamo.State) float64 {
	x, v := u[0], u[1]
	x2 := x * x
	return 0.5*v*v + 0.5*d.Alpha*x2 + 0.25*d.Beta*x2*x2
}

func (d *Duffing) Params() map[string]float64 {
	return map[string]float64{
		"alpha": d.Alpha,
		"beta":  d.Beta,
		"delta": d.Delta,
		"gamma": d.Gamma,
		"omega": d.Omega,
	}
}

func (d *Duffing) SetParam(name string, value float64) error {
	switch name {
	case "alpha":
		d.Alpha = value
	case "beta":
		d.Beta = value
	case "delta":
		if value < 0 {
			return fmt.Errorf("%w: delta must be non-negative, got %g", dynamo.ErrParameterBounds, value)
		}
		d.Delta = value
	case "gamma":
		d.Gamma = value
	case "omega":
		d.Omega = value
	default:
		return fmt.Errorf("%w: duffing has no %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
