package physics

import (
	"fmt"

	"github.com/san-kum/fwdeuler/internal/dynamo"
)

// VanDerPol is the self-excited oscillator x_tt - mu(1 - x^2)x_t + x = 0,
// written as the first-order system [x, x'].
//
// For mu > 0 every non-zero start converges to a limit cycle of amplitude
// close to 2. Large mu makes the system stiff, and Forward Euler then
// needs a very small step.
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol { return &VanDerPol{Mu: 1} }

func (vp *VanDerPol) StateDim() int { return 2 }

// DefaultState starts on the unit-mu limit cycle's turning point.
func (vp *VanDerPol) DefaultState() dynamo.State { return dynamo.State{2, 0} }

func (vp *VanDerPol) Derive(_ float64, u dynamo.State) dynamo.State {
	x, v := u[0], u[1]
	return dynamo.State{v, vp.Mu*(1-x*x)*v - x}
}

func (vp *VanDerPol) Params() map[string]float64 {
	return map[string]float64{"mu": vp.Mu}
}

func (vp *VanDerPol) SetParam(name string, value float64) error {
	switch name {
	case "mu":
		if value < 0 {
			return fmt.Errorf("%w: mu must be non-negative, got %g", dynamo.ErrParameterBounds, value)
		}
		vp.Mu = value
	default:
		return fmt.Errorf("%w: vanderpol has no %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
