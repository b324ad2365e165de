package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
)

// Decay is the scalar linear ODE du/dt = Rate*u.
type Decay struct {
	Rate float64
}

func NewDecay() *Decay {
	return &Decay{Rate: -1.0}
}

func (d *Decay) StateDim() int { return 1 }

func (d *Decay) DefaultState() dynamo.State { return dynamo.State{1.0} }

func (d *Decay) Derive(t float64, u dynamo.State) dynamo.State {
	return dynamo.State{d.Rate * u[0]}
}

func (d *Decay) Exact(t, t0 float64, u0 dynamo.State) dynamo.State {
	return dynamo.State{u0[0] * math.Exp(d.Rate*(t-t0))}
}

func (d *Decay) Params() map[string]float64 {
	return map[string]float64{"rate": d.Rate}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "rate" {
		return fmt.Errorf("%w: decay has no %q", dynamo.ErrUnknownParam, name)
	}
	d.Rate = value
	return nil
}
