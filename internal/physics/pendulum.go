package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
)

const (
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

// Pendulum is a simple pendulum with optional linear damping.
// State: [theta, omega].
type Pendulum struct {
	Length  float64
	Gravity float64
	Damping float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Length:  DefaultLength,
		Gravity: DefaultGravity,
	}
}

func (p *Pendulum) StateDim() int { return 2 }

func (p *Pendulum) DefaultState() dynamo.State {
	return dynamo.State{math.Pi / 4, 0}
}

func (p *Pendulum) Derive(t float64, x dynamo.State) dynamo.State {
	theta, omega := x[0], x[1]
	alpha := -p.Gravity/p.Length*math.Sin(theta) - p.Damping*omega
	return dynamo.State{omega, alpha}
}

// Energy returns the mechanical energy per unit mass.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	v := p.Length * x[1]
	ke := 0.5 * v * v
	pe := p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

func (p *Pendulum) Params() map[string]float64 {
	return map[string]float64{
		"length":  p.Length,
		"gravity": p.Gravity,
		"damping": p.Damping,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if value <= 0 {
			return fmt.Errorf("%w: length must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		p.Length = value
	case "gravity":
		p.Gravity = value
	case "damping":
		if value < 0 {
			return fmt.Errorf("%w: damping must be non-negative, got %g", dynamo.ErrParameterBounds, value)
		}
		p.Damping = value
	default:
		return fmt.Errorf("%w: pendulum has no %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
