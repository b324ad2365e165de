package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
)

// SpringMass is a single mass on a linear spring with viscous damping.
// State: [x, v].
type SpringMass struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewSpringMass() *SpringMass {
	return &SpringMass{
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
	}
}

func (s *SpringMass) StateDim() int { return 2 }

func (s *SpringMass) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (s *SpringMass) Derive(t float64, x dynamo.State) dynamo.State {
	pos, vel := x[0], x[1]
	return dynamo.State{vel, -(s.Stiffness*pos + s.Damping*vel) / s.Mass}
}

func (s *SpringMass) Energy(x dynamo.State) float64 {
	return 0.5*s.Mass*x[1]*x[1] + 0.5*s.Stiffness*x[0]*x[0]
}

// Exact returns the closed-form underdamped solution. It returns nil when
// the oscillator is critically damped or overdamped.
func (s *SpringMass) Exact(t, t0 float64, u0 dynamo.State) dynamo.State {
	w0 := math.Sqrt(s.Stiffness / s.Mass)
	zeta := s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
	if zeta >= 1 {
		return nil
	}

	wd := w0 * math.Sqrt(1-zeta*zeta)
	sigma := zeta * w0
	tau := t - t0
	x0, v0 := u0[0], u0[1]

	a := x0
	b := (v0 + sigma*x0) / wd
	sin, cos := math.Sincos(wd * tau)
	env := math.Exp(-sigma * tau)

	x := env * (a*cos + b*sin)
	v := env * ((b*wd-sigma*a)*cos - (a*wd+sigma*b)*sin)
	return dynamo.State{x, v}
}

func (s *SpringMass) Params() map[string]float64 {
	return map[string]float64{
		"mass":      s.Mass,
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
	}
}

func (s *SpringMass) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if value <= 0 {
			return fmt.Errorf("%w: mass must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		s.Mass = value
	case "stiffness":
		if value <= 0 {
			return fmt.Errorf("%w: stiffness must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		s.Stiffness = value
	case "damping":
		if value < 0 {
			return fmt.Errorf("%w: damping must be non-negative, got %g", dynamo.ErrParameterBounds, value)
		}
		s.Damping = value
	default:
		return fmt.Errorf("%w: spring_mass has no %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
