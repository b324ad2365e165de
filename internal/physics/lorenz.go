package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
)

// Lorenz is the 1963 convection model with state [x, y, z]:
//
//	x' = sigma(y - x)
//	y' = x(rho - z) - y
//	z' = xy - beta z
type Lorenz struct {
	Sigma float64
	Rho   float64
	Beta  float64
}

func NewLorenz() *Lorenz {
	return &Lorenz{Sigma: 10, Rho: 28, Beta: 8.0 / 3.0}
}

func (l *Lorenz) StateDim() int { return 3 }

func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{1, 1, 1} }

func (l *Lorenz) Derive(_ float64, u dynamo.State) dynamo.State {
	x, y, z := u[0], u[1], u[2]
	return dynamo.State{
		l.Sigma * (y - x),
		x*(l.Rho-z) - y,
		x*y - l.Beta*z,
	}
}

// FixedPoints returns the equilibria: the origin, plus the two convection
// states C± when rho > 1.
func (l *Lorenz) FixedPoints() []dynamo.State {
	points := []dynamo.State{{0, 0, 0}}
	if l.Rho > 1 {
		r := math.Sqrt(l.Beta * (l.Rho - 1))
		points = append(points,
			dynamo.State{r, r, l.Rho - 1},
			dynamo.State{-r, -r, l.Rho - 1},
		)
	}
	return points
}

func (l *Lorenz) Params() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(name string, value float64) error {
	switch name {
	case "sigma":
		l.Sigma = value
	case "rho":
		l.Rho = value
	case "beta":
		if value <= 0 {
			return fmt.Errorf("%w: beta must be positive, got %g", dynamo.ErrParameterBounds, value)
		}
		l.Beta = value
	default:
		return fmt.Errorf("%w: lorenz has no %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
