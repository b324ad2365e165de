package integrators

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Euler solves initial-value problems with the explicit Forward Euler method.
// The initial condition is the only state it keeps between calls; every Solve
// allocates its own grid and trajectory.
type Euler struct {
	f   dynamo.System
	u0  dynamo.State
	dim int
}

func New(f dynamo.System) *Euler {
	return &Euler{f: f}
}

// SetInitialCondition sets a vector initial condition. The trajectory width
// is len(u0).
func (e *Euler) SetInitialCondition(u0 dynamo.State) error {
	if len(u0) == 0 {
		return dynamo.ErrEmptyState
	}
	e.u0 = u0.Clone()
	e.dim = len(u0)
	return nil
}

// SetScalarInitialCondition sets the initial condition of a scalar ODE.
func (e *Euler) SetScalarInitialCondition(u0 float64) {
	e.u0 = dynamo.State{u0}
	e.dim = 1
}

// Dim returns the number of equations, or 0 before an initial condition is set.
func (e *Euler) Dim() int { return e.dim }

// Solve integrates over tSpan = [t0, T] using n uniform steps of
// dt = (T - t0) / n. The returned solution holds n+1 time points and states.
func (e *Euler) Solve(tSpan [2]float64, n int) (*Solution, error) {
	if e.dim == 0 {
		return nil, dynamo.ErrNoInitialCondition
	}
	if e.f == nil {
		return nil, dynamo.ErrNilSystem
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", dynamo.ErrInvalidSteps, n)
	}

	t0, tEnd := tSpan[0], tSpan[1]
	if math.IsNaN(t0) || math.IsInf(t0, 0) || math.IsNaN(tEnd) || math.IsInf(tEnd, 0) {
		return nil, fmt.Errorf("%w: non-finite span [%g, %g]", dynamo.ErrInvalidSpan, t0, tEnd)
	}
	if tEnd <= t0 {
		return nil, fmt.Errorf("%w: got [%g, %g]", dynamo.ErrInvalidSpan, t0, tEnd)
	}

	dt := (tEnd - t0) / float64(n)
	if t0+dt == t0 {
		return nil, fmt.Errorf("%w: step %g below time resolution at t0=%g", dynamo.ErrInvalidSpan, dt, t0)
	}

	t := make([]float64, n+1)
	u := make([]dynamo.State, n+1)
	t[0] = t0
	u[0] = e.u0.Clone()

	for i := 0; i < n; i++ {
		t[i+1] = t[i] + dt
		next, err := Advance(e.f, t[i], u[i], dt)
		if err != nil {
			var de *dynamo.DerivativeError
			if errors.As(err, &de) {
				de.Step = i
			}
			return nil, err
		}
		u[i+1] = next
	}

	return &Solution{T: t, U: u, Dt: dt, Dim: e.dim}, nil
}

// Advance applies one Forward Euler step: u + dt*f(t, u).
// It does not modify u.
func Advance(f dynamo.System, t float64, u dynamo.State, dt float64) (dynamo.State, error) {
	raw := f.Derive(t, u)
	next, err := dynamo.Normalize(raw, len(u))
	if err != nil {
		return nil, &dynamo.DerivativeError{Time: t, Expected: len(u), Got: len(raw), Wrapped: err}
	}
	floats.AddScaledTo(next, u, dt, next)
	return next, nil
}

// SolveScalar integrates the scalar ODE du/dt = f(t, u) from u(t0) = u0.
func SolveScalar(f dynamo.ScalarFunc, u0 float64, tSpan [2]float64, n int) (*Solution, error) {
	e := New(f)
	e.SetScalarInitialCondition(u0)
	return e.Solve(tSpan, n)
}
