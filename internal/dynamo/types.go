package dynamo

import (
	"math"
)

// State holds the unknowns of the system at one instant.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is the right-hand side of du/dt = f(t, u).
type System interface {
	Derive(t float64, u State) State
}

// SystemFunc adapts an ordinary function to System.
type SystemFunc func(t float64, u State) State

func (f SystemFunc) Derive(t float64, u State) State {
	return f(t, u)
}

// ScalarFunc adapts a scalar ODE du/dt = f(t, u) to System. The state it
// receives and returns has exactly one component.
type ScalarFunc func(t, u float64) float64

func (f ScalarFunc) Derive(t float64, u State) State {
	if len(u) == 0 {
		return nil
	}
	return State{f(t, u[0])}
}

// Dimensioned is implemented by systems with a fixed state width.
type Dimensioned interface {
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

// Exact is implemented by systems with a closed-form solution.
type Exact interface {
	Exact(t float64, t0 float64, u0 State) State
}

type ExactSystem interface {
	System
	Exact
}

type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Normalize copies du into a fresh State of width dim. A result of any
// other width is rejected with ErrDimensionMismatch.
func Normalize(du State, dim int) (State, error) {
	if len(du) != dim {
		return nil, ErrDimensionMismatch
	}
	return du.Clone(), nil
}
