package integrators

import (
	"fmt"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Solution is a trajectory aligned index-for-index with its time grid.
type Solution struct {
	T   []float64
	U   []dynamo.State
	Dt  float64
	Dim int
}

func (s *Solution) Len() int { return len(s.T) }

// Steps returns the number of steps taken, one less than Len.
func (s *Solution) Steps() int { return len(s.T) - 1 }

func (s *Solution) Final() dynamo.State {
	if len(s.U) == 0 {
		return nil
	}
	return s.U[len(s.U)-1]
}

// Column returns component i of every state.
func (s *Solution) Column(i int) ([]float64, error) {
	if i < 0 || i >= s.Dim {
		return nil, fmt.Errorf("%w: component %d of %d", dynamo.ErrDimensionMismatch, i, s.Dim)
	}
	col := make([]float64, len(s.U))
	for n, u := range s.U {
		col[n] = u[i]
	}
	return col, nil
}

// Scalar returns the 1-D trajectory of a scalar ODE.
func (s *Solution) Scalar() ([]float64, error) {
	if s.Dim != 1 {
		return nil, fmt.Errorf("%w: dimension %d", dynamo.ErrNotScalar, s.Dim)
	}
	return s.Column(0)
}

// Matrix returns the trajectory as a (Len × Dim) dense matrix.
func (s *Solution) Matrix() *mat.Dense {
	data := make([]float64, 0, len(s.U)*s.Dim)
	for _, u := range s.U {
		data = append(data, u...)
	}
	return mat.NewDense(len(s.U), s.Dim, data)
}
