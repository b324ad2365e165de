package analysis

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/fwdeuler/internal/dynamo"
	"github.com/san-kum/fwdeuler/internal/integrators"
	"gonum.org/v1/gonum/floats"
)

var ErrNoExactSolution = errors.New("analysis: system has no closed-form solution for these parameters")

// ConvergencePoint is the error of one solve in a refinement study.
type ConvergencePoint struct {
	Steps int
	Dt    float64
	Error float64
	// MaxError is the largest error over the whole trajectory.
	MaxError float64
	// Order is log(e_prev/e)/log(dt_prev/dt) against the previous point,
	// NaN for the first point.
	Order float64
}

// GlobalError returns the largest max-norm error over the whole trajectory.
func GlobalError(sys dynamo.Exact, sol *integrators.Solution) (float64, error) {
	t0, u0 := sol.T[0], sol.U[0]
	worst := 0.0
	for n := range sol.U {
		exact := sys.Exact(sol.T[n], t0, u0)
		if exact == nil {
			return 0, ErrNoExactSolution
		}
		if len(exact) != len(sol.U[n]) {
			return 0, fmt.Errorf("%w: exact solution has %d components, trajectory %d",
				dynamo.ErrDimensionMismatch, len(exact), len(sol.U[n]))
		}
		worst = math.Max(worst, floats.Distance(exact, sol.U[n], math.Inf(1)))
	}
	return worst, nil
}

// Convergence solves the problem once per distinct entry of steps (sorted
// ascending) and reports the error at the final time of each solve.
func Convergence(sys dynamo.ExactSystem, u0 dynamo.State, tSpan [2]float64, steps []int) ([]ConvergencePoint, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no step counts given", dynamo.ErrInvalidSteps)
	}
	ns := append([]int(nil), steps...)
	slices.Sort(ns)
	ns = slices.Compact(ns)

	exact := sys.Exact(tSpan[1], tSpan[0], u0)
	if exact == nil {
		return nil, ErrNoExactSolution
	}

	integ := integrators.New(sys)
	if err := integ.SetInitialCondition(u0); err != nil {
		return nil, err
	}

	points := make([]ConvergencePoint, 0, len(ns))
	for i, n := range ns {
		sol, err := integ.Solve(tSpan, n)
		if err != nil {
			return nil, fmt.Errorf("convergence at N=%d: %w", n, err)
		}

		maxErr, err := GlobalError(sys, sol)
		if err != nil {
			return nil, fmt.Errorf("convergence at N=%d: %w", n, err)
		}

		pt := ConvergencePoint{
			Steps:    n,
			Dt:       sol.Dt,
			Error:    floats.Distance(exact, sol.Final(), math.Inf(1)),
			MaxError: maxErr,
			Order:    math.NaN(),
		}
		if i > 0 {
			prev := points[i-1]
			pt.Order = math.Log(prev.Error/pt.Error) / math.Log(prev.Dt/pt.Dt)
		}
		points = append(points, pt)
	}
	return points, nil
}

// ObservedOrder is the order between the two finest solves.
func ObservedOrder(points []ConvergencePoint) float64 {
	if len(points) < 2 {
		return math.NaN()
	}
	return points[len(points)-1].Order
}
