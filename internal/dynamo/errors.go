package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrNoInitialCondition indicates Solve was called before an initial condition was set.
	ErrNoInitialCondition = errors.New("dynamo: initial condition must be set before solving")

	// ErrInvalidSteps indicates a non-positive step count.
	ErrInvalidSteps = errors.New("dynamo: step count must be positive")

	// ErrInvalidSpan indicates a time span whose end does not lie after its start.
	ErrInvalidSpan = errors.New("dynamo: time span end must be greater than start")

	// ErrDimensionMismatch indicates a derivative whose width differs from the state.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	ErrEmptyState = errors.New("dynamo: initial condition has no components")

	ErrNilSystem = errors.New("dynamo: nil derivative function")

	// ErrNotScalar indicates a scalar view was requested of a vector trajectory.
	ErrNotScalar = errors.New("dynamo: trajectory is not scalar")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// DerivativeError wraps a derivative contract violation with step context.
type DerivativeError struct {
	Step     int
	Time     float64
	Expected int
	Got      int
	Wrapped  error
}

func (e *DerivativeError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): derivative has %d components, state has %d: %v",
		e.Step, e.Time, e.Got, e.Expected, e.Wrapped)
}

func (e *DerivativeError) Unwrap() error {
	return e.Wrapped
}
