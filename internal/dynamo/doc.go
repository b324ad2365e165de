// Package dynamo provides the core types shared by the integrator and the
// models it drives.
//
// An initial-value problem is du/dt = f(t, u), u(t0) = u0:
//
//   - [State]: vector holding the unknowns at one instant
//   - [System]: the derivative function f
//   - [SystemFunc], [ScalarFunc]: adapters from plain functions
//   - [Normalize]: fixed-width validation of a derivative result
//
// # Example
//
//	f := dynamo.ScalarFunc(func(t, u float64) float64 { return -u })
//	integ := integrators.New(f)
//	integ.SetScalarInitialCondition(1)
//	sol, err := integ.Solve([2]float64{0, 1}, 2)
//
// # Errors
//
// Failures are reported with the sentinel errors in this package, wrapped
// with context. Use [errors.Is] to classify them.
package dynamo
