// Package analysis measures how Forward Euler trajectories behave as the
// step size changes.
//
//   - [Convergence]: global error at the final time for a sequence of step
//     counts, with the observed order of accuracy between refinements
//   - [GlobalError]: max-norm error of one trajectory against a closed form
//
// # Order of Accuracy
//
// Forward Euler is first order, so doubling the step count roughly halves
// the error and the observed order approaches 1:
//
//	pts, err := analysis.Convergence(physics.NewDecay(), dynamo.State{1}, [2]float64{0, 1}, []int{50, 100, 200})
//	// pts[2].Order ≈ 1
package analysis
