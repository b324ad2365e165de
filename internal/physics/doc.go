// Package physics provides derivative functions for classic ODE models.
//
// Each model implements [dynamo.System], f(t, u) = du/dt:
//
//   - [Pendulum]: simple pendulum, state [theta, omega]
//   - [Decay]: scalar linear ODE du/dt = k*u
//   - [SpringMass]: damped linear oscillator
//   - [VanDerPol]: limit-cycle oscillator
//   - [Lorenz]: butterfly attractor
//   - [Duffing]: forced nonlinear oscillator
//
// All models implement [dynamo.Configurable]. Conservative models implement
// [dynamo.Hamiltonian], and models with a closed-form solution implement
// [dynamo.Exact].
//
// # Energy Drift
//
// Forward Euler does not conserve energy. For Hamiltonian systems the drift
// is a direct measure of the step size's effect:
//
//	var dyn dynamo.System = physics.NewPendulum()
//	if h, ok := dyn.(dynamo.Hamiltonian); ok {
//	    drift := h.Energy(sol.Final()) - h.Energy(sol.U[0])
//	}
package physics
