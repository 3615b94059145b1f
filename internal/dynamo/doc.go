// Package dynamo provides the core primitives for simulating ordinary
// differential equations describing material-flow processes.
//
// The package defines the fundamental types shared by every other package:
//
//   - [State]: vector holding the instantaneous condition of a process
//   - [System]: an ODE system dX/dt = f(X, t)
//   - [Integrator] and [AdaptiveIntegrator]: numerical steppers
//   - [Series]: a named time series derived from a solved trajectory
//
// Systems are autonomous in this repository (the derivative never reads t),
// but t stays in the [System] signature so non-autonomous processes can be
// added without touching the solver.
package dynamo
