// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step integrator interface
//   - [AdaptiveIntegrator]: error-controlled integrator interface
//   - [Solve]: reports a solution on a fixed output grid
//
// # Example
//
//	sys := epidemic.NewSIR(epidemic.Params{Beta: 0.4, U: 0.05, Mu: 0.01, Gamma: 0.01})
//	grid := dynamo.TimeGrid(0, 500, 1000)
//	tr, err := dynamo.Solve(ctx, sys, integrators.NewRK45(), dynamo.State{0.05, 0.01}, grid, dynamo.DefaultSolveConfig())
//
// # Thread Safety
//
// Integrators may keep scratch buffers and are NOT safe for concurrent use.
package dynamo
