// Package epidemic defines the two-compartment SIR model with intervention
// used by the Monte Carlo stability analysis.
//
// The state is (S, I), the susceptible and infected fractions. The model is
//
//	dS/dt = mu - beta(1-u)SI - (mu+u)S
//	dI/dt = beta(1-u)SI - (gamma+mu)I
//
// where beta is the transmission rate, u the intervention rate, mu the
// natural turnover rate and gamma the recovery rate.
//
// # Stability
//
// [Jacobian] gives the local linearization at any point and [Eigenvalues]
// its spectrum; [Classify] labels the spectrum. [SIR] wraps the equations as
// a [dynamo.System] for integration.
package epidemic
