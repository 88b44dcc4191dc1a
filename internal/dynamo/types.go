package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous or time-dependent ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator attempts one step of size dt and reports the scaled
// error estimate (accept when <= 1) together with the suggested next step.
type AdaptiveIntegrator interface {
	Integrator
	TryStep(dyn System, x State, t, dt, rtol, atol float64) (next State, errNorm float64, dtNext float64)
}

type SolveConfig struct {
	Rtol     float64 `yaml:"rtol"`
	Atol     float64 `yaml:"atol"`
	MaxDt    float64 `yaml:"max_dt"`
	MinDt    float64 `yaml:"min_dt"`
	MaxSteps int     `yaml:"max_steps"`
}

// DefaultSolveConfig uses tolerances near sqrt(machine epsilon) and a budget
// of 500 internal steps per output interval.
func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		Rtol:     1.49012e-8,
		Atol:     1.49012e-8,
		MaxDt:    0.1,
		MinDt:    1e-12,
		MaxSteps: 500,
	}
}

type Trajectory struct {
	Times  []float64
	States []State
}

// Final returns the last reported state, or nil for an empty trajectory.
func (tr *Trajectory) Final() State {
	if tr == nil || len(tr.States) == 0 {
		return nil
	}
	return tr.States[len(tr.States)-1]
}

// Component extracts the i-th coordinate of every state.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		if i < len(s) {
			out[k] = s[i]
		}
	}
	return out
}

// TimeGrid returns n evenly spaced points from t0 to t1 inclusive.
func TimeGrid(t0, t1 float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{t0}
	}
	grid := make([]float64, n)
	step := (t1 - t0) / float64(n-1)
	for i := range grid {
		grid[i] = t0 + float64(i)*step
	}
	grid[n-1] = t1
	return grid
}
