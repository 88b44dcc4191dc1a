package dynamo

import (
	"context"
	"fmt"
	"math"
)

func (c SolveConfig) withDefaults() SolveConfig {
	def := DefaultSolveConfig()
	if c.Rtol <= 0 {
		c.Rtol = def.Rtol
	}
	if c.Atol <= 0 {
		c.Atol = def.Atol
	}
	if c.MaxDt <= 0 {
		c.MaxDt = def.MaxDt
	}
	if c.MinDt <= 0 {
		c.MinDt = def.MinDt
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = def.MaxSteps
	}
	return c
}

// Solve integrates dyn from x0 at times[0] and reports the state at every
// time in times, which must be increasing. Adaptive integrators choose their
// own internal steps between output points; fixed-step integrators split each
// output interval into equal substeps no longer than MaxDt.
func Solve(ctx context.Context, dyn System, integ Integrator, x0 State, times []float64, cfg SolveConfig) (*Trajectory, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("solve: empty time grid: %w", ErrParameterBounds)
	}
	if len(x0) != dyn.StateDim() {
		return nil, fmt.Errorf("solve: state has %d components, system wants %d: %w", len(x0), dyn.StateDim(), ErrDimensionMismatch)
	}
	if !x0.IsValid() {
		return nil, &SimulationError{Step: 0, Time: times[0], State: x0.Clone(), Wrapped: ErrInvalidState}
	}
	cfg = cfg.withDefaults()

	tr := &Trajectory{
		Times:  make([]float64, 0, len(times)),
		States: make([]State, 0, len(times)),
	}

	x := x0.Clone()
	t := times[0]
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, x.Clone())

	adaptive, isAdaptive := integ.(AdaptiveIntegrator)
	h := cfg.MaxDt * 0.1
	steps := 0

	for k := 1; k < len(times); k++ {
		select {
		case <-ctx.Done():
			return tr, &SimulationError{Step: steps, Time: t, State: x.Clone(), Wrapped: ErrContextCanceled}
		default:
		}

		target := times[k]
		if target < t {
			return tr, fmt.Errorf("solve: time grid not increasing at index %d: %w", k, ErrParameterBounds)
		}

		var err error
		if isAdaptive {
			x, h, steps, err = advanceAdaptive(dyn, adaptive, x, t, target, h, steps, cfg)
		} else {
			x, steps, err = advanceFixed(dyn, integ, x, t, target, steps, cfg)
		}
		if err != nil {
			return tr, err
		}

		t = target
		tr.Times = append(tr.Times, t)
		tr.States = append(tr.States, x.Clone())
	}

	return tr, nil
}

func advanceAdaptive(dyn System, integ AdaptiveIntegrator, x State, t, target, h float64, steps int, cfg SolveConfig) (State, float64, int, error) {
	for n := 0; t < target; n++ {
		if n >= cfg.MaxSteps {
			return x, h, steps, &SimulationError{Step: steps, Time: t, State: x.Clone(), Wrapped: ErrExcessWork}
		}

		dt := h
		clipped := false
		if t+dt >= target {
			dt = target - t
			clipped = true
		}

		next, errNorm, hNext := integ.TryStep(dyn, x, t, dt, cfg.Rtol, cfg.Atol)

		if !next.IsValid() || math.IsNaN(errNorm) {
			if dt*0.2 < cfg.MinDt {
				return x, h, steps, &SimulationError{Step: steps, Time: t, State: next, Wrapped: ErrInvalidState}
			}
			h = dt * 0.2
			continue
		}

		if errNorm <= 1 {
			steps++
			x = next
			if clipped {
				t = target
			} else {
				t += dt
				h = hNext
			}
		} else {
			if dt <= cfg.MinDt {
				return x, h, steps, &SimulationError{Step: steps, Time: t, State: x.Clone(), Wrapped: ErrStepTooSmall}
			}
			h = hNext
		}

		h = math.Max(math.Min(h, cfg.MaxDt), cfg.MinDt)
	}
	return x, h, steps, nil
}

func advanceFixed(dyn System, integ Integrator, x State, t, target float64, steps int, cfg SolveConfig) (State, int, error) {
	span := target - t
	if span <= 0 {
		return x, steps, nil
	}
	n := int(math.Ceil(span / cfg.MaxDt))
	if n < 1 {
		n = 1
	}
	dt := span / float64(n)

	for i := 0; i < n; i++ {
		x = integ.Step(dyn, x, t, dt)
		t += dt
		steps++
		if !x.IsValid() {
			return x, steps, &SimulationError{Step: steps, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}
	}
	return x, steps, nil
}
