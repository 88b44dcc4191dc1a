package montecarlo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/sirstab/internal/dynamo"
	"github.com/san-kum/sirstab/internal/epidemic"
	"github.com/san-kum/sirstab/internal/integrators"
	"github.com/san-kum/sirstab/internal/logging"
	"github.com/san-kum/sirstab/internal/metrics"
)

// Sample describes one parameter draw as seen by observers.
type Sample struct {
	Index    int
	Params   epidemic.Params
	R0       float64
	Retained bool
}

type Observer interface {
	OnSample(s Sample)
}

type ObserverFunc func(s Sample)

func (f ObserverFunc) OnSample(s Sample) { f(s) }

type Driver struct {
	opts      Options
	logger    *slog.Logger
	observers []Observer
}

func New(opts Options, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{opts: opts, logger: logger}
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) notify(s Sample) {
	for _, o := range d.observers {
		o.OnSample(s)
	}
}

// Run draws the parameter samples, integrates every draw whose R0 exceeds the
// threshold and evaluates the end state according to the mode. A solver
// failure aborts the whole run.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	o := d.opts
	if err := o.Validate(); err != nil {
		return nil, err
	}

	integ, err := integrators.New(o.Integrator)
	if err != nil {
		return nil, err
	}

	seed := resolveSeed(o.Seed)
	betas, us := drawParams(newSource(seed), o.Samples, o.BetaRange, o.URange)

	grid := dynamo.TimeGrid(0, o.Horizon, o.Points)
	x0 := dynamo.State{o.S0, o.I0}

	res := &Result{
		Mode:    o.Mode,
		Options: o,
		Seed:    seed,
		Records: make([]Record, 0, o.Samples),
	}
	stability := metrics.NewStability(o.DistanceThreshold)

	d.logger.Info("monte carlo run started",
		"mode", o.Mode, "samples", o.Samples, "threshold", o.Threshold, "seed", seed, "integrator", o.Integrator)

	for k := range betas {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("sample %d: %w", k, ctx.Err())
		default:
		}

		p := epidemic.Params{Beta: betas[k], U: us[k], Mu: o.Mu, Gamma: o.Gamma}
		r0 := epidemic.R0(p)
		res.Drawn++

		if !(r0 > o.Threshold) {
			res.Rejected++
			d.logger.Debug("sample rejected", "index", k, "r0", r0)
			d.notify(Sample{Index: k, Params: p, R0: r0})
			continue
		}

		tr, err := dynamo.Solve(ctx, epidemic.NewSIR(p), integ, x0, grid, o.Solver)
		if err != nil {
			return nil, fmt.Errorf("sample %d (%s): %w", k, p, err)
		}
		final := tr.Final()
		d.logger.Log(ctx, logging.LevelTrace, "trajectory solved", "index", k, "points", len(tr.States), "s", final[0], "i", final[1])
		rec := Record{Beta: p.Beta, U: p.U, R0: r0, S: final[0], I: final[1]}

		switch o.Mode {
		case ModeEigenvalues:
			eigs, err := epidemic.Eigenvalues(epidemic.Jacobian(rec.S, rec.I, p))
			if err != nil {
				return nil, fmt.Errorf("sample %d (%s): %w", k, p, err)
			}
			res.Records = append(res.Records, rec)
			res.Eigenvalues = append(res.Eigenvalues, eigs)
			d.logger.Debug("sample retained", "index", k, "r0", r0, "s", rec.S, "i", rec.I, "eig1", eigs[0], "eig2", eigs[1])

		case ModeRatio:
			// The end state is its own equilibrium estimate, so this
			// distance is zero and every retained sample counts as stable.
			equilibrium := final.Clone()
			distance := equilibrium.Sub(final).Norm()
			stability.Observe(distance)
			res.Records = append(res.Records, rec)
			d.logger.Debug("sample retained", "index", k, "r0", r0, "distance", distance, "ratio", stability.Value())
		}

		d.notify(Sample{Index: k, Params: p, R0: r0, Retained: true})
	}

	if o.Mode == ModeRatio {
		res.Ratios = stability.Ratios()
		res.StableCount = stability.Count()
	}

	ex := o.Example
	ex.Mu, ex.Gamma = o.Mu, o.Gamma
	example, err := dynamo.Solve(ctx, epidemic.NewSIR(ex), integ, x0, grid, o.Solver)
	if err != nil {
		return nil, fmt.Errorf("example trajectory (%s): %w", ex, err)
	}
	res.Example = example

	d.logger.Info("monte carlo run finished",
		"drawn", res.Drawn, "retained", res.Retained(), "rejected", res.Rejected)

	return res, nil
}
