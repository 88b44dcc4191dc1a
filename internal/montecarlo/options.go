package montecarlo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/sirstab/internal/dynamo"
	"github.com/san-kum/sirstab/internal/epidemic"
)

var (
	ErrUnknownMode = errors.New("montecarlo: unknown analysis mode")
	ErrNoSamples   = errors.New("montecarlo: no samples cleared the R0 threshold")
)

type Mode string

const (
	// ModeEigenvalues keeps the Jacobian spectrum at each end state.
	ModeEigenvalues Mode = "eigenvalues"
	// ModeRatio tracks the running stability ratio of the end states.
	ModeRatio Mode = "ratio"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eigenvalues", "eigen", "eig":
		return ModeEigenvalues, nil
	case "ratio", "stability-ratio", "stability":
		return ModeRatio, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

func (m Mode) DefaultThreshold() float64 {
	if m == ModeRatio {
		return 1.0
	}
	return 1.25
}

// FigureName is the default output file for the mode.
func (m Mode) FigureName() string {
	if m == ModeRatio {
		return "simulation_stability_ratio.svg"
	}
	return "simulation_results_eigenvalues.svg"
}

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) valid() bool { return r.Min <= r.Max }

type Options struct {
	Mode      Mode
	Samples   int
	Threshold float64
	BetaRange Range
	URange    Range
	Mu        float64
	Gamma     float64

	S0, I0  float64
	Horizon float64
	Points  int

	DistanceThreshold float64

	// Seed 0 draws a fresh seed; the seed actually used is reported in
	// Result.Seed.
	Seed int64

	Integrator string
	Solver     dynamo.SolveConfig

	// Example is the parameter point of the plotted trajectory; its Mu and
	// Gamma are taken from the options.
	Example epidemic.Params
}

func DefaultOptions(mode Mode) Options {
	return Options{
		Mode:              mode,
		Samples:           1000,
		Threshold:         mode.DefaultThreshold(),
		BetaRange:         Range{Min: 0.4, Max: 1},
		URange:            Range{Min: 0.01, Max: 0.4},
		Mu:                0.01,
		Gamma:             0.01,
		S0:                0.05,
		I0:                0.01,
		Horizon:           500,
		Points:            1000,
		DistanceThreshold: 0.001,
		Integrator:        "rk45",
		Solver:            dynamo.DefaultSolveConfig(),
		Example:           epidemic.Params{Beta: 0.4, U: 0.05, Mu: 0.01, Gamma: 0.01},
	}
}

func (o Options) Validate() error {
	if o.Mode != ModeEigenvalues && o.Mode != ModeRatio {
		return fmt.Errorf("%q: %w", o.Mode, ErrUnknownMode)
	}
	if o.Samples < 0 {
		return fmt.Errorf("samples must be non-negative, got %d", o.Samples)
	}
	if !o.BetaRange.valid() || !o.URange.valid() {
		return fmt.Errorf("sampling ranges must have min <= max: %w", dynamo.ErrParameterBounds)
	}
	if o.BetaRange.Min < 0 || o.URange.Min < 0 || o.Mu < 0 || o.Gamma < 0 {
		return fmt.Errorf("rates must be non-negative: %w", dynamo.ErrParameterBounds)
	}
	if o.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %f", o.Horizon)
	}
	if o.Points < 2 {
		return fmt.Errorf("need at least 2 time points, got %d", o.Points)
	}
	return nil
}
