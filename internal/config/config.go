package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sirstab/internal/dynamo"
	"github.com/san-kum/sirstab/internal/epidemic"
	"github.com/san-kum/sirstab/internal/montecarlo"
)

const (
	DefaultSamples    = 1000
	DefaultMu         = 0.01
	DefaultGamma      = 0.01
	DefaultS0         = 0.05
	DefaultI0         = 0.01
	DefaultHorizon    = 500.0
	DefaultPoints     = 1000
	DefaultDistance   = 0.001
	DefaultIntegrator = "rk45"
)

type Config struct {
	Mode       string             `yaml:"mode"`
	Samples    int                `yaml:"samples"`
	Threshold  float64            `yaml:"threshold"` // 0 selects the mode default
	Seed       int64              `yaml:"seed"`
	Sampling   SamplingConfig     `yaml:"sampling"`
	Model      ModelConfig        `yaml:"model"`
	InitState  InitStateConfig    `yaml:"init_state"`
	Time       TimeConfig         `yaml:"time"`
	Stability  StabilityConfig    `yaml:"stability"`
	Integrator string             `yaml:"integrator"`
	Solver     dynamo.SolveConfig `yaml:"solver"`
	Example    ExampleConfig      `yaml:"example"`
	Output     string             `yaml:"output"`
}

type SamplingConfig struct {
	Beta montecarlo.Range `yaml:"beta"`
	U    montecarlo.Range `yaml:"u"`
}

type ModelConfig struct {
	Mu    float64 `yaml:"mu"`
	Gamma float64 `yaml:"gamma"`
}

type InitStateConfig struct {
	S float64 `yaml:"s"`
	I float64 `yaml:"i"`
}

type TimeConfig struct {
	Horizon float64 `yaml:"horizon"`
	Points  int     `yaml:"points"`
}

type StabilityConfig struct {
	Distance float64 `yaml:"distance"`
}

type ExampleConfig struct {
	Beta float64 `yaml:"beta"`
	U    float64 `yaml:"u"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:    string(montecarlo.ModeEigenvalues),
		Samples: DefaultSamples,
		Sampling: SamplingConfig{
			Beta: montecarlo.Range{Min: 0.4, Max: 1},
			U:    montecarlo.Range{Min: 0.01, Max: 0.4},
		},
		Model:      ModelConfig{Mu: DefaultMu, Gamma: DefaultGamma},
		InitState:  InitStateConfig{S: DefaultS0, I: DefaultI0},
		Time:       TimeConfig{Horizon: DefaultHorizon, Points: DefaultPoints},
		Stability:  StabilityConfig{Distance: DefaultDistance},
		Integrator: DefaultIntegrator,
		Solver:     dynamo.DefaultSolveConfig(),
		Example:    ExampleConfig{Beta: 0.4, U: 0.05},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Apply(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overlays the keys present in the file at path onto cfg. Keys the
// file leaves out keep their current values.
func Apply(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the config into driver options. A zero threshold selects
// the mode's default.
func (c *Config) Options() (montecarlo.Options, error) {
	mode, err := montecarlo.ParseMode(c.Mode)
	if err != nil {
		return montecarlo.Options{}, err
	}

	opts := montecarlo.DefaultOptions(mode)
	opts.Samples = c.Samples
	if c.Threshold != 0 {
		opts.Threshold = c.Threshold
	}
	opts.Seed = c.Seed
	opts.BetaRange = c.Sampling.Beta
	opts.URange = c.Sampling.U
	opts.Mu = c.Model.Mu
	opts.Gamma = c.Model.Gamma
	opts.S0 = c.InitState.S
	opts.I0 = c.InitState.I
	opts.Horizon = c.Time.Horizon
	opts.Points = c.Time.Points
	opts.DistanceThreshold = c.Stability.Distance
	opts.Integrator = c.Integrator
	opts.Solver = c.Solver
	opts.Example = epidemic.Params{Beta: c.Example.Beta, U: c.Example.U, Mu: c.Model.Mu, Gamma: c.Model.Gamma}

	if err := opts.Validate(); err != nil {
		return montecarlo.Options{}, err
	}
	return opts, nil
}

// OutputPath is the configured figure path or the mode's default name.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	mode, err := montecarlo.ParseMode(c.Mode)
	if err != nil {
		return montecarlo.ModeEigenvalues.FigureName()
	}
	return mode.FigureName()
}
