package config

import (
	"sort"

	"github.com/san-kum/sirstab/internal/montecarlo"
)

// Presets reproduce the two reference analyses. "quick" is a small seeded
// run for smoke testing.
var Presets = map[string]func() *Config{
	"eigenvalues": func() *Config {
		cfg := DefaultConfig()
		cfg.Mode = string(montecarlo.ModeEigenvalues)
		cfg.Threshold = 1.25
		return cfg
	},
	"ratio": func() *Config {
		cfg := DefaultConfig()
		cfg.Mode = string(montecarlo.ModeRatio)
		cfg.Threshold = 1.0
		return cfg
	},
	"quick": func() *Config {
		cfg := DefaultConfig()
		cfg.Samples = 50
		cfg.Seed = 42
		cfg.Time.Points = 250
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
