// Package config loads the YAML-configured runtime settings for the
// checker: prover binary locations, default timing/worker budgets,
// cache location, and logging verbosity — mirroring the teacher's
// internal/config.Config struct-with-yaml-tags-plus-DefaultConfig idiom.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProverConfig names one registered prover adapter's binary path.
type ProverConfig struct {
	Name       string `yaml:"name"`
	BinaryPath string `yaml:"binary_path"`
}

// LoggingConfig controls the zap logger's verbosity.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Config is the full runtime configuration for a checker run.
type Config struct {
	BaseDir       string         `yaml:"base_dir"`
	CachePath     string         `yaml:"cache_path"`
	NoCache       bool           `yaml:"no_cache"`
	Benchmark     bool           `yaml:"benchmark"`
	DefaultProver string         `yaml:"default_prover"`
	TimeLimitSecs int            `yaml:"time_limit_secs"`
	Workers       int            `yaml:"workers"`
	Provers       []ProverConfig `yaml:"provers"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// DefaultConfig returns a fully-populated default configuration: a
// single dummy-backed prover, a 5-second per-obligation budget, the
// host's hardware parallelism for workers (set by the caller, since
// config itself stays free of runtime.NumCPU() coupling), and the
// conventional cache file name in the current directory.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:       ".",
		CachePath:     ".vernac_cache.db",
		NoCache:       false,
		Benchmark:     false,
		DefaultProver: "dummy",
		TimeLimitSecs: 5,
		Workers:       0, // 0 means "use runtime.NumCPU()"; see internal/engine
		Provers: []ProverConfig{
			{Name: "dummy", BinaryPath: ""},
		},
		Logging: LoggingConfig{Verbose: false},
	}
}

// Load reads and parses a YAML configuration file at path, filling in
// defaults for anything the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
