package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Version is the engine version checked against Config.Requires.
const Version = "0.3.0"

// DefaultMaxOptimizerPasses bounds the optimizer fixpoint loop when the
// configuration does not.
const DefaultMaxOptimizerPasses = 64

// ErrIncompatible is returned when Config.Requires excludes Version.
var ErrIncompatible = errors.New("incompatible engine version")

// Config controls how a Script runs.
type Config struct {
	// KeepTrivia keeps comments and whitespace as nodes in the tree.
	KeepTrivia bool `yaml:"keep_trivia"`
	// Optimize adds the optimizer to the default pipeline.
	Optimize           bool `yaml:"optimize"`
	MaxOptimizerPasses int  `yaml:"max_optimizer_passes"`
	// Requires is a semver constraint the engine version must satisfy,
	// such as ">= 0.2, < 1".
	Requires string `yaml:"requires"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Optimize: true, MaxOptimizerPasses: DefaultMaxOptimizerPasses}
}

func (c Config) withDefaults() Config {
	if c.MaxOptimizerPasses <= 0 {
		c.MaxOptimizerPasses = DefaultMaxOptimizerPasses
	}
	return c
}

// Validate checks the version constraint.
func (c Config) Validate() error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("requires %q: %w", c.Requires, err)
	}
	v := semver.MustParse(Version)
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %q", ErrIncompatible, v, c.Requires)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Keys it does not set keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
