package config

import (
	"fmt"
)

// Config represents a memsketch.yaml configuration file describing which
// UnitHandler and RetentionPolicy to construct and with what parameters.
// No command-line flag of the replay command overrides these values.
type Config struct {
	Handler string       `yaml:"handler"`
	Policy  PolicyConfig `yaml:"policy"`
	Logging LoggingConfig `yaml:"logging"`
}

// PolicyConfig selects one of the six retention policies and holds the
// union of their constructor parameters. Only the fields relevant to
// Name are consulted; the rest are ignored.
type PolicyConfig struct {
	Name       string  `yaml:"name"`
	WindowSize int     `yaml:"window_size"`
	Budget     int     `yaml:"budget"`
	Epsilon    float64 `yaml:"epsilon"`
	Decay      float64 `yaml:"decay"`
	Seed       *uint64 `yaml:"seed,omitempty"`
}

// LoggingConfig controls the session logger's verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Validate reports whether Handler and Policy.Name name recognized
// choices, without constructing anything. buildManager (in
// cmd/memsketch) performs the actual construction and surfaces
// package-level sentinel errors (policy.ErrInvalidBudget, ...) for
// parameter-level problems.
func (c *Config) Validate() error {
	switch c.Handler {
	case "event", "dfr", "trace", "variant":
	default:
		return fmt.Errorf("unknown handler %q: want one of event, dfr, trace, variant", c.Handler)
	}
	switch c.Policy.Name {
	case "sliding_window", "tumbling_window", "reservoir_sampling",
		"lossy_count", "lossy_count_with_budget", "exponential_decay_counting":
	default:
		return fmt.Errorf("unknown policy %q", c.Policy.Name)
	}
	return nil
}
