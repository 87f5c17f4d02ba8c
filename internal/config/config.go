// Package config provides configuration loading for rdfq.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/rdfs-go/rdf"
)

// Reasoning modes.
const (
	ModeAccumulated = "accumulated"
	ModeBucketed    = "bucketed"
)

// Config represents the complete rdfq configuration
type Config struct {
	Reasoning ReasoningConfig `yaml:"reasoning"`
	Parsing   ParsingConfig   `yaml:"parsing"`
	Output    OutputConfig    `yaml:"output"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ReasoningConfig configures the entailment engine
type ReasoningConfig struct {
	// Depth is the number of inference levels (default: 2)
	Depth int `yaml:"depth"`
	// Workers is the number of goroutines evaluating rule guards (default: 1)
	Workers int `yaml:"workers"`
	// Mode is "accumulated" or "bucketed"
	Mode string `yaml:"mode"`
}

// ParsingConfig configures the Turtle parser limits
type ParsingConfig struct {
	MaxStatementBytes int  `yaml:"max_statement_bytes"`
	MaxDepth          int  `yaml:"max_depth"`
	NormalizeNFC      bool `yaml:"normalize_nfc"`
}

// OutputConfig configures how facts are written
type OutputConfig struct {
	// Format is "canonical" or "ntriples"
	Format string `yaml:"format"`
}

// WatchConfig configures file watching for query --watch
type WatchConfig struct {
	// Debounce is how long to wait for more changes before re-running
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Reasoning: ReasoningConfig{
			Depth:   2,
			Workers: 1,
			Mode:    ModeAccumulated,
		},
		Parsing: ParsingConfig{
			MaxStatementBytes: rdf.DefaultMaxStatementBytes,
			MaxDepth:          rdf.DefaultMaxDepth,
		},
		Output: OutputConfig{
			Format: string(rdf.FormatCanonical),
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Reasoning.Depth < 0 {
		return fmt.Errorf("reasoning.depth must not be negative")
	}
	if c.Reasoning.Workers < 1 {
		return fmt.Errorf("reasoning.workers must be at least 1")
	}
	if c.Reasoning.Mode != ModeAccumulated && c.Reasoning.Mode != ModeBucketed {
		return fmt.Errorf("reasoning.mode must be %q or %q, got %q", ModeAccumulated, ModeBucketed, c.Reasoning.Mode)
	}
	if _, ok := rdf.ParseFormat(c.Output.Format); !ok {
		return fmt.Errorf("output.format %q is not supported", c.Output.Format)
	}
	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive")
	}
	return nil
}

// DecodeOptions returns the parser options for this configuration.
func (c *Config) DecodeOptions() rdf.DecodeOptions {
	return rdf.DecodeOptions{
		MaxStatementBytes: c.Parsing.MaxStatementBytes,
		MaxDepth:          c.Parsing.MaxDepth,
		NormalizeNFC:      c.Parsing.NormalizeNFC,
	}
}

// ReasonOptions returns the reasoner options for this configuration.
func (c *Config) ReasonOptions() []rdf.ReasonOption {
	return []rdf.ReasonOption{
		rdf.OptWorkers(c.Reasoning.Workers),
		rdf.OptBucketedLevels(c.Reasoning.Mode == ModeBucketed),
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
