package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ProjectConfigFile is read from the working directory when no path is given.
const ProjectConfigFile = "rdfq.yaml"

// Environment variables that override the configuration file.
const (
	EnvDepth        = "RDFQ_DEPTH"
	EnvWorkers      = "RDFQ_WORKERS"
	EnvMode         = "RDFQ_MODE"
	EnvFormat       = "RDFQ_OUTPUT_FORMAT"
	EnvNormalizeNFC = "RDFQ_NORMALIZE_NFC"
	EnvDebounce     = "RDFQ_WATCH_DEBOUNCE"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. .env in the working directory (only fills unset variables)
// 3. The YAML file at path, or rdfq.yaml if path is empty and it exists
// 4. RDFQ_* environment variables
func (l *Loader) Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		l.logger.Debug("Loaded .env")
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load .env", slog.String("error", err.Error()))
	}

	config := DefaultConfig()
	switch {
	case path != "":
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
		l.logger.Debug("Loaded config", slog.String("path", path))
	default:
		loaded, err := LoadFromFile(ProjectConfigFile)
		switch {
		case err == nil:
			config = loaded
			l.logger.Debug("Loaded project config", slog.String("path", ProjectConfigFile))
		case errors.Is(err, fs.ErrNotExist):
			l.logger.Debug("No project config found")
		default:
			return nil, err
		}
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from RDFQ_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDepth); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDepth, err)
		}
		c.Reasoning.Depth = n
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Reasoning.Workers = n
	}
	if v, ok := lookup(EnvMode); ok {
		c.Reasoning.Mode = v
	}
	if v, ok := lookup(EnvFormat); ok {
		c.Output.Format = v
	}
	if v, ok := lookup(EnvNormalizeNFC); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNormalizeNFC, err)
		}
		c.Parsing.NormalizeNFC = b
	}
	if v, ok := lookup(EnvDebounce); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebounce, err)
		}
		c.Watch.Debounce = d
	}
	return nil
}
