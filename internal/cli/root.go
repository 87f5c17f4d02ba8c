// Package cli implements the rdfq command line.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdfs-go/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Output  string // "canonical" | "ntriples", overrides output.format
	Config  string
	Metrics bool

	cfg    *config.Config
	logger *slog.Logger
	runID  string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the rdfq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rdfq",
		Short: "rdfq - RDF canonicalization, RDFS inference and queries",
		Long: `Load Turtle documents, resolve their identifiers, derive RDFS facts
up to a chosen depth and filter the result.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "", "fact serialization (canonical|ntriples)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (default ./"+config.ProjectConfigFile+" if present)")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics to stderr when done")

	cmd.AddCommand(NewCanonCommand(opts))
	cmd.AddCommand(NewInferCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))

	return cmd
}

// setup builds the logger and loads the configuration.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.runID = uuid.NewString()
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String("run_id", o.runID), slog.String("command", cmd.Name()))

	cfg, err := config.NewLoader(o.logger).Load(o.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "load configuration", err)
	}
	if o.Output != "" {
		cfg.Output.Format = o.Output
		if err := cfg.Validate(); err != nil {
			return WrapExitError(ExitCommandError, "invalid --output", err)
		}
	}
	o.cfg = cfg
	return nil
}
