package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdfs-go/internal/config"
	"github.com/geoknoesis/rdfs-go/internal/metrics"
	"github.com/geoknoesis/rdfs-go/internal/source"
	"github.com/geoknoesis/rdfs-go/rdf"
)

// FactsResult is the JSON payload of commands that print facts.
type FactsResult struct {
	Count int      `json:"count"`
	Facts []string `json:"facts"`
}

// session carries what one command run needs: configuration, logging,
// metrics and output.
type session struct {
	opts      *RootOptions
	cfg       *config.Config
	logger    *slog.Logger
	recorder  *metrics.Recorder
	formatter *OutputFormatter
	out       io.Writer
}

func newSession(opts *RootOptions, cmd *cobra.Command) *session {
	cfg := opts.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &session{
		opts:     opts,
		cfg:      cfg,
		logger:   logger,
		recorder: metrics.NewRecorder(),
		formatter: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
			RunID:     opts.runID,
		},
		out: cmd.OutOrStdout(),
	}
}

// load expands patterns and returns the merged canonical graph.
func (s *session) load(patterns []string) (*rdf.Graph, error) {
	var g *rdf.Graph
	err := s.recorder.Time("load", func() error {
		paths, err := source.Expand(patterns)
		if err != nil {
			return s.fail(ErrCodeSource, "resolve sources", err)
		}
		s.logger.Debug("Resolved sources", slog.Int("files", len(paths)))
		g, err = source.Load(paths, s.cfg.DecodeOptions())
		if err != nil {
			return s.fail(string(rdf.Code(err)), "load sources", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Loaded graph", slog.Int("triples", g.Len()), slog.Int("prefixes", len(g.Prefixes)))
	return g, nil
}

// reasonOptions returns the configured reasoner options plus the metrics observer.
func (s *session) reasonOptions() []rdf.ReasonOption {
	return append(s.cfg.ReasonOptions(), rdf.OptObserver(s.recorder))
}

// infer returns the facts derived from g within depth levels.
func (s *session) infer(g *rdf.Graph, depth int) []rdf.Triple {
	var inferred []rdf.Triple
	_ = s.recorder.Time("infer", func() error {
		inferred = rdf.NewReasoner(rdf.RDFSRules(), s.reasonOptions()...).InferredTriples(g.Triples, depth)
		return nil
	})
	s.recorder.SetFacts(g.Len(), len(inferred))
	s.logger.Debug("Inferred facts", slog.Int("depth", depth), slog.Int("inferred", len(inferred)))
	return inferred
}

// depth returns flagValue, or the configured depth when the flag is negative.
func (s *session) depth(flagValue int) int {
	if flagValue < 0 {
		return s.cfg.Reasoning.Depth
	}
	return flagValue
}

// writeFacts prints facts in the configured serialization, or as JSON.
func (s *session) writeFacts(facts []rdf.Triple) error {
	if s.opts.Format == "json" {
		result := FactsResult{Count: len(facts), Facts: make([]string, len(facts))}
		for i, t := range facts {
			result.Facts[i] = t.String()
		}
		return s.formatter.Success(result)
	}
	format, _ := rdf.ParseFormat(s.cfg.Output.Format)
	if err := rdf.WriteTriples(s.out, facts, format); err != nil {
		return s.fail(ErrCodeGeneric, "write facts", err)
	}
	return nil
}

// finish prints metrics when asked to.
func (s *session) finish() error {
	if !s.opts.Metrics {
		return nil
	}
	if err := s.recorder.WriteText(s.formatter.GetErrWriter()); err != nil {
		return s.fail(ErrCodeGeneric, "write metrics", err)
	}
	return nil
}

// fail reports err through the formatter and returns it as an *ExitError.
// An error that is already an *ExitError is returned unchanged.
func (s *session) fail(code, message string, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	s.logger.Debug("Command failed", slog.String("code", code), slog.String("error", err.Error()))
	_ = s.formatter.Error(code, fmt.Sprintf("%s: %v", message, err), errorDetails(err))
	return WrapExitError(ExitCommandError, message, err)
}

// errorDetails extracts position information from parse errors.
func errorDetails(err error) any {
	var parseErr *rdf.ParseError
	if errors.As(err, &parseErr) {
		return map[string]any{
			"line":   parseErr.Line,
			"column": parseErr.Column,
			"offset": parseErr.Offset,
		}
	}
	var prefixErr *rdf.UnresolvedPrefixError
	if errors.As(err, &prefixErr) {
		return map[string]any{"prefix": prefixErr.Prefix}
	}
	return nil
}
