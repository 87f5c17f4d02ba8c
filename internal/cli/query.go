package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdfs-go/internal/filter"
	"github.com/geoknoesis/rdfs-go/internal/source"
	"github.com/geoknoesis/rdfs-go/rdf"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	Depth     int
	Subject   string
	Predicate string
	Object    string
	Where     string
	Values    bool
	Watch     bool
}

// ValuesResult is the JSON payload of query --values.
type ValuesResult struct {
	Found  bool     `json:"found"`
	Values []string `json:"values"`
}

// NewQueryCommand creates the query command, which filters the stated and
// derived facts of the given documents.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <file|dir|glob>...",
		Short: "Filter stated and derived facts",
		Long: `Canonicalize the documents, add the RDFS facts derived within --depth
levels and print the facts that pass every filter.

--subject, --predicate and --object match the canonical text exactly.
--where takes a CEL expression over the variables subject, predicate, object,
kind ("resource" or "literal"), value, datatype and language.`,
		Example: `  rdfq query ontology.ttl --subject http://example.org/rex --values
  rdfq query data/ --where 'predicate.endsWith("#type") && object.startsWith("http://example.org/")'
  rdfq query 'data/**/*.ttl' --predicate http://www.w3.org/2000/01/rdf-schema#subClassOf --watch`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(rootOpts, cmd)
			var where *filter.Filter
			if opts.Where != "" {
				f, err := filter.Compile(opts.Where)
				if err != nil {
					return s.fail(ErrCodeFilter, "invalid --where", err)
				}
				where = f
			}

			run := func() error {
				if err := runQuery(s, opts, where, args); err != nil {
					return err
				}
				return s.finish()
			}
			if !opts.Watch {
				return run()
			}

			if err := run(); err != nil {
				s.logger.Warn("Query failed", slog.String("error", err.Error()))
			}
			w, err := source.NewWatcher(args, s.cfg.Watch.Debounce, s.logger)
			if err != nil {
				return s.fail(ErrCodeSource, "watch sources", err)
			}
			defer w.Close()
			return w.Run(cmd.Context(), func(changed []string) {
				s.logger.Info("Sources changed", slog.Int("files", len(changed)))
				if err := run(); err != nil {
					s.logger.Warn("Query failed", slog.String("error", err.Error()))
				}
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", -1, "inference levels (default from reasoning.depth)")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "keep facts with this subject")
	cmd.Flags().StringVar(&opts.Predicate, "predicate", "", "keep facts with this predicate")
	cmd.Flags().StringVar(&opts.Object, "object", "", "keep facts with this object")
	cmd.Flags().StringVar(&opts.Where, "where", "", "CEL expression each fact must satisfy")
	cmd.Flags().BoolVar(&opts.Values, "values", false, "print only the objects of the matching facts")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "re-run whenever a source file changes")

	return cmd
}

func runQuery(s *session, opts *QueryOptions, where *filter.Filter, patterns []string) error {
	g, err := s.load(patterns)
	if err != nil {
		return err
	}

	var q *rdf.QueryBuilder
	err = s.recorder.Time("infer", func() error {
		var err error
		q, err = g.StartQueryWith(s.depth(opts.Depth), s.reasonOptions()...)
		return err
	})
	if err != nil {
		return s.fail(string(rdf.Code(err)), "start query", err)
	}
	s.recorder.SetFacts(g.Len(), q.Count()-g.Len())

	q = filterQuery(q, opts, where, s.logger)

	if opts.Values {
		return s.writeValues(q)
	}
	return s.writeFacts(q.Query())
}

// filterQuery narrows q by every filter flag that was set.
func filterQuery(q *rdf.QueryBuilder, opts *QueryOptions, where *filter.Filter, logger *slog.Logger) *rdf.QueryBuilder {
	if opts.Subject != "" {
		q = q.Subject(rdf.Equals(opts.Subject))
	}
	if opts.Predicate != "" {
		q = q.Predicate(rdf.Equals(opts.Predicate))
	}
	if opts.Object != "" {
		q = q.Object(rdf.Equals(opts.Object))
	}
	if where != nil {
		q = q.Select(where.Predicate(func(t rdf.Triple, err error) {
			logger.Warn("Filter evaluation failed", slog.String("fact", t.String()), slog.String("error", err.Error()))
		}))
	}
	return q
}

func (s *session) writeValues(q *rdf.QueryBuilder) error {
	values, found := q.Values()
	result := ValuesResult{Found: found, Values: make([]string, len(values))}
	for i, v := range values {
		result.Values[i] = v.String()
	}
	if s.opts.Format == "json" {
		return s.formatter.Success(result)
	}
	if !found {
		_, err := fmt.Fprintln(s.formatter.GetErrWriter(), "no matching facts")
		return err
	}
	for _, v := range result.Values {
		if err := s.formatter.Success(v); err != nil {
			return err
		}
	}
	return nil
}
