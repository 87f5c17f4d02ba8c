package cli

import (
	"github.com/spf13/cobra"
)

// InferOptions holds flags for the infer command.
type InferOptions struct {
	Depth int
}

// NewInferCommand creates the infer command, which prints the facts the RDFS
// rules derive from the given documents.
func NewInferCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InferOptions{}

	cmd := &cobra.Command{
		Use:   "infer <file|dir|glob>...",
		Short: "Print the RDFS facts derived from Turtle documents",
		Long: `Canonicalize the documents and run the RDFS entailment rules up to
--depth levels. Only derived facts that were not already stated are printed.`,
		Example: `  rdfq infer ontology.ttl --depth 3
  rdfq infer data/ --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(rootOpts, cmd)
			g, err := s.load(args)
			if err != nil {
				return err
			}
			inferred := s.infer(g, s.depth(opts.Depth))
			if err := s.writeFacts(inferred); err != nil {
				return err
			}
			return s.finish()
		},
	}

	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", -1, "inference levels (default from reasoning.depth)")

	return cmd
}
