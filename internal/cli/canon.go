package cli

import (
	"github.com/spf13/cobra"
)

// NewCanonCommand creates the canon command, which prints the canonical
// facts of the given documents.
func NewCanonCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "canon <file|dir|glob>...",
		Short: "Print the canonical facts of Turtle documents",
		Long: `Parse the documents, resolve every prefixed and relative identifier
against its document's prefixes and base, and print the merged facts.`,
		Example: `  rdfq canon ontology.ttl
  rdfq canon 'data/**/*.ttl' --output ntriples`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(rootOpts, cmd)
			g, err := s.load(args)
			if err != nil {
				return err
			}
			if err := s.writeFacts(g.Triples); err != nil {
				return err
			}
			return s.finish()
		},
	}
}
