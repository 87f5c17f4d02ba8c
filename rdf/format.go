package rdf

import "strings"

// Format identifies an output serialization for facts.
type Format string

const (
	// FormatCanonical writes Triple.String, one fact per line.
	FormatCanonical Format = "canonical"
	// FormatNTriples writes W3C N-Triples. Every fact must be canonical.
	FormatNTriples Format = "ntriples"
)

// ParseFormat normalizes a format string.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "canonical", "text", "":
		return FormatCanonical, true
	case "ntriples", "nt":
		return FormatNTriples, true
	default:
		return "", false
	}
}
