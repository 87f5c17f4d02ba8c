package rdf

import (
	"slices"
	"testing"
)

const testPrefixes = "@prefix ex: <http://example.org/> .\n" +
	"@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .\n"

func mustParse(t testing.TB, doc string) *Graph {
	t.Helper()
	g, err := ParseGraph(doc)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return g
}

// mustCanonical parses doc and resolves its identifiers.
func mustCanonical(t testing.TB, doc string) []Triple {
	t.Helper()
	g := mustParse(t, doc)
	if err := g.Canonicalize(); err != nil {
		t.Fatalf("unexpected canonicalize error: %v", err)
	}
	return g.Triples
}

func tripleStrings(triples []Triple) []string {
	out := make([]string, len(triples))
	for i, t := range triples {
		out[i] = t.String()
	}
	return out
}

func assertTriples(t testing.TB, got []Triple, want []string) {
	t.Helper()
	if gotStrings := tripleStrings(got); !slices.Equal(gotStrings, want) {
		t.Fatalf("unexpected triples:\n got: %q\nwant: %q", gotStrings, want)
	}
}

func exURI(name string) URI {
	return URI{Prefix: "http://example.org/", Name: name, Kind: KindFull}
}

func exTriple(subject, predicate, object string) Triple {
	return NewTriple(NewResource(exURI(subject)), NewRelationship(exURI(predicate)), NewResource(exURI(object)))
}
