// Package rdf provides an in-memory RDF graph with RDFS entailment and a
// chained query interface.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Author: Stephane Fellah (stephanef@geoknoesis.com)
// Geosemantic-AI expert with 30 years of experience
//
// A document goes through four steps:
//   - Parse: ParseGraph() and LoadFile() read Turtle into a Graph whose
//     identifiers may still be prefixed or relative.
//   - Canonicalize: Graph.Canonicalize() resolves every identifier against the
//     graph's base and prefix table, or reports each undefined prefix.
//   - Infer: GetInferredTriples() and Reasoner compute the facts the thirteen
//     RDFS rules derive within a depth bound.
//   - Query: Graph.StartQuery() returns a QueryBuilder over the original and
//     inferred facts.
//
// Example:
//
//	g, err := rdf.ParseGraph(`
//	    @prefix ex: <http://example.org/> .
//	    @prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
//	    ex:Dog rdfs:subClassOf ex:Animal .
//	    ex:rex a ex:Dog .
//	`)
//	if err != nil {
//	    // handle error
//	}
//	q, err := g.StartQuery(2)
//	if err != nil {
//	    // handle error
//	}
//	types, ok := q.
//	    Subject(rdf.Equals("http://example.org/rex")).
//	    Predicate(rdf.HasSuffix("#type")).
//	    Values()
//
// Facts compare by their printed form: two triples are equal iff
// Triple.String() returns the same text. Blank nodes in a pattern passed to
// MatchesPattern or QueryBuilder.Match act as wildcards.
//
// Inference cost grows at least quadratically with the number of facts per
// level; depth is the only bound on the work done.
package rdf
