package rdf

import (
	"errors"
	"maps"
	"slices"
)

// Graph is an ordered list of facts plus the metadata needed to resolve them.
type Graph struct {
	// Base is the base namespace, or "" when the document declared none.
	Base string
	// Prefixes maps prefix tokens, including their colon ("ex:"), to namespaces.
	Prefixes map[string]string
	// Triples holds the facts in document order.
	Triples []Triple
}

// NewGraph returns an empty graph seeded with the default prefixes.
func NewGraph() *Graph {
	return &Graph{Prefixes: DefaultPrefixes()}
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	return &Graph{
		Base:     g.Base,
		Prefixes: maps.Clone(g.Prefixes),
		Triples:  slices.Clone(g.Triples),
	}
}

// Add appends facts to the graph.
func (g *Graph) Add(triples ...Triple) {
	g.Triples = append(g.Triples, triples...)
}

// Len returns the number of facts.
func (g *Graph) Len() int { return len(g.Triples) }

// IsCanonical reports whether every fact is fully resolved.
func (g *Graph) IsCanonical() bool {
	for _, t := range g.Triples {
		if !t.IsCanonical() {
			return false
		}
	}
	return true
}

// Canonicalize rewrites every identifier to its absolute form. It is atomic:
// if any fact uses an undefined prefix the graph is left unchanged and the
// returned error joins one *UnresolvedPrefixError per offending fact.
func (g *Graph) Canonicalize() error {
	resolved := make([]Triple, len(g.Triples))
	var errs []error
	for i, t := range g.Triples {
		c, err := t.Canonicalize(g.Base, g.Prefixes)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved[i] = c
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	g.Triples = resolved
	return nil
}

// CanonicalizeLenient resolves every fact it can, drops the facts that use an
// undefined prefix and returns them.
func (g *Graph) CanonicalizeLenient() []Triple {
	kept := make([]Triple, 0, len(g.Triples))
	var dropped []Triple
	for _, t := range g.Triples {
		c, err := t.Canonicalize(g.Base, g.Prefixes)
		if err != nil {
			dropped = append(dropped, t)
			continue
		}
		kept = append(kept, c)
	}
	g.Triples = kept
	return dropped
}

// Merge appends the facts of other and adopts its prefixes and base where
// this graph has none.
func (g *Graph) Merge(other *Graph) {
	if g.Prefixes == nil {
		g.Prefixes = map[string]string{}
	}
	for prefix, ns := range other.Prefixes {
		if _, ok := g.Prefixes[prefix]; !ok {
			g.Prefixes[prefix] = ns
		}
	}
	if g.Base == "" {
		g.Base = other.Base
	}
	g.Triples = append(g.Triples, other.Triples...)
}

// StartQuery clones the graph, canonicalizes the clone, infers RDFS facts up
// to depth and returns a query builder over the original facts followed by
// the inferred ones. The receiver is never modified.
func (g *Graph) StartQuery(depth int) (*QueryBuilder, error) {
	return g.StartQueryWith(depth)
}

// StartQueryWith is StartQuery with reasoner options.
func (g *Graph) StartQueryWith(depth int, opts ...ReasonOption) (*QueryBuilder, error) {
	clone := g.Clone()
	if err := clone.Canonicalize(); err != nil {
		return nil, err
	}
	reasoner := NewReasoner(RDFSRules(), opts...)
	inferred := reasoner.InferredTriples(clone.Triples, depth)
	combined := make([]Triple, 0, len(clone.Triples)+len(inferred))
	combined = append(combined, clone.Triples...)
	combined = append(combined, inferred...)
	return Start(combined), nil
}
