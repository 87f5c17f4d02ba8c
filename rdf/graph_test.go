package rdf

import (
	"errors"
	"maps"
	"testing"
)

func TestGraphCanonicalize(t *testing.T) {
	g := mustParse(t, `
@base <http://base.org/> .
@prefix ex: <http://example.org/> .
ex:a <rel> :b .
_:n ex:p "v" .
`)
	if g.IsCanonical() {
		t.Fatal("parsed graph should not be canonical yet")
	}
	if err := g.Canonicalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsCanonical() {
		t.Fatal("expected canonical graph")
	}
	assertTriples(t, g.Triples, []string{
		"http://example.org/a http://base.org/rel http://base.org/b .",
		`_:n http://example.org/p "v"^^http://www.w3.org/2001/XMLSchema#string .`,
	})
	if g.Triples[1].Subject.Kind != KindBlankNode {
		t.Fatalf("expected blank node kind, got %s", g.Triples[1].Subject.Kind)
	}

	before := tripleStrings(g.Triples)
	if err := g.Canonicalize(); err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	assertTriples(t, g.Triples, before)
}

func TestGraphCanonicalizeIsAtomic(t *testing.T) {
	g := mustParse(t, `
@prefix ex: <http://example.org/> .
ex:a ex:p ex:b .
foo:a ex:p ex:b .
ex:a ex:p bar:b .
`)
	before := tripleStrings(g.Triples)

	err := g.Canonicalize()
	if !errors.Is(err, ErrUnresolvedPrefix) {
		t.Fatalf("expected ErrUnresolvedPrefix, got %v", err)
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined errors, got %T", err)
	}
	var prefixes []string
	for _, e := range joined.Unwrap() {
		var prefixErr *UnresolvedPrefixError
		if !errors.As(e, &prefixErr) {
			t.Fatalf("unexpected error %T: %v", e, e)
		}
		prefixes = append(prefixes, prefixErr.Prefix)
	}
	if len(prefixes) != 2 || prefixes[0] != "foo:" || prefixes[1] != "bar:" {
		t.Fatalf("unexpected prefixes: %v", prefixes)
	}
	assertTriples(t, g.Triples, before)
	if Code(err) != ErrCodeUnresolvedPrefix {
		t.Fatalf("unexpected code: %s", Code(err))
	}
}

func TestGraphCanonicalizeLenient(t *testing.T) {
	g := mustParse(t, `
@prefix ex: <http://example.org/> .
ex:a ex:p ex:b .
foo:a ex:p ex:b .
`)
	dropped := g.CanonicalizeLenient()
	if len(dropped) != 1 || dropped[0].Subject.Prefix != "foo:" {
		t.Fatalf("unexpected dropped facts: %v", tripleStrings(dropped))
	}
	assertTriples(t, g.Triples, []string{"http://example.org/a http://example.org/p http://example.org/b ."})
}

func TestGraphDefaultPrefixes(t *testing.T) {
	g := NewGraph()
	want := map[string]string{"rdf:": RDFNamespace, "xsd:": XSDNamespace}
	if !maps.Equal(g.Prefixes, want) {
		t.Fatalf("unexpected default prefixes: %v", g.Prefixes)
	}
	if g.Len() != 0 {
		t.Fatalf("expected empty graph, got %d facts", g.Len())
	}
}

func TestGraphCloneIsIndependent(t *testing.T) {
	g := mustParse(t, testPrefixes+"ex:a ex:p ex:b .")
	clone := g.Clone()
	clone.Add(exTriple("x", "y", "z"))
	clone.Prefixes["new:"] = "http://new.org/"
	clone.Base = "http://changed.org/"
	clone.Triples[0] = exTriple("c", "d", "e")

	if g.Len() != 1 {
		t.Fatalf("original graph grew to %d facts", g.Len())
	}
	if _, ok := g.Prefixes["new:"]; ok {
		t.Fatal("clone prefix leaked into original")
	}
	if g.Base != "" {
		t.Fatalf("clone base leaked into original: %q", g.Base)
	}
	if g.Triples[0].Subject.String() != "ex:a" {
		t.Fatalf("clone fact leaked into original: %s", g.Triples[0])
	}
}

func TestGraphMerge(t *testing.T) {
	a := mustParse(t, "@prefix ex: <http://example.org/> .\nex:a ex:p ex:b .")
	b := mustParse(t, "@base <http://base.org/> .\n@prefix ex: <http://other.org/> .\n@prefix foo: <http://foo.org/> .\nex:c ex:p ex:d .")
	a.Merge(b)

	if a.Len() != 2 {
		t.Fatalf("expected 2 facts, got %d", a.Len())
	}
	if a.Prefixes["ex:"] != "http://example.org/" {
		t.Fatalf("existing prefix was overwritten: %s", a.Prefixes["ex:"])
	}
	if a.Prefixes["foo:"] != "http://foo.org/" {
		t.Fatalf("missing merged prefix: %v", a.Prefixes)
	}
	if a.Base != "http://base.org/" {
		t.Fatalf("expected adopted base, got %q", a.Base)
	}
}

func TestGraphStartQueryLeavesReceiver(t *testing.T) {
	g := mustParse(t, testPrefixes+`
ex:Dog rdfs:subClassOf ex:Animal .
ex:rex a ex:Dog .
`)
	before := tripleStrings(g.Triples)

	q, err := g.StartQuery(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTriples(t, g.Triples, before)
	if g.IsCanonical() {
		t.Fatal("receiver must not be canonicalized")
	}

	facts := q.Query()
	if len(facts) <= g.Len() {
		t.Fatalf("expected inferred facts after the originals, got %d", len(facts))
	}
	for i, fact := range facts {
		if !fact.IsCanonical() {
			t.Fatalf("query fact %d is not canonical: %s", i, fact)
		}
	}
	if facts[0].String() != "http://example.org/Dog http://www.w3.org/2000/01/rdf-schema#subClassOf http://example.org/Animal ." {
		t.Fatalf("originals must come first, got %s", facts[0])
	}
}

func TestGraphStartQueryUnresolvedPrefix(t *testing.T) {
	g := mustParse(t, "foo:a foo:b foo:c .")
	if _, err := g.StartQuery(1); !errors.Is(err, ErrUnresolvedPrefix) {
		t.Fatalf("expected ErrUnresolvedPrefix, got %v", err)
	}
}
