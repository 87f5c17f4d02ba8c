package rdf

import (
	"slices"
	"testing"
)

const spidermanDoc = `
@base <http://example.org/> .
@prefix ex: <http://example.org/> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix rel: <http://www.perceive.net/schemas/relationship/> .

ex:green-goblin
    rel:enemyOf ex:spiderman ;
    a foaf:Person ;
    foaf:name "Green Goblin" .

ex:spiderman
    rel:enemyOf ex:green-goblin ;
    a foaf:Person ;
    foaf:name "Spiderman", "Человек-паук"@ru .
`

const (
	spiderman = "http://example.org/spiderman"
	foafName  = "http://xmlns.com/foaf/0.1/name"
)

func spidermanQuery(t *testing.T, depth int) *QueryBuilder {
	t.Helper()
	q, err := mustParse(t, spidermanDoc).StartQuery(depth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return q
}

func TestQueryValue(t *testing.T) {
	name, ok := spidermanQuery(t, 2).
		Subject(Equals(spiderman)).
		Predicate(Equals(foafName)).
		Value()
	if !ok {
		t.Fatal("expected a value")
	}
	lit, isLiteral := AsLiteral(name)
	if !isLiteral || lit.Value != `"Spiderman"` {
		t.Fatalf("unexpected name: %v", name)
	}
}

func TestQueryValues(t *testing.T) {
	values, ok := spidermanQuery(t, 2).
		Subject(Equals(spiderman)).
		Predicate(Equals(foafName)).
		Values()
	if !ok {
		t.Fatal("expected values")
	}
	// Two stated names, then the two blank nodes rdfs1 introduces for them.
	if len(values) != 4 {
		t.Fatalf("expected 4 values, got %d: %v", len(values), values)
	}
	if lit, _ := AsLiteral(values[1]); lit.Language != "ru" {
		t.Fatalf("expected the Russian name second, got %v", values[1])
	}
	for _, v := range values[2:] {
		r, ok := AsResource(v)
		if !ok || !r.IsBlank() {
			t.Fatalf("expected blank node, got %v", v)
		}
	}
}

func TestQueryInferredTypes(t *testing.T) {
	types, ok := spidermanQuery(t, 2).
		Subject(Equals(spiderman)).
		Predicate(HasSuffix("#type")).
		Values()
	if !ok {
		t.Fatal("expected types")
	}
	var got []string
	for _, v := range types {
		got = append(got, v.String())
	}
	want := []string{"http://xmlns.com/foaf/0.1/Person", RDFSNamespace + "Resource"}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected types:\n got: %q\nwant: %q", got, want)
	}
}

func TestQueryNoMatch(t *testing.T) {
	q := spidermanQuery(t, 1).Subject(Equals("http://example.org/batman"))
	if q.Count() != 0 {
		t.Fatalf("expected no facts, got %d", q.Count())
	}
	if v, ok := q.Value(); ok || v != nil {
		t.Fatalf("expected no value, got %v", v)
	}
	if vs, ok := q.Values(); ok || vs != nil {
		t.Fatalf("expected no values, got %v", vs)
	}
	if facts := q.Query(); len(facts) != 0 {
		t.Fatalf("expected empty result, got %v", tripleStrings(facts))
	}
}

func TestQueryDepthZeroKeepsOriginals(t *testing.T) {
	g := mustParse(t, spidermanDoc)
	q, err := g.StartQuery(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Count() != g.Len() {
		t.Fatalf("expected %d facts, got %d", g.Len(), q.Count())
	}
}

func TestQueryBranching(t *testing.T) {
	base := spidermanQuery(t, 1)
	total := base.Count()

	names := base.Predicate(Equals(foafName))
	enemies := base.Predicate(HasPrefix("http://www.perceive.net/"))
	if names.Count() == 0 || enemies.Count() != 2 {
		t.Fatalf("unexpected branch counts: names=%d enemies=%d", names.Count(), enemies.Count())
	}
	if base.Count() != total {
		t.Fatalf("filter modified its receiver: %d -> %d", total, base.Count())
	}
}

func TestQueryResultIsACopy(t *testing.T) {
	q := Start([]Triple{exTriple("a", "p", "b")})
	facts := q.Query()
	facts[0] = exTriple("x", "y", "z")
	if got, _ := q.Value(); got.String() != "http://example.org/b" {
		t.Fatalf("builder changed through its result: %v", got)
	}
}

func TestStartCopiesInput(t *testing.T) {
	facts := []Triple{exTriple("a", "p", "b")}
	q := Start(facts)
	facts[0] = exTriple("x", "y", "z")
	if got, _ := q.Value(); got.String() != "http://example.org/b" {
		t.Fatalf("builder changed through its input: %v", got)
	}
}

func TestQueryMatchPattern(t *testing.T) {
	q := spidermanQuery(t, 1)
	pattern := NewTriple(NewResource(BlankURI("s")), NewRelationship(FullURI(foafName)), NewResource(BlankURI("o")))
	if got, want := q.Match(pattern).Count(), q.Predicate(Equals(foafName)).Count(); got != want {
		t.Fatalf("Match found %d facts, Predicate found %d", got, want)
	}
}

func TestQuerySelectAndObject(t *testing.T) {
	q := spidermanQuery(t, 1)
	literals := q.Select(func(f Triple) bool { return IsLiteral(f.Object) })
	for _, fact := range literals.Query() {
		if !IsLiteral(fact.Object) {
			t.Fatalf("non-literal object survived: %s", fact)
		}
	}
	if got := q.Object(Contains("green-goblin")).Count(); got != 1 {
		t.Fatalf("expected one fact pointing at green-goblin, got %d", got)
	}
}

func TestStringPredicates(t *testing.T) {
	cases := []struct {
		name string
		pred func(string) bool
		in   string
		want bool
	}{
		{"equals", Equals("abc"), "abc", true},
		{"equals other", Equals("abc"), "abcd", false},
		{"prefix", HasPrefix("http://"), "http://x", true},
		{"suffix", HasSuffix("#type"), RDFNamespace + "type", true},
		{"contains", Contains("example"), "http://example.org/", true},
		{"contains other", Contains("nope"), "http://example.org/", false},
	}
	for _, tc := range cases {
		if got := tc.pred(tc.in); got != tc.want {
			t.Fatalf("%s(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestQueryChainEqualsConjunction(t *testing.T) {
	facts := []Triple{
		exTriple("a", "knows", "b"),
		exTriple("b", "knows", "a"),
		exTriple("a", "likes", "c"),
		exTriple("a", "knows", "c"),
		exTriple("c", "knows", "a"),
		exTriple("a", "knows", "d"),
	}
	subject := HasSuffix("/a")
	predicate := Contains("know")

	chained := Start(facts).Subject(subject).Predicate(predicate).Query()
	single := Start(facts).Select(func(f Triple) bool {
		return subject(f.Subject.String()) && predicate(f.Predicate.String())
	}).Query()

	want := []string{
		"http://example.org/a http://example.org/knows http://example.org/b .",
		"http://example.org/a http://example.org/knows http://example.org/c .",
		"http://example.org/a http://example.org/knows http://example.org/d .",
	}
	assertTriples(t, chained, want)
	assertTriples(t, single, want)

	reversed := Start(facts).Predicate(predicate).Subject(subject).Query()
	assertTriples(t, reversed, want)
}
