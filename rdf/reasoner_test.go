package rdf

import (
	"slices"
	"strings"
	"sync"
	"testing"
)

const (
	subClassOfIRI = RDFSNamespace + "subClassOf"
	typeIRI       = RDFNamespace + "type"
)

const subClassChain = testPrefixes + `
ex:x rdfs:subClassOf ex:y .
ex:y rdfs:subClassOf ex:z .
ex:z rdfs:subClassOf ex:w .
`

func subClassFacts(triples []Triple) []string {
	return tripleStrings(Start(triples).Predicate(Equals(subClassOfIRI)).Query())
}

func TestInferredTriplesDepthZero(t *testing.T) {
	facts := mustCanonical(t, subClassChain)
	if got := GetInferredTriples(facts, 0); len(got) != 0 {
		t.Fatalf("expected nothing at depth 0, got %v", tripleStrings(got))
	}
	if got := GetInferredTriples(nil, 3); len(got) != 0 {
		t.Fatalf("expected nothing from no facts, got %v", tripleStrings(got))
	}
}

func TestInferredTriplesFollowsChains(t *testing.T) {
	facts := mustCanonical(t, subClassChain)

	depth1 := subClassFacts(GetInferredTriples(facts, 1))
	want1 := []string{
		"http://example.org/x " + subClassOfIRI + " http://example.org/z .",
		"http://example.org/y " + subClassOfIRI + " http://example.org/w .",
	}
	if !slices.Equal(depth1, want1) {
		t.Fatalf("depth 1:\n got: %q\nwant: %q", depth1, want1)
	}

	depth2 := subClassFacts(GetInferredTriples(facts, 2))
	want2 := []string{
		"http://example.org/x " + subClassOfIRI + " http://example.org/w .",
		"http://example.org/x " + subClassOfIRI + " http://example.org/z .",
		"http://example.org/y " + subClassOfIRI + " http://example.org/w .",
	}
	if !slices.Equal(depth2, want2) {
		t.Fatalf("depth 2:\n got: %q\nwant: %q", depth2, want2)
	}
}

func TestInferredTriplesComposesRules(t *testing.T) {
	facts := mustCanonical(t, testPrefixes+`
ex:employer rdfs:domain ex:Person .
ex:Person rdfs:subClassOf ex:Agent .
ex:john ex:employer ex:acme .
`)
	isPerson := "http://example.org/john " + typeIRI + " http://example.org/Person ."
	isAgent := "http://example.org/john " + typeIRI + " http://example.org/Agent ."

	depth1 := tripleStrings(GetInferredTriples(facts, 1))
	if !slices.Contains(depth1, isPerson) || slices.Contains(depth1, isAgent) {
		t.Fatalf("depth 1 should type john as Person only: %q", depth1)
	}
	depth2 := tripleStrings(GetInferredTriples(facts, 2))
	if !slices.Contains(depth2, isPerson) || !slices.Contains(depth2, isAgent) {
		t.Fatalf("depth 2 should type john as Person and Agent: %q", depth2)
	}
}

func TestInferredTriplesExcludesInputAndDuplicates(t *testing.T) {
	facts := mustCanonical(t, testPrefixes+`
ex:x rdfs:subClassOf ex:y .
ex:y rdfs:subClassOf ex:z .
ex:x rdfs:subClassOf ex:z .
ex:x rdfs:subClassOf ex:y .
`)
	inferred := GetInferredTriples(facts, 3)
	input := make(map[string]bool)
	for _, f := range facts {
		input[f.Key()] = true
	}
	seen := make(map[string]bool)
	for _, f := range inferred {
		if input[f.Key()] {
			t.Fatalf("input fact returned as inferred: %s", f)
		}
		if seen[f.Key()] {
			t.Fatalf("duplicate inferred fact: %s", f)
		}
		seen[f.Key()] = true
	}
	if !slices.IsSortedFunc(inferred, func(a, b Triple) int { return strings.Compare(a.Key(), b.Key()) }) {
		t.Fatalf("inferred facts are not sorted: %q", tripleStrings(inferred))
	}
}

func TestInferredTriplesSingleRule(t *testing.T) {
	facts := mustParse(t, `_:a rdfs:domain _:x . _:y _:a _:z .`).Triples
	r := NewReasoner([]Rule{RDFS2}, OptVocabulary(PrefixedVocabulary))
	assertTriples(t, r.InferredTriples(facts, 1), []string{"_:y rdf:type _:x ."})
}

func TestInferredTriplesRuleOneBlankNodes(t *testing.T) {
	facts := mustCanonical(t, testPrefixes+`ex:s ex:p "v" .`)
	inferred := GetInferredTriples(facts, 1)
	assertTriples(t, inferred, []string{
		"_:blank1 " + typeIRI + " " + XSDNamespace + "string .",
		"http://example.org/s http://example.org/p _:blank1 .",
	})
	if inferred[0].Subject.Kind != KindBlankNode {
		t.Fatalf("expected resolved blank node, got %s", inferred[0].Subject.Kind)
	}

	// The counter restarts with every call.
	again := GetInferredTriples(facts, 1)
	assertTriples(t, again, tripleStrings(inferred))
}

func TestInferredTriplesRuleOneSkipsParsedBlankNodes(t *testing.T) {
	facts := mustCanonical(t, testPrefixes+`ex:s ex:p [ ex:q "v" ] .`)
	if got := facts[0].Subject.String(); got != "_:blank1" {
		t.Fatalf("expected parser to name the node _:blank1, got %s", got)
	}

	inferred := NewReasoner([]Rule{RDFS1}).InferredTriples(facts, 1)
	assertTriples(t, inferred, []string{
		"_:blank1 http://example.org/q _:blank2 .",
		"_:blank2 " + typeIRI + " " + XSDNamespace + "string .",
	})

	for _, f := range GetInferredTriples(facts, 2) {
		if f.String() == "_:blank1 "+typeIRI+" "+XSDNamespace+"string ." {
			t.Fatalf("document node typed as a literal datatype: %s", f)
		}
	}
}

func TestInferredTriplesParallelMatchesSerial(t *testing.T) {
	facts := mustCanonical(t, testPrefixes+`
ex:employer rdfs:domain ex:Person ;
    rdfs:range ex:Organization ;
    rdfs:subPropertyOf ex:worksWith .
ex:Person rdfs:subClassOf ex:Agent .
ex:Agent a rdfs:Class .
ex:john ex:employer ex:acme ;
    ex:name "John" , "Johnny"@en .
`)
	serial := tripleStrings(NewReasoner(RDFSRules()).InferredTriples(facts, 3))
	parallel := tripleStrings(NewReasoner(RDFSRules(), OptWorkers(8)).InferredTriples(facts, 3))
	if !slices.Equal(serial, parallel) {
		t.Fatalf("parallel result differs:\nserial:   %q\nparallel: %q", serial, parallel)
	}
}

func TestInferredTriplesBucketed(t *testing.T) {
	facts := mustCanonical(t, subClassChain)
	r := NewReasoner(RDFSRules(), OptBucketedLevels(true))

	// Each level only sees the previous level's output. x subClassOf w needs an
	// input fact and a derived one, so it is never produced.
	got := subClassFacts(r.InferredTriples(facts, 2))
	want := []string{
		"http://example.org/x " + subClassOfIRI + " http://example.org/z .",
		"http://example.org/y " + subClassOfIRI + " http://example.org/w .",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("bucketed depth 2:\n got: %q\nwant: %q", got, want)
	}
}

func TestInferredTriplesDoesNotModifyInput(t *testing.T) {
	facts := mustCanonical(t, subClassChain)
	before := tripleStrings(facts)
	GetInferredTriples(facts, 2)
	assertTriples(t, facts, before)
}

type levelRecorder struct {
	mu     sync.Mutex
	levels []LevelStats
}

func (r *levelRecorder) ObserveLevel(stats LevelStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels = append(r.levels, stats)
}

func TestReasonerObserver(t *testing.T) {
	facts := mustCanonical(t, subClassChain)
	rec := &levelRecorder{}
	NewReasoner(RDFSRules(), OptObserver(rec)).InferredTriples(facts, 2)

	if len(rec.levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(rec.levels))
	}
	first := rec.levels[0]
	if first.Level != 1 || first.WorkingSet != 3 {
		t.Fatalf("unexpected first level: %+v", first)
	}
	if first.Fired["rdfs11"] != 2 {
		t.Fatalf("expected rdfs11 to fire twice, got %d", first.Fired["rdfs11"])
	}
	if first.Fired["rdfs4"] != 3 {
		t.Fatalf("expected rdfs4 to fire once per fact, got %d", first.Fired["rdfs4"])
	}
	if first.Produced != 2*3+2 {
		t.Fatalf("unexpected produced count: %d", first.Produced)
	}
	if rec.levels[1].Level != 2 || rec.levels[1].WorkingSet <= first.WorkingSet {
		t.Fatalf("unexpected second level: %+v", rec.levels[1])
	}
}

func TestReasonerArityPanicPropagates(t *testing.T) {
	defer func() {
		if _, ok := recover().(*RuleArityError); !ok {
			t.Fatal("expected *RuleArityError panic")
		}
	}()
	NewReasoner([]Rule{overproducingRule{}}).InferredTriples([]Triple{exTriple("s", "p", "o")}, 1)
	t.Fatal("expected panic")
}
