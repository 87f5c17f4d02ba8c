package rdf

import (
	"slices"
	"strings"
)

// QueryBuilder filters a fact list. Every filter returns a new builder and
// keeps the relative order of the surviving facts; the receiver is never
// modified, so a builder can be branched.
type QueryBuilder struct {
	triples []Triple
}

// Start returns a builder over a copy of triples.
func Start(triples []Triple) *QueryBuilder {
	return &QueryBuilder{triples: slices.Clone(triples)}
}

// Select keeps the facts for which keep returns true.
func (q *QueryBuilder) Select(keep func(Triple) bool) *QueryBuilder {
	out := make([]Triple, 0, len(q.triples))
	for _, t := range q.triples {
		if keep(t) {
			out = append(out, t)
		}
	}
	return &QueryBuilder{triples: out}
}

// Subject keeps the facts whose subject string satisfies keep.
func (q *QueryBuilder) Subject(keep func(string) bool) *QueryBuilder {
	return q.Select(func(t Triple) bool { return keep(t.Subject.String()) })
}

// Predicate keeps the facts whose predicate string satisfies keep.
func (q *QueryBuilder) Predicate(keep func(string) bool) *QueryBuilder {
	return q.Select(func(t Triple) bool { return keep(t.Predicate.String()) })
}

// Object keeps the facts whose object string satisfies keep.
func (q *QueryBuilder) Object(keep func(string) bool) *QueryBuilder {
	return q.Select(func(t Triple) bool { return keep(objectString(t.Object)) })
}

// Match keeps the facts matching pattern. See MatchesPattern.
func (q *QueryBuilder) Match(pattern Triple) *QueryBuilder {
	return q.Select(func(t Triple) bool { return MatchesPattern(t, pattern) })
}

// Count returns the number of remaining facts.
func (q *QueryBuilder) Count() int { return len(q.triples) }

// Value returns the object of the first remaining fact. The boolean is false
// when no fact remains.
func (q *QueryBuilder) Value() (Object, bool) {
	if len(q.triples) == 0 {
		return nil, false
	}
	return q.triples[0].Object, true
}

// Values returns the objects of all remaining facts in order. The boolean is
// false when no fact remains.
func (q *QueryBuilder) Values() ([]Object, bool) {
	if len(q.triples) == 0 {
		return nil, false
	}
	out := make([]Object, len(q.triples))
	for i, t := range q.triples {
		out[i] = t.Object
	}
	return out, true
}

// Query returns the remaining facts.
func (q *QueryBuilder) Query() []Triple {
	return slices.Clone(q.triples)
}

// Equals returns a string predicate matching want exactly.
func Equals(want string) func(string) bool {
	return func(s string) bool { return s == want }
}

// HasPrefix returns a string predicate matching strings starting with prefix.
func HasPrefix(prefix string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, prefix) }
}

// HasSuffix returns a string predicate matching strings ending with suffix.
func HasSuffix(suffix string) func(string) bool {
	return func(s string) bool { return strings.HasSuffix(s, suffix) }
}

// Contains returns a string predicate matching strings containing substr.
func Contains(substr string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, substr) }
}
