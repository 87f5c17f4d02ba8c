package rdf

import (
	"fmt"
	"strings"
)

// Triple is an RDF fact.
//
// Two triples are equal, and hash identically, iff their canonical printed
// forms are character-identical. Use Key for map keys and Equal for
// comparisons rather than ==, which would compare fields.
type Triple struct {
	Subject   Resource
	Predicate Relationship
	Object    Object
}

// NewTriple builds a triple from its three roles.
func NewTriple(subject Resource, predicate Relationship, object Object) Triple {
	return Triple{Subject: subject, Predicate: predicate, Object: object}
}

// String returns the canonical printed form "subject predicate object .".
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject.String(), t.Predicate.String(), objectString(t.Object))
}

// Key returns the canonical string used for equality, hashing and sorting.
func (t Triple) Key() string { return t.String() }

// Equal reports whether both triples print identically.
func (t Triple) Equal(other Triple) bool { return t.Key() == other.Key() }

// Compare orders triples field-wise: subject, then predicate, then object.
func (t Triple) Compare(other Triple) int {
	if c := strings.Compare(t.Subject.String(), other.Subject.String()); c != 0 {
		return c
	}
	if c := strings.Compare(t.Predicate.String(), other.Predicate.String()); c != 0 {
		return c
	}
	return strings.Compare(objectString(t.Object), objectString(other.Object))
}

// IsCanonical reports whether every identifier in the triple is Full or BlankNode.
func (t Triple) IsCanonical() bool {
	return t.Subject.IsCanonical() && t.Predicate.IsCanonical() && objectIsCanonical(t.Object)
}

// Canonicalize resolves subject, predicate, resource objects and literal
// datatypes against base and prefixes.
func (t Triple) Canonicalize(base string, prefixes map[string]string) (Triple, error) {
	subject, err := t.Subject.Canonicalize(base, prefixes)
	if err != nil {
		return t, err
	}
	predicate, err := t.Predicate.Canonicalize(base, prefixes)
	if err != nil {
		return t, err
	}
	object, err := canonicalizeObject(t.Object, base, prefixes)
	if err != nil {
		return t, err
	}
	return Triple{Subject: Resource{URI: subject}, Predicate: Relationship{URI: predicate}, Object: object}, nil
}

// Matches reports whether t matches pattern. See MatchesPattern.
func (t Triple) Matches(pattern Triple) bool { return MatchesPattern(t, pattern) }

// MatchesPattern reports whether fact matches pattern. Blank nodes in the
// pattern act as wildcards; every other role must be structurally equal.
func MatchesPattern(fact, pattern Triple) bool {
	if !pattern.Subject.IsBlank() && pattern.Subject.URI != fact.Subject.URI {
		return false
	}
	if !pattern.Predicate.IsBlank() && pattern.Predicate.URI != fact.Predicate.URI {
		return false
	}
	switch want := pattern.Object.(type) {
	case Literal:
		got, ok := fact.Object.(Literal)
		return ok && got == want
	case Resource:
		if want.IsBlank() {
			return true
		}
		got, ok := fact.Object.(Resource)
		return ok && got.URI == want.URI
	default:
		return pattern.Object == nil
	}
}

func objectString(o Object) string {
	if o == nil {
		return ""
	}
	return o.String()
}
