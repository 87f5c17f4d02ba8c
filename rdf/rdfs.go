package rdf

import "strconv"

// RDFSRule is one of the thirteen RDF-Schema entailment patterns
// (RDF 1.1 Semantics, section 9.2.1).
type RDFSRule uint8

const (
	// RDFS1: s p "l"^^d  =>  _:b rdf:type d . s p _:b .
	RDFS1 RDFSRule = iota + 1
	// RDFS2: a rdfs:domain x . y a z  =>  y rdf:type x .
	RDFS2
	// RDFS3: a rdfs:range x . y a z  =>  z rdf:type x .
	RDFS3
	// RDFS4: x a y  =>  x rdf:type rdfs:Resource . y rdf:type rdfs:Resource .
	RDFS4
	// RDFS5: x rdfs:subPropertyOf y . y rdfs:subPropertyOf z  =>  x rdfs:subPropertyOf z .
	RDFS5
	// RDFS6: x rdf:type rdf:Property  =>  x rdfs:subPropertyOf x .
	RDFS6
	// RDFS7: a rdfs:subPropertyOf b . x a y  =>  x b y .
	RDFS7
	// RDFS8: x rdf:type rdfs:Class  =>  x rdfs:subClassOf rdfs:Resource .
	RDFS8
	// RDFS9: x rdfs:subClassOf y . z rdf:type x  =>  z rdf:type y .
	RDFS9
	// RDFS10: x rdf:type rdfs:Class  =>  x rdfs:subClassOf x .
	RDFS10
	// RDFS11: x rdfs:subClassOf y . y rdfs:subClassOf z  =>  x rdfs:subClassOf z .
	RDFS11
	// RDFS12: x rdf:type rdfs:ContainerMembershipProperty  =>  x rdfs:subPropertyOf rdfs:member .
	RDFS12
	// RDFS13: x rdf:type rdfs:Datatype  =>  x rdfs:subClassOf rdfs:Literal .
	RDFS13
)

// RDFSRules returns the thirteen RDFS rules in order.
func RDFSRules() []Rule {
	return []Rule{
		RDFS1, RDFS2, RDFS3,
		RDFS4, RDFS5, RDFS6,
		RDFS7, RDFS8, RDFS9,
		RDFS10, RDFS11, RDFS12,
		RDFS13,
	}
}

// Name returns "rdfs1" ... "rdfs13".
func (r RDFSRule) Name() string { return "rdfs" + strconv.Itoa(int(r)) }

// InputArity returns 2 for the rules joining two facts and 1 otherwise.
func (r RDFSRule) InputArity() int {
	switch r {
	case RDFS2, RDFS3, RDFS5, RDFS7, RDFS9, RDFS11:
		return 2
	default:
		return 1
	}
}

// OutputArity returns 2 for rdfs1 and rdfs4 and 1 otherwise.
func (r RDFSRule) OutputArity() int {
	switch r {
	case RDFS1, RDFS4:
		return 2
	default:
		return 1
	}
}

// Guard reports whether the rule applies to facts.
func (r RDFSRule) Guard(ctx *RuleContext, facts []Triple) bool {
	v := ctx.Vocabulary
	switch r {
	case RDFS1:
		lit, ok := AsLiteral(facts[0].Object)
		return ok && lit.Datatype.String() != ""
	case RDFS2:
		return domainJoin(v, facts[0], facts[1]) || domainJoin(v, facts[1], facts[0])
	case RDFS3:
		return rangeJoin(v, facts[0], facts[1]) || rangeJoin(v, facts[1], facts[0])
	case RDFS4:
		return IsResource(facts[0].Object)
	case RDFS5:
		return chainJoin(v.SubPropertyOf(), facts[0], facts[1]) || chainJoin(v.SubPropertyOf(), facts[1], facts[0])
	case RDFS6:
		return isTyped(v, facts[0], v.Property())
	case RDFS7:
		return subPropertyJoin(v, facts[0], facts[1]) || subPropertyJoin(v, facts[1], facts[0])
	case RDFS8, RDFS10:
		return isTyped(v, facts[0], v.Class())
	case RDFS9:
		return subClassJoin(v, facts[0], facts[1]) || subClassJoin(v, facts[1], facts[0])
	case RDFS11:
		return chainJoin(v.SubClassOf(), facts[0], facts[1]) || chainJoin(v.SubClassOf(), facts[1], facts[0])
	case RDFS12:
		return isTyped(v, facts[0], v.ContainerMembershipProperty())
	case RDFS13:
		return isTyped(v, facts[0], v.Datatype())
	default:
		return false
	}
}

// Produce returns the facts derived from facts. Call it only when Guard holds.
func (r RDFSRule) Produce(ctx *RuleContext, facts []Triple) []Triple {
	v := ctx.Vocabulary
	a, b := facts[0], Triple{}
	if len(facts) > 1 {
		b = facts[1]
	}
	switch r {
	case RDFS1:
		lit, _ := AsLiteral(a.Object)
		blank := ctx.NewBlankNode()
		return []Triple{
			typed(v, Resource{URI: blank}, lit.Datatype),
			{Subject: a.Subject, Predicate: a.Predicate, Object: Resource{URI: blank}},
		}
	case RDFS2:
		if !domainJoin(v, a, b) {
			a, b = b, a
		}
		return []Triple{typed(v, b.Subject, a.Object.(Resource).URI)}
	case RDFS3:
		if !rangeJoin(v, a, b) {
			a, b = b, a
		}
		return []Triple{typed(v, b.Object.(Resource), a.Object.(Resource).URI)}
	case RDFS4:
		return []Triple{
			typed(v, a.Subject, v.Resource()),
			typed(v, a.Object.(Resource), v.Resource()),
		}
	case RDFS5:
		return []Triple{chain(v.SubPropertyOf(), a, b)}
	case RDFS6:
		return []Triple{relate(a.Subject, v.SubPropertyOf(), a.Subject)}
	case RDFS7:
		if !subPropertyJoin(v, a, b) {
			a, b = b, a
		}
		return []Triple{{
			Subject:   b.Subject,
			Predicate: Relationship{URI: a.Object.(Resource).URI},
			Object:    b.Object,
		}}
	case RDFS8:
		return []Triple{relate(a.Subject, v.SubClassOf(), Resource{URI: v.Resource()})}
	case RDFS9:
		if !subClassJoin(v, a, b) {
			a, b = b, a
		}
		return []Triple{typed(v, b.Subject, a.Object.(Resource).URI)}
	case RDFS10:
		return []Triple{relate(a.Subject, v.SubClassOf(), a.Subject)}
	case RDFS11:
		return []Triple{chain(v.SubClassOf(), a, b)}
	case RDFS12:
		return []Triple{relate(a.Subject, v.SubPropertyOf(), Resource{URI: v.Member()})}
	case RDFS13:
		return []Triple{relate(a.Subject, v.SubClassOf(), Resource{URI: v.Literal()})}
	default:
		return nil
	}
}

func sameTerm(u, term URI) bool { return u.String() == term.String() }

// refersTo reports whether o is a resource printing the same as u.
func refersTo(o Object, u URI) bool {
	r, ok := o.(Resource)
	return ok && sameTerm(r.URI, u)
}

func isTyped(v Vocabulary, t Triple, class URI) bool {
	return sameTerm(t.Predicate.URI, v.Type()) && refersTo(t.Object, class)
}

// domainJoin: schema is "a rdfs:domain x" and use is "y a z".
func domainJoin(v Vocabulary, schema, use Triple) bool {
	return sameTerm(schema.Predicate.URI, v.Domain()) &&
		IsResource(schema.Object) &&
		sameTerm(use.Predicate.URI, schema.Subject.URI)
}

// rangeJoin: schema is "a rdfs:range x" and use is "y a z" with z a resource.
func rangeJoin(v Vocabulary, schema, use Triple) bool {
	return sameTerm(schema.Predicate.URI, v.Range()) &&
		IsResource(schema.Object) &&
		sameTerm(use.Predicate.URI, schema.Subject.URI) &&
		IsResource(use.Object)
}

// subPropertyJoin: schema is "a rdfs:subPropertyOf b" and use is "x a y".
func subPropertyJoin(v Vocabulary, schema, use Triple) bool {
	return sameTerm(schema.Predicate.URI, v.SubPropertyOf()) &&
		IsResource(schema.Object) &&
		sameTerm(use.Predicate.URI, schema.Subject.URI)
}

// subClassJoin: schema is "x rdfs:subClassOf y" and use is "z rdf:type x".
func subClassJoin(v Vocabulary, schema, use Triple) bool {
	return sameTerm(schema.Predicate.URI, v.SubClassOf()) &&
		IsResource(schema.Object) &&
		sameTerm(use.Predicate.URI, v.Type()) &&
		refersTo(use.Object, schema.Subject.URI)
}

// chainJoin: "x p y" followed by "y p z" for a transitive p.
func chainJoin(p URI, first, second Triple) bool {
	return sameTerm(first.Predicate.URI, p) &&
		sameTerm(second.Predicate.URI, p) &&
		IsResource(second.Object) &&
		refersTo(first.Object, second.Subject.URI)
}

func chain(p URI, a, b Triple) Triple {
	if !refersTo(a.Object, b.Subject.URI) || !IsResource(b.Object) {
		a, b = b, a
	}
	return relate(a.Subject, p, b.Object.(Resource))
}

func typed(v Vocabulary, subject Resource, class URI) Triple {
	return relate(subject, v.Type(), Resource{URI: class})
}

func relate(subject Resource, predicate URI, object Resource) Triple {
	return Triple{Subject: subject, Predicate: Relationship{URI: predicate}, Object: object}
}
