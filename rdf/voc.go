package rdf

import "strings"

// Namespaces of the vocabularies the engine knows about.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Prefix tokens as they appear in documents and in prefix tables.
const (
	RDFPrefix  = "rdf:"
	RDFSPrefix = "rdfs:"
	XSDPrefix  = "xsd:"
)

// DefaultPrefixes returns the prefix table every parsed graph starts with.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		RDFPrefix: RDFNamespace,
		XSDPrefix: XSDNamespace,
	}
}

// Vocabulary decides how rdf: and rdfs: terms are recognised and written by
// the entailment rules. Each field is either a prefix token ("rdf:") or an
// absolute namespace.
type Vocabulary struct {
	RDF  string
	RDFS string
}

var (
	// CanonicalVocabulary matches and emits absolute IRIs. Use it on
	// canonicalized graphs.
	CanonicalVocabulary = Vocabulary{RDF: RDFNamespace, RDFS: RDFSNamespace}
	// PrefixedVocabulary matches and emits rdf:/rdfs: prefixed names. Use it
	// on graphs that have not been canonicalized.
	PrefixedVocabulary = Vocabulary{RDF: RDFPrefix, RDFS: RDFSPrefix}
)

// Resolved reports whether the vocabulary uses absolute IRIs.
func (v Vocabulary) Resolved() bool {
	return isAbsoluteNamespace(v.RDF) && isAbsoluteNamespace(v.RDFS)
}

func isAbsoluteNamespace(namespace string) bool {
	return strings.Contains(namespace, "://") || strings.HasPrefix(namespace, "urn:")
}

func (v Vocabulary) term(namespace, name string) URI {
	if isAbsoluteNamespace(namespace) {
		return URI{Prefix: namespace, Name: name, Kind: KindFull}
	}
	return URI{Prefix: namespace, Name: name, Kind: KindPrefixed}
}

func (v Vocabulary) rdf(name string) URI  { return v.term(v.RDF, name) }
func (v Vocabulary) rdfs(name string) URI { return v.term(v.RDFS, name) }

// blank returns a blank node in the form matching the vocabulary.
func (v Vocabulary) blank(label string) URI {
	if v.Resolved() {
		return BlankURI(label)
	}
	return URI{Prefix: blankNodePrefix, Name: label, Kind: KindPrefixed}
}

// Type returns rdf:type.
func (v Vocabulary) Type() URI { return v.rdf("type") }

// Property returns rdf:Property.
func (v Vocabulary) Property() URI { return v.rdf("Property") }

// Domain returns rdfs:domain.
func (v Vocabulary) Domain() URI { return v.rdfs("domain") }

// Range returns rdfs:range.
func (v Vocabulary) Range() URI { return v.rdfs("range") }

// Resource returns rdfs:Resource.
func (v Vocabulary) Resource() URI { return v.rdfs("Resource") }

// Class returns rdfs:Class.
func (v Vocabulary) Class() URI { return v.rdfs("Class") }

// Literal returns rdfs:Literal.
func (v Vocabulary) Literal() URI { return v.rdfs("Literal") }

// Datatype returns rdfs:Datatype.
func (v Vocabulary) Datatype() URI { return v.rdfs("Datatype") }

// SubClassOf returns rdfs:subClassOf.
func (v Vocabulary) SubClassOf() URI { return v.rdfs("subClassOf") }

// SubPropertyOf returns rdfs:subPropertyOf.
func (v Vocabulary) SubPropertyOf() URI { return v.rdfs("subPropertyOf") }

// Member returns rdfs:member.
func (v Vocabulary) Member() URI { return v.rdfs("member") }

// ContainerMembershipProperty returns rdfs:ContainerMembershipProperty.
func (v Vocabulary) ContainerMembershipProperty() URI {
	return v.rdfs("ContainerMembershipProperty")
}
