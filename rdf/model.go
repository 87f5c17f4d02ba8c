package rdf

// Resource is a URI used in subject or object position.
type Resource struct {
	URI
}

// NewResource wraps a URI as a resource.
func NewResource(u URI) Resource { return Resource{URI: u} }

func (Resource) isObject() {}

// Relationship is a URI used in predicate position.
type Relationship struct {
	URI
}

// NewRelationship wraps a URI as a relationship.
func NewRelationship(u URI) Relationship { return Relationship{URI: u} }

// Literal is an RDF literal. Value keeps the quoting it was written with.
type Literal struct {
	// Value is the lexical form including its original quotes.
	Value string
	// Datatype is the datatype URI.
	Datatype URI
	// Language is the language tag, or "" when absent.
	Language string
}

// NewStringLiteral returns a quoted xsd:string literal in prefixed form.
func NewStringLiteral(value string) Literal {
	return Literal{
		Value:    `"` + value + `"`,
		Datatype: URI{Prefix: XSDPrefix, Name: "string", Kind: KindPrefixed},
	}
}

func (Literal) isObject() {}

// String returns Value^^Datatype, followed by @Language when present.
func (l Literal) String() string {
	out := l.Value
	if dt := l.Datatype.String(); dt != "" {
		out += "^^" + dt
	}
	if l.Language != "" {
		out += "@" + l.Language
	}
	return out
}

// Object is the object of a triple: a Literal or a Resource.
type Object interface {
	String() string
	isObject()
}

// AsLiteral returns the literal held by o, if any.
func AsLiteral(o Object) (Literal, bool) {
	l, ok := o.(Literal)
	return l, ok
}

// AsResource returns the resource held by o, if any.
func AsResource(o Object) (Resource, bool) {
	r, ok := o.(Resource)
	return r, ok
}

// IsLiteral reports whether o is a literal.
func IsLiteral(o Object) bool {
	_, ok := o.(Literal)
	return ok
}

// IsResource reports whether o is a resource.
func IsResource(o Object) bool {
	_, ok := o.(Resource)
	return ok
}

func canonicalizeObject(o Object, base string, prefixes map[string]string) (Object, error) {
	switch value := o.(type) {
	case Resource:
		u, err := value.Canonicalize(base, prefixes)
		if err != nil {
			return o, err
		}
		return Resource{URI: u}, nil
	case Literal:
		if value.Datatype.String() == "" {
			return value, nil
		}
		dt, err := value.Datatype.Canonicalize(base, prefixes)
		if err != nil {
			return o, err
		}
		value.Datatype = dt
		return value, nil
	default:
		return o, nil
	}
}

func objectIsCanonical(o Object) bool {
	switch value := o.(type) {
	case Resource:
		return value.IsCanonical()
	case Literal:
		return value.Datatype.String() == "" || value.Datatype.IsCanonical()
	default:
		return false
	}
}
