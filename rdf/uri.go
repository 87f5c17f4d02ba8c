package rdf

import "strings"

// URIKind identifies how a URI was written and whether it has been resolved.
type URIKind uint8

const (
	// KindFull is an absolute IRI split into namespace and local name.
	KindFull URIKind = iota
	// KindRelative is a relative IRI such as <#Person> or <Person>.
	KindRelative
	// KindPrefixed is a prefixed name such as ex:Person.
	KindPrefixed
	// KindPrefixedWithBase is a name with an empty prefix such as :Person.
	KindPrefixedWithBase
	// KindBlankNode is a resolved blank node such as _:b1.
	KindBlankNode
)

// BlankNodeSigil starts the prefix of every blank node identifier.
const BlankNodeSigil = "_"

// blankNodePrefix is the prefix blank node identifiers are printed with.
const blankNodePrefix = BlankNodeSigil + ":"

func (k URIKind) String() string {
	switch k {
	case KindFull:
		return "Full"
	case KindRelative:
		return "Relative"
	case KindPrefixed:
		return "Prefixed"
	case KindPrefixedWithBase:
		return "PrefixedWithBase"
	case KindBlankNode:
		return "BlankNode"
	default:
		return "Unknown"
	}
}

// URI is a namespace-qualified name. Its textual form is Prefix + Name.
type URI struct {
	// Prefix is the namespace, the prefix token including its colon ("ex:"),
	// or the blank node prefix "_:".
	Prefix string
	// Name is the local part.
	Name string
	// Kind records the written form.
	Kind URIKind
}

// NewURI returns a URI with the given parts.
func NewURI(prefix, name string, kind URIKind) URI {
	return URI{Prefix: prefix, Name: name, Kind: kind}
}

// FullURI splits an absolute IRI after its last '#' or '/' and returns it as a Full URI.
func FullURI(iri string) URI {
	prefix, name := splitIRI(iri)
	return URI{Prefix: prefix, Name: name, Kind: KindFull}
}

// BlankURI returns a resolved blank node with the given label.
func BlankURI(label string) URI {
	return URI{Prefix: blankNodePrefix, Name: label, Kind: KindBlankNode}
}

// String returns Prefix + Name.
func (u URI) String() string { return u.Prefix + u.Name }

// IsBlank reports whether the URI denotes a blank node, resolved or not.
func (u URI) IsBlank() bool {
	return u.Kind == KindBlankNode || strings.HasPrefix(u.Prefix, BlankNodeSigil)
}

// IsCanonical reports whether the URI is Full or BlankNode.
func (u URI) IsCanonical() bool {
	return u.Kind == KindFull || u.Kind == KindBlankNode
}

// Canonicalize resolves the URI against a base namespace and a prefix table.
// Prefix table keys include the trailing colon ("ex:"). Relative and
// PrefixedWithBase URIs take the base as their namespace.
func (u URI) Canonicalize(base string, prefixes map[string]string) (URI, error) {
	switch u.Kind {
	case KindRelative:
		return URI{Prefix: base, Name: u.Name, Kind: KindFull}, nil
	case KindPrefixedWithBase:
		// A declared empty prefix ("@prefix : <...>") wins over the base.
		if expanded, ok := prefixes[":"]; ok {
			return URI{Prefix: expanded, Name: u.Name, Kind: KindFull}, nil
		}
		return URI{Prefix: base, Name: u.Name, Kind: KindFull}, nil
	case KindPrefixed:
		if expanded, ok := prefixes[u.Prefix]; ok {
			return URI{Prefix: expanded, Name: u.Name, Kind: KindFull}, nil
		}
		if strings.HasPrefix(u.Prefix, BlankNodeSigil) {
			return URI{Prefix: u.Prefix, Name: u.Name, Kind: KindBlankNode}, nil
		}
		return u, &UnresolvedPrefixError{Prefix: u.Prefix}
	default:
		return u, nil
	}
}

// ParseURI parses a single identifier as written in a Turtle document:
// <absolute>, <relative>, bare absolute IRIs, prefix:name, :name, _:label or "a".
func ParseURI(text string) (URI, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return URI{}, errInvalidURI(text)
	case text == "a":
		return URI{Prefix: RDFNamespace, Name: "type", Kind: KindFull}, nil
	case strings.HasPrefix(text, "<"):
		if !strings.HasSuffix(text, ">") {
			return URI{}, errInvalidURI(text)
		}
		inner := text[1 : len(text)-1]
		if strings.ContainsAny(inner, " \t\r\n<>\"") {
			return URI{}, errInvalidURI(text)
		}
		if hasScheme(inner) {
			return FullURI(inner), nil
		}
		return URI{Name: strings.TrimPrefix(inner, "#"), Kind: KindRelative}, nil
	case strings.Contains(text, "://"):
		if !hasScheme(text) || strings.ContainsAny(text, " \t\r\n<>\"") {
			return URI{}, errInvalidURI(text)
		}
		return FullURI(text), nil
	case strings.HasPrefix(text, blankNodePrefix):
		label := text[len(blankNodePrefix):]
		if !isBlankLabel(label) {
			return URI{}, errInvalidURI(text)
		}
		return URI{Prefix: blankNodePrefix, Name: label, Kind: KindPrefixed}, nil
	case strings.HasPrefix(text, ":"):
		name := text[1:]
		if name != "" && !isQNameLocal(name) {
			return URI{}, errInvalidURI(text)
		}
		return URI{Name: name, Kind: KindPrefixedWithBase}, nil
	}
	idx := strings.Index(text, ":")
	if idx <= 0 {
		return URI{}, errInvalidURI(text)
	}
	prefix, name := text[:idx], text[idx+1:]
	if !isValidPrefixName(prefix) || (name != "" && !isQNameLocal(name)) {
		return URI{}, errInvalidURI(text)
	}
	return URI{Prefix: prefix + ":", Name: name, Kind: KindPrefixed}, nil
}

func splitIRI(iri string) (string, string) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx < 0 {
		return iri, ""
	}
	return iri[:idx+1], iri[idx+1:]
}

// hasScheme reports whether value starts with an RFC 3986 scheme followed by ':'.
func hasScheme(value string) bool {
	idx := strings.Index(value, ":")
	if idx <= 0 {
		return false
	}
	for i := 0; i < idx; i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case i > 0 && (ch >= '0' && ch <= '9' || ch == '+' || ch == '-' || ch == '.'):
		default:
			return false
		}
	}
	return true
}
