package rdf

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseGraph parses a Turtle document into an unresolved graph whose prefix
// table starts with DefaultPrefixes.
func ParseGraph(document string) (*Graph, error) {
	return ParseGraphWith(document, DecodeOptions{})
}

// ParseGraphWith is ParseGraph with decoding limits.
func ParseGraphWith(document string, opts DecodeOptions) (*Graph, error) {
	p, err := newTurtleParser(document, opts)
	if err != nil {
		return nil, err
	}
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

// ParseTriple parses the statements in text and returns their facts, nested
// blank nodes first. Blank nodes are numbered from _:blank1 on every call.
func ParseTriple(text string) ([]Triple, error) {
	g, err := ParseGraph(text)
	if err != nil {
		return nil, err
	}
	return g.Triples, nil
}

type turtleParser struct {
	input      string
	stream     *turtleTokenStream
	opts       DecodeOptions
	graph      *Graph
	blankNodes int
	depth      int
	stmtStart  int
}

func newTurtleParser(input string, opts DecodeOptions) (*turtleParser, error) {
	opts = normalizeDecodeOptions(opts)
	if opts.NormalizeNFC {
		input = norm.NFC.String(input)
	}
	tokens, err := tokenizeTurtle(input)
	if err != nil {
		return nil, err
	}
	return &turtleParser{
		input:  input,
		stream: &turtleTokenStream{tokens: tokens},
		opts:   opts,
		graph:  NewGraph(),
	}, nil
}

func (p *turtleParser) parseDocument() error {
	for p.stream.peek().Kind != TokEOF {
		if err := checkDecodeContext(p.opts.Context); err != nil {
			return err
		}
		p.stmtStart = p.stream.peek().Offset
		var err error
		switch p.stream.peek().Kind {
		case TokPrefix:
			err = p.parsePrefixDirective()
		case TokBase:
			err = p.parseBaseDirective()
		default:
			err = p.parseTriplesStatement()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *turtleParser) parsePrefixDirective() error {
	keyword := p.stream.next()
	name := p.stream.next()
	if name.Kind != TokPName || !strings.HasSuffix(name.Lexeme, ":") || strings.Count(name.Lexeme, ":") != 1 {
		return p.errorAt(name, fmt.Errorf("expected prefix name after %s, found %q", keyword.Lexeme, name.Lexeme))
	}
	if !isValidPrefixName(strings.TrimSuffix(name.Lexeme, ":")) {
		return p.errorAt(name, fmt.Errorf("%w: invalid prefix %q", ErrInvalidURI, name.Lexeme))
	}
	iri, err := p.parseDirectiveIRI()
	if err != nil {
		return err
	}
	p.graph.Prefixes[name.Lexeme] = iri
	return p.endDirective(keyword)
}

func (p *turtleParser) parseBaseDirective() error {
	keyword := p.stream.next()
	iri, err := p.parseDirectiveIRI()
	if err != nil {
		return err
	}
	p.graph.Base = iri
	return p.endDirective(keyword)
}

// parseDirectiveIRI reads the <iri> of a directive. A relative IRI is
// resolved against the current base.
func (p *turtleParser) parseDirectiveIRI() (string, error) {
	tok := p.stream.next()
	if tok.Kind != TokIRIRef {
		return "", p.errorAt(tok, fmt.Errorf("%w: expected <IRI>, found %q", ErrInvalidURI, tok.Lexeme))
	}
	iri := strings.TrimSuffix(strings.TrimPrefix(tok.Lexeme, "<"), ">")
	if !hasScheme(iri) {
		iri = p.graph.Base + strings.TrimPrefix(iri, "#")
	}
	return iri, nil
}

// endDirective consumes the terminating dot of @prefix and @base. The SPARQL
// forms PREFIX and BASE take none, but one is tolerated.
func (p *turtleParser) endDirective(keyword turtleToken) error {
	if p.stream.peek().Kind == TokDot {
		p.stream.next()
		return nil
	}
	if strings.HasPrefix(keyword.Lexeme, "@") {
		return p.errorAt(p.stream.peek(), fmt.Errorf("expected '.' after %s directive", keyword.Lexeme))
	}
	return nil
}

func (p *turtleParser) parseTriplesStatement() error {
	subject, bare, err := p.parseSubject()
	if err != nil {
		return err
	}
	if !bare || p.stream.peek().Kind != TokDot {
		if err := p.parsePredicateObjectList(subject); err != nil {
			return err
		}
	}
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != TokDot {
		return p.errorAt(tok, fmt.Errorf("statement must end with '.', found %q", tok.Lexeme))
	}
	return nil
}

// parseSubject returns the subject and whether it was a blank node property
// list, which may stand alone as a statement.
func (p *turtleParser) parseSubject() (Resource, bool, error) {
	tok := p.stream.peek()
	switch tok.Kind {
	case TokLBracket:
		node, err := p.parseBlankNodePropertyList()
		return node, true, err
	case TokLParen:
		node, err := p.parseCollection()
		return node, false, err
	case TokIRIRef, TokPName, TokBlankNode:
		p.stream.next()
		u, err := p.uri(tok)
		return Resource{URI: u}, false, err
	default:
		return Resource{}, false, p.errorAt(tok, fmt.Errorf("subject must be a URI, blank node or property list, found %q", tok.Lexeme))
	}
}

func (p *turtleParser) parsePredicateObjectList(subject Resource) error {
	for {
		predicate, err := p.parseVerb()
		if err != nil {
			return err
		}
		if err := p.parseObjectList(subject, predicate); err != nil {
			return err
		}
		if p.stream.peek().Kind != TokSemicolon {
			return nil
		}
		for p.stream.peek().Kind == TokSemicolon {
			p.stream.next()
		}
		switch p.stream.peek().Kind {
		case TokDot, TokRBracket, TokEOF:
			return nil
		}
	}
}

func (p *turtleParser) parseVerb() (Relationship, error) {
	tok, err := p.next()
	if err != nil {
		return Relationship{}, err
	}
	switch tok.Kind {
	case TokA:
		u, err := ParseURI(tok.Lexeme)
		return Relationship{URI: u}, err
	case TokIRIRef, TokPName, TokBlankNode:
		u, err := p.uri(tok)
		return Relationship{URI: u}, err
	default:
		return Relationship{}, p.errorAt(tok, fmt.Errorf("predicate must be a URI, found %q", tok.Lexeme))
	}
}

func (p *turtleParser) parseObjectList(subject Resource, predicate Relationship) error {
	for {
		object, err := p.parseObject()
		if err != nil {
			return err
		}
		p.emit(subject, predicate, object)
		if p.stream.peek().Kind != TokComma {
			return nil
		}
		p.stream.next()
	}
}

func (p *turtleParser) parseObject() (Object, error) {
	tok := p.stream.peek()
	switch tok.Kind {
	case TokLBracket:
		return p.parseBlankNodePropertyList()
	case TokLParen:
		return p.parseCollection()
	case TokIRIRef, TokPName, TokBlankNode:
		p.stream.next()
		u, err := p.uri(tok)
		return Resource{URI: u}, err
	case TokString, TokStringLong:
		p.stream.next()
		return p.parseLiteralSuffix(tok)
	case TokInteger:
		p.stream.next()
		return Literal{Value: tok.Lexeme, Datatype: xsdTerm("integer")}, nil
	case TokDecimal:
		p.stream.next()
		return Literal{Value: tok.Lexeme, Datatype: xsdTerm("decimal")}, nil
	case TokDouble:
		p.stream.next()
		return Literal{Value: tok.Lexeme, Datatype: xsdTerm("double")}, nil
	case TokBoolean:
		p.stream.next()
		return Literal{Value: tok.Lexeme, Datatype: xsdTerm("boolean")}, nil
	default:
		return nil, p.errorAt(tok, fmt.Errorf("object must be a URI, literal or property list, found %q", tok.Lexeme))
	}
}

// parseLiteralSuffix reads an optional @lang, ^^datatype or ^^datatype@lang
// after a string.
func (p *turtleParser) parseLiteralSuffix(value turtleToken) (Literal, error) {
	lit := Literal{Value: value.Lexeme, Datatype: xsdTerm("string")}
	switch p.stream.peek().Kind {
	case TokLangTag:
		lit.Language = p.stream.next().Lexeme
	case TokDatatypePrefix:
		p.stream.next()
		tok, err := p.next()
		if err != nil {
			return Literal{}, err
		}
		if tok.Kind != TokIRIRef && tok.Kind != TokPName {
			return Literal{}, p.errorAt(tok, fmt.Errorf("%w: datatype must be a URI, found %q", ErrInvalidLiteral, tok.Lexeme))
		}
		// A bare datatype word runs into a following "@lang", as printed by
		// Literal.String.
		if tok.Kind == TokPName {
			if i := strings.LastIndexByte(tok.Lexeme, '@'); i > 0 && isValidLangTag(tok.Lexeme[i+1:]) {
				lit.Language = tok.Lexeme[i+1:]
				tok.Lexeme = tok.Lexeme[:i]
			}
		}
		dt, err := p.uri(tok)
		if err != nil {
			return Literal{}, err
		}
		lit.Datatype = dt
		if lit.Language == "" && p.stream.peek().Kind == TokLangTag {
			lit.Language = p.stream.next().Lexeme
		}
	}
	return lit, nil
}

// parseBlankNodePropertyList reads "[ predicateObjectList ]". The node is
// numbered before its contents, whose facts are emitted first.
func (p *turtleParser) parseBlankNodePropertyList() (Resource, error) {
	open := p.stream.next()
	if err := p.enter(open); err != nil {
		return Resource{}, err
	}
	defer p.leave()

	node := p.newBlankNode()
	if p.stream.peek().Kind != TokRBracket {
		if err := p.parsePredicateObjectList(node); err != nil {
			return Resource{}, err
		}
	}
	tok, err := p.next()
	if err != nil {
		return Resource{}, err
	}
	if tok.Kind != TokRBracket {
		return Resource{}, p.errorAt(tok, fmt.Errorf("expected ']', found %q", tok.Lexeme))
	}
	return node, nil
}

// parseCollection reads "( object* )" as an rdf:first/rdf:rest list.
func (p *turtleParser) parseCollection() (Resource, error) {
	open := p.stream.next()
	if err := p.enter(open); err != nil {
		return Resource{}, err
	}
	defer p.leave()

	if p.stream.peek().Kind == TokRParen {
		p.stream.next()
		return Resource{URI: rdfTerm("nil")}, nil
	}
	return p.parseCollectionCell()
}

func (p *turtleParser) parseCollectionCell() (Resource, error) {
	cell := p.newBlankNode()
	item, err := p.parseObject()
	if err != nil {
		return Resource{}, err
	}
	p.emit(cell, Relationship{URI: rdfTerm("first")}, item)

	rest := Resource{URI: rdfTerm("nil")}
	switch p.stream.peek().Kind {
	case TokRParen:
		p.stream.next()
	case TokEOF:
		return Resource{}, p.errorAt(p.stream.peek(), fmt.Errorf("unterminated collection"))
	default:
		if rest, err = p.parseCollectionCell(); err != nil {
			return Resource{}, err
		}
	}
	p.emit(cell, Relationship{URI: rdfTerm("rest")}, rest)
	return cell, nil
}

func (p *turtleParser) emit(subject Resource, predicate Relationship, object Object) {
	p.graph.Triples = append(p.graph.Triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

func (p *turtleParser) newBlankNode() Resource {
	p.blankNodes++
	return Resource{URI: URI{Prefix: blankNodePrefix, Name: "blank" + strconv.Itoa(p.blankNodes), Kind: KindPrefixed}}
}

func (p *turtleParser) enter(tok turtleToken) error {
	p.depth++
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return p.errorAt(tok, ErrDepthExceeded)
	}
	return nil
}

func (p *turtleParser) leave() { p.depth-- }

// next consumes a token and enforces the statement size limit.
func (p *turtleParser) next() (turtleToken, error) {
	tok := p.stream.next()
	if p.opts.MaxStatementBytes > 0 && tok.Offset+len(tok.Lexeme)-p.stmtStart > p.opts.MaxStatementBytes {
		return tok, p.errorAt(tok, ErrStatementTooLong)
	}
	return tok, nil
}

func (p *turtleParser) uri(tok turtleToken) (URI, error) {
	u, err := ParseURI(tok.Lexeme)
	if err != nil {
		return URI{}, p.errorAt(tok, err)
	}
	return u, nil
}

func (p *turtleParser) errorAt(tok turtleToken, err error) error {
	return newTurtleError(p.input, tok.Offset, err)
}

// xsdTerm and rdfTerm name the terms the parser generates itself. They are
// absolute so a document redefining rdf: or xsd: cannot capture them.
func xsdTerm(name string) URI {
	return URI{Prefix: XSDNamespace, Name: name, Kind: KindFull}
}

func rdfTerm(name string) URI {
	return URI{Prefix: RDFNamespace, Name: name, Kind: KindFull}
}

type turtleTokenStream struct {
	tokens []turtleToken
	pos    int
}

func (s *turtleTokenStream) peek() turtleToken {
	if s.pos >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.pos]
}

func (s *turtleTokenStream) next() turtleToken {
	tok := s.peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok
}
