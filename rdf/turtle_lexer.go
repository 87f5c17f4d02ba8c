package rdf

import (
	"fmt"
	"strings"
)

type turtleTokenKind int

const (
	TokEOF turtleTokenKind = iota
	TokIRIRef
	TokPName
	TokBlankNode
	TokString
	TokStringLong
	TokInteger
	TokDecimal
	TokDouble
	TokBoolean
	TokPrefix
	TokBase
	TokDot
	TokComma
	TokSemicolon
	TokLBracket
	TokRBracket
	TokLParen
	TokRParen
	TokA
	TokLangTag
	TokDatatypePrefix
)

const (
	lexDot         = "."
	lexComma       = ","
	lexSemicolon   = ";"
	lexLBracket    = "["
	lexRBracket    = "]"
	lexLParen      = "("
	lexRParen      = ")"
	lexIRIStart    = "<"
	lexBlankNode   = "_:"
	lexQuote       = "\""
	lexApos        = "'"
	lexPrefix      = "@prefix"
	lexBase        = "@base"
	lexPrefixBare  = "prefix"
	lexBaseBare    = "base"
	lexDatatypeSep = "^^"
)

func (k turtleTokenKind) String() string {
	switch k {
	case TokEOF:
		return "TokEOF"
	case TokIRIRef:
		return "TokIRIRef"
	case TokPName:
		return "TokPName"
	case TokBlankNode:
		return "TokBlankNode"
	case TokString:
		return "TokString"
	case TokStringLong:
		return "TokStringLong"
	case TokInteger:
		return "TokInteger"
	case TokDecimal:
		return "TokDecimal"
	case TokDouble:
		return "TokDouble"
	case TokBoolean:
		return "TokBoolean"
	case TokPrefix:
		return "TokPrefix"
	case TokBase:
		return "TokBase"
	case TokDot:
		return "TokDot"
	case TokComma:
		return "TokComma"
	case TokSemicolon:
		return "TokSemicolon"
	case TokLBracket:
		return "TokLBracket"
	case TokRBracket:
		return "TokRBracket"
	case TokLParen:
		return "TokLParen"
	case TokRParen:
		return "TokRParen"
	case TokA:
		return "TokA"
	case TokLangTag:
		return "TokLangTag"
	case TokDatatypePrefix:
		return "TokDatatypePrefix"
	default:
		return "TokUnknown"
	}
}

type turtleToken struct {
	Kind   turtleTokenKind
	Lexeme string
	// Offset is the byte offset of the first character of the token.
	Offset int
}

// tokenizeTurtle splits a whole document into tokens. Comments and
// whitespace are dropped. The last token is always TokEOF.
func tokenizeTurtle(input string) ([]turtleToken, error) {
	scanner := &turtleScanner{input: input}
	var tokens []turtleToken
	for {
		tok, err := scanner.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			return tokens, nil
		}
	}
}

type turtleScanner struct {
	input string
	pos   int
}

func (s *turtleScanner) nextToken() (turtleToken, error) {
	s.skipWS()
	start := s.pos
	if s.pos >= len(s.input) {
		return turtleToken{Kind: TokEOF, Offset: start}, nil
	}
	if s.match(lexDatatypeSep) {
		s.pos += 2
		return turtleToken{Kind: TokDatatypePrefix, Lexeme: lexDatatypeSep, Offset: start}, nil
	}
	if s.input[s.pos] == '@' {
		return s.scanAt()
	}
	switch s.input[s.pos] {
	case lexDot[0]:
		if s.pos+1 < len(s.input) && isDigit(s.input[s.pos+1]) {
			return s.scanWord()
		}
		return s.punct(TokDot, lexDot)
	case lexComma[0]:
		return s.punct(TokComma, lexComma)
	case lexSemicolon[0]:
		return s.punct(TokSemicolon, lexSemicolon)
	case lexLBracket[0]:
		return s.punct(TokLBracket, lexLBracket)
	case lexRBracket[0]:
		return s.punct(TokRBracket, lexRBracket)
	case lexLParen[0]:
		return s.punct(TokLParen, lexLParen)
	case lexRParen[0]:
		return s.punct(TokRParen, lexRParen)
	case lexIRIStart[0]:
		return s.scanIRIRef()
	case lexQuote[0], lexApos[0]:
		return s.scanString()
	}
	if s.match(lexBlankNode) {
		return s.scanBlankNode()
	}
	return s.scanWord()
}

func (s *turtleScanner) punct(kind turtleTokenKind, lexeme string) (turtleToken, error) {
	tok := turtleToken{Kind: kind, Lexeme: lexeme, Offset: s.pos}
	s.pos += len(lexeme)
	return tok, nil
}

func (s *turtleScanner) scanIRIRef() (turtleToken, error) {
	start := s.pos
	s.pos++ // consume '<'
	for s.pos < len(s.input) && s.input[s.pos] != '>' {
		switch s.input[s.pos] {
		case ' ', '\t', '\r', '\n', '<', '"':
			return turtleToken{}, s.errorAt(s.pos, fmt.Errorf("%w: unexpected %q in IRI", ErrInvalidURI, s.input[s.pos]))
		}
		s.pos++
	}
	if s.pos >= len(s.input) {
		return turtleToken{}, s.errorAt(start, fmt.Errorf("%w: unterminated IRI", ErrInvalidURI))
	}
	s.pos++ // consume '>'
	return turtleToken{Kind: TokIRIRef, Lexeme: s.input[start:s.pos], Offset: start}, nil
}

func (s *turtleScanner) scanString() (turtleToken, error) {
	quote := s.input[s.pos]
	if s.pos+2 < len(s.input) && s.input[s.pos+1] == quote && s.input[s.pos+2] == quote {
		return s.scanLongString(quote)
	}
	start := s.pos
	s.pos++
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		if ch == '\\' {
			s.pos += 2
			continue
		}
		if ch == '\n' || ch == '\r' {
			break
		}
		if ch == quote {
			s.pos++
			return turtleToken{Kind: TokString, Lexeme: s.input[start:s.pos], Offset: start}, nil
		}
		s.pos++
	}
	return turtleToken{}, s.errorAt(start, fmt.Errorf("%w: unterminated string", ErrInvalidLiteral))
}

func (s *turtleScanner) scanLongString(quote byte) (turtleToken, error) {
	start := s.pos
	s.pos += 3
	for s.pos+2 < len(s.input) {
		ch := s.input[s.pos]
		if ch == '\\' {
			s.pos += 2
			continue
		}
		if s.input[s.pos] == quote && s.input[s.pos+1] == quote && s.input[s.pos+2] == quote {
			s.pos += 3
			return turtleToken{Kind: TokStringLong, Lexeme: s.input[start:s.pos], Offset: start}, nil
		}
		s.pos++
	}
	return turtleToken{}, s.errorAt(start, fmt.Errorf("%w: unterminated long string", ErrInvalidLiteral))
}

// scanAt reads a directive keyword or a language tag.
func (s *turtleScanner) scanAt() (turtleToken, error) {
	start := s.pos
	s.pos++ // consume '@'
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || isDigit(ch) || ch == '-' {
			s.pos++
			continue
		}
		break
	}
	lexeme := s.input[start:s.pos]
	switch lexeme {
	case lexPrefix:
		return turtleToken{Kind: TokPrefix, Lexeme: lexeme, Offset: start}, nil
	case lexBase:
		return turtleToken{Kind: TokBase, Lexeme: lexeme, Offset: start}, nil
	}
	if !isValidLangTag(lexeme[1:]) {
		return turtleToken{}, s.errorAt(start, fmt.Errorf("%w: invalid language tag %q", ErrInvalidLiteral, lexeme))
	}
	return turtleToken{Kind: TokLangTag, Lexeme: lexeme[1:], Offset: start}, nil
}

func (s *turtleScanner) scanBlankNode() (turtleToken, error) {
	start := s.pos
	s.pos += 2
	for s.pos < len(s.input) && !isWordTerminator(s.input[s.pos], s.peekAt(s.pos+1)) {
		s.pos++
	}
	return turtleToken{Kind: TokBlankNode, Lexeme: s.input[start:s.pos], Offset: start}, nil
}

func (s *turtleScanner) scanWord() (turtleToken, error) {
	start := s.pos
	for s.pos < len(s.input) && !isWordTerminator(s.input[s.pos], s.peekAt(s.pos+1)) {
		s.pos++
	}
	lexeme := s.input[start:s.pos]
	tok := turtleToken{Lexeme: lexeme, Offset: start}
	switch {
	case lexeme == "":
		return turtleToken{}, s.errorAt(start, fmt.Errorf("unexpected %q", s.input[start]))
	case strings.EqualFold(lexeme, lexPrefixBare):
		tok.Kind = TokPrefix
	case strings.EqualFold(lexeme, lexBaseBare):
		tok.Kind = TokBase
	case lexeme == "a":
		tok.Kind = TokA
	case lexeme == "true" || lexeme == "false":
		tok.Kind = TokBoolean
	case strings.Contains(lexeme, ":"):
		tok.Kind = TokPName
	default:
		kind, ok := numericKind(lexeme)
		if !ok {
			return turtleToken{}, s.errorAt(start, fmt.Errorf("%w: unexpected word %q", ErrInvalidURI, lexeme))
		}
		tok.Kind = kind
	}
	return tok, nil
}

// skipWS skips whitespace and comments.
func (s *turtleScanner) skipWS() {
	for s.pos < len(s.input) {
		switch s.input[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		case '#':
			for s.pos < len(s.input) && s.input[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *turtleScanner) match(prefix string) bool {
	return strings.HasPrefix(s.input[s.pos:], prefix)
}

func (s *turtleScanner) peekAt(pos int) byte {
	if pos >= len(s.input) {
		return 0
	}
	return s.input[pos]
}

func (s *turtleScanner) errorAt(offset int, err error) error {
	return newTurtleError(s.input, offset, err)
}

// isWordTerminator reports whether ch ends a bare word. A dot ends a word
// only when it is not followed by another word character.
func isWordTerminator(ch, next byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', ';', ',', '(', ')', '[', ']', '<', '>', '"', '\'':
		return true
	case '^':
		return next == '^'
	case '.':
		switch next {
		case 0, ' ', '\t', '\r', '\n', ';', ',', '(', ')', '[', ']', '#':
			return true
		}
		return false
	default:
		return false
	}
}

// numericKind classifies an integer, decimal or double lexeme.
func numericKind(value string) (turtleTokenKind, bool) {
	body := strings.TrimLeft(value, "+-")
	if len(value)-len(body) > 1 || body == "" {
		return 0, false
	}
	mantissa, exponent, hasExp := strings.Cut(strings.ToLower(body), "e")
	if hasExp {
		exponent = strings.TrimLeft(exponent, "+-")
		if exponent == "" || !allDigits(exponent) {
			return 0, false
		}
	}
	whole, fraction, hasDot := strings.Cut(mantissa, ".")
	if (whole == "" && fraction == "") || !allDigits(whole) || !allDigits(fraction) {
		return 0, false
	}
	switch {
	case hasExp:
		return TokDouble, true
	case hasDot:
		if fraction == "" {
			return 0, false
		}
		return TokDecimal, true
	default:
		return TokInteger, true
	}
}

func allDigits(value string) bool {
	for i := 0; i < len(value); i++ {
		if !isDigit(value[i]) {
			return false
		}
	}
	return true
}

// newTurtleError builds a *ParseError locating offset in input.
func newTurtleError(input string, offset int, err error) *ParseError {
	if offset > len(input) {
		offset = len(input)
	}
	line := 1 + strings.Count(input[:offset], "\n")
	lineStart := strings.LastIndexByte(input[:offset], '\n') + 1
	lineEnd := strings.IndexByte(input[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(input)
	} else {
		lineEnd += offset
	}
	return &ParseError{
		Format:    "turtle",
		Statement: strings.TrimRight(input[lineStart:lineEnd], "\r"),
		Line:      line,
		Column:    offset - lineStart + 1,
		Offset:    offset,
		Err:       err,
	}
}
