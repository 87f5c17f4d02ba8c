package rdf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeStatementTooLong indicates a statement exceeded the configured limit.
	ErrCodeStatementTooLong ErrorCode = "STATEMENT_TOO_LONG"
	// ErrCodeDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrCodeDepthExceeded ErrorCode = "DEPTH_EXCEEDED"
	// ErrCodeInvalidURI indicates an identifier that matches none of the URI forms.
	ErrCodeInvalidURI ErrorCode = "INVALID_URI"
	// ErrCodeInvalidLiteral indicates an invalid literal was encountered.
	ErrCodeInvalidLiteral ErrorCode = "INVALID_LITERAL"
	// ErrCodeUnresolvedPrefix indicates a prefix missing from the prefix table.
	ErrCodeUnresolvedPrefix ErrorCode = "UNRESOLVED_PREFIX"
	// ErrCodeIOError indicates an I/O error.
	ErrCodeIOError ErrorCode = "IO_ERROR"
)

var (
	// ErrStatementTooLong indicates a statement exceeded the configured limit.
	ErrStatementTooLong = errors.New("rdf: statement exceeds configured limit")
	// ErrDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrDepthExceeded = errors.New("rdf: nesting depth exceeded configured limit")
	// ErrInvalidURI indicates an identifier that matches none of the URI forms.
	ErrInvalidURI = errors.New("rdf: invalid URI")
	// ErrInvalidLiteral indicates a malformed literal.
	ErrInvalidLiteral = errors.New("rdf: invalid literal")
	// ErrUnresolvedPrefix is matched by every *UnresolvedPrefixError.
	ErrUnresolvedPrefix = errors.New("rdf: use of prefix without first defining it")
)

// Code classifies err. Unknown errors map to ErrCodeParseError and nil to "".
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnresolvedPrefix):
		return ErrCodeUnresolvedPrefix
	case errors.Is(err, ErrStatementTooLong):
		return ErrCodeStatementTooLong
	case errors.Is(err, ErrDepthExceeded):
		return ErrCodeDepthExceeded
	case errors.Is(err, ErrInvalidURI):
		return ErrCodeInvalidURI
	case errors.Is(err, ErrInvalidLiteral):
		return ErrCodeInvalidLiteral
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return ErrCodeParseError
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ErrCodeIOError
	}
	return ErrCodeParseError
}

// UnresolvedPrefixError reports a prefixed name whose prefix is not in the
// graph's prefix table.
type UnresolvedPrefixError struct {
	// Prefix is the offending token, including its colon.
	Prefix string
}

func (e *UnresolvedPrefixError) Error() string {
	return fmt.Sprintf("rdf: use of prefix without first defining it: %s", e.Prefix)
}

// Is lets errors.Is match ErrUnresolvedPrefix.
func (e *UnresolvedPrefixError) Is(target error) bool { return target == ErrUnresolvedPrefix }

// IOError wraps a failure to read a document.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "rdf: read: " + e.Err.Error()
	}
	return fmt.Sprintf("rdf: read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// RuleArityError describes an entailment rule whose output did not match its
// declared arity. The engine panics with it: it signals a defective rule, not
// bad data.
type RuleArityError struct {
	Rule     string
	Declared int
	Produced int
	Input    []Triple
}

func (e *RuleArityError) Error() string {
	inputs := make([]string, len(e.Input))
	for i, t := range e.Input {
		inputs[i] = t.String()
	}
	return fmt.Sprintf("rdf: rule %s produced %d triples, declared %d (input: %s)",
		e.Rule, e.Produced, e.Declared, strings.Join(inputs, " "))
}

// ParseError locates a syntax error in a document.
type ParseError struct {
	Format    string // "turtle"
	Statement string // text of the statement being parsed
	Line      int    // 1-based, 0 when unknown
	Column    int    // 1-based, 0 when unknown
	Offset    int    // byte offset, -1 when unknown
	Err       error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Format)
	switch {
	case e.Line > 0 && e.Column > 0:
		fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
	case e.Line > 0:
		fmt.Fprintf(&b, ":%d", e.Line)
	case e.Offset >= 0:
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if excerpt := e.excerpt(); excerpt != "" {
		b.WriteString("\n  ")
		b.WriteString(excerpt)
	}
	return b.String()
}

const (
	excerptMaxBytes = 80
	excerptContext  = 40
)

// excerpt returns up to excerptContext bytes either side of the column with a
// caret line under it, or the truncated statement when the column is unknown.
func (e *ParseError) excerpt() string {
	if e.Statement == "" {
		return ""
	}
	if e.Column <= 0 {
		if len(e.Statement) > excerptMaxBytes {
			return e.Statement[:excerptMaxBytes] + "..."
		}
		return e.Statement
	}

	pos := min(e.Column-1, len(e.Statement))
	from := max(pos-excerptContext, 0)
	to := min(pos+excerptContext, len(e.Statement))
	text := e.Statement[from:to]
	caret := pos - from
	if from > 0 {
		text = "..." + text
		caret += 3
	}
	if to < len(e.Statement) {
		text += "..."
	}
	caret = max(min(caret, len(text)-1), 0)
	return text + "\n  " + strings.Repeat(" ", caret) + "^"
}

func (e *ParseError) Unwrap() error { return e.Err }

func errInvalidURI(text string) error {
	return fmt.Errorf("%w: %q", ErrInvalidURI, text)
}
