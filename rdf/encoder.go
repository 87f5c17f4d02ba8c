package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("rdf: unsupported format")

// ErrNotCanonical is returned when N-Triples output is asked for a fact that
// still holds prefixed or relative identifiers.
var ErrNotCanonical = errors.New("rdf: fact is not canonical")

// Encoder streams facts to an output.
type Encoder interface {
	Write(Triple) error
	Flush() error
	Close() error
}

// NewEncoder returns an encoder writing format to w.
func NewEncoder(w io.Writer, format Format) (Encoder, error) {
	switch format {
	case FormatCanonical, FormatNTriples:
		return &lineEncoder{writer: bufio.NewWriter(w), format: format}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteTriples encodes triples to w and flushes.
func WriteTriples(w io.Writer, triples []Triple, format Format) error {
	enc, err := NewEncoder(w, format)
	if err != nil {
		return err
	}
	for _, t := range triples {
		if err := enc.Write(t); err != nil {
			return err
		}
	}
	return enc.Close()
}

type lineEncoder struct {
	writer *bufio.Writer
	format Format
	err    error
}

func (e *lineEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if t.Object == nil {
		return fmt.Errorf("rdf: missing object in %s", t)
	}
	line := t.String()
	if e.format == FormatNTriples {
		if !t.IsCanonical() {
			return fmt.Errorf("%w: %s", ErrNotCanonical, t)
		}
		line = renderNTriple(t)
	}
	_, err := e.writer.WriteString(line + "\n")
	if err != nil {
		e.err = err
	}
	return err
}

func (e *lineEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *lineEncoder) Close() error {
	return e.Flush()
}

func renderNTriple(t Triple) string {
	return renderURI(t.Subject.URI) + " " + renderURI(t.Predicate.URI) + " " + renderObject(t.Object) + " ."
}

func renderURI(u URI) string {
	if u.IsBlank() {
		return u.String()
	}
	return "<" + u.String() + ">"
}

func renderObject(o Object) string {
	switch value := o.(type) {
	case Resource:
		return renderURI(value.URI)
	case Literal:
		out := `"` + literalBody(value.Value) + `"`
		if value.Language != "" {
			return out + "@" + value.Language
		}
		if value.Datatype.String() != "" {
			out += "^^" + renderURI(value.Datatype)
		}
		return out
	default:
		return ""
	}
}

// literalBody returns the lexical form of a literal as it must appear between
// N-Triples double quotes.
func literalBody(value string) string {
	switch {
	case len(value) >= 6 && (strings.HasPrefix(value, `"""`) || strings.HasPrefix(value, `'''`)):
		return escapeLiteral(value[3 : len(value)-3])
	case len(value) >= 2 && value[0] == '"':
		return value[1 : len(value)-1]
	case len(value) >= 2 && value[0] == '\'':
		return escapeLiteral(value[1 : len(value)-1])
	default:
		return escapeLiteral(value)
	}
}

// escapeLiteral escapes raw double quotes and line breaks, leaving existing
// escape sequences alone.
func escapeLiteral(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch ch {
		case '\\':
			b.WriteByte(ch)
			if i+1 < len(value) {
				i++
				b.WriteByte(value[i])
			}
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
