// Package filter compiles CEL expressions into triple predicates.
//
// An expression sees these variables, all strings:
//
//	subject, predicate, object  canonical strings of the three roles
//	kind                        "resource" or "literal"
//	value                       literal lexical form without quotes, else ""
//	datatype, language          literal datatype and language tag, else ""
//
// Example: predicate.endsWith("#type") && object.startsWith("http://example.org/")
package filter

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/geoknoesis/rdfs-go/rdf"
)

// ErrNotBoolean is returned for an expression that does not yield a bool.
var ErrNotBoolean = errors.New("filter: expression must evaluate to bool")

const (
	KindResource = "resource"
	KindLiteral  = "literal"
)

var newEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("subject", cel.StringType),
		cel.Variable("predicate", cel.StringType),
		cel.Variable("object", cel.StringType),
		cel.Variable("kind", cel.StringType),
		cel.Variable("value", cel.StringType),
		cel.Variable("datatype", cel.StringType),
		cel.Variable("language", cel.StringType),
	)
})

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	expr    string
	program cel.Program
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Filter, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("filter: create environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter: compile %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotBoolean, expr, ast.OutputType())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter: program %q: %w", expr, err)
	}
	return &Filter{expr: expr, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Eval reports whether t satisfies the expression.
func (f *Filter) Eval(t rdf.Triple) (bool, error) {
	out, _, err := f.program.Eval(Activation(t))
	if err != nil {
		return false, fmt.Errorf("filter: evaluate %q on %s: %w", f.expr, t, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q returned %T", ErrNotBoolean, f.expr, out.Value())
	}
	return b, nil
}

// Predicate adapts the filter for rdf.QueryBuilder.Select. A fact whose
// evaluation fails is dropped and the error passed to onError, if set.
func (f *Filter) Predicate(onError func(rdf.Triple, error)) func(rdf.Triple) bool {
	return func(t rdf.Triple) bool {
		ok, err := f.Eval(t)
		if err != nil {
			if onError != nil {
				onError(t, err)
			}
			return false
		}
		return ok
	}
}

// Activation returns the variables an expression sees for t.
func Activation(t rdf.Triple) map[string]any {
	vars := map[string]any{
		"subject":   t.Subject.String(),
		"predicate": t.Predicate.String(),
		"object":    "",
		"kind":      KindResource,
		"value":     "",
		"datatype":  "",
		"language":  "",
	}
	if t.Object != nil {
		vars["object"] = t.Object.String()
	}
	if lit, ok := rdf.AsLiteral(t.Object); ok {
		vars["kind"] = KindLiteral
		vars["value"] = unquote(lit.Value)
		vars["datatype"] = lit.Datatype.String()
		vars["language"] = lit.Language
	}
	return vars
}

func unquote(value string) string {
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(value) >= 2*len(q) && strings.HasPrefix(value, q) && strings.HasSuffix(value, q) {
			return value[len(q) : len(value)-len(q)]
		}
	}
	return value
}
