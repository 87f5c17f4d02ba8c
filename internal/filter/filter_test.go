package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdfs-go/rdf"
)

const doc = `
@prefix ex: <http://example.org/> .
ex:rex a ex:Dog ;
    ex:name "Rex"@en ;
    ex:age 3 .
`

func facts(t *testing.T) []rdf.Triple {
	t.Helper()
	g, err := rdf.ParseGraph(doc)
	require.NoError(t, err)
	require.NoError(t, g.Canonicalize())
	require.Len(t, g.Triples, 3)
	return g.Triples
}

func TestCompile(t *testing.T) {
	f, err := Compile(`kind == "literal"`)
	require.NoError(t, err)
	assert.Equal(t, `kind == "literal"`, f.String())

	_, err = Compile(`subject.size()`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotBoolean))

	_, err = Compile(`subject ==`)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotBoolean))

	_, err = Compile(`unknown == "x"`)
	require.Error(t, err)
}

func TestEval(t *testing.T) {
	triples := facts(t)
	tests := []struct {
		expr string
		want []bool
	}{
		{`kind == "resource"`, []bool{true, false, false}},
		{`predicate.endsWith("#type")`, []bool{true, false, false}},
		{`value == "Rex" && language == "en"`, []bool{false, true, false}},
		{`datatype.endsWith("#integer")`, []bool{false, false, true}},
		{`object.startsWith("http://example.org/")`, []bool{true, false, false}},
		{`subject == "http://example.org/rex"`, []bool{true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := Compile(tt.expr)
			require.NoError(t, err)
			for i, triple := range triples {
				got, err := f.Eval(triple)
				require.NoError(t, err)
				assert.Equal(t, tt.want[i], got, triple.String())
			}
		})
	}
}

func TestActivation(t *testing.T) {
	triples := facts(t)

	vars := Activation(triples[1])
	assert.Equal(t, KindLiteral, vars["kind"])
	assert.Equal(t, "Rex", vars["value"])
	assert.Equal(t, "en", vars["language"])
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#string", vars["datatype"])
	assert.Equal(t, "http://example.org/name", vars["predicate"])

	vars = Activation(triples[0])
	assert.Equal(t, KindResource, vars["kind"])
	assert.Equal(t, "http://example.org/Dog", vars["object"])
	assert.Equal(t, "", vars["value"])
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "a", unquote(`"a"`))
	assert.Equal(t, "a", unquote(`'a'`))
	assert.Equal(t, "a\nb", unquote("\"\"\"a\nb\"\"\""))
	assert.Equal(t, "3", unquote("3"))
	assert.Equal(t, `"`, unquote(`"`))
}

func TestPredicate(t *testing.T) {
	triples := facts(t)

	f, err := Compile(`kind == "literal"`)
	require.NoError(t, err)
	q := rdf.Start(triples).Select(f.Predicate(nil))
	assert.Equal(t, 2, q.Count())

	// int("Rex") fails at runtime; the fact is dropped and reported.
	f, err = Compile(`kind == "literal" && int(value) > 1`)
	require.NoError(t, err)
	var failed []string
	q = rdf.Start(triples).Select(f.Predicate(func(tr rdf.Triple, err error) {
		failed = append(failed, tr.String())
	}))
	assert.Equal(t, 1, q.Count())
	assert.Equal(t, []string{triples[1].String()}, failed)
}
