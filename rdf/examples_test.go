package rdf

import (
	"fmt"
	"os"
)

func ExampleGraph_StartQuery() {
	g, err := ParseGraph(`
@prefix ex: <http://example.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
ex:Dog rdfs:subClassOf ex:Animal .
ex:rex a ex:Dog .
`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	q, err := g.StartQuery(1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	types, _ := q.
		Subject(Equals("http://example.org/rex")).
		Predicate(HasSuffix("#type")).
		Values()
	for _, t := range types {
		fmt.Println(t)
	}

	// Output:
	// http://example.org/Dog
	// http://example.org/Animal
	// http://www.w3.org/2000/01/rdf-schema#Resource
}

func ExampleURI_Canonicalize() {
	u, err := ParseURI("ex:Dog")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	c, err := u.Canonicalize("", map[string]string{"ex:": "http://example.org/"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(u.Kind, "->", c.Kind, c)

	// Output:
	// Prefixed -> Full http://example.org/Dog
}

func ExampleGraph_Canonicalize() {
	g, err := ParseGraph("ex:a ex:b ex:c .")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := g.Canonicalize(); err != nil {
		fmt.Println(err)
	}

	// Output:
	// rdf: use of prefix without first defining it: ex:
}

func ExampleWriteTriples() {
	g, err := ParseGraph(`
@prefix ex: <http://example.org/> .
ex:rex ex:name "Rex"@en .
`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := g.Canonicalize(); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := WriteTriples(os.Stdout, g.Triples, FormatNTriples); err != nil {
		fmt.Println("error:", err)
	}

	// Output:
	// <http://example.org/rex> <http://example.org/name> "Rex"@en .
}
