// Package source resolves file patterns to Turtle documents, loads them
// into a single graph and watches them for changes.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/geoknoesis/rdfs-go/rdf"
)

// DefaultExtension is globbed for when a pattern names a directory.
const DefaultExtension = ".ttl"

// ErrNoMatch is returned when a pattern matches no file.
var ErrNoMatch = errors.New("source: pattern matches no file")

// Expand resolves file paths, directories and glob patterns (with ** support)
// to a sorted, deduplicated list of absolute file paths.
//
// Examples:
//   - "data/people.ttl" → ["/abs/data/people.ttl"]
//   - "data" → every *.ttl below data
//   - "data/**/*.ttl" → every *.ttl below data
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var resolved []string
	for _, pattern := range patterns {
		paths, err := expandPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}
	slices.Sort(resolved)
	return resolved, nil
}

func expandPattern(pattern string) ([]string, error) {
	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, err
	}
	if !containsGlob(pattern) {
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return []string{abs}, nil
		}
		abs = filepath.Join(abs, "**", "*"+DefaultExtension)
	}

	matches, err := doublestar.FilepathGlob(abs, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	return matches, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Load parses every file and merges them into one canonical graph. Each file
// is canonicalized against its own prefixes first. When more than one file is
// loaded, blank node labels are scoped per file ("f2_blank1") so nodes from
// different documents stay distinct.
func Load(paths []string, opts rdf.DecodeOptions) (*rdf.Graph, error) {
	merged := rdf.NewGraph()
	for i, path := range paths {
		g, err := rdf.LoadFileWith(path, opts)
		if err != nil {
			return nil, err
		}
		if err := g.Canonicalize(); err != nil {
			return nil, fmt.Errorf("canonicalize %s: %w", path, err)
		}
		if len(paths) > 1 {
			ScopeBlankNodes(g.Triples, "f"+strconv.Itoa(i+1)+"_")
		}
		merged.Merge(g)
	}
	return merged, nil
}

// ScopeBlankNodes prefixes the label of every blank node in triples, in place.
func ScopeBlankNodes(triples []rdf.Triple, scope string) {
	rename := func(u rdf.URI) rdf.URI {
		if u.IsBlank() {
			u.Name = scope + u.Name
		}
		return u
	}
	for i := range triples {
		t := &triples[i]
		t.Subject.URI = rename(t.Subject.URI)
		t.Predicate.URI = rename(t.Predicate.URI)
		if r, ok := rdf.AsResource(t.Object); ok {
			t.Object = rdf.NewResource(rename(r.URI))
		}
	}
}
