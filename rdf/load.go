package rdf

import (
	"io"
	"os"
)

// ReadGraph reads a whole Turtle document from r and parses it.
func ReadGraph(r io.Reader, opts DecodeOptions) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return ParseGraphWith(string(data), opts)
}

// LoadFile reads and parses the Turtle document at path.
func LoadFile(path string) (*Graph, error) {
	return LoadFileWith(path, DecodeOptions{})
}

// LoadFileWith is LoadFile with decoding limits.
func LoadFileWith(path string, opts DecodeOptions) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return ParseGraphWith(string(data), opts)
}
