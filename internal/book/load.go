package book

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the book at path. JSON files load too, since
// JSON is valid YAML.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read book: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes and validates a book. Unknown keys are rejected.
func Parse(data []byte) (*Book, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var b Book
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ValidationError{Message: "book is empty"}
		}
		return nil, ValidationError{Message: "invalid book", Problems: []string{err.Error()}}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
