package book

import (
	"fmt"
	"strings"
)

// ValidationError reports a book that is malformed or inconsistent.
type ValidationError struct {
	Message  string
	Problems []string
}

func (e ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Problems, "; ")
}

// NotFoundError reports a lookup of an id the book does not contain.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
