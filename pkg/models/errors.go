package models

import (
	"errors"
	"fmt"
)

// ErrVertexIndex is returned when a face references a vertex that does not
// exist.
var ErrVertexIndex = errors.New("vertex index out of range")

var errMissingFields = errors.New("missing fields")

// ParseError reports a malformed line in an asset description.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
