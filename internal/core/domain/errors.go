// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a motorcycle id does not exist
	ErrNotFound = errors.New("motorcycle not found")
	// ErrInvalidIndex is returned when a reorder position is out of range
	ErrInvalidIndex = errors.New("invalid list index")
	// ErrValidation is matched by every *ValidationError
	ErrValidation = errors.New("validation failed")
)

// ValidationError collects per-field problems
type ValidationError struct {
	Fields map[Field]string
}

// NewValidationError returns an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[Field]string)}
}

// Add records a problem for a field, keeping the first one
func (e *ValidationError) Add(f Field, msg string) {
	if _, exists := e.Fields[f]; !exists {
		e.Fields[f] = msg
	}
}

// Empty reports whether no problems were recorded
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, msg))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
