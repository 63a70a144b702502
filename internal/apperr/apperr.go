// Package apperr defines the error taxonomy shared by all modules.
// Services wrap these sentinels with fmt.Errorf("...: %w", ...) so that
// handlers can classify failures with errors.Is without string matching,
// and without leaking driver internals to clients.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both "does not exist" and "belongs to another
	// owner" — callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock rejects an order or stock adjustment that would
	// drive a product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition rejects a status change not permitted from the
	// entity's current state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStorageUnavailable wraps infrastructure failures from the data
	// store. Mutations that return it have left no partial state.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError carries per-field failures for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// Validation builds a ValidationError for a single field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// Storage classifies a repository error: nil stays nil, sentinels pass
// through untouched, anything else is wrapped as ErrStorageUnavailable.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInsufficientStock) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
