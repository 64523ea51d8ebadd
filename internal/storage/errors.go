package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a record is still referenced elsewhere.
	ErrConflict = errors.New("conflict")
	// ErrKeyExhausted is returned when no unique secret key could be issued.
	ErrKeyExhausted = errors.New("could not allocate a unique secret key")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field level messages.
type ValidationError struct {
	Fields map[string][]string
}

func newValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// err returns nil when no field failed.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

func forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}
