package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is returned when an id is not well-formed.
	ErrInvalidIdentifier = errors.New("invalid id format")
	// ErrNotFound is returned when a well-formed id matches no expense.
	ErrNotFound = errors.New("expense not found")
	// ErrNoFieldsToUpdate is returned when an update payload carries no recognized field.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// ValidationError reports a payload that breaks a field rule.
type ValidationError struct {
	Field   string
	Message string
	Details map[string]any
}

func newValidationError(field, message string) *ValidationError {
	e := &ValidationError{Field: field, Message: message}
	if field != "" {
		e.Details = map[string]any{"field": field}
	}
	return e
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps an unexpected failure of the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
