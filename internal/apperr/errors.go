// Package apperr defines the error kinds domain services return to the
// request boundary. Handlers map these to response codes; services never
// deal in HTTP status directly.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError means a referenced entity id does not exist.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// ValidationError means caller-supplied data fails a domain precondition.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s.%s: %s", e.Entity, e.Field, e.Reason)
}

// ConflictError means a uniqueness constraint was violated.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func NotFound(entity string, id int) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Validation(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

func Conflict(entity, field, value string) error {
	return &ConflictError{Entity: entity, Field: field, Value: value}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
