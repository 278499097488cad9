// Package services defines the business logic for tickets and the directory
// listings around them. This file centralizes service-level error values so
// they can be consistently returned by service methods and checked by
// callers.
//
// Translation into HTTP status codes is performed at the handler layer.
package services

import (
	"errors"
	"fmt"
)

// ErrEmptyPriority is returned when a priority update carries a missing or
// blank priority value.
var ErrEmptyPriority = errors.New("priority must not be empty")

// NotFoundError reports that a referenced entity (a ticket itself, or one of
// the foreign keys checked before insert) does not exist. The message names
// the entity and the offending ID so callers can surface it verbatim, e.g.
// "Ticket with ID 999 not found".
type NotFoundError struct {
	Entity string // "Ticket", "User", "IssueType", "Keyword"
	ID     uint
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// notFound is a shorthand constructor used across the service layer.
func notFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
