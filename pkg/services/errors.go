// Package services orchestrates chat turns against the workflow core:
// loading state, gating actions, dispatching, persisting, and publishing
// lifecycle events.
package services

import (
	"errors"

	"github.com/procura-ai/procura/pkg/persistence"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyActionID = errors.New("action ID cannot be empty")
	ErrUnknownAction = errors.New("unknown action")

	// Business Logic Conflicts (409 Conflict).
	ErrActionNotAllowed = errors.New("action not allowed at current step")

	// Not Found (404).
	ErrStateNotFound = persistence.ErrStateNotFound
)

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyUserID) ||
		errors.Is(err, ErrEmptyActionID) ||
		errors.Is(err, ErrUnknownAction)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrActionNotAllowed)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrStateNotFound)
}
