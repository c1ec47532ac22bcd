package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrStateNotFound indicates no workflow state exists for the user.
	ErrStateNotFound = errors.New("workflow state not found")

	// ErrInvalidState indicates a stored record could not be decoded.
	ErrInvalidState = errors.New("invalid workflow state record")

	// ErrMissingUserID indicates a state without a user identity was passed in.
	ErrMissingUserID = errors.New("user ID is required")
)

// StateError wraps state-persistence errors with operation context.
type StateError struct {
	Op     string // Operation being performed (e.g., "GetByUser", "Save")
	UserID string // User the state belongs to
	Err    error  // Underlying error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s operation failed for user %s: %v", e.Op, e.UserID, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

func (e *StateError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStateError creates a new state error with context.
func NewStateError(op, userID string, err error) *StateError {
	return &StateError{
		Op:     op,
		UserID: userID,
		Err:    err,
	}
}

// IsStateNotFound checks if an error indicates a missing state record.
func IsStateNotFound(err error) bool {
	return errors.Is(err, ErrStateNotFound)
}

// IsInvalidState checks if an error indicates an undecodable state record.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
