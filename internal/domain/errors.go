package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity lookup misses
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// IsNotFound reports whether err is an ErrNotFound
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrStaleRevision is returned when a response write carries a revision
	// that is not newer than the stored one
	ErrStaleRevision = errors.New("response revision is stale")

	// ErrShowroomNotSent is returned when a selection is submitted before the
	// showroom link has been sent
	ErrShowroomNotSent = errors.New("showroom has not been sent for this session")

	// ErrSelectionExists is returned when a session already has a recorded selection
	ErrSelectionExists = errors.New("a selection already exists for this session")

	// ErrClientEmailExists is returned when a client with the same email already exists
	ErrClientEmailExists = errors.New("a client with this email already exists")

	// ErrSessionCompleted is returned on attempts to mutate a completed
	// session outside of the showroom fields
	ErrSessionCompleted = errors.New("session is completed and immutable")

	// ErrPayloadTooLarge is returned when an upload exceeds its size cap
	ErrPayloadTooLarge = errors.New("payload exceeds the size limit")

	// ErrUserNotApproved is returned when a non-approved operator hits a studio route
	ErrUserNotApproved = errors.New("operator account is not approved")

	// ErrCodeExpired is returned when a sign-in code is expired or invalid
	ErrCodeExpired = errors.New("sign-in code is invalid or expired")

	// ErrSessionExpired is returned when an operator session has expired
	ErrSessionExpired = errors.New("session expired")

	// ErrUserNotFound is returned by auth verification for unknown users
	ErrUserNotFound = errors.New("user not found")
)
