package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Every field-specific validation sentinel below wraps it, so callers
	// can classify with errors.Is(err, ErrValidation) and still match the
	// specific sentinel.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyEmail is returned when an email is required but missing.
	ErrEmptyEmail = fmt.Errorf("%w: email cannot be empty", ErrValidation)

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrWeakPassword is returned when a password does not satisfy the
	// password policy (length and character classes).
	ErrWeakPassword = fmt.Errorf("%w: password does not meet strength requirements", ErrValidation)

	// ErrEmptyTitle is returned when a task is created or updated with an
	// empty title.
	ErrEmptyTitle = fmt.Errorf("%w: task title cannot be empty", ErrValidation)

	// ErrInvalidStatus is returned when a task status is outside the closed
	// set of recognized values.
	ErrInvalidStatus = fmt.Errorf("%w: invalid task status", ErrValidation)

	// ErrInvalidPriority is returned when a task priority is outside the
	// closed set of recognized values.
	ErrInvalidPriority = fmt.Errorf("%w: invalid task priority", ErrValidation)

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)
)
