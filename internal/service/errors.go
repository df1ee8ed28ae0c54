// Package service implements the application's business operations on top
// of the store interfaces: the user directory and the task operations with
// their ownership guard.
package service

import (
	"errors"

	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/store"
)

// Common service errors.
var (
	// ErrIncorrectPassword indicates the supplied password does not match
	// the stored hash. Distinct from store.ErrUserNotFound: whether an
	// account exists and whether the password matched are separate answers.
	ErrIncorrectPassword = errors.New("incorrect password")

	// Ownership guard errors. One sentinel per operation so the API layer
	// can surface the operation-specific message verbatim.

	// ErrTaskAccessForbidden indicates the caller does not own the task it
	// tried to read.
	ErrTaskAccessForbidden = errors.New("not allowed to access this task")

	// ErrTaskUpdateForbidden indicates the caller does not own the task it
	// tried to update.
	ErrTaskUpdateForbidden = errors.New("not allowed to update this task")

	// ErrTaskDeleteForbidden indicates the caller does not own the task it
	// tried to delete.
	ErrTaskDeleteForbidden = errors.New("not allowed to delete this task")
)

// IsClientError reports whether the error is caused by the caller (bad
// input, missing entity, failed guard) rather than by the system. Client
// errors are logged at debug/warn level; everything else is unexpected and
// logged at error level.
func IsClientError(err error) bool {
	return store.IsNotFoundError(err) ||
		store.IsDuplicateError(err) ||
		errors.Is(err, store.ErrInvalidFilter) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		errors.Is(err, ErrIncorrectPassword) ||
		errors.Is(err, ErrTaskAccessForbidden) ||
		errors.Is(err, ErrTaskUpdateForbidden) ||
		errors.Is(err, ErrTaskDeleteForbidden) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPriority)
}
