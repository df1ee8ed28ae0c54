package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service"
	"github.com/taskwell/taskwell-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"incorrect password", service.ErrIncorrectPassword, http.StatusUnauthorized},
		{"task access forbidden", service.ErrTaskAccessForbidden, http.StatusForbidden},
		{"task update forbidden", service.ErrTaskUpdateForbidden, http.StatusForbidden},
		{"task delete forbidden", service.ErrTaskDeleteForbidden, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid filter", store.ErrInvalidFilter, http.StatusUnprocessableEntity},
		{"weak password", domain.ErrWeakPassword, http.StatusUnprocessableEntity},
		{"invalid ID", domain.ErrInvalidID, http.StatusUnprocessableEntity},

		// Field-level validation sentinels map to 422, not 500. These reach
		// the mapper directly from the task constructor because the create
		// request carries no struct tags of its own.
		{"empty title", domain.ErrEmptyTitle, http.StatusUnprocessableEntity},
		{"invalid status", domain.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{"invalid priority", domain.ErrInvalidPriority, http.StatusUnprocessableEntity},
		{"empty email", domain.ErrEmptyEmail, http.StatusUnprocessableEntity},
		{"invalid email", domain.ErrInvalidEmail, http.StatusUnprocessableEntity},

		// Wrapping must not change the mapping.
		{"wrapped empty title", fmt.Errorf("creating task: %w", domain.ErrEmptyTitle), http.StatusUnprocessableEntity},
		{"wrapped invalid status", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, "archived"), http.StatusUnprocessableEntity},

		{"unknown error", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"incorrect password", service.ErrIncorrectPassword, "Incorrect password"},
		{"user not found", store.ErrUserNotFound, "User does not exist"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"email exists", store.ErrEmailExists, "Email already registered"},
		{"access forbidden", service.ErrTaskAccessForbidden, "Not allowed to access this task"},
		{"update forbidden", service.ErrTaskUpdateForbidden, "Not allowed to update this task"},
		{"delete forbidden", service.ErrTaskDeleteForbidden, "Not allowed to delete this task"},
		{"weak password", domain.ErrWeakPassword, "Password does not meet strength requirements"},

		// The field sentinels wrap ErrValidation; the specific message must
		// still win over the generic "Validation error".
		{"empty title", domain.ErrEmptyTitle, "Task title must not be empty"},
		{"invalid status", domain.ErrInvalidStatus, "Invalid task status"},
		{"invalid priority", domain.ErrInvalidPriority, "Invalid task priority"},
		{"invalid email", domain.ErrInvalidEmail, "Invalid email address"},

		{"unknown error", fmt.Errorf("pq: out of shared memory"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}
