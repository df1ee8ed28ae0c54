package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
)

// Pagination defaults for task listing. The default keeps result sets
// finite when the client supplies no limit; the cap bounds what a client
// may request.
const (
	DefaultTaskLimit = 50
	MaxTaskLimit     = 100
)

// Recognized sort keys for task listing.
const (
	TaskOrderByCreatedAt = "created_at"
	TaskOrderByDeadline  = "deadline"
)

// Sort directions for task listing.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// TaskFilter is the filter specification for listing tasks. Zero-valued
// fields are not applied; supplied predicates compose by logical AND.
// The owner is not part of the filter: list operations always scope to the
// calling user and never cross owners.
type TaskFilter struct {
	// TitleContains matches titles containing the substring,
	// case-insensitively. Used by the search operation.
	TitleContains string

	// Status and Priority match exactly. Values outside the closed sets
	// cause ErrInvalidFilter before any query runs.
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority

	// DeadlineBefore and DeadlineAfter bound the deadline inclusively
	// (deadline <= before, deadline >= after). Supplying both forms a
	// range. Tasks without a deadline never match either bound.
	DeadlineBefore *time.Time
	DeadlineAfter  *time.Time

	// HideCompleted excludes tasks whose status is "done". The zero value
	// keeps completed tasks visible, matching the show_completed=true
	// default of the HTTP surface.
	HideCompleted bool

	// OrderBy is one of the TaskOrderBy constants; empty means created_at.
	// OrderDir is "asc" or "desc"; empty means asc. Ties are broken by id
	// ascending for deterministic pagination.
	OrderBy  string
	OrderDir string

	// Limit and Offset paginate the result. Limit 0 means DefaultTaskLimit;
	// values above MaxTaskLimit are clamped. Negative offsets are treated
	// as zero.
	Limit  int
	Offset int
}

// Validate checks the filter's enumerated fields. Returns ErrInvalidFilter
// wrapped with the offending value if status, priority, or ordering fields
// are outside their recognized sets.
func (f *TaskFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidFilter, *f.Status)
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return fmt.Errorf("%w: priority %q", ErrInvalidFilter, *f.Priority)
	}
	switch f.OrderBy {
	case "", TaskOrderByCreatedAt, TaskOrderByDeadline:
	default:
		return fmt.Errorf("%w: order_by %q", ErrInvalidFilter, f.OrderBy)
	}
	switch f.OrderDir {
	case "", OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("%w: order_dir %q", ErrInvalidFilter, f.OrderDir)
	}
	return nil
}

// EffectiveLimit returns the page size after applying the default and cap.
func (f *TaskFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultTaskLimit
	}
	if f.Limit > MaxTaskLimit {
		return MaxTaskLimit
	}
	return f.Limit
}

// EffectiveOffset returns the offset, treating negative values as zero.
func (f *TaskFilter) EffectiveOffset() int {
	if f.Offset < 0 {
		return 0
	}
	return f.Offset
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner;
	// ownership decisions belong to the service layer.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update saves changes to an existing task. ID and OwnerID are never
	// modified. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByOwner retrieves the owner's tasks matching the filter, sorted
	// and paginated as the filter specifies. Returns ErrInvalidFilter for
	// unrecognized enum values; the result is never silently empty in that
	// case.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}
