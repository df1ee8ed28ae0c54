package mocks

import (
	"bytes"
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation is a full in-memory store: filtering, ordering, and
// pagination behave like the Postgres store so list semantics can be
// exercised without a database.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn      func(ctx context.Context, task *domain.Task) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// Data for default implementation
	Tasks map[uuid.UUID]*domain.Task
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}

	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)
	return nil
}

// ListByOwner implements the TaskStore interface with the same filter,
// ordering, and pagination semantics as the Postgres store.
func (m *MockTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID, filter)
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var matched []*domain.Task
	for _, task := range m.Tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if !taskMatches(task, filter) {
			continue
		}
		matched = append(matched, task)
	}

	sortTasks(matched, filter.OrderBy, filter.OrderDir)

	offset := filter.EffectiveOffset()
	if offset >= len(matched) {
		return []*domain.Task{}, nil
	}
	matched = matched[offset:]

	limit := filter.EffectiveLimit()
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, nil
}

// WithTx implements the TaskStore interface for transaction support
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	// For mock purposes, just return the same mock
	return m
}

// taskMatches applies every supplied predicate; all must hold.
func taskMatches(task *domain.Task, filter store.TaskFilter) bool {
	if filter.TitleContains != "" &&
		!strings.Contains(strings.ToLower(task.Title), strings.ToLower(filter.TitleContains)) {
		return false
	}
	if filter.Status != nil && task.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && task.Priority != *filter.Priority {
		return false
	}
	if filter.DeadlineBefore != nil {
		// Tasks without a deadline never match a deadline bound
		if task.Deadline == nil || task.Deadline.After(*filter.DeadlineBefore) {
			return false
		}
	}
	if filter.DeadlineAfter != nil {
		if task.Deadline == nil || task.Deadline.Before(*filter.DeadlineAfter) {
			return false
		}
	}
	if filter.HideCompleted && task.Status == domain.TaskStatusDone {
		return false
	}
	return true
}

// sortTasks orders tasks the way the Postgres store does: by the requested
// column and direction, nulls last ascending and first descending, with id
// ascending as the tie-break.
func sortTasks(tasks []*domain.Task, orderBy, orderDir string) {
	desc := orderDir == store.OrderDesc

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		var cmp int
		if orderBy == store.TaskOrderByDeadline {
			cmp = compareDeadlines(a.Deadline, b.Deadline)
		} else {
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				cmp = -1
			case a.CreatedAt.After(b.CreatedAt):
				cmp = 1
			}
		}

		if cmp != 0 {
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}

		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

// compareDeadlines orders deadlines with Postgres null placement: a missing
// deadline ranks highest, so it sorts last ascending and first descending.
func compareDeadlines(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}
