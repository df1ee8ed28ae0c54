package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/store"
)

// CreateTaskParams carries the caller-supplied fields for creating a task.
// Status and priority default to "to-do" and "none" when empty; the owner
// is never part of the params because it is always the authenticated caller.
type CreateTaskParams struct {
	Title       string
	Description string
	Deadline    *time.Time
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
}

// TaskPatch is a partial update: nil fields are left unchanged. A non-nil
// deadline replaces the current one; there is no way to clear a deadline
// through a patch.
type TaskPatch struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
}

// TaskService provides task CRUD and filtered listing, gated by the
// ownership guard: every operation on an existing task first resolves the
// task, then checks that the caller owns it. Not-found is always reported
// before forbidden; the two outcomes are distinct and never collapsed.
type TaskService interface {
	// CreateTask creates a task owned by the caller.
	CreateTask(ctx context.Context, callerID uuid.UUID, params CreateTaskParams) (*domain.Task, error)

	// GetTask retrieves a task. Returns store.ErrTaskNotFound if absent,
	// ErrTaskAccessForbidden if the caller is not the owner.
	GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error)

	// UpdateTask applies a partial patch. Returns store.ErrTaskNotFound if
	// absent, ErrTaskUpdateForbidden if the caller is not the owner.
	// UpdatedAt is refreshed; ID and owner are immutable.
	UpdateTask(ctx context.Context, callerID, taskID uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// DeleteTask permanently removes a task. Returns store.ErrTaskNotFound
	// if absent, ErrTaskDeleteForbidden if the caller is not the owner.
	DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error

	// ListTasks returns the caller's tasks matching the filter. Results
	// never include another user's tasks.
	ListTasks(ctx context.Context, callerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
}

// taskOp identifies the operation being authorized, selecting the
// operation-specific forbidden error.
type taskOp int

const (
	taskOpRead taskOp = iota
	taskOpUpdate
	taskOpDelete
)

// authorizeTask is the ownership guard: the caller may act on the task iff
// they own it. Pure function of the caller identity and the task.
func authorizeTask(callerID uuid.UUID, task *domain.Task, op taskOp) error {
	if task.OwnerID == callerID {
		return nil
	}

	switch op {
	case taskOpUpdate:
		return ErrTaskUpdateForbidden
	case taskOpDelete:
		return ErrTaskDeleteForbidden
	default:
		return ErrTaskAccessForbidden
	}
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger

	// runTx executes a function inside one transaction. Injectable for
	// testing; defaults to store.RunInTransaction.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, db *sql.DB, log *slog.Logger) *TaskServiceImpl {
	if log == nil {
		log = slog.Default()
	}

	return &TaskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    log.With(slog.String("component", "task_service")),
		runTx:     store.RunInTransaction,
	}
}

// CreateTask creates a task owned by the caller.
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	callerID uuid.UUID,
	params CreateTaskParams,
) (*domain.Task, error) {
	task, err := domain.NewTask(
		callerID,
		params.Title,
		params.Description,
		params.Deadline,
		params.Status,
		params.Priority,
	)
	if err != nil {
		s.logger.Debug("task creation rejected by validation", "error", err)
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"owner_id", callerID)
		return nil, err
	}

	return task, nil
}

// GetTask retrieves a task after the ownership guard admits the caller.
func (s *TaskServiceImpl) GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := authorizeTask(callerID, task, taskOpRead); err != nil {
		s.logger.Warn("caller does not own task",
			"caller_id", callerID,
			"task_id", taskID,
			"operation", "read")
		return nil, err
	}

	return task, nil
}

// UpdateTask applies a partial patch inside one transaction. The task is
// re-resolved inside the transaction so the guard and the write see the
// same row.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	callerID, taskID uuid.UUID,
	patch TaskPatch,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		if err := authorizeTask(callerID, task, taskOpUpdate); err != nil {
			s.logger.Warn("caller does not own task",
				"caller_id", callerID,
				"task_id", taskID,
				"operation", "update")
			return err
		}

		applyPatch(task, patch)
		task.UpdatedAt = time.Now().UTC()

		if err := task.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		if !IsClientError(err) {
			s.logger.Error("failed to update task",
				"error", err,
				"task_id", taskID)
		}
		return nil, err
	}

	return updated, nil
}

// DeleteTask removes a task inside one transaction after the guard admits
// the caller.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	return s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		if err := authorizeTask(callerID, task, taskOpDelete); err != nil {
			s.logger.Warn("caller does not own task",
				"caller_id", callerID,
				"task_id", taskID,
				"operation", "delete")
			return err
		}

		return txStore.Delete(ctx, taskID)
	})
}

// ListTasks returns the caller's tasks matching the filter.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	callerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByOwner(ctx, callerID, filter)
	if err != nil {
		if !errors.Is(err, store.ErrInvalidFilter) {
			s.logger.Error("failed to list tasks",
				"error", err,
				"owner_id", callerID)
		}
		return nil, err
	}

	return tasks, nil
}

// applyPatch copies the supplied patch fields onto the task. Nil fields
// are left untouched; ID and OwnerID are not reachable from a patch.
func applyPatch(task *domain.Task, patch TaskPatch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
}
