package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/mocks"
	"github.com/taskwell/taskwell-api/internal/store"
)

// newTestTaskService wires a TaskService to the in-memory mock store with
// transactions short-circuited.
func newTestTaskService(taskStore *mocks.MockTaskStore) *TaskServiceImpl {
	svc := NewTaskService(taskStore, nil, nil)
	svc.runTx = func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	return svc
}

func mustCreateTask(t *testing.T, svc *TaskServiceImpl, ownerID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), ownerID, CreateTaskParams{Title: title})
	require.NoError(t, err)
	return task
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	svc := newTestTaskService(mocks.NewMockTaskStore())

	t.Run("applies defaults and sets owner", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, ownerID, CreateTaskParams{Title: "Buy milk"})
		require.NoError(t, err)

		assert.Equal(t, ownerID, task.OwnerID)
		assert.Equal(t, domain.TaskStatusTodo, task.Status)
		assert.Equal(t, domain.TaskPriorityNone, task.Priority)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, ownerID, CreateTaskParams{})
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, ownerID, CreateTaskParams{
			Title:  "Buy milk",
			Status: "pending",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, ownerID, CreateTaskParams{
			Title:    "Buy milk",
			Priority: "urgent",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})
}

func TestOwnershipGuard(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	strangerID := uuid.New()

	svc := newTestTaskService(mocks.NewMockTaskStore())
	task := mustCreateTask(t, svc, ownerID, "Private task")

	t.Run("owner may read", func(t *testing.T) {
		got, err := svc.GetTask(ctx, ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("stranger read is forbidden", func(t *testing.T) {
		_, err := svc.GetTask(ctx, strangerID, task.ID)
		assert.ErrorIs(t, err, ErrTaskAccessForbidden)
	})

	t.Run("stranger update is forbidden", func(t *testing.T) {
		title := "hijacked"
		_, err := svc.UpdateTask(ctx, strangerID, task.ID, TaskPatch{Title: &title})
		assert.ErrorIs(t, err, ErrTaskUpdateForbidden)
	})

	t.Run("stranger delete is forbidden", func(t *testing.T) {
		err := svc.DeleteTask(ctx, strangerID, task.ID)
		assert.ErrorIs(t, err, ErrTaskDeleteForbidden)
	})

	t.Run("missing task reports not found before forbidden", func(t *testing.T) {
		missing := uuid.New()

		_, err := svc.GetTask(ctx, strangerID, missing)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = svc.UpdateTask(ctx, strangerID, missing, TaskPatch{})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		err = svc.DeleteTask(ctx, strangerID, missing)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("partial patch leaves other fields untouched", func(t *testing.T) {
		svc := newTestTaskService(mocks.NewMockTaskStore())
		task, err := svc.CreateTask(ctx, ownerID, CreateTaskParams{
			Title:       "Write report",
			Description: "quarterly numbers",
			Priority:    domain.TaskPriorityMedium,
		})
		require.NoError(t, err)

		status := domain.TaskStatusDone
		updated, err := svc.UpdateTask(ctx, ownerID, task.ID, TaskPatch{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, domain.TaskStatusDone, updated.Status)
		assert.Equal(t, "Write report", updated.Title)
		assert.Equal(t, "quarterly numbers", updated.Description)
		assert.Equal(t, domain.TaskPriorityMedium, updated.Priority)
	})

	t.Run("refreshes UpdatedAt", func(t *testing.T) {
		svc := newTestTaskService(mocks.NewMockTaskStore())
		task := mustCreateTask(t, svc, ownerID, "Buy milk")
		before := task.UpdatedAt

		time.Sleep(5 * time.Millisecond)

		title := "Buy oat milk"
		updated, err := svc.UpdateTask(ctx, ownerID, task.ID, TaskPatch{Title: &title})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(before))
		assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	})

	t.Run("rejects patch that empties the title", func(t *testing.T) {
		svc := newTestTaskService(mocks.NewMockTaskStore())
		task := mustCreateTask(t, svc, ownerID, "Buy milk")

		empty := ""
		_, err := svc.UpdateTask(ctx, ownerID, task.ID, TaskPatch{Title: &empty})
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("rejects patch with unknown status", func(t *testing.T) {
		svc := newTestTaskService(mocks.NewMockTaskStore())
		task := mustCreateTask(t, svc, ownerID, "Buy milk")

		bad := domain.TaskStatus("pending")
		_, err := svc.UpdateTask(ctx, ownerID, task.ID, TaskPatch{Status: &bad})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	svc := newTestTaskService(mocks.NewMockTaskStore())
	task := mustCreateTask(t, svc, ownerID, "Temporary")

	require.NoError(t, svc.DeleteTask(ctx, ownerID, task.ID))

	_, err := svc.GetTask(ctx, ownerID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	err = svc.DeleteTask(ctx, ownerID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestListTasksScopedToOwner(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	otherID := uuid.New()

	svc := newTestTaskService(mocks.NewMockTaskStore())
	mustCreateTask(t, svc, ownerID, "mine one")
	mustCreateTask(t, svc, ownerID, "mine two")
	mustCreateTask(t, svc, otherID, "theirs")

	tasks, err := svc.ListTasks(ctx, ownerID, store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, ownerID, task.OwnerID)
	}
}

func TestListTasksRejectsInvalidFilter(t *testing.T) {
	ctx := context.Background()
	svc := newTestTaskService(mocks.NewMockTaskStore())

	bad := domain.TaskStatus("pending")
	_, err := svc.ListTasks(ctx, uuid.New(), store.TaskFilter{Status: &bad})
	assert.ErrorIs(t, err, store.ErrInvalidFilter)
}
