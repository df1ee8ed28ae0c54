package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/service"
	"github.com/taskwell/taskwell-api/internal/store"
)

// Function-field service mocks for handler tests. These live beside the
// handlers rather than in internal/mocks because the store-level mocks
// there are themselves used by the service tests; a service-interface mock
// in that package would cycle back into internal/service.

// MockUserService implements service.UserService.
type MockUserService struct {
	RegisterFn       func(ctx context.Context, email, password string) (*domain.User, error)
	AuthenticateFn   func(ctx context.Context, email, password string) (*domain.User, error)
	GetUserFn        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ChangeEmailFn    func(ctx context.Context, userID uuid.UUID, newEmail string) (*domain.User, error)
	ChangePasswordFn func(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserService) ChangeEmail(ctx context.Context, userID uuid.UUID, newEmail string) (*domain.User, error) {
	if m.ChangeEmailFn != nil {
		return m.ChangeEmailFn(ctx, userID, newEmail)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, userID, oldPassword, newPassword)
	}
	return store.ErrUserNotFound
}

// MockTaskService implements service.TaskService.
type MockTaskService struct {
	CreateTaskFn func(ctx context.Context, callerID uuid.UUID, params service.CreateTaskParams) (*domain.Task, error)
	GetTaskFn    func(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, callerID, taskID uuid.UUID, patch service.TaskPatch) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, callerID, taskID uuid.UUID) error
	ListTasksFn  func(ctx context.Context, callerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) CreateTask(
	ctx context.Context,
	callerID uuid.UUID,
	params service.CreateTaskParams,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, callerID, params)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskService) GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, callerID, taskID)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	callerID, taskID uuid.UUID,
	patch service.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, callerID, taskID, patch)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskService) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, callerID, taskID)
	}
	return store.ErrTaskNotFound
}

func (m *MockTaskService) ListTasks(
	ctx context.Context,
	callerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, callerID, filter)
	}
	return []*domain.Task{}, nil
}
