// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of the store and auth
// interfaces used throughout the application, facilitating consistent and
// DRY testing across the codebase. Service-interface mocks deliberately do
// not live here: this package is imported by the service tests themselves,
// so a mock of a service interface would cycle back into internal/service.
//
// The store mocks carry a full in-memory default implementation, so handler
// and service tests exercise real filter, ordering, and pagination behavior
// without a database. Function fields override individual methods when a test
// needs a specific failure or edge case:
//
//	mockStore := mocks.NewMockTaskStore()
//	mockStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
//	    return nil, store.ErrTaskNotFound
//	}
package mocks
