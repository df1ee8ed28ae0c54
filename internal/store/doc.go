// Package store defines the persistence interfaces for the application's
// entities, the filter value objects they accept, and the sentinel errors
// implementations must return. Concrete implementations live under
// internal/platform.
package store
