// Package config defines the application's configuration structure and
// loading logic. Configuration comes from environment variables (TASKWELL_
// prefix) layered over an optional config.yaml, and is validated with
// struct tags before use.
package config
