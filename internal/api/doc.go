// Package api exposes the HTTP surface of the task backend: registration
// and login, the authenticated user's profile, and task CRUD with filtered
// listing. Handlers decode and validate requests, call the services, and
// translate service errors into status codes and stable detail messages in
// one place so no internal error text reaches a client.
package api
