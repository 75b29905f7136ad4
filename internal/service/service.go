// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service is the sync adapter: the only boundary that talks to the record store
// holding the todos table. Commands and list models never import a backend SDK.
//
// Every method performs exactly one backend request. Failures are returned once
// as *RemoteError and are never retried.
type Service interface {
	// ListTasks returns every task, newest first.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask inserts {text, completed: false} and returns the stored row,
	// which carries the store-assigned ID and creation time.
	CreateTask(ctx context.Context, text string) (Task, error)

	// SetCompleted updates the completed flag of one task and returns the
	// updated row.
	SetCompleted(ctx context.Context, id string, completed bool) (Task, error)

	// DeleteTask deletes one task by ID.
	DeleteTask(ctx context.Context, id string) error

	// DeleteCompleted deletes every task with completed = true.
	DeleteCompleted(ctx context.Context) error
}
