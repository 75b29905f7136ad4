// Package todolist implements the task mutation operations on top of a store.
//
// Two variants share the List interface: Local keeps tasks in memory only and
// never fails; Synced mirrors a remote table through a service.Service and
// changes local state only after the backend confirms a mutation.
package todolist

import (
	"context"
	"strings"

	"todo/internal/service"
)

// Snapshot is what a presentation layer renders.
type Snapshot struct {
	Tasks          []service.Task `json:"tasks" yaml:"tasks"`
	RemainingCount int            `json:"remainingCount" yaml:"remainingCount"`
}

// List is the set of operations a presentation layer drives.
type List interface {
	// Snapshot returns the tasks and remaining count read under one view.
	Snapshot() Snapshot

	// Tasks returns the current ordered tasks.
	Tasks() []service.Task

	// RemainingCount returns the number of tasks not yet completed.
	RemainingCount() int

	// Add creates a task. Empty or whitespace-only text is a no-op.
	Add(ctx context.Context, text string) error

	// Toggle flips the completed flag of a task. Unknown IDs are a no-op.
	Toggle(ctx context.Context, id string) error

	// Remove deletes a task. Unknown IDs are a no-op.
	Remove(ctx context.Context, id string) error

	// ClearCompleted deletes every completed task.
	ClearCompleted(ctx context.Context) error
}

// blank reports whether text must be rejected at the boundary.
func blank(text string) bool {
	return strings.TrimSpace(text) == ""
}
