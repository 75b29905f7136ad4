// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Task represents a single to-do record.
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Completed bool      `json:"completed" yaml:"completed"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
