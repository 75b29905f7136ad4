// Package store holds the ordered, in-memory collection of tasks shown to the user.
package store

import (
	"sync"

	"todo/internal/service"
)

// Store is the client-side task collection. Order is chosen by the owner
// (Prepend or Append); the store never sorts.
//
// The remaining count is not cached: RemainingCount scans on every call so it
// cannot drift from the tasks it describes.
type Store struct {
	mu    sync.RWMutex
	tasks []service.Task
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Load replaces the entire contents of the store.
func (s *Store) Load(tasks []service.Task) {
	cp := make([]service.Task, len(tasks))
	copy(cp, tasks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cp
}

// All returns a copy of the tasks in store order.
func (s *Store) All() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]service.Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// RemainingCount returns the number of tasks that are not completed.
func (s *Store) RemainingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return service.Task{}, false
}

// Has reports whether a task with the given ID is present.
func (s *Store) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Prepend inserts t at the front. A task with the same ID is replaced in place
// instead, so IDs stay unique.
func (s *Store) Prepend(t service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(t.ID); i >= 0 {
		s.tasks[i] = t
		return
	}
	s.tasks = append([]service.Task{t}, s.tasks...)
}

// Append inserts t at the back. A task with the same ID is replaced in place
// instead, so IDs stay unique.
func (s *Store) Append(t service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(t.ID); i >= 0 {
		s.tasks[i] = t
		return
	}
	s.tasks = append(s.tasks, t)
}

// Replace swaps the task with t.ID for t. Returns false if no such task exists.
func (s *Store) Replace(t service.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(t.ID)
	if i < 0 {
		return false
	}
	s.tasks[i] = t
	return true
}

// Update applies fn to the task with the given ID. Returns false if no such task exists.
func (s *Store) Update(id string, fn func(*service.Task)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	fn(&s.tasks[i])
	return true
}

// Remove deletes the task with the given ID. Returns false if no such task exists.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true
}

// RemoveCompleted deletes every completed task, keeping the relative order of
// the rest. Returns the number of tasks removed.
func (s *Store) RemoveCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]service.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	return removed
}

// index must be called with mu held.
func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
