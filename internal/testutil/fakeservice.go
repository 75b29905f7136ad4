// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"todo/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Rows are kept newest first, the order ListTasks promises.
type FakeService struct {
	mu     sync.RWMutex
	rows   []service.Task
	nextID int
	clock  time.Time

	// Error injection for testing. Injected errors are returned wrapped as
	// *service.RemoteError, like a real backend would.
	ListTasksErr       error
	CreateTaskErr      error
	SetCompletedErr    error
	DeleteTaskErr      error
	DeleteCompletedErr error

	// Calls counts backend requests per operation name.
	Calls map[string]int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		clock:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Calls:  make(map[string]int),
	}
}

// AddTask seeds a row as if it had been created now. It becomes the newest row.
func (f *FakeService) AddTask(id, text string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append([]service.Task{{
		ID:        id,
		Text:      text,
		Completed: completed,
		CreatedAt: f.tick(),
	}}, f.rows...)
}

// Rows returns a copy of the stored rows, newest first.
func (f *FakeService) Rows() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.rows))
	copy(result, f.rows)
	return result
}

// CallCount returns the number of requests made for op.
func (f *FakeService) CallCount(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.Calls[op]
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.count(service.OpFetch)
	if f.ListTasksErr != nil {
		return nil, service.Failed(service.OpFetch, f.ListTasksErr)
	}
	return f.Rows(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, text string) (service.Task, error) {
	f.count(service.OpCreate)
	if f.CreateTaskErr != nil {
		return service.Task{}, service.Failed(service.OpCreate, f.CreateTaskErr)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := "t" + strconv.Itoa(f.nextID)
	for f.index(id) >= 0 {
		f.nextID++
		id = "t" + strconv.Itoa(f.nextID)
	}
	f.nextID++
	t := service.Task{ID: id, Text: text, CreatedAt: f.tick()}
	f.rows = append([]service.Task{t}, f.rows...)
	return t, nil
}

// SetCompleted implements service.Service.
func (f *FakeService) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	f.count(service.OpUpdate)
	if f.SetCompletedErr != nil {
		return service.Task{}, service.Failed(service.OpUpdate, f.SetCompletedErr)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.index(id)
	if i < 0 {
		return service.Task{}, service.Failedf(service.OpUpdate, "not found")
	}
	f.rows[i].Completed = completed
	return f.rows[i], nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.count(service.OpDelete)
	if f.DeleteTaskErr != nil {
		return service.Failed(service.OpDelete, f.DeleteTaskErr)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := f.index(id); i >= 0 {
		f.rows = append(f.rows[:i], f.rows[i+1:]...)
	}
	return nil
}

// DeleteCompleted implements service.Service.
func (f *FakeService) DeleteCompleted(ctx context.Context) error {
	f.count(service.OpClearDone)
	if f.DeleteCompletedErr != nil {
		return service.Failed(service.OpClearDone, f.DeleteCompletedErr)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.rows[:0]
	for _, t := range f.rows {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	f.rows = kept
	return nil
}

// index returns the position of id in rows, or -1. Must be called with mu held.
func (f *FakeService) index(id string) int {
	for i, t := range f.rows {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeService) count(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[op]++
}

// tick advances the fake clock by one second. Must be called with mu held.
func (f *FakeService) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}
