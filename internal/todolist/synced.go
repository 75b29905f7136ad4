package todolist

import (
	"context"

	"github.com/charmbracelet/log"

	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/store"
)

// Synced is the persisted variant: a client-side cache of the backend table.
//
// Every mutation calls the backend first and touches the store only after the
// call succeeds. There is no optimistic path and therefore nothing to roll
// back: when a call fails the store is exactly as it was before the call.
// Failures are logged and returned to the caller.
//
// Overlapping calls are not deduplicated; two concurrent Adds insert twice.
type Synced struct {
	svc    service.Service
	store  *store.Store
	logger *log.Logger
}

var _ List = (*Synced)(nil)

// NewSynced creates an empty list backed by svc. Call Load to fetch the
// current rows. A nil logger discards failure reports.
func NewSynced(svc service.Service, logger *log.Logger) *Synced {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Synced{svc: svc, store: store.New(), logger: logger}
}

// Load replaces the cached tasks with the backend's rows, newest first.
func (s *Synced) Load(ctx context.Context) error {
	tasks, err := s.svc.ListTasks(ctx)
	if err != nil {
		s.logger.Error("Error fetching todos", "err", err)
		return err
	}
	s.store.Load(tasks)
	s.logger.Debug("fetched todos", "count", len(tasks))
	return nil
}

func (s *Synced) Snapshot() Snapshot {
	tasks := s.store.All()
	return Snapshot{Tasks: tasks, RemainingCount: countRemaining(tasks)}
}

func (s *Synced) Tasks() []service.Task { return s.store.All() }
func (s *Synced) RemainingCount() int   { return s.store.RemainingCount() }

func (s *Synced) Add(ctx context.Context, text string) error {
	if blank(text) {
		return nil
	}
	t, err := s.svc.CreateTask(ctx, text)
	if err != nil {
		s.logger.Error("Error adding todo", "err", err)
		return err
	}
	s.store.Prepend(t)
	return nil
}

func (s *Synced) Toggle(ctx context.Context, id string) error {
	current, ok := s.store.Get(id)
	if !ok {
		return nil
	}
	t, err := s.svc.SetCompleted(ctx, id, !current.Completed)
	if err != nil {
		s.logger.Error("Error updating todo", "id", id, "err", err)
		return err
	}
	s.store.Replace(t)
	return nil
}

func (s *Synced) Remove(ctx context.Context, id string) error {
	if !s.store.Has(id) {
		return nil
	}
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.logger.Error("Error deleting todo", "id", id, "err", err)
		return err
	}
	s.store.Remove(id)
	return nil
}

func (s *Synced) ClearCompleted(ctx context.Context) error {
	if err := s.svc.DeleteCompleted(ctx); err != nil {
		s.logger.Error("Error clearing completed todos", "err", err)
		return err
	}
	n := s.store.RemoveCompleted()
	s.logger.Debug("cleared completed todos", "count", n)
	return nil
}
