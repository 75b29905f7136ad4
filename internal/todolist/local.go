package todolist

import (
	"context"
	"strconv"
	"sync"
	"time"

	"todo/internal/service"
	"todo/internal/store"
)

// Local is the in-memory variant. State lasts as long as the value does.
//
// New tasks are appended, so Local lists oldest first while Synced lists
// newest first. The two variants have always differed here; callers that
// need one order must sort themselves.
type Local struct {
	store *store.Store
	now   func() time.Time

	mu     sync.Mutex
	lastID int64
}

var _ List = (*Local)(nil)

// NewLocal creates an empty in-memory list.
func NewLocal() *Local {
	return &Local{store: store.New(), now: time.Now}
}

// NewLocalWithClock creates an in-memory list using now for IDs and
// creation times.
func NewLocalWithClock(now func() time.Time) *Local {
	return &Local{store: store.New(), now: now}
}

func (l *Local) Snapshot() Snapshot {
	tasks := l.store.All()
	return Snapshot{Tasks: tasks, RemainingCount: countRemaining(tasks)}
}

func (l *Local) Tasks() []service.Task { return l.store.All() }
func (l *Local) RemainingCount() int   { return l.store.RemainingCount() }

func (l *Local) Add(ctx context.Context, text string) error {
	if blank(text) {
		return nil
	}
	now := l.now()
	l.store.Append(service.Task{
		ID:        l.nextID(now),
		Text:      text,
		Completed: false,
		CreatedAt: now,
	})
	return nil
}

func (l *Local) Toggle(ctx context.Context, id string) error {
	l.store.Update(id, func(t *service.Task) { t.Completed = !t.Completed })
	return nil
}

func (l *Local) Remove(ctx context.Context, id string) error {
	l.store.Remove(id)
	return nil
}

func (l *Local) ClearCompleted(ctx context.Context) error {
	l.store.RemoveCompleted()
	return nil
}

// nextID derives an ID from the clock in milliseconds, bumped past the last
// one issued when the clock has not moved.
func (l *Local) nextID(now time.Time) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return strconv.FormatInt(id, 10)
}

func countRemaining(tasks []service.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
