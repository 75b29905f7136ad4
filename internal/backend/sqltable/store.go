// Package sqltable implements service.Service on a todos table reached through
// database/sql: a local sqlite file or a Postgres database.
package sqltable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"todo/internal/service"
)

// Dialect captures what differs between the supported databases.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string

	// Schema holds the statements that create the table if missing.
	Schema []string

	// Numbered placeholders ($1, $2) instead of ?.
	Numbered bool

	// TimeArg converts a creation time into a bind argument.
	TimeArg func(time.Time) any
}

// sqliteTimeLayout has a fixed width so text order is time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// SQLite stores timestamps as fixed-width UTC text.
var SQLite = Dialect{
	Driver: "sqlite3",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS todos_created_at ON todos (created_at)`,
	},
	TimeArg: func(t time.Time) any { return t.UTC().Format(sqliteTimeLayout) },
}

// Postgres uses a timestamptz column.
var Postgres = Dialect{
	Driver: "postgres",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS todos_created_at ON todos (created_at)`,
	},
	Numbered: true,
	TimeArg:  func(t time.Time) any { return t.UTC() },
}

const columns = "id, text, completed, created_at"

// Store implements service.Service on a todos table.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
	newID   func() string

	mu   sync.Mutex
	last time.Time
}

const busyTimeout = "_busy_timeout=5000"

// OpenSQLite opens (creating if needed) the sqlite database at path, which is
// a file path or a file: URI. Missing parent directories of a plain path are
// created.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return Open(ctx, SQLite, sqliteDSN(path))
}

// sqliteDSN adds the busy timeout to path unless it already sets one.
func sqliteDSN(path string) string {
	switch {
	case strings.Contains(path, "_busy_timeout="):
		return path
	case strings.Contains(path, "?"):
		return path + "&" + busyTimeout
	}
	return path + "?" + busyTimeout
}

// OpenPostgres opens the Postgres database named by a lib/pq connection string.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	return Open(ctx, Postgres, dsn)
}

// Open connects with dialect d and creates the todos table if missing.
func Open(ctx context.Context, d Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, stmt := range d.Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return &Store{
		db:      db,
		dialect: d,
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListTasks implements service.Service.
func (s *Store) ListTasks(ctx context.Context) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind("SELECT "+columns+" FROM todos ORDER BY created_at DESC, id DESC"))
	if err != nil {
		return nil, service.Failed(service.OpFetch, err)
	}
	defer rows.Close()

	var tasks []service.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, service.Failed(service.OpFetch, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, service.Failed(service.OpFetch, err)
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (s *Store) CreateTask(ctx context.Context, text string) (service.Task, error) {
	query := s.rebind("INSERT INTO todos (" + columns + ") VALUES (?, ?, ?, ?) RETURNING " + columns)
	row := s.db.QueryRowContext(ctx, query, s.newID(), text, false, s.dialect.TimeArg(s.createdAt()))
	t, err := scanTask(row)
	if err != nil {
		return service.Task{}, service.Failed(service.OpCreate, err)
	}
	return t, nil
}

// SetCompleted implements service.Service.
func (s *Store) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	query := s.rebind("UPDATE todos SET completed = ? WHERE id = ? RETURNING " + columns)
	t, err := scanTask(s.db.QueryRowContext(ctx, query, completed, id))
	if errors.Is(err, sql.ErrNoRows) {
		return service.Task{}, &service.RemoteError{Op: service.OpUpdate, Message: "not found", Err: err}
	}
	if err != nil {
		return service.Task{}, service.Failed(service.OpUpdate, err)
	}
	return t, nil
}

// DeleteTask implements service.Service.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM todos WHERE id = ?"), id); err != nil {
		return service.Failed(service.OpDelete, err)
	}
	return nil
}

// DeleteCompleted implements service.Service.
func (s *Store) DeleteCompleted(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM todos WHERE completed = ?"), true); err != nil {
		return service.Failed(service.OpClearDone, err)
	}
	return nil
}

// createdAt returns a creation time strictly after the previous one, at
// microsecond precision (the finest Postgres keeps).
func (s *Store) createdAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// rebind rewrites ? placeholders for dialects that number them.
func (s *Store) rebind(query string) string {
	if !s.dialect.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(sc scanner) (service.Task, error) {
	var t service.Task
	var ts timestamp
	if err := sc.Scan(&t.ID, &t.Text, &t.Completed, &ts); err != nil {
		return service.Task{}, err
	}
	t.CreatedAt = ts.Time
	return t, nil
}

// timestamp scans both native time values and the sqlite text layout.
type timestamp struct {
	time.Time
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		ts.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported created_at type %T", src)
}

func (ts *timestamp) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid created_at %q: %w", s, err)
	}
	ts.Time = t
	return nil
}
