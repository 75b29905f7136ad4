package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Backend names accepted in config.toml and --backend.
const (
	BackendLocal     = "local"
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
	BackendPostgREST = "postgrest"
	BackendGoogle    = "google"
)

// Backends lists every valid backend name.
var Backends = []string{BackendLocal, BackendSQLite, BackendPostgres, BackendPostgREST, BackendGoogle}

// ErrUnknownBackend is returned for a backend name not in Backends.
var ErrUnknownBackend = errors.New("unknown backend")

// Settings is the content of config.toml.
type Settings struct {
	Backend   string            `toml:"backend"`
	Log       LogSettings       `toml:"log"`
	Google    GoogleSettings    `toml:"google"`
	PostgREST PostgRESTSettings `toml:"postgrest"`
	SQLite    SQLiteSettings    `toml:"sqlite"`
	Postgres  PostgresSettings  `toml:"postgres"`
	Serve     ServeSettings     `toml:"serve"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `toml:"level"`
}

// GoogleSettings selects the Google Tasks list that holds the todos.
type GoogleSettings struct {
	List string `toml:"list"`
}

// PostgRESTSettings points at a PostgREST endpoint such as a Supabase project.
type PostgRESTSettings struct {
	URL   string `toml:"url"`
	Key   string `toml:"key"`
	Table string `toml:"table"`
}

// SQLiteSettings locates the sqlite database. Path is a file path or a
// file: URI; empty means todo.db in the config dir.
type SQLiteSettings struct {
	Path string `toml:"path"`
}

// PostgresSettings holds the lib/pq connection string of the postgres backend.
type PostgresSettings struct {
	DSN string `toml:"dsn"`
}

// ServeSettings configures the JSON API.
type ServeSettings struct {
	Addr string `toml:"addr"`
}

// DefaultSettings returns the settings used when config.toml is absent.
func DefaultSettings() Settings {
	return Settings{
		Backend:   BackendSQLite,
		Log:       LogSettings{Level: "info"},
		Google:    GoogleSettings{List: "@default"},
		PostgREST: PostgRESTSettings{Table: "todos"},
		Serve:     ServeSettings{Addr: "localhost:8080"},
	}
}

// LoadSettings reads config.toml at path on top of DefaultSettings.
// A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SetBackend overrides the backend, normalizing case and whitespace.
func (s *Settings) SetBackend(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !slices.Contains(Backends, name) {
		return fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	s.Backend = name
	return nil
}

// Validate checks that the settings name a known backend.
func (s *Settings) Validate() error {
	return s.SetBackend(s.Backend)
}
