// Package backend opens the service.Service selected in the settings.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todo/internal/backend/googletasks"
	"todo/internal/backend/postgrest"
	"todo/internal/backend/sqltable"
	"todo/internal/config"
	"todo/internal/service"
)

var (
	// ErrAuth marks missing or unusable credentials.
	ErrAuth = errors.New("auth error")

	// ErrConfig marks settings that cannot select a working backend.
	ErrConfig = errors.New("config error")
)

// Open returns the service for cfg.Settings.Backend. The local backend has
// no remote table, so it yields a nil service and no error.
//
// The returned service may hold resources; callers close it with Close.
func Open(ctx context.Context, cfg *config.Config) (service.Service, error) {
	s := cfg.Settings
	switch s.Backend {
	case config.BackendLocal:
		return nil, nil

	case config.BackendSQLite:
		path := cfg.SQLitePath()
		if isPostgresURL(path) {
			return nil, fmt.Errorf("%w: [sqlite] path is a postgres connection string (use backend = \"postgres\" and [postgres] dsn) in %s", ErrConfig, cfg.SettingsPath())
		}
		store, err := sqltable.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendPostgres:
		if s.Postgres.DSN == "" {
			return nil, fmt.Errorf("%w: [postgres] dsn required in %s", ErrConfig, cfg.SettingsPath())
		}
		store, err := sqltable.OpenPostgres(ctx, s.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendPostgREST:
		if s.PostgREST.URL == "" || s.PostgREST.Key == "" {
			return nil, fmt.Errorf("%w: [postgrest] url and key required in %s", ErrConfig, cfg.SettingsPath())
		}
		return postgrest.New(ctx, s.PostgREST.URL, s.PostgREST.Key, s.PostgREST.Table)

	case config.BackendGoogle:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w: %s not found in %s", ErrAuth, config.OAuthClientFile, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("%w: not logged in (run: todo login)", ErrAuth)
		}
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("%w: %w: %s", ErrConfig, config.ErrUnknownBackend, s.Backend)
}

func isPostgresURL(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// Close releases svc if it holds resources.
func Close(svc service.Service) error {
	if c, ok := svc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
