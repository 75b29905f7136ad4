package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/backend/postgrest"
	"todo/internal/backend/sqltable"
	"todo/internal/config"
	"todo/internal/testutil"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir(), Settings: config.DefaultSettings()}
	require.NoError(t, cfg.Settings.SetBackend(backend))
	return cfg
}

func TestOpen_Local(t *testing.T) {
	svc, err := Open(context.Background(), testConfig(t, config.BackendLocal))
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestOpen_SQLiteDefaultsToConfigDir(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	svc, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer Close(svc)

	assert.IsType(t, &sqltable.Store{}, svc)
	_, err = os.Stat(filepath.Join(cfg.Dir, config.DatabaseFile))
	assert.NoError(t, err)
}

func TestOpen_SQLiteIgnoresPostgresDSN(t *testing.T) {
	cfg := testConfig(t, config.BackendPostgres)
	cfg.Settings.Postgres.DSN = "postgres://user:pw@db.example.com/todos"
	require.NoError(t, cfg.Settings.SetBackend(config.BackendSQLite))

	svc, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer Close(svc)

	_, err = os.Stat(filepath.Join(cfg.Dir, config.DatabaseFile))
	assert.NoError(t, err)
	entries, err := os.ReadDir(cfg.Dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "postgres")
	}
}

func TestOpen_SQLiteRejectsPostgresURL(t *testing.T) {
	for _, path := range []string{"postgres://user:pw@db/todos", "PostgreSQL://db/todos"} {
		cfg := testConfig(t, config.BackendSQLite)
		cfg.Settings.SQLite.Path = path

		svc, err := Open(context.Background(), cfg)

		assert.Nil(t, svc)
		assert.True(t, errors.Is(err, ErrConfig), "path %q: %v", path, err)
		entries, _ := os.ReadDir(cfg.Dir)
		assert.Empty(t, entries, "nothing written for %q", path)
	}
}

func TestOpen_SQLiteFileURI(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	cfg.Settings.SQLite.Path = "file:" + filepath.Join(cfg.Dir, "uri.db") + "?mode=rwc"

	svc, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer Close(svc)

	_, err = svc.CreateTask(context.Background(), "buy milk")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Dir, "uri.db"))
	assert.NoError(t, err)
}

func TestOpen_PostgresNeedsDSN(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, config.BackendPostgres))
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestOpen_PostgRESTNeedsURLAndKey(t *testing.T) {
	cfg := testConfig(t, config.BackendPostgREST)
	_, err := Open(context.Background(), cfg)
	assert.True(t, errors.Is(err, ErrConfig))

	cfg.Settings.PostgREST.URL = "https://example.supabase.co"
	cfg.Settings.PostgREST.Key = "anon"
	svc, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &postgrest.Client{}, svc)
}

func TestOpen_GoogleNeedsCredentials(t *testing.T) {
	cfg := testConfig(t, config.BackendGoogle)

	_, err := Open(context.Background(), cfg)
	require.True(t, errors.Is(err, ErrAuth))
	assert.Contains(t, err.Error(), config.OAuthClientFile)

	require.NoError(t, os.WriteFile(cfg.OAuthClientPath(), []byte("{}"), 0o600))
	_, err = Open(context.Background(), cfg)
	require.True(t, errors.Is(err, ErrAuth))
	assert.Contains(t, err.Error(), "todo login")
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Settings: config.Settings{Backend: "carrier-pigeon"}}
	_, err := Open(context.Background(), cfg)
	assert.True(t, errors.Is(err, ErrConfig))
	assert.True(t, errors.Is(err, config.ErrUnknownBackend))
}

func TestClose_IgnoresPlainServices(t *testing.T) {
	assert.NoError(t, Close(testutil.NewFakeService()))
	assert.NoError(t, Close(nil))
}
