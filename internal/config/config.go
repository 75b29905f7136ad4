// Package config locates the todo directory and loads config.toml from it.
//
// The directory holds the settings file, the Google OAuth client and token,
// the default sqlite database, and the log of interactive sessions.
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"todo/internal/logging"
)

const (
	// AppName names the directory under the XDG config home.
	AppName = "todo"

	SettingsFile    = "config.toml"
	OAuthClientFile = "oauth_client.json"
	TokenFile       = "token.json"
	DatabaseFile    = "todo.db"

	// LogFile receives logs while the interactive widget owns the terminal.
	LogFile = "todo.log"
)

// Config is the per-run configuration: where files live, the parsed
// settings, the common flags and the logger.
type Config struct {
	Dir      string
	Settings Settings

	// Debug and Quiet mirror --debug and --quiet.
	Debug bool
	Quiet bool

	// Log is the logger for this run. Nil means discard.
	Log *log.Logger
}

// New loads config.toml from configDir, or from DefaultConfigDir when
// configDir is empty. A missing settings file yields DefaultSettings.
func New(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	settings, err := LoadSettings(filepath.Join(configDir, SettingsFile))
	if err != nil {
		return nil, err
	}
	return &Config{Dir: configDir, Settings: settings}, nil
}

// DefaultConfigDir is $XDG_CONFIG_HOME/todo, falling back to ~/.config/todo
// and then to ./todo when no home directory is known.
func DefaultConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppName
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName)
}

// Logger returns the run's logger, or a discarding one.
func (c *Config) Logger() *log.Logger {
	if c.Log == nil {
		return logging.Discard()
	}
	return c.Log
}

// LogOptions returns debug options under --debug, otherwise the [log]
// level from config.toml.
func (c *Config) LogOptions() logging.Options {
	if c.Debug {
		return logging.Options{Level: log.DebugLevel, ReportTimestamp: true}
	}
	return logging.Options{Level: logging.ParseLevel(c.Settings.Log.Level)}
}

func (c *Config) path(name string) string {
	return filepath.Join(c.Dir, name)
}

func (c *Config) SettingsPath() string    { return c.path(SettingsFile) }
func (c *Config) OAuthClientPath() string { return c.path(OAuthClientFile) }
func (c *Config) TokenPath() string       { return c.path(TokenFile) }
func (c *Config) LogPath() string         { return c.path(LogFile) }

// SQLitePath returns [sqlite] path, or todo.db in the config directory.
func (c *Config) SQLitePath() string {
	if p := c.Settings.SQLite.Path; p != "" {
		return p
	}
	return c.path(DatabaseFile)
}

// EnsureDir creates the config directory with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// HasOAuthClient reports whether the Google OAuth client file is present.
func (c *Config) HasOAuthClient() bool { return exists(c.OAuthClientPath()) }

// HasToken reports whether a Google token has been saved by login.
func (c *Config) HasToken() bool { return exists(c.TokenPath()) }

// RemoveToken deletes the saved Google token.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
