package commands_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// googleConfig returns a config whose dir holds the given oauth client and
// token files. Empty content means the file is absent.
func googleConfig(t *testing.T, client, token string, quiet bool) *config.Config {
	t.Helper()
	cfg := testConfig(t, quiet)
	if client != "" {
		if err := os.WriteFile(cfg.OAuthClientPath(), []byte(client), 0600); err != nil {
			t.Fatalf("write oauth client: %v", err)
		}
	}
	if token != "" {
		if err := os.WriteFile(cfg.TokenPath(), []byte(token), 0600); err != nil {
			t.Fatalf("write token: %v", err)
		}
	}
	return cfg
}

func runWithContext(ctx context.Context, cmd commands.Command, cfg *config.Config) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	cfg := googleConfig(t, "", "", false)

	stdout, stderr, code := runCommandWithConfig(t, &commands.LoginCmd{}, cfg, nil, nil)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: oauth_client.json not found in ") {
		t.Errorf("expected missing oauth_client.json error, got %q", stderr)
	}
	if !strings.Contains(stderr, "todo login") {
		t.Errorf("expected setup steps to mention 'todo login', got %q", stderr)
	}
}

func TestLoginCommand_InvalidOAuthClient(t *testing.T) {
	cfg := googleConfig(t, "not json", "", false)

	_, stderr, code := runCommandWithConfig(t, &commands.LoginCmd{}, cfg, nil, nil)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid oauth_client.json") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// A stored token that cannot be refreshed must start a new login instead of
// reporting "already logged in". The context is cancelled so the callback
// wait ends at once.
func TestLoginCommand_UnusableToken(t *testing.T) {
	tokens := map[string]string{
		"no refresh token": `{"access_token":"expired","token_type":"Bearer"}`,
		"expired":          `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
	}
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			cfg := googleConfig(t, testOAuthClient, token, false)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			var cmd commands.LoginCmd
			stdout, stderr, code := runWithContext(ctx, &cmd, cfg)

			if strings.Contains(stdout, "already logged in") {
				t.Errorf("expected a new login, got %q", stdout)
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.AuthError, code, stderr)
			}
			if !cfg.HasToken() {
				t.Error("stored token should be left alone when login is aborted")
			}
		})
	}
}

func TestLogoutCommand(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		quiet     bool
		wantOut   string
		wantToken bool
	}{
		{name: "removes token", token: `{"access_token":"test","refresh_token":"test"}`, wantOut: "ok\n"},
		{name: "not logged in", wantOut: "not logged in\n"},
		{name: "not logged in quiet", quiet: true, wantOut: ""},
		{name: "removes token quiet", token: `{"access_token":"test"}`, quiet: true, wantOut: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := googleConfig(t, testOAuthClient, tt.token, tt.quiet)

			stdout, stderr, code := runCommandWithConfig(t, &commands.LogoutCmd{}, cfg, nil, nil)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stderr != "" {
				t.Errorf("expected no stderr, got %q", stderr)
			}
			if stdout != tt.wantOut {
				t.Errorf("expected %q, got %q", tt.wantOut, stdout)
			}
			if cfg.HasToken() != tt.wantToken {
				t.Errorf("expected token present=%v", tt.wantToken)
			}
			if !cfg.HasOAuthClient() {
				t.Error("logout must keep oauth_client.json")
			}
		})
	}
}
