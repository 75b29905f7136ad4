// Package postgrest implements service.Service against a PostgREST table,
// such as the todos table of a Supabase project.
package postgrest

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/oauth2"

	"todo/internal/service"
)

const (
	// DefaultTable is the table holding the todos.
	DefaultTable = "todos"

	// restPath is where PostgREST is mounted on a Supabase project.
	restPath = "/rest/v1/"

	// singleObject asks PostgREST for exactly one row as a JSON object.
	singleObject = "application/vnd.pgrst.object+json"

	schemaURL = "https://todo.local/schemas/todo_row.schema.json"
)

//go:embed todo_row.schema.json
var rowSchema string

// Client implements service.Service over the PostgREST HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	table      string
	schema     *jsonschema.Schema
}

// New creates a client for the project at baseURL authenticated with apiKey.
// The key is sent both as the apikey header and as a bearer token.
func New(ctx context.Context, baseURL, apiKey, table string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("postgrest url is not configured")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("postgrest key is not configured")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	return NewWithHTTPClient(oauth2.NewClient(ctx, ts), baseURL, apiKey, table)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, baseURL, apiKey, table string) (*Client, error) {
	if table == "" {
		table = DefaultTable
	}
	schema, err := compileRowSchema()
	if err != nil {
		return nil, err
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		table:      table,
		schema:     schema,
	}, nil
}

func compileRowSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(rowSchema)); err != nil {
		return nil, fmt.Errorf("load row schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile row schema: %w", err)
	}
	return schema, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	body, err := c.do(ctx, service.OpFetch, http.MethodGet, q, nil, "application/json", false)
	if err != nil {
		return nil, err
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, service.Failedf(service.OpFetch, "invalid response: %v", err)
	}
	tasks := make([]service.Task, 0, len(docs))
	for _, doc := range docs {
		t, err := c.decodeRow(doc)
		if err != nil {
			return nil, service.Failed(service.OpFetch, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, text string) (service.Task, error) {
	payload := map[string]any{"text": text, "completed": false}
	body, err := c.do(ctx, service.OpCreate, http.MethodPost, nil, payload, singleObject, true)
	if err != nil {
		return service.Task{}, err
	}
	t, err := c.decodeRow(body)
	if err != nil {
		return service.Task{}, service.Failed(service.OpCreate, err)
	}
	return t, nil
}

// SetCompleted implements service.Service.
func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)

	payload := map[string]any{"completed": completed}
	body, err := c.do(ctx, service.OpUpdate, http.MethodPatch, q, payload, singleObject, true)
	if err != nil {
		return service.Task{}, err
	}
	t, err := c.decodeRow(body)
	if err != nil {
		return service.Task{}, service.Failed(service.OpUpdate, err)
	}
	return t, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	_, err := c.do(ctx, service.OpDelete, http.MethodDelete, q, nil, "application/json", false)
	return err
}

// DeleteCompleted implements service.Service.
func (c *Client) DeleteCompleted(ctx context.Context) error {
	q := url.Values{}
	q.Set("completed", "eq.true")
	_, err := c.do(ctx, service.OpClearDone, http.MethodDelete, q, nil, "application/json", false)
	return err
}

// do sends one request and returns the response body of a 2xx reply.
// Anything else becomes a *service.RemoteError.
func (c *Client) do(ctx context.Context, op, method string, query url.Values, payload any, accept string, returnRow bool) ([]byte, error) {
	endpoint := c.baseURL + restPath + url.PathEscape(c.table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, service.Failed(op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, service.Failed(op, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", accept)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if returnRow {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, service.Failed(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(op, resp.StatusCode, body)
	}
	return body, nil
}

// row is the wire shape of one todos row.
type row struct {
	ID        json.RawMessage `json:"id"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
	CreatedAt string          `json:"created_at"`
}

// decodeRow validates doc against the row schema and converts it.
func (c *Client) decodeRow(doc []byte) (service.Task, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return service.Task{}, fmt.Errorf("invalid row: %w", err)
	}
	if err := c.schema.Validate(v); err != nil {
		return service.Task{}, fmt.Errorf("invalid row: %w", err)
	}

	var r row
	if err := json.Unmarshal(doc, &r); err != nil {
		return service.Task{}, fmt.Errorf("invalid row: %w", err)
	}
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return service.Task{}, fmt.Errorf("invalid row: created_at: %w", err)
	}
	return service.Task{
		ID:        rowID(r.ID),
		Text:      r.Text,
		Completed: r.Completed,
		CreatedAt: createdAt,
	}, nil
}

// rowID renders a string or numeric primary key as the string used in filters.
func rowID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// parseTimestamp accepts timestamptz values and, for tables declared with a
// plain timestamp column, values without a zone (taken as UTC).
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
}

// apiError is the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func statusError(op string, status int, body []byte) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		msg := e.Message
		if e.Details != "" {
			msg += " (" + e.Details + ")"
		}
		if e.Hint != "" {
			msg += " hint: " + e.Hint
		}
		return service.Failedf(op, "%s", msg)
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return service.Failedf(op, "not authorized (check postgrest key)")
	case http.StatusNotFound:
		return service.Failedf(op, "not found")
	}
	return service.Failedf(op, "unexpected status %d", status)
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &service.RemoteError{Op: op, Message: "request timed out", Err: err}
	}
	return service.Failed(op, err)
}
