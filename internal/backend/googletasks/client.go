// Package googletasks implements the service.Service interface using Google Tasks API.
// One task list plays the role of the todos table.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc    *tasks.Service
	listID string
}

// New creates a new Google Tasks client for the list named in cfg.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	// Load OAuth client config
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	// Load token
	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes on demand
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{svc: svc, listID: listOrDefault(cfg.Settings.Google.List)}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and API
// endpoint (for testing). An empty endpoint uses the production API.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint, listID string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, listID: listOrDefault(listID)}, nil
}

func listOrDefault(id string) string {
	if strings.TrimSpace(id) == "" {
		return DefaultListID
	}
	return id
}

// ListTasks returns every visible task of the list, completed ones included.
// Google places new tasks at the top, so position order is newest first.
// Tasks hidden by a clear are not returned. The todo list is flat: subtasks
// are skipped, since their positions are relative to their parent.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var items []*tasks.Task
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowDeleted(false).
		ShowHidden(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			items = append(items, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(service.OpFetch, err)
	}

	items = slices.DeleteFunc(items, func(t *tasks.Task) bool { return t.Parent != "" })
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})

	result := make([]service.Task, 0, len(items))
	for _, item := range items {
		result = append(result, toTask(item))
	}
	return result, nil
}

// CreateTask inserts a task at the top of the list.
func (c *Client) CreateTask(ctx context.Context, text string) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	created, err := c.svc.Tasks.Insert(c.listID, &tasks.Task{
		Title:  text,
		Status: statusNeedsAction,
	}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(service.OpCreate, err)
	}
	return toTask(created), nil
}

// SetCompleted patches the task status. Reopening a task also clears its
// completion date, which Google keeps otherwise.
func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	patch := &tasks.Task{Status: statusNeedsAction, NullFields: []string{"Completed"}}
	if completed {
		patch = &tasks.Task{Status: statusCompleted}
	}

	updated, err := c.svc.Tasks.Patch(c.listID, id, patch).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(service.OpUpdate, err)
	}
	return toTask(updated), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return wrapError(service.OpDelete, err)
	}
	return nil
}

// DeleteCompleted clears the list: Google hides every completed task, and
// hidden tasks are no longer listed.
func (c *Client) DeleteCompleted(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Clear(c.listID).Context(ctx).Do(); err != nil {
		return wrapError(service.OpClearDone, err)
	}
	return nil
}

// toTask converts an API task. Google exposes no creation time; the last
// update time stands in, which equals creation time for a task just inserted.
func toTask(t *tasks.Task) service.Task {
	created, _ := time.Parse(time.RFC3339, t.Updated)
	return service.Task{
		ID:        t.Id,
		Text:      t.Title,
		Completed: t.Status == statusCompleted,
		CreatedAt: created,
	}
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return &service.RemoteError{Op: op, Message: "request timed out", Err: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &service.RemoteError{Op: op, Message: "token expired or revoked (run: todo login)", Err: err}
		case http.StatusNotFound:
			return &service.RemoteError{Op: op, Message: "not found", Err: err}
		}
		if apiErr.Message != "" {
			return &service.RemoteError{Op: op, Message: apiErr.Message, Err: err}
		}
	}

	return service.Failed(op, err)
}
