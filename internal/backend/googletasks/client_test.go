package googletasks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/service"
)

// fakeTasksAPI serves the subset of the Google Tasks REST API the client uses
// for a single list.
type fakeTasksAPI struct {
	mu       sync.Mutex
	items    []map[string]any
	requests []string
	failCode int
}

func (f *fakeTasksAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	if f.failCode != 0 {
		w.WriteHeader(f.failCode)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": f.failCode, "message": "boom"},
		})
		return
	}

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/lists/list1/tasks"):
		if r.URL.Query().Get("showCompleted") != "true" {
			http.Error(w, "showCompleted must be set", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"kind": "tasks#tasks", "items": f.items})

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/lists/list1/tasks"):
		var in map[string]any
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &in)
		item := map[string]any{
			"id":       "new1",
			"title":    in["title"],
			"status":   in["status"],
			"updated":  "2024-04-02T08:00:00.000Z",
			"position": "00000000000000000000",
		}
		f.items = append([]map[string]any{item}, f.items...)
		_ = json.NewEncoder(w).Encode(item)

	case r.Method == http.MethodPatch && strings.Contains(path, "/lists/list1/tasks/"):
		id := path[strings.LastIndex(path, "/")+1:]
		var in map[string]any
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &in)
		for _, item := range f.items {
			if item["id"] == id {
				item["status"] = in["status"]
				if v, ok := in["completed"]; ok && v == nil {
					delete(item, "completed")
				}
				_ = json.NewEncoder(w).Encode(item)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 404, "message": "Task not found"}})

	case r.Method == http.MethodDelete && strings.Contains(path, "/lists/list1/tasks/"):
		id := path[strings.LastIndex(path, "/")+1:]
		for i, item := range f.items {
			if item["id"] == id {
				f.items = append(f.items[:i], f.items[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/lists/list1/clear"):
		kept := f.items[:0]
		for _, item := range f.items {
			if item["status"] != statusCompleted {
				kept = append(kept, item)
			}
		}
		f.items = kept
		w.WriteHeader(http.StatusNoContent)

	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, api *fakeTasksAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c, err := NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/", "list1")
	require.NoError(t, err)
	return c
}

func TestClient_ListTasksInPositionOrder(t *testing.T) {
	api := &fakeTasksAPI{items: []map[string]any{
		{"id": "b", "title": "older", "status": "completed", "position": "00000000000000000002", "updated": "2024-04-01T07:00:00.000Z"},
		{"id": "a", "title": "newer", "status": "needsAction", "position": "00000000000000000001", "updated": "2024-04-01T09:00:00.000Z"},
	}}
	c := newTestClient(t, api)

	got, err := c.ListTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "newer", got[0].Text)
	assert.False(t, got[0].Completed)
	assert.Equal(t, 9, got[0].CreatedAt.Hour())
	assert.Equal(t, "b", got[1].ID)
	assert.True(t, got[1].Completed)
}

func TestClient_ListTasksSkipsSubtasks(t *testing.T) {
	api := &fakeTasksAPI{items: []map[string]any{
		{"id": "p2", "title": "second", "status": "needsAction", "position": "00000000000000000002", "updated": "2024-04-01T07:00:00.000Z"},
		{"id": "s1", "title": "step", "status": "needsAction", "parent": "p2", "position": "00000000000000000000", "updated": "2024-04-01T08:00:00.000Z"},
		{"id": "p1", "title": "first", "status": "needsAction", "position": "00000000000000000001", "updated": "2024-04-01T09:00:00.000Z"},
	}}
	c := newTestClient(t, api)

	got, err := c.ListTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
}

func TestClient_CreateTask(t *testing.T) {
	api := &fakeTasksAPI{}
	c := newTestClient(t, api)

	got, err := c.CreateTask(context.Background(), "buy milk")

	require.NoError(t, err)
	assert.Equal(t, "new1", got.ID)
	assert.Equal(t, "buy milk", got.Text)
	assert.False(t, got.Completed)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestClient_SetCompletedBothWays(t *testing.T) {
	api := &fakeTasksAPI{items: []map[string]any{
		{"id": "a", "title": "x", "status": "needsAction", "position": "1"},
	}}
	c := newTestClient(t, api)
	ctx := context.Background()

	got, err := c.SetCompleted(ctx, "a", true)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = c.SetCompleted(ctx, "a", false)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestClient_SetCompletedNotFound(t *testing.T) {
	c := newTestClient(t, &fakeTasksAPI{})

	_, err := c.SetCompleted(context.Background(), "missing", true)

	var remote *service.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "not found", remote.Message)
	assert.Equal(t, service.OpUpdate, remote.Op)
}

func TestClient_DeleteAndClear(t *testing.T) {
	api := &fakeTasksAPI{items: []map[string]any{
		{"id": "a", "title": "x", "status": "completed", "position": "1"},
		{"id": "b", "title": "y", "status": "needsAction", "position": "2"},
		{"id": "c", "title": "z", "status": "completed", "position": "3"},
	}}
	c := newTestClient(t, api)
	ctx := context.Background()

	require.NoError(t, c.DeleteTask(ctx, "b"))
	require.NoError(t, c.DeleteCompleted(ctx))

	got, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_AuthErrorMessage(t *testing.T) {
	c := newTestClient(t, &fakeTasksAPI{failCode: http.StatusUnauthorized})

	err := c.DeleteCompleted(context.Background())

	var remote *service.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Contains(t, remote.Message, "token expired or revoked")
}

func TestClient_OtherAPIErrorKeepsMessage(t *testing.T) {
	c := newTestClient(t, &fakeTasksAPI{failCode: http.StatusBadRequest})

	_, err := c.CreateTask(context.Background(), "x")

	var remote *service.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "boom", remote.Message)
}

func TestListOrDefault(t *testing.T) {
	assert.Equal(t, DefaultListID, listOrDefault(""))
	assert.Equal(t, DefaultListID, listOrDefault("  "))
	assert.Equal(t, "abc", listOrDefault("abc"))
}
