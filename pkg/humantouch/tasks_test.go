package humantouch

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListTasks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/tasks", r.URL.Path)
		assert.Equal(t, "completed", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("offset"))

		writeData(t, w, map[string]interface{}{
			"tasks": []interface{}{
				map[string]interface{}{
					"task_id":      "task_1",
					"status":       "completed",
					"created_at":   "2024-01-01T00:00:00Z",
					"completed_at": "2024-01-01T00:01:00Z",
					"text_preview": "Lorem ipsum...",
					"text_length":  1200,
				},
			},
			"pagination": map[string]interface{}{
				"total":    5,
				"limit":    2,
				"offset":   0,
				"has_more": true,
			},
			"stats": map[string]interface{}{
				"total":      5,
				"pending":    1,
				"processing": 1,
				"completed":  2,
				"failed":     1,
				"cache_size": 5,
				"cache_ttl":  86400000,
			},
		})
	})

	resp, err := client.ListTasks(context.Background(), &ListTasksOptions{Status: TaskStatusCompleted, Limit: 2})
	require.NoError(t, err)

	require.Len(t, resp.Tasks, 1)
	task := resp.Tasks[0]
	assert.Equal(t, "task_1", task.TaskID)
	assert.Equal(t, TaskStatusCompleted, task.Status)
	assert.Equal(t, 1200, task.TextLength)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, 1, task.CompletedAt.Minute())
	assert.Nil(t, task.UpdatedAt)

	assert.Equal(t, Pagination{Total: 5, Limit: 2, Offset: 0, HasMore: true}, resp.Pagination)
	assert.Equal(t, 2, resp.Stats.Completed)
	assert.Equal(t, 86400000, resp.Stats.CacheTTL)
}

func TestClient_ListTasks_NilOptions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeData(t, w, map[string]interface{}{"tasks": []interface{}{}})
	})

	resp, err := client.ListTasks(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Tasks)
}

func TestClient_ListTasks_InvalidOptions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.ListTasks(context.Background(), &ListTasksOptions{Status: "archived"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = client.ListTasks(context.Background(), &ListTasksOptions{Limit: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClient_CancelTask(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/status/task_1", r.URL.Path)

		writeData(t, w, map[string]interface{}{
			"task_id": "task_1",
			"status":  "processing",
			"message": "Task cancellation requested",
		})
	})

	resp, err := client.CancelTask(context.Background(), "task_1")
	require.NoError(t, err)
	assert.Equal(t, "task_1", resp.TaskID)
	assert.Equal(t, TaskStatusProcessing, resp.Status)
	assert.Equal(t, "Task cancellation requested", resp.Message)
}

func TestClient_CleanupTasks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/tasks", r.URL.Path)
		assert.Equal(t, "3600000", r.URL.Query().Get("older_than"))

		writeData(t, w, map[string]interface{}{
			"message":            "Cleanup completed",
			"stats":              map[string]interface{}{"total": 1},
			"cleaned_older_than": 3600000,
		})
	})

	resp, err := client.CleanupTasks(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "Cleanup completed", resp.Message)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, int64(3600000), resp.CleanedOlderThan)
}

func TestClient_CleanupTasks_Negative(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.CleanupTasks(context.Background(), -time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClient_ServiceConfig(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/async", r.URL.Path)

		writeData(t, w, map[string]interface{}{
			"max_text_length":      50000,
			"supported_styles":     []interface{}{"casual", "academic", "professional", "creative"},
			"default_rounds":       3,
			"max_concurrent_tasks": 10,
			"webhook_support":      true,
			"polling_support":      true,
		})
	})

	cfg, err := client.ServiceConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50000, cfg.MaxTextLength)
	assert.Len(t, cfg.SupportedStyles, 4)
	assert.Equal(t, 3, cfg.DefaultRounds)
	assert.True(t, cfg.WebhookSupport)
}
