package humantouch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ListTasksOptions filters and pages ListTasks. Zero values are omitted and
// the service defaults apply (limit 50, offset 0).
type ListTasksOptions struct {
	Status TaskStatus
	Limit  int
	Offset int
}

func (o ListTasksOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Status, validation.In(
			TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted, TaskStatusFailed,
		)),
		validation.Field(&o.Limit, validation.Min(0)),
		validation.Field(&o.Offset, validation.Min(0)),
	)
}

func (o ListTasksOptions) query() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}

// TaskListItem is the summary of a task in ListTasks.
type TaskListItem struct {
	TaskID      string     `json:"task_id" yaml:"task_id"`
	Status      TaskStatus `json:"status" yaml:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	TextPreview string     `json:"text_preview" yaml:"text_preview"`
	TextLength  int        `json:"text_length" yaml:"text_length"`
}

type Pagination struct {
	Total   int  `json:"total" yaml:"total"`
	Limit   int  `json:"limit" yaml:"limit"`
	Offset  int  `json:"offset" yaml:"offset"`
	HasMore bool `json:"has_more" yaml:"has_more"`
}

// TaskStats counts the service's tasks by status.
type TaskStats struct {
	Total      int `json:"total" yaml:"total"`
	Pending    int `json:"pending" yaml:"pending"`
	Processing int `json:"processing" yaml:"processing"`
	Completed  int `json:"completed" yaml:"completed"`
	Failed     int `json:"failed" yaml:"failed"`
	CacheSize  int `json:"cache_size" yaml:"cache_size"`
	CacheTTL   int `json:"cache_ttl" yaml:"cache_ttl"`
}

type TaskListResponse struct {
	Tasks      []TaskListItem `json:"tasks" yaml:"tasks"`
	Pagination Pagination     `json:"pagination" yaml:"pagination"`
	Stats      TaskStats      `json:"stats" yaml:"stats"`
}

// ListTasks returns a page of tasks visible to the caller.
func (c *Client) ListTasks(ctx context.Context, opts *ListTasksOptions) (*TaskListResponse, error) {
	var o ListTasksOptions
	if opts != nil {
		o = *opts
	}
	if err := o.Validate(); err != nil {
		return nil, newValidationError(err)
	}

	data, err := c.do(ctx, http.MethodGet, APIPrefix+"/tasks", nil, o.query())
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	m, err := dataObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}
	if err := requireKeys(m, "tasks"); err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}

	var resp TaskListResponse
	if err := decodeInto(m, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}
	return &resp, nil
}

// CancelTaskResponse acknowledges a cancellation request.
type CancelTaskResponse struct {
	TaskID  string     `json:"task_id" yaml:"task_id"`
	Status  TaskStatus `json:"status" yaml:"status"`
	Message string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// CancelTask asks the service to cancel a task. The service may only
// acknowledge the request; the returned Status is the task's state at that
// moment.
func (c *Client) CancelTask(ctx context.Context, taskID string) (*CancelTaskResponse, error) {
	if err := validateTaskID(taskID); err != nil {
		return nil, newValidationError(err)
	}

	data, err := c.do(ctx, http.MethodDelete, APIPrefix+"/status/"+url.PathEscape(taskID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel task: %w", err)
	}

	m, err := dataObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cancel response: %w", err)
	}
	var resp CancelTaskResponse
	if err := decodeInto(m, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cancel response: %w", err)
	}
	return &resp, nil
}

// CleanupResponse reports the effect of CleanupTasks.
type CleanupResponse struct {
	Message          string    `json:"message" yaml:"message"`
	Stats            TaskStats `json:"stats" yaml:"stats"`
	CleanedOlderThan int64     `json:"cleaned_older_than" yaml:"cleaned_older_than"`
}

// CleanupTasks removes finished tasks created more than olderThan ago. A
// zero olderThan uses the service default (24h).
func (c *Client) CleanupTasks(ctx context.Context, olderThan time.Duration) (*CleanupResponse, error) {
	if olderThan < 0 {
		return nil, newValidationError(fmt.Errorf("older_than: must be non-negative, got %v", olderThan))
	}

	q := url.Values{}
	if olderThan > 0 {
		q.Set("older_than", strconv.FormatInt(olderThan.Milliseconds(), 10))
	}

	data, err := c.do(ctx, http.MethodDelete, APIPrefix+"/tasks", nil, q)
	if err != nil {
		return nil, fmt.Errorf("failed to clean up tasks: %w", err)
	}

	m, err := dataObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cleanup response: %w", err)
	}
	var resp CleanupResponse
	if err := decodeInto(m, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cleanup response: %w", err)
	}
	return &resp, nil
}
