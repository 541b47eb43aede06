package humantouch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type asyncRequest struct {
	Text    string        `json:"text"`
	Options *AsyncOptions `json:"options,omitempty"`
}

// CreateAsyncTask submits text for background processing. The returned
// status is whatever the service reported.
func (c *Client) CreateAsyncTask(ctx context.Context, text string, opts *AsyncOptions) (*AsyncTaskResponse, error) {
	if err := validateText(text); err != nil {
		return nil, newValidationError(fmt.Errorf("text: %w", err))
	}

	var options *AsyncOptions
	if opts != nil {
		o := *opts
		o.ProcessOptions = o.ProcessOptions.withDefaults()
		if err := o.Validate(); err != nil {
			return nil, newValidationError(fmt.Errorf("options: %w", err))
		}
		options = &o
	}

	data, err := c.do(ctx, http.MethodPost, APIPrefix+"/async", asyncRequest{Text: text, Options: options}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create async task: %w", err)
	}

	task, err := decodeAsyncTask(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode async task response: %w", err)
	}

	c.logger.Debug("async task created",
		"task_id", task.TaskID,
		"status", task.Status,
		"estimated_time", task.EstimatedTime,
	)

	return task, nil
}

func decodeAsyncTask(data []byte) (*AsyncTaskResponse, error) {
	m, err := dataObject(data)
	if err != nil {
		return nil, err
	}
	if err := requireKeys(m, "task_id", "status", "estimated_time"); err != nil {
		return nil, err
	}

	var task AsyncTaskResponse
	if err := decodeInto(m, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTaskStatus fetches the current state of a task.
func (c *Client) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatusResponse, error) {
	if err := validateTaskID(taskID); err != nil {
		return nil, newValidationError(err)
	}

	data, err := c.do(ctx, http.MethodGet, APIPrefix+"/status/"+url.PathEscape(taskID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get task status: %w", err)
	}

	status, err := decodeTaskStatus(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode task status: %w", err)
	}
	return status, nil
}

func decodeTaskStatus(data []byte) (*TaskStatusResponse, error) {
	m, err := dataObject(data)
	if err != nil {
		return nil, err
	}
	if err := requireKeys(m, "task_id", "status"); err != nil {
		return nil, err
	}

	var wire struct {
		TaskID      string                 `json:"task_id"`
		Status      TaskStatus             `json:"status"`
		Result      map[string]interface{} `json:"result"`
		Error       *string                `json:"error"`
		CreatedAt   *time.Time             `json:"created_at"`
		UpdatedAt   *time.Time             `json:"updated_at"`
		StartedAt   *time.Time             `json:"started_at"`
		CompletedAt *time.Time             `json:"completed_at"`
		Progress    *float64               `json:"progress"`
	}
	if err := decodeInto(m, &wire); err != nil {
		return nil, err
	}

	status := &TaskStatusResponse{
		TaskID:      wire.TaskID,
		Status:      wire.Status,
		CreatedAt:   wire.CreatedAt,
		UpdatedAt:   wire.UpdatedAt,
		StartedAt:   wire.StartedAt,
		CompletedAt: wire.CompletedAt,
		Progress:    wire.Progress,
	}
	if wire.Error != nil {
		status.Error = *wire.Error
	}
	if len(wire.Result) > 0 {
		result, err := decodeProcessResult(wire.Result)
		if err != nil {
			return nil, fmt.Errorf("result: %w", err)
		}
		status.Result = result
	}

	return status, nil
}
