package humantouch

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 300 * time.Second
)

// WaitOptions controls WaitForTask.
type WaitOptions struct {
	// Interval between status fetches. Must be positive.
	Interval time.Duration

	// Timeout bounds the whole wait. At least one fetch is always made, so
	// a zero Timeout means "check once".
	Timeout time.Duration

	// OnStatus, when set, receives every observed status in order.
	OnStatus func(TaskStatusResponse)
}

// DefaultWaitOptions polls every 2s for up to 5 minutes.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{
		Interval: DefaultPollInterval,
		Timeout:  DefaultPollTimeout,
	}
}

// StatusFetcher returns the current status of a task. *Client implements it.
type StatusFetcher interface {
	GetTaskStatus(ctx context.Context, taskID string) (*TaskStatusResponse, error)
}

// Poller samples task state until it reaches a terminal status. The server
// owns every transition; the poller only observes them.
type Poller struct {
	fetcher StatusFetcher
	logger  hclog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a poller over fetcher. A nil logger discards output.
func NewPoller(fetcher StatusFetcher, logger hclog.Logger) *Poller {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Poller{
		fetcher: fetcher,
		logger:  logger.Named("poller"),
		now:     time.Now,
		sleep:   sleep,
	}
}

// Wait polls taskID until it is completed (returned), failed (TaskFailed
// error) or the timeout elapses (TaskTimeout error). Statuses other than
// completed and failed, including unknown ones, keep the loop going.
func (p *Poller) Wait(ctx context.Context, taskID string, opts WaitOptions) (*TaskStatusResponse, error) {
	if opts.Interval <= 0 {
		return nil, newValidationError(fmt.Errorf("interval: must be positive, got %v", opts.Interval))
	}
	if opts.Timeout < 0 {
		return nil, newValidationError(fmt.Errorf("timeout: must be non-negative, got %v", opts.Timeout))
	}

	start := p.now()
	for polls := 1; ; polls++ {
		status, err := p.fetcher.GetTaskStatus(ctx, taskID)
		if err != nil {
			return nil, err
		}

		p.logger.Trace("polled task", "task_id", taskID, "status", status.Status, "poll", polls)

		if opts.OnStatus != nil {
			opts.OnStatus(*status)
		}

		switch status.Status {
		case TaskStatusCompleted:
			p.logger.Debug("task completed", "task_id", taskID, "polls", polls, "elapsed", p.now().Sub(start))
			return status, nil
		case TaskStatusFailed:
			p.logger.Debug("task failed", "task_id", taskID, "polls", polls, "error", status.Error)
			return nil, newTaskFailedError(taskID, status.Error)
		}

		if p.now().Sub(start) >= opts.Timeout {
			p.logger.Debug("task wait timed out", "task_id", taskID, "polls", polls, "timeout", opts.Timeout)
			return nil, newTaskTimeoutError(taskID, opts.Timeout, status.Status)
		}

		if err := p.sleep(ctx, opts.Interval); err != nil {
			return nil, err
		}
	}
}

// WaitForTask polls taskID through the client. A nil opts uses
// DefaultWaitOptions.
func (c *Client) WaitForTask(ctx context.Context, taskID string, opts *WaitOptions) (*TaskStatusResponse, error) {
	o := DefaultWaitOptions()
	if opts != nil {
		o = *opts
	}
	return NewPoller(c, c.logger).Wait(ctx, taskID, o)
}

func newTaskFailedError(taskID, message string) *Error {
	if message == "" {
		message = "Task failed"
	}
	return &Error{
		Kind:    KindTaskFailed,
		Code:    CodeTaskFailed,
		Message: message,
		Details: "task_id=" + taskID,
	}
}

func newTaskTimeoutError(taskID string, timeout time.Duration, last TaskStatus) *Error {
	return &Error{
		Kind:    KindTaskTimeout,
		Code:    CodeTaskTimeout,
		Message: "Task timed out",
		Details: fmt.Sprintf("task_id=%s timeout=%s last_status=%s", taskID, timeout, last),
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
