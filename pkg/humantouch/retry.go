package humantouch

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retry runs op under an exponential backoff bounded by Config.Retries.
// Rate limit failures are retried for every method; network failures only
// for idempotent methods, since a POST may already have reached the server.
func (c *Client) retry(ctx context.Context, method, path string, op func() error) error {
	retries := c.config.Retries
	if retries < 0 {
		retries = 0
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.config.RetryDelay
	exp.MaxInterval = c.config.MaxRetryDelay
	exp.MaxElapsedTime = 0

	floor := &retryAfterBackOff{BackOff: exp}
	policy := backoff.WithContext(backoff.WithMaxRetries(floor, uint64(retries)), ctx)

	attempt := 0
	wrapped := func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !shouldRetry(method, err) {
			return backoff.Permanent(err)
		}

		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
			floor.minimum = apiErr.RetryAfter
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("request failed, retrying",
			"method", method,
			"path", path,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	return backoff.RetryNotify(wrapped, policy, notify)
}

func shouldRetry(method string, err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.Kind {
	case KindRateLimit:
		return true
	case KindNetwork:
		return isIdempotent(method)
	default:
		return false
	}
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	default:
		return false
	}
}

// retryAfterBackOff raises the next delay to a server-requested minimum.
type retryAfterBackOff struct {
	backoff.BackOff
	minimum time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.minimum > next {
		next = b.minimum
	}
	b.minimum = 0
	return next
}
