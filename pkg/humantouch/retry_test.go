package humantouch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processResult() map[string]interface{} {
	return map[string]interface{}{
		"processed_text":   "ok",
		"original_length":  2,
		"processed_length": 2,
		"detection_scores": scores(0, 0, 0),
		"processing_time":  0.1,
		"rounds_used":      1,
	}
}

func TestRetry_RateLimitRetriedForPost(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			writeError(t, w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "slow down")
			return
		}
		writeData(t, w, processResult())
	})

	resp, err := client.Process(context.Background(), "ok", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.ProcessedText)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetry_RateLimitExhausted(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeError(t, w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "slow down")
	})

	_, err := client.Process(context.Background(), "ok", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimit)
	assert.Equal(t, int32(DefaultRetries+1), atomic.LoadInt32(&calls))
}

func TestRetry_ClientErrorsNotRetried(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrValidation},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrAuthentication},
		{name: "not found", status: http.StatusNotFound, want: ErrTaskNotFound},
		{name: "server error", status: http.StatusInternalServerError, want: ErrService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				writeError(t, w, tt.status, "X", "nope")
			})

			_, err := client.GetTaskStatus(context.Background(), "task_1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestRetry_RetryAfterHonored(t *testing.T) {
	var calls int32
	var first time.Time
	var second time.Time

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			first = time.Now()
			w.Header().Set("Retry-After", "1")
			writeError(t, w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "slow down")
		default:
			second = time.Now()
			writeData(t, w, map[string]interface{}{"task_id": "t", "status": "pending"})
		}
	})

	_, err := client.GetTaskStatus(context.Background(), "t")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, second.Sub(first), 900*time.Millisecond)
}

func TestRetry_Disabled(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeError(t, w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "slow down")
	}))
	defer server.Close()

	client, err := New(&Config{
		BaseURL: server.URL,
		Retries: NoRetries,
		Logger:  hclog.NewNullLogger(),
	})
	require.NoError(t, err)

	_, err = client.GetTaskStatus(context.Background(), "t")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimit)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// flakyTransport fails the first n round trips with a transport error.
type flakyTransport struct {
	failures int32
	calls    int32
	next     http.RoundTripper
}

func (f *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if atomic.AddInt32(&f.calls, 1) <= f.failures {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	}
	return f.next.RoundTrip(r)
}

func newFlakyClient(t *testing.T, failures int32) (*Client, *flakyTransport) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeData(t, w, processResult())
			return
		}
		writeData(t, w, map[string]interface{}{"task_id": "t", "status": "pending"})
	}))
	t.Cleanup(server.Close)

	transport := &flakyTransport{failures: failures, next: http.DefaultTransport}
	client, err := New(&Config{
		BaseURL:       server.URL,
		RetryDelay:    time.Millisecond,
		MaxRetryDelay: 5 * time.Millisecond,
		HTTPClient:    &http.Client{Transport: transport},
		Logger:        hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	return client, transport
}

func TestRetry_NetworkErrorRetriedForGet(t *testing.T) {
	client, transport := newFlakyClient(t, 2)

	status, err := client.GetTaskStatus(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusPending, status.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&transport.calls))
}

func TestRetry_NetworkErrorNotRetriedForPost(t *testing.T) {
	client, transport := newFlakyClient(t, 1)

	_, err := client.Process(context.Background(), "ok", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, int32(1), atomic.LoadInt32(&transport.calls))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Network error occurred")
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		writeError(t, w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "slow down")
	}))
	defer server.Close()

	client, err := New(&Config{BaseURL: server.URL, Logger: hclog.NewNullLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = client.GetTaskStatus(ctx, "t")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestShouldRetry(t *testing.T) {
	network := newNetworkError(errors.New("reset"))
	limited := classifyError(http.StatusTooManyRequests, nil)
	server := classifyError(http.StatusInternalServerError, nil)

	assert.True(t, shouldRetry(http.MethodGet, network))
	assert.True(t, shouldRetry(http.MethodDelete, network))
	assert.False(t, shouldRetry(http.MethodPost, network))
	assert.True(t, shouldRetry(http.MethodPost, limited))
	assert.False(t, shouldRetry(http.MethodGet, server))
	assert.False(t, shouldRetry(http.MethodGet, context.Canceled))
}
