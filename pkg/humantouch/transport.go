package humantouch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// envelope wraps every response body.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *ResponseMeta   `json:"meta"`
}

// ResponseMeta is the "meta" block of a response envelope.
type ResponseMeta struct {
	RequestID      string  `json:"request_id"`
	Timestamp      string  `json:"timestamp"`
	APIVersion     string  `json:"api_version"`
	ProcessingTime float64 `json:"processing_time,omitempty"`
}

// do marshals body, sends it under the retry policy and returns the
// envelope's data payload.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, query url.Values) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var data json.RawMessage
	err := c.retry(ctx, method, path, func() error {
		statusCode, header, respBody, err := c.send(ctx, method, path, payload, query)
		if err != nil {
			return err
		}

		if statusCode < 200 || statusCode >= 300 {
			return classifyResponse(statusCode, header, respBody)
		}

		env, err := decodeEnvelope(respBody)
		if err != nil {
			return err
		}
		if env.Success != nil && !*env.Success && len(env.Error) > 0 {
			apiErr := &Error{
				Kind:       KindService,
				StatusCode: statusCode,
				Code:       CodeUnknown,
				Message:    defaultErrorMessage,
			}
			applyErrorInfo(apiErr, env.Error)
			return apiErr
		}
		if env.Meta != nil && env.Meta.RequestID != "" {
			c.logger.Trace("response meta", "path", path, "server_request_id", env.Meta.RequestID)
		}

		data = env.Data
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// send performs a single HTTP attempt. Transport failures are returned as
// NetworkError; cancellation of ctx is returned unchanged.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, query url.Values) (int, http.Header, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.buildURL(path, query), bodyReader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if key := c.APIKey(); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	c.logger.Debug("sending request",
		"method", method,
		"path", path,
		"request_id", requestID,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, nil, ctxErr
		}
		return 0, nil, nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, nil, ctxErr
		}
		return 0, nil, nil, newNetworkError(err)
	}

	c.logger.Debug("received response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	return resp.StatusCode, resp.Header, respBody, nil
}

// buildURL constructs a URL with query parameters
func (c *Client) buildURL(path string, query url.Values) string {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}
