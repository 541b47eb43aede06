package humantouch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

// newTestClient starts server with handler and returns a client pointed at
// it with fast retries.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&Config{
		BaseURL:       server.URL,
		APIKey:        "test-key",
		Timeout:       5 * time.Second,
		RetryDelay:    time.Millisecond,
		MaxRetryDelay: 5 * time.Millisecond,
		Logger:        hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	return client
}

// writeData writes a successful envelope around data.
func writeData(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
		"meta": map[string]interface{}{
			"request_id":  "req_123",
			"timestamp":   "2024-01-01T00:00:00Z",
			"api_version": "v1",
		},
	})
	require.NoError(t, err)
}

// writeError writes a failure envelope with the given status.
func writeError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
	require.NoError(t, err)
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func scores(zerogpt, gptzero, copyleaks float64) map[string]interface{} {
	return map[string]interface{}{
		"zerogpt":   zerogpt,
		"gptzero":   gptzero,
		"copyleaks": copyleaks,
	}
}
