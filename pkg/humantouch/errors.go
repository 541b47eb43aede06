package humantouch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which member of the error taxonomy an Error belongs to.
type Kind int

const (
	// KindService is any non-2xx response without a more specific kind.
	KindService Kind = iota
	// KindNetwork is a transport-level failure; no status code is available.
	KindNetwork
	// KindAuthentication is a 401 response.
	KindAuthentication
	// KindRateLimit is a 429 response.
	KindRateLimit
	// KindValidation is a 400 response or a request rejected before sending.
	KindValidation
	// KindTaskNotFound is a 404 response.
	KindTaskNotFound
	// KindTaskTimeout is raised when polling exceeds its deadline.
	KindTaskTimeout
	// KindTaskFailed is raised when the server reports a task as failed.
	KindTaskFailed
)

func (k Kind) String() string {
	switch k {
	case KindService:
		return "service error"
	case KindNetwork:
		return "network error"
	case KindAuthentication:
		return "authentication error"
	case KindRateLimit:
		return "rate limit error"
	case KindValidation:
		return "validation error"
	case KindTaskNotFound:
		return "task not found"
	case KindTaskTimeout:
		return "task timeout"
	case KindTaskFailed:
		return "task failed"
	default:
		return "unknown error kind " + strconv.Itoa(int(k))
	}
}

// Error codes synthesized by the client. Codes reported by the service are
// passed through verbatim.
const (
	CodeUnknown           = "UNKNOWN_ERROR"
	CodeNetwork           = "NETWORK_ERROR"
	CodeTaskTimeout       = "TASK_TIMEOUT"
	CodeTaskFailed        = "TASK_FAILED"
	CodeInvalidParameters = "INVALID_PARAMETERS"
)

const defaultErrorMessage = "Unknown error"

// Error is the single error type returned for service, transport and task
// failures. Kind selects the taxonomy member; the remaining fields carry the
// payload shared by all members.
type Error struct {
	Kind Kind

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	Code    string
	Message string
	Details string

	// RetryAfter is the server-requested delay on rate limit responses.
	RetryAfter time.Duration

	// Err is the underlying cause, if any.
	Err error

	sentinel bool
}

// Sentinels for use with errors.Is. They match any *Error of the same kind.
var (
	ErrService        = newSentinel(KindService)
	ErrNetwork        = newSentinel(KindNetwork)
	ErrAuthentication = newSentinel(KindAuthentication)
	ErrRateLimit      = newSentinel(KindRateLimit)
	ErrValidation     = newSentinel(KindValidation)
	ErrTaskNotFound   = newSentinel(KindTaskNotFound)
	ErrTaskTimeout    = newSentinel(KindTaskTimeout)
	ErrTaskFailed     = newSentinel(KindTaskFailed)
)

func newSentinel(k Kind) *Error {
	return &Error{Kind: k, Message: k.String(), sentinel: true}
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}
	return t.Kind == e.Kind
}

// IsRetryable reports whether err is a network or rate limit failure.
func IsRetryable(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindNetwork || apiErr.Kind == KindRateLimit
}

func newNetworkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Code:    CodeNetwork,
		Message: fmt.Sprintf("Network error occurred: %v", err),
		Err:     err,
	}
}

func newValidationError(err error) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeInvalidParameters,
		Message: "invalid request parameters",
		Details: err.Error(),
		Err:     err,
	}
}

func kindForStatus(statusCode int) Kind {
	switch statusCode {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindTaskNotFound
	default:
		return KindService
	}
}

type errorInfo struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

// classifyError maps a failed response to a taxonomy member. A body that is
// not a JSON object degrades to its raw text as the message.
func classifyError(statusCode int, body []byte) *Error {
	apiErr := &Error{
		Kind:       kindForStatus(statusCode),
		StatusCode: statusCode,
		Code:       CodeUnknown,
	}

	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		apiErr.Message = string(body)
		return apiErr
	}

	apiErr.Message = defaultErrorMessage
	applyErrorInfo(apiErr, env.Error)
	return apiErr
}

// applyErrorInfo copies code, message and details from a raw "error" value.
func applyErrorInfo(apiErr *Error, raw json.RawMessage) {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return
	}

	if raw[0] == '"' {
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
			apiErr.Message = msg
		}
		return
	}

	var info errorInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return
	}
	if info.Message != "" {
		apiErr.Message = info.Message
	}
	if info.Code != "" {
		apiErr.Code = info.Code
	}
	apiErr.Details = detailsText(info.Details)
}

func detailsText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// classifyResponse is classifyError plus the Retry-After header on 429s.
func classifyResponse(statusCode int, header http.Header, body []byte) *Error {
	apiErr := classifyError(statusCode, body)
	if apiErr.Kind == KindRateLimit && header != nil {
		if secs, err := strconv.Atoi(strings.TrimSpace(header.Get("Retry-After"))); err == nil && secs > 0 {
			apiErr.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	return apiErr
}
