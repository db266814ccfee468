package fastly

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/fastly/internal/constants"
)

// ErrorKind tells which variant an ErrorPayload holds.
type ErrorKind int

const (
	// ErrorKindOpaque means the body could not be understood; only Raw is set.
	ErrorKindOpaque ErrorKind = iota
	// ErrorKindStructured means the body decoded into an ErrorBody.
	ErrorKindStructured
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	if k == ErrorKindStructured {
		return "structured"
	}

	return "opaque"
}

// ErrorDetail is one entry of a JSON:API style error list.
type ErrorDetail struct {
	Title  string `json:"title,omitempty"  yaml:"title,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Code   string `json:"code,omitempty"   yaml:"code,omitempty"`
}

// ErrorBody is the error document returned by the Fastly API.
type ErrorBody struct {
	Msg    string        `json:"msg,omitempty"    yaml:"msg,omitempty"`
	Detail string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Title  string        `json:"title,omitempty"  yaml:"title,omitempty"`
	Errors []ErrorDetail `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (b *ErrorBody) empty() bool {
	return b.Msg == "" && b.Detail == "" && b.Title == "" && len(b.Errors) == 0
}

// ErrorPayload is the best-effort interpretation of an error response body.
// Raw always holds the bytes as received.
type ErrorPayload struct {
	Kind       ErrorKind
	Structured *ErrorBody
	Raw        []byte
}

// ParseErrorPayload interprets an error response body. It never fails: a body
// that is not a recognisable error document yields an opaque payload.
func ParseErrorPayload(body []byte) ErrorPayload {
	payload := ErrorPayload{
		Kind: ErrorKindOpaque,
		Raw:  body,
	}

	var errBody ErrorBody

	err := json.Unmarshal(body, &errBody)
	if err != nil || errBody.empty() {
		return payload
	}

	payload.Kind = ErrorKindStructured
	payload.Structured = &errBody

	return payload
}

// Message returns a one-line description of the payload.
func (p ErrorPayload) Message() string {
	if p.Kind == ErrorKindStructured && p.Structured != nil {
		body := p.Structured

		parts := make([]string, 0, 2)
		if body.Msg != "" {
			parts = append(parts, body.Msg)
		} else if body.Title != "" {
			parts = append(parts, body.Title)
		}

		if body.Detail != "" {
			parts = append(parts, body.Detail)
		}

		for _, detail := range body.Errors {
			parts = append(parts, strings.TrimSpace(detail.Title+" "+detail.Detail))
		}

		return strings.Join(parts, ": ")
	}

	return strings.TrimSpace(string(p.Raw))
}

// ResponseError is returned for any response with a status in [400, 599].
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Payload    ErrorPayload
}

// NewResponseError builds a ResponseError and parses its payload.
func NewResponseError(method, path string, statusCode int, body []byte) *ResponseError {
	return &ResponseError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Body:       body,
		Payload:    ParseErrorPayload(body),
	}
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))

	detail := e.Payload.Message()
	if detail != "" {
		msg += ": " + detail
	}

	return msg
}

// TransportError is returned when no HTTP response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a success body does not match the expected model.
type DecodeError struct {
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

// Unwrap returns the underlying JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrMissingServiceID      = errors.New("missing required field: ServiceID")
	ErrMissingServiceVersion = errors.New("missing required field: ServiceVersion")
	ErrMissingName           = errors.New("missing required field: Name")
	ErrRateLimitExhausted    = errors.New("rate limit exhausted")
	ErrCircuitBreakerOpen    = errors.New("circuit breaker is open")
	ErrCacheMiss             = errors.New("key not found")
	ErrCacheEntryExpired     = errors.New("entry expired")
	ErrInvalidFlexInt        = errors.New("value is not an integer")
)

func statusOf(err error) int {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsRateLimited checks if the error is a 429 response or a local quota guard.
func IsRateLimited(err error) bool {
	return statusOf(err) == http.StatusTooManyRequests || errors.Is(err, ErrRateLimitExhausted)
}

// IsServerError checks if the error is a 5xx response.
func IsServerError(err error) bool {
	status := statusOf(err)

	return status >= constants.HTTPStatusServerErrorMin && status <= constants.HTTPStatusErrorMax
}
