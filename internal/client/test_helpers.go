package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	internalhttp "github.com/fivetwenty-io/fastly/internal/http"
	"github.com/stretchr/testify/require"
)

// RecordedRequest captures what a test server received.
type RecordedRequest struct {
	Method      string
	Path        string
	EscapedPath string
	Query       url.Values
	Form        url.Values
	Headers     http.Header
}

// NewTestServer starts a server that records the request and answers with
// statusCode and the JSON encoding of response. The returned HTTP client
// targets the server and sends no API key.
func NewTestServer(
	t *testing.T,
	statusCode int,
	response interface{},
) (*internalhttp.Client, *RecordedRequest) {
	t.Helper()

	recorded := &RecordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		form, _ := url.ParseQuery(string(body))

		recorded.Method = request.Method
		recorded.Path = request.URL.Path
		recorded.EscapedPath = request.URL.EscapedPath()
		recorded.Query = request.URL.Query()
		recorded.Form = form
		recorded.Headers = request.Header.Clone()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusCode)

		switch body := response.(type) {
		case nil:
		case string:
			_, _ = writer.Write([]byte(body))
		default:
			_ = json.NewEncoder(writer).Encode(body)
		}
	}))
	t.Cleanup(server.Close)

	return internalhttp.NewClient(server.URL, nil), recorded
}

// RequireForm asserts that every key in want was sent with the given values.
func RequireForm(t *testing.T, want map[string][]string, got url.Values) {
	t.Helper()

	for key, values := range want {
		require.Equal(t, values, got[key], "form field %q", key)
	}
}
