package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

// newTestRoot builds a root command with fresh viper state. Tests using it
// must not run in parallel.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()

	viper.Reset()
	metricsRegistry = nil
	clientMetrics = nil

	t.Cleanup(func() {
		viper.Reset()
		metricsRegistry = nil
		clientMetrics = nil
	})

	root := &cobra.Command{
		Use:                "fastly",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPostRunE: FlushMetrics,
	}

	AddGlobalFlags(root)

	root.AddCommand(NewVersionCommand("test", "abc123", "today"))
	root.AddCommand(NewConfigCommand())
	root.AddCommand(NewLoginCommand())
	root.AddCommand(NewLogoutCommand())
	root.AddCommand(NewRateLimitCommand())
	root.AddCommand(NewServicesCommand())
	root.AddCommand(NewVersionsCommand())
	root.AddCommand(NewHealthchecksCommand())
	root.AddCommand(NewLoggingCommand())

	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

type apiCall struct {
	Method string
	Path   string
	Form   url.Values
	Key    string
}

// fakeAPI serves canned JSON by "METHOD path" and records every call.
type fakeAPI struct {
	*httptest.Server

	mu        sync.Mutex
	calls     []apiCall
	responses map[string]interface{}
}

func newFakeAPI(t *testing.T, responses map[string]interface{}) *fakeAPI {
	t.Helper()

	api := &fakeAPI{responses: responses}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)

	return api
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(body))

	a.mu.Lock()
	a.calls = append(a.calls, apiCall{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Form:   form,
		Key:    r.Header.Get("Fastly-Key"),
	})
	a.mu.Unlock()

	if r.Method != http.MethodGet {
		w.Header().Set("Fastly-RateLimit-Remaining", "998")
		w.Header().Set("Fastly-RateLimit-Reset", "4102444800")
	}

	response, ok := a.responses[r.Method+" "+r.URL.EscapedPath()]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"msg":"Record not found","detail":"Cannot find ` + r.URL.Path + `"}`))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func (a *fakeAPI) callsTo(method, pathPrefix string) []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()

	matched := make([]apiCall, 0)

	for _, call := range a.calls {
		if call.Method == method && strings.HasPrefix(call.Path, pathPrefix) {
			matched = append(matched, call)
		}
	}

	return matched
}

func serviceList() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "SU1Z0isxPaozGVKXdv0eY", "name": "www.example.com", "version": 3},
		{"id": "7i6HN3TK9wS159v2gPAZ8A", "name": "api.example.com", "version": 5},
	}
}

func decodeJSON(t *testing.T, output string, into interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal([]byte(output), into), output)
}
