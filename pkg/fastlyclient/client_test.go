package fastlyclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/fivetwenty-io/fastly/pkg/fastlyclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a config", func(t *testing.T) {
		t.Parallel()

		_, err := fastlyclient.New(context.Background(), nil)
		require.ErrorIs(t, err, fastly.ErrConfigRequired)
	})

	t.Run("does not modify the config", func(t *testing.T) {
		t.Parallel()

		config := &fastly.Config{BaseURL: "api.example.com/"}

		client, err := fastlyclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "api.example.com/", config.BaseURL)
	})

	t.Run("talks to the configured endpoint", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/service", r.URL.Path)
			assert.Equal(t, "test-token", r.Header.Get("Fastly-Key"))
			_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "svc", "name": "www"}})
		}))
		defer server.Close()

		client, err := fastlyclient.NewWithEndpoint(context.Background(), server.URL+"/", "test-token")
		require.NoError(t, err)

		services, err := client.Services().List(context.Background())
		require.NoError(t, err)
		require.Len(t, services, 1)
		assert.Equal(t, "www", services[0].Name)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := fastlyclient.NewWithToken(context.Background(), "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, fastly.DefaultRateLimit, client.RateLimit().Remaining)
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "https://api.fastly.com"},
		{"api.example.com", "https://api.example.com"},
		{"https://api.example.com/", "https://api.example.com"},
		{"http://localhost:8080//", "http://localhost:8080"},
		{"  https://api.fastly.com  ", "https://api.fastly.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fastlyclient.NormalizeBaseURL(tt.in), tt.in)
	}
}
