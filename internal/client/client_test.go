package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/fivetwenty-io/fastly/internal/client"
	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVersionServer(t *testing.T, status int, calls *int32) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}

		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodGet {
			w.Header().Set("Fastly-RateLimit-Remaining", "0")
			w.Header().Set("Fastly-RateLimit-Reset", "4102444800")
		}

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"number": 1, "service_id": "svc"})
	}))
	t.Cleanup(server.Close)

	return server
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a config", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), nil)
		require.ErrorIs(t, err, fastly.ErrConfigRequired)
	})

	t.Run("defaults the base URL", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &fastly.Config{})
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultBaseURL, client.BaseURL())
		assert.Equal(t, fastly.DefaultRateLimitState(), client.RateLimit())
		assert.Empty(t, client.CircuitState())
	})

	t.Run("exposes every resource client", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &fastly.Config{BaseURL: "https://api.example.com"})
		require.NoError(t, err)

		var _ fastly.Client = client

		assert.NotNil(t, client.Services())
		assert.NotNil(t, client.Versions())
		assert.NotNil(t, client.Healthchecks())
		assert.NotNil(t, client.LoggingDigitalocean())
		assert.NotNil(t, client.LoggingS3())
		assert.NotNil(t, client.LoggingHTTPS())
		assert.NotNil(t, client.LoggingSyslog())
	})

	t.Run("sends the API key", func(t *testing.T) {
		t.Parallel()

		var header string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header = r.Header.Get("Fastly-Key")
			_ = json.NewEncoder(w).Encode([]interface{}{})
		}))
		defer server.Close()

		client, err := New(context.Background(), &fastly.Config{
			BaseURL: server.URL,
			APIKey:  &fastly.APIKey{Key: "secret", Prefix: "Bearer"},
		})
		require.NoError(t, err)

		_, err = client.Services().List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", header)
	})
}

func TestClient_RateLimitSnapshot(t *testing.T) {
	t.Parallel()

	server := newVersionServer(t, http.StatusOK, nil)

	client, err := New(context.Background(), &fastly.Config{BaseURL: server.URL})
	require.NoError(t, err)

	target := fastly.VersionTarget{ServiceID: "svc", ServiceVersion: 1}

	_, err = client.Versions().Get(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, fastly.DefaultRateLimitState(), client.RateLimit())

	_, err = client.Versions().Clone(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, fastly.RateLimit{Remaining: 0, Reset: 4102444800}, client.RateLimit())
}

func TestClient_QuotaGuard(t *testing.T) {
	t.Parallel()

	var calls int32

	server := newVersionServer(t, http.StatusOK, &calls)

	client, err := New(context.Background(), &fastly.Config{BaseURL: server.URL, GuardQuota: true})
	require.NoError(t, err)

	target := fastly.VersionTarget{ServiceID: "svc", ServiceVersion: 1}

	_, err = client.Versions().Lock(context.Background(), target)
	require.NoError(t, err)

	_, err = client.Versions().Activate(context.Background(), target)
	require.Error(t, err)
	assert.True(t, fastly.IsRateLimited(err))

	_, err = client.Versions().Get(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_CircuitBreaker(t *testing.T) {
	t.Parallel()

	var calls int32

	server := newVersionServer(t, http.StatusServiceUnavailable, &calls)

	client, err := New(context.Background(), &fastly.Config{
		BaseURL: server.URL,
		CircuitBreaker: &fastly.CircuitBreakerConfig{
			Threshold:        2,
			Timeout:          time.Minute,
			SuccessThreshold: 1,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusClosed, client.CircuitState())

	target := fastly.VersionTarget{ServiceID: "svc", ServiceVersion: 1}

	for range 2 {
		_, err = client.Versions().Get(context.Background(), target)
		require.Error(t, err)
		assert.True(t, fastly.IsServerError(err))
	}

	assert.Equal(t, constants.StatusOpen, client.CircuitState())

	_, err = client.Versions().Get(context.Background(), target)
	require.ErrorIs(t, err, fastly.ErrCircuitBreakerOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_CacheAndMetrics(t *testing.T) {
	t.Parallel()

	var calls int32

	server := newVersionServer(t, http.StatusOK, &calls)
	metrics := fastly.NewMetrics(prometheus.NewRegistry())

	client, err := New(context.Background(), &fastly.Config{
		BaseURL: server.URL,
		Cache:   fastly.NewMemoryCache(constants.DefaultCacheSize),
		Metrics: metrics,
	})
	require.NoError(t, err)

	target := fastly.VersionTarget{ServiceID: "svc", ServiceVersion: 1}

	for range 3 {
		version, err := client.Versions().Get(context.Background(), target)
		require.NoError(t, err)
		assert.Equal(t, 1, version.Number.Int())
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.CacheHits), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "200")), 0)

	_, err = client.Versions().Clone(context.Background(), target)
	require.NoError(t, err)

	_, err = client.Versions().Get(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.RateLimitRemaining), 0)
	assert.InDelta(t, 4102444800, testutil.ToFloat64(metrics.RateLimitReset), 0)
}
