package fastly_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

func TestMetrics_Interceptors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := fastly.NewMetrics(reg)
	ctx := context.Background()

	req := &fastly.Request{Method: "PUT", Path: "/service/abc/version/1/activate"}

	err := metrics.RequestInterceptor()(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, req.Metadata, "metrics_start")

	err = metrics.ResponseInterceptor()(ctx, req, &fastly.Response{
		StatusCode: 200,
		RateLimit:  &fastly.RateLimit{Remaining: 999, Reset: 1700000000},
	})
	require.NoError(t, err)

	get := &fastly.Request{Method: "GET", Path: "/service"}
	require.NoError(t, metrics.RequestInterceptor()(ctx, get))
	require.NoError(t, metrics.ResponseInterceptor()(ctx, get, &fastly.Response{StatusCode: 200, Cached: true}))
	require.NoError(t, metrics.ResponseInterceptor()(ctx, get, &fastly.Response{StatusCode: 0}))

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("PUT", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "error")), 0)
	assert.InDelta(t, 999, testutil.ToFloat64(metrics.RateLimitRemaining), 0)
	assert.InDelta(t, 1700000000, testutil.ToFloat64(metrics.RateLimitReset), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CacheHits), 0)
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		_ = fastly.NewMetrics(prometheus.NewRegistry())
		_ = fastly.NewMetrics(prometheus.NewRegistry())
	})
}
