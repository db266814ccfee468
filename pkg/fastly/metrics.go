package fastly

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsStartKey = "metrics_start"

// Metrics holds the Prometheus collectors updated by the client.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RateLimitRemaining prometheus.Gauge
	RateLimitReset     prometheus.Gauge
	CacheHits          prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// registers with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fastly",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API calls by method and status",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fastly",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API call latency histogram",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method"},
		),
		RateLimitRemaining: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "fastly",
				Subsystem: "api",
				Name:      "ratelimit_remaining",
				Help:      "Write quota remaining as last reported by the API",
			},
		),
		RateLimitReset: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "fastly",
				Subsystem: "api",
				Name:      "ratelimit_reset_timestamp_seconds",
				Help:      "Unix time at which the write quota resets",
			},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fastly",
				Subsystem: "api",
				Name:      "cache_hits_total",
				Help:      "GET calls served from the response cache",
			},
		),
	}
}

// RecordRequest records a completed call. statusCode 0 means no response.
func (m *Metrics) RecordRequest(method string, statusCode int, duration time.Duration) {
	status := "error"
	if statusCode != 0 {
		status = strconv.Itoa(statusCode)
	}

	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordRateLimit publishes a quota snapshot.
func (m *Metrics) RecordRateLimit(limit RateLimit) {
	m.RateLimitRemaining.Set(float64(limit.Remaining))
	m.RateLimitReset.Set(float64(limit.Reset))
}

// RequestInterceptor stamps the start time used for the latency histogram.
func (m *Metrics) RequestInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartKey] = time.Now()

		return nil
	}
}

// ResponseInterceptor records the call once its response is known.
func (m *Metrics) ResponseInterceptor() ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		var elapsed time.Duration
		if start, ok := req.Metadata[metricsStartKey].(time.Time); ok {
			elapsed = time.Since(start)
		}

		m.RecordRequest(req.Method, resp.StatusCode, elapsed)

		if resp.Cached {
			m.CacheHits.Inc()
		}

		if resp.RateLimit != nil {
			m.RecordRateLimit(*resp.RateLimit)
		}

		return nil
	}
}
