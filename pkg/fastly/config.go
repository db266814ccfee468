package fastly

import (
	"time"
)

// APIKey is the credential sent in the Fastly-Key header.
type APIKey struct {
	// Key is the API token.
	Key string
	// Prefix is optional. When set the header value is "Prefix Key".
	Prefix string
}

// HeaderValue returns the Fastly-Key header value, or "" when no key is set.
func (k *APIKey) HeaderValue() string {
	if k == nil || k.Key == "" {
		return ""
	}

	if k.Prefix != "" {
		return k.Prefix + " " + k.Key
	}

	return k.Key
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a fastly.Client.
//
// # Authentication
//
// APIKey is sent on every request as the Fastly-Key header. A nil APIKey, or
// one with an empty Key, sends no header; Fastly answers such calls with 401
// for everything except a handful of public endpoints.
//
// # Rate limits
//
// Fastly reports the remaining write quota on every non-GET/HEAD response.
// The client keeps the latest values and exposes them through
// Client.RateLimit. There is no shared global state: two clients built from
// the same Config track their quotas independently.
//
// # Timeouts and retries
//
// Per-request timeouts should be controlled through the context passed to
// client methods. RetryMax defaults to zero, so transport failures and 5xx
// responses surface immediately. Set RetryMax to opt into retries with
// exponential backoff between RetryWaitMin and RetryWaitMax.
type Config struct {
	// BaseURL: root of the management API. Defaults to https://api.fastly.com.
	// fastlyclient.New trims a trailing slash and adds "https://" when no
	// scheme is present.
	BaseURL string

	// APIKey: credential for the Fastly-Key header.
	APIKey *APIKey

	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// HTTPTimeout: timeout applied to the underlying http.Client.
	HTTPTimeout time.Duration
	// RetryMax: number of retries for transient failures. Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger

	// RequestsPerSecond: optional client-side throttle. Zero disables it.
	RequestsPerSecond float64
	// GuardQuota: when true, writes fail fast with ErrRateLimitExhausted once
	// the last reported quota is zero and its reset time has not passed.
	GuardQuota bool
	// CircuitBreaker: optional circuit breaker settings. Nil disables it.
	CircuitBreaker *CircuitBreakerConfig

	// Cache: optional backend for GET responses. Nil disables caching.
	// Entries are scoped to the base URL and API key. A write drops the
	// written path and its ancestors; activating or deactivating a version
	// clears the cache. Other changes made outside this client stay
	// invisible for up to CacheTTL.
	Cache Cache
	// CacheTTL: lifetime of cached GET responses. Defaults to 30s.
	CacheTTL time.Duration

	// Metrics: optional Prometheus collectors updated on every call.
	Metrics *Metrics

	// Interceptors: extra request/response hooks, run after the built-in ones.
	Interceptors *InterceptorChain
}
