package client

import (
	"context"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/internal/http"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// Client implements the fastly.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *fastly.CircuitBreaker

	// Resource clients
	services            fastly.ServicesClient
	versions            fastly.VersionsClient
	healthchecks        fastly.HealthchecksClient
	loggingDigitalocean fastly.DigitaloceanClient
	loggingS3           fastly.S3Client
	loggingHTTPS        fastly.HTTPSClient
	loggingSyslog       fastly.SyslogClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *fastly.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Cache != nil {
		httpOpts = append(httpOpts, http.WithCache(config.Cache, config.CacheTTL))
	}

	return httpOpts
}

// buildInterceptors assembles the built-in interceptors selected by config,
// followed by the caller's own chain. snapshot reads the client's quota.
func buildInterceptors(config *fastly.Config, snapshot func() fastly.RateLimit) (*fastly.InterceptorChain, *fastly.CircuitBreaker) {
	chain := fastly.NewInterceptorChain()

	var breaker *fastly.CircuitBreaker

	if config.CircuitBreaker != nil {
		breaker = fastly.NewCircuitBreaker(config.CircuitBreaker)
		chain.AddRequestInterceptor(fastly.CircuitBreakerRequestInterceptor(breaker))
		chain.AddResponseInterceptor(fastly.CircuitBreakerResponseInterceptor(breaker))
	}

	if config.GuardQuota {
		chain.AddRequestInterceptor(fastly.QuotaGuardInterceptor(snapshot))
	}

	if config.RequestsPerSecond > 0 {
		chain.AddRequestInterceptor(fastly.RateLimitInterceptor(config.RequestsPerSecond, 1))
	}

	if config.Metrics != nil {
		chain.AddRequestInterceptor(config.Metrics.RequestInterceptor())
		chain.AddResponseInterceptor(config.Metrics.ResponseInterceptor())
	}

	if config.Logger != nil && config.Debug {
		chain.AddRequestInterceptor(fastly.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(fastly.LoggingResponseInterceptor(config.Logger))
	}

	chain.Append(config.Interceptors)

	return chain, breaker
}

// New creates a new Fastly API client.
func New(ctx context.Context, config *fastly.Config) (*Client, error) {
	if config == nil {
		return nil, fastly.ErrConfigRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	client := &Client{
		baseURL: baseURL,
	}

	chain, breaker := buildInterceptors(config, client.RateLimit)
	client.breaker = breaker

	httpOpts := createHTTPClientOptions(config)
	if !chain.Empty() {
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	client.httpClient = http.NewClient(baseURL, config.APIKey, httpOpts...)

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.services = NewServicesClient(c.httpClient)
	c.versions = NewVersionsClient(c.httpClient)
	c.healthchecks = NewHealthchecksClient(c.httpClient)
	c.loggingDigitalocean = NewDigitaloceanClient(c.httpClient)
	c.loggingS3 = NewS3Client(c.httpClient)
	c.loggingHTTPS = NewHTTPSClient(c.httpClient)
	c.loggingSyslog = NewSyslogClient(c.httpClient)
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RateLimit returns a copy of the quota reported by the last write call.
func (c *Client) RateLimit() fastly.RateLimit {
	if c.httpClient == nil {
		return fastly.DefaultRateLimitState()
	}

	return c.httpClient.RateLimit()
}

// CircuitState returns the circuit breaker state, or "" when none is configured.
func (c *Client) CircuitState() string {
	if c.breaker == nil {
		return ""
	}

	return c.breaker.State()
}

// Services returns the services client.
func (c *Client) Services() fastly.ServicesClient {
	return c.services
}

// Versions returns the versions client.
func (c *Client) Versions() fastly.VersionsClient {
	return c.versions
}

// Healthchecks returns the healthchecks client.
func (c *Client) Healthchecks() fastly.HealthchecksClient {
	return c.healthchecks
}

// LoggingDigitalocean returns the DigitalOcean Spaces logging client.
func (c *Client) LoggingDigitalocean() fastly.DigitaloceanClient {
	return c.loggingDigitalocean
}

// LoggingS3 returns the Amazon S3 logging client.
func (c *Client) LoggingS3() fastly.S3Client {
	return c.loggingS3
}

// LoggingHTTPS returns the HTTPS logging client.
func (c *Client) LoggingHTTPS() fastly.HTTPSClient {
	return c.loggingHTTPS
}

// LoggingSyslog returns the syslog logging client.
func (c *Client) LoggingSyslog() fastly.SyslogClient {
	return c.loggingSyslog
}
