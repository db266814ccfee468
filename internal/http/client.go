package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// Client is the request executor shared by every resource client.
type Client struct {
	baseURL      string
	apiKey       *fastly.APIKey
	httpClient   *retryablehttp.Client
	userAgent    string
	logger       fastly.Logger
	debug        bool
	interceptors *fastly.InterceptorChain
	cache        fastly.Cache
	cacheTTL     time.Duration
	cacheScope   string

	mu        sync.RWMutex
	rateLimit fastly.RateLimit
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger fastly.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header. Empty keeps the default.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of transport failures, 429 and 5xx.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithTimeout sets the timeout of the underlying http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithInterceptors installs request/response interceptors.
func WithInterceptors(chain *fastly.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache caches successful GET responses for ttl.
func WithCache(cache fastly.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient creates a new HTTP client. apiKey may be nil, in which case no
// Fastly-Key header is sent.
func NewClient(baseURL string, apiKey *fastly.APIKey, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
		cacheTTL:   constants.DefaultCacheTTL,
		rateLimit:  fastly.DefaultRateLimitState(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.cacheScope = cacheScope(client.baseURL, client.apiKey)

	if client.debug && client.logger != nil {
		retryClient.Logger = &retryLogger{logger: client.logger}
	}

	return client
}

// Request represents an HTTP request.
type Request struct {
	Method string
	// Path is relative to the base URL. When PathArgs is set, Path is a
	// format string with one %s per argument; see BuildPath.
	Path     string
	PathArgs []interface{}
	Query    url.Values
	// Form is sent as an application/x-www-form-urlencoded body. Nil sends
	// no body.
	Form    url.Values
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	// RateLimit is the quota reported by this response; nil for GET and HEAD.
	RateLimit *fastly.RateLimit
	// Cached is true when the body came from the GET cache.
	Cached bool
}

// RateLimit returns a copy of the quota reported by the last write call.
func (c *Client) RateLimit() fastly.RateLimit {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.rateLimit
}

// Do executes an HTTP request. For statuses 400 through 599 both the response
// and a *fastly.ResponseError are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	path := req.Path
	if req.PathArgs != nil {
		path = BuildPath(req.Path, req.PathArgs...)
	}

	fullURL := c.baseURL + path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body []byte
	if req.Form != nil {
		body = []byte(req.Form.Encode())
	}

	intercepted := &fastly.Request{
		Method:   req.Method,
		Path:     path,
		Headers:  make(http.Header),
		Body:     body,
		Metadata: make(map[string]interface{}),
	}

	if !c.interceptors.Empty() {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	if cached := c.lookupCache(ctx, req.Method, path, req.Query); cached != nil {
		return c.finish(ctx, intercepted, cached, nil)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", constants.ContentTypeJSON)

	if key := c.apiKey.HeaderValue(); key != "" {
		httpReq.Header.Set(constants.HeaderAPIKey, key)
	}

	if req.Form != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeForm)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := &fastly.TransportError{Method: req.Method, URL: fullURL, Err: err}

		return c.finish(ctx, intercepted, nil, transportErr)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		transportErr := &fastly.TransportError{
			Method: req.Method,
			URL:    fullURL,
			Err:    fmt.Errorf("reading response body: %w", err),
		}

		return c.finish(ctx, intercepted, nil, transportErr)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
	}

	if isWrite(req.Method) {
		limit := c.parseRateLimit(httpResp.Header)
		resp.RateLimit = &limit

		c.mu.Lock()
		c.rateLimit = limit
		c.mu.Unlock()
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"size":   len(respBody),
		})
	}

	if resp.StatusCode >= constants.HTTPStatusClientErrorMin && resp.StatusCode <= constants.HTTPStatusErrorMax {
		return c.finish(ctx, intercepted, resp, fastly.NewResponseError(req.Method, path, resp.StatusCode, respBody))
	}

	c.storeCache(ctx, req.Method, path, req.Query, resp)

	return c.finish(ctx, intercepted, resp, nil)
}

// finish runs the response interceptors and returns the outcome of Do.
func (c *Client) finish(ctx context.Context, req *fastly.Request, resp *Response, callErr error) (*Response, error) {
	if c.interceptors.Empty() {
		return resp, callErr
	}

	intercepted := &fastly.Response{Error: callErr}
	if resp != nil {
		intercepted.StatusCode = resp.StatusCode
		intercepted.Headers = resp.Headers
		intercepted.Body = resp.Body
		intercepted.RateLimit = resp.RateLimit
		intercepted.Cached = resp.Cached
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, intercepted)
	if err != nil && callErr == nil {
		return resp, err
	}

	return resp, callErr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with body form-encoded.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.doForm(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with body form-encoded.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.doForm(ctx, http.MethodPut, path, body)
}

// Patch performs a PATCH request with body form-encoded.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.doForm(ctx, http.MethodPatch, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

func (c *Client) doForm(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	form, err := EncodeForm(body)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, &Request{
		Method: method,
		Path:   path,
		Form:   form,
	})
}

func isWrite(method string) bool {
	return method != http.MethodGet && method != http.MethodHead
}
