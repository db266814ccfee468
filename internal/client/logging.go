package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fastly/internal/http"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// Logging provider path segments.
const (
	ProviderDigitalocean = "digitalocean"
	ProviderS3           = "s3"
	ProviderHTTPS        = "https"
	ProviderSyslog       = "syslog"
)

// LoggingClient provides CRUD access to the logging endpoints of one
// provider. All providers share the same paths and verbs; only the path
// segment and the models differ.
type LoggingClient[T any, C fastly.TargetedInput, U fastly.EndpointInput] struct {
	httpClient *http.Client
	provider   string
}

// NewLoggingClient creates a logging client for provider.
func NewLoggingClient[T any, C fastly.TargetedInput, U fastly.EndpointInput](
	httpClient *http.Client,
	provider string,
) *LoggingClient[T, C, U] {
	return &LoggingClient[T, C, U]{
		httpClient: httpClient,
		provider:   provider,
	}
}

// Provider returns the provider path segment.
func (c *LoggingClient[T, C, U]) Provider() string {
	return c.provider
}

func (c *LoggingClient[T, C, U]) collectionPath(target fastly.VersionTarget) string {
	return http.BuildPath("/service/%s/version/%s/logging/", target.ServiceID, target.ServiceVersion) + c.provider
}

func (c *LoggingClient[T, C, U]) endpointPath(target fastly.EndpointTarget) string {
	return c.collectionPath(target.Target()) + http.BuildPath("/%s", target.Name)
}

// List retrieves the endpoints of a service version.
func (c *LoggingClient[T, C, U]) List(ctx context.Context, target fastly.VersionTarget) ([]*T, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.collectionPath(target), nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s logging endpoints: %w", c.provider, err)
	}

	endpoints, err := decodeList[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s logging endpoints list response: %w", c.provider, err)
	}

	return endpoints, nil
}

// Get retrieves an endpoint by name.
func (c *LoggingClient[T, C, U]) Get(ctx context.Context, target fastly.EndpointTarget) (*T, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, c.endpointPath(target), nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s logging endpoint: %w", c.provider, err)
	}

	endpoint, err := decode[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s logging endpoint response: %w", c.provider, err)
	}

	return endpoint, nil
}

// Create creates an endpoint from the fields set in input.
func (c *LoggingClient[T, C, U]) Create(ctx context.Context, input C) (*T, error) {
	target := input.Target()

	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, c.collectionPath(target), input)
	if err != nil {
		return nil, fmt.Errorf("creating %s logging endpoint: %w", c.provider, err)
	}

	endpoint, err := decode[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s logging endpoint response: %w", c.provider, err)
	}

	return endpoint, nil
}

// Update changes the fields of an endpoint that are set in input.
func (c *LoggingClient[T, C, U]) Update(ctx context.Context, input U) (*T, error) {
	version := input.Target()
	target := fastly.EndpointTarget{
		ServiceID:      version.ServiceID,
		ServiceVersion: version.ServiceVersion,
		Name:           input.EndpointName(),
	}

	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, c.endpointPath(target), input)
	if err != nil {
		return nil, fmt.Errorf("updating %s logging endpoint: %w", c.provider, err)
	}

	endpoint, err := decode[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s logging endpoint response: %w", c.provider, err)
	}

	return endpoint, nil
}

// Delete removes an endpoint.
func (c *LoggingClient[T, C, U]) Delete(ctx context.Context, target fastly.EndpointTarget) (*fastly.DeleteResponse, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, c.endpointPath(target))
	if err != nil {
		return nil, fmt.Errorf("deleting %s logging endpoint: %w", c.provider, err)
	}

	result, err := decode[fastly.DeleteResponse](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s logging endpoint delete response: %w", c.provider, err)
	}

	return result, nil
}

// NewDigitaloceanClient creates a client for DigitalOcean Spaces endpoints.
func NewDigitaloceanClient(httpClient *http.Client) *LoggingClient[
	fastly.LoggingDigitalocean, *fastly.CreateDigitaloceanInput, *fastly.UpdateDigitaloceanInput] {
	return NewLoggingClient[fastly.LoggingDigitalocean, *fastly.CreateDigitaloceanInput, *fastly.UpdateDigitaloceanInput](
		httpClient, ProviderDigitalocean)
}

// NewS3Client creates a client for Amazon S3 endpoints.
func NewS3Client(httpClient *http.Client) *LoggingClient[fastly.LoggingS3, *fastly.CreateS3Input, *fastly.UpdateS3Input] {
	return NewLoggingClient[fastly.LoggingS3, *fastly.CreateS3Input, *fastly.UpdateS3Input](httpClient, ProviderS3)
}

// NewHTTPSClient creates a client for HTTPS endpoints.
func NewHTTPSClient(httpClient *http.Client) *LoggingClient[fastly.LoggingHTTPS, *fastly.CreateHTTPSInput, *fastly.UpdateHTTPSInput] {
	return NewLoggingClient[fastly.LoggingHTTPS, *fastly.CreateHTTPSInput, *fastly.UpdateHTTPSInput](httpClient, ProviderHTTPS)
}

// NewSyslogClient creates a client for syslog endpoints.
func NewSyslogClient(httpClient *http.Client) *LoggingClient[fastly.LoggingSyslog, *fastly.CreateSyslogInput, *fastly.UpdateSyslogInput] {
	return NewLoggingClient[fastly.LoggingSyslog, *fastly.CreateSyslogInput, *fastly.UpdateSyslogInput](httpClient, ProviderSyslog)
}
