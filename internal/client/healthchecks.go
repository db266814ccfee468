package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fastly/internal/http"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// HealthchecksClient implements fastly.HealthchecksClient.
type HealthchecksClient struct {
	httpClient *http.Client
}

// NewHealthchecksClient creates a new healthchecks client.
func NewHealthchecksClient(httpClient *http.Client) *HealthchecksClient {
	return &HealthchecksClient{
		httpClient: httpClient,
	}
}

func healthchecksPath(target fastly.VersionTarget) string {
	return http.BuildPath("/service/%s/version/%s/healthcheck", target.ServiceID, target.ServiceVersion)
}

func healthcheckPath(target fastly.EndpointTarget) string {
	return http.BuildPath("/service/%s/version/%s/healthcheck/%s", target.ServiceID, target.ServiceVersion, target.Name)
}

// List retrieves the healthchecks of a service version.
func (c *HealthchecksClient) List(ctx context.Context, target fastly.VersionTarget) ([]*fastly.Healthcheck, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, healthchecksPath(target), nil)
	if err != nil {
		return nil, fmt.Errorf("listing healthchecks: %w", err)
	}

	healthchecks, err := decodeList[fastly.Healthcheck](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing healthchecks list response: %w", err)
	}

	return healthchecks, nil
}

// Get retrieves a healthcheck by name.
func (c *HealthchecksClient) Get(ctx context.Context, target fastly.EndpointTarget) (*fastly.Healthcheck, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, healthcheckPath(target), nil)
	if err != nil {
		return nil, fmt.Errorf("getting healthcheck: %w", err)
	}

	healthcheck, err := decode[fastly.Healthcheck](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing healthcheck response: %w", err)
	}

	return healthcheck, nil
}

// Create creates a healthcheck. Headers are sent as headers[].
func (c *HealthchecksClient) Create(ctx context.Context, input *fastly.CreateHealthcheckInput) (*fastly.Healthcheck, error) {
	err := input.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, healthchecksPath(input.VersionTarget), input)
	if err != nil {
		return nil, fmt.Errorf("creating healthcheck: %w", err)
	}

	healthcheck, err := decode[fastly.Healthcheck](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing healthcheck response: %w", err)
	}

	return healthcheck, nil
}

// Update changes the fields of a healthcheck that are set in input.
func (c *HealthchecksClient) Update(ctx context.Context, input *fastly.UpdateHealthcheckInput) (*fastly.Healthcheck, error) {
	err := input.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, healthcheckPath(input.EndpointTarget), input)
	if err != nil {
		return nil, fmt.Errorf("updating healthcheck: %w", err)
	}

	healthcheck, err := decode[fastly.Healthcheck](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing healthcheck response: %w", err)
	}

	return healthcheck, nil
}

// Delete removes a healthcheck.
func (c *HealthchecksClient) Delete(ctx context.Context, target fastly.EndpointTarget) (*fastly.DeleteResponse, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Delete(ctx, healthcheckPath(target))
	if err != nil {
		return nil, fmt.Errorf("deleting healthcheck: %w", err)
	}

	result, err := decode[fastly.DeleteResponse](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing healthcheck delete response: %w", err)
	}

	return result, nil
}
