package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/internal/http"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// ServicesClient implements fastly.ServicesClient.
type ServicesClient struct {
	httpClient *http.Client
}

// NewServicesClient creates a new services client.
func NewServicesClient(httpClient *http.Client) *ServicesClient {
	return &ServicesClient{
		httpClient: httpClient,
	}
}

// List retrieves every service of the account.
func (c *ServicesClient) List(ctx context.Context) ([]*fastly.Service, error) {
	resp, err := c.httpClient.Get(ctx, "/service", nil)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}

	services, err := decodeList[fastly.Service](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing services list response: %w", err)
	}

	return services, nil
}

// Get retrieves a service by ID.
func (c *ServicesClient) Get(ctx context.Context, serviceID string) (*fastly.Service, error) {
	if serviceID == "" {
		return nil, fastly.ErrMissingServiceID
	}

	resp, err := c.httpClient.Get(ctx, http.BuildPath("/service/%s", serviceID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting service: %w", err)
	}

	service, err := decode[fastly.Service](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing service response: %w", err)
	}

	return service, nil
}

// Search finds a service by its exact name.
func (c *ServicesClient) Search(ctx context.Context, name string) (*fastly.Service, error) {
	if name == "" {
		return nil, constants.ErrEmptyServiceQuery
	}

	resp, err := c.httpClient.Get(ctx, "/service/search", url.Values{"name": {name}})
	if err != nil {
		return nil, fmt.Errorf("searching service %q: %w", name, err)
	}

	service, err := decode[fastly.Service](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing service search response: %w", err)
	}

	return service, nil
}
