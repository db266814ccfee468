package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fastly/internal/http"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// VersionsClient implements fastly.VersionsClient.
type VersionsClient struct {
	httpClient *http.Client
}

// NewVersionsClient creates a new versions client.
func NewVersionsClient(httpClient *http.Client) *VersionsClient {
	return &VersionsClient{
		httpClient: httpClient,
	}
}

// List retrieves every version of a service.
func (c *VersionsClient) List(ctx context.Context, serviceID string) ([]*fastly.Version, error) {
	if serviceID == "" {
		return nil, fastly.ErrMissingServiceID
	}

	resp, err := c.httpClient.Get(ctx, http.BuildPath("/service/%s/version", serviceID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	versions, err := decodeList[fastly.Version](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing versions list response: %w", err)
	}

	return versions, nil
}

// Get retrieves a single version.
func (c *VersionsClient) Get(ctx context.Context, target fastly.VersionTarget) (*fastly.Version, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	path := http.BuildPath("/service/%s/version/%s", target.ServiceID, target.ServiceVersion)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting version: %w", err)
	}

	version, err := decode[fastly.Version](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing version response: %w", err)
	}

	return version, nil
}

// Clone copies a version into a new, unlocked one.
func (c *VersionsClient) Clone(ctx context.Context, target fastly.VersionTarget) (*fastly.Version, error) {
	return c.action(ctx, target, "clone")
}

// Activate makes a version the active one.
func (c *VersionsClient) Activate(ctx context.Context, target fastly.VersionTarget) (*fastly.Version, error) {
	return c.action(ctx, target, "activate")
}

// Deactivate deactivates a version.
func (c *VersionsClient) Deactivate(ctx context.Context, target fastly.VersionTarget) (*fastly.Version, error) {
	return c.action(ctx, target, "deactivate")
}

// Lock prevents further changes to a version.
func (c *VersionsClient) Lock(ctx context.Context, target fastly.VersionTarget) (*fastly.Version, error) {
	return c.action(ctx, target, "lock")
}

func (c *VersionsClient) action(ctx context.Context, target fastly.VersionTarget, action string) (*fastly.Version, error) {
	err := target.Validate()
	if err != nil {
		return nil, err
	}

	path := http.BuildPath("/service/%s/version/%s/", target.ServiceID, target.ServiceVersion) + action

	resp, err := c.httpClient.Put(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s version: %w", gerund(action), err)
	}

	version, err := decode[fastly.Version](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s version response: %w", action, err)
	}

	return version, nil
}

func gerund(action string) string {
	switch action {
	case "clone":
		return "cloning"
	case "activate":
		return "activating"
	case "deactivate":
		return "deactivating"
	case "lock":
		return "locking"
	default:
		return action
	}
}
