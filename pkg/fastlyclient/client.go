package fastlyclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/fastly/internal/client"
	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// New creates a new Fastly API client. config is not retained; changing it
// afterwards has no effect on the client.
func New(ctx context.Context, config *fastly.Config) (fastly.Client, error) {
	if config == nil {
		return nil, fastly.ErrConfigRequired
	}

	normalized := *config
	normalized.BaseURL = NormalizeBaseURL(config.BaseURL)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeBaseURL trims trailing slashes and adds "https://" when no scheme
// is present. An empty endpoint yields the public API.
func NormalizeBaseURL(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithToken creates a client for the public API authenticated with token.
func NewWithToken(ctx context.Context, token string) (fastly.Client, error) {
	return New(ctx, &fastly.Config{
		APIKey: &fastly.APIKey{Key: token},
	})
}

// NewWithEndpoint creates a client for endpoint authenticated with token.
func NewWithEndpoint(ctx context.Context, endpoint, token string) (fastly.Client, error) {
	return New(ctx, &fastly.Config{
		BaseURL: endpoint,
		APIKey:  &fastly.APIKey{Key: token},
	})
}
