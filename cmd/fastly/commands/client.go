package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/fastly/internal/auth"
	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/fivetwenty-io/fastly/pkg/fastlyclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	newClient = fastlyclient.New
	openStore = auth.Open

	cliVersion = "dev"

	metricsRegistry *prometheus.Registry
	clientMetrics   *fastly.Metrics
)

// CreateClient builds an API client from the global flags, the environment
// and the keyring.
func CreateClient(ctx context.Context) (fastly.Client, error) {
	resolver := auth.Resolver{
		Flag:    viper.GetString(keyToken),
		Profile: viper.GetString(keyProfile),
		Open:    openStore,
	}

	resolved, err := resolver.Resolve()
	if err != nil {
		if errors.Is(err, auth.ErrNoCredentials) {
			return nil, fmt.Errorf("%w: %w", constants.ErrNoAPITokenConfigured, err)
		}

		return nil, fmt.Errorf("failed to resolve API token: %w", err)
	}

	endpoint := viper.GetString(keyEndpoint)
	if endpoint == "" {
		endpoint = resolved.Endpoint
	}

	config := &fastly.Config{
		BaseURL:    endpoint,
		APIKey:     &fastly.APIKey{Key: resolved.Token},
		UserAgent:  "fastly-cli/" + cliVersion,
		GuardQuota: true,
		Metrics:    metricsCollectors(),
	}

	if viper.GetBool(keyVerbose) {
		config.Debug = true
		config.Logger = fastly.NewConsoleLogger(os.Stderr, true)
	}

	cache, err := buildCache()
	if err != nil {
		return nil, err
	}

	config.Cache = cache

	client, err := newClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func buildCache() (fastly.Cache, error) {
	cacheType := fastly.CacheType(strings.ToLower(viper.GetString(keyCache)))
	addr := viper.GetString(keyCacheAddr)

	config := &fastly.CacheConfig{
		Type:   cacheType,
		Memory: &fastly.MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
	}

	switch cacheType {
	case "", fastly.CacheTypeNone:
		return nil, nil
	case fastly.CacheTypeMemory:
	case fastly.CacheTypeRedis:
		if addr == "" {
			addr = "localhost:6379"
		}

		config.Redis = &fastly.RedisCacheConfig{Addr: addr}
	case fastly.CacheTypeNATS:
		config.NATS = &fastly.NATSKVConfig{URL: addr}
	}

	cache, err := fastly.NewCacheFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cache: %w", cacheType, err)
	}

	return cache, nil
}

func metricsCollectors() *fastly.Metrics {
	if viper.GetString(keyMetricsFile) == "" {
		return nil
	}

	if clientMetrics == nil {
		metricsRegistry = prometheus.NewRegistry()
		clientMetrics = fastly.NewMetrics(metricsRegistry)
	}

	return clientMetrics
}

// FlushMetrics writes the collected metrics to --metrics-file in the
// Prometheus text format. It does nothing when no client was created.
func FlushMetrics(_ *cobra.Command, _ []string) error {
	path := viper.GetString(keyMetricsFile)
	if path == "" || metricsRegistry == nil {
		return nil
	}

	err := prometheus.WriteToTextfile(path, metricsRegistry)
	if err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// reportRateLimit prints the write quota to stderr in verbose mode.
func reportRateLimit(cmd *cobra.Command, client fastly.Client) {
	if !viper.GetBool(keyVerbose) {
		return
	}

	remaining, reset := formatRateLimit(client.RateLimit())
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Rate limit: %s remaining, resets %s\n", remaining, reset)
}
