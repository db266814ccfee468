//go:build integration

package integration

import (
	"context"
	"strconv"
	"testing"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/fivetwenty-io/fastly/pkg/fastlyclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheckWorkflow_CLI(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)
	name := GenerateTestName("hc")
	renamed := name + "-renamed"

	defer func() {
		runner.CleanupResource("healthcheck", name)
		runner.CleanupResource("healthcheck", renamed)
	}()

	var created fastly.Healthcheck
	require.NoError(t, runner.RunJSON(&created, "healthchecks", "create", name,
		"--host", "example.com",
		"--path", "/health",
		"--check-interval", "60000",
		"--header", "Ricky: Test",
		"--header", "Another-Header: Test"))
	assert.Equal(t, name, created.Name)
	assert.Equal(t, []string{"Ricky: Test", "Another-Header: Test"}, created.Headers)

	stdout, stderr, err := runner.Run("-o", "json", "healthchecks", "get", name)
	require.NoError(t, err, stderr)
	AssertJSONOutput(t, stdout)

	var updated fastly.Healthcheck
	require.NoError(t, runner.RunJSON(&updated, "healthchecks", "update", name, "--new-name", renamed))
	assert.Equal(t, renamed, updated.Name)

	stdout, stderr, err = runner.Run("healthchecks", "delete", renamed)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Deleted "+renamed)

	_, _, err = runner.Run("healthchecks", "get", renamed)
	require.Error(t, err)
}

func TestLoggingWorkflow_CLI(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)
	name := GenerateTestName("https")

	defer runner.CleanupResource("https", name)

	var created fastly.LoggingHTTPS
	require.NoError(t, runner.RunJSON(&created, "logging", "https", "create", name,
		"--set", "url=https://logs.example.com/ingest",
		"--set", "format_version=2"))
	assert.Equal(t, name, created.Name)
	assert.Equal(t, "https://logs.example.com/ingest", created.URL)

	stdout, stderr, err := runner.Run("-o", "json", "logging", "list-all")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, name)

	stdout, stderr, err = runner.Run("logging", "https", "delete", name)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Deleted "+name)
}

func TestClient_RateLimitTracking(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	version, err := strconv.Atoi(config.ServiceVersion)
	require.NoError(t, err)

	ctx := context.Background()

	client, err := fastlyclient.New(ctx, &fastly.Config{
		BaseURL: config.Endpoint,
		APIKey:  &fastly.APIKey{Key: config.Token},
	})
	require.NoError(t, err)

	_, err = client.Healthchecks().List(ctx, fastly.VersionTarget{
		ServiceID:      config.ServiceID,
		ServiceVersion: version,
	})
	require.NoError(t, err)
	assert.Equal(t, fastly.RateLimit{Remaining: 1000, Reset: 0}, client.RateLimit())

	name := GenerateTestName("hc-lib")
	target := fastly.VersionTarget{ServiceID: config.ServiceID, ServiceVersion: version}

	_, err = client.Healthchecks().Create(ctx, &fastly.CreateHealthcheckInput{
		VersionTarget: target,
		Name:          fastly.String(name),
		Host:          fastly.String("example.com"),
	})
	require.NoError(t, err)

	limit := client.RateLimit()
	assert.Less(t, limit.Remaining, 1000)
	assert.Positive(t, limit.Reset)

	_, err = client.Healthchecks().Delete(ctx, fastly.EndpointTarget{
		ServiceID:      config.ServiceID,
		ServiceVersion: version,
		Name:           name,
	})
	require.NoError(t, err)

	_, err = client.Healthchecks().Get(ctx, fastly.EndpointTarget{
		ServiceID:      config.ServiceID,
		ServiceVersion: version,
		Name:           name,
	})
	assert.True(t, fastly.IsNotFound(err))
}
