//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Token          string
	ServiceID      string
	ServiceVersion string
	Endpoint       string
	FastlyPath     string
	Verbose        bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Token:          os.Getenv("FASTLY_API_TOKEN"),
		ServiceID:      os.Getenv("FASTLY_SERVICE_ID"),
		ServiceVersion: os.Getenv("FASTLY_SERVICE_VERSION"),
		Endpoint:       os.Getenv("FASTLY_API_ENDPOINT"),
		FastlyPath:     getFastlyPath(),
		Verbose:        os.Getenv("FASTLY_VERBOSE") == "true",
	}
}

func getFastlyPath() string {
	if path := os.Getenv("FASTLY_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../fastly", "./fastly", "../fastly"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "fastly"
}

// SkipIfMissingConfig skips the test unless a live account and an editable
// service version are configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" || config.ServiceID == "" || config.ServiceVersion == "" {
		t.Skip("FASTLY_API_TOKEN, FASTLY_SERVICE_ID and FASTLY_SERVICE_VERSION must be set")
	}
}

// SkipIfMissingBinary skips the test when the fastly binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.FastlyPath); err != nil {
		t.Skipf("fastly binary not found at %s", config.FastlyPath)
	}
}

// CommandRunner runs the fastly binary against the configured service version.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

func (runner *CommandRunner) globalArgs() []string {
	args := []string{
		"--service", runner.config.ServiceID,
		"--version", runner.config.ServiceVersion,
	}

	if runner.config.Endpoint != "" {
		args = append(args, "--endpoint", runner.config.Endpoint)
	}

	return args
}

// Run executes a fastly command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append(runner.globalArgs(), args...)

	cmd := exec.Command(runner.config.FastlyPath, full...)
	cmd.Env = append(os.Environ(), "FASTLY_API_TOKEN="+runner.config.Token)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.FastlyPath, strings.Join(full, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a fastly command with JSON output and decodes the result.
func (runner *CommandRunner) RunJSON(out interface{}, args ...string) error {
	stdout, stderr, err := runner.Run(append([]string{"-o", "json"}, args...)...)
	if err != nil {
		return fmt.Errorf("%w: %s", err, stderr)
	}

	return json.Unmarshal([]byte(stdout), out)
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CleanupResource attempts to delete a test resource. Failures are logged only.
func (runner *CommandRunner) CleanupResource(resourceType, name string) {
	var args []string

	switch resourceType {
	case "healthcheck":
		args = []string{"healthchecks", "delete", name}
	case "digitalocean", "s3", "https", "syslog":
		args = []string{"logging", resourceType, "delete", name}
	default:
		runner.t.Logf("Unknown resource type for cleanup: %s", resourceType)

		return
	}

	stdout, stderr, err := runner.Run(args...)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, name, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not JSON: %s", output)
	}
}
