package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServicesCommand(t *testing.T) {
	t.Parallel()

	cmd := NewServicesCommand()
	assert.Equal(t, "services", cmd.Use)
	assert.Equal(t, []string{"service", "svc"}, cmd.Aliases)
	assert.Equal(t, "Manage services", cmd.Short)
	assert.ElementsMatch(t, []string{"list", "get", "search"}, subcommandNames(cmd))

	get := findSubcommand(cmd, "get")
	require.NotNil(t, get)
	assert.Equal(t, "get SERVICE", get.Use)
	assert.NotNil(t, get.Args)
}

func TestNewVersionsCommand(t *testing.T) {
	t.Parallel()

	cmd := NewVersionsCommand()
	assert.Equal(t, "versions", cmd.Use)
	assert.ElementsMatch(t,
		[]string{"list", "get", "clone", "activate", "deactivate", "lock"},
		subcommandNames(cmd))

	for _, name := range []string{"clone", "activate", "deactivate", "lock"} {
		sub := findSubcommand(cmd, name)
		require.NotNil(t, sub, name)
		assert.Equal(t, name+" [VERSION]", sub.Use)
		assert.NotNil(t, sub.RunE)
	}
}

func TestNewHealthchecksCommand(t *testing.T) {
	t.Parallel()

	cmd := NewHealthchecksCommand()
	assert.Equal(t, "healthchecks", cmd.Use)
	assert.Equal(t, []string{"healthcheck", "hc"}, cmd.Aliases)
	assert.ElementsMatch(t, []string{"list", "get", "create", "update", "delete"}, subcommandNames(cmd))

	create := findSubcommand(cmd, "create")
	require.NotNil(t, create)

	flags := []string{
		"comment", "method", "host", "path", "http-version", "timeout", "check-interval",
		"expected-response", "window", "threshold", "initial", "header", "from-file",
	}
	for _, flagName := range flags {
		assert.NotNil(t, create.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	update := findSubcommand(cmd, "update")
	require.NotNil(t, update)
	assert.NotNil(t, update.Flags().Lookup("new-name"))
}

func TestNewLoggingCommand(t *testing.T) {
	t.Parallel()

	cmd := NewLoggingCommand()
	assert.Equal(t, "logging", cmd.Use)
	assert.ElementsMatch(t,
		[]string{"digitalocean", "s3", "https", "syslog", "list-all"},
		subcommandNames(cmd))

	for _, provider := range []string{"digitalocean", "s3", "https", "syslog"} {
		sub := findSubcommand(cmd, provider)
		require.NotNil(t, sub, provider)
		assert.ElementsMatch(t, []string{"list", "get", "create", "update", "delete"}, subcommandNames(sub))

		create := findSubcommand(sub, "create")
		require.NotNil(t, create)
		assert.NotNil(t, create.Flags().Lookup("set"))
		assert.NotNil(t, create.Flags().Lookup("from-file"))
	}
}

func TestNewLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("skip-verify"))
	assert.NotNil(t, findSubcommand(cmd, "profiles"))

	logout := NewLogoutCommand()
	assert.Equal(t, "logout", logout.Use)
}

func TestVersionCommand(t *testing.T) {
	root := newTestRoot(t)

	output, err := execute(t, root, "version", "-o", "json")
	require.NoError(t, err)

	var info map[string]string
	decodeJSON(t, output, &info)
	assert.Equal(t, "test", info["version"])
	assert.Equal(t, "abc123", info["commit"])
}
