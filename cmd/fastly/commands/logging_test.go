package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInput_Sets(t *testing.T) {
	t.Parallel()

	target := fastly.VersionTarget{ServiceID: "svc", ServiceVersion: 2}
	input := &fastly.CreateSyslogInput{VersionTarget: target}

	err := buildInput("", []string{
		"address=logs.example.com",
		"port=514",
		"use_tls=true",
		"format=%h %l %u %t \"%r\" %>s %b",
		"format_version=2",
		"name=my-syslog",
	}, input)
	require.NoError(t, err)

	assert.Equal(t, target, input.VersionTarget)
	assert.Equal(t, "my-syslog", *input.Name)
	assert.Equal(t, "logs.example.com", *input.Address)
	assert.Equal(t, 514, *input.Port)
	assert.True(t, *input.UseTLS)
	assert.Equal(t, `%h %l %u %t "%r" %>s %b`, *input.Format)
	assert.Equal(t, 2, *input.FormatVersion)
	assert.Nil(t, input.Token)
}

func TestBuildInput_FileAndOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "spaces.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
bucket_name: my-logs
access_key: AKIA
secret_key: shh
domain: nyc3.digitaloceanspaces.com
period: 3600
`), 0o600))

	input := &fastly.UpdateDigitaloceanInput{
		EndpointTarget: fastly.EndpointTarget{ServiceID: "svc", ServiceVersion: 2, Name: "spaces"},
	}

	err := buildInput(path, []string{"period=60", "name=renamed", "path=/1.10/"}, input)
	require.NoError(t, err)

	assert.Equal(t, "spaces", input.Name)
	assert.Equal(t, "renamed", *input.NewName)
	assert.Equal(t, "my-logs", *input.BucketName)
	assert.Equal(t, "shh", *input.SecretKey)
	assert.Equal(t, 60, *input.Period)
	assert.Equal(t, "/1.10/", *input.Path)
}

func TestBuildInput_Errors(t *testing.T) {
	t.Parallel()

	err := buildInput("", []string{"no-equals-sign"}, &fastly.CreateHTTPSInput{})
	require.ErrorIs(t, err, constants.ErrInvalidSetFlag)

	err = buildInput("", []string{"=value"}, &fastly.CreateHTTPSInput{})
	require.ErrorIs(t, err, constants.ErrInvalidSetFlag)

	err = buildInput("", []string{"bucket_name=x"}, &fastly.CreateHTTPSInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket_name")

	err = buildInput("", []string{"port=not-a-number"}, &fastly.CreateSyslogInput{})
	require.Error(t, err)

	list := filepath.Join(t.TempDir(), "list.yml")
	require.NoError(t, os.WriteFile(list, []byte("- a\n- b\n"), 0o600))

	err = buildInput(list, nil, &fastly.CreateHTTPSInput{})
	require.ErrorIs(t, err, errNotAMapping)

	err = buildInput(filepath.Join(t.TempDir(), "missing.yml"), nil, &fastly.CreateHTTPSInput{})
	require.Error(t, err)
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	assert.Equal(t, constants.MaskedSecret, maskSecret("abc"))
	assert.Equal(t, "abcd"+constants.MaskedSecret, maskSecret("abcdefgh"))
	assert.True(t, isSecretField("secret_key"))
	assert.False(t, isSecretField("bucket_name"))
}
