package fastly_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    fastly.FlexInt
		wantErr bool
	}{
		{name: "number", input: `2`, want: 2},
		{name: "quoted number", input: `"2"`, want: 2},
		{name: "empty string", input: `""`, want: 0},
		{name: "null keeps zero", input: `null`, want: 0},
		{name: "negative", input: `-1`, want: -1},
		{name: "word", input: `"two"`, wantErr: true},
		{name: "float", input: `1.5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got fastly.FlexInt

			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.ErrorIs(t, err, fastly.ErrInvalidFlexInt)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggingDigitalocean_Decode(t *testing.T) {
	t.Parallel()

	body := `{
		"name": "test-log-endpoint",
		"service_id": "SU1Z0isxPaozGVKXdv0eY",
		"version": "1",
		"placement": "none",
		"format": "%h %l %u %t \"%r\" %>s %b",
		"format_version": "2",
		"message_type": "classic",
		"period": "3600",
		"gzip_level": "0",
		"bucket_name": "my-logs",
		"domain": "nyc3.digitaloceanspaces.com",
		"created_at": "2023-01-02T15:04:05Z",
		"deleted_at": null
	}`

	var endpoint fastly.LoggingDigitalocean

	err := json.Unmarshal([]byte(body), &endpoint)
	require.NoError(t, err)

	assert.Equal(t, "test-log-endpoint", endpoint.Name)
	assert.Equal(t, 1, endpoint.Version.Int())
	assert.Equal(t, 2, endpoint.FormatVersion.Int())
	assert.Equal(t, 3600, endpoint.Period.Int())
	require.NotNil(t, endpoint.GzipLevel)
	assert.Equal(t, 0, endpoint.GzipLevel.Int())
	assert.Equal(t, "my-logs", endpoint.BucketName)
	require.NotNil(t, endpoint.CreatedAt)
	assert.Equal(t, 2023, endpoint.CreatedAt.Year())
	assert.Nil(t, endpoint.DeletedAt)
}

func TestService_ActiveVersion(t *testing.T) {
	t.Parallel()

	service := &fastly.Service{
		Versions: []*fastly.Version{
			{Number: 1, Active: false},
			{Number: 2, Active: true},
			{Number: 3, Active: false},
		},
	}
	assert.Equal(t, 2, service.ActiveVersion())

	assert.Equal(t, 0, (&fastly.Service{}).ActiveVersion())
}

func TestTargets_Validate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, fastly.VersionTarget{ServiceVersion: 1}.Validate(), fastly.ErrMissingServiceID)
	require.ErrorIs(t, fastly.VersionTarget{ServiceID: "abc"}.Validate(), fastly.ErrMissingServiceVersion)
	require.NoError(t, fastly.VersionTarget{ServiceID: "abc", ServiceVersion: 1}.Validate())

	target := fastly.EndpointTarget{ServiceID: "abc", ServiceVersion: 1}
	require.ErrorIs(t, target.Validate(), fastly.ErrMissingName)

	target.Name = "origin-check"
	require.NoError(t, target.Validate())
	assert.Equal(t, fastly.VersionTarget{ServiceID: "abc", ServiceVersion: 1}, target.Target())
	assert.Equal(t, "origin-check", target.EndpointName())
}

func TestInputs_TargetsAreNotSerialized(t *testing.T) {
	t.Parallel()

	input := &fastly.CreateDigitaloceanInput{
		VersionTarget: fastly.VersionTarget{ServiceID: "abc", ServiceVersion: 3},
		Name:          fastly.String("test-log-endpoint"),
	}

	data, err := json.Marshal(input)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "test-log-endpoint", fields["Name"])
	assert.NotContains(t, fields, "ServiceID")
	assert.NotContains(t, fields, "ServiceVersion")

	var targeted fastly.TargetedInput = input
	assert.Equal(t, 3, targeted.Target().ServiceVersion)
}

func TestDeleteResponse_OK(t *testing.T) {
	t.Parallel()

	assert.True(t, (&fastly.DeleteResponse{Status: "ok"}).OK())
	assert.False(t, (&fastly.DeleteResponse{Status: "error"}).OK())

	var missing *fastly.DeleteResponse
	assert.False(t, missing.OK())
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	state := fastly.DefaultRateLimitState()
	assert.Equal(t, fastly.DefaultRateLimit, state.Remaining)
	assert.Equal(t, int64(0), state.Reset)
	assert.True(t, state.ResetTime().IsZero())
	assert.False(t, state.Exhausted(time.Now()))

	now := time.Unix(1700000000, 0)

	exhausted := fastly.RateLimit{Remaining: 0, Reset: now.Add(time.Minute).Unix()}
	assert.True(t, exhausted.Exhausted(now))
	assert.False(t, exhausted.Exhausted(now.Add(2*time.Minute)))

	unknownReset := fastly.RateLimit{Remaining: 0}
	assert.False(t, unknownReset.Exhausted(now))
}

func TestAPIKey_HeaderValue(t *testing.T) {
	t.Parallel()

	var missing *fastly.APIKey
	assert.Empty(t, missing.HeaderValue())
	assert.Empty(t, (&fastly.APIKey{}).HeaderValue())
	assert.Equal(t, "secret", (&fastly.APIKey{Key: "secret"}).HeaderValue())
	assert.Equal(t, "Bearer secret", (&fastly.APIKey{Key: "secret", Prefix: "Bearer"}).HeaderValue())
}
