package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsClient_List(t *testing.T) {
	t.Parallel()

	httpClient, recorded := NewTestServer(t, http.StatusOK, []map[string]interface{}{
		{"number": 1, "service_id": "svc", "locked": true},
		{"number": 2, "service_id": "svc", "active": true},
	})

	versions, err := NewVersionsClient(httpClient).List(context.Background(), "svc")
	require.NoError(t, err)
	require.Len(t, versions, 2)

	assert.Equal(t, "/service/svc/version", recorded.Path)
	assert.True(t, versions[0].Locked)
	assert.True(t, versions[1].Active)

	_, err = NewVersionsClient(httpClient).List(context.Background(), "")
	require.ErrorIs(t, err, fastly.ErrMissingServiceID)
}

func TestVersionsClient_Get(t *testing.T) {
	t.Parallel()

	httpClient, recorded := NewTestServer(t, http.StatusOK, map[string]interface{}{
		"number":     "4",
		"service_id": "svc",
		"comment":    "staging",
	})

	version, err := NewVersionsClient(httpClient).Get(context.Background(), fastly.VersionTarget{
		ServiceID:      "svc",
		ServiceVersion: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, recorded.Method)
	assert.Equal(t, "/service/svc/version/4", recorded.Path)
	assert.Equal(t, 4, version.Number.Int())
	assert.Equal(t, "staging", version.Comment)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestVersionsClient_Actions(t *testing.T) {
	t.Parallel()

	target := fastly.VersionTarget{ServiceID: "svc", ServiceVersion: 2}

	tests := []struct {
		name   string
		path   string
		call   func(*VersionsClient) (*fastly.Version, error)
		errMsg string
	}{
		{
			name: "clone",
			path: "/service/svc/version/2/clone",
			call: func(c *VersionsClient) (*fastly.Version, error) {
				return c.Clone(context.Background(), target)
			},
			errMsg: "cloning version",
		},
		{
			name: "activate",
			path: "/service/svc/version/2/activate",
			call: func(c *VersionsClient) (*fastly.Version, error) {
				return c.Activate(context.Background(), target)
			},
			errMsg: "activating version",
		},
		{
			name: "deactivate",
			path: "/service/svc/version/2/deactivate",
			call: func(c *VersionsClient) (*fastly.Version, error) {
				return c.Deactivate(context.Background(), target)
			},
			errMsg: "deactivating version",
		},
		{
			name: "lock",
			path: "/service/svc/version/2/lock",
			call: func(c *VersionsClient) (*fastly.Version, error) {
				return c.Lock(context.Background(), target)
			},
			errMsg: "locking version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			httpClient, recorded := NewTestServer(t, http.StatusOK, map[string]interface{}{
				"number":     2,
				"service_id": "svc",
			})

			version, err := tt.call(NewVersionsClient(httpClient))
			require.NoError(t, err)

			assert.Equal(t, http.MethodPut, recorded.Method)
			assert.Equal(t, tt.path, recorded.Path)
			assert.Equal(t, 2, version.Number.Int())
		})

		t.Run(tt.name+" conflict", func(t *testing.T) {
			t.Parallel()

			httpClient, _ := NewTestServer(t, http.StatusConflict, map[string]interface{}{
				"msg": "Version is locked",
			})

			_, err := tt.call(NewVersionsClient(httpClient))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Contains(t, err.Error(), "Version is locked")
		})
	}
}

func TestVersionsClient_Validation(t *testing.T) {
	t.Parallel()

	versions := NewVersionsClient(nil)

	_, err := versions.Activate(context.Background(), fastly.VersionTarget{ServiceVersion: 1})
	require.ErrorIs(t, err, fastly.ErrMissingServiceID)

	_, err = versions.Clone(context.Background(), fastly.VersionTarget{ServiceID: "svc"})
	require.ErrorIs(t, err, fastly.ErrMissingServiceVersion)
}
