package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicesClient_List(t *testing.T) {
	t.Parallel()

	httpClient, recorded := NewTestServer(t, http.StatusOK, []map[string]interface{}{
		{"id": "SU1Z0isxPaozGVKXdv0eY", "name": "www.example.com", "version": 3},
		{"id": "7i6HN3TK9wS159v2gPAZ8A", "name": "api.example.com", "version": "1"},
	})

	services, err := NewServicesClient(httpClient).List(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 2)

	assert.Equal(t, http.MethodGet, recorded.Method)
	assert.Equal(t, "/service", recorded.Path)
	assert.Equal(t, "www.example.com", services[0].Name)
	assert.Equal(t, 3, services[0].Version.Int())
	assert.Equal(t, 1, services[1].Version.Int())
}

func TestServicesClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("escapes the service ID", func(t *testing.T) {
		t.Parallel()

		httpClient, recorded := NewTestServer(t, http.StatusOK, map[string]interface{}{
			"id":   "abc/def",
			"name": "escaped",
			"versions": []map[string]interface{}{
				{"number": 1, "active": false},
				{"number": 2, "active": true},
			},
		})

		service, err := NewServicesClient(httpClient).Get(context.Background(), "abc/def")
		require.NoError(t, err)

		assert.Equal(t, "/service/abc%2Fdef", recorded.EscapedPath)
		assert.Equal(t, 2, service.ActiveVersion())
	})

	t.Run("requires an ID", func(t *testing.T) {
		t.Parallel()

		_, err := NewServicesClient(nil).Get(context.Background(), "")
		require.ErrorIs(t, err, fastly.ErrMissingServiceID)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		httpClient, _ := NewTestServer(t, http.StatusNotFound, map[string]interface{}{
			"msg":    "Record not found",
			"detail": "Cannot find service 'missing'",
		})

		service, err := NewServicesClient(httpClient).Get(context.Background(), "missing")
		require.Error(t, err)
		assert.Nil(t, service)
		assert.True(t, fastly.IsNotFound(err))
		assert.Contains(t, err.Error(), "getting service")
		assert.Contains(t, err.Error(), "Cannot find service 'missing'")
	})

	t.Run("undecodable body", func(t *testing.T) {
		t.Parallel()

		httpClient, _ := NewTestServer(t, http.StatusOK, "<html>maintenance</html>")

		_, err := NewServicesClient(httpClient).Get(context.Background(), "abc")
		require.Error(t, err)

		decodeErr := &fastly.DecodeError{}
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, "<html>maintenance</html>", string(decodeErr.Body))
	})
}

func TestServicesClient_Search(t *testing.T) {
	t.Parallel()

	t.Run("sends the name as query", func(t *testing.T) {
		t.Parallel()

		httpClient, recorded := NewTestServer(t, http.StatusOK, map[string]interface{}{
			"id":   "SU1Z0isxPaozGVKXdv0eY",
			"name": "my service",
		})

		service, err := NewServicesClient(httpClient).Search(context.Background(), "my service")
		require.NoError(t, err)

		assert.Equal(t, "/service/search", recorded.Path)
		assert.Equal(t, "my service", recorded.Query.Get("name"))
		assert.Equal(t, "SU1Z0isxPaozGVKXdv0eY", service.ID)
	})

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		_, err := NewServicesClient(nil).Search(context.Background(), "")
		require.ErrorIs(t, err, constants.ErrEmptyServiceQuery)
	})
}
