package fastly_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

func TestZerologLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := fastly.NewZerologLogger(zerolog.New(&buf))
	logger.Warn("Malformed rate limit header", map[string]interface{}{
		"header": "Fastly-RateLimit-Remaining",
		"value":  "lots",
	})

	var entry map[string]interface{}

	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Malformed rate limit header", entry["message"])
	assert.Equal(t, "lots", entry["value"])
}

func TestNewConsoleLogger_Levels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer

	logger := fastly.NewConsoleLogger(&quiet, false)
	logger.Debug("HTTP Request", nil)
	assert.Empty(t, quiet.String())

	logger.Error("HTTP Response", map[string]interface{}{"status": 500})
	assert.Contains(t, quiet.String(), "HTTP Response")

	var verbose bytes.Buffer

	logger = fastly.NewConsoleLogger(&verbose, true)
	logger.Debug("HTTP Request", nil)
	assert.Contains(t, verbose.String(), "HTTP Request")
}
