package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
)

// parseRateLimit reads the quota headers. Absent or malformed values fall
// back to the defaults.
func (c *Client) parseRateLimit(header http.Header) fastly.RateLimit {
	limit := fastly.DefaultRateLimitState()

	if raw := strings.TrimSpace(header.Get(constants.HeaderRateLimitRemaining)); raw != "" {
		remaining, err := strconv.Atoi(raw)
		if err != nil {
			c.warnMalformed(constants.HeaderRateLimitRemaining, raw)
		} else {
			limit.Remaining = remaining
		}
	}

	if raw := strings.TrimSpace(header.Get(constants.HeaderRateLimitReset)); raw != "" {
		reset, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.warnMalformed(constants.HeaderRateLimitReset, raw)
		} else {
			limit.Reset = reset
		}
	}

	return limit
}

func (c *Client) warnMalformed(header, value string) {
	if c.logger == nil {
		return
	}

	c.logger.Warn("Malformed rate limit header", map[string]interface{}{
		"header": header,
		"value":  value,
	})
}
