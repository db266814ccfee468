package fastly

import (
	"time"

	"github.com/fivetwenty-io/fastly/internal/constants"
)

// DefaultRateLimit is the remaining quota assumed when Fastly does not report one.
const DefaultRateLimit = constants.DefaultRateLimit

// RateLimit is the write quota reported by the last non-GET/HEAD response.
type RateLimit struct {
	// Remaining is the number of write calls left in the current window.
	Remaining int `json:"remaining" yaml:"remaining"`
	// Reset is the Unix time, in seconds, at which the window resets. Zero
	// means unknown.
	Reset int64 `json:"reset" yaml:"reset"`
}

// DefaultRateLimitState returns the quota a client starts with.
func DefaultRateLimitState() RateLimit {
	return RateLimit{
		Remaining: constants.DefaultRateLimit,
		Reset:     constants.DefaultRateLimitReset,
	}
}

// ResetTime returns Reset as a time.Time. The zero time is returned when
// Reset is unknown.
func (r RateLimit) ResetTime() time.Time {
	if r.Reset <= 0 {
		return time.Time{}
	}

	return time.Unix(r.Reset, 0)
}

// Exhausted reports whether the quota is used up and has not reset yet.
func (r RateLimit) Exhausted(now time.Time) bool {
	if r.Remaining > 0 {
		return false
	}

	reset := r.ResetTime()

	return !reset.IsZero() && now.Before(reset)
}
