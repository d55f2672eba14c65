package llm

import (
	"time"

	"golang.org/x/time/rate"
)

// newRateLimiter paces requests to requestsPerMinute. Zero or negative means
// unlimited and returns nil.
func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}
