package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Rule allows Limit hits per sliding Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one limiter hit.
type Decision struct {
	Allowed bool
	// Remaining hits left in the current window.
	Remaining int
	// RetryAfter is zero when Allowed.
	RetryAfter time.Duration
}

// Limiter records a hit against key and decides whether it fits rule.
// Rejected hits do not consume the window.
type Limiter interface {
	Allow(ctx context.Context, key string, rule Rule) (Decision, error)
}

// ErrLimitExceeded indicates the rate limit has been reached for the key.
var ErrLimitExceeded = errors.New("rate limit exceeded")
