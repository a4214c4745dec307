package ratelimit

import "time"

// Window is a single sliding-window rule, typically taken from the
// registration_rate_limit setting.
type Window struct {
	Duration time.Duration
	Max      int
}

// RateLimiter enforces sliding-window request limits.
type RateLimiter interface {
	Allow(key string, window Window) (bool, error)
	GetRemaining(key string, window Window) (int64, error)
	Reset(key string) error
}
