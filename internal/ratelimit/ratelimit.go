// Package ratelimit bounds how often a client may submit leads.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of a single Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is how long the client should wait; zero when allowed.
	RetryAfter time.Duration
}

// Limiter decides whether the client identified by key may proceed.
// Allowed calls are counted against the key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
