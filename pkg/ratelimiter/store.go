package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. ConsumeTokens must be atomic per key.
type Store interface {
	// ConsumeTokens takes tokens from the bucket at key and returns what is
	// left (negative if the bucket could not cover the request) and the
	// time of the next refill.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
