// Package ratelimiter implements token bucket rate limiting with pluggable
// storage and an HTTP middleware.
//
// A Bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request consumes one token; once the bucket is empty
// requests are rejected until the next refill. Bucket state lives in a
// Store: MemoryStore for a single process, RedisStore when several
// instances must share limits.
//
//	bucket, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByIP(resolver.IP))).Post("/signin", signIn)
//
// Rejected requests get 429 with a JSON error body and a Retry-After header.
package ratelimiter
