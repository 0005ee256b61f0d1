package ratelimiter

import "time"

// Result is the outcome of one consume call.
type Result struct {
	Limit     int
	Remaining int // negative when the request was rejected
	ResetAt   time.Time
}

func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed requests.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"6s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return ErrInvalidConfig
	case c.RefillRate <= 0:
		return ErrInvalidConfig
	case c.RefillInterval <= 0:
		return ErrInvalidConfig
	}
	return nil
}

// refill returns the token count after the intervals elapsed since
// lastRefill, and the new refill timestamp.
func (c Config) refill(tokens int, lastRefill, now time.Time) (int, time.Time) {
	intervals := int64(now.Sub(lastRefill) / c.RefillInterval)
	if intervals <= 0 {
		return tokens, lastRefill
	}
	// Past this many intervals the bucket is full; restart the clock at now
	// so later calls do not refill again from a stale timestamp.
	if bound := int64(c.Capacity/c.RefillRate + 1); intervals >= bound {
		return c.Capacity, now
	}
	tokens = min(tokens+int(intervals)*c.RefillRate, c.Capacity)
	return tokens, lastRefill.Add(time.Duration(intervals) * c.RefillInterval)
}
