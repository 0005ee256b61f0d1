package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/campusnet/accounts/handler"
	"github.com/campusnet/accounts/pkg/logger"
)

const maxKeyLength = 64

// ErrTooManyRequests is rendered for rejected requests.
var ErrTooManyRequests = handler.NewHTTPError(http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")

// KeyFunc derives the bucket key of a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByIP keys on the client address reported by ip.
func ByIP(ip func(r *http.Request) string) KeyFunc {
	return func(r *http.Request) string { return ip(r) }
}

// ByPath keys on the route path, giving each endpoint its own bucket.
func ByPath(r *http.Request) string {
	return r.URL.Path
}

// Composite joins the non-empty keys of fns. Keys longer than 64 bytes
// are replaced by their FNV-1a hash.
func Composite(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		key := strings.Join(parts, ":")
		if len(key) > maxKeyLength {
			h := fnv.New64a()
			_, _ = h.Write([]byte(key))
			return strconv.FormatUint(h.Sum64(), 36)
		}
		return key
	}
}

type middlewareOptions struct {
	log *slog.Logger
	now func() time.Time
}

type MiddlewareOption func(*middlewareOptions)

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(o *middlewareOptions) { o.log = l }
}

// Middleware rejects requests whose bucket is empty with 429. Store
// failures let the request through and are logged.
func Middleware(limiter Limiter, key KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With(logger.Component("ratelimiter"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), k)
			if err != nil {
				log.ErrorContext(r.Context(), "rate limit check failed", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := res.RetryAfter(o.now())
				h.Set("Retry-After", strconv.Itoa(max(int(retry.Round(time.Second)/time.Second), 1)))
				log.WarnContext(r.Context(), "rate limited", slog.String("path", r.URL.Path))
				_ = handler.JSONError(ErrTooManyRequests).Render(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
