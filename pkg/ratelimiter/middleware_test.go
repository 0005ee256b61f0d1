package ratelimiter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/handler"
	"github.com/campusnet/accounts/pkg/ratelimiter"
)

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, ratelimiter.ErrStoreUnavailable
}

func (failingStore) Reset(context.Context, string) error { return errors.New("unavailable") }

func remoteAddr(r *http.Request) string { return r.RemoteAddr }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	clk := newClock()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk.Now), ratelimiter.WithCleanupInterval(0))
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: 30 * time.Second})
	require.NoError(t, err)

	h := ratelimiter.Middleware(bucket, ratelimiter.ByIP(remoteAddr))(okHandler())

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/user/signin", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for range 2 {
		rec := send("10.0.0.1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := send("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body handler.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "rate_limited", body.Error.Code)

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2").Code)
}

func TestMiddleware_EmptyKeySkips(t *testing.T) {
	t.Parallel()

	h := ratelimiter.Middleware(ratelimiter.Limiter(nil), func(*http.Request) string { return "" })(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMiddleware_StoreFailureAllows(t *testing.T) {
	t.Parallel()

	bucket, err := ratelimiter.NewBucket(failingStore{}, testConfig)
	require.NoError(t, err)

	h := ratelimiter.Middleware(bucket, ratelimiter.ByPath)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/user/signin", nil)
	req.RemoteAddr = "10.0.0.1"

	key := ratelimiter.Composite(ratelimiter.ByIP(remoteAddr), ratelimiter.ByPath)(req)
	assert.Equal(t, "10.0.0.1:/api/user/signin", key)

	req.URL.Path = "/" + strings.Repeat("x", 100)
	hashed := ratelimiter.Composite(ratelimiter.ByIP(remoteAddr), ratelimiter.ByPath)(req)
	assert.NotEmpty(t, hashed)
	assert.LessOrEqual(t, len(hashed), 64)

	empty := ratelimiter.Composite(func(*http.Request) string { return "" })(req)
	assert.Empty(t, empty)
}
