package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnet/accounts/pkg/ratelimiter"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	clk := newClock()
	store := ratelimiter.NewRedisStore(client,
		ratelimiter.WithKeyPrefix("test:"+uuid.NewString()+":"),
		ratelimiter.WithRedisClock(clk.Now),
	)
	bucket, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)

	for want := 2; want >= 0; want-- {
		res, err := bucket.Allow(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, want, res.Remaining)
	}

	res, err := bucket.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 10*time.Second, res.RetryAfter(clk.Now()))

	clk.Advance(10 * time.Second)
	res, err = bucket.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())

	require.NoError(t, bucket.Reset(ctx, "k"))
	res, err = bucket.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)

	t.Run("burst after idle", func(t *testing.T) {
		assert.Equal(t, 10, burstAfterIdle(t, store, clk))
	})
}
