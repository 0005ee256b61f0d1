// Package redis connects to the optional Redis server used for shared
// rate limit buckets.
//
//	if cfg.Redis.Enabled() {
//		client, err := redis.Connect(ctx, cfg.Redis)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//		store = ratelimiter.NewRedisStore(client)
//	}
//
// Errors returned by Connect and Healthcheck wrap the driver error with
// errors.Join, so both the sentinel and the cause match errors.Is.
package redis
