// Package redis connects to Redis and stores rendered QR images there so that
// several HTTP replicas share one render cache.
//
// The package wraps github.com/redis/go-redis/v9 and adds:
//
//   - Connect, which retries the initial ping using Config.
//   - ImageStore, a cache.Store keyed by the SHA-256 of the payload.
//   - Healthcheck, a readiness probe for pkg/httpserver.
//
// Config is populated from REDIS_* environment variables through pkg/config.
// An empty REDIS_URL disables Redis and Config.Enabled reports false.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	images := cache.NewLayered(512,
//	    cache.WithRemote(redis.NewImageStore(client, cfg.KeyPrefix), cfg.ImageTTL))
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrHealthcheckFailed, ...) are joined with
// the underlying go-redis errors using errors.Join.
package redis
