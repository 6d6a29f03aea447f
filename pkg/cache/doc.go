// Package cache holds rendered QR images close to the HTTP handlers.
//
// LRUCache is a generic, thread-safe LRU with optional expiry, hit/miss
// counters and an eviction callback. Layered puts an LRUCache in front of an
// optional shared Store (see pkg/redis.ImageStore) so replicas reuse each
// other's renders:
//
//	images := cache.NewLayered(512,
//	    cache.WithRemote(redis.NewImageStore(client, "pix:qr:"), time.Hour),
//	    cache.WithErrorHandler(func(err error) { log.Warn("cache", logger.Error(err)) }),
//	)
//	png, source, err := images.GetOrCompute(ctx, payload, func() ([]byte, error) {
//	    return gen.Render(false)
//	})
//
// Store failures are reported to the error handler and never fail a lookup.
// Get, Put and Remove are O(1).
package cache
