// Package ratelimiter limits request rates per key with token buckets from
// golang.org/x/time/rate.
//
// A Bucket holds one rate.Limiter per key inside a bounded cache.LRUCache, so
// memory stays flat no matter how many clients show up. Keys unused for
// Config.IdleTTL are forgotten.
//
// # Basic Usage
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.Config{
//		RequestsPerSecond: 5,
//		Burst:             10,
//		MaxKeys:           4096,
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := limiter.Allow(ctx, "203.0.113.7")
//	if err == nil && !result.Allowed() {
//		// retry after result.RetryAfter
//	}
//
// # HTTP Middleware
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByIP)).Get("/qrcode.png", h)
//
// The middleware sets X-RateLimit-Limit and X-RateLimit-Remaining on every
// response and answers 429 with Retry-After once the bucket is empty.
// Composite joins several KeyFunc values, hashing long keys with FNV-1a.
package ratelimiter
