package ratelimiter

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/pixkit/pkg/cache"
)

// RateLimiter defines the interface for rate limiting implementations.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	AllowN(ctx context.Context, key string, n int) (*Result, error)
}

// Bucket keeps one golang.org/x/time/rate limiter per key. Buckets live in a
// bounded LRU cache, so idle or least recently used keys are dropped and
// start over with a full bucket.
type Bucket struct {
	mu      sync.Mutex
	buckets *cache.LRUCache[string, *rate.Limiter]
	config  Config
	now     func() time.Time
}

// Option configures a Bucket.
type Option func(*Bucket)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(b *Bucket) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBucket creates a new token bucket rate limiter.
func NewBucket(config Config, opts ...Option) (*Bucket, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	b := &Bucket{config: config, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}

	lruOpts := []cache.LRUOption[string, *rate.Limiter]{
		cache.WithClock[string, *rate.Limiter](b.now),
	}
	if config.IdleTTL > 0 {
		lruOpts = append(lruOpts, cache.WithTTL[string, *rate.Limiter](config.IdleTTL))
	}
	b.buckets = cache.NewLRUCache(config.MaxKeys, lruOpts...)
	return b, nil
}

func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	return b.AllowN(ctx, key, 1)
}

func (b *Bucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := b.now()
	lim := b.limiter(key)
	res := &Result{Limit: b.config.Burst}

	if lim.AllowN(now, n) {
		res.allowed = true
	} else {
		// A reservation tells how long the caller would have to wait; it is
		// cancelled right away so no tokens are consumed.
		r := lim.ReserveN(now, n)
		if r.OK() {
			res.RetryAfter = r.DelayFrom(now)
			r.CancelAt(now)
		} else {
			res.RetryAfter = time.Duration(math.MaxInt64)
		}
	}
	res.Remaining = max(0, int(lim.TokensAt(now)))
	return res, nil
}

// Status returns the current state without consuming tokens.
func (b *Bucket) Status(_ context.Context, key string) *Result {
	now := b.now()
	tokens := b.limiter(key).TokensAt(now)
	return &Result{
		Limit:     b.config.Burst,
		Remaining: max(0, int(tokens)),
		allowed:   tokens >= 1,
	}
}

// Reset forgets the bucket for key.
func (b *Bucket) Reset(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets.Remove(key)
}

func (b *Bucket) limiter(key string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()
	lim, ok := b.buckets.Get(key)
	if !ok {
		lim = rate.NewLimiter(rate.Limit(b.config.RequestsPerSecond), b.config.Burst)
	}
	// Put refreshes the idle deadline.
	b.buckets.Put(key, lim)
	return lim
}
