package ratelimiter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pixkit/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b, err := ratelimiter.NewBucket(cfg, ratelimiter.WithClock(clock.Now))
	require.NoError(t, err)
	return b, clock
}

func TestNewBucketValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{"zero rate", ratelimiter.Config{Burst: 1, MaxKeys: 1}},
		{"zero burst", ratelimiter.Config{RequestsPerSecond: 1, MaxKeys: 1}},
		{"zero keys", ratelimiter.Config{RequestsPerSecond: 1, Burst: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestBucketAllow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, clock := newBucket(t, ratelimiter.Config{RequestsPerSecond: 1, Burst: 3, MaxKeys: 10})

	for i := range 3 {
		res, err := b.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, res.Allowed(), "request %d", i)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := b.Allow(ctx, "a")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, time.Second, res.RetryAfter)

	t.Run("keys are independent", func(t *testing.T) {
		res, err := b.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("refills over time", func(t *testing.T) {
		clock.Advance(time.Second)
		res, err := b.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	})

	t.Run("rejection consumes nothing", func(t *testing.T) {
		res, err := b.Allow(ctx, "a")
		require.NoError(t, err)
		require.False(t, res.Allowed())
		clock.Advance(time.Second)
		assert.Equal(t, 1, b.Status(ctx, "a").Remaining)
	})

	t.Run("reset", func(t *testing.T) {
		b.Reset("a")
		assert.Equal(t, 3, b.Status(ctx, "a").Remaining)
	})
}

func TestBucketAllowN(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t, ratelimiter.Config{RequestsPerSecond: 1, Burst: 2, MaxKeys: 10})

	_, err := b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := b.AllowN(context.Background(), "k", 5)
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Allow(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBucketIdleKeysExpire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, clock := newBucket(t, ratelimiter.Config{
		RequestsPerSecond: 0.001,
		Burst:             1,
		MaxKeys:           10,
		IdleTTL:           time.Minute,
	})

	res, _ := b.Allow(ctx, "a")
	require.True(t, res.Allowed())
	res, _ = b.Allow(ctx, "a")
	require.False(t, res.Allowed())

	clock.Advance(2 * time.Minute)
	res, _ = b.Allow(ctx, "a")
	assert.True(t, res.Allowed())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	b, _ := newBucket(t, ratelimiter.Config{RequestsPerSecond: 1, Burst: 2, MaxKeys: 10})

	h := ratelimiter.Middleware(b, ratelimiter.ByIP)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/qrcode.png", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for range 2 {
		rec := do("192.0.2.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := do("192.0.2.1:5678")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, do("192.0.2.2:1234").Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	assert.Equal(t, "192.0.2.1:/payload", ratelimiter.Composite(ratelimiter.ByIP, ratelimiter.ByPath)(req))
	assert.Equal(t, "192.0.2.1", ratelimiter.Composite(ratelimiter.ByIP, func(*http.Request) string { return "" })(req))
	assert.Empty(t, ratelimiter.Composite()(req))

	long := ratelimiter.Composite(ratelimiter.ByIP, func(*http.Request) string { return strings.Repeat("x", 80) })(req)
	assert.LessOrEqual(t, len(long), 13)
}
