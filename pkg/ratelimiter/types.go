package ratelimiter

import (
	"fmt"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	Limit      int           // Maximum tokens (bucket capacity)
	Remaining  int           // Whole tokens left after this request
	RetryAfter time.Duration // Wait before the next token, zero when allowed
	allowed    bool
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.allowed
}

// Config defines the per-key token bucket.
type Config struct {
	RequestsPerSecond float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`         // Sustained refill rate
	Burst             int           `env:"RATE_LIMIT_BURST" envDefault:"10"`      // Bucket capacity
	MaxKeys           int           `env:"RATE_LIMIT_MAX_KEYS" envDefault:"4096"` // Buckets kept in memory
	IdleTTL           time.Duration `env:"RATE_LIMIT_IDLE_TTL" envDefault:"10m"`  // Idle buckets are forgotten after this
}

func (c Config) validate() error {
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests per second must be positive, got %v", ErrInvalidConfig, c.RequestsPerSecond)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("%w: burst must be positive, got %d", ErrInvalidConfig, c.Burst)
	}
	if c.MaxKeys <= 0 {
		return fmt.Errorf("%w: max keys must be positive, got %d", ErrInvalidConfig, c.MaxKeys)
	}
	return nil
}
