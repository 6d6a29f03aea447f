package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by a Store when the key is absent.
var ErrMiss = errors.New("cache: miss")

// Store is a shared byte cache, typically backed by Redis.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Layered serves values from an in-process LRU first, then from an optional
// shared Store, and finally computes them.
type Layered struct {
	local  *LRUCache[string, []byte]
	remote Store
	ttl    time.Duration
	onErr  func(error)
}

// LayeredOption configures a Layered cache.
type LayeredOption func(*Layered)

// WithRemote adds a shared Store behind the local LRU. Nil is ignored.
func WithRemote(s Store, ttl time.Duration) LayeredOption {
	return func(l *Layered) {
		if s != nil {
			l.remote = s
			l.ttl = ttl
		}
	}
}

// WithErrorHandler receives Store failures. They never fail a lookup.
func WithErrorHandler(fn func(error)) LayeredOption {
	return func(l *Layered) {
		if fn != nil {
			l.onErr = fn
		}
	}
}

// NewLayered creates a Layered cache whose local tier holds capacity entries.
func NewLayered(capacity int, opts ...LayeredOption) *Layered {
	l := &Layered{
		local: NewLRUCache[string, []byte](capacity),
		onErr: func(error) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source tells where GetOrCompute found a value.
type Source string

const (
	SourceLocal   Source = "local"
	SourceRemote  Source = "remote"
	SourceCompute Source = "compute"
)

// GetOrCompute returns the cached value for key or calls compute and stores
// its result in every tier. Errors from compute are returned unchanged and
// nothing is cached.
func (l *Layered) GetOrCompute(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, Source, error) {
	if v, ok := l.local.Get(key); ok {
		return v, SourceLocal, nil
	}

	if l.remote != nil {
		v, err := l.remote.Get(ctx, key)
		switch {
		case err == nil:
			l.local.Put(key, v)
			return v, SourceRemote, nil
		case !errors.Is(err, ErrMiss):
			l.onErr(err)
		}
	}

	v, err := compute()
	if err != nil {
		return nil, SourceCompute, err
	}
	l.local.Put(key, v)
	if l.remote != nil {
		if err := l.remote.Set(ctx, key, v, l.ttl); err != nil {
			l.onErr(err)
		}
	}
	return v, SourceCompute, nil
}

// Local exposes the in-process tier.
func (l *Layered) Local() *LRUCache[string, []byte] { return l.local }
