package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/pixkit/pkg/cache"
)

// ImageStore keeps rendered QR images in Redis. It implements cache.Store.
// Keys are the prefix followed by the SHA-256 of the cache key, so payloads
// of any length map to fixed-size Redis keys.
type ImageStore struct {
	db     redis.UniversalClient
	prefix string
}

// NewImageStore wraps client. Every key is namespaced with prefix.
func NewImageStore(client redis.UniversalClient, prefix string) *ImageStore {
	return &ImageStore{db: client, prefix: prefix}
}

// Key returns the Redis key used for k.
func (s *ImageStore) Key(k string) string {
	sum := sha256.Sum256([]byte(k))
	return s.prefix + hex.EncodeToString(sum[:])
}

// Get returns cache.ErrMiss for absent keys.
func (s *ImageStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.db.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrMiss
	}
	return val, err
}

// Set stores value with expiration. Zero ttl means no expiration. Empty values
// are not stored.
func (s *ImageStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if len(value) == 0 {
		return nil
	}
	return s.db.Set(ctx, s.Key(key), value, ttl).Err()
}

// Delete removes the image stored for key.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	return s.db.Del(ctx, s.Key(key)).Err()
}
