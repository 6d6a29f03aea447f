package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("redis: failed to parse connection string")
	ErrRedisNotReady                = errors.New("redis: server did not become ready in time")
	ErrEmptyConnectionURL           = errors.New("redis: empty connection URL")
	// ErrHealthcheckFailed is joined with the ping error by Healthcheck.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
