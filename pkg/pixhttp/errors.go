package pixhttp

import "errors"

var (
	ErrInvalidConfig  = errors.New("pixhttp: invalid configuration")
	ErrInvalidRequest = errors.New("pixhttp: invalid request")
)
