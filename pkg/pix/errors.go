package pix

import "errors"

var (
	ErrInvalidKeyKind   = errors.New("pix: invalid key kind")
	ErrEmptyKey         = errors.New("pix: key is required")
	ErrInvalidKeyLength = errors.New("pix: key has invalid length")
	ErrFieldTooLong     = errors.New("pix: field exceeds maximum length")
	ErrFieldRequired    = errors.New("pix: field is required")
	ErrInvalidAmount    = errors.New("pix: invalid amount")
	ErrInvalidPayload   = errors.New("pix: invalid payload")
)
