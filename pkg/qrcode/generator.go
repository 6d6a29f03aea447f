package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrorFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrorFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

const (
	// DefaultSize is the image width and height in pixels used when no size is specified.
	DefaultSize = 256

	dataURIPrefix = "data:image/png;base64,"
)

// RecoveryLevel is the error correction level of the generated symbol.
type RecoveryLevel = skipqrcode.RecoveryLevel

// Error correction levels, from 7% to 30% recovery capacity.
const (
	Low     = skipqrcode.Low
	Medium  = skipqrcode.Medium
	High    = skipqrcode.High
	Highest = skipqrcode.Highest
)

// Renderer produces PNG QR codes with a fixed size and recovery level.
// A Renderer is immutable and safe for concurrent use.
type Renderer struct {
	size  int
	level RecoveryLevel
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels. Non-positive values keep DefaultSize.
func WithSize(size int) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.size = size
		}
	}
}

// WithRecoveryLevel sets the error correction level.
func WithRecoveryLevel(level RecoveryLevel) Option {
	return func(r *Renderer) {
		r.level = level
	}
}

// NewRenderer returns a Renderer producing DefaultSize images at Medium recovery.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{size: DefaultSize, level: Medium}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the configured image size in pixels.
func (r *Renderer) Size() int { return r.size }

// Render encodes content as a PNG image. With dataURI set, the PNG is returned
// as a base64 data URI ready for an <img src> attribute.
func (r *Renderer) Render(content string, dataURI bool) ([]byte, error) {
	png, err := r.png(content)
	if err != nil {
		return nil, err
	}
	if !dataURI {
		return png, nil
	}
	return encodeDataURI(png), nil
}

func (r *Renderer) png(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	png, err := skipqrcode.Encode(content, r.level, r.size)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return png, nil
}

// DataURI wraps an already rendered PNG as a base64 data URI.
func DataURI(png []byte) string {
	return string(encodeDataURI(png))
}

func encodeDataURI(png []byte) []byte {
	out := make([]byte, len(dataURIPrefix)+base64.StdEncoding.EncodedLen(len(png)))
	n := copy(out, dataURIPrefix)
	base64.StdEncoding.Encode(out[n:], png)
	return out
}
