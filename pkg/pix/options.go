package pix

import (
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/pixkit/pkg/emv"
	"github.com/dmitrymomot/pixkit/pkg/qrcode"
)

// DefaultAmount is used when no amount option is given.
var DefaultAmount = decimal.New(1, -2)

// Renderer turns an encoded payload into an image.
// When dataURI is true the result is a base64 data URI instead of raw bytes.
type Renderer interface {
	Render(payload string, dataURI bool) ([]byte, error)
}

type options struct {
	amount     decimal.Decimal
	identifier string
	order      emv.Order
	renderer   Renderer
}

func defaultOptions() options {
	return options{
		amount:     DefaultAmount,
		identifier: defaultIdentifier,
		order:      emv.OrderByID,
		renderer:   qrcode.NewRenderer(),
	}
}

// Option configures a Generator at construction time.
type Option func(*options)

// WithAmount sets the transaction amount.
func WithAmount(amount decimal.Decimal) Option {
	return func(o *options) {
		o.amount = amount
	}
}

// WithIdentifier sets the transaction identifier (txid). An empty value
// falls back to "***". Encoders that emit an empty "0500" entry instead
// produce a different payload for the same input.
func WithIdentifier(id string) Option {
	return func(o *options) {
		o.identifier = id
	}
}

// WithFieldOrder selects the order data objects are emitted in.
func WithFieldOrder(order emv.Order) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithRenderer replaces the default QR code renderer. Nil is ignored.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		if r != nil {
			o.renderer = r
		}
	}
}
