package pixhttp

import (
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/pixkit/pkg/emv"
	"github.com/dmitrymomot/pixkit/pkg/pix"
	"github.com/dmitrymomot/pixkit/pkg/ratelimiter"
)

// Config holds the merchant defaults served by the GET routes and the render
// settings. Query parameters override the payment fields per request.
type Config struct {
	KeyKind     pix.KeyKind     `env:"PIX_KEY_KIND" envDefault:"random"`
	Key         string          `env:"PIX_KEY,required"`
	SingleUse   bool            `env:"PIX_SINGLE_USE" envDefault:"false"`
	Description string          `env:"PIX_DESCRIPTION"`
	Amount      decimal.Decimal `env:"PIX_AMOUNT" envDefault:"0.01"`
	Beneficiary string          `env:"PIX_BENEFICIARY,required"`
	Identifier  string          `env:"PIX_IDENTIFIER" envDefault:"***"`
	City        string          `env:"PIX_CITY,required"`
	FieldOrder  emv.Order       `env:"PIX_FIELD_ORDER" envDefault:"sorted"`

	QRSize    int `env:"RENDER_QR_SIZE" envDefault:"256"`
	CacheSize int `env:"RENDER_CACHE_SIZE" envDefault:"512"`

	RateLimit ratelimiter.Config
}

func (c Config) payment() pix.Payment {
	return pix.Payment{
		KeyKind:     c.KeyKind,
		Key:         c.Key,
		SingleUse:   c.SingleUse,
		Description: c.Description,
		Beneficiary: c.Beneficiary,
		City:        c.City,
	}
}
