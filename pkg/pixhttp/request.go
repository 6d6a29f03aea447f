package pixhttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/pixkit/pkg/emv"
	"github.com/dmitrymomot/pixkit/pkg/pix"
	"github.com/dmitrymomot/pixkit/pkg/validator"
)

// maxBodySize bounds POST /api/payloads request bodies.
const maxBodySize = 16 << 10

// Query parameters accepted by the GET routes.
const (
	paramAmount      = "amount"
	paramDescription = "description"
	paramIdentifier  = "identifier"
	paramSingleUse   = "single_use"
)

type paymentRequest struct {
	KeyKind     pix.KeyKind      `json:"key_kind"`
	Key         string           `json:"key"`
	SingleUse   bool             `json:"single_use"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Beneficiary string           `json:"beneficiary"`
	Identifier  string           `json:"identifier"`
	City        string           `json:"city"`
	FieldOrder  emv.Order        `json:"field_order"`
}

func (h *handler) baseOptions() []pix.Option {
	return []pix.Option{
		pix.WithAmount(h.cfg.Amount),
		pix.WithIdentifier(h.cfg.Identifier),
		pix.WithFieldOrder(h.cfg.FieldOrder),
		pix.WithRenderer(h.renderer),
	}
}

// checkDefaults builds and encodes the merchant defaults served by the GET routes.
func (h *handler) checkDefaults() error {
	g, err := pix.New(h.cfg.payment(), h.baseOptions()...)
	if err != nil {
		return err
	}
	_, err = g.Encode()
	return err
}

// generatorFromQuery applies query overrides on top of the merchant defaults.
func (h *handler) generatorFromQuery(r *http.Request) (*pix.Generator, error) {
	q := r.URL.Query()
	p := h.cfg.payment()
	opts := h.baseOptions()

	if q.Has(paramAmount) {
		amount, err := decimal.NewFromString(q.Get(paramAmount))
		if err != nil {
			return nil, errors.Join(pix.ErrInvalidAmount,
				validator.NewError(pix.FieldAmount, "must be a decimal number", "validation.numeric", nil))
		}
		opts = append(opts, pix.WithAmount(amount))
	}
	if q.Has(paramDescription) {
		p.Description = q.Get(paramDescription)
	}
	if q.Has(paramIdentifier) {
		opts = append(opts, pix.WithIdentifier(q.Get(paramIdentifier)))
	}
	if q.Has(paramSingleUse) {
		singleUse, err := strconv.ParseBool(q.Get(paramSingleUse))
		if err != nil {
			return nil, errors.Join(ErrInvalidRequest,
				validator.NewError(paramSingleUse, "must be a boolean", "validation.boolean", nil))
		}
		p.SingleUse = singleUse
	}

	return pix.New(p, opts...)
}

// generatorFromBody builds a payment from a JSON request. Absent amount and
// identifier fall back to the package defaults, not the merchant defaults.
func (h *handler) generatorFromBody(w http.ResponseWriter, r *http.Request) (*pix.Generator, error) {
	var req paymentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, pix.ErrInvalidKeyKind) {
			return nil, err
		}
		return nil, errors.Join(ErrInvalidRequest, err)
	}

	opts := []pix.Option{
		pix.WithIdentifier(req.Identifier),
		pix.WithFieldOrder(req.FieldOrder),
		pix.WithRenderer(h.renderer),
	}
	if req.Amount != nil {
		opts = append(opts, pix.WithAmount(*req.Amount))
	}

	return pix.New(pix.Payment{
		KeyKind:     req.KeyKind,
		Key:         req.Key,
		SingleUse:   req.SingleUse,
		Description: req.Description,
		Beneficiary: req.Beneficiary,
		City:        req.City,
	}, opts...)
}
