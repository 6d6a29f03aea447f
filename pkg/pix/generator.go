package pix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/pixkit/pkg/crc16"
	"github.com/dmitrymomot/pixkit/pkg/emv"
	"github.com/dmitrymomot/pixkit/pkg/validator"
)

// Root data objects.
const (
	idPayloadFormat       emv.ID = 0
	idPointOfInitiation   emv.ID = 1
	idMerchantAccount     emv.ID = 26
	idMerchantCategory    emv.ID = 52
	idTransactionCurrency emv.ID = 53
	idTransactionAmount   emv.ID = 54
	idCountryCode         emv.ID = 58
	idMerchantName        emv.ID = 59
	idMerchantCity        emv.ID = 60
	idAdditionalData      emv.ID = 62
)

// Nested data objects.
const (
	idGUI            emv.ID = 0  // 26.00 and 62.50.00
	idKey            emv.ID = 1  // 26.01
	idDescription    emv.ID = 2  // 26.02
	idReferenceLabel emv.ID = 5  // 62.05
	idPaymentSystem  emv.ID = 50 // 62.50
	idVersion        emv.ID = 1  // 62.50.01
)

const (
	payloadFormat    = "01"
	singleUseMarker  = "12"
	pixGUI           = "BR.GOV.BCB.PIX"
	merchantCategory = "0000"
	currencyBRL      = "986"
	countryBR        = "BR"
	brcodeGUI        = "BR.GOV.BCB.BRCODE"
	brcodeVersion    = "1.0.0"

	// crcTag opens the trailing CRC data object: id 63, length 04.
	crcTag = "6304"
)

// Payment holds the mandatory fields of a payment request.
type Payment struct {
	KeyKind     KeyKind
	Key         string
	SingleUse   bool
	Description string
	Beneficiary string
	City        string
}

// Generator builds a static PIX payload.
type Generator struct {
	tree     *emv.Tree
	kind     KeyKind
	amount   decimal.Decimal
	renderer Renderer
	encoder  *emv.Encoder
}

// New creates a Generator for p. Construction is atomic: on error no
// Generator is returned.
func New(p Payment, opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := &Generator{
		tree:     emv.NewTree(o.order),
		renderer: o.renderer,
		encoder:  emv.NewEncoder(emv.WithLeafFormatter(idTransactionAmount, formatAmount)),
	}
	if err := g.seed(); err != nil {
		return nil, err
	}

	if err := g.SetKey(p.KeyKind, p.Key); err != nil {
		return nil, err
	}
	g.SetSingleUse(p.SingleUse)
	if err := g.SetDescription(p.Description); err != nil {
		return nil, err
	}
	if err := g.SetAmount(o.amount); err != nil {
		return nil, err
	}
	if err := g.SetBeneficiary(p.Beneficiary); err != nil {
		return nil, err
	}
	if err := g.SetIdentifier(o.identifier); err != nil {
		return nil, err
	}
	if err := g.SetCity(p.City); err != nil {
		return nil, err
	}
	return g, nil
}

// seed writes the data objects whose content is fixed by the BR Code format.
func (g *Generator) seed() error {
	return g.update(func(t *emv.Tree) error {
		if err := t.SetLeaf(idPayloadFormat, payloadFormat); err != nil {
			return err
		}
		account, err := t.Group(idMerchantAccount)
		if err != nil {
			return err
		}
		if err := account.SetLeaf(idGUI, pixGUI); err != nil {
			return err
		}
		for _, f := range []struct {
			id   emv.ID
			text string
		}{
			{idMerchantCategory, merchantCategory},
			{idTransactionCurrency, currencyBRL},
			{idCountryCode, countryBR},
		} {
			if err := t.SetLeaf(f.id, f.text); err != nil {
				return err
			}
		}
		additional, err := t.Group(idAdditionalData)
		if err != nil {
			return err
		}
		system, err := additional.Group(idPaymentSystem)
		if err != nil {
			return err
		}
		if err := system.SetLeaf(idGUI, brcodeGUI); err != nil {
			return err
		}
		return system.SetLeaf(idVersion, brcodeVersion)
	})
}

// update applies fn to a copy of the payload and keeps the copy only when fn
// succeeds.
func (g *Generator) update(fn func(t *emv.Tree) error) error {
	next := g.tree.Clone()
	if err := fn(next); err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	g.tree = next
	return nil
}

// setNested assigns text to a leaf inside the group at group.
func (g *Generator) setNested(group, id emv.ID, text string) error {
	return g.update(func(t *emv.Tree) error {
		sub, err := t.Group(group)
		if err != nil {
			return err
		}
		return sub.SetLeaf(id, text)
	})
}

// SetKey validates and stores the receiver's PIX key.
func (g *Generator) SetKey(kind KeyKind, key string) error {
	normalized, err := NormalizeKey(kind, key)
	if err != nil {
		return err
	}
	if err := g.setNested(idMerchantAccount, idKey, normalized); err != nil {
		return err
	}
	g.kind = kind
	return nil
}

// SetSingleUse marks the payload as valid for one payment only.
func (g *Generator) SetSingleUse(singleUse bool) {
	if singleUse {
		_ = g.tree.SetLeaf(idPointOfInitiation, singleUseMarker)
		return
	}
	g.tree.Delete(idPointOfInitiation)
}

// SetDescription sets the free text shown to the payer. An empty description
// removes field 26.02. Encoders that emit an empty "0200" entry instead
// produce a different payload and checksum for the same input.
func (g *Generator) SetDescription(description string) error {
	normalized, err := normalizeDescription(description)
	if err != nil {
		return err
	}
	if normalized == "" {
		return g.update(func(t *emv.Tree) error {
			account, err := t.Group(idMerchantAccount)
			if err != nil {
				return err
			}
			account.Delete(idDescription)
			return nil
		})
	}
	return g.setNested(idMerchantAccount, idDescription, normalized)
}

// SetAmount sets the transaction amount. The amount is rounded to two
// decimal places.
func (g *Generator) SetAmount(amount decimal.Decimal) error {
	if err := validator.Apply(validator.NonNegativeDecimal(FieldAmount, amount)); err != nil {
		return errors.Join(ErrInvalidAmount, err)
	}
	formatted := amount.StringFixed(2)
	if err := validator.Apply(validator.MaxLenString(FieldAmount, formatted, maxAmountLength)); err != nil {
		return errors.Join(ErrFieldTooLong, err)
	}
	if err := g.update(func(t *emv.Tree) error {
		return t.SetLeaf(idTransactionAmount, formatted)
	}); err != nil {
		return err
	}
	g.amount = amount.Round(2)
	return nil
}

// SetBeneficiary sets the merchant name, stored without accents in upper case.
func (g *Generator) SetBeneficiary(name string) error {
	normalized, err := normalizeRequiredName(FieldBeneficiary, name, maxBeneficiaryLength)
	if err != nil {
		return err
	}
	return g.update(func(t *emv.Tree) error {
		return t.SetLeaf(idMerchantName, normalized)
	})
}

// SetIdentifier sets the transaction identifier. Empty means "***", not an
// empty "0500" entry as some encoders emit.
func (g *Generator) SetIdentifier(id string) error {
	normalized, err := normalizeIdentifier(id)
	if err != nil {
		return err
	}
	return g.setNested(idAdditionalData, idReferenceLabel, normalized)
}

// SetCity sets the merchant city, stored without accents in upper case.
func (g *Generator) SetCity(city string) error {
	normalized, err := normalizeRequiredName(FieldCity, city, maxCityLength)
	if err != nil {
		return err
	}
	return g.update(func(t *emv.Tree) error {
		return t.SetLeaf(idMerchantCity, normalized)
	})
}

// KeyKind returns the kind of the stored PIX key.
func (g *Generator) KeyKind() KeyKind { return g.kind }

// Key returns the PIX key in its normalized form.
func (g *Generator) Key() string { return g.nested(idMerchantAccount, idKey) }

// SingleUse reports whether the payload is marked for a single payment.
func (g *Generator) SingleUse() bool { return g.tree.Has(idPointOfInitiation) }

// Description returns the normalized description, or "" when none is set.
func (g *Generator) Description() string { return g.nested(idMerchantAccount, idDescription) }

// Amount returns the transaction amount rounded to two decimal places.
func (g *Generator) Amount() decimal.Decimal { return g.amount }

// Beneficiary returns the merchant name as encoded: upper case, no accents.
func (g *Generator) Beneficiary() string { return g.leaf(idMerchantName) }

// Identifier returns the transaction identifier, "***" when none was given.
func (g *Generator) Identifier() string { return g.nested(idAdditionalData, idReferenceLabel) }

// City returns the merchant city as encoded: upper case, no accents.
func (g *Generator) City() string { return g.leaf(idMerchantCity) }

// Order returns the field order the payload is encoded in.
func (g *Generator) Order() emv.Order { return g.tree.Order() }

func (g *Generator) leaf(id emv.ID) string {
	v, _ := g.tree.Get(id)
	return v.Text()
}

func (g *Generator) nested(group, id emv.ID) string {
	v, ok := g.tree.Get(group)
	if !ok || !v.IsGroup() {
		return ""
	}
	leaf, _ := v.Tree().Get(id)
	return leaf.Text()
}

// Encode returns the BR Code payload: the TLV-encoded data objects followed
// by the CRC16 data object. Encode does not modify the Generator.
func (g *Generator) Encode() (string, error) {
	body, err := g.encoder.Encode(g.tree)
	if err != nil {
		return "", errors.Join(ErrInvalidPayload, err, overflowError(err))
	}
	body += crcTag
	return body + crc16.String(body), nil
}

// Render encodes the payload and passes it to the configured Renderer.
// Renderer errors are returned unchanged.
func (g *Generator) Render(dataURI bool) ([]byte, error) {
	payload, err := g.Encode()
	if err != nil {
		return nil, err
	}
	return g.renderer.Render(payload, dataURI)
}

// String implements fmt.Stringer. It returns "" when the payload cannot be encoded.
func (g *Generator) String() string {
	payload, err := g.Encode()
	if err != nil {
		return ""
	}
	return payload
}

// VerifyChecksum reports whether payload ends with a CRC data object whose
// value matches the checksum of everything before it.
func VerifyChecksum(payload string) bool {
	n := len(payload)
	if n < len(crcTag)+crc16.Size*2 {
		return false
	}
	sum := n - crc16.Size*2
	if payload[sum-len(crcTag):sum] != crcTag {
		return false
	}
	return crc16.String(payload[:sum]) == payload[sum:]
}

// overflowError reports an encoded data object over the TLV limit against
// the input field that controls its size. It returns nil for other errors.
func overflowError(err error) error {
	var lenErr *emv.LengthError
	if !errors.As(err, &lenErr) {
		return nil
	}
	field := FieldPayload
	switch {
	case lenErr.Path == idMerchantAccount.String() || strings.HasPrefix(lenErr.Path, idMerchantAccount.String()+"."):
		field = FieldDescription
	case lenErr.Path == idAdditionalData.String() || strings.HasPrefix(lenErr.Path, idAdditionalData.String()+"."):
		field = FieldIdentifier
	}
	return validator.NewError(field,
		fmt.Sprintf("data object %s would be %d characters long, limit is %d", lenErr.Path, lenErr.Length, emv.MaxLength),
		"validation.payload_too_long",
		map[string]any{"path": lenErr.Path, "len": lenErr.Length, "max": emv.MaxLength})
}

func formatAmount(content string) (string, error) {
	d, err := decimal.NewFromString(content)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, content)
	}
	return d.StringFixed(2), nil
}
