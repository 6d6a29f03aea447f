package pix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/pixkit/pkg/emv"
	"github.com/dmitrymomot/pixkit/pkg/sanitizer"
	"github.com/dmitrymomot/pixkit/pkg/validator"
)

// Field names used in validation errors.
const (
	FieldKey         = "key"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldBeneficiary = "beneficiary"
	FieldIdentifier  = "identifier"
	FieldCity        = "city"

	// FieldPayload is reported when the encoded payload as a whole is invalid.
	FieldPayload = "payload"
)

const (
	cpfLength       = 11
	cnpjLength      = 14
	randomKeyLength = 36
	maxEmailLength  = 77

	minPhoneDigits = 10
	maxPhoneDigits = 11
	countryCode    = "55"

	maxDescriptionLength = emv.MaxLength
	maxAmountLength      = 12
	maxBeneficiaryLength = 25
	maxIdentifierLength  = 36
	maxCityLength        = 15

	defaultIdentifier = "***"
)

var (
	normalizeName = sanitizer.Compose(sanitizer.SingleLine, sanitizer.RemoveAccents, sanitizer.ToUpper)
	digitsOnly    = sanitizer.Compose(sanitizer.ToLower, sanitizer.KeepDigits)
)

// NormalizeKey returns the canonical form of raw for the given kind, or an
// error joining ErrInvalidKeyKind, ErrEmptyKey or ErrInvalidKeyLength with the
// field-level validation errors.
//
// Document and phone keys keep only their digits. Phone keys accept ten or
// eleven digits, optionally prefixed by the 55 country code, and are returned
// as "+55" followed by the digits. E-mail and random keys are lower-cased.
func NormalizeKey(kind KeyKind, raw string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidKeyKind, kind)
	}

	var (
		key  string
		rule validator.Rule
	)
	switch kind {
	case KeyCPF:
		key = digitsOnly(raw)
		rule = validator.LenString(FieldKey, key, cpfLength)
	case KeyCNPJ:
		key = digitsOnly(raw)
		rule = validator.LenString(FieldKey, key, cnpjLength)
	case KeyPhone:
		key = digitsOnly(raw)
		if len(key) > maxPhoneDigits && strings.HasPrefix(key, countryCode) {
			key = strings.TrimPrefix(key, countryCode)
		}
		rule = validator.LenBetweenString(FieldKey, key, minPhoneDigits, maxPhoneDigits)
	case KeyEmail:
		key = sanitizer.Apply(raw, sanitizer.Trim, sanitizer.ToLower)
		rule = validator.MaxLenString(FieldKey, key, maxEmailLength)
	case KeyRandom:
		key = sanitizer.Apply(raw, sanitizer.Trim, sanitizer.ToLower)
		rule = validator.LenString(FieldKey, key, randomKeyLength)
	}

	if err := validator.ApplyFirst(validator.RequiredString(FieldKey, raw), rule); err != nil {
		if failedRule(err) == validator.KeyRequired {
			return "", errors.Join(ErrEmptyKey, err)
		}
		return "", errors.Join(fmt.Errorf("%w: %s key", ErrInvalidKeyLength, kind), err)
	}
	if kind == KeyPhone {
		key = "+" + countryCode + key
	}
	return key, nil
}

// normalizeDescription folds the text onto one line and strips accents. An
// empty result is allowed and removes the description from the payload.
func normalizeDescription(s string) (string, error) {
	out := sanitizer.Apply(s, sanitizer.SingleLine, sanitizer.RemoveAccents)
	if err := validator.Apply(validator.MaxLenString(FieldDescription, out, maxDescriptionLength)); err != nil {
		return "", errors.Join(ErrFieldTooLong, err)
	}
	return out, nil
}

func normalizeRequiredName(field, s string, max int) (string, error) {
	out := normalizeName(s)
	if err := validator.ApplyFirst(
		validator.RequiredString(field, out),
		validator.MaxLenString(field, out, max),
	); err != nil {
		if failedRule(err) == validator.KeyRequired {
			return "", errors.Join(ErrFieldRequired, err)
		}
		return "", errors.Join(ErrFieldTooLong, err)
	}
	return out, nil
}

// failedRule returns the translation key of the first rule reported in err.
func failedRule(err error) string {
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		return verrs[0].TranslationKey
	}
	return ""
}

func normalizeIdentifier(s string) (string, error) {
	if s == "" {
		return defaultIdentifier, nil
	}
	if err := validator.Apply(validator.MaxLenString(FieldIdentifier, s, maxIdentifierLength)); err != nil {
		return "", errors.Join(ErrFieldTooLong, err)
	}
	return s, nil
}
