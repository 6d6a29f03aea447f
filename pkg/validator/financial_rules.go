package validator

import "github.com/shopspring/decimal"

func NonNegativeAmount[T Numeric](field string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value >= 0
		},
		Error: nonNegativeError(field),
	}
}

// NonNegativeDecimal is NonNegativeAmount for arbitrary-precision amounts.
func NonNegativeDecimal(field string, value decimal.Decimal) Rule {
	return Rule{
		Check: func() bool {
			return !value.IsNegative()
		},
		Error: nonNegativeError(field),
	}
}

func nonNegativeError(field string) ValidationError {
	return ValidationError{
		Field:          field,
		Message:        "amount cannot be negative",
		TranslationKey: "validation.non_negative_amount",
		TranslationValues: map[string]any{
			"field": field,
		},
	}
}
