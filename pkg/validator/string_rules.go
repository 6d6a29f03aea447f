package validator

import (
	"fmt"
	"strings"
)

// Translation keys reported by the string rules.
const (
	KeyRequired      = "validation.required"
	KeyMaxLength     = "validation.max_length"
	KeyExactLength   = "validation.exact_length"
	KeyLengthBetween = "validation.length_between"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: KeyRequired,
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("value exceeds maximum field length of %d characters", max),
			TranslationKey: KeyMaxLength,
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
				"len":   len(value),
			},
		},
	}
}

func LenString(field, value string, exact int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) == exact
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be exactly %d characters long, got %d", exact, len(value)),
			TranslationKey: KeyExactLength,
			TranslationValues: map[string]any{
				"field":  field,
				"length": exact,
				"len":    len(value),
			},
		},
	}
}

// LenBetweenString validates an inclusive length range.
func LenBetweenString(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min && len(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be between %d and %d characters long, got %d", min, max, len(value)),
			TranslationKey: KeyLengthBetween,
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
				"max":   max,
				"len":   len(value),
			},
		},
	}
}
