package emv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned when an identifier is outside the 00..99 range.
	ErrInvalidID = errors.New("emv: identifier must be between 00 and 99")

	// ErrNotAGroup is returned when a nested group is requested for an identifier holding a leaf.
	ErrNotAGroup = errors.New("emv: identifier does not hold a group")

	// ErrContentTooLong is returned when a leaf or an encoded group exceeds MaxLength bytes.
	ErrContentTooLong = errors.New("emv: content exceeds maximum field length")
)

// LengthError reports the data object whose content does not fit in a TLV
// entry. It matches ErrContentTooLong with errors.Is.
type LengthError struct {
	// Path is the dotted identifier path, such as "26" or "62.05".
	Path   string
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: field %s is %d characters long, limit is %d",
		ErrContentTooLong, e.Path, e.Length, MaxLength)
}

func (e *LengthError) Unwrap() error { return ErrContentTooLong }
