package format

import "errors"

var (
	// ErrEmpty indicates a quantity field held no digits.
	ErrEmpty = errors.New("format: empty quantity")
	// ErrSyntax indicates a quantity contained characters that are not digits.
	ErrSyntax = errors.New("format: invalid quantity syntax")
	// ErrRange indicates a quantity does not fit in 64 bits.
	ErrRange = errors.New("format: quantity out of range")
)
