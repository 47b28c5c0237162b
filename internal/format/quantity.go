package format

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// ParseQuantity converts size/offset notation into a byte count.
//
// Accepted forms (surrounding whitespace ignored):
//
//	4096      decimal
//	0x1000    hexadecimal, prefix matched case-insensitively
//	4K, 4k    kibibytes (x1024)
//	1M, 0x1m  mebibytes (x1048576)
//
// Signs, fractions and values that do not fit in 64 bits are rejected.
func ParseQuantity(text string) (uint64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, ErrEmpty
	}

	multiplier := uint64(1)
	switch s[len(s)-1] | 0x20 {
	case SuffixKilo:
		multiplier = KiB
		s = strings.TrimSpace(s[:len(s)-1])
	case SuffixMega:
		multiplier = MiB
		s = strings.TrimSpace(s[:len(s)-1])
	}
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
	}

	base := 10
	if len(s) >= len(HexPrefix) && strings.EqualFold(s[:len(HexPrefix)], HexPrefix) {
		base = 16
		s = s[len(HexPrefix):]
		if s == "" {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
	}

	n, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrRange, text)
		}
		return 0, fmt.Errorf("%w: %q", ErrSyntax, text)
	}

	hi, lo := bits.Mul64(n, multiplier)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %q", ErrRange, text)
	}
	return lo, nil
}

// ParseOptionalOffset parses an offset column. An empty or whitespace-only
// field means "place automatically" and returns ok=false with no error.
func ParseOptionalOffset(text string) (n uint64, ok bool, err error) {
	if strings.TrimSpace(text) == "" {
		return 0, false, nil
	}
	n, err = ParseQuantity(text)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// FormatHex renders n as "0x" followed by uppercase hex digits without
// leading zeros, e.g. FormatHex(4096) = "0x1000", FormatHex(0) = "0x0".
func FormatHex(n uint64) string {
	return HexPrefix + strings.ToUpper(strconv.FormatUint(n, 16))
}

// FormatHumanSize renders n with the largest binary unit in which the value
// is at least one: "512 B", "4.00 KB", "1.50 MB".
func FormatHumanSize(n uint64) string {
	switch {
	case n >= MiB:
		return fmt.Sprintf("%.2f %s", float64(n)/MiB, UnitMB)
	case n >= KiB:
		return fmt.Sprintf("%.2f %s", float64(n)/KiB, UnitKB)
	default:
		return fmt.Sprintf("%d %s", n, UnitBytes)
	}
}
