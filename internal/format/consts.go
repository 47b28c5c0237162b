// Package format houses the low-level notation and layout rules for flash
// partition tables: how sizes and addresses are written, where the first
// partition starts, and which boundary every partition is aligned to. It is
// kept independent from the public API so higher-level packages can build an
// ergonomic model on top of it.
package format

const (
	// ============================================================================
	// Flash Layout
	// ============================================================================

	// BaseOffset is the address of the first partition when none is given.
	// Everything below it belongs to the bootloader and the partition table
	// itself.
	BaseOffset = 0x8000

	// Alignment is the flash sector size. Auto-placed partitions always start
	// on a sector boundary.
	Alignment = 0x1000

	// AlignmentMask is used to round addresses up to the next sector.
	AlignmentMask = Alignment - 1

	// ============================================================================
	// Binary Units
	// ============================================================================

	// KiB is the multiplier for the "K" suffix.
	KiB = 1 << 10

	// MiB is the multiplier for the "M" suffix.
	MiB = 1 << 20

	// ============================================================================
	// Quantity Notation
	// ============================================================================

	// HexPrefix marks a hexadecimal quantity ("0x1000"). Matched
	// case-insensitively on input, always emitted lowercase.
	HexPrefix = "0x"

	// SuffixKilo is the lowercase kibibyte suffix ("24K", "24k").
	SuffixKilo = 'k'

	// SuffixMega is the lowercase mebibyte suffix ("1M", "1m").
	SuffixMega = 'm'

	// UnitBytes, UnitKB and UnitMB label human-readable sizes.
	UnitBytes = "B"
	UnitKB    = "KB"
	UnitMB    = "MB"
)
