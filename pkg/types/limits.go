package types

import (
	"fmt"
	"strings"

	"github.com/joshuapare/partkit/internal/format"
)

// ============================================================================
// Flash Geometry
// ============================================================================
// Flash chip sizes offered as presets. Capacity checks compare the sum of all
// partition sizes against one of these (or any custom quantity).

const (
	// FlashSize4MB is the smallest common module size and the default.
	FlashSize4MB Quantity = 4 << 20

	// FlashSize8MB is a common module size.
	FlashSize8MB Quantity = 8 << 20

	// FlashSize16MB is a common module size.
	FlashSize16MB Quantity = 16 << 20

	// FlashSize32MB is the largest preset.
	FlashSize32MB Quantity = 32 << 20

	// DefaultCapacity is used when no capacity is configured.
	DefaultCapacity = FlashSize4MB

	// BaseOffset is where the first auto-placed partition starts.
	BaseOffset Quantity = format.BaseOffset

	// Alignment is the sector boundary auto-placed partitions start on.
	Alignment Quantity = format.Alignment

	// KiB and MiB are the binary units the size suffixes stand for.
	KiB Quantity = format.KiB
	MiB Quantity = format.MiB
)

// FlashSizes lists the presets in ascending order.
var FlashSizes = []Quantity{FlashSize4MB, FlashSize8MB, FlashSize16MB, FlashSize32MB}

// ParseFlashSize accepts a preset label ("4MB", "16mb") or any quantity
// ("0x400000", "4M", "4194304").
func ParseFlashSize(text string) (Quantity, error) {
	s := strings.TrimSpace(text)
	upper := strings.ToUpper(s)
	for _, size := range FlashSizes {
		if upper == FlashSizeLabel(size) {
			return size, nil
		}
	}
	if strings.HasSuffix(upper, "KB") || strings.HasSuffix(upper, "MB") {
		s = s[:len(s)-1]
	}
	q, err := ParseQuantity(s)
	if err != nil {
		return 0, err
	}
	if q == 0 {
		return 0, &Error{Kind: ErrKindInvalidNumber, Msg: fmt.Sprintf("flash size %q must be positive", text)}
	}
	return q, nil
}

// FlashSizeLabel renders whole-MiB sizes as "4MB" and anything else in hex.
func FlashSizeLabel(q Quantity) string {
	if q != 0 && q%format.MiB == 0 {
		return fmt.Sprintf("%dMB", q/format.MiB)
	}
	return q.Hex()
}

// NextFlashSize returns the preset after q, wrapping to the smallest.
func NextFlashSize(q Quantity) Quantity {
	for _, size := range FlashSizes {
		if size > q {
			return size
		}
	}
	return FlashSizes[0]
}

// ============================================================================
// Default Row
// ============================================================================

// Values for a freshly appended partition.
const (
	DefaultRowName    = "new_part"
	DefaultRowType    = "data"
	DefaultRowSubType = "undefined"
	DefaultRowSize    = "4K"
)

// DefaultRow returns the row appended when the host asks for a new partition.
// Its offset is empty so the table places it.
func DefaultRow() Row {
	return Row{
		Name:    DefaultRowName,
		Type:    DefaultRowType,
		SubType: DefaultRowSubType,
		Size:    DefaultRowSize,
	}
}
