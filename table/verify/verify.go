package verify

import (
	"sort"

	"github.com/joshuapare/partkit/internal/format"
	"github.com/joshuapare/partkit/pkg/types"
)

// Check runs every check and returns the combined report.
func Check(entries []types.Entry, capacity types.Quantity) types.ValidationReport {
	report := types.ValidationReport{
		Overlap:     Overlaps(entries),
		Capacity:    Capacity(entries, capacity),
		OutOfBounds: Bounds(entries, capacity),
		Misaligned:  Alignment(entries),
		Duplicates:  Duplicates(entries),
		FieldErrors: FieldErrors(entries),
		Usage:       Usage(entries, capacity),
	}
	return report
}

type span struct {
	index      int
	name       string
	start, end types.Quantity
}

func spans(entries []types.Entry) []span {
	out := make([]span, 0, len(entries))
	for i, e := range entries {
		start, end, ok := e.Extent()
		if !ok || end == start {
			continue
		}
		out = append(out, span{index: i, name: e.Name, start: start, end: end})
	}
	return out
}

// Overlaps returns the first overlapping pair in address order, or nil.
func Overlaps(entries []types.Entry) *types.Overlap {
	ranges := spans(entries)
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].start < ranges[j].start
	})

	for i := 1; i < len(ranges); i++ {
		a, b := ranges[i-1], ranges[i]
		if a.end <= b.start {
			continue
		}
		return &types.Overlap{
			FirstIndex:      a.index,
			FirstName:       a.name,
			FirstEnd:        a.end,
			SecondIndex:     b.index,
			SecondName:      b.name,
			SecondStart:     b.start,
			OverlapBytes:    min(a.end, b.end) - b.start,
			SuggestedOffset: a.end.AlignUp4K(),
		}
	}
	return nil
}

// UsedBytes sums every valid size, saturating on overflow.
func UsedBytes(entries []types.Entry) types.Quantity {
	var used types.Quantity
	for _, e := range entries {
		size, ok := e.ResolvedSize()
		if !ok {
			continue
		}
		if used+size < used {
			return ^types.Quantity(0)
		}
		used += size
	}
	return used
}

// Capacity reports when the partitions need more flash than capacity.
func Capacity(entries []types.Entry, capacity types.Quantity) *types.CapacityExceeded {
	used := UsedBytes(entries)
	if used <= capacity {
		return nil
	}
	return &types.CapacityExceeded{
		UsedBytes:     used,
		CapacityBytes: capacity,
		OverBy:        used - capacity,
	}
}

// Usage summarises flash use. Percent exceeds 100 when the table is over
// capacity.
func Usage(entries []types.Entry, capacity types.Quantity) types.Usage {
	used := UsedBytes(entries)
	u := types.Usage{UsedBytes: used, CapacityBytes: capacity}
	if used < capacity {
		u.FreeBytes = capacity - used
	}
	if capacity > 0 {
		u.Percent = float64(used) / float64(capacity) * 100
	}
	return u
}

// Bounds lists every resolved partition that ends past capacity.
func Bounds(entries []types.Entry, capacity types.Quantity) []types.OutOfBounds {
	var out []types.OutOfBounds
	for _, s := range spans(entries) {
		if s.end > capacity {
			out = append(out, types.OutOfBounds{Index: s.index, Name: s.name, End: s.end, CapacityBytes: capacity})
		}
	}
	return out
}

// Alignment lists explicit offsets that are not 4KB-aligned. Placed offsets
// are aligned by construction.
func Alignment(entries []types.Entry) []types.Misaligned {
	var out []types.Misaligned
	for i, e := range entries {
		off, ok := e.Offset.Get()
		if !ok || format.IsAligned4K(uint64(off)) {
			continue
		}
		out = append(out, types.Misaligned{Index: i, Name: e.Name, Offset: off})
	}
	return out
}

// Duplicates lists names that appear on more than one entry, in order of
// first appearance. Empty names are ignored.
func Duplicates(entries []types.Entry) []types.DuplicateName {
	seen := make(map[string][]int, len(entries))
	var order []string
	for i, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, ok := seen[e.Name]; !ok {
			order = append(order, e.Name)
		}
		seen[e.Name] = append(seen[e.Name], i)
	}

	var out []types.DuplicateName
	for _, name := range order {
		if idx := seen[name]; len(idx) > 1 {
			out = append(out, types.DuplicateName{Name: name, Indexes: idx})
		}
	}
	return out
}

// FieldErrors lists every offset or size cell that failed to parse.
func FieldErrors(entries []types.Entry) []types.FieldError {
	var out []types.FieldError
	for i, e := range entries {
		out = append(out, e.FieldErrors(i)...)
	}
	return out
}
