package table

import "github.com/joshuapare/partkit/pkg/types"

// cascade re-places every auto entry from start to the end of the table.
// Pinned offsets are never touched.
func (t *Table) cascade(start int) {
	anchor, known := t.anchor(start)
	placed := 0
	for i := start; i < len(t.entries); i++ {
		e := &t.entries[i]
		if e.Offset.IsAuto() {
			if known {
				e.Place(anchor.AlignUp4K())
				placed++
			} else {
				e.Unplace()
			}
		}
		if _, end, ok := e.Extent(); ok {
			anchor, known = end, true
		} else {
			known = false
		}
	}
	t.log.Debug("cascade", "start", start, "placed", placed)
}

// anchor is where an auto entry at index would be placed from: the base
// offset for the first entry, otherwise the end of the entry before it.
func (t *Table) anchor(index int) (types.Quantity, bool) {
	if index == 0 {
		return types.BaseOffset, true
	}
	_, end, ok := t.entries[index-1].Extent()
	return end, ok
}

// lastResolvedEnd returns the end of the last entry with a resolved extent.
func (t *Table) lastResolvedEnd() (types.Quantity, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if _, end, ok := t.entries[i].Extent(); ok {
			return end, true
		}
	}
	return 0, false
}

// Recalculate places every auto entry from the top of the table and
// re-validates.
func (t *Table) Recalculate() types.ValidationReport {
	t.cascade(0)
	return t.validate()
}
