package table

import (
	"github.com/joshuapare/partkit/pkg/types"
)

// SetField replaces one field of the entry at index from raw text.
//
// Size and offset changes cascade from index. Text fields only re-validate.
func (t *Table) SetField(index int, field types.Field, raw string) (types.ValidationReport, error) {
	if err := t.checkIndex(index, len(t.entries)); err != nil {
		return t.report, err
	}
	switch field {
	case types.FieldSize:
		return t.SetSize(index, raw)
	case types.FieldOffset:
		if err := t.entries[index].Set(field, raw); err != nil {
			return t.report, err
		}
		t.log.Debug("set offset", "index", index, "raw", raw)
		t.cascade(index)
		return t.validate(), nil
	}
	if err := t.entries[index].Set(field, raw); err != nil {
		return t.report, err
	}
	t.log.Debug("set field", "index", index, "field", field.String(), "raw", raw)
	return t.validate(), nil
}

// SetSize replaces the size of the entry at index and cascades from it.
func (t *Table) SetSize(index int, raw string) (types.ValidationReport, error) {
	if err := t.checkIndex(index, len(t.entries)); err != nil {
		return t.report, err
	}
	if err := t.entries[index].Set(types.FieldSize, raw); err != nil {
		return t.report, err
	}
	t.log.Debug("set size", "index", index, "raw", raw)
	t.cascade(index)
	return t.validate(), nil
}

// Insert adds a row before index; index may equal Len to append. Auto
// entries from index onwards are re-placed.
func (t *Table) Insert(index int, row types.Row) (types.ValidationReport, error) {
	if err := t.checkIndex(index, len(t.entries)+1); err != nil {
		return t.report, err
	}
	if err := row.Check(); err != nil {
		return t.report, err
	}
	t.entries = append(t.entries, types.Entry{})
	copy(t.entries[index+1:], t.entries[index:])
	t.entries[index] = types.NewEntry(row)
	t.log.Debug("insert", "index", index, "name", t.entries[index].Name)
	t.cascade(index)
	return t.validate(), nil
}

// Append adds a row at the end of the table.
//
// A row without an offset stays auto when the table is empty or the last
// entry resolves, so later edits keep flowing into it. Otherwise it is
// pinned after the last entry that does resolve, or at 0x8000 when none
// does. A row that fails Row.Check is rejected and the table is unchanged.
func (t *Table) Append(row types.Row) (types.ValidationReport, error) {
	if err := row.Check(); err != nil {
		return t.report, err
	}
	e := types.NewEntry(row)
	index := len(t.entries)
	if e.Offset.IsAuto() && index > 0 {
		if _, ok := t.anchor(index); !ok {
			at := types.BaseOffset
			if end, ok := t.lastResolvedEnd(); ok {
				at = end.AlignUp4K()
			}
			e.Offset = types.ValidValue(at, "")
		}
	}
	t.entries = append(t.entries, e)
	t.log.Debug("append", "index", index, "name", e.Name, "auto", e.Offset.IsAuto())
	t.cascade(index)
	return t.validate(), nil
}

// AppendDefault appends the configured default row.
func (t *Table) AppendDefault() (types.ValidationReport, error) {
	return t.Append(t.defaultRow)
}

// Delete removes the entry at index. Placements of later auto entries are
// kept until the next cascade.
func (t *Table) Delete(index int) (types.ValidationReport, error) {
	if err := t.checkIndex(index, len(t.entries)); err != nil {
		return t.report, err
	}
	name := t.entries[index].Name
	t.entries = append(t.entries[:index], t.entries[index+1:]...)
	t.log.Debug("delete", "index", index, "name", name)
	return t.validate(), nil
}

// SetCapacity changes the flash size and re-validates.
func (t *Table) SetCapacity(q types.Quantity) types.ValidationReport {
	t.capacity = q
	t.log.Debug("set capacity", "capacity", q.Hex())
	return t.validate()
}
