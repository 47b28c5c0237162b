package types

import "strings"

// Entry is one partition: a named region with a kind, an offset and a size.
//
// Offset may be auto (ValueAuto). The table assigns auto offsets a placement
// during its cascade; Placed reports it. Size is never auto.
type Entry struct {
	Name    string
	Kind    string
	SubKind string
	Offset  Value
	Size    Value
	Flags   string

	placed   Quantity
	isPlaced bool
}

// NewEntry builds an entry from its textual row. Fields that fail to parse
// are kept as invalid values; NewEntry never fails. Callers taking rows from
// outside a parsed file check them with Row.Check first.
func NewEntry(row Row) Entry {
	return Entry{
		Name:    strings.TrimSpace(row.Name),
		Kind:    strings.TrimSpace(row.Type),
		SubKind: strings.TrimSpace(row.SubType),
		Offset:  ParseOffsetValue(row.Offset),
		Size:    ParseSizeValue(row.Size),
		Flags:   strings.TrimSpace(row.Flags),
	}
}

// Set replaces one field from raw text. Changing the offset drops any
// placement from a previous cascade. Text that CheckText rejects leaves the
// entry unchanged.
func (e *Entry) Set(f Field, raw string) error {
	raw = strings.TrimSpace(raw)
	if err := CheckText(f, raw); err != nil {
		return err
	}
	switch f {
	case FieldName:
		e.Name = raw
	case FieldType:
		e.Kind = raw
	case FieldSubType:
		e.SubKind = raw
	case FieldOffset:
		e.Offset = ParseOffsetValue(raw)
		e.Unplace()
	case FieldSize:
		e.Size = ParseSizeValue(raw)
	case FieldFlags:
		e.Flags = raw
	default:
		return ErrUnknownField
	}
	return nil
}

// Place records the address the cascade computed for an auto offset.
// It is a no-op for entries whose offset is not auto.
func (e *Entry) Place(q Quantity) {
	if !e.Offset.IsAuto() {
		return
	}
	e.placed = q
	e.isPlaced = true
}

// Unplace forgets the computed address of an auto offset.
func (e *Entry) Unplace() {
	e.placed = 0
	e.isPlaced = false
}

// Placed returns the computed address of an auto offset, if any.
func (e Entry) Placed() (Quantity, bool) {
	if !e.Offset.IsAuto() || !e.isPlaced {
		return 0, false
	}
	return e.placed, true
}

// ResolvedOffset returns the pinned offset, or the placement of an auto one.
func (e Entry) ResolvedOffset() (Quantity, bool) {
	if q, ok := e.Offset.Get(); ok {
		return q, true
	}
	return e.Placed()
}

// ResolvedSize returns the size when it parsed.
func (e Entry) ResolvedSize() (Quantity, bool) {
	return e.Size.Get()
}

// Extent returns the half-open range [start, end) the entry occupies. ok is
// false unless both offset and size are resolved. end saturates instead of
// wrapping.
func (e Entry) Extent() (start, end Quantity, ok bool) {
	start, ok = e.ResolvedOffset()
	if !ok {
		return 0, 0, false
	}
	size, ok := e.ResolvedSize()
	if !ok {
		return 0, 0, false
	}
	end = start + size
	if end < start {
		end = ^Quantity(0)
	}
	return start, end, true
}

// Pinned reports whether the offset was given explicitly.
func (e Entry) Pinned() bool { return e.Offset.IsValid() }

// Valid reports whether every numeric field parsed.
func (e Entry) Valid() bool {
	return !e.Offset.IsInvalid() && !e.Size.IsInvalid()
}

// FieldErrors lists the fields that failed to parse, tagged with index.
func (e Entry) FieldErrors(index int) []FieldError {
	var errs []FieldError
	if e.Offset.IsInvalid() {
		errs = append(errs, FieldError{Index: index, Name: e.Name, Field: FieldOffset, Raw: e.Offset.Raw, Err: e.Offset.Err})
	}
	if e.Size.IsInvalid() {
		errs = append(errs, FieldError{Index: index, Name: e.Name, Field: FieldSize, Raw: e.Size.Raw, Err: e.Size.Err})
	}
	return errs
}

// OffsetText is the offset as it is written out: the raw text of a pinned or
// invalid offset, the hex placement of an auto one, or empty when an auto
// offset could not be placed.
func (e Entry) OffsetText() string {
	if q, ok := e.Placed(); ok {
		return q.Hex()
	}
	return e.Offset.Raw
}

// Row returns the entry's textual form in file order.
func (e Entry) Row() Row {
	return Row{
		Name:    e.Name,
		Type:    e.Kind,
		SubType: e.SubKind,
		Offset:  e.OffsetText(),
		Size:    e.Size.Raw,
		Flags:   e.Flags,
	}
}

// Get returns the text of one field as Row would render it.
func (e Entry) Get(f Field) string {
	return e.Row().Get(f)
}
