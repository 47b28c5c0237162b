package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/partkit/internal/format"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInvalidNumber   ErrKind = iota // size/offset text that is not a quantity
	ErrKindIndexOutOfRange                // mutation referencing a nonexistent entry
	ErrKindUnknownField                   // column name that is not one of the six fields
	ErrKindUnsupported                    // valid request we don't support (e.g. encoding)
	ErrKindIO                             // file layer failures (read, write, rename)
	ErrKindInvalidText                    // text field that would not survive a save
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidNumber)
// holds for every invalid-number error regardless of its message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidNumber indicates unparseable size or offset text.
	ErrInvalidNumber = &Error{Kind: ErrKindInvalidNumber, Msg: "invalid number"}
	// ErrIndexOutOfRange indicates a mutation referenced a nonexistent entry.
	ErrIndexOutOfRange = &Error{Kind: ErrKindIndexOutOfRange, Msg: "index out of range"}
	// ErrUnknownField indicates a field name outside the six table columns.
	ErrUnknownField = &Error{Kind: ErrKindUnknownField, Msg: "unknown field"}
	// ErrUnsupportedEncoding indicates a text encoding we cannot read or write.
	ErrUnsupportedEncoding = &Error{Kind: ErrKindUnsupported, Msg: "unsupported encoding"}
	// ErrIO indicates a failure reading or writing a table file.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "i/o error"}
	// ErrInvalidText indicates field text the file format cannot hold.
	ErrInvalidText = &Error{Kind: ErrKindInvalidText, Msg: "invalid text"}
)

// IOError wraps a file layer failure so errors.Is(err, ErrIO) holds while
// errors.Is(err, fs.ErrNotExist) and friends still see the cause.
func IOError(msg string, err error) error {
	return &Error{Kind: ErrKindIO, Msg: msg, Err: err}
}

// IndexError builds an ErrIndexOutOfRange error naming the offending index.
func IndexError(index, length int) error {
	return &Error{
		Kind: ErrKindIndexOutOfRange,
		Msg:  fmt.Sprintf("index %d out of range [0,%d)", index, length),
	}
}

// -----------------------------------------------------------------------------
// Quantities
// -----------------------------------------------------------------------------

// Quantity is a non-negative byte count or flash address.
type Quantity uint64

// ParseQuantity converts decimal, 0x-hex, and K/M-suffixed text into a
// Quantity. Failures wrap ErrInvalidNumber.
func ParseQuantity(text string) (Quantity, error) {
	n, err := format.ParseQuantity(text)
	if err != nil {
		return 0, invalidNumber(text, err)
	}
	return Quantity(n), nil
}

func invalidNumber(text string, err error) error {
	return &Error{Kind: ErrKindInvalidNumber, Msg: fmt.Sprintf("invalid number %q", text), Err: err}
}

// ParseOptionalOffset parses an offset column; empty text means "auto" and
// returns ok=false with a nil error.
func ParseOptionalOffset(text string) (q Quantity, ok bool, err error) {
	n, ok, err := format.ParseOptionalOffset(text)
	if err != nil {
		return 0, false, invalidNumber(text, err)
	}
	return Quantity(n), ok, nil
}

// Hex renders the quantity as "0x" plus uppercase hex digits.
func (q Quantity) Hex() string { return format.FormatHex(uint64(q)) }

// Human renders the quantity in B, KB or MB (binary units).
func (q Quantity) Human() string { return format.FormatHumanSize(uint64(q)) }

// AlignUp4K rounds the quantity up to the next 4096-byte boundary.
func (q Quantity) AlignUp4K() Quantity { return Quantity(format.AlignUp4K(uint64(q))) }

// String implements fmt.Stringer using the hex form.
func (q Quantity) String() string { return q.Hex() }

// -----------------------------------------------------------------------------
// Fields
// -----------------------------------------------------------------------------

// Field identifies one of the six table columns.
type Field int

const (
	FieldName Field = iota
	FieldType
	FieldSubType
	FieldOffset
	FieldSize
	FieldFlags
)

// FieldCount is the number of columns in a table row.
const FieldCount = 6

// Fields lists the columns in file order.
var Fields = [FieldCount]Field{FieldName, FieldType, FieldSubType, FieldOffset, FieldSize, FieldFlags}

var fieldNames = [FieldCount]string{"Name", "Type", "SubType", "Offset", "Size", "Flags"}

// String implements the Stringer interface for Field
func (f Field) String() string {
	if f < 0 || int(f) >= FieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// MarshalText encodes the field by column name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Numeric reports whether the field holds a quantity (offset or size).
func (f Field) Numeric() bool {
	return f == FieldOffset || f == FieldSize
}

// ParseField maps a column name ("size", "SubType", "subkind", ...) or a
// zero-based column number to a Field.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "name", "0":
		return FieldName, nil
	case "type", "kind", "1":
		return FieldType, nil
	case "subtype", "subkind", "2":
		return FieldSubType, nil
	case "offset", "3":
		return FieldOffset, nil
	case "size", "4":
		return FieldSize, nil
	case "flags", "5":
		return FieldFlags, nil
	}
	return 0, &Error{Kind: ErrKindUnknownField, Msg: fmt.Sprintf("unknown field %q", name)}
}

// Row is the textual form of one table line: six trimmed fields in file order.
type Row struct {
	Name    string
	Type    string
	SubType string
	Offset  string
	Size    string
	Flags   string
}

// Get returns the text of one column.
func (r Row) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldType:
		return r.Type
	case FieldSubType:
		return r.SubType
	case FieldOffset:
		return r.Offset
	case FieldSize:
		return r.Size
	case FieldFlags:
		return r.Flags
	}
	return ""
}

// Set replaces the text of one column.
func (r *Row) Set(f Field, text string) {
	switch f {
	case FieldName:
		r.Name = text
	case FieldType:
		r.Type = text
	case FieldSubType:
		r.SubType = text
	case FieldOffset:
		r.Offset = text
	case FieldSize:
		r.Size = text
	case FieldFlags:
		r.Flags = text
	}
}

// CheckText reports whether raw can be stored in field f and read back
// unchanged. Separators and line breaks would split the row, and a name
// starting with '#' would turn the row into a comment. Failures wrap
// ErrInvalidText.
func CheckText(f Field, raw string) error {
	if i := strings.IndexAny(raw, ",\r\n"); i >= 0 {
		return &Error{
			Kind: ErrKindInvalidText,
			Msg:  fmt.Sprintf("%s %q: %q is not allowed", f, raw, raw[i]),
		}
	}
	if f == FieldName && strings.HasPrefix(strings.TrimSpace(raw), "#") {
		return &Error{
			Kind: ErrKindInvalidText,
			Msg:  fmt.Sprintf("%s %q: must not start with '#'", f, raw),
		}
	}
	return nil
}

// Check runs CheckText over every column.
func (r Row) Check() error {
	for i, text := range r.Columns() {
		if err := CheckText(Fields[i], text); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the row's fields in file order.
func (r Row) Columns() [FieldCount]string {
	return [FieldCount]string{r.Name, r.Type, r.SubType, r.Offset, r.Size, r.Flags}
}

// -----------------------------------------------------------------------------
// Values
// -----------------------------------------------------------------------------

// ValueState tags the variant held by a Value.
type ValueState uint8

const (
	// ValueAuto marks an offset the model computes itself (empty column).
	ValueAuto ValueState = iota
	// ValueValid marks a parsed quantity.
	ValueValid
	// ValueInvalid marks text that failed to parse; Raw and Err are set.
	ValueInvalid
)

// String implements the Stringer interface for ValueState
func (s ValueState) String() string {
	switch s {
	case ValueAuto:
		return "auto"
	case ValueValid:
		return "valid"
	case ValueInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("ValueState(%d)", int(s))
	}
}

// Value is a numeric cell: Auto | Valid(Quantity) | Invalid(Raw, Err).
// Raw always holds the text the value came from so untouched cells render
// exactly as they were read.
type Value struct {
	State    ValueState
	Quantity Quantity
	Raw      string
	Err      error
}

// AutoValue returns an offset value the model will place.
func AutoValue() Value { return Value{State: ValueAuto} }

// ValidValue returns a resolved value. An empty raw text is replaced by the
// hex form of q.
func ValidValue(q Quantity, raw string) Value {
	if raw == "" {
		raw = q.Hex()
	}
	return Value{State: ValueValid, Quantity: q, Raw: raw}
}

// InvalidValue returns a value that keeps its raw text and parse error.
func InvalidValue(raw string, err error) Value {
	return Value{State: ValueInvalid, Raw: raw, Err: err}
}

// ParseSizeValue parses a size column. Sizes are never auto, so empty text is
// invalid.
func ParseSizeValue(text string) Value {
	raw := strings.TrimSpace(text)
	q, err := ParseQuantity(raw)
	if err != nil {
		return InvalidValue(raw, err)
	}
	return ValidValue(q, raw)
}

// ParseOffsetValue parses an offset column; empty text yields AutoValue.
func ParseOffsetValue(text string) Value {
	raw := strings.TrimSpace(text)
	q, ok, err := ParseOptionalOffset(raw)
	switch {
	case err != nil:
		return InvalidValue(raw, err)
	case !ok:
		return AutoValue()
	default:
		return ValidValue(q, raw)
	}
}

// Get returns the quantity and true when the value is valid.
func (v Value) Get() (Quantity, bool) {
	if v.State != ValueValid {
		return 0, false
	}
	return v.Quantity, true
}

// IsAuto reports whether the value is an unset offset.
func (v Value) IsAuto() bool { return v.State == ValueAuto }

// IsValid reports whether the value parsed.
func (v Value) IsValid() bool { return v.State == ValueValid }

// IsInvalid reports whether the value failed to parse.
func (v Value) IsInvalid() bool { return v.State == ValueInvalid }

// String returns the raw text (empty for auto).
func (v Value) String() string { return v.Raw }

// -----------------------------------------------------------------------------
// Parse & Render Options
// -----------------------------------------------------------------------------

// Text encodings understood by the serializer.
const (
	EncodingUTF8        = "UTF-8"
	EncodingUTF16LE     = "UTF-16LE"
	EncodingWindows1252 = "WINDOWS-1252"
)

// ParseOptions control how raw bytes are decoded into table text.
type ParseOptions struct {
	// InputEncoding forces a source encoding. Empty auto-detects: BOMs are
	// honoured, valid UTF-8 is used as-is, anything else is read as
	// Windows-1252.
	InputEncoding string
}

// RenderOptions control how a table is written back to text.
type RenderOptions struct {
	// Newline terminates every line. Empty uses "\n".
	Newline string

	// OutputEncoding is "UTF-8" (default) or "UTF-16LE".
	OutputEncoding string

	// WithBOM prefixes the output with the encoding's byte-order mark.
	WithBOM bool
}
