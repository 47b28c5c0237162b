package table

import (
	"log/slog"

	"github.com/joshuapare/partkit/internal/parttext"
	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table/verify"
)

// Table is an editable partition table.
type Table struct {
	entries    []types.Entry
	capacity   types.Quantity
	newline    string
	defaultRow types.Row
	log        *slog.Logger
	report     types.ValidationReport
}

// New returns an empty table.
func New(opts Options) *Table {
	opts = opts.withDefaults()
	t := &Table{
		capacity:   opts.Capacity,
		newline:    parttext.LF,
		defaultRow: *opts.DefaultRow,
		log:        opts.Logger,
	}
	t.validate()
	return t
}

// Parse builds a table from its text form, placing auto offsets. It never
// fails: unparseable offsets and sizes are kept as invalid values and
// reported.
func Parse(text string, opts Options) *Table {
	return fromDocument(parttext.Parse(text), opts)
}

// Read decodes raw file bytes and parses them. It fails only when the input
// cannot be decoded with the requested encoding.
func Read(data []byte, opts Options) (*Table, error) {
	doc, err := parttext.Decode(data, types.ParseOptions{InputEncoding: opts.Encoding})
	if err != nil {
		return nil, err
	}
	return fromDocument(doc, opts), nil
}

func fromDocument(doc parttext.Document, opts Options) *Table {
	t := New(opts)
	t.newline = doc.Newline
	t.entries = make([]types.Entry, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		t.entries = append(t.entries, types.NewEntry(row))
	}
	t.log.Debug("parsed table", "entries", len(t.entries), "crlf", doc.Newline == parttext.CRLF)
	t.Recalculate()
	return t
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []types.Entry {
	out := make([]types.Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry returns the entry at index.
func (t *Table) Entry(index int) (types.Entry, error) {
	if err := t.checkIndex(index, len(t.entries)); err != nil {
		return types.Entry{}, err
	}
	return t.entries[index], nil
}

// Rows returns the textual form of every entry, as Render writes them.
func (t *Table) Rows() []types.Row {
	rows := make([]types.Row, len(t.entries))
	for i, e := range t.entries {
		rows[i] = e.Row()
	}
	return rows
}

// Capacity returns the flash size the table is checked against.
func (t *Table) Capacity() types.Quantity { return t.capacity }

// DefaultRow returns the row AppendDefault adds.
func (t *Table) DefaultRow() types.Row { return t.defaultRow }

// Report returns the result of the last validation.
func (t *Table) Report() types.ValidationReport { return t.report }

// Newline returns the line ending Render uses: the one the source text used,
// or "\n" for tables not read from text.
func (t *Table) Newline() string { return t.newline }

// SetNewline changes the line ending Render uses. Anything other than "\r\n"
// selects "\n".
func (t *Table) SetNewline(nl string) {
	if nl != parttext.CRLF {
		nl = parttext.LF
	}
	t.newline = nl
}

// Render returns the table in its text form.
func (t *Table) Render() string {
	return parttext.Render(t.Rows(), t.newline)
}

// Encode renders the table and converts it to the requested encoding. An
// empty opts.Newline uses the table's own line ending.
func (t *Table) Encode(opts types.RenderOptions) ([]byte, error) {
	if opts.Newline == "" {
		opts.Newline = t.newline
	}
	return parttext.Encode(t.Rows(), opts)
}

func (t *Table) checkIndex(index, limit int) error {
	if index < 0 || index >= limit {
		return types.IndexError(index, limit)
	}
	return nil
}

func (t *Table) validate() types.ValidationReport {
	t.report = verify.Check(t.entries, t.capacity)
	if !t.report.OK() {
		t.log.Debug("validation issues", "count", len(t.report.Diagnostics()),
			"overlap", t.report.Overlap != nil, "capacity", t.report.Capacity != nil)
	}
	return t.report
}
