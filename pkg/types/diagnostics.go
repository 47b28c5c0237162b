package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// -----------------------------------------------------------------------------
// Validation Report
// -----------------------------------------------------------------------------
//
// Every mutation of a table re-validates it and returns a ValidationReport.
// Nothing in the report blocks editing: overlaps, capacity overruns and bad
// fields are surfaced for the host to display, and the table keeps its state.
//
// Usage:
//   1. Inspect the typed fields (Overlap, Capacity, ...) for programmatic checks
//   2. Call Diagnostics() for a flat, display-ready list

// Overlap describes the first pair of partitions found sharing flash space,
// scanning in address order.
type Overlap struct {
	FirstIndex      int      `json:"first_index"`
	FirstName       string   `json:"first_name"`
	FirstEnd        Quantity `json:"first_end"`
	SecondIndex     int      `json:"second_index"`
	SecondName      string   `json:"second_name"`
	SecondStart     Quantity `json:"second_start"`
	OverlapBytes    Quantity `json:"overlap_bytes"`
	SuggestedOffset Quantity `json:"suggested_offset"`
}

func (o *Overlap) Error() string {
	return fmt.Sprintf("%q (ends %s) overlaps %q (starts %s) by %s; move %q to %s",
		o.FirstName, o.FirstEnd.Hex(), o.SecondName, o.SecondStart.Hex(),
		o.OverlapBytes.Human(), o.SecondName, o.SuggestedOffset.Hex())
}

// CapacityExceeded reports that the partitions need more flash than exists.
type CapacityExceeded struct {
	UsedBytes     Quantity `json:"used_bytes"`
	CapacityBytes Quantity `json:"capacity_bytes"`
	OverBy        Quantity `json:"over_by"`
}

func (c *CapacityExceeded) Error() string {
	return fmt.Sprintf("total partition size %s exceeds flash size %s by %s",
		c.UsedBytes.Human(), c.CapacityBytes.Human(), c.OverBy.Human())
}

// OutOfBounds reports a partition that ends past the end of flash.
type OutOfBounds struct {
	Index         int      `json:"index"`
	Name          string   `json:"name"`
	End           Quantity `json:"end"`
	CapacityBytes Quantity `json:"capacity_bytes"`
}

func (b OutOfBounds) Error() string {
	return fmt.Sprintf("%q ends at %s, past the end of flash at %s", b.Name, b.End.Hex(), b.CapacityBytes.Hex())
}

// Misaligned reports a pinned offset that is not on a 4KB sector boundary.
type Misaligned struct {
	Index  int      `json:"index"`
	Name   string   `json:"name"`
	Offset Quantity `json:"offset"`
}

func (m Misaligned) Error() string {
	return fmt.Sprintf("%q offset %s is not 4KB-aligned (next boundary %s)", m.Name, m.Offset.Hex(), m.Offset.AlignUp4K().Hex())
}

// DuplicateName reports a partition name used by more than one entry.
type DuplicateName struct {
	Name    string `json:"name"`
	Indexes []int  `json:"indexes"`
}

func (d DuplicateName) Error() string {
	return fmt.Sprintf("name %q is used by %d partitions (rows %v)", d.Name, len(d.Indexes), d.Indexes)
}

// FieldError reports an offset or size cell that is not a valid quantity.
type FieldError struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Field Field  `json:"field"`
	Raw   string `json:"raw"`
	Err   error  `json:"-"`
}

func (f FieldError) Error() string {
	return fmt.Sprintf("%q %s %q is not a valid number", f.Name, strings.ToLower(f.Field.String()), f.Raw)
}

func (f FieldError) Unwrap() error { return f.Err }

// Usage summarises how much of the flash the partitions take.
type Usage struct {
	UsedBytes     Quantity `json:"used_bytes"`
	CapacityBytes Quantity `json:"capacity_bytes"`
	FreeBytes     Quantity `json:"free_bytes"`
	Percent       float64  `json:"percent"`
}

// String renders the usage like "Used: 1.50 MB (37.5%) | Free: 2.50 MB".
func (u Usage) String() string {
	return fmt.Sprintf("Used: %s (%.1f%%) | Free: %s", u.UsedBytes.Human(), u.Percent, u.FreeBytes.Human())
}

// ValidationReport is the result of checking a table.
type ValidationReport struct {
	Overlap     *Overlap          `json:"overlap,omitempty"`
	Capacity    *CapacityExceeded `json:"capacity,omitempty"`
	OutOfBounds []OutOfBounds     `json:"out_of_bounds,omitempty"`
	Misaligned  []Misaligned      `json:"misaligned,omitempty"`
	Duplicates  []DuplicateName   `json:"duplicates,omitempty"`
	FieldErrors []FieldError      `json:"field_errors,omitempty"`
	Usage       Usage             `json:"usage"`
}

// OK reports whether nothing was flagged.
func (r ValidationReport) OK() bool {
	return r.Overlap == nil && r.Capacity == nil &&
		len(r.OutOfBounds) == 0 && len(r.Misaligned) == 0 &&
		len(r.Duplicates) == 0 && len(r.FieldErrors) == 0
}

// HasErrors reports whether anything of error severity was flagged.
func (r ValidationReport) HasErrors() bool {
	for _, d := range r.Diagnostics() {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Diagnostics
// -----------------------------------------------------------------------------

// Severity classifies how serious a diagnostic issue is
type Severity int

const (
	SevInfo    Severity = iota // Informational (unusual but valid)
	SevWarning                 // Suspicious, the table still flashes
	SevError                   // The table cannot be flashed as written
)

// String implements the Stringer interface for Severity
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalJSON encodes the severity by name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DiagCategory classifies the type of issue found
type DiagCategory string

const (
	DiagOverlap    DiagCategory = "overlap"
	DiagCapacity   DiagCategory = "capacity"
	DiagBounds     DiagCategory = "bounds"
	DiagAlignment  DiagCategory = "alignment"
	DiagDuplicate  DiagCategory = "duplicate"
	DiagFieldValue DiagCategory = "field"
)

// Diagnostic is a single display-ready issue. Index is the table row the
// issue is attached to, or -1 for table-wide issues.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Category DiagCategory `json:"category"`
	Index    int          `json:"index"`
	Message  string       `json:"message"`
}

// String renders "error: overlap: ..." style lines.
func (d Diagnostic) String() string {
	if d.Index >= 0 {
		return fmt.Sprintf("%s: %s: row %d: %s", d.Severity, d.Category, d.Index, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Category, d.Message)
}

// Diagnostics flattens the report, most severe first, then by row.
func (r ValidationReport) Diagnostics() []Diagnostic {
	var out []Diagnostic
	if r.Overlap != nil {
		out = append(out, Diagnostic{SevError, DiagOverlap, r.Overlap.SecondIndex, r.Overlap.Error()})
	}
	if r.Capacity != nil {
		out = append(out, Diagnostic{SevError, DiagCapacity, -1, r.Capacity.Error()})
	}
	for _, b := range r.OutOfBounds {
		out = append(out, Diagnostic{SevError, DiagBounds, b.Index, b.Error()})
	}
	for _, f := range r.FieldErrors {
		out = append(out, Diagnostic{SevError, DiagFieldValue, f.Index, f.Error()})
	}
	for _, m := range r.Misaligned {
		out = append(out, Diagnostic{SevWarning, DiagAlignment, m.Index, m.Error()})
	}
	for _, d := range r.Duplicates {
		idx := -1
		if len(d.Indexes) > 0 {
			idx = d.Indexes[len(d.Indexes)-1]
		}
		out = append(out, Diagnostic{SevWarning, DiagDuplicate, idx, d.Error()})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// FormatText returns a human-readable multi-line report
func (r ValidationReport) FormatText() string {
	var b strings.Builder
	b.WriteString(r.Usage.String())
	b.WriteString("\n")
	diags := r.Diagnostics()
	if len(diags) == 0 {
		b.WriteString("No issues found\n")
		return b.String()
	}
	for _, d := range diags {
		b.WriteString("  ")
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String()
}
