package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9800"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4caf50"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#607d8b"))
)

// paint applies a style unless --no-color is set.
func paint(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// entryJSON is the JSON form of one partition.
type entryJSON struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	SubType   string `json:"subtype"`
	Offset    string `json:"offset"`
	Size      string `json:"size"`
	Flags     string `json:"flags"`
	Auto      bool   `json:"auto"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	SizeBytes uint64 `json:"size_bytes,omitempty"`
	Valid     bool   `json:"valid"`
}

func entryRecords(t *table.Table) []entryJSON {
	entries := t.Entries()
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		row := e.Row()
		rec := entryJSON{
			Index:   i,
			Name:    row.Name,
			Type:    row.Type,
			SubType: row.SubType,
			Offset:  row.Offset,
			Size:    row.Size,
			Flags:   row.Flags,
			Auto:    e.Offset.IsAuto(),
			Valid:   e.Valid(),
		}
		if size, ok := e.ResolvedSize(); ok {
			rec.SizeBytes = uint64(size)
		}
		if start, end, ok := e.Extent(); ok {
			rec.Start = start.Hex()
			rec.End = end.Hex()
		}
		out[i] = rec
	}
	return out
}

// tableJSON is the JSON form of a whole table.
type tableJSON struct {
	File        string                 `json:"file"`
	Capacity    string                 `json:"capacity"`
	Entries     []entryJSON            `json:"entries"`
	Report      types.ValidationReport `json:"report"`
	Diagnostics []types.Diagnostic     `json:"diagnostics"`
}

func newTableJSON(path string, t *table.Table) tableJSON {
	diags := t.Report().Diagnostics()
	if diags == nil {
		diags = []types.Diagnostic{}
	}
	return tableJSON{
		File:        path,
		Capacity:    types.FlashSizeLabel(t.Capacity()),
		Entries:     entryRecords(t),
		Report:      t.Report(),
		Diagnostics: diags,
	}
}

// printEntries prints the partitions as aligned columns. Offsets placed
// automatically are marked with '*', values that did not parse with '!'.
func printEntries(t *table.Table) {
	records := entryRecords(t)
	headers := []string{"#", "Name", "Type", "SubType", "Offset", "Size", "End", "Flags"}
	rows := make([][]string, 0, len(records))
	anyAuto, anyBad := false, false

	entries := t.Entries()
	for i, r := range records {
		offset := r.Offset
		if r.Auto {
			offset += "*"
			anyAuto = true
		}
		if entries[i].Offset.IsInvalid() {
			offset += "!"
			anyBad = true
		}
		size := r.Size
		if entries[i].Size.IsInvalid() {
			size += "!"
			anyBad = true
		} else if r.SizeBytes > 0 {
			size = fmt.Sprintf("%s (%s)", r.Size, types.Quantity(r.SizeBytes).Human())
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Index), r.Name, r.Type, r.SubType, offset, size, r.End, r.Flags,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	line := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		return strings.TrimRight(b.String(), " ")
	}

	printInfo("%s\n", paint(dimStyle, line(headers)))
	for _, row := range rows {
		printInfo("%s\n", line(row))
	}
	if len(rows) == 0 {
		printInfo("%s\n", paint(dimStyle, "(no partitions)"))
	}
	if anyAuto {
		printInfo("%s\n", paint(dimStyle, "* offset placed automatically"))
	}
	if anyBad {
		printInfo("%s\n", paint(dimStyle, "! value is not a valid number"))
	}
}

// printReport prints the usage line and every diagnostic.
func printReport(r types.ValidationReport) {
	if noColor {
		printInfo("\n%s", r.FormatText())
		return
	}
	printInfo("\n%s\n", r.Usage.String())
	diags := r.Diagnostics()
	if len(diags) == 0 {
		printInfo("%s\n", paint(okStyle, "✓ No issues found"))
		return
	}
	for _, d := range diags {
		style := warnStyle
		mark := "!"
		if d.Severity >= types.SevError {
			style = errorStyle
			mark = "✗"
		}
		printInfo("  %s %s\n", paint(style, mark), d.String())
	}
}

// usageBar draws a width-wide bar of used versus free flash.
func usageBar(u types.Usage, width int) string {
	filled := 0
	if u.CapacityBytes > 0 {
		filled = int(float64(width) * float64(u.UsedBytes) / float64(u.CapacityBytes))
	}
	filled = min(max(filled, 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if u.UsedBytes > u.CapacityBytes {
		return paint(errorStyle, bar)
	}
	return paint(okStyle, bar)
}
