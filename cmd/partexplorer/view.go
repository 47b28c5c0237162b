package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/partkit/pkg/types"
)

const (
	indexWidth = 4
	humanWidth = 11
)

// columnWidths holds the display width of each field, in file order.
var columnWidths = [types.FieldCount]int{16, 8, 10, 10, 10, 12}

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.renderMain()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderTable(),
		m.renderUsage(),
		m.renderStatus(),
	)
}

// renderHeader renders the title line with file path and flash size
func (m Model) renderHeader() string {
	parts := []string{
		headerStyle.Render("Partition Table Editor"),
		pathStyle.Render(m.path),
		helpStyle.Render("flash " + types.FlashSizeLabel(m.table.Capacity())),
	}
	if m.dirty {
		parts = append(parts, dirtyStyle.Render("[modified]"))
	}
	return strings.Join(parts, "  ")
}

// renderTable renders the header row and the visible window of entries
func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString(tableHeaderStyle.Render(pad("#", indexWidth)))
	for _, f := range types.Fields {
		b.WriteString(tableHeaderStyle.Render(pad(f.String(), columnWidths[f])))
	}
	b.WriteString(tableHeaderStyle.Render(pad("Bytes", humanWidth)))
	b.WriteString("\n")

	entries := m.table.Entries()
	if len(entries) == 0 {
		b.WriteString(statusStyle.Render("(no partitions: press a to append one)"))
		return b.String()
	}

	end := min(m.scroll+m.visibleRows(), len(entries))
	for i := m.scroll; i < end; i++ {
		b.WriteString(m.renderRow(i, entries[i]))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderRow(index int, e types.Entry) string {
	selected := index == m.row

	base := tableRowStyle
	if index%2 == 1 {
		base = tableRowAltStyle
	}
	if selected {
		base = tableSelectedStyle
	}

	var b strings.Builder
	b.WriteString(base.Render(pad(fmt.Sprintf("%d", index), indexWidth)))

	for _, f := range types.Fields {
		width := columnWidths[f]
		if selected && f == m.column && m.editing {
			b.WriteString(lipgloss.NewStyle().Width(width).Render(m.input.View()))
			continue
		}

		text, style := cellText(e, f), base
		switch {
		case selected && f == m.column:
			style = cellSelectedStyle
		case f == types.FieldOffset && e.Offset.IsAuto():
			style = autoCellStyle.Inherit(base)
		case f == types.FieldOffset && e.Offset.IsInvalid(),
			f == types.FieldSize && e.Size.IsInvalid():
			style = invalidCellStyle.Inherit(base)
		}
		b.WriteString(style.Render(pad(text, width)))
	}

	human := ""
	if size, ok := e.ResolvedSize(); ok {
		human = size.Human()
	}
	b.WriteString(base.Render(pad(human, humanWidth)))
	return b.String()
}

// cellText is what a cell shows: auto offsets show their placement, or
// "auto" when none could be computed.
func cellText(e types.Entry, f types.Field) string {
	if f == types.FieldOffset && e.Offset.IsAuto() {
		if q, ok := e.Placed(); ok {
			return q.Hex()
		}
		return "auto"
	}
	return e.Get(f)
}

// renderUsage renders the flash usage bar and its summary line
func (m Model) renderUsage() string {
	width := max(m.width-2, 20)
	capacity := m.table.Capacity()
	report := m.table.Report()

	var bar strings.Builder
	used := 0
	for _, e := range m.table.Entries() {
		size, ok := e.ResolvedSize()
		if !ok || size == 0 || used >= width || capacity == 0 {
			continue
		}
		cells := int(float64(size)/float64(capacity)*float64(width) + 0.5)
		cells = min(max(cells, 1), width-used)
		used += cells

		segment := lipgloss.NewStyle().
			Background(kindColor(e)).
			Foreground(lipgloss.Color("#FFFFFF"))
		bar.WriteString(segment.Render(pad(truncate(e.Name, cells), cells)))
	}
	if used < width {
		bar.WriteString(lipgloss.NewStyle().Background(freeColor).Render(strings.Repeat(" ", width-used)))
	}

	summary := statusStyle.Render(report.Usage.String())
	if report.Capacity != nil {
		summary += "  " + errorStyle.Render(fmt.Sprintf("Total partition size exceeds flash size by %s!", report.Capacity.OverBy.Human()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, "", bar.String(), summary)
}

// renderStatus renders the status line and key hints
func (m Model) renderStatus() string {
	var line string
	switch {
	case m.editing:
		name := ""
		if e, ok := m.currentEntry(); ok {
			name = e.Name
		}
		line = helpStyle.Render(fmt.Sprintf("Editing %s of %q: enter to commit, esc to cancel", m.column, name))
	case m.statusMessage != "":
		line = warningStyle.Render(m.statusMessage)
	default:
		diags := m.table.Report().Diagnostics()
		if len(diags) == 0 {
			line = okStyle.Render("✓ No issues found")
		} else {
			first := diags[0]
			line = severityStyle(first.Severity).Render(first.Message)
			if len(diags) > 1 {
				line += statusStyle.Render(fmt.Sprintf("(+%d more)", len(diags)-1))
			}
		}
	}

	var hints []string
	for _, k := range m.keys.ShortHelp() {
		hints = append(hints, k.Help().Key+" "+k.Help().Desc)
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, statusStyle.Render(strings.Join(hints, " • ")))
}

// renderHelpOverlay draws the key reference centred over the main view
func (m Model) renderHelpOverlay() string {
	help := overlay.New(
		NewHelpViewModel(m.keys),
		NewMainViewModel(&m),
		overlay.Center,
		overlay.Center,
		0,
		0,
	)
	return help.View()
}

// helpContent lists every binding grouped as in FullHelp
func helpContent(keys KeyMap) string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	titles := []string{"Navigation", "Editing", "Table", "File"}
	for i, group := range keys.FullHelp() {
		if i < len(titles) {
			b.WriteString(modalTitleStyle.Render(titles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(helpKeyStyle.Width(14).Render(h.Key))
			b.WriteString("  ")
			b.WriteString(helpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render("Offsets shown in grey are placed automatically."))
	return modalStyle.Render(b.String())
}

// pad left-aligns s in a cell of the given width, truncating when needed.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = truncate(s, width-1)
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}
