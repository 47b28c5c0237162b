package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/partkit/cmd/partexplorer/logger"
	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

const statusTimeout = 2 * time.Second

// clearStatusMsg clears the transient status message.
type clearStatusMsg struct{}

// savedMsg reports the outcome of a save.
type savedMsg struct {
	path string
	err  error
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	err error
}

// clipboardWrite is swapped out by tests.
var clipboardWrite = clipboard.WriteAll

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-20, 10)
		m.clampCursor()
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case savedMsg:
		if msg.err != nil {
			logger.Error("save failed", "path", msg.path, "error", msg.err)
			m.statusMessage = fmt.Sprintf("Save failed: %v", msg.err)
		} else {
			logger.Info("saved table", "path", msg.path)
			m.dirty = false
			m.statusMessage = "Saved " + msg.path
		}
		return m, clearStatusAfter(statusTimeout)

	case copiedMsg:
		if msg.err != nil {
			m.statusMessage = "Failed to copy table"
		} else {
			m.statusMessage = "Table copied to clipboard"
		}
		return m, clearStatusAfter(statusTimeout)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If help is showing, only keys that close it do anything
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	if m.err != nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) {
		if m.dirty && !m.quitArmed && msg.String() != "ctrl+c" {
			m.quitArmed = true
			m.statusMessage = "Unsaved changes: press q again to quit, s to save"
			return m, nil
		}
		logger.Info("quitting", "dirty", m.dirty)
		return m, tea.Quit
	}
	m.quitArmed = false

	switch {
	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampCursor()
	case key.Matches(msg, m.keys.Left):
		if m.column > types.FieldName {
			m.column--
		}
	case key.Matches(msg, m.keys.Right):
		if int(m.column) < types.FieldCount-1 {
			m.column++
		}
	case key.Matches(msg, m.keys.Home):
		m.row = 0
		m.clampCursor()
	case key.Matches(msg, m.keys.End):
		m.row = m.table.Len() - 1
		m.clampCursor()

	case key.Matches(msg, m.keys.Enter):
		return m.startEdit()
	case key.Matches(msg, m.keys.Esc):
		m.statusMessage = ""

	case key.Matches(msg, m.keys.Append):
		report, err := m.table.AppendDefault()
		if err != nil {
			m.statusMessage = fmt.Sprintf("Append failed: %v", err)
			return m, nil
		}
		m.row = m.table.Len() - 1
		m.clampCursor()
		m.mutated("append", report)
	case key.Matches(msg, m.keys.Insert):
		return m.insertAtCursor()
	case key.Matches(msg, m.keys.Delete):
		return m.deleteAtCursor()
	case key.Matches(msg, m.keys.FlashSize):
		next := types.NextFlashSize(m.table.Capacity())
		report := m.table.SetCapacity(next)
		logger.Debug("flash size changed", "capacity", next)
		m.statusMessage = "Flash size: " + types.FlashSizeLabel(next)
		m.showReport(report)
		return m, clearStatusAfter(statusTimeout)
	case key.Matches(msg, m.keys.Recalculate):
		m.mutated("recalculate", m.table.Recalculate())

	case key.Matches(msg, m.keys.Save):
		m.statusMessage = "Saving..."
		return m, saveCmd(m.path, m.table, m.opts)
	case key.Matches(msg, m.keys.Copy):
		return m, copyCmd(m.table.Render())
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

// startEdit opens the input on the cell under the cursor.
func (m Model) startEdit() (tea.Model, tea.Cmd) {
	e, ok := m.currentEntry()
	if !ok {
		m.statusMessage = "No partition to edit: press a to append one"
		return m, nil
	}
	text := e.Get(m.column)
	if m.column == types.FieldOffset && e.Offset.IsAuto() {
		// Editing an auto offset starts empty so Enter keeps it auto.
		text = ""
	}
	m.editing = true
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.input.Placeholder = m.column.String()
	return m, m.input.Focus()
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		return m.commitEdit()
	case key.Matches(msg, m.keys.Esc):
		m.editing = false
		m.input.Blur()
		m.statusMessage = "Edit cancelled"
		return m, clearStatusAfter(statusTimeout)
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitEdit writes the input into the table through SetField.
func (m Model) commitEdit() (tea.Model, tea.Cmd) {
	m.editing = false
	m.input.Blur()

	report, err := m.table.SetField(m.row, m.column, m.input.Value())
	if err != nil {
		logger.Warn("edit rejected", "row", m.row, "field", m.column, "error", err)
		m.statusMessage = fmt.Sprintf("Edit failed: %v", err)
		return m, clearStatusAfter(statusTimeout)
	}
	m.mutated("set "+m.column.String(), report)
	return m, nil
}

func (m Model) insertAtCursor() (tea.Model, tea.Cmd) {
	index := m.row
	if m.table.Len() == 0 {
		index = 0
	}
	report, err := m.table.Insert(index, m.table.DefaultRow())
	if err != nil {
		m.statusMessage = fmt.Sprintf("Insert failed: %v", err)
		return m, nil
	}
	m.row = index
	m.clampCursor()
	m.mutated("insert", report)
	return m, nil
}

func (m Model) deleteAtCursor() (tea.Model, tea.Cmd) {
	if m.table.Len() == 0 {
		m.statusMessage = "Nothing to delete"
		return m, clearStatusAfter(statusTimeout)
	}
	report, err := m.table.Delete(m.row)
	if err != nil {
		m.statusMessage = fmt.Sprintf("Delete failed: %v", err)
		return m, nil
	}
	m.clampCursor()
	m.mutated("delete", report)
	return m, nil
}

// mutated records an edit and surfaces its report.
func (m *Model) mutated(action string, report types.ValidationReport) {
	logger.Debug("table mutated", "action", action, "row", m.row, "entries", m.table.Len(), "ok", report.OK())
	m.dirty = true
	m.statusMessage = ""
	m.showReport(report)
}

// showReport puts the most severe diagnostic in the status line.
func (m *Model) showReport(report types.ValidationReport) {
	if diags := report.Diagnostics(); len(diags) > 0 && m.statusMessage == "" {
		m.statusMessage = diags[0].Message
	}
}

// saveCmd writes the table on the update goroutine and delivers the outcome
// as a savedMsg.
func saveCmd(path string, t *table.Table, opts *partition.Options) tea.Cmd {
	err := partition.Save(path, t, opts)
	return func() tea.Msg {
		return savedMsg{path: path, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboardWrite(text)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
