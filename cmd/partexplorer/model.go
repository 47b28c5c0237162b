package main

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/partkit/cmd/partexplorer/logger"
	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
	"github.com/joshuapare/partkit/table"
)

// Layout constants
const (
	defaultWidth  = 100
	defaultHeight = 30
	chromeHeight  = 9 // header, table header, usage bar, status lines
	minTableRows  = 3
)

// Model is the main application model
type Model struct {
	path  string
	opts  *partition.Options
	table *table.Table
	keys  KeyMap

	// Cursor: row is the entry index, column the field being looked at
	row    int
	column types.Field
	scroll int

	// Cell editing
	editing bool
	input   textinput.Model

	width  int
	height int

	// Help overlay
	showHelp bool

	// Unsaved mutations since load or the last save
	dirty bool
	// Set by a first quit with unsaved changes; a second quit exits
	quitArmed bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// NewModel loads path (an absent file starts an empty table) and returns the
// explorer model for it.
func NewModel(path string, opts *partition.Options) Model {
	t, err := partition.LoadOrNew(path, opts)
	if err != nil {
		logger.Error("failed to load table", "path", path, "error", err)
		m := newModel(path, table.New(table.Options{}), opts)
		m.err = err
		return m
	}
	logger.Info("loaded table", "path", path, "entries", t.Len(), "capacity", t.Capacity())
	return newModel(path, t, opts)
}

func newModel(path string, t *table.Table, opts *partition.Options) Model {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 64

	return Model{
		path:   path,
		opts:   opts,
		table:  t,
		keys:   DefaultKeyMap(),
		input:  input,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// visibleRows is how many table rows fit under the chrome.
func (m Model) visibleRows() int {
	return max(m.height-chromeHeight, minTableRows)
}

// clampCursor keeps the cursor on an existing row and in view.
func (m *Model) clampCursor() {
	n := m.table.Len()
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}

	visible := m.visibleRows()
	if m.row < m.scroll {
		m.scroll = m.row
	}
	if m.row >= m.scroll+visible {
		m.scroll = m.row - visible + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// currentEntry returns the entry under the cursor.
func (m Model) currentEntry() (types.Entry, bool) {
	e, err := m.table.Entry(m.row)
	if err != nil {
		return types.Entry{}, false
	}
	return e, true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}
