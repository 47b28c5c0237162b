package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

const sampleCSV = `# Name,   Type, SubType, Offset,  Size, Flags
nvs,      data, nvs,     0x9000,  0x6000,
phy_init, data, phy,     ,        0x1000,
factory,  app,  factory, 0x10000, 1M,
`

// TestHelper drives a Model the way the bubbletea runtime would, keeping
// the command returned by the last message.
type TestHelper struct {
	t       *testing.T
	path    string
	model   Model
	lastCmd tea.Cmd
}

// NewTestHelper writes content to a temp file and opens it. Empty content
// opens a path that does not exist.
func NewTestHelper(t *testing.T, content string) *TestHelper {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partitions.csv")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return &TestHelper{
		t:     t,
		path:  path,
		model: NewModel(path, &partition.Options{Capacity: types.FlashSize4MB}),
	}
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	h.lastCmd = cmd
	return h
}

// SendKey simulates a special key press
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends each rune of s as a key press
func (h *TestHelper) Type(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

// Exec runs the last command and feeds its message back into the model.
// Only use it for commands that return immediately (save, copy, quit).
func (h *TestHelper) Exec() tea.Msg {
	h.t.Helper()
	require.NotNil(h.t, h.lastCmd, "no command to run")
	msg := h.lastCmd()
	if _, quit := msg.(tea.QuitMsg); !quit && msg != nil {
		h.send(msg)
	}
	return msg
}

// MoveTo places the cursor on a row and column using the arrow keys.
func (h *TestHelper) MoveTo(row int, field types.Field) *TestHelper {
	h.SendKey(tea.KeyHome)
	for range row {
		h.SendKey(tea.KeyDown)
	}
	for range types.FieldCount {
		h.SendKey(tea.KeyLeft)
	}
	for range int(field) {
		h.SendKey(tea.KeyRight)
	}
	return h
}

// EditCell replaces the text of the cell under the cursor and commits it.
func (h *TestHelper) EditCell(text string) *TestHelper {
	h.SendKey(tea.KeyEnter)
	h.SendKey(tea.KeyCtrlU)
	h.Type(text)
	return h.SendKey(tea.KeyEnter)
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// Entry returns entry i of the model's table
func (h *TestHelper) Entry(i int) types.Entry {
	h.t.Helper()
	e, err := h.model.table.Entry(i)
	require.NoError(h.t, err)
	return e
}
