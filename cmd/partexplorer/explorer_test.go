package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/partkit/pkg/partition"
	"github.com/joshuapare/partkit/pkg/types"
)

func TestNewModel_LoadsTable(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	m := h.GetModel()
	require.NoError(t, m.err)
	assert.Equal(t, 3, m.table.Len())
	assert.False(t, m.dirty)

	q, ok := h.Entry(1).Placed()
	require.True(t, ok)
	assert.Equal(t, types.Quantity(0xF000), q)
}

func TestNewModel_MissingFileStartsEmpty(t *testing.T) {
	h := NewTestHelper(t, "")

	m := h.GetModel()
	require.NoError(t, m.err)
	assert.Equal(t, 0, m.table.Len())
	assert.Contains(t, h.GetView(), "no partitions")
}

func TestNewModel_DecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partitions.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	m := NewModel(path, &partition.Options{Encoding: "EBCDIC"})
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Press q to quit")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, updated.(Model).table.Len())
}

func TestCursorMovement(t *testing.T) {
	h := NewTestHelper(t, sampleCSV).SendWindowSize(120, 40)

	h.SendKey(tea.KeyDown).SendKey(tea.KeyDown).SendKey(tea.KeyDown)
	assert.Equal(t, 2, h.GetModel().row, "cursor stops on the last row")

	h.SendKeyRune('k')
	assert.Equal(t, 1, h.GetModel().row)

	h.SendKeyRune('g')
	assert.Equal(t, 0, h.GetModel().row)
	h.SendKeyRune('G')
	assert.Equal(t, 2, h.GetModel().row)

	h.SendKey(tea.KeyLeft)
	assert.Equal(t, types.FieldName, h.GetModel().column, "column stops at Name")
	for range 10 {
		h.SendKey(tea.KeyRight)
	}
	assert.Equal(t, types.FieldFlags, h.GetModel().column, "column stops at Flags")
}

func TestScrollFollowsCursor(t *testing.T) {
	var b strings.Builder
	b.WriteString("# Name, Type, SubType, Offset, Size, Flags\n")
	for i := range 30 {
		b.WriteString("p" + string(rune('a'+i%26)) + ", data, nvs, , 0x1000,\n")
	}
	h := NewTestHelper(t, b.String()).SendWindowSize(100, 15)

	visible := h.GetModel().visibleRows()
	for range 20 {
		h.SendKey(tea.KeyDown)
	}
	m := h.GetModel()
	assert.Equal(t, 20, m.row)
	assert.Equal(t, 20-visible+1, m.scroll)

	h.SendKey(tea.KeyHome)
	assert.Equal(t, 0, h.GetModel().scroll)
}

func TestEditSize_CascadesAndReports(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(0, types.FieldSize).EditCell("0x7000")

	m := h.GetModel()
	assert.False(t, m.editing)
	assert.True(t, m.dirty)
	assert.Equal(t, "0x7000", h.Entry(0).Size.Raw)

	q, ok := h.Entry(1).Placed()
	require.True(t, ok)
	assert.Equal(t, types.Quantity(0x10000), q, "auto offset follows the resized partition")

	report := m.table.Report()
	require.NotNil(t, report.Overlap)
	assert.Equal(t, "factory", report.Overlap.SecondName)
	assert.Contains(t, m.statusMessage, "overlaps")
}

func TestEditName(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(2, types.FieldName).EditCell("ota_0")

	assert.Equal(t, "ota_0", h.Entry(2).Name)
	assert.True(t, h.GetModel().table.Report().OK())
}

func TestEditName_RejectsCommentMarker(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(2, types.FieldName).EditCell("#factory")

	assert.Equal(t, "factory", h.Entry(2).Name)
	assert.False(t, h.GetModel().dirty)
	assert.Contains(t, h.GetModel().statusMessage, "Edit failed")
}

func TestEditInvalidSize_KeepsText(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(2, types.FieldSize).EditCell("lots")

	e := h.Entry(2)
	assert.True(t, e.Size.IsInvalid())
	assert.Equal(t, "lots", e.Size.Raw)
	require.Len(t, h.GetModel().table.Report().FieldErrors, 1)
}

func TestEditAutoOffset_StartsEmpty(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(1, types.FieldOffset).SendKey(tea.KeyEnter)

	m := h.GetModel()
	require.True(t, m.editing)
	assert.Empty(t, m.input.Value())

	h.SendKey(tea.KeyEnter)
	assert.True(t, h.Entry(1).Offset.IsAuto(), "committing empty text keeps the offset auto")
}

func TestEditCancel(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(0, types.FieldName).SendKey(tea.KeyEnter)
	assert.Equal(t, "nvs", h.GetModel().input.Value())

	h.SendKey(tea.KeyCtrlU).Type("changed").SendKey(tea.KeyEsc)

	m := h.GetModel()
	assert.False(t, m.editing)
	assert.False(t, m.dirty)
	assert.Equal(t, "nvs", h.Entry(0).Name)
	assert.Equal(t, "Edit cancelled", m.statusMessage)
}

func TestEditing_CommandKeysAreText(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(0, types.FieldName).SendKey(tea.KeyEnter).SendKey(tea.KeyCtrlU).Type("data")

	m := h.GetModel()
	assert.True(t, m.editing)
	assert.Equal(t, 3, m.table.Len(), "'a' and 'd' typed into the cell do not append or delete")
	assert.Equal(t, "data", m.input.Value())
}

func TestEdit_EmptyTable(t *testing.T) {
	h := NewTestHelper(t, "")

	h.SendKey(tea.KeyEnter)

	m := h.GetModel()
	assert.False(t, m.editing)
	assert.Contains(t, m.statusMessage, "No partition to edit")
}

func TestAppend(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('a')

	m := h.GetModel()
	require.Equal(t, 4, m.table.Len())
	assert.Equal(t, 3, m.row, "cursor moves to the new partition")
	assert.True(t, m.dirty)

	e := h.Entry(3)
	assert.Equal(t, types.DefaultRow().Name, e.Name)
	q, ok := e.ResolvedOffset()
	require.True(t, ok)
	assert.Equal(t, types.Quantity(0x110000), q)
}

func TestAppend_EmptyTable(t *testing.T) {
	h := NewTestHelper(t, "")

	h.SendKeyRune('a').SendKeyRune('a')

	require.Equal(t, 2, h.GetModel().table.Len())
	first, _ := h.Entry(0).ResolvedOffset()
	second, _ := h.Entry(1).ResolvedOffset()
	assert.Equal(t, types.Quantity(0x8000), first)
	assert.Equal(t, types.Quantity(0x9000), second)
}

func TestInsert(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(1, types.FieldName).SendKeyRune('i')

	m := h.GetModel()
	require.Equal(t, 4, m.table.Len())
	assert.Equal(t, 1, m.row)
	assert.Equal(t, types.DefaultRow().Name, h.Entry(1).Name)
	assert.Equal(t, "phy_init", h.Entry(2).Name)
}

func TestDelete(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(2, types.FieldName).SendKeyRune('d')

	m := h.GetModel()
	assert.Equal(t, 2, m.table.Len())
	assert.Equal(t, 1, m.row, "cursor stays on a row that exists")
	assert.True(t, m.dirty)
}

func TestDelete_EmptyTable(t *testing.T) {
	h := NewTestHelper(t, "")

	h.SendKeyRune('d')

	m := h.GetModel()
	assert.Equal(t, "Nothing to delete", m.statusMessage)
	assert.False(t, m.dirty)
}

func TestFlashSizeCycle(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('f')
	m := h.GetModel()
	assert.Equal(t, types.FlashSize8MB, m.table.Capacity())
	assert.Equal(t, "Flash size: 8MB", m.statusMessage)
	assert.False(t, m.dirty, "flash size is not part of the file")

	h.SendKeyRune('f').SendKeyRune('f').SendKeyRune('f')
	assert.Equal(t, types.FlashSize4MB, h.GetModel().table.Capacity())
}

func TestRecalculate(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('r')

	m := h.GetModel()
	assert.True(t, m.dirty)
	q, ok := h.Entry(1).Placed()
	require.True(t, ok)
	assert.Equal(t, types.Quantity(0xF000), q)
}

func TestSave(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('a')
	require.True(t, h.GetModel().dirty)

	h.SendKeyRune('s')
	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0xF000", "auto offsets are written as placed")
	assert.Contains(t, string(data), types.DefaultRow().Name)

	h.Exec()
	m := h.GetModel()
	assert.False(t, m.dirty)
	assert.Equal(t, "Saved "+h.path, m.statusMessage)
}

func TestSave_MissingFileIsCreated(t *testing.T) {
	h := NewTestHelper(t, "")

	h.SendKeyRune('a').SendKeyRune('s')
	h.Exec()

	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Name"))
}

func TestSave_Failure(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)
	h.model.path = t.TempDir()

	h.SendKeyRune('a').SendKeyRune('s')
	h.Exec()

	m := h.GetModel()
	assert.True(t, m.dirty)
	assert.Contains(t, m.statusMessage, "Save failed")
}

func TestCopy(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	h := NewTestHelper(t, sampleCSV)
	h.SendKeyRune('y')
	h.Exec()

	assert.Equal(t, h.GetModel().table.Render(), copied)
	assert.Equal(t, "Table copied to clipboard", h.GetModel().statusMessage)
}

func TestQuit(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('q')
	assert.IsType(t, tea.QuitMsg{}, h.Exec())
}

func TestQuit_UnsavedChangesNeedsConfirm(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('a').SendKeyRune('q')
	m := h.GetModel()
	assert.Nil(t, h.lastCmd)
	assert.True(t, m.quitArmed)
	assert.Contains(t, m.statusMessage, "Unsaved changes")

	h.SendKeyRune('q')
	assert.IsType(t, tea.QuitMsg{}, h.Exec())
}

func TestQuit_ArmResetByOtherKeys(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('a').SendKeyRune('q').SendKey(tea.KeyDown).SendKeyRune('q')
	assert.Nil(t, h.lastCmd)
	assert.True(t, h.GetModel().quitArmed)
}

func TestQuit_CtrlCAlwaysQuits(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('a').SendKey(tea.KeyCtrlC)
	assert.IsType(t, tea.QuitMsg{}, h.Exec())
}

func TestHelpToggle(t *testing.T) {
	h := NewTestHelper(t, sampleCSV).SendWindowSize(120, 40)
	require.False(t, h.GetModel().showHelp)

	h.SendKeyRune('?')
	assert.True(t, h.GetModel().showHelp)
	assert.Contains(t, h.GetView(), "Keyboard Shortcuts")

	h.SendKeyRune('?')
	assert.False(t, h.GetModel().showHelp)
}

func TestHelpDismissWithEsc(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('?').SendKey(tea.KeyEsc)
	assert.False(t, h.GetModel().showHelp)
}

func TestHelpBlocksOtherKeys(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('?').SendKeyRune('d').SendKeyRune('a').SendKey(tea.KeyDown)

	m := h.GetModel()
	assert.True(t, m.showHelp)
	assert.Equal(t, 3, m.table.Len())
	assert.Equal(t, 0, m.row)
}

func TestClearStatus(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.SendKeyRune('f')
	require.NotEmpty(t, h.GetModel().statusMessage)

	h.send(clearStatusMsg{})
	assert.Empty(t, h.GetModel().statusMessage)
}

func TestView_Table(t *testing.T) {
	h := NewTestHelper(t, sampleCSV).SendWindowSize(120, 40)

	view := h.GetView()
	for _, want := range []string{"Partition Table Editor", "nvs", "phy_init", "factory", "0xF000", "1.00 MB", "Used:", "No issues found", "flash 4MB"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "[modified]")

	h.SendKeyRune('a')
	assert.Contains(t, h.GetView(), "[modified]")
}

func TestView_CapacityWarning(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(2, types.FieldSize).EditCell("4M")

	view := h.GetView()
	assert.Contains(t, view, "exceeds flash size")
}

func TestView_Editing(t *testing.T) {
	h := NewTestHelper(t, sampleCSV)

	h.MoveTo(0, types.FieldSize).SendKey(tea.KeyEnter)
	assert.Contains(t, h.GetView(), `Editing Size of "nvs"`)
}

func TestKindColor(t *testing.T) {
	tests := []struct {
		kind, subKind, name string
		want                string
	}{
		{"app", "ota_0", "ota_0", string(appColor)},
		{"app", "factory", "factory", string(factoryColor)},
		{"data", "nvs", "nvs", string(nvsColor)},
		{"data", "phy", "phy_init", string(phyColor)},
		{"data", "spiffs", "storage", string(dataColor)},
		{"0x40", "0x01", "custom", string(otherColor)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := types.Entry{Kind: tt.kind, SubKind: tt.subKind, Name: tt.name}
			assert.Equal(t, tt.want, string(kindColor(e)))
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "nvs", truncate("nvs", 5))
	assert.Equal(t, "fa...", truncate("factory", 5))
	assert.Equal(t, "fa", truncate("factory", 2))

	assert.Equal(t, "nvs  ", pad("nvs", 5))
	assert.Equal(t, "f... ", pad("factory", 5))
	assert.Empty(t, pad("x", 0))
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    cliArgs
		wantErr bool
	}{
		{"path only", []string{"p.csv"}, cliArgs{path: "p.csv"}, false},
		{"flags after path", []string{"p.csv", "-d", "--flash-size", "8MB"}, cliArgs{path: "p.csv", debug: true, flashSize: "8MB"}, false},
		{"config", []string{"--config", "c.yaml", "p.csv"}, cliArgs{path: "p.csv", configPath: "c.yaml"}, false},
		{"log level", []string{"p.csv", "--log-level", "warn"}, cliArgs{path: "p.csv", logLevel: "warn"}, false},
		{"help without path", []string{"-h"}, cliArgs{help: true}, false},
		{"version without path", []string{"--version"}, cliArgs{version: true}, false},
		{"no path", []string{"-d"}, cliArgs{debug: true}, true},
		{"missing value", []string{"p.csv", "--flash-size"}, cliArgs{path: "p.csv"}, true},
		{"two paths", []string{"a.csv", "b.csv"}, cliArgs{path: "a.csv"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogOptions(t *testing.T) {
	tests := []struct {
		name        string
		args        cliArgs
		wantEnabled bool
		wantLevel   string
	}{
		{"off by default", cliArgs{path: "p.csv"}, false, ""},
		{"debug flag", cliArgs{path: "p.csv", debug: true}, true, "debug"},
		{"explicit level", cliArgs{path: "p.csv", logLevel: "warn"}, true, "warn"},
		{"explicit level wins over debug", cliArgs{path: "p.csv", debug: true, logLevel: "error"}, true, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := logOptions(tt.args)
			assert.Equal(t, tt.wantEnabled, opts.Enabled)
			assert.Equal(t, tt.wantLevel, opts.Level)
			assert.Equal(t, "p.csv", opts.Table)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "partkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("flash_size: 8MB\nbackup: false\n"), 0o644))

	opts, err := options(cliArgs{configPath: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, types.FlashSize8MB, opts.Capacity)
	assert.False(t, opts.CreateBackup)
	assert.NotNil(t, opts.Logger)

	opts, err = options(cliArgs{configPath: cfgPath, flashSize: "16MB"})
	require.NoError(t, err)
	assert.Equal(t, types.FlashSize16MB, opts.Capacity)

	_, err = options(cliArgs{configPath: cfgPath, flashSize: "huge"})
	assert.Error(t, err)
}
