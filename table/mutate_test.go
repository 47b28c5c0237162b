package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/partkit/internal/parttext"
	"github.com/joshuapare/partkit/pkg/types"
)

// TestCascade_PinnedEntryNotMoved covers growing an entry ahead of an auto
// entry and a pinned one: the auto entry moves, the pinned entry stays and
// the resulting conflict is reported.
func TestCascade_PinnedEntryNotMoved(t *testing.T) {
	tb := Parse(`a, data, nvs, 0x8000, 0x1000,
b, data, nvs, ,       0x1000,
c, data, nvs, 0x9000, 0x1000,
`, Options{})
	require.Equal(t, types.Quantity(0x9000), offsetOf(t, tb, 1))

	_, err := tb.SetSize(0, "0x2000")
	require.NoError(t, err)
	report := tb.Recalculate()

	assert.Equal(t, types.Quantity(0xA000), offsetOf(t, tb, 1))
	assert.Equal(t, types.Quantity(0x9000), offsetOf(t, tb, 2))

	require.NotNil(t, report.Overlap)
	// a now spans [0x8000,0xA000) and c sits inside it at 0x9000
	assert.Equal(t, 0, report.Overlap.FirstIndex)
	assert.Equal(t, 2, report.Overlap.SecondIndex)
	assert.Equal(t, types.Quantity(0x1000), report.Overlap.OverlapBytes)
	assert.Equal(t, types.Quantity(0xA000), report.Overlap.SuggestedOffset)
}

func TestCascade_GrowPushesChain(t *testing.T) {
	tb := Parse(`nvs, data, nvs, 0x9000, 24K,
phy_init, data, phy, , 4K,
factory, app, factory, , 1M,
`, Options{})

	report, err := tb.SetSize(0, "32K")
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, types.Quantity(0x11000), offsetOf(t, tb, 1))
	assert.Equal(t, types.Quantity(0x12000), offsetOf(t, tb, 2))

	// shrinking pulls them back
	_, err = tb.SetSize(0, "24K")
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0xF000), offsetOf(t, tb, 1))
	assert.Equal(t, types.Quantity(0x10000), offsetOf(t, tb, 2))
}

func TestCascade_PinnedReanchors(t *testing.T) {
	tb := Parse(`a, data, nvs, 0x9000, bad,
b, data, nvs, , 4K,
c, data, nvs, 0x20000, 4K,
d, data, nvs, , 4K,
`, Options{})

	e, _ := tb.Entry(1)
	_, ok := e.ResolvedOffset()
	assert.False(t, ok)
	assert.Equal(t, types.Quantity(0x21000), offsetOf(t, tb, 3))

	// fixing the size lets b be placed
	_, err := tb.SetSize(0, "4K")
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0xA000), offsetOf(t, tb, 1))
}

func TestCascade_InvalidSizeUnplacesLater(t *testing.T) {
	tb := Parse("a, data, nvs, 0x9000, 4K,\nb, data, nvs, , 4K,\n", Options{})
	require.Equal(t, types.Quantity(0xA000), offsetOf(t, tb, 1))

	report, err := tb.SetSize(0, "4Q")
	require.NoError(t, err)
	require.Len(t, report.FieldErrors, 1)
	assert.Equal(t, types.FieldSize, report.FieldErrors[0].Field)

	e, _ := tb.Entry(1)
	_, ok := e.ResolvedOffset()
	assert.False(t, ok)
	assert.Equal(t, "", e.OffsetText())
}

func TestSetField_Offset(t *testing.T) {
	tb := Parse("a, data, nvs, 0x9000, 4K,\nb, data, nvs, , 4K,\n", Options{})

	_, err := tb.SetField(0, types.FieldOffset, "0x20000")
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0x21000), offsetOf(t, tb, 1))

	// clearing a pinned offset makes it auto again
	_, err = tb.SetField(0, types.FieldOffset, "")
	require.NoError(t, err)
	assert.Equal(t, types.BaseOffset, offsetOf(t, tb, 0))
	assert.Equal(t, types.Quantity(0x9000), offsetOf(t, tb, 1))

	// pinning an auto entry keeps the pinned text
	_, err = tb.SetField(1, types.FieldOffset, "64K")
	require.NoError(t, err)
	e, _ := tb.Entry(1)
	assert.True(t, e.Pinned())
	assert.Equal(t, "64K", e.OffsetText())
}

func TestSetField_TextFields(t *testing.T) {
	tb := Parse(espIDFDefault, Options{})

	for _, tc := range []struct {
		field types.Field
		raw   string
	}{
		{types.FieldName, "  storage "},
		{types.FieldType, "data"},
		{types.FieldSubType, "spiffs"},
		{types.FieldFlags, "encrypted"},
	} {
		_, err := tb.SetField(1, tc.field, tc.raw)
		require.NoError(t, err)
	}

	e, _ := tb.Entry(1)
	assert.Equal(t, "storage", e.Name)
	assert.Equal(t, "spiffs", e.SubKind)
	assert.Equal(t, "encrypted", e.Flags)
}

func TestSetField_SizeDelegates(t *testing.T) {
	tb := Parse("a, data, nvs, 0x9000, 4K,\nb, data, nvs, , 4K,\n", Options{})
	_, err := tb.SetField(0, types.FieldSize, "8K")
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0xB000), offsetOf(t, tb, 1))
}

func TestSetField_Errors(t *testing.T) {
	tb := Parse(espIDFDefault, Options{})
	before := tb.Render()

	_, err := tb.SetField(3, types.FieldName, "x")
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	_, err = tb.SetField(-1, types.FieldSize, "4K")
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	_, err = tb.SetSize(10, "4K")
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	_, err = tb.SetField(0, types.Field(42), "x")
	assert.ErrorIs(t, err, types.ErrUnknownField)

	assert.Equal(t, before, tb.Render())
}

func TestSetField_DuplicateNameReported(t *testing.T) {
	tb := Parse(espIDFDefault, Options{})
	report, err := tb.SetField(1, types.FieldName, "nvs")
	require.NoError(t, err)
	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, []int{0, 1}, report.Duplicates[0].Indexes)
}

func TestInsert(t *testing.T) {
	tb := Parse("a, data, nvs, 0x9000, 4K,\nc, data, nvs, , 4K,\n", Options{})

	report, err := tb.Insert(1, types.Row{Name: "b", Type: "data", SubType: "nvs", Size: "8K"})
	require.NoError(t, err)
	assert.True(t, report.OK())
	require.Equal(t, 3, tb.Len())
	assert.Equal(t, types.Quantity(0xA000), offsetOf(t, tb, 1))
	assert.Equal(t, types.Quantity(0xC000), offsetOf(t, tb, 2))

	_, err = tb.Insert(3, types.Row{Name: "d", Size: "4K"})
	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0xD000), offsetOf(t, tb, 3))

	_, err = tb.Insert(0, types.Row{Name: "z", Offset: "0x8000", Size: "4K"})
	require.NoError(t, err)
	e, _ := tb.Entry(0)
	assert.Equal(t, "z", e.Name)
}

func TestInsert_OutOfRange(t *testing.T) {
	tb := Parse(espIDFDefault, Options{})
	before := tb.Render()

	_, err := tb.Insert(4, types.Row{Name: "x"})
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	_, err = tb.Insert(-1, types.Row{Name: "x"})
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	assert.Equal(t, 3, tb.Len())
	assert.Equal(t, before, tb.Render())
}

func TestSetField_RejectsTextThatBreaksTheRow(t *testing.T) {
	tests := []struct {
		name  string
		field types.Field
		raw   string
	}{
		{"comment name", types.FieldName, "#boot"},
		{"indented comment name", types.FieldName, "  # boot"},
		{"separator in name", types.FieldName, "x,y"},
		{"separator in subtype", types.FieldSubType, "nvs,keys"},
		{"separator in size", types.FieldSize, "4K,"},
		{"line break in flags", types.FieldFlags, "encrypted\nreadonly"},
		{"carriage return in type", types.FieldType, "da\rta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := Parse(espIDFDefault, Options{})
			before := tb.Render()

			_, err := tb.SetField(1, tt.field, tt.raw)
			require.ErrorIs(t, err, types.ErrInvalidText)
			assert.Equal(t, before, tb.Render())
			assert.Equal(t, tb.Rows(), Parse(tb.Render(), Options{}).Rows())
		})
	}
}

func TestSetField_HashInsideTextRoundTrips(t *testing.T) {
	tb := Parse(espIDFDefault, Options{})

	_, err := tb.SetField(0, types.FieldName, "nvs#2")
	require.NoError(t, err)
	_, err = tb.SetField(0, types.FieldSubType, "#nvs")
	require.NoError(t, err)

	again := Parse(tb.Render(), Options{})
	require.Equal(t, tb.Len(), again.Len())
	assert.Equal(t, tb.Rows(), again.Rows())
}

func TestInsertAppend_RejectTextThatBreaksTheRow(t *testing.T) {
	tb := Parse(espIDFDefault, Options{})
	before := tb.Render()

	_, err := tb.Insert(1, types.Row{Name: "#spare", Size: "4K"})
	assert.ErrorIs(t, err, types.ErrInvalidText)
	_, err = tb.Append(types.Row{Name: "ota", Type: "app", SubType: "ota_0", Size: "1M", Flags: "a,b"})
	assert.ErrorIs(t, err, types.ErrInvalidText)

	bad := types.Row{Name: "x,y", Size: "4K"}
	withBad := Parse(espIDFDefault, Options{DefaultRow: &bad})
	_, err = withBad.AppendDefault()
	assert.ErrorIs(t, err, types.ErrInvalidText)

	assert.Equal(t, 3, tb.Len())
	assert.Equal(t, before, tb.Render())
	assert.Equal(t, 3, withBad.Len())
}

func TestAppend_Offsets(t *testing.T) {
	tb := New(Options{})

	tb.AppendDefault()
	assert.Equal(t, types.Quantity(0x8000), offsetOf(t, tb, 0))

	tb.AppendDefault()
	assert.Equal(t, types.Quantity(0x9000), offsetOf(t, tb, 1))

	out := tb.Render()
	assert.Equal(t, parttext.Header+"\n"+
		"new_part, data, undefined, 0x8000, 4K, \n"+
		"new_part, data, undefined, 0x9000, 4K, \n", out)
	assert.Len(t, tb.Report().Duplicates, 1)
}

func TestAppend_AfterPinned(t *testing.T) {
	tb := Parse("a, data, nvs, 0x8000, 0x1000,\n", Options{})
	tb.Append(types.Row{Name: "b", Type: "data", SubType: "nvs", Size: "4K"})
	assert.Equal(t, types.Quantity(0x9000), offsetOf(t, tb, 1))

	e, _ := tb.Entry(1)
	assert.True(t, e.Offset.IsAuto())
}

func TestAppend_AfterUnresolved(t *testing.T) {
	tb := Parse("a, data, nvs, 0x10000, 0x1800,\nb, data, nvs, 0x20000, ???,\n", Options{})
	tb.Append(types.Row{Name: "c", Size: "4K"})

	e, _ := tb.Entry(2)
	assert.True(t, e.Pinned(), "no anchor to flow from, so the offset is pinned")
	assert.Equal(t, types.Quantity(0x12000), offsetOf(t, tb, 2))

	tb = Parse("a, data, nvs, zz, 4K,\n", Options{})
	tb.AppendDefault()
	assert.Equal(t, types.BaseOffset, offsetOf(t, tb, 1))
}

func TestAppend_ExplicitOffset(t *testing.T) {
	tb := New(Options{})
	tb.Append(types.Row{Name: "x", Offset: "0x100000", Size: "4K"})
	assert.Equal(t, types.Quantity(0x100000), offsetOf(t, tb, 0))
}

func TestAppendDefault_Configured(t *testing.T) {
	row := types.Row{Name: "storage", Type: "data", SubType: "spiffs", Size: "64K"}
	tb := New(Options{DefaultRow: &row})
	tb.AppendDefault()

	e, _ := tb.Entry(0)
	assert.Equal(t, "storage", e.Name)
	assert.Equal(t, "spiffs", e.SubKind)
	assert.Equal(t, row, tb.DefaultRow())
}

func TestDelete(t *testing.T) {
	tb := Parse(`a, data, nvs, 0x9000, 4K,
b, data, nvs, , 8K,
c, data, nvs, , 4K,
`, Options{})
	require.Equal(t, types.Quantity(0xC000), offsetOf(t, tb, 2))

	_, err := tb.Delete(1)
	require.NoError(t, err)
	require.Equal(t, 2, tb.Len())
	// no cascade on delete
	assert.Equal(t, types.Quantity(0xC000), offsetOf(t, tb, 1))

	tb.Recalculate()
	assert.Equal(t, types.Quantity(0xA000), offsetOf(t, tb, 1))
}

func TestDelete_OnlyEntry(t *testing.T) {
	tb := Parse("a, data, nvs, 0x9000, 4K,\n", Options{})
	report, err := tb.Delete(0)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, parttext.Header+"\n", tb.Render())
}

func TestDelete_OutOfRange(t *testing.T) {
	tb := Parse(espIDFDefault, Options{})
	_, err := tb.Delete(3)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
	assert.Equal(t, 3, tb.Len())
}

func TestSetCapacity(t *testing.T) {
	tb := Parse("a, app, factory, 0x10000, 3M,\nb, data, fat, , 2M,\n", Options{})
	assert.NotNil(t, tb.Report().Capacity)
	assert.Len(t, tb.Report().OutOfBounds, 1)

	report := tb.SetCapacity(types.FlashSize8MB)
	assert.Nil(t, report.Capacity)
	assert.Empty(t, report.OutOfBounds)
	assert.True(t, report.OK())
	assert.Equal(t, report, tb.Report())

	report = tb.SetCapacity(2 * types.MiB)
	require.NotNil(t, report.Capacity)
	assert.Equal(t, 3*types.MiB, report.Capacity.OverBy)
}

func TestRecalculate_CapacityAndOverlap(t *testing.T) {
	tb := Parse("a, app, factory, 0x10000, 3M,\nb, data, fat, 0x20000, 2M,\n", Options{})
	report := tb.Recalculate()
	assert.NotNil(t, report.Overlap)
	assert.NotNil(t, report.Capacity)
	assert.Equal(t, types.Quantity(5*types.MiB), report.Usage.UsedBytes)
}
