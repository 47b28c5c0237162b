package parttext

import (
	"strings"

	"github.com/joshuapare/partkit/pkg/types"
)

// Render writes the header line followed by one line per row, each row's
// six fields joined by ", ". An empty row set renders the header alone.
func Render(rows []types.Row, newline string) string {
	if newline == "" {
		newline = LF
	}
	var b strings.Builder
	b.Grow(len(Header) + len(newline) + len(rows)*48)
	b.WriteString(Header)
	b.WriteString(newline)
	for _, row := range rows {
		cols := row.Columns()
		b.WriteString(strings.Join(cols[:], FieldJoiner))
		b.WriteString(newline)
	}
	return b.String()
}
