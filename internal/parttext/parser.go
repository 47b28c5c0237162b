package parttext

import (
	"bufio"
	"strings"

	"github.com/joshuapare/partkit/pkg/types"
)

// Document is the textual content of a partition table file.
type Document struct {
	Rows []types.Row

	// Newline is the line ending the source used ("\n" or "\r\n").
	Newline string
}

// Parse splits table text into rows.
//
// Blank lines and lines whose first non-whitespace character is '#' are
// skipped. Each remaining line is split on ',' and every field trimmed;
// fields map positionally to name, type, subtype, offset, size, flags.
// Missing trailing fields are empty and extra fields are ignored, since the
// format is edited by hand. Parse never fails.
func Parse(text string) Document {
	doc := Document{
		Rows:    make([]types.Row, 0, InitialRowCapacity),
		Newline: detectNewline(text),
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	buf := make([]byte, 0, ScannerInitialBufferSize)
	scanner.Buffer(buf, ScannerMaxLineSize)

	for scanner.Scan() {
		trim := strings.TrimSpace(scanner.Text())
		if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
			continue
		}
		doc.Rows = append(doc.Rows, parseLine(trim))
	}
	if scanner.Err() != nil {
		// Only an over-long line stops the scanner; fall back to a plain split
		// so parsing stays total.
		return parseSlow(text, doc.Newline)
	}
	return doc
}

func parseSlow(text, newline string) Document {
	doc := Document{Newline: newline}
	for _, line := range strings.Split(text, LF) {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
			continue
		}
		doc.Rows = append(doc.Rows, parseLine(trim))
	}
	return doc
}

func parseLine(line string) types.Row {
	var row types.Row
	for i, col := range strings.SplitN(line, FieldSeparator, types.FieldCount+1) {
		if i >= types.FieldCount {
			break
		}
		row.Set(types.Fields[i], strings.TrimSpace(col))
	}
	return row
}

// detectNewline reports the first line ending in text, defaulting to LF.
func detectNewline(text string) string {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return CRLF
	}
	return LF
}
