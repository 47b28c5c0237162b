package parttext

const (
	// ============================================================================
	// Table File Tokens
	// ============================================================================

	// Header is the comment line written at the top of every rendered table.
	Header = "# Name,   Type, SubType, Offset,  Size, Flags"

	// CommentPrefix marks a comment line (after leading whitespace)
	CommentPrefix = "#"

	// ============================================================================
	// Delimiters
	// ============================================================================

	// FieldSeparator splits a line into columns on input
	FieldSeparator = ","

	// FieldJoiner joins columns on output
	FieldJoiner = ", "

	// ============================================================================
	// Line Endings
	// ============================================================================

	// CRLF is the Windows line ending (carriage return + line feed)
	CRLF = "\r\n"

	// CR is the carriage return character
	CR = "\r"

	// LF is the line feed character
	LF = "\n"

	// ============================================================================
	// Buffer and Parsing Sizes
	// ============================================================================

	// ScannerInitialBufferSize is the initial buffer size for the line scanner
	ScannerInitialBufferSize = 64 * 1024 // 64KB

	// ScannerMaxLineSize is the maximum line size for the line scanner
	ScannerMaxLineSize = 1024 * 1024 // 1MB

	// InitialRowCapacity is the estimated number of rows for pre-allocation
	InitialRowCapacity = 16
)

var (
	// UTF16LEBOM is the byte order mark for UTF-16 little-endian
	UTF16LEBOM = []byte{0xFF, 0xFE}

	// UTF16BEBOM is the byte order mark for UTF-16 big-endian
	UTF16BEBOM = []byte{0xFE, 0xFF}

	// UTF8BOM is the byte order mark for UTF-8
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}
)
