package parttext

import (
	"github.com/joshuapare/partkit/pkg/types"
)

// Decode converts raw file bytes into rows. It fails only when an explicit
// encoding is unsupported or the bytes cannot be decoded with it.
func Decode(data []byte, opts types.ParseOptions) (Document, error) {
	text, err := decodeInput(data, opts.InputEncoding)
	if err != nil {
		return Document{}, err
	}
	return Parse(text), nil
}

// Encode renders rows and converts them to the requested encoding.
func Encode(rows []types.Row, opts types.RenderOptions) ([]byte, error) {
	return encodeOutput(Render(rows, opts.Newline), opts)
}
