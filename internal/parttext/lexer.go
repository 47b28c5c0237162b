package parttext

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/partkit/pkg/types"
)

// decodeInput converts raw file bytes to UTF-8 text.
//
// With no explicit encoding, a BOM decides (UTF-8, UTF-16LE, UTF-16BE); text
// without a BOM is used as-is when it is valid UTF-8 and read as
// Windows-1252 otherwise, which is what editors on Windows tend to save.
func decodeInput(data []byte, enc string) (string, error) {
	switch strings.ToUpper(enc) {
	case "":
		return autoDecode(data)
	case types.EncodingUTF8:
		return string(bytes.TrimPrefix(data, UTF8BOM)), nil
	case types.EncodingUTF16LE:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		if !bytes.HasPrefix(data, UTF16LEBOM) {
			dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		}
		out, err := dec.Bytes(data)
		if err != nil {
			return "", fmt.Errorf("parttext: decode UTF-16LE: %w", err)
		}
		return string(out), nil
	case types.EncodingWindows1252:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("parttext: decode Windows-1252: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("parttext: %w: %q", types.ErrUnsupportedEncoding, enc)
	}
}

func autoDecode(data []byte) (string, error) {
	if bytes.HasPrefix(data, UTF16LEBOM) || bytes.HasPrefix(data, UTF16BEBOM) || bytes.HasPrefix(data, UTF8BOM) {
		// BOMOverride picks the decoder matching the BOM and strips it
		out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
		if err != nil {
			return "", fmt.Errorf("parttext: decode: %w", err)
		}
		return string(out), nil
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("parttext: decode Windows-1252: %w", err)
	}
	return string(out), nil
}

// encodeOutput converts rendered text to the requested encoding.
func encodeOutput(text string, opts types.RenderOptions) ([]byte, error) {
	switch strings.ToUpper(opts.OutputEncoding) {
	case "", types.EncodingUTF8:
		if opts.WithBOM {
			out := make([]byte, 0, len(UTF8BOM)+len(text))
			out = append(out, UTF8BOM...)
			return append(out, text...), nil
		}
		return []byte(text), nil
	case types.EncodingUTF16LE:
		policy := unicode.IgnoreBOM
		if opts.WithBOM {
			policy = unicode.UseBOM
		}
		out, err := unicode.UTF16(unicode.LittleEndian, policy).NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("parttext: encode UTF-16LE: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("parttext: %w: %q", types.ErrUnsupportedEncoding, opts.OutputEncoding)
	}
}
