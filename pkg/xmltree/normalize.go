package xmltree

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NormalizeXMLText returns the document as UTF-8 bytes without byte-order-mark.
// Documents starting with a UTF-16 or UTF-32 byte-order-mark are transcoded to UTF-8.
// Documents without a mark are returned untouched: their prolog encoding is honored by Parse.
func NormalizeXMLText(data []byte) []byte {
	normalized, _ := normalize(data)
	return normalized
}

// normalize also reports whether the input was transcoded from a wide encoding,
// in which case the encoding declared in the prolog no longer applies.
func normalize(data []byte) ([]byte, bool) {
	var enc encoding.Encoding

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], false
	case bytes.HasPrefix(data, bomUTF32LE):
		enc = utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM)
	case bytes.HasPrefix(data, bomUTF32BE):
		enc = utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM)
	case bytes.HasPrefix(data, bomUTF16LE):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(data, bomUTF16BE):
		enc = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	default:
		return data, false
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return data, false
	}
	return decoded, true
}

// charsetReader builds the xml.Decoder CharsetReader. Labels of the UTF-16/32 family are
// passed through once the document has already been transcoded to UTF-8.
func charsetReader(transcoded bool) func(string, io.Reader) (io.Reader, error) {
	return func(label string, input io.Reader) (io.Reader, error) {
		lower := strings.ToLower(label)
		if transcoded && (strings.HasPrefix(lower, "utf-16") || strings.HasPrefix(lower, "utf-32")) {
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}
}
