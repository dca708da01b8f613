// Package ingest implements the tabular ingestion core: encoding resolution,
// separator detection, quote-aware tokenizing, column naming, and the
// assemblers that normalize delimited text and spreadsheet ranges into the
// dataset model. All operations here are pure, synchronous and never fail;
// malformed input degrades to a best-effort result, never an error.
package ingest

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding is one entry of the fixed text-encoding registry: a name, the
// byte-order-mark preamble that identifies it, and its decoder.
type Encoding struct {
	Name     string
	Preamble []byte
	impl     encoding.Encoding
}

// encodingRegistry is iterated in fixed order; entries with longer preambles
// precede their prefixes so FF FE 00 00 resolves as UTF-32 LE, not UTF-16 LE.
var encodingRegistry = []Encoding{
	{Name: "utf-8", Preamble: []byte{0xEF, 0xBB, 0xBF}, impl: unicode.UTF8},
	{Name: "utf-32le", Preamble: []byte{0xFF, 0xFE, 0x00, 0x00}, impl: utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)},
	{Name: "utf-32be", Preamble: []byte{0x00, 0x00, 0xFE, 0xFF}, impl: utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)},
	{Name: "utf-16le", Preamble: []byte{0xFF, 0xFE}, impl: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	{Name: "utf-16be", Preamble: []byte{0xFE, 0xFF}, impl: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
}

// defaultEncoding is the fixed single-byte fallback, the common default 8-bit
// code page equivalent.
var defaultEncoding = Encoding{Name: "windows-1252", impl: charmap.Windows1252}

// ResolveEncoding returns the first registry encoding whose preamble is a
// byte-exact prefix of data and no longer than data, or the default encoding
// when no preamble matches. It never fails.
func ResolveEncoding(data []byte) Encoding {
	for _, enc := range encodingRegistry {
		if len(enc.Preamble) <= len(data) && bytes.HasPrefix(data, enc.Preamble) {
			return enc
		}
	}
	return defaultEncoding
}

// Decode converts raw bytes to text, skipping the encoding's preamble when
// present. Decoder faults degrade to the raw bytes; no error is ever raised.
func (e Encoding) Decode(data []byte) string {
	if len(e.Preamble) > 0 && bytes.HasPrefix(data, e.Preamble) {
		data = data[len(e.Preamble):]
	}
	decoded, err := e.impl.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
