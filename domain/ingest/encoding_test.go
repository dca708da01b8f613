package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func utf16le(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func TestResolveEncodingByPreamble(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"utf-8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "utf-8"},
		{"utf-16le bom", []byte{0xFF, 0xFE, 'h', 0x00}, "utf-16le"},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0x00, 'h'}, "utf-16be"},
		{"utf-32le bom", []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0, 0, 0}, "utf-32le"},
		{"utf-32be bom", []byte{0x00, 0x00, 0xFE, 0xFF, 0, 0, 0, 'h'}, "utf-32be"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveEncoding(tc.data).Name)
		})
	}
}

func TestResolveEncodingDefaultsWithoutPreamble(t *testing.T) {
	assert.Equal(t, "windows-1252", ResolveEncoding([]byte("plain text")).Name)
	assert.Equal(t, "windows-1252", ResolveEncoding(nil).Name)
	// A preamble longer than the input cannot match.
	assert.Equal(t, "windows-1252", ResolveEncoding([]byte{0xEF, 0xBB}).Name)
}

func TestDecodeStripsPreamble(t *testing.T) {
	enc := ResolveEncoding(utf16le("a,b"))
	assert.Equal(t, "a,b", enc.Decode(utf16le("a,b")))

	utf8 := []byte{0xEF, 0xBB, 0xBF, 'x', 'y'}
	assert.Equal(t, "xy", ResolveEncoding(utf8).Decode(utf8))
}

func TestDecodeWindows1252(t *testing.T) {
	// 0xE9 is e-acute in Windows-1252.
	enc := ResolveEncoding([]byte{'c', 'a', 'f', 0xE9})
	assert.Equal(t, "café", enc.Decode([]byte{'c', 'a', 'f', 0xE9}))
}

func TestRegistryPrefersLongerPreambles(t *testing.T) {
	// FF FE 00 00 must resolve as UTF-32 LE even though FF FE alone would
	// match UTF-16 LE.
	data := []byte{0xFF, 0xFE, 0x00, 0x00, 'a', 0, 0, 0}
	assert.Equal(t, "utf-32le", ResolveEncoding(data).Name)
}
