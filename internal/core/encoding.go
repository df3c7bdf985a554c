package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	// DefaultInputEncoding is used when the format descriptor names none.
	DefaultInputEncoding = "utf-8"

	// DefaultOutputEncoding is the legacy single-byte encoding spreadsheet
	// tools on the target machines expect.
	DefaultOutputEncoding = "latin1"
)

// encodingAliases covers the short labels used in descriptor files that the
// IANA registry either lacks or maps differently.
var encodingAliases = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"latin1":       charmap.ISO8859_1,
	"latin-1":      charmap.ISO8859_1,
	"binary":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"latin9":       charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"utf16le":      unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"ucs2":         unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"ucs-2":        unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
}

// LookupEncoding resolves an encoding label, case-insensitively.
// Known short labels are tried first, then the IANA registry.
func LookupEncoding(name string) (encoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}

	if enc, ok := encodingAliases[label]; ok {
		return enc, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// isUTF8 reports whether enc is plain UTF-8.
func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8
}

// EncodeText converts s to enc. Characters enc cannot represent are replaced
// with the encoding's substitute byte instead of failing the conversion.
func EncodeText(enc encoding.Encoding, s string) ([]byte, error) {
	if isUTF8(enc) {
		return []byte(s), nil
	}

	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).String(s)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return []byte(out), nil
}

// CharsetName returns the MIME charset name for an encoding label, such as
// ISO-8859-1 for latin1. Unknown labels are returned unchanged.
func CharsetName(label string) string {
	enc, err := LookupEncoding(label)
	if err != nil {
		return label
	}
	name, err := ianaindex.MIME.Name(enc)
	if err != nil || name == "" {
		return label
	}
	return name
}
