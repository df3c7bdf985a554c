package core

// lines.go loads input text and turns it into the raw line sequence the
// strategies consume.
//
// The reader chain is:
//
//  1. BOMSkippingReader drops a leading UTF-8 BOM (only for UTF-8 input)
//  2. The configured decoder converts the bytes to UTF-8
//  3. CountingReader tracks bytes read for logging
//
// The whole input is loaded into memory; large files are out of scope.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
// Windows editors commonly prepend it.
type BOMSkippingReader struct {
	reader  *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{reader: bufio.NewReader(r)}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true
		// A short peek means the input cannot start with a full BOM.
		if head, err := r.reader.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			if _, err := r.reader.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return r.reader.Read(p)
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// ReadLines decodes r with enc and returns its trimmed, non-blank lines.
// It also returns the number of raw bytes consumed.
func ReadLines(r io.Reader, enc encoding.Encoding) ([]string, int64, error) {
	counter := NewCountingReader(r)

	var src io.Reader = counter
	if isUTF8(enc) {
		src = NewBOMSkippingReader(src)
	}

	content, err := io.ReadAll(transform.NewReader(src, enc.NewDecoder()))
	if err != nil {
		return nil, counter.BytesRead, fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	return SplitLines(string(content)), counter.BytesRead, nil
}

// SplitLines splits on "\n" or "\r\n", trims each line and drops blank ones.
// Trimming also removes U+FEFF, so a BOM left by a UTF-16 decoder never
// sticks to the first key.
func SplitLines(content string) []string {
	raw := strings.Split(content, "\n")

	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimFunc(l, isLineSpace)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// isLineSpace reports whitespace or a zero width no-break space (BOM).
func isLineSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
