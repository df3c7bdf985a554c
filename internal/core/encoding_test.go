package core

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{name: "utf-8", label: "utf-8"},
		{name: "utf8 short", label: "utf8"},
		{name: "upper case", label: "UTF-8"},
		{name: "latin1", label: "latin1"},
		{name: "iana name", label: "ISO-8859-1"},
		{name: "windows-1252", label: "windows-1252"},
		{name: "utf16le", label: "utf16le"},
		{name: "iana only", label: "ISO-8859-2"},
		{name: "empty", label: "", wantErr: true},
		{name: "unknown", label: "klingon-8", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := LookupEncoding(tt.label)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEncoding) {
					t.Errorf("LookupEncoding(%q) error = %v, want ErrUnknownEncoding", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupEncoding(%q) error = %v", tt.label, err)
			}
			if enc == nil {
				t.Fatalf("LookupEncoding(%q) returned nil encoding", tt.label)
			}
		})
	}
}

func TestLookupEncoding_Aliases(t *testing.T) {
	enc, err := LookupEncoding("latin1")
	if err != nil {
		t.Fatal(err)
	}
	if enc != charmap.ISO8859_1 {
		t.Errorf("latin1 resolved to %v, want ISO8859_1", enc)
	}

	enc, err = LookupEncoding(" UTF8 ")
	if err != nil {
		t.Fatal(err)
	}
	if enc != unicode.UTF8 {
		t.Errorf("UTF8 resolved to %v, want unicode.UTF8", enc)
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name  string
		label string
		input string
		want  []byte
	}{
		{
			name:  "latin1 single byte",
			label: "latin1",
			input: `"Peña"`,
			want:  []byte("\"Pe\xf1a\""),
		},
		{
			name:  "latin1 unsupported rune replaced",
			label: "latin1",
			input: "€",
			want:  []byte{0x1A},
		},
		{
			name:  "windows-1252 euro",
			label: "windows-1252",
			input: "€",
			want:  []byte{0x80},
		},
		{
			name:  "utf-8 passthrough",
			label: "utf-8",
			input: "Peña €",
			want:  []byte("Peña €"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := LookupEncoding(tt.label)
			if err != nil {
				t.Fatal(err)
			}
			got, err := EncodeText(enc, tt.input)
			if err != nil {
				t.Fatalf("EncodeText() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeText() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestCharsetName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{label: "latin1", want: "ISO-8859-1"},
		{label: "binary", want: "ISO-8859-1"},
		{label: "cp1252", want: "windows-1252"},
		{label: "Windows-1252", want: "windows-1252"},
		{label: "latin9", want: "ISO-8859-15"},
		{label: "utf8", want: "UTF-8"},
		{label: "klingon", want: "klingon"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := CharsetName(tt.label); got != tt.want {
				t.Errorf("CharsetName(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
