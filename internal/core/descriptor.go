package core

// descriptor.go loads the two documents that drive a conversion:
//
//   - the format descriptor (formato-entrada.json): strategy, delimiter, encodings
//   - the header descriptor (encabezado-tabla.json): ordered field names
//
// Both may be JSON or YAML; the decoder is chosen by file extension.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatDescriptor selects and configures the parsing strategy.
type FormatDescriptor struct {
	// Tipo is the strategy key: KEY_VALUE or SEQUENTIAL.
	Tipo string `json:"tipo" yaml:"tipo"`

	// Delimitador splits key from value (KEY_VALUE only, default ";").
	Delimitador string `json:"delimitador,omitempty" yaml:"delimitador,omitempty"`

	// Codificacion is the input text encoding (default utf-8).
	Codificacion string `json:"codificacion,omitempty" yaml:"codificacion,omitempty"`

	// CodificacionSalida overrides the configured output encoding.
	CodificacionSalida string `json:"codificacionSalida,omitempty" yaml:"codificacionSalida,omitempty"`
}

// Options returns the strategy options carried by the descriptor.
func (f FormatDescriptor) Options() Options {
	return Options{Delimiter: f.Delimitador}
}

// InputEncoding returns the input encoding label, defaulting to utf-8.
func (f FormatDescriptor) InputEncoding() string {
	if strings.TrimSpace(f.Codificacion) == "" {
		return DefaultInputEncoding
	}
	return f.Codificacion
}

// HeaderDescriptor lists the output columns in order.
type HeaderDescriptor struct {
	Campos []string `json:"campos" yaml:"campos"`
}

// Descriptors bundles both documents for one conversion setup.
type Descriptors struct {
	Format  FormatDescriptor
	Headers []string
}

// LoadDescriptors loads and validates both descriptor files.
func LoadDescriptors(formatPath, headerPath string) (*Descriptors, error) {
	format, err := LoadFormatDescriptor(formatPath)
	if err != nil {
		return nil, err
	}

	headers, err := LoadHeaders(headerPath)
	if err != nil {
		return nil, err
	}

	return &Descriptors{Format: format, Headers: headers}, nil
}

// LoadFormatDescriptor reads the format descriptor at path.
func LoadFormatDescriptor(path string) (FormatDescriptor, error) {
	var f FormatDescriptor
	if err := decodeDocument(path, &f); err != nil {
		return FormatDescriptor{}, err
	}
	f.Tipo = strings.TrimSpace(f.Tipo)
	return f, nil
}

// LoadHeaders reads the header descriptor at path and returns the trimmed
// field names. An absent or empty "campos" list is an error.
func LoadHeaders(path string) ([]string, error) {
	var h HeaderDescriptor
	if err := decodeDocument(path, &h); err != nil {
		return nil, err
	}

	if len(h.Campos) == 0 {
		return nil, fmt.Errorf("%w: %s must contain a non-empty 'campos' list", ErrMalformedConfig, path)
	}

	headers := make([]string, len(h.Campos))
	for i, c := range h.Campos {
		headers[i] = strings.TrimSpace(c)
	}
	return headers, nil
}

// decodeDocument reads path and decodes it into v as JSON or YAML.
func decodeDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingConfigFile, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}

	return nil
}
