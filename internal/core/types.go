// Package core provides the conversion logic for line-oriented data files.
// This package has no UI dependencies and can be used by any frontend.
package core

import "time"

// Record is one output row, keyed by header name.
// Keys are always drawn from the header list the record was built against.
type Record map[string]string

// Get returns the value for a header, or "" if the record has no value for it.
func (r Record) Get(header string) string {
	return r[header]
}

// DefaultDelimiter separates key from value in KEY_VALUE input lines.
const DefaultDelimiter = ";"

// Options holds the per-invocation settings a strategy may consult.
type Options struct {
	// Delimiter splits a line into key and value (default: ";")
	Delimiter string
}

// delimiter returns the configured delimiter or the default.
func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// Strategy turns raw lines into records.
//
// Implementations must not mutate lines or headers, must be deterministic,
// and must not perform I/O.
type Strategy interface {
	// Name returns the registry key, e.g. "KEY_VALUE".
	Name() string

	// Execute builds records from trimmed, non-blank lines.
	// headers is ordered and non-empty.
	Execute(lines []string, headers []string, opts Options) []Record
}

// Result describes a completed file conversion.
type Result struct {
	RunID      string
	Strategy   string
	InputPath  string
	OutputPath string
	Encoding   string
	Lines      int
	Records    int
	Duration   time.Duration
}

// Output is an in-memory conversion result, already encoded.
type Output struct {
	RunID    string
	Strategy string
	FileName string
	Encoding string
	Records  int
	Data     []byte
}
