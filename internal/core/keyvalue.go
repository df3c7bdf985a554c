package core

import (
	"slices"
	"strings"
)

// KeyValueName is the registry key of the key-value strategy.
const KeyValueName = "KEY_VALUE"

func init() {
	Register(KeyValueStrategy{})
}

// KeyValueStrategy reads "field<delim>value" lines and starts a new record
// each time the pivot field (the first header) shows up again.
//
// Lines without the delimiter and lines whose key is not a header are skipped.
type KeyValueStrategy struct{}

// Name implements Strategy.
func (KeyValueStrategy) Name() string { return KeyValueName }

// Execute implements Strategy.
func (KeyValueStrategy) Execute(lines []string, headers []string, opts Options) []Record {
	if len(headers) == 0 {
		return nil
	}

	pivot := headers[0]
	delim := opts.delimiter()

	var records []Record
	current := Record{}

	for _, line := range lines {
		idx := strings.Index(line, delim)
		if idx == -1 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+len(delim):])

		// Only the pivot, itself a header, can close a record.
		if key == pivot && len(current) > 0 {
			records = append(records, current)
			current = Record{}
		}

		if slices.Contains(headers, key) {
			current[key] = value
		}
	}

	if len(current) > 0 {
		records = append(records, current)
	}

	return records
}
