package core

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSequentialStrategy_Execute(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		headers []string
		want    []Record
	}{
		{
			name:    "short final chunk is padded",
			lines:   []string{"1", "2", "3", "4", "5"},
			headers: []string{"A", "B", "C"},
			want: []Record{
				{"A": "1", "B": "2", "C": "3"},
				{"A": "4", "B": "5", "C": ""},
			},
		},
		{
			name:    "exact multiple",
			lines:   []string{"x", "y", "z", "w"},
			headers: []string{"A", "B"},
			want: []Record{
				{"A": "x", "B": "y"},
				{"A": "z", "B": "w"},
			},
		},
		{
			name:    "single header",
			lines:   []string{"a", "b"},
			headers: []string{"ONLY"},
			want: []Record{
				{"ONLY": "a"},
				{"ONLY": "b"},
			},
		},
		{
			name:    "lines with delimiters are taken verbatim",
			lines:   []string{"ID;1", "NAME;Ana"},
			headers: []string{"A", "B"},
			want:    []Record{{"A": "ID;1", "B": "NAME;Ana"}},
		},
		{
			name:    "no lines",
			lines:   nil,
			headers: []string{"A"},
			want:    nil,
		},
		{
			name:    "no headers",
			lines:   []string{"1"},
			headers: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SequentialStrategy{}.Execute(tt.lines, tt.headers, Options{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Execute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSequentialStrategy_PositionalMapping(t *testing.T) {
	for numHeaders := 1; numHeaders <= 4; numHeaders++ {
		for numLines := 0; numLines <= 9; numLines++ {
			headers := make([]string, numHeaders)
			for i := range headers {
				headers[i] = fmt.Sprintf("H%d", i)
			}
			lines := make([]string, numLines)
			for i := range lines {
				lines[i] = fmt.Sprintf("v%d", i)
			}

			got := SequentialStrategy{}.Execute(lines, headers, Options{Delimiter: "ignored"})

			wantCount := (numLines + numHeaders - 1) / numHeaders
			if len(got) != wantCount {
				t.Fatalf("H=%d L=%d: got %d records, want %d", numHeaders, numLines, len(got), wantCount)
			}
			for k, rec := range got {
				for i, h := range headers {
					want := ""
					if idx := k*numHeaders + i; idx < numLines {
						want = lines[idx]
					}
					if rec[h] != want {
						t.Errorf("H=%d L=%d: record %d[%s] = %q, want %q", numHeaders, numLines, k, h, rec[h], want)
					}
				}
			}
		}
	}
}
