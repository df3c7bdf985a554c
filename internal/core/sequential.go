package core

// SequentialName is the registry key of the sequential strategy.
const SequentialName = "SEQUENTIAL"

func init() {
	Register(SequentialStrategy{})
}

// SequentialStrategy maps each run of len(headers) consecutive lines onto
// the headers in order. A short final run pads the missing fields with "".
type SequentialStrategy struct{}

// Name implements Strategy.
func (SequentialStrategy) Name() string { return SequentialName }

// Execute implements Strategy. Options are not used.
func (SequentialStrategy) Execute(lines []string, headers []string, _ Options) []Record {
	n := len(headers)
	if n == 0 || len(lines) == 0 {
		return nil
	}

	records := make([]Record, 0, (len(lines)+n-1)/n)
	for start := 0; start < len(lines); start += n {
		record := make(Record, n)
		for i, h := range headers {
			if start+i < len(lines) {
				record[h] = lines[start+i]
			} else {
				record[h] = ""
			}
		}
		records = append(records, record)
	}

	return records
}
