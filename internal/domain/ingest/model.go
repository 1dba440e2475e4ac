package ingest

// Candidate is one classified entry of a batch. LineNumber is the 1-based
// position in the raw input, header row included for CSV.
type Candidate struct {
	LineNumber int    `json:"line_number"`
	Email      string `json:"email"`
	Valid      bool   `json:"valid"`
	Duplicate  bool   `json:"duplicate"`
	Error      string `json:"error,omitempty"`
}

// Summary aggregates a batch's classification for preview.
type Summary struct {
	Total      int `json:"total"`
	Valid      int `json:"valid"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// Result aggregates an applied batch. Duplicates is the count classified
// before apply; Errors holds per-line failure messages in input order.
type Result struct {
	Succeeded  int      `json:"succeeded"`
	Duplicates int      `json:"duplicates"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// Summarize tallies a classified batch.
func Summarize(candidates []Candidate) Summary {
	sum := Summary{Total: len(candidates)}
	for _, c := range candidates {
		switch {
		case c.Duplicate:
			sum.Duplicates++
		case c.Valid:
			sum.Valid++
		default:
			sum.Errors++
		}
	}
	return sum
}
