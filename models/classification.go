package models

// Ranking is one lineage's score against a sample.
type Ranking struct {
	Name       string  `json:"name"`
	Lineage    string  `json:"lineage"`
	Sublineage string  `json:"sublineage"`
	Shared     int     `json:"shared"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Result is the outcome of classifying one sample. When Known is false
// no lineage cleared the threshold and the identifying fields are empty.
type Result struct {
	Known      bool    `json:"known"`
	Name       string  `json:"name"`
	Species    string  `json:"species"`
	Lineage    string  `json:"lineage"`
	Sublineage string  `json:"sublineage"`
	Percentage float64 `json:"percentage"`

	Rankings []Ranking `json:"rankings,omitempty"`
}

func UnknownResult(rankings []Ranking) *Result {
	return &Result{Known: false, Rankings: rankings}
}
