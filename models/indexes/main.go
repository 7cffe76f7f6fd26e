package indexes

import (
	"time"
)

// Classification is the archived form of a finished classification
// request, stored in the "classifications" index.
type Classification struct {
	Id         string  `json:"id"`
	Filename   string  `json:"filename"`
	State      string  `json:"state"`
	Message    string  `json:"message"`
	Known      bool    `json:"known"`
	Name       string  `json:"name"`
	Species    string  `json:"species"`
	Lineage    string  `json:"lineage"`
	Sublineage string  `json:"sublineage"`
	Percentage float64 `json:"percentage"`

	Rankings []Ranking `json:"rankings"`

	CreatedTime time.Time `json:"createdTime"`
}

type Ranking struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}
