package report

import (
	"fmt"
	"io"

	"snpit/models"

	"github.com/go-gota/gota/dataframe"
)

type rankingRow struct {
	Sample     string  `dataframe:"sample"`
	Name       string  `dataframe:"name"`
	Lineage    string  `dataframe:"lineage"`
	Sublineage string  `dataframe:"sublineage"`
	Shared     int     `dataframe:"shared"`
	Total      int     `dataframe:"total"`
	Percentage float64 `dataframe:"percentage"`
}

// WriteRankings writes the per-lineage scores of a sample as a CSV table
// with a header row, in ranking order.
func WriteRankings(w io.Writer, sample string, rankings []models.Ranking) error {
	if len(rankings) == 0 {
		return nil
	}

	rows := make([]rankingRow, 0, len(rankings))
	for _, r := range rankings {
		rows = append(rows, rankingRow{
			Sample:     sample,
			Name:       r.Name,
			Lineage:    r.Lineage,
			Sublineage: r.Sublineage,
			Shared:     r.Shared,
			Total:      r.Total,
			Percentage: r.Percentage,
		})
	}

	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return fmt.Errorf("building rankings for %s: %w", sample, df.Err)
	}

	return df.WriteCSV(w, dataframe.WriteHeader(true))
}
