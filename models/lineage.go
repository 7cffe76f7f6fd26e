package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const LineageFour = "Lineage 4"

// Lineage is one row of the lineage catalog together with the
// diagnostic positions (1-based) and bases that define it.
type Lineage struct {
	Name       string `json:"name" mapstructure:"name"`
	Species    string `json:"species" mapstructure:"species"`
	Lineage    string `json:"lineage" mapstructure:"lineage"`
	Sublineage string `json:"sublineage" mapstructure:"sublineage"`

	Snps map[int]string `json:"-" mapstructure:"-"`

	snpsAdded bool
}

// LineageFromCsvEntry builds a lineage from a catalog row keyed by
// column name. Missing columns are left empty.
func LineageFromCsvEntry(entry map[string]string) (*Lineage, error) {
	lineage := &Lineage{Snps: map[int]string{}}
	if err := mapstructure.Decode(entry, lineage); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return lineage, nil
}

// Equal compares name and lineage label only.
func (l *Lineage) Equal(other *Lineage) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.Name == other.Name && l.Lineage == other.Lineage
}

func (l *Lineage) HasSublineage() bool {
	return l.Sublineage != ""
}

func (l *Lineage) SnpsAdded() bool {
	return l.snpsAdded
}

// AddSnps reads tab separated (position, base) rows into the lineage.
// It may only be called once per lineage.
func (l *Lineage) AddSnps(r io.Reader) error {
	if l.snpsAdded {
		return fmt.Errorf("%w: %s", ErrSnpsAlreadyAdded, l.Name)
	}

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	snps := map[int]string{}
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedPanel, l.Name, err)
		}
		if len(fields) < 2 {
			return fmt.Errorf("%w: %s: row %d has %d columns", ErrMalformedPanel, l.Name, row, len(fields))
		}

		position, convErr := strconv.Atoi(strings.TrimSpace(fields[0]))
		if convErr != nil {
			// tolerate a header line
			if row == 1 {
				continue
			}
			return fmt.Errorf("%w: %s: row %d position %q", ErrMalformedPanel, l.Name, row, fields[0])
		}
		if position < 1 {
			return fmt.Errorf("%w: %s: row %d position %d is not positive", ErrMalformedPanel, l.Name, row, position)
		}

		base := strings.ToUpper(strings.TrimSpace(fields[1]))
		if len(base) != 1 {
			return fmt.Errorf("%w: %s: row %d base %q is not a single character", ErrMalformedPanel, l.Name, row, fields[1])
		}
		if _, exists := snps[position]; exists {
			return fmt.Errorf("%w: %s: position %d listed twice", ErrMalformedPanel, l.Name, position)
		}
		snps[position] = base
	}

	l.Snps = snps
	l.snpsAdded = true
	return nil
}
