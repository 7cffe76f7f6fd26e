package projection

import (
	"errors"
	"fmt"
	"io"

	"snpit/models"
	"snpit/services/catalog"
	"snpit/services/genotype"
)

// Projection maps a lineage name to the base observed in the sample at
// each of that lineage's diagnostic positions. A projection belongs to a
// single classification and is never shared.
type Projection map[string]map[int]string

// VariantSource yields variant records until io.EOF.
type VariantSource interface {
	Read() (*models.VariantRecord, error)
}

// FromVariants seeds every classifiable lineage with the reference base
// and overwrites the positions where a sample genotype resolves to an
// alternate allele or a no-call. Records that fail the filter are
// skipped unless ignoreFilter is set.
func FromVariants(c *catalog.Catalog, source VariantSource, ignoreFilter bool) (Projection, error) {
	p := seeded(c)

	for {
		record, err := source.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		lineageNames := c.LineagesAt(record.Pos)
		if len(lineageNames) == 0 {
			continue
		}
		if !ignoreFilter && !record.Passed() {
			continue
		}

		for _, sample := range record.Samples {
			base, ok, err := genotype.Interpret(sample.Genotype, record)
			if err != nil {
				return nil, fmt.Errorf("position %d, sample %s: %w", record.Pos, sample.Id, err)
			}
			if !ok {
				continue
			}
			for _, name := range lineageNames {
				p[name][record.Pos] = base
			}
		}
	}

	return p, nil
}

// FromSequence reads every diagnostic position straight from a sequence
// in reference coordinates (e.g. an assembled genome). Positions past the
// end of the sequence are recorded as no-calls.
func FromSequence(c *catalog.Catalog, sequence []byte) Projection {
	p := Projection{}
	for _, lineage := range c.Classifiable() {
		observed := make(map[int]string, len(lineage.Snps))
		for pos := range lineage.Snps {
			if pos > len(sequence) {
				observed[pos] = genotype.NullPlaceholder
				continue
			}
			observed[pos] = string(sequence[pos-1])
		}
		p[lineage.Name] = observed
	}
	return p
}

func seeded(c *catalog.Catalog) Projection {
	p := Projection{}
	for _, lineage := range c.Classifiable() {
		seed := c.ReferenceSeed(lineage.Name)
		observed := make(map[int]string, len(seed))
		for pos, base := range seed {
			observed[pos] = base
		}
		p[lineage.Name] = observed
	}
	return p
}
