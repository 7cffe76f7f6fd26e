package classification

import (
	"sort"

	"snpit/models"
	"snpit/services/catalog"
	"snpit/services/genotype"
	"snpit/services/projection"
)

type Options struct {
	// a lineage must score strictly above this percentage
	Threshold    float64
	IgnoreFilter bool
}

// SampleInput is either a VariantInput or a SequenceInput.
type SampleInput interface {
	Project(c *catalog.Catalog, opts Options) (projection.Projection, error)
}

// VariantInput is a stream of variant records (e.g. a VCF).
type VariantInput struct {
	Source projection.VariantSource
}

func (v VariantInput) Project(c *catalog.Catalog, opts Options) (projection.Projection, error) {
	return projection.FromVariants(c, v.Source, opts.IgnoreFilter)
}

// SequenceInput is a whole sequence in reference coordinates.
type SequenceInput struct {
	Sequence []byte
}

func (s SequenceInput) Project(c *catalog.Catalog, _ Options) (projection.Projection, error) {
	return projection.FromSequence(c, s.Sequence), nil
}

// Classify builds a fresh projection for the sample and determines its
// lineage. Nothing is retained between calls.
func Classify(c *catalog.Catalog, input SampleInput, opts Options) (*models.Result, error) {
	p, err := input.Project(c, opts)
	if err != nil {
		return nil, err
	}
	return Determine(c, p, opts.Threshold), nil
}

// Rank scores every classifiable lineage against the projection, highest
// percentage first. Equal percentages keep catalog order.
func Rank(c *catalog.Catalog, p projection.Projection) []models.Ranking {
	rankings := []models.Ranking{}

	for _, lineage := range c.Classifiable() {
		total := len(lineage.Snps)
		if total == 0 {
			continue
		}

		observed := p[lineage.Name]
		shared := 0
		for pos, base := range lineage.Snps {
			// a no-call never matches
			if base != genotype.NullPlaceholder && observed[pos] == base {
				shared++
			}
		}

		rankings = append(rankings, models.Ranking{
			Name:       lineage.Name,
			Lineage:    lineage.Lineage,
			Sublineage: lineage.Sublineage,
			Shared:     shared,
			Total:      total,
			Percentage: 100 * float64(shared) / float64(total),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Percentage > rankings[j].Percentage
	})
	return rankings
}

// Determine picks the best lineage above the threshold. A generic
// "Lineage 4" call gives way to the next-ranked lineage when that one is
// a Lineage 4 sublineage that also clears the threshold. Only one rank
// is looked at.
func Determine(c *catalog.Catalog, p projection.Projection, threshold float64) *models.Result {
	rankings := Rank(c, p)
	if len(rankings) == 0 || !(rankings[0].Percentage > threshold) {
		return models.UnknownResult(rankings)
	}

	chosen := rankings[0]
	top, _ := c.Get(chosen.Name)

	if top.Lineage == models.LineageFour && !top.HasSublineage() && len(rankings) > 1 {
		next := rankings[1]
		nextLineage, _ := c.Get(next.Name)

		if nextLineage.Lineage == models.LineageFour &&
			nextLineage.HasSublineage() &&
			next.Percentage > threshold {
			chosen = next
		}
	}

	lineage, _ := c.Get(chosen.Name)
	return &models.Result{
		Known:      true,
		Name:       lineage.Name,
		Species:    lineage.Species,
		Lineage:    lineage.Lineage,
		Sublineage: lineage.Sublineage,
		Percentage: chosen.Percentage,
		Rankings:   rankings,
	}
}
