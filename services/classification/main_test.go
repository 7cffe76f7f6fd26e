package classification_test

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"snpit/models"
	"snpit/services/catalog"
	"snpit/services/classification"
	"snpit/services/genotype"
	"snpit/services/projection"
	"snpit/tests/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panelSpec struct {
	name       string
	lineage    string
	sublineage string
	size       int
}

// panelCatalog gives every lineage a panel of "A" at positions 1..size
// over an all-"A" reference.
func panelCatalog(t *testing.T, specs ...panelSpec) *catalog.Catalog {
	t.Helper()

	lineages := make([]*models.Lineage, 0, len(specs))
	for _, s := range specs {
		snps := make(map[int]string, s.size)
		for pos := 1; pos <= s.size; pos++ {
			snps[pos] = "A"
		}
		lineage := &models.Lineage{Name: s.name, Species: common.ScenarioSpecies, Lineage: s.lineage, Sublineage: s.sublineage}
		require.NoError(t, lineage.AddSnps(strings.NewReader(common.Panel(snps))))
		lineages = append(lineages, lineage)
	}

	c, err := catalog.New(lineages)
	require.NoError(t, err)
	require.NoError(t, c.SeedReference(bytes.Repeat([]byte("A"), 1000)))
	return c
}

// observed matches the first shared positions of a size-long panel.
func observed(size, shared int) map[int]string {
	bases := make(map[int]string, size)
	for pos := 1; pos <= size; pos++ {
		if pos <= shared {
			bases[pos] = "A"
		} else {
			bases[pos] = "C"
		}
	}
	return bases
}

func scenarioCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(common.WriteLibrary(t, common.ScenarioLineages(), common.ScenarioReference()))
	require.NoError(t, err)
	return c
}

func TestClassifyScenario(t *testing.T) {
	c := scenarioCatalog(t)

	sample := func() classification.SampleInput {
		return classification.VariantInput{Source: &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(200, "C", []string{"G"}, "1/1"),
		}}}
	}

	t.Run("should report the lineage sharing every diagnostic base", func(t *testing.T) {
		result, err := classification.Classify(c, sample(), classification.Options{Threshold: 80})
		require.NoError(t, err)

		assert.True(t, result.Known)
		assert.Equal(t, "lin2", result.Name)
		assert.Equal(t, common.ScenarioSpecies, result.Species)
		assert.Equal(t, "Lineage 2", result.Lineage)
		assert.Equal(t, "", result.Sublineage)
		assert.Equal(t, 100.0, result.Percentage)

		require.Len(t, result.Rankings, 2)
		assert.Equal(t, models.Ranking{Name: "lin2", Lineage: "Lineage 2", Shared: 2, Total: 2, Percentage: 100}, result.Rankings[0])
		assert.Equal(t, models.Ranking{Name: "lin1", Lineage: "Lineage 1", Shared: 1, Total: 2, Percentage: 50}, result.Rankings[1])
	})

	t.Run("should report unknown when nothing clears the threshold", func(t *testing.T) {
		input := classification.VariantInput{Source: &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(200, "C", []string{"T"}, "1/1"),
		}}}
		result, err := classification.Classify(c, input, classification.Options{Threshold: 95})
		require.NoError(t, err)

		assert.False(t, result.Known)
		assert.Empty(t, result.Name)
		assert.Empty(t, result.Species)
		assert.Empty(t, result.Lineage)
		assert.Empty(t, result.Sublineage)
		assert.Zero(t, result.Percentage)
		assert.Len(t, result.Rankings, 2)
	})

	t.Run("should count untouched positions as matches", func(t *testing.T) {
		input := classification.VariantInput{Source: &common.RecordSource{}}
		result, err := classification.Classify(c, input, classification.Options{Threshold: 10})
		require.NoError(t, err)

		assert.Equal(t, "lin1", result.Name)
		assert.Equal(t, 100.0, result.Percentage)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		first, err := classification.Classify(c, sample(), classification.Options{Threshold: 80})
		require.NoError(t, err)
		second, err := classification.Classify(c, sample(), classification.Options{Threshold: 80})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("should classify sequences", func(t *testing.T) {
		input := classification.SequenceInput{Sequence: common.Reference(common.ReferenceLength, map[int]byte{100: 'A', 200: 'G'})}
		result, err := classification.Classify(c, input, classification.Options{Threshold: 80})
		require.NoError(t, err)

		assert.Equal(t, "lin2", result.Name)
	})
}

func TestDetermineThreshold(t *testing.T) {
	c := panelCatalog(t, panelSpec{name: "lin1", lineage: "Lineage 1", size: 2})
	p := projection.Projection{"lin1": observed(2, 1)}

	t.Run("should reject a percentage equal to the threshold", func(t *testing.T) {
		result := classification.Determine(c, p, 50)
		assert.False(t, result.Known)
	})

	t.Run("should accept a percentage one increment above the threshold", func(t *testing.T) {
		result := classification.Determine(c, p, math.Nextafter(50, math.Inf(-1)))
		assert.True(t, result.Known)
		assert.Equal(t, 50.0, result.Percentage)
	})

	t.Run("should treat no-calls as mismatches", func(t *testing.T) {
		noCalls := projection.Projection{"lin1": {1: genotype.NullPlaceholder, 2: genotype.NullPlaceholder}}
		rankings := classification.Rank(c, noCalls)
		require.Len(t, rankings, 1)
		assert.Equal(t, 0, rankings[0].Shared)
		assert.Equal(t, 0.0, rankings[0].Percentage)
	})
}

func TestDetermineLineageFour(t *testing.T) {
	t.Run("should prefer the next-ranked lineage 4 sublineage", func(t *testing.T) {
		c := panelCatalog(t,
			panelSpec{name: "lineage4", lineage: models.LineageFour, size: 100},
			panelSpec{name: "lineage4.7", lineage: models.LineageFour, sublineage: "Sublineage 7", size: 100},
		)
		p := projection.Projection{"lineage4": observed(100, 99), "lineage4.7": observed(100, 96)}

		result := classification.Determine(c, p, 90)
		require.True(t, result.Known)
		assert.Equal(t, "lineage4.7", result.Name)
		assert.Equal(t, "Sublineage 7", result.Sublineage)
		assert.Equal(t, 96.0, result.Percentage)
		assert.Equal(t, "lineage4", result.Rankings[0].Name)
	})

	t.Run("should keep the generic call when the sublineage misses the threshold", func(t *testing.T) {
		c := panelCatalog(t,
			panelSpec{name: "lineage4", lineage: models.LineageFour, size: 100},
			panelSpec{name: "lineage4.7", lineage: models.LineageFour, sublineage: "Sublineage 7", size: 100},
		)
		p := projection.Projection{"lineage4": observed(100, 99), "lineage4.7": observed(100, 90)}

		result := classification.Determine(c, p, 90)
		assert.Equal(t, "lineage4", result.Name)
		assert.Equal(t, 99.0, result.Percentage)
	})

	t.Run("should only look one rank ahead", func(t *testing.T) {
		c := panelCatalog(t,
			panelSpec{name: "lineage4", lineage: models.LineageFour, size: 100},
			panelSpec{name: "lineage2", lineage: "Lineage 2", size: 100},
			panelSpec{name: "lineage4.7", lineage: models.LineageFour, sublineage: "Sublineage 7", size: 100},
		)
		p := projection.Projection{
			"lineage4":   observed(100, 99),
			"lineage2":   observed(100, 97),
			"lineage4.7": observed(100, 96),
		}

		result := classification.Determine(c, p, 90)
		assert.Equal(t, "lineage4", result.Name)
	})

	t.Run("should not apply without a next-ranked lineage", func(t *testing.T) {
		c := panelCatalog(t, panelSpec{name: "lineage4", lineage: models.LineageFour, size: 10})
		result := classification.Determine(c, projection.Projection{"lineage4": observed(10, 10)}, 90)
		assert.Equal(t, "lineage4", result.Name)
	})

	t.Run("should not apply to a top-ranked sublineage", func(t *testing.T) {
		c := panelCatalog(t,
			panelSpec{name: "lineage4.1", lineage: models.LineageFour, sublineage: "Sublineage 1", size: 100},
			panelSpec{name: "lineage4.7", lineage: models.LineageFour, sublineage: "Sublineage 7", size: 100},
		)
		p := projection.Projection{"lineage4.1": observed(100, 99), "lineage4.7": observed(100, 96)}

		result := classification.Determine(c, p, 90)
		assert.Equal(t, "lineage4.1", result.Name)
	})
}

func TestRankTieBreak(t *testing.T) {
	specs := []panelSpec{
		{name: "beta", lineage: "Lineage 2", size: 4},
		{name: "alpha", lineage: "Lineage 1", size: 4},
	}
	p := projection.Projection{"alpha": observed(4, 3), "beta": observed(4, 3)}

	result := classification.Determine(panelCatalog(t, specs...), p, 10)
	assert.Equal(t, "beta", result.Name)

	specs[0], specs[1] = specs[1], specs[0]
	result = classification.Determine(panelCatalog(t, specs...), p, 10)
	assert.Equal(t, "alpha", result.Name)
}

func TestRankPercentageBounds(t *testing.T) {
	c := panelCatalog(t,
		panelSpec{name: "small", lineage: "Lineage 1", size: 3},
		panelSpec{name: "medium", lineage: "Lineage 2", size: 17},
		panelSpec{name: "large", lineage: "Lineage 3", size: 250},
	)

	rng := rand.New(rand.NewSource(7))
	bases := []string{"A", "C", "G", "T", genotype.NullPlaceholder}
	for i := 0; i < 50; i++ {
		p := projection.Projection{}
		for _, lineage := range c.Classifiable() {
			obs := map[int]string{}
			for pos := range lineage.Snps {
				obs[pos] = bases[rng.Intn(len(bases))]
			}
			p[lineage.Name] = obs
		}

		rankings := classification.Rank(c, p)
		require.Len(t, rankings, 3)
		for j, r := range rankings {
			assert.GreaterOrEqual(t, r.Percentage, 0.0)
			assert.LessOrEqual(t, r.Percentage, 100.0)
			if j > 0 {
				assert.GreaterOrEqual(t, rankings[j-1].Percentage, r.Percentage)
			}
		}
	}
}
