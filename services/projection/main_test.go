package projection_test

import (
	"errors"
	"testing"

	"snpit/models"
	"snpit/services/catalog"
	"snpit/services/genotype"
	"snpit/services/projection"
	"snpit/tests/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load(common.WriteLibrary(t, common.ScenarioLineages(), common.ScenarioReference()))
	require.NoError(t, err)
	return c
}

func TestFromVariants(t *testing.T) {
	c := scenarioCatalog(t)

	t.Run("should start from the reference and apply alternate calls", func(t *testing.T) {
		source := &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(200, "C", []string{"G"}, "1/1"),
			// not a diagnostic position
			common.Record(250, "T", []string{"A"}, "1/1"),
		}}

		p, err := projection.FromVariants(c, source, false)
		require.NoError(t, err)

		assert.Equal(t, map[int]string{100: "A", 200: "G"}, p["lin1"])
		assert.Equal(t, map[int]string{100: "A", 200: "G"}, p["lin2"])
	})

	t.Run("should keep the reference on reference and heterozygous calls", func(t *testing.T) {
		source := &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(100, "A", []string{"G"}, "0/0"),
			common.Record(200, "C", []string{"G", "T"}, "1/2"),
		}}

		p, err := projection.FromVariants(c, source, false)
		require.NoError(t, err)
		assert.Equal(t, c.ReferenceSeed("lin1"), p["lin1"])
	})

	t.Run("should record no-calls as the placeholder", func(t *testing.T) {
		source := &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(100, "A", []string{"G"}, "./."),
		}}

		p, err := projection.FromVariants(c, source, false)
		require.NoError(t, err)
		assert.Equal(t, genotype.NullPlaceholder, p["lin1"][100])
	})

	t.Run("should skip filtered records unless told otherwise", func(t *testing.T) {
		record := common.Record(200, "C", []string{"G"}, "1/1")
		record.Filter = "LowQual"

		p, err := projection.FromVariants(c, &common.RecordSource{Records: []*models.VariantRecord{record}}, false)
		require.NoError(t, err)
		assert.Equal(t, "C", p["lin2"][200])

		p, err = projection.FromVariants(c, &common.RecordSource{Records: []*models.VariantRecord{record}}, true)
		require.NoError(t, err)
		assert.Equal(t, "G", p["lin2"][200])
	})

	t.Run("should fail on bad genotypes at diagnostic positions", func(t *testing.T) {
		_, err := projection.FromVariants(c, &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(200, "C", []string{"G"}, "2/2"),
		}}, false)
		assert.True(t, errors.Is(err, models.ErrInvalidAlleleIndex))

		_, err = projection.FromVariants(c, &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(200, "C", []string{"G"}, "1"),
		}}, false)
		assert.True(t, errors.Is(err, models.ErrMalformedGenotype))
	})

	t.Run("should never share state between projections", func(t *testing.T) {
		first, err := projection.FromVariants(c, &common.RecordSource{Records: []*models.VariantRecord{
			common.Record(200, "C", []string{"G"}, "1/1"),
		}}, false)
		require.NoError(t, err)

		second, err := projection.FromVariants(c, &common.RecordSource{}, false)
		require.NoError(t, err)

		assert.Equal(t, "G", first["lin1"][200])
		assert.Equal(t, "C", second["lin1"][200])
		assert.Equal(t, "C", c.ReferenceSeed("lin1")[200])
	})
}

func TestFromSequence(t *testing.T) {
	c := scenarioCatalog(t)

	sequence := common.Reference(common.ReferenceLength, map[int]byte{100: 'A', 200: 'G'})
	p := projection.FromSequence(c, sequence)
	assert.Equal(t, map[int]string{100: "A", 200: "G"}, p["lin2"])

	short := projection.FromSequence(c, sequence[:150])
	assert.Equal(t, "A", short["lin1"][100])
	assert.Equal(t, genotype.NullPlaceholder, short["lin1"][200])
}
