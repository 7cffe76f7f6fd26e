package inputFormat

import (
	"testing"

	"snpit/models/constants"

	"github.com/stretchr/testify/assert"
)

func TestDetectFromFilename(t *testing.T) {
	cases := []struct {
		filename    string
		format      constants.InputFormat
		compression constants.Compression
	}{
		{"sample.vcf", Vcf, Uncompressed},
		{"sample.vcf.gz", Vcf, Gzip},
		{"sample.vcf.bgz", Vcf, Gzip},
		{"/data/dir.v2/ERR123.VCF.BZ2", Vcf, Bzip2},
		{"sample.filtered.vcf", Vcf, Uncompressed},
		{"assembly.fa", Fasta, Uncompressed},
		{"assembly.fasta.gz", Fasta, Gzip},
		{"assembly.fna.bz2", Fasta, Bzip2},
		{"reads.bam", Unknown, Uncompressed},
		{"archive.tar.gz", Unknown, Gzip},
		{"vcf", Unknown, Uncompressed},
		{".vcf", Unknown, Uncompressed},
	}

	for _, tc := range cases {
		format, compression := DetectFromFilename(tc.filename)
		assert.Equal(t, tc.format, format, tc.filename)
		assert.Equal(t, tc.compression, compression, tc.filename)
	}
}

func TestCastToInputFormat(t *testing.T) {
	assert.Equal(t, Vcf, CastToInputFormat("VCF"))
	assert.Equal(t, Fasta, CastToInputFormat("fa"))
	assert.Equal(t, Unknown, CastToInputFormat("bam"))
	assert.True(t, IsKnownInputFormat("fasta"))
	assert.False(t, IsKnownInputFormat(""))
}
