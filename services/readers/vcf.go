package readers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"snpit/models"
)

const maxVcfLineBytes = 16 * 1024 * 1024

// VcfReader streams variant records from an uncompressed VCF.
type VcfReader struct {
	scanner           *bufio.Scanner
	discoveredHeaders bool
	sampleIds         []string
	lineNumber        int
}

func NewVcfReader(r io.Reader) *VcfReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxVcfLineBytes)
	return &VcfReader{scanner: scanner}
}

func (v *VcfReader) SampleIds() []string {
	return v.sampleIds
}

// Read returns the next record, or io.EOF once the input is exhausted.
func (v *VcfReader) Read() (*models.VariantRecord, error) {
	for v.scanner.Scan() {
		v.lineNumber++
		line := strings.TrimRight(v.scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}

		// Gather Header row by seeking the CHROM string
		if strings.HasPrefix(line, "##") {
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			headers := strings.Split(line, "\t")
			v.sampleIds = nil
			if len(headers) > len(models.VcfHeaders) {
				v.sampleIds = append(v.sampleIds, headers[len(models.VcfHeaders):]...)
			}
			v.discoveredHeaders = true
			continue
		}
		if !v.discoveredHeaders {
			return nil, fmt.Errorf("%w: line %d precedes the #CHROM header", models.ErrMalformedVariant, v.lineNumber)
		}

		return v.parseLine(line)
	}
	if err := v.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (v *VcfReader) parseLine(line string) (*models.VariantRecord, error) {
	// ----  break up line
	rowComponents := strings.Split(line, "\t")
	if len(rowComponents) < len(models.VcfHeaders)-1 {
		return nil, fmt.Errorf("%w: line %d has %d columns", models.ErrMalformedVariant, v.lineNumber, len(rowComponents))
	}

	pos, err := strconv.Atoi(strings.TrimSpace(rowComponents[1]))
	if err != nil || pos < 1 {
		return nil, fmt.Errorf("%w: line %d has position %q", models.ErrMalformedVariant, v.lineNumber, rowComponents[1])
	}

	record := &models.VariantRecord{
		Chrom:  strings.TrimSpace(rowComponents[0]),
		Pos:    pos,
		Id:     strings.TrimSpace(rowComponents[2]),
		Ref:    strings.ToUpper(strings.TrimSpace(rowComponents[3])),
		Filter: strings.TrimSpace(rowComponents[6]),
	}

	// Split all alleles by comma
	if alt := strings.TrimSpace(rowComponents[4]); alt != "." && alt != "" {
		for _, allele := range strings.Split(alt, ",") {
			record.Alt = append(record.Alt, strings.ToUpper(allele))
		}
	}

	if len(rowComponents) <= len(models.VcfHeaders) {
		// sites-only VCF
		return record, nil
	}

	genotypePosition := -1
	for i, f := range strings.Split(rowComponents[8], ":") {
		if f == "GT" {
			genotypePosition = i
			break
		}
	}
	if genotypePosition < 0 {
		return record, nil
	}

	for i, value := range rowComponents[len(models.VcfHeaders):] {
		sampleId := fmt.Sprintf("sample_%d", i+1)
		if i < len(v.sampleIds) {
			sampleId = v.sampleIds[i]
		}

		// trailing FORMAT fields may be dropped; a missing GT is a no-call
		allValues := strings.Split(strings.TrimSpace(value), ":")
		gtString := "./."
		if genotypePosition < len(allValues) && allValues[genotypePosition] != "." {
			gtString = allValues[genotypePosition]
		}

		record.Samples = append(record.Samples, models.Sample{
			Id:       sampleId,
			Genotype: gtString,
		})
	}

	return record, nil
}
