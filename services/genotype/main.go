package genotype

import (
	"fmt"
	"strconv"
	"strings"

	"snpit/models"
	"snpit/models/constants"
	gc "snpit/models/constants/genotype-call"
)

// NullPlaceholder never equals a real base, so a no-call always counts
// as a mismatch against a lineage panel.
const NullPlaceholder = "-"

type Genotype struct {
	Call        constants.GenotypeCall
	AlleleIndex int // 1-based index into ALT, alternate calls only
	Phased      bool
}

// Parse classifies a diploid GT string such as "0/0", "1|1" or "./.".
//
// as defined by https://samtools.github.io/hts-specs/VCFv4.3.pdf
//
//	0      reference allele
//	1..n   n-th alternate allele
//	.      no call
func Parse(gtString string) (Genotype, error) {
	phased := strings.Contains(gtString, "|")
	unphased := strings.Contains(gtString, "/")
	if phased == unphased {
		// neither separator, or both
		return Genotype{}, fmt.Errorf("%w: %q", models.ErrMalformedGenotype, gtString)
	}

	var alleleStringSplits []string
	if phased {
		alleleStringSplits = strings.Split(gtString, "|")
	} else {
		alleleStringSplits = strings.Split(gtString, "/")
	}
	if len(alleleStringSplits) != 2 {
		return Genotype{}, fmt.Errorf("%w: %q", models.ErrMalformedGenotype, gtString)
	}

	var (
		alleles   [2]int
		hasNoCall bool
	)
	for i, allele := range alleleStringSplits {
		if allele == "." {
			hasNoCall = true
			continue
		}
		if !isDigits(allele) {
			return Genotype{}, fmt.Errorf("%w: %q", models.ErrMalformedGenotype, gtString)
		}
		value, err := strconv.Atoi(allele)
		if err != nil {
			return Genotype{}, fmt.Errorf("%w: %q", models.ErrMalformedGenotype, gtString)
		}
		alleles[i] = value
	}

	switch {
	case hasNoCall:
		return Genotype{Call: gc.Null, Phased: phased}, nil
	case alleles[0] != alleles[1]:
		return Genotype{Call: gc.Heterozygous, Phased: phased}, nil
	case alleles[0] == 0:
		return Genotype{Call: gc.Reference, Phased: phased}, nil
	default:
		return Genotype{Call: gc.Alternate, AlleleIndex: alleles[0], Phased: phased}, nil
	}
}

// Interpret returns the base the sample carries at the record's position.
// ok is false for reference and heterozygous calls: the caller must keep
// the reference base.
func Interpret(gtString string, record *models.VariantRecord) (base string, ok bool, err error) {
	genotype, err := Parse(gtString)
	if err != nil {
		return "", false, err
	}

	switch genotype.Call {
	case gc.Reference, gc.Heterozygous:
		return "", false, nil
	case gc.Null:
		return NullPlaceholder, true, nil
	case gc.Alternate:
		if genotype.AlleleIndex < 1 || genotype.AlleleIndex > len(record.Alt) {
			return "", false, fmt.Errorf("%w: %d with %d alternate allele(s) at position %d",
				models.ErrInvalidAlleleIndex, genotype.AlleleIndex, len(record.Alt), record.Pos)
		}
		return record.Alt[genotype.AlleleIndex-1], true, nil
	}

	return "", false, fmt.Errorf("%w: %q", models.ErrMalformedGenotype, gtString)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
