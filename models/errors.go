package models

import "errors"

var (
	// fatal for the sample being classified
	ErrMalformedGenotype      = errors.New("malformed genotype")
	ErrInvalidAlleleIndex     = errors.New("invalid alternate allele index")
	ErrUnsupportedInputFormat = errors.New("only VCF and FASTA files are allowed as inputs (may be compressed with gzip, bzip2)")
	ErrMalformedVariant       = errors.New("malformed variant record")
	ErrPositionOutOfRange     = errors.New("position outside of sequence")

	// non-fatal: the lineage is left out of classification
	ErrMissingLineagePanel = errors.New("lineage panel file does not exist")
	ErrDivisionGuard       = errors.New("lineage has no diagnostic positions")

	// catalog boundary
	ErrMalformedPanel    = errors.New("malformed lineage panel")
	ErrSnpsAlreadyAdded  = errors.New("lineage snps already added")
	ErrDuplicateLineage  = errors.New("duplicate lineage name")
	ErrMalformedCatalog  = errors.New("malformed lineage catalog")
	ErrEmptyCatalog      = errors.New("lineage catalog is empty")
	ErrMalformedSequence = errors.New("malformed sequence file")
)
