package readers

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"snpit/models"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ReadFasta reads a single-record FASTA and returns its upper-cased
// sequence. Empty or multi-record inputs are rejected.
func ReadFasta(r io.Reader) ([]byte, error) {
	reader := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant))

	s, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no FASTA record found", models.ErrMalformedSequence)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedSequence, err)
	}

	if _, err := reader.Read(); err == nil {
		return nil, fmt.Errorf("%w: expected a single FASTA record", models.ErrMalformedSequence)
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedSequence, err)
	}

	ls, ok := s.(*linear.Seq)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected sequence type %T", models.ErrMalformedSequence, s)
	}

	sequence := make([]byte, len(ls.Seq))
	for i, letter := range ls.Seq {
		sequence[i] = byte(letter)
	}
	return bytes.ToUpper(sequence), nil
}
