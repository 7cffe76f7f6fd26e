package readers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"snpit/models"
	inf "snpit/models/constants/input-format"
)

// ReadGenbank returns the ORIGIN block of the first record in a
// GenBank flat file, upper-cased.
func ReadGenbank(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxVcfLineBytes)

	var (
		sequence    bytes.Buffer
		inOrigin    bool
		foundOrigin bool
	)
	for scanner.Scan() {
		line := scanner.Text()
		if !inOrigin {
			if strings.HasPrefix(line, "ORIGIN") {
				inOrigin = true
				foundOrigin = true
			}
			continue
		}
		if strings.HasPrefix(line, "//") {
			break
		}

		// "        1 ttgaccgatg accgcggcgc ..."
		for _, field := range strings.Fields(line) {
			if field[0] >= '0' && field[0] <= '9' {
				continue
			}
			sequence.WriteString(field)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !foundOrigin || sequence.Len() == 0 {
		return nil, fmt.Errorf("%w: no ORIGIN sequence in GenBank file", models.ErrMalformedSequence)
	}

	return bytes.ToUpper(sequence.Bytes()), nil
}

// ReadReference loads the global reference sequence from either a
// GenBank (.gbk, .gb, .genbank) or a FASTA file, compressed or not.
func ReadReference(path string) ([]byte, error) {
	format, compression := inf.DetectFromFilename(path)

	rc, err := Open(path, compression)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if format == inf.Fasta {
		return ReadFasta(rc)
	}

	switch strings.ToLower(filepath.Ext(strings.TrimSuffix(strings.TrimSuffix(path, ".gz"), ".bz2"))) {
	case ".gbk", ".gb", ".genbank":
		return ReadGenbank(rc)
	}
	return nil, fmt.Errorf("%w: reference %s", models.ErrUnsupportedInputFormat, path)
}
