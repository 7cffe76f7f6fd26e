package inputFormat

import (
	"path/filepath"
	"strings"

	"snpit/models/constants"
)

const (
	Unknown constants.InputFormat = "Unknown"

	Vcf   constants.InputFormat = "VCF"
	Fasta constants.InputFormat = "FASTA"
)

const (
	Uncompressed constants.Compression = ""
	Gzip         constants.Compression = "gzip"
	Bzip2        constants.Compression = "bzip2"
)

var fastaExtensions = []string{".fa", ".fasta", ".fna"}

// DetectFromFilename inspects the whole chain of suffixes, i.e.
// "sample.vcf.gz" is a gzip compressed VCF.
func DetectFromFilename(filename string) (constants.InputFormat, constants.Compression) {
	suffixes := suffixesOf(filepath.Base(filename))

	compression := Uncompressed
	if len(suffixes) > 0 {
		switch suffixes[len(suffixes)-1] {
		case ".gz", ".bgz":
			compression = Gzip
		case ".bz2":
			compression = Bzip2
		}
	}

	for _, suffix := range suffixes {
		if suffix == ".vcf" {
			return Vcf, compression
		}
	}
	for _, suffix := range suffixes {
		for _, ext := range fastaExtensions {
			if suffix == ext {
				return Fasta, compression
			}
		}
	}
	return Unknown, compression
}

func CastToInputFormat(text string) constants.InputFormat {
	switch strings.ToLower(text) {
	case "vcf":
		return Vcf
	case "fasta", "fa", "fna":
		return Fasta
	default:
		return Unknown
	}
}

func IsKnownInputFormat(text string) bool {
	return CastToInputFormat(text) != Unknown
}

// suffixesOf mirrors pathlib's PurePath.suffixes.
func suffixesOf(name string) []string {
	name = strings.TrimLeft(name, ".")
	parts := strings.Split(strings.ToLower(name), ".")
	if len(parts) < 2 {
		return nil
	}
	suffixes := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		suffixes = append(suffixes, "."+p)
	}
	return suffixes
}
