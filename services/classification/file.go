package classification

import (
	"fmt"
	"io"

	"snpit/models"
	"snpit/models/constants"
	inf "snpit/models/constants/input-format"
	"snpit/services/catalog"
	"snpit/services/readers"
)

// ClassifyFile classifies a VCF or FASTA sample, dispatching on the file
// name. Unsupported formats fail before the file is opened.
func ClassifyFile(c *catalog.Catalog, path string, opts Options) (*models.Result, error) {
	rc, format, err := readers.OpenSample(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return classifyFormat(c, rc, format, opts)
}

// ClassifyReader classifies an already opened sample; filename is only
// used to detect the format and compression.
func ClassifyReader(c *catalog.Catalog, r io.Reader, filename string, opts Options) (*models.Result, error) {
	format, compression := inf.DetectFromFilename(filename)
	if format == inf.Unknown {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedInputFormat, filename)
	}

	dr, err := readers.Decompress(r, compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if closer, ok := dr.(io.Closer); ok && compression != inf.Uncompressed {
		defer closer.Close()
	}

	return classifyFormat(c, dr, format, opts)
}

func classifyFormat(c *catalog.Catalog, r io.Reader, format constants.InputFormat, opts Options) (*models.Result, error) {
	var input SampleInput
	switch format {
	case inf.Vcf:
		input = VariantInput{Source: readers.NewVcfReader(r)}
	case inf.Fasta:
		sequence, err := readers.ReadFasta(r)
		if err != nil {
			return nil, err
		}
		input = SequenceInput{Sequence: sequence}
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedInputFormat, format)
	}

	return Classify(c, input, opts)
}
