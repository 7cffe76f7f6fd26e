package readers

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"snpit/models"
	"snpit/models/constants"
	inf "snpit/models/constants/input-format"
)

// multiReadCloser closes every wrapped closer on Close.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenSample opens a sample file, transparently decompressing it, and
// reports its format. Unknown formats fail before the file is touched.
func OpenSample(path string) (io.ReadCloser, constants.InputFormat, error) {
	format, compression := inf.DetectFromFilename(path)
	if format == inf.Unknown {
		return nil, format, fmt.Errorf("%w: %s", models.ErrUnsupportedInputFormat, path)
	}

	rc, err := Open(path, compression)
	if err != nil {
		return nil, format, err
	}
	return rc, format, nil
}

func Open(path string, compression constants.Compression) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := Decompress(fh, compression)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	closers := []io.Closer{fh}
	if closer, ok := r.(io.Closer); ok && compression != inf.Uncompressed {
		closers = []io.Closer{closer, fh}
	}
	return &multiReadCloser{Reader: r, closers: closers}, nil
}

func Decompress(r io.Reader, compression constants.Compression) (io.Reader, error) {
	switch compression {
	case inf.Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return gr, nil
	case inf.Bzip2:
		return bzip2.NewReader(r), nil
	default:
		return r, nil
	}
}
