package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip and .7z) yield their first file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	// try to assert the compression type from the file extension
	var decoder io.Reader
	r := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(r)
	case ".xz":
		decoder, err = xz.NewReader(r)
	case ".zip":
		var zr *zip.Reader
		if zr, err = zip.NewReader(r, int64(len(data))); err != nil {
			break
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("%s: empty archive", filename)
		}
		decoder, err = zr.File[0].Open()
	case ".7z":
		var sr *sevenzip.Reader
		if sr, err = sevenzip.NewReader(r, int64(len(data))); err != nil {
			break
		}
		if len(sr.File) == 0 {
			return nil, fmt.Errorf("%s: empty archive", filename)
		}
		decoder, err = sr.File[0].Open()
	default:
		// return the data as is
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	// read the decompressed data into a byte slice
	return io.ReadAll(decoder)
}
