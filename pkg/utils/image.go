package utils

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// SaveImage writes img to filename as a BMP or a PNG, chosen by the
// extension. A name without one gets .png appended.
func SaveImage(img image.Image, filename string) error {
	var encode func(w io.Writer, m image.Image) error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".bmp":
		encode = bmp.Encode
	case ".png":
		encode = png.Encode
	case "":
		encode = png.Encode
		filename += ".png"
	default:
		return fmt.Errorf("save %s: unsupported image format %s", filename, ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = encode(file, img)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
