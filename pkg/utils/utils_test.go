package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
	"golang.org/x/image/bmp"
)

var payload = []byte{0xFF, 0x07, 0x0C, 0xFF, 0x02, 0x00, 0x0C, 0x05, 0x00}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadFile(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write(payload)
	gw.Close()

	var xzb bytes.Buffer
	xw, err := xz.NewWriter(&xzb)
	if err != nil {
		t.Fatal(err)
	}
	xw.Write(payload)
	xw.Close()

	var zb bytes.Buffer
	zw := zip.NewWriter(&zb)
	f, _ := zw.Create("logic/000.bin")
	f.Write(payload)
	zw.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"000.bin", payload},
		{"000.bin.gz", gz.Bytes()},
		{"000.bin.xz", xzb.Bytes()},
		{"000.zip", zb.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFile(writeTemp(t, tt.name, tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("got % x, want % x", got, payload)
			}
		})
	}

	if _, err := LoadFile(writeTemp(t, "broken.gz", payload)); err == nil {
		t.Error("expected an error for a broken gzip file")
	}
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 0xAA, A: 0xFF})

	dir := t.TempDir()
	if err := SaveImage(img, filepath.Join(dir, "screen.bmp")); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "screen.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := got.At(1, 1).RGBA(); r>>8 != 0xAA {
		t.Errorf("red = %#x, want 0xaa", r>>8)
	}

	if err := SaveImage(img, filepath.Join(dir, "screen")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "screen.png")); err != nil {
		t.Error(err)
	}
	if err := SaveImage(img, filepath.Join(dir, "screen.gif")); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0, -3, 10); got != 0 {
		t.Errorf("Clamp(0, -3, 10) = %d", got)
	}
	if got := Clamp(0, 13, 10); got != 10 {
		t.Errorf("Clamp(0, 13, 10) = %d", got)
	}
	if upper, lower := Uint16ToBytes(0x3B07); BytesToUint16(upper, lower) != 0x3B07 {
		t.Errorf("round trip of 0x3b07 gave %#x %#x", upper, lower)
	}
}
