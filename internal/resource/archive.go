package resource

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"golang.org/x/image/bmp"
	"gopkg.in/yaml.v3"
)

// Archive is a Provider reading decoded resources from a directory, a
// zip archive or a 7z archive laid out as:
//
//	logic/NNN.bin   bytecode of logic NNN
//	logic/NNN.txt   messages of logic NNN, one per line
//	view/NNN.yaml   loops and cels of view NNN
//	view/...        cel bitmaps referenced by the view manifests
//	game.yaml       title, interpreter version, dictionary and inventory
//
// NNN is the decimal resource number padded to three digits.
type Archive struct {
	src fileSource
}

type fileSource interface {
	ReadFile(name string) ([]byte, error)
	Close() error
}

// Open opens the game resources at path, which can be a directory or a
// .zip or .7z archive.
func Open(p string) (*Archive, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}

	var src fileSource
	switch {
	case info.IsDir():
		src = dirSource(p)
	case strings.EqualFold(filepath.Ext(p), ".zip"):
		z, err := zip.OpenReader(p)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		src = zipSource{z}
	case strings.EqualFold(filepath.Ext(p), ".7z"):
		r, err := sevenzip.OpenReader(p)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		src = newSevenZipSource(r)
	default:
		return nil, fmt.Errorf("open %s: unsupported game archive", p)
	}

	return &Archive{src: src}, nil
}

// Close releases the underlying archive.
func (a *Archive) Close() error {
	return a.src.Close()
}

func (a *Archive) LoadLogic(id int) (*Logic, error) {
	code, err := a.src.ReadFile(fmt.Sprintf("logic/%03d.bin", id))
	if err != nil {
		if isNotExist(err) {
			return nil, Missing(KindLogic, id)
		}
		return nil, fmt.Errorf("logic %d: %w", id, err)
	}
	l := &Logic{Code: code}

	// messages are optional
	text, err := a.src.ReadFile(fmt.Sprintf("logic/%03d.txt", id))
	if err == nil {
		l.Messages = ParseMessages(text)
	} else if !isNotExist(err) {
		return nil, fmt.Errorf("logic %d messages: %w", id, err)
	}

	return l, nil
}

// ParseMessages splits a message file into messages. Each line holds
// one message; the escapes \n and \\ are expanded.
func ParseMessages(text []byte) []string {
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	text = bytes.TrimSuffix(text, []byte("\n"))
	if len(text) == 0 {
		return nil
	}
	lines := strings.Split(string(text), "\n")
	replacer := strings.NewReplacer(`\\`, `\`, `\n`, "\n")
	for i, line := range lines {
		lines[i] = replacer.Replace(line)
	}
	return lines
}

type viewManifest struct {
	Description string `yaml:"description"`
	Loops       []struct {
		// Mirror names a loop whose cels are reused flipped.
		Mirror *int `yaml:"mirror"`
		Cels   []struct {
			File        string `yaml:"file"`
			Transparent uint8  `yaml:"transparent"`
		} `yaml:"cels"`
	} `yaml:"loops"`
}

func (a *Archive) LoadView(id int) (*View, error) {
	raw, err := a.src.ReadFile(fmt.Sprintf("view/%03d.yaml", id))
	if err != nil {
		if isNotExist(err) {
			return nil, Missing(KindView, id)
		}
		return nil, fmt.Errorf("view %d: %w", id, err)
	}

	var m viewManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("view %d: parse manifest: %w", id, err)
	}

	v := &View{Description: m.Description, Loops: make([]*Loop, len(m.Loops))}
	for l, ml := range m.Loops {
		if ml.Mirror != nil {
			continue
		}
		loop := &Loop{}
		for _, mc := range ml.Cels {
			data, err := a.src.ReadFile(path.Join("view", mc.File))
			if err != nil {
				return nil, fmt.Errorf("view %d loop %d: %w", id, l, err)
			}
			cel, err := DecodeCel(bytes.NewReader(data), mc.Transparent)
			if err != nil {
				return nil, fmt.Errorf("view %d loop %d %s: %w", id, l, mc.File, err)
			}
			loop.Cels = append(loop.Cels, cel)
		}
		v.Loops[l] = loop
	}

	// resolve mirrored loops once their sources are decoded
	for l, ml := range m.Loops {
		if ml.Mirror == nil {
			continue
		}
		src := *ml.Mirror
		if src < 0 || src >= len(v.Loops) || v.Loops[src] == nil {
			return nil, fmt.Errorf("view %d loop %d: mirrors invalid loop %d", id, l, src)
		}
		loop := &Loop{}
		for _, c := range v.Loops[src].Cels {
			mc := *c
			mc.Mirrored = !c.Mirrored
			loop.Cels = append(loop.Cels, &mc)
		}
		v.Loops[l] = loop
	}

	return v, nil
}

// LoadInfo reads game.yaml. A missing manifest yields an empty Info.
func (a *Archive) LoadInfo() (*Info, error) {
	raw, err := a.src.ReadFile("game.yaml")
	if err != nil {
		if isNotExist(err) {
			return &Info{}, nil
		}
		return nil, fmt.Errorf("game manifest: %w", err)
	}
	info := &Info{}
	if err := yaml.Unmarshal(raw, info); err != nil {
		return nil, fmt.Errorf("game manifest: %w", err)
	}
	return info, nil
}

// Unload is a no-op, the archive keeps no decoded state.
func (a *Archive) Unload(Kind, int) {}

// DecodeCel decodes a BMP image into a cel. Paletted images keep their
// indices, other images are mapped to the nearest EGA colour.
func DecodeCel(r io.Reader, transparent uint8) (*Cel, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, err
	}
	return CelFromImage(img, transparent), nil
}

// CelFromImage converts an image into a cel.
func CelFromImage(img image.Image, transparent uint8) *Cel {
	b := img.Bounds()
	c := &Cel{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Transparent: transparent,
		Pixels:      make([]uint8, b.Dx()*b.Dy()),
	}
	p, paletted := img.(*image.Paletted)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			var idx uint8
			if paletted {
				idx = p.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
			} else {
				idx = uint8(EGA.Index(img.At(b.Min.X+x, b.Min.Y+y)))
			}
			c.Pixels[y*c.Width+x] = idx & 0x0F
		}
	}
	return c
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

type dirSource string

func (d dirSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
}

func (d dirSource) Close() error { return nil }

type zipSource struct {
	*zip.ReadCloser
}

func (z zipSource) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(z.ReadCloser, name)
}

type sevenZipSource struct {
	r     *sevenzip.ReadCloser
	files map[string]*sevenzip.File
}

func newSevenZipSource(r *sevenzip.ReadCloser) *sevenZipSource {
	s := &sevenZipSource{r: r, files: make(map[string]*sevenzip.File, len(r.File))}
	for _, f := range r.File {
		s.files[path.Clean(filepath.ToSlash(f.Name))] = f
	}
	return s
}

func (s *sevenZipSource) ReadFile(name string) ([]byte, error) {
	f, ok := s.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *sevenZipSource) Close() error {
	return s.r.Close()
}
