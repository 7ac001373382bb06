// Package gfx implements the priority compositor: the shared screen
// buffer, the priority bands, sprite save areas and the validity oracle
// used for movement.
package gfx

import (
	"image"
	"image/color"

	"github.com/cespare/xxhash"

	"github.com/scummvm/scummvm-sub094/internal/resource"
)

const (
	Width  = 160
	Height = 168
)

// Pixel packs a colour in the low nibble and a priority or control
// value in the high nibble.
type Pixel uint8

// NewPixel packs colour c and priority p.
func NewPixel(c, p uint8) Pixel { return Pixel(p<<4 | c&0x0F) }

func (p Pixel) Colour() uint8   { return uint8(p) & 0x0F }
func (p Pixel) Priority() uint8 { return uint8(p) >> 4 }

// IsControl reports whether the pixel holds a control line rather than
// a z-order band.
func (p Pixel) IsControl() bool { return p.Priority() < 4 }

// Control line values.
const (
	ControlBlock   = 0
	ControlSignal  = 1
	ControlTrigger = 2
	ControlWater   = 3
)

// Screen is the 160x168 pixel buffer shared by the background and the
// sprites.
type Screen struct {
	Pix [Width * Height]Pixel
}

// NewScreen returns a screen filled with colour 15 on the lowest band.
func NewScreen() *Screen {
	s := &Screen{}
	s.Clear(0x0F, 4)
	return s
}

// Clear fills the screen.
func (s *Screen) Clear(colour, priority uint8) {
	p := NewPixel(colour, priority)
	for i := range s.Pix {
		s.Pix[i] = p
	}
}

// At returns the pixel at (x, y), which must be on screen.
func (s *Screen) At(x, y int) Pixel { return s.Pix[y*Width+x] }

// Set writes the pixel at (x, y), ignoring writes off screen.
func (s *Screen) Set(x, y int, p Pixel) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	s.Pix[y*Width+x] = p
}

// Fill fills rectangle r clipped to the screen.
func (s *Screen) Fill(r image.Rectangle, p Pixel) {
	r = r.Intersect(Bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.Pix[y*Width+x] = p
		}
	}
}

// Bounds is the screen rectangle.
var Bounds = image.Rect(0, 0, Width, Height)

// Digest returns a hash of the whole buffer.
func (s *Screen) Digest() uint64 {
	b := make([]byte, len(s.Pix))
	for i, p := range s.Pix {
		b[i] = byte(p)
	}
	return xxhash.Sum64(b)
}

// Image renders the colour plane with the EGA palette.
func (s *Screen) Image() *image.Paletted {
	img := image.NewPaletted(Bounds, resource.EGA)
	for i, p := range s.Pix {
		img.Pix[i] = p.Colour()
	}
	return img
}

var priorityPalette = func() color.Palette {
	p := make(color.Palette, 16)
	for i := range p {
		v := uint8(i * 17)
		p[i] = color.Gray{Y: v}
	}
	return p
}()

// PriorityImage renders the priority plane as greyscale.
func (s *Screen) PriorityImage() *image.Paletted {
	img := image.NewPaletted(Bounds, priorityPalette)
	for i, p := range s.Pix {
		img.Pix[i] = p.Priority()
	}
	return img
}
