// Package resource defines the decoded resources consumed by the
// interpreter and the compositor, and the providers that supply them.
//
// The volume format and decompression of the original game files are
// not handled here: a Provider hands out resources that are already
// decoded.
package resource

import (
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/types"
)

// Kind is the kind of resource.
type Kind uint8

const (
	KindLogic Kind = iota
	KindView
	KindPicture
	KindSound
)

func (k Kind) String() string {
	switch k {
	case KindLogic:
		return "logic"
	case KindView:
		return "view"
	case KindPicture:
		return "picture"
	case KindSound:
		return "sound"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Logic is a decoded logic resource: the bytecode and the message
// table. Messages are numbered from 1, so message n is Messages[n-1].
type Logic struct {
	Code     []byte
	Messages []string
}

// Message returns message n, or false if the logic has no such message.
func (l *Logic) Message(n int) (string, bool) {
	if n < 1 || n > len(l.Messages) {
		return "", false
	}
	return l.Messages[n-1], true
}

// Cel is a single frame of a view: a bitmap of colour indices.
type Cel struct {
	Width, Height int
	// Transparent is the colour index that is not drawn.
	Transparent uint8
	// Mirrored cels are drawn flipped horizontally.
	Mirrored bool
	// Pixels holds Width*Height colour indices, row by row.
	Pixels []uint8
}

// At returns the colour at the given position of the cel, taking
// mirroring into account.
func (c *Cel) At(x, y int) uint8 {
	if c.Mirrored {
		x = c.Width - 1 - x
	}
	return c.Pixels[y*c.Width+x]
}

// Loop is an animation loop of a view.
type Loop struct {
	Cels []*Cel
}

// View is a decoded view resource.
type View struct {
	Description string
	Loops       []*Loop
}

// Cel returns the cel at loop l, cel c.
func (v *View) Cel(l, c int) (*Cel, error) {
	if l < 0 || l >= len(v.Loops) {
		return nil, fmt.Errorf("loop %d of %d: %w", l, len(v.Loops), types.ErrBoundsViolation)
	}
	loop := v.Loops[l]
	if c < 0 || c >= len(loop.Cels) {
		return nil, fmt.Errorf("cel %d of %d in loop %d: %w", c, len(loop.Cels), l, types.ErrBoundsViolation)
	}
	return loop.Cels[c], nil
}

// Provider supplies decoded resources.
type Provider interface {
	LoadLogic(id int) (*Logic, error)
	LoadView(id int) (*View, error)
	// Unload tells the provider the resource is no longer resident.
	Unload(kind Kind, id int)
}

// Missing returns an error for a resource the provider cannot supply.
func Missing(kind Kind, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, types.ErrResourceMissing)
}

// Item is an inventory object and the room it starts in.
type Item struct {
	Name string `yaml:"name"`
	Room uint8  `yaml:"room"`
}

// Info describes a game: the interpreter version it needs, the words
// the parser knows and the inventory items. Several words may share a
// number, word number 0 marks words the parser ignores.
type Info struct {
	Title   string            `yaml:"title"`
	Version string            `yaml:"version"`
	Words   map[string]uint16 `yaml:"words"`
	Items   []Item            `yaml:"items"`
}
