package gfx

import (
	"errors"
	"fmt"
)

// ErrArenaFull is returned when a save area does not fit the arena.
var ErrArenaFull = errors.New("save area arena exhausted")

// DefaultArenaSize holds two full screens worth of save areas.
const DefaultArenaSize = 2 * Width * Height

// Arena is a bump allocator for sprite save areas. Allocations are
// released in stack order with Mark and Release, or all at once with
// Reset.
type Arena struct {
	buf  []Pixel
	used int
}

func NewArena(size int) *Arena {
	return &Arena{buf: make([]Pixel, size)}
}

// Alloc returns n pixels of the arena.
func (a *Arena) Alloc(n int) ([]Pixel, error) {
	if n < 0 || a.used+n > len(a.buf) {
		return nil, fmt.Errorf("alloc %d with %d free: %w", n, len(a.buf)-a.used, ErrArenaFull)
	}
	p := a.buf[a.used : a.used+n : a.used+n]
	a.used += n
	return p, nil
}

// Mark returns the current top of the arena.
func (a *Arena) Mark() int { return a.used }

// Release frees everything allocated after mark.
func (a *Arena) Release(mark int) {
	if mark >= 0 && mark < a.used {
		a.used = mark
	}
}

// Reset frees the whole arena.
func (a *Arena) Reset() { a.used = 0 }

// Used returns the number of allocated pixels.
func (a *Arena) Used() int { return a.used }
