package gfx

import (
	"image"
	"sort"

	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
	"github.com/scummvm/scummvm-sub094/pkg/log"
)

// FlushFunc is called with every screen rectangle that changed and
// should be presented.
type FlushFunc func(r image.Rectangle)

type sprite struct {
	obj  *view.Object
	cel  *resource.Cel
	rect image.Rectangle
	key  int
	save []Pixel
}

// Compositor draws the objects of a view table onto the screen in
// priority order and restores the background underneath them.
//
// Objects are split into two lists: the updating list (animated,
// updating and drawn) and the static list (animated and drawn but not
// updating). Static sprites stay on screen across cycles while the
// updating ones are erased and redrawn every cycle.
type Compositor struct {
	Screen *Screen
	Bands  *Bands
	Table  *view.Table

	arena *Arena
	flush FlushFunc
	flags FlagSetter
	log   log.Logger

	updating []*sprite
	static   []*sprite
	// staticMark is the arena top after the static list was saved.
	staticMark int
}

// NewCompositor returns a compositor drawing the objects of t.
func NewCompositor(s *Screen, b *Bands, t *view.Table, flags FlagSetter, logger log.Logger) *Compositor {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Compositor{
		Screen: s,
		Bands:  b,
		Table:  t,
		arena:  NewArena(DefaultArenaSize),
		flags:  flags,
		log:    logger,
	}
}

// SetFlush sets the callback receiving changed rectangles.
func (c *Compositor) SetFlush(f FlushFunc) { c.flush = f }

// Arena exposes the save area allocator.
func (c *Compositor) Arena() *Arena { return c.arena }

func (c *Compositor) flushRect(r image.Rectangle) {
	r = r.Intersect(Bounds)
	if c.flush != nil && !r.Empty() {
		c.flush(r)
	}
}

// Rect returns the screen box of o.
func Rect(o *view.Object) image.Rectangle {
	return image.Rect(o.X, o.Y-o.Height+1, o.X+o.Width, o.Y+1)
}

func prevRect(o *view.Object) image.Rectangle {
	return image.Rect(o.PrevX, o.PrevY-o.Height+1, o.PrevX+o.Width, o.PrevY+1)
}

func isUpdating(o *view.Object) bool {
	return o.Has(view.Animated | view.Update | view.Drawn)
}

func isStatic(o *view.Object) bool {
	return o.Has(view.Animated|view.Drawn) && !o.Has(view.Update)
}

func (c *Compositor) buildList(match func(o *view.Object) bool) []*sprite {
	var list []*sprite
	c.Table.Each(func(o *view.Object) {
		if !match(o) {
			return
		}
		cel := o.CurrentCel()
		if cel == nil {
			return
		}
		if !o.Has(view.FixedPriority) {
			o.Priority = c.Bands.FromY(o.Y)
		}
		key := o.Y
		if o.Has(view.FixedPriority) {
			key = c.Bands.RowFor(o.Priority)
		}
		list = append(list, &sprite{obj: o, cel: cel, rect: Rect(o), key: key})
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].key < list[j].key })
	return list
}

func (c *Compositor) blit(list []*sprite) {
	for _, s := range list {
		r := s.rect.Intersect(Bounds)
		save, err := c.arena.Alloc(r.Dx() * r.Dy())
		if err != nil {
			c.log.Errorf("object %d: %v", s.obj.Number, err)
			continue
		}
		i := 0
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				save[i] = c.Screen.At(x, y)
				i++
			}
		}
		s.save = save

		hidden := c.drawCel(s.cel, s.rect.Min.X, s.rect.Min.Y, s.obj.Priority)
		if s.obj.IsEgo() && c.flags != nil {
			c.flags.SetFlag(types.FlagEgoInvisible, hidden)
		}
	}
}

// drawCel composites cel with its top left corner at (x, y). It reports
// whether every opaque pixel was hidden behind something of higher
// priority.
func (c *Compositor) drawCel(cel *resource.Cel, x, y int, priority uint8) bool {
	hidden := true
	for cy := 0; cy < cel.Height; cy++ {
		for cx := 0; cx < cel.Width; cx++ {
			colour := cel.At(cx, cy)
			if colour == cel.Transparent {
				continue
			}
			sx, sy := x+cx, y+cy
			if sx < 0 || sx >= Width || sy < 0 || sy >= Height {
				continue
			}
			dst := c.Screen.At(sx, sy)
			if dst.IsControl() {
				hidden = false
				continue
			}
			if priority >= dst.Priority() {
				c.Screen.Set(sx, sy, NewPixel(colour, priority))
				hidden = false
			}
		}
	}
	return hidden
}

func (c *Compositor) erase(list []*sprite) {
	for i := len(list) - 1; i >= 0; i-- {
		s := list[i]
		if s.save == nil {
			continue
		}
		r := s.rect.Intersect(Bounds)
		j := 0
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c.Screen.Set(x, y, s.save[j])
				j++
			}
		}
		c.flushRect(r)
		s.save = nil
	}
}

// BlitAll draws the static list and then the updating list.
func (c *Compositor) BlitAll() {
	if len(c.updating) > 0 || len(c.static) > 0 {
		c.EraseAll()
	}
	c.static = c.buildList(isStatic)
	c.blit(c.static)
	c.staticMark = c.arena.Mark()
	c.BlitUpdating()
}

// EraseAll removes every sprite from the screen, the updating list
// first, and frees all save areas.
func (c *Compositor) EraseAll() {
	c.erase(c.updating)
	c.erase(c.static)
	c.updating, c.static = nil, nil
	c.arena.Reset()
	c.staticMark = 0
}

// BlitUpdating draws only the updating list, on top of whatever static
// sprites are already on screen.
func (c *Compositor) BlitUpdating() {
	if len(c.updating) > 0 {
		c.EraseUpdating()
	}
	c.updating = c.buildList(isUpdating)
	c.blit(c.updating)
}

// EraseUpdating removes the updating sprites and frees their save
// areas, leaving the static list on screen.
func (c *Compositor) EraseUpdating() {
	c.erase(c.updating)
	c.updating = nil
	c.arena.Release(c.staticMark)
}

// CommitAll presents every updating object: the union of its previous
// and current box is flushed and the previous position advances. An
// object whose position did not change is marked DidntMove.
func (c *Compositor) CommitAll() {
	for _, s := range c.updating {
		c.commit(s.obj)
	}
}

// Present flushes the box of o, its previous box included, and
// advances its previous position.
func (c *Compositor) Present(o *view.Object) { c.commit(o) }

// Flush hands r to the flush callback.
func (c *Compositor) Flush(r image.Rectangle) { c.flushRect(r) }

func (c *Compositor) commit(o *view.Object) {
	c.flushRect(Rect(o).Union(prevRect(o)))
	if o.X == o.PrevX && o.Y == o.PrevY {
		o.Set(view.DidntMove)
		return
	}
	o.PrevX, o.PrevY = o.X, o.Y
	o.Clear(view.DidntMove)
}

// ForceUpdate redraws everything and presents object o.
func (c *Compositor) ForceUpdate(o *view.Object) {
	c.EraseAll()
	c.BlitAll()
	c.commit(o)
}

// Drawn reports whether o is on one of the sprite lists.
func (c *Compositor) Drawn(o *view.Object) bool {
	for _, list := range [][]*sprite{c.updating, c.static} {
		for _, s := range list {
			if s.obj == o {
				return true
			}
		}
	}
	return false
}

// AddToPic bakes cel into the background with its bottom left corner at
// (x, y). Priority 0 derives the priority from y. A margin of 3 or less
// also stamps that control value as a box around the cel, limited to
// the height of the priority band, on pixels that are not already
// control lines.
//
// The sprites must be erased while the background changes.
func (c *Compositor) AddToPic(cel *resource.Cel, x, y int, priority, margin uint8) {
	if priority == 0 {
		priority = c.Bands.FromY(y)
	}
	top := y - cel.Height + 1
	c.drawCel(cel, x, top, priority)

	if margin <= 3 {
		height := 1
		for height < cel.Height && y-height >= 0 && c.Bands.FromY(y-height) == priority {
			height++
		}
		box := image.Rect(x, y-height+1, x+cel.Width, y+1)
		c.stampBox(box, margin)
	}
	c.flushRect(image.Rect(x, top, x+cel.Width, y+1))
}

func (c *Compositor) stampBox(r image.Rectangle, control uint8) {
	stamp := func(x, y int) {
		if x < 0 || x >= Width || y < 0 || y >= Height {
			return
		}
		p := c.Screen.At(x, y)
		if p.Priority() > 3 {
			c.Screen.Set(x, y, NewPixel(p.Colour(), control))
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		stamp(x, r.Min.Y)
		stamp(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		stamp(r.Min.X, y)
		stamp(r.Max.X-1, y)
	}
}
