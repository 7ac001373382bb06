package game

import (
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/gfx"
	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
	"github.com/scummvm/scummvm-sub094/pkg/utils"
)

// Object returns object n of the view table.
func (g *Game) Object(n int) (*view.Object, error) { return g.table.Object(n) }

// Table returns the view table.
func (g *Game) Table() *view.Table { return g.table }

// LoadView makes view n resident.
func (g *Game) LoadView(n int) error {
	_, err := g.cache.View(n)
	return err
}

// DiscardView drops view n. Objects showing it keep their copy.
func (g *Game) DiscardView(n int) {
	g.cache.Unload(resource.KindView, n)
}

// SetView attaches view n to o, loading it if needed.
func (g *Game) SetView(o *view.Object, n int) error {
	v, err := g.cache.View(n)
	if err != nil {
		return err
	}
	if err := o.SetView(n, v); err != nil {
		return err
	}
	if o.IsEgo() {
		g.SetVar(types.VarEgoView, uint8(n))
	}
	return nil
}

// Draw puts o on screen at the nearest valid position.
func (g *Game) Draw(o *view.Object) {
	if o.Has(view.Drawn) {
		return
	}
	if o.View == nil {
		g.log.Warnf("draw: object %d has no view", o.Number)
		return
	}
	o.Set(view.Update)
	g.motion.FixPosition(o)
	o.PrevX, o.PrevY = o.X, o.Y

	g.compositor.EraseUpdating()
	o.Set(view.Drawn)
	g.compositor.BlitUpdating()
	g.compositor.Flush(gfx.Rect(o))
	o.Clear(view.DontUpdate)
}

// Erase takes o off the screen.
func (g *Game) Erase(o *view.Object) {
	if !o.Has(view.Drawn) {
		return
	}
	if o.Has(view.Update) {
		g.compositor.EraseUpdating()
		o.Clear(view.Drawn)
		g.compositor.BlitUpdating()
	} else {
		g.compositor.EraseAll()
		o.Clear(view.Drawn)
		g.compositor.BlitAll()
	}
	g.compositor.Flush(gfx.Rect(o))
}

// StopUpdate freezes o into the static list.
func (g *Game) StopUpdate(o *view.Object) {
	if !o.Has(view.Update) {
		return
	}
	g.compositor.EraseAll()
	o.Clear(view.Update)
	g.compositor.BlitAll()
}

// StartUpdate moves o back to the updating list.
func (g *Game) StartUpdate(o *view.Object) {
	if o.Has(view.Update) {
		return
	}
	g.compositor.EraseAll()
	o.Set(view.Update)
	g.compositor.BlitAll()
}

// ForceUpdate redraws every sprite and presents o.
func (g *Game) ForceUpdate(o *view.Object) {
	g.compositor.ForceUpdate(o)
}

// UnanimateAll takes every object off the screen and out of the
// animation.
func (g *Game) UnanimateAll() {
	g.compositor.EraseAll()
	g.table.Each(func(o *view.Object) {
		o.Clear(view.Animated | view.Drawn)
	})
}

// FixPosition moves o to the nearest position it may stand on.
func (g *Game) FixPosition(o *view.Object) {
	if !g.motion.FixPosition(o) {
		g.log.Warnf("object %d: no valid position near (%d, %d)", o.Number, o.X, o.Y)
	}
}

// AddToPic bakes a cel of a view into the background. The cel is kept
// on screen, and the priority is masked to its four bits.
func (g *Game) AddToPic(viewNr, loop, cel, x, y, priority, margin int) error {
	v, err := g.cache.View(viewNr)
	if err != nil {
		return err
	}
	c, err := v.Cel(loop, cel)
	if err != nil {
		return fmt.Errorf("add.to.pic view %d: %w", viewNr, err)
	}

	x = utils.Clamp(0, x, gfx.Width-c.Width)
	y = utils.Clamp(c.Height-1, y, gfx.Height-1)

	g.compositor.EraseAll()
	g.compositor.AddToPic(c, x, y, uint8(priority)&0x0F, uint8(margin))
	g.compositor.BlitAll()
	return nil
}

// SetPriorityBase rebuilds the priority bands from base.
func (g *Game) SetPriorityBase(base int) {
	g.bands.SetBase(base)
}

// MoveTo starts moving o towards (x, y).
func (g *Game) MoveTo(o *view.Object, x, y, step int, flag types.Flag) {
	g.motion.MoveTo(o, x, y, step, flag)
}

// Follow makes o follow ego.
func (g *Game) Follow(o *view.Object, step int, flag types.Flag) {
	g.motion.Follow(o, step, flag)
}

// Wander makes o walk about at random.
func (g *Game) Wander(o *view.Object) {
	g.motion.Wander(o)
}
