package gfx

import (
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

// FlagSetter receives the flags the compositor and the oracle expose to
// scripts.
type FlagSetter interface {
	SetFlag(f types.Flag, v bool)
}

// Oracle answers whether an object may stand where it is.
type Oracle struct {
	Screen *Screen
	Bands  *Bands
	Table  *view.Table
	Flags  FlagSetter
}

// OnScreen reports whether the object box lies fully on screen and,
// unless the object ignores it, below the horizon.
func (r *Oracle) OnScreen(o *view.Object) bool {
	if o.X < 0 || o.X+o.Width > Width || o.Y-o.Height < -1 || o.Y >= Height {
		return false
	}
	if !o.Has(view.IgnoreHorizon) && o.Y <= r.Table.Horizon {
		return false
	}
	return true
}

// Collides reports whether o overlaps the baseline of another drawn
// object. Two objects collide when their boxes overlap horizontally
// and their baselines are equal or crossed since the last cycle.
func (r *Oracle) Collides(o *view.Object) bool {
	if o.Has(view.IgnoreObjects) {
		return false
	}
	hit := false
	r.Table.Each(func(u *view.Object) {
		if hit || u == o || !u.Has(view.Animated|view.Drawn) || u.Has(view.IgnoreObjects) {
			return
		}
		if o.X+o.Width < u.X || o.X > u.X+u.Width {
			return
		}
		switch {
		case o.Y == u.Y:
			hit = true
		case o.Y > u.Y && o.PrevY < u.PrevY:
			hit = true
		case o.Y < u.Y && o.PrevY > u.PrevY:
			hit = true
		}
	})
	return hit
}

// CheckPriority derives the priority of a non fixed object from its
// baseline and checks the control lines under the baseline. For ego it
// also updates the trigger and water flags.
func (r *Oracle) CheckPriority(o *view.Object) bool {
	if !o.Has(view.FixedPriority) {
		o.Priority = r.Bands.FromY(o.Y)
	}

	pass := true
	water := false
	trigger := false

	if o.Priority != 15 && o.Y >= 0 && o.Y < Height {
		water = true
		for x := o.X; x < o.X+o.Width; x++ {
			if x < 0 || x >= Width {
				continue
			}
			p := r.Screen.At(x, o.Y).Priority()
			if p == ControlBlock {
				pass = false
				break
			}
			if p == ControlWater {
				continue
			}
			water = false
			if p == ControlSignal {
				if !o.Has(view.IgnoreBlocks) {
					pass = false
					break
				}
				continue
			}
			if p == ControlTrigger {
				trigger = true
			}
		}
		if pass {
			if !water && o.Has(view.OnWater) {
				pass = false
			}
			if water && o.Has(view.OnLand) {
				pass = false
			}
		}
	}

	if pass && o.IsEgo() && r.Flags != nil {
		r.Flags.SetFlag(types.FlagEgoTouchedTrigger, trigger)
		r.Flags.SetFlag(types.FlagEgoOnWater, water)
	}
	return pass
}

// Valid reports whether o may stand at its current position.
func (r *Oracle) Valid(o *view.Object) bool {
	return r.OnScreen(o) && !r.Collides(o) && r.CheckPriority(o)
}
