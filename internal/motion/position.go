package motion

import (
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

// maxRepairSteps bounds the spiral search of FixPosition, enough to
// sweep the whole screen.
const maxRepairSteps = 4 * view.ScreenWidth * view.ScreenHeight

// UpdatePositions moves every animated, updating and drawn object one
// step along its direction.
func (c *Controller) UpdatePositions() {
	c.Table.Each(func(o *view.Object) {
		if o.Has(view.Animated | view.Update | view.Drawn) {
			c.UpdatePosition(o)
		}
	})
}

// UpdatePosition moves o one step once its step timer elapses. The new
// position is clipped to the screen and the horizon, and the touched
// border is reported through the border variables. A position that
// collides or fails the priority check is rolled back and repaired.
func (c *Controller) UpdatePosition(o *view.Object) {
	if o.StepTimeCount > 1 {
		o.StepTimeCount--
		return
	}
	o.StepTimeCount = o.StepTime

	oldX, oldY := o.X, o.Y
	x, y := o.X, o.Y
	if !o.Has(view.UpdatePos) {
		ux, uy := o.Direction.Delta()
		x += o.StepSize * ux
		y += o.StepSize * uy
	}

	border := types.BorderNone
	if x < 0 {
		x = 0
		border = types.BorderLeft
	} else if x+o.Width > view.ScreenWidth {
		x = view.ScreenWidth - o.Width
		border = types.BorderRight
	}
	if y-o.Height < -1 {
		y = o.Height - 1
		border = types.BorderTop
	} else if y > view.ScreenHeight-1 {
		y = view.ScreenHeight - 1
		border = types.BorderBottom
	} else if !o.Has(view.IgnoreHorizon) && y <= c.Table.Horizon {
		y = c.Table.Horizon + 1
		border = types.BorderTop
	}

	o.X, o.Y = x, y
	blocked := false
	if c.Oracle.Collides(o) || !c.Oracle.CheckPriority(o) {
		o.X, o.Y = oldX, oldY
		border = types.BorderNone
		blocked = true
		c.FixPosition(o)
	}

	if border != types.BorderNone {
		if o.IsEgo() {
			c.State.SetVar(types.VarEgoBorder, border)
		} else {
			c.State.SetVar(types.VarBorderObject, uint8(o.Number))
			c.State.SetVar(types.VarBorderCode, border)
		}
	}
	if (border != types.BorderNone || blocked) && o.Motion == view.MotionMoveTo {
		c.Arrive(o)
	}
	o.Clear(view.UpdatePos)
}

func (c *Controller) valid(o *view.Object) bool {
	return c.Oracle.OnScreen(o) && !c.Oracle.Collides(o) && c.Oracle.CheckPriority(o)
}

// FixPosition moves o to the nearest valid position, searching in a
// spiral going west, south, east and north with legs growing every
// two turns. It reports false and leaves o where it was when the
// search gives up.
func (c *Controller) FixPosition(o *view.Object) bool {
	if !o.Has(view.IgnoreHorizon) && o.Y <= c.Table.Horizon {
		o.Y = c.Table.Horizon + 1
	}
	startX, startY := o.X, o.Y

	leg, count, size := 0, 1, 1
	for steps := 0; !c.valid(o); steps++ {
		if steps >= maxRepairSteps {
			o.X, o.Y = startX, startY
			return false
		}
		switch leg {
		case 0:
			o.X--
		case 1:
			o.Y++
		case 2:
			o.X++
		case 3:
			o.Y--
		}
		count--
		if count > 0 {
			continue
		}
		if leg == 1 || leg == 3 {
			size++
		}
		leg = (leg + 1) % 4
		count = size
	}
	return true
}
