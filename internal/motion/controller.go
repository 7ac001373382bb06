// Package motion moves the objects of the view table: the per object
// movement strategies and the once per cycle position update.
package motion

import (
	"math/rand"

	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

// Oracle tells whether an object may stand where it is.
type Oracle interface {
	OnScreen(o *view.Object) bool
	Collides(o *view.Object) bool
	CheckPriority(o *view.Object) bool
}

// State is the part of the game state touched by movement.
type State interface {
	SetFlag(f types.Flag, v bool)
	SetVar(v types.Var, val uint8)
	SetPlayerControl(on bool)
}

// Controller runs the movement strategies of the objects.
type Controller struct {
	Table   *view.Table
	Oracle  Oracle
	State   State
	Version types.Version

	rng *rand.Rand
}

// NewController returns a controller seeded with seed.
func NewController(t *view.Table, oracle Oracle, state State, version types.Version, seed int64) *Controller {
	return &Controller{
		Table:   t,
		Oracle:  oracle,
		State:   state,
		Version: version,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// random returns a number in [0, n].
func (c *Controller) random(n int) int {
	return c.rng.Intn(n + 1)
}

func (c *Controller) setEgoDirection(o *view.Object) {
	if o.IsEgo() {
		c.State.SetVar(types.VarEgoDirection, uint8(o.Direction))
	}
}

// CheckAll runs the strategy of every moving object whose step timer
// is about to elapse.
func (c *Controller) CheckAll() {
	c.Table.Each(func(o *view.Object) {
		if o.Has(view.Animated|view.Update|view.Drawn) && o.StepTimeCount == 1 {
			c.Check(o)
		}
	})
}

// Check runs the strategy of o and applies the block.
func (c *Controller) Check(o *view.Object) {
	switch o.Motion {
	case view.MotionWander:
		c.wander(o)
	case view.MotionFollow:
		c.follow(o)
	case view.MotionMoveTo:
		c.moveTo(o)
	}
	if c.Table.Block.Active && !o.Has(view.IgnoreBlocks) && o.Direction != view.Stop {
		c.applyBlock(o)
	}
}

func (c *Controller) wander(o *view.Object) {
	count := o.WanderCount
	o.WanderCount = (o.WanderCount - 1) & 0xFF
	if count == 0 || o.Has(view.DidntMove) {
		o.Direction = view.Direction(c.random(8))
		c.setEgoDirection(o)
		for o.WanderCount < 6 {
			o.WanderCount = c.random(50)
		}
	}
}

func (c *Controller) follow(o *view.Object) {
	ego := c.Table.Ego()
	egoX, egoY := ego.X+ego.Width/2, ego.Y
	x, y := o.X+o.Width/2, o.Y

	dir := view.Quantize(x, y, egoX, egoY, o.Follow.StepSize)
	if dir == view.Stop {
		o.Direction = view.Stop
		o.Motion = view.MotionNormal
		c.State.SetFlag(o.Follow.Flag, true)
		return
	}

	if o.Follow.Count == 0xFF {
		o.Follow.Count = 0
	} else if o.Has(view.DidntMove) {
		// stuck, wander off for a while
		for o.Direction = view.Stop; o.Direction == view.Stop; {
			o.Direction = view.Direction(c.random(8))
		}
		d := (abs(egoY-y)+abs(egoX-x))/2 + 1
		if d <= o.StepSize {
			o.Follow.Count = o.StepSize
			return
		}
		for o.Follow.Count = 0; o.Follow.Count < o.StepSize; {
			o.Follow.Count = c.random(d)
		}
		return
	}

	if o.Follow.Count != 0 {
		o.Follow.Count -= o.StepSize
		if o.Follow.Count < 0 {
			o.Follow.Count = 0
		}
		return
	}
	o.Direction = dir
}

func (c *Controller) moveTo(o *view.Object) {
	o.Direction = view.Quantize(o.X, o.Y, o.Move.X, o.Move.Y, o.StepSize)
	c.setEgoDirection(o)
	if o.Direction == view.Stop {
		c.Arrive(o)
	}
}

// Arrive ends a move to point: the step size is restored, the
// completion flag is set and ego gets back under player control.
func (c *Controller) Arrive(o *view.Object) {
	o.StepSize = o.Move.StepSize
	if o.Motion != view.MotionEgo {
		c.State.SetFlag(o.Move.Flag, true)
	}
	o.Motion = view.MotionNormal
	if o.IsEgo() {
		c.State.SetPlayerControl(true)
		c.State.SetVar(types.VarEgoDirection, 0)
	}
}

// MoveTo starts moving o towards (x, y). A non zero step overrides the
// step size until the object arrives.
func (c *Controller) MoveTo(o *view.Object, x, y, step int, flag types.Flag) {
	o.Motion = view.MotionMoveTo
	o.Move = view.MoveParams{X: x, Y: y, StepSize: o.StepSize, Flag: flag}
	if step != 0 {
		o.StepSize = step
	}
	c.State.SetFlag(flag, false)
	o.Set(view.Update)
	if o.IsEgo() {
		c.State.SetPlayerControl(false)
	}
	if c.Version.Effective() > types.V2272 {
		c.moveTo(o)
	}
}

// Follow makes o follow ego, setting flag once it reaches ego.
func (c *Controller) Follow(o *view.Object, step int, flag types.Flag) {
	o.Motion = view.MotionFollow
	o.Follow.StepSize = step
	if step <= o.StepSize {
		o.Follow.StepSize = o.StepSize
	}
	o.Follow.Flag = flag
	o.Follow.Count = 0xFF
	c.State.SetFlag(flag, false)
	o.Set(view.Update)
}

// Wander makes o walk around randomly.
func (c *Controller) Wander(o *view.Object) {
	if o.IsEgo() {
		c.State.SetPlayerControl(false)
	}
	o.Motion = view.MotionWander
	o.Set(view.Update)
}

// Normal stops any strategy of o.
func (c *Controller) Normal(o *view.Object) {
	o.Motion = view.MotionNormal
}

func (c *Controller) applyBlock(o *view.Object) {
	b := c.Table.Block
	inside := b.Contains(o.X, o.Y)
	ux, uy := o.Direction.Delta()
	if b.Contains(o.X+o.StepSize*ux, o.Y+o.StepSize*uy) == inside {
		o.Clear(view.Motion)
		return
	}
	o.Set(view.Motion)
	o.Direction = view.Stop
	c.setEgoDirection(o)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
