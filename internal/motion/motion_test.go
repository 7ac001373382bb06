package motion

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scummvm/scummvm-sub094/internal/gfx"
	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

type state struct {
	flags         map[types.Flag]bool
	vars          map[types.Var]uint8
	playerControl bool
}

func newState() *state {
	return &state{flags: map[types.Flag]bool{}, vars: map[types.Var]uint8{}, playerControl: true}
}

func (s *state) SetFlag(f types.Flag, v bool)  { s.flags[f] = v }
func (s *state) SetVar(v types.Var, val uint8) { s.vars[v] = val }
func (s *state) SetPlayerControl(on bool)      { s.playerControl = on }

type rig struct {
	table  *view.Table
	screen *gfx.Screen
	state  *state
	c      *Controller
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{table: view.NewTable(4), screen: gfx.NewScreen(), state: newState()}
	oracle := &gfx.Oracle{Screen: r.screen, Bands: gfx.NewBands(), Table: r.table, Flags: r.state}
	r.c = NewController(r.table, oracle, r.state, types.V2917, 1)
	return r
}

func (r *rig) object(t *testing.T, n, x, y, w, h int) *view.Object {
	t.Helper()
	o, err := r.table.Object(n)
	require.NoError(t, err)
	require.NoError(t, o.SetView(n, resource.SolidView(w, h, 2)))
	o.X, o.Y, o.PrevX, o.PrevY = x, y, x, y
	o.Set(view.Animated | view.Drawn | view.Update)
	return o
}

// cycle runs the movement part of a game cycle and commits positions.
func (r *rig) cycle() {
	r.c.CheckAll()
	r.c.UpdatePositions()
	r.table.Each(func(o *view.Object) {
		if o.X == o.PrevX && o.Y == o.PrevY {
			o.Set(view.DidntMove)
		} else {
			o.Clear(view.DidntMove)
		}
		o.PrevX, o.PrevY = o.X, o.Y
	})
}

func TestMoveObj_EgoConverges(t *testing.T) {
	r := newRig(t)
	r.table.Horizon = 20
	ego := r.object(t, 0, 10, 50, 1, 1)

	r.c.MoveTo(ego, 50, 30, 4, 200)
	assert.False(t, r.state.playerControl)
	assert.Equal(t, 4, ego.StepSize)
	assert.Equal(t, view.NorthEast, ego.Direction)

	for i := 0; i < 20 && ego.Motion == view.MotionMoveTo; i++ {
		r.cycle()
	}

	assert.Equal(t, 50, ego.X)
	assert.Equal(t, 30, ego.Y)
	assert.True(t, r.state.flags[200])
	assert.Equal(t, view.MotionNormal, ego.Motion)
	assert.True(t, r.state.playerControl)
	assert.Equal(t, 1, ego.StepSize)
	assert.Equal(t, uint8(0), r.state.vars[types.VarEgoDirection])
}

func TestMoveObj_BorderArrives(t *testing.T) {
	r := newRig(t)
	o := r.object(t, 2, 10, 100, 4, 4)

	r.c.MoveTo(o, -20, 100, 7, 42)
	r.cycle()
	r.cycle()

	assert.Equal(t, 0, o.X)
	assert.Equal(t, view.MotionNormal, o.Motion)
	assert.True(t, r.state.flags[42])
	assert.Equal(t, uint8(2), r.state.vars[types.VarBorderObject])
	assert.Equal(t, types.BorderLeft, r.state.vars[types.VarBorderCode])
}

func TestUpdatePosition_Horizon(t *testing.T) {
	r := newRig(t)
	ego := r.object(t, 0, 60, 38, 2, 2)
	ego.Direction = view.North
	ego.StepSize = 3

	r.cycle()
	assert.Equal(t, r.table.Horizon+1, ego.Y)
	assert.Equal(t, types.BorderTop, r.state.vars[types.VarEgoBorder])
}

func TestUpdatePosition_StepTime(t *testing.T) {
	r := newRig(t)
	o := r.object(t, 1, 60, 100, 2, 2)
	o.Direction = view.East
	o.StepTime, o.StepTimeCount = 3, 3

	r.c.UpdatePosition(o)
	r.c.UpdatePosition(o)
	assert.Equal(t, 60, o.X)
	r.c.UpdatePosition(o)
	assert.Equal(t, 61, o.X)
	assert.Equal(t, 3, o.StepTimeCount)
}

func TestFixPosition_BlockedIsland(t *testing.T) {
	r := newRig(t)
	o := r.object(t, 1, 80, 100, 1, 1)
	r.screen.Fill(image.Rect(79, 99, 82, 102), gfx.NewPixel(0, gfx.ControlBlock))

	require.True(t, r.c.FixPosition(o))
	assert.Equal(t, 78, o.X)
	assert.Equal(t, 99, o.Y)
}

func TestFixPosition_GivesUp(t *testing.T) {
	r := newRig(t)
	o := r.object(t, 1, 80, 100, 1, 1)
	r.screen.Clear(0, gfx.ControlBlock)

	assert.False(t, r.c.FixPosition(o))
	assert.Equal(t, 80, o.X)
	assert.Equal(t, 100, o.Y)
}

func TestUpdatePosition_CollisionRollsBack(t *testing.T) {
	r := newRig(t)
	a := r.object(t, 1, 50, 100, 4, 4)
	r.object(t, 2, 50, 103, 4, 4)
	a.Direction = view.South
	a.StepSize = 3

	r.c.UpdatePosition(a)
	assert.NotEqual(t, 103, a.Y)
	assert.False(t, r.c.Oracle.Collides(a))
}

func TestMoveObj_CollisionArrives(t *testing.T) {
	r := newRig(t)
	a := r.object(t, 1, 50, 100, 4, 4)
	r.object(t, 2, 50, 103, 4, 4)
	a.StepSize = 1

	r.c.MoveTo(a, 50, 140, 3, 60)
	assert.Equal(t, view.South, a.Direction)
	assert.Equal(t, 3, a.StepSize)

	r.c.UpdatePosition(a)
	assert.Equal(t, view.MotionNormal, a.Motion)
	assert.True(t, r.state.flags[60])
	assert.Equal(t, 1, a.StepSize)
}

func TestFollow_Stalled(t *testing.T) {
	r := newRig(t)
	ego := r.object(t, 0, 100, 100, 2, 2)
	o := r.object(t, 1, 60, 100, 2, 2)

	r.c.Follow(o, 2, 77)
	r.c.Check(o)
	require.Equal(t, view.East, o.Direction)
	require.Equal(t, 0, o.Follow.Count)

	// half the distance to ego plus one bounds the detour
	limit := (abs(ego.X-o.X)+abs(ego.Y-o.Y))/2 + 1
	for i := 0; i < 10; i++ {
		o.Follow.Count = 0
		o.Set(view.DidntMove)
		r.c.Check(o)
		assert.NotEqual(t, view.Stop, o.Direction)
		assert.GreaterOrEqual(t, o.Follow.Count, o.StepSize)
		assert.LessOrEqual(t, o.Follow.Count, limit)
	}
	assert.False(t, r.state.flags[77])
}

func TestFollow(t *testing.T) {
	r := newRig(t)
	ego := r.object(t, 0, 100, 100, 2, 2)
	ego.Set(view.IgnoreObjects)
	o := r.object(t, 1, 60, 100, 2, 2)

	r.c.Follow(o, 2, 77)
	assert.Equal(t, 0xFF, o.Follow.Count)
	assert.False(t, r.state.flags[77])

	for i := 0; i < 60 && o.Motion == view.MotionFollow; i++ {
		r.cycle()
	}
	assert.Equal(t, view.MotionNormal, o.Motion)
	assert.True(t, r.state.flags[77])
	assert.LessOrEqual(t, abs(ego.X-o.X), 2)
}

func TestWander(t *testing.T) {
	r := newRig(t)
	ego := r.object(t, 0, 80, 100, 2, 2)

	r.c.Wander(ego)
	assert.False(t, r.state.playerControl)
	r.c.Check(ego)
	assert.GreaterOrEqual(t, ego.WanderCount, 6)
	assert.Equal(t, uint8(ego.Direction), r.state.vars[types.VarEgoDirection])
}

func TestBlock(t *testing.T) {
	r := newRig(t)
	r.table.Block = view.Block{Active: true, X1: 40, Y1: 80, X2: 100, Y2: 120}
	o := r.object(t, 1, 40, 100, 2, 2)
	o.Direction = view.East

	r.c.Check(o)
	assert.Equal(t, view.Stop, o.Direction)
	assert.True(t, o.Has(view.Motion))

	o.X = 60
	o.Direction = view.East
	r.c.Check(o)
	assert.Equal(t, view.East, o.Direction)
	assert.False(t, o.Has(view.Motion))

	o.Set(view.IgnoreBlocks)
	o.X = 40
	r.c.Check(o)
	assert.Equal(t, view.East, o.Direction)
}
