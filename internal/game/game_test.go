package game

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scummvm/scummvm-sub094/internal/gfx"
	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

// ifThen assembles "if (tests) { body }".
func ifThen(tests []byte, body ...byte) []byte {
	code := append([]byte{0xFF}, tests...)
	code = append(code, 0xFF, byte(len(body)), byte(len(body)>>8))
	return append(code, body...)
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// once runs body on the first cycle only, using v250 as the guard.
func once(body ...byte) []byte {
	return ifThen([]byte{0x01, 250, 0}, append(body, 0x03, 250, 1)...)
}

type testGame struct {
	*Game
	mem  *resource.MemoryProvider
	host *Headless
}

func newTestGame(t *testing.T, opts ...Opt) *testGame {
	t.Helper()
	tg := &testGame{mem: resource.NewMemoryProvider(), host: NewHeadless(nil)}
	opts = append([]Opt{WithSeed(1), WithSubsystems(tg.host)}, opts...)
	g, err := New(tg.mem, opts...)
	require.NoError(t, err)
	tg.Game = g
	return tg
}

func TestGame_NewRoom(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, cat(
		ifThen([]byte{0x01, 0, 0}, 0x12, 3), // new.room 3
		[]byte{0x00},
	))
	g.mem.AddLogic(3, []byte{0x00})
	g.SetVar(types.VarEgoBorder, types.BorderLeft)
	g.table.Ego().Width = 10

	require.NoError(t, g.Cycle())

	assert.Equal(t, uint8(3), g.Var(types.VarRoom))
	assert.Equal(t, uint8(0), g.Var(types.VarPreviousRoom))
	assert.Equal(t, uint8(0), g.Var(types.VarEgoBorder))
	assert.Equal(t, view.ScreenWidth-10, g.table.Ego().X)
	assert.True(t, g.scripts.Resident(3))
	assert.False(t, g.Flag(types.FlagNewRoom), "new room flag lasts one cycle")
	assert.True(t, g.PlayerControl())
}

func TestGame_MoveObjScenario(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddView(1, resource.SolidView(1, 1, 2))
	g.mem.AddLogic(0, cat(
		once(
			0x3F, 20,                // set.horizon 20
			0x29, 0, 1,              // set.view o0 1
			0x25, 0, 10, 50,         // position o0 10 50
			0x21, 0,                 // animate.obj o0
			0x23, 0,                 // draw o0
			0x51, 0, 50, 30, 4, 200, // move.obj o0 50 30 4 f200
		),
		[]byte{0x00},
	))

	require.NoError(t, g.Cycle())
	ego := g.table.Ego()
	assert.False(t, g.PlayerControl())
	assert.Equal(t, uint8(1), g.Var(types.VarEgoView))

	require.NoError(t, g.RunCycles(30))
	assert.Equal(t, 50, ego.X)
	assert.Equal(t, 30, ego.Y)
	assert.True(t, g.Flag(200))
	assert.Equal(t, view.MotionNormal, ego.Motion)
	assert.Equal(t, 1, ego.StepSize)
	assert.True(t, g.PlayerControl())

	assert.Equal(t, uint8(2), g.screen.At(50, 30).Colour())
	assert.Equal(t, uint8(15), g.screen.At(10, 50).Colour(), "background restored")
}

func TestGame_Said(t *testing.T) {
	g := newTestGame(t, WithInfo(&resource.Info{Words: map[string]uint16{
		"the":     0,
		"look":    20,
		"look at": 20,
		"door":    12,
	}}))
	g.mem.AddLogic(0, cat(
		ifThen([]byte{0x0E, 2, 20, 0, 12, 0}, 0x65, 1), // said look door: print m1
		[]byte{0x00},
	), "A plain wooden door.")

	g.Enter("Look at the door")
	require.NoError(t, g.Cycle())
	assert.Equal(t, []string{"A plain wooden door."}, g.host.Output)
	assert.Equal(t, "look at", g.Word(1))
	assert.False(t, g.Flag(types.FlagInputAccepted))

	g.Enter("look xyzzy")
	require.NoError(t, g.Cycle())
	assert.Len(t, g.host.Output, 1)
	assert.Equal(t, uint8(2), g.Var(types.VarWordNotFound))
	assert.Equal(t, "xyzzy", g.Word(2))
}

func TestGame_PreventInput(t *testing.T) {
	g := newTestGame(t, WithInfo(&resource.Info{Words: map[string]uint16{"look": 20}}))
	g.mem.AddLogic(0, []byte{0x77, 0x00}) // prevent.input
	require.NoError(t, g.Cycle())

	g.Enter("look")
	require.NoError(t, g.Cycle())
	assert.Empty(t, g.Words())
}

func TestGame_Controllers(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, cat(
		once(0x79, 0, 0x3B, 7),            // set.key 0 0x3B c7
		ifThen([]byte{0x0C, 7}, 0x01, 60), // controller c7: increment v60
		[]byte{0x00},
	))
	require.NoError(t, g.Cycle())

	g.PressKey(0x3B00)
	require.NoError(t, g.Cycle())
	assert.Equal(t, uint8(1), g.Var(60))

	require.NoError(t, g.Cycle())
	assert.Equal(t, uint8(1), g.Var(60), "controllers fire for one cycle")
}

func TestGame_Clock(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, []byte{0x00})

	require.NoError(t, g.Advance(2*20))
	assert.Equal(t, uint8(2), g.Var(types.VarSeconds))
	assert.Equal(t, uint64(20), g.Cycles(), "one cycle every other tick")

	g.SetVar(types.VarSeconds, 59)
	g.SetVar(types.VarMinutes, 59)
	g.SetVar(types.VarHours, 23)
	require.NoError(t, g.Advance(20))
	assert.Equal(t, uint8(0), g.Var(types.VarSeconds))
	assert.Equal(t, uint8(0), g.Var(types.VarHours))
	assert.Equal(t, uint8(1), g.Var(types.VarDays))
}

func TestGame_FrameHandler(t *testing.T) {
	var frames []image.Rectangle
	g := newTestGame(t, WithFrameHandler(func(s *gfx.Screen, dirty image.Rectangle) {
		frames = append(frames, dirty)
	}))
	g.mem.AddLogic(0, []byte{0x00})

	require.NoError(t, g.Advance(4))
	require.Len(t, frames, 1)
	assert.Equal(t, gfx.Bounds, frames[0])
}

func TestGame_Restart(t *testing.T) {
	g := newTestGame(t, WithInfo(&resource.Info{Items: []resource.Item{{Name: "?"}, {Name: "key", Room: 3}}}))
	g.host.AllowRestart = true
	g.mem.AddLogic(0, cat(
		ifThen([]byte{0x01, 70, 1}, 0x80),  // restart.game
		[]byte{0x03, 70, 1, 0x5C, 1, 0x00}, // assignn v70 1, get i1
	))

	require.NoError(t, g.Cycle())
	room, err := g.ItemRoom(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(types.InventoryRoom), room)

	g.SetVar(71, 9)
	g.SetVar(types.VarCycleDelay, 5)
	require.NoError(t, g.Cycle())
	assert.Equal(t, uint8(0), g.Var(71), "state was reset")
	assert.Equal(t, uint8(2), g.Var(types.VarCycleDelay))
	assert.Equal(t, uint8(1), g.Var(70), "logic 0 ran again after the restart")
	room, err = g.ItemRoom(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(types.InventoryRoom), room)
	assert.False(t, g.Flag(types.FlagRestartGame), "restart flag lasts one cycle")
}

func TestGame_MissingLogicZero(t *testing.T) {
	g := newTestGame(t)
	err := g.RunCycles(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrResourceMissing))
}

func TestGame_RecoverableError(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, []byte{0x16, 9, 0x03, 80, 1, 0x00}) // call 9, assignn v80 1

	require.NoError(t, g.Cycle())
	assert.Equal(t, uint8(1), g.Var(80), "caller resumes")
	assert.Equal(t, types.ErrorCodeResource, g.Var(types.VarErrorCode))
	assert.Equal(t, uint8(0), g.Var(types.VarErrorInfo), "the calling logic")
}

func TestGame_MissingViewInLogicZero(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, []byte{0x1E, 99, 0x03, 80, 1, 0x00}) // load.view 99, assignn v80 1

	require.NoError(t, g.RunCycles(2))
	assert.Equal(t, uint8(0), g.Var(80), "logic 0 was aborted")
	assert.Equal(t, types.ErrorCodeResource, g.Var(types.VarErrorCode))
	assert.Equal(t, uint8(0), g.Var(types.VarErrorInfo))
}

func TestGame_AutoRestart(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, cat(
		ifThen([]byte{0x01, 71, 1}, 0x80), // restart.game
		[]byte{0x03, 71, 1, 0x00},         // assignn v71 1
	))

	require.NoError(t, g.Cycle())
	g.SetVar(72, 9)
	g.SetFlag(types.FlagRestartGame, true)
	require.NoError(t, g.Cycle())
	assert.Equal(t, uint8(9), g.Var(72), "restart in progress does not skip the confirmation")

	g.SetFlag(types.FlagAutoRestart, true)
	require.NoError(t, g.Cycle())
	assert.Equal(t, uint8(0), g.Var(72), "restarted without asking")
	assert.False(t, g.Flag(types.FlagAutoRestart))
}

func TestGame_Quit(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, []byte{0x86, 1, 0x00}) // quit 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, g.Run(ctx))
	assert.True(t, g.Quitting())
	assert.Contains(t, g.host.Hints, "quit")
}

func TestGame_RunCancelled(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddLogic(0, []byte{0x00})

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	err := g.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.NotZero(t, g.Cycles())
}

func TestGame_AddToPicClipped(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddView(4, resource.SolidView(3, 5, 6))

	require.NoError(t, g.AddToPic(4, 0, 0, 158, 2, 0, 4))
	assert.Equal(t, uint8(6), g.screen.At(157, 0).Colour())
	assert.Equal(t, uint8(6), g.screen.At(159, 4).Colour())

	err := g.AddToPic(4, 1, 0, 0, 0, 0, 4)
	assert.True(t, errors.Is(err, types.ErrBoundsViolation))
}

func TestGame_DrawAndErase(t *testing.T) {
	g := newTestGame(t)
	g.mem.AddView(1, resource.SolidView(4, 4, 9))
	o, err := g.Object(2)
	require.NoError(t, err)
	require.NoError(t, g.SetView(o, 1))
	o.X, o.Y = 40, 100
	o.Set(view.Animated)

	g.Draw(o)
	assert.True(t, o.Has(view.Drawn))
	assert.Equal(t, uint8(9), g.screen.At(41, 99).Colour())

	g.StopUpdate(o)
	assert.False(t, o.Has(view.Update))
	assert.Equal(t, uint8(9), g.screen.At(41, 99).Colour(), "static sprites stay on screen")

	g.Erase(o)
	assert.False(t, o.Has(view.Drawn))
	assert.Equal(t, uint8(15), g.screen.At(41, 99).Colour())
}

func TestParse_Dictionary(t *testing.T) {
	d := NewDictionary(map[string]uint16{"pick up": 30, "pick": 31, "a": 0})
	n, id, ok := d.match([]string{"pick", "up", "a", "rock"})
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint16(30), id)

	n, id, ok = d.match([]string{"pick", "flowers"})
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint16(31), id)

	_, _, ok = d.match([]string{"rock"})
	assert.False(t, ok)
}
