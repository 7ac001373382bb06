// Package game ties the interpreter, the view table, the motion
// controller and the compositor into a running game.
package game

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/scummvm/scummvm-sub094/internal/gfx"
	"github.com/scummvm/scummvm-sub094/internal/logic"
	"github.com/scummvm/scummvm-sub094/internal/motion"
	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/scheduler"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
	"github.com/scummvm/scummvm-sub094/pkg/log"
)

// TickDuration is the length of one scheduler tick.
const TickDuration = time.Second / scheduler.TicksPerSecond

// Recorder receives the duration of every cycle and the number of
// opcodes it dispatched.
type Recorder interface {
	Record(d time.Duration, executed int)
}

// Game is one running game.
type Game struct {
	state   State
	profile types.Profile
	seed    int64
	rng     *rand.Rand
	dict    *Dictionary

	cache      *resource.Cache
	scripts    *logic.Scripts
	interp     *logic.Interpreter
	table      *view.Table
	screen     *gfx.Screen
	bands      *gfx.Bands
	compositor *gfx.Compositor
	oracle     *gfx.Oracle
	motion     *motion.Controller
	sched      *scheduler.Scheduler

	host       logic.Subsystems
	subsystems subsystems

	log      log.Logger
	recorder Recorder
	onFrame  func(s *gfx.Screen, dirty image.Rectangle)
	dirty    image.Rectangle

	objects      int
	maxDepth     int
	trace        bool
	initialItems []resource.Item

	input []string
	keys  []int

	cycles uint64
	quit   bool
	err    error
}

// New returns a game loading its resources from p.
func New(p resource.Provider, opts ...Opt) (*Game, error) {
	g := &Game{
		profile:  types.DefaultProfile,
		seed:     time.Now().UnixNano(),
		objects:  DefaultObjects,
		maxDepth: logic.DefaultMaxDepth,
		log:      log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.dict == nil {
		g.dict = NewDictionary(nil)
	}

	t, err := logic.NewTable(g.profile)
	if err != nil {
		return nil, fmt.Errorf("opcode table for %s: %w", g.profile.Version, err)
	}

	g.rng = rand.New(rand.NewSource(g.seed))
	g.cache = resource.NewCache(p, g.log)
	g.scripts = logic.NewScripts(g.cache)
	g.table = view.NewTable(g.objects)
	g.screen = gfx.NewScreen()
	g.bands = gfx.NewBands()
	g.compositor = gfx.NewCompositor(g.screen, g.bands, g.table, g, g.log)
	g.compositor.SetFlush(func(r image.Rectangle) {
		g.dirty = g.dirty.Union(r)
	})
	g.oracle = &gfx.Oracle{Screen: g.screen, Bands: g.bands, Table: g.table, Flags: g}
	g.motion = motion.NewController(g.table, g.oracle, g, g.profile.Version, g.seed)

	if g.host == nil {
		g.host = NewHeadless(g.log)
	}
	if h, ok := g.host.(*Headless); ok {
		h.flags = g
	}
	g.subsystems = subsystems{Subsystems: g.host, g: g}

	g.interp = logic.New(g, g.scripts, t,
		logic.WithLogger(g.log),
		logic.WithMaxDepth(g.maxDepth),
		logic.WithTrace(g.trace),
	)

	g.sched = scheduler.NewScheduler()
	g.sched.RegisterEvent(scheduler.GameCycle, g.cycleEvent)
	g.sched.RegisterEvent(scheduler.Clock, g.clockEvent)
	g.sched.RegisterEvent(scheduler.Flush, g.flushEvent)

	g.reset()
	g.log.Infof("game ready: version %s, %d actions, %d objects", g.profile.Version.Effective(), g.profile.Actions, g.objects)
	return g, nil
}

// reset puts the game back into its power on state.
func (g *Game) reset() {
	g.state.reset(g.initialItems)
	g.compositor.EraseAll()
	g.table.Reset()
	g.table.Each(func(o *view.Object) {
		o.View, o.ViewNumber = nil, 0
		o.Motion, o.Cycle, o.Direction = view.MotionNormal, view.CycleNormal, view.Stop
		o.X, o.Y, o.PrevX, o.PrevY = 0, 0, 0, 0
	})
	g.bands.Default()
	g.cache.UnloadRoom()
	g.scripts.Discard()
	g.screen.Clear(15, 4)
	g.dirty = gfx.Bounds
	g.input, g.keys = nil, nil

	g.sched.ScheduleEvent(scheduler.GameCycle, 1)
	g.sched.ScheduleEvent(scheduler.Clock, scheduler.TicksPerSecond)
	g.sched.ScheduleEvent(scheduler.Flush, 1)
}

// Screen returns the screen the sprites are drawn on.
func (g *Game) Screen() *gfx.Screen { return g.screen }

// Bands returns the priority bands.
func (g *Game) Bands() *gfx.Bands { return g.bands }

// Interpreter returns the logic interpreter.
func (g *Game) Interpreter() *logic.Interpreter { return g.interp }

// Cycles returns the number of cycles run so far.
func (g *Game) Cycles() uint64 { return g.cycles }

// Quitting reports whether a script quit the game.
func (g *Game) Quitting() bool { return g.quit }

// Cycle runs one game cycle: input, motion strategies, logic 0 and the
// sprite update. Only fatal script errors are returned.
func (g *Game) Cycle() error {
	start := time.Now()
	g.pollInput()

	ego := g.table.Ego()
	if g.state.PlayerControl {
		ego.Direction = view.Direction(g.Var(types.VarEgoDirection))
	} else {
		g.SetVar(types.VarEgoDirection, uint8(ego.Direction))
	}
	g.motion.CheckAll()

	executed := 0
	for {
		res, err := g.interp.Run(0)
		executed += res.Executed
		if err != nil {
			return err
		}
		if !res.ExitAll || g.quit {
			break
		}
		g.SetVar(types.VarWordNotFound, 0)
		g.SetVar(types.VarBorderObject, 0)
		g.SetVar(types.VarBorderCode, 0)
		g.SetFlag(types.FlagEnteredInput, false)
		g.SetFlag(types.FlagLogicZeroFirst, false)
	}
	ego.Direction = view.Direction(g.Var(types.VarEgoDirection))

	g.SetVar(types.VarBorderObject, 0)
	g.SetVar(types.VarBorderCode, 0)
	g.SetFlag(types.FlagLogicZeroFirst, false)
	g.SetFlag(types.FlagNewRoom, false)
	g.SetFlag(types.FlagRestartGame, false)
	g.SetFlag(types.FlagRestored, false)
	g.SetFlag(types.FlagEnteredInput, false)
	g.SetFlag(types.FlagInputAccepted, false)

	g.animate()
	g.cycles++
	if g.recorder != nil {
		g.recorder.Record(time.Since(start), executed)
	}
	return nil
}

// animate advances the cels of the animated objects and moves them.
func (g *Game) animate() {
	changed := 0
	g.table.Each(func(o *view.Object) {
		if !o.Has(view.Animated | view.Update | view.Drawn) {
			return
		}
		changed++
		if o.StepTimeCount == 1 {
			o.UpdateLoop()
		}
		if !o.Has(view.Cycling) || o.CycleTimeCount == 0 {
			return
		}
		o.CycleTimeCount--
		if o.CycleTimeCount == 0 {
			if o.AdvanceCel() {
				g.SetFlag(o.LoopFlag, true)
			}
			o.CycleTimeCount = o.CycleTime
		}
	})
	if changed == 0 {
		return
	}

	g.compositor.EraseUpdating()
	g.motion.UpdatePositions()
	g.compositor.BlitUpdating()
	g.compositor.CommitAll()
	g.table.Ego().Clear(view.OnLand | view.OnWater)
}

// NewRoom switches to room n. Every object is stopped and taken off
// the screen, the resources of the previous room are unloaded and ego
// is moved to the side opposite the border it left through.
func (g *Game) NewRoom(n int) {
	g.log.Debugf("new room %d", n)
	g.compositor.EraseAll()
	g.table.Reset()
	g.cache.UnloadRoom()
	g.scripts.Discard()
	g.subsystems.StopSound()

	g.state.PlayerControl = true
	g.SetVar(types.VarPreviousRoom, g.Var(types.VarRoom))
	g.SetVar(types.VarRoom, uint8(n))
	g.SetVar(types.VarBorderObject, 0)
	g.SetVar(types.VarBorderCode, 0)
	ego := g.table.Ego()
	g.SetVar(types.VarEgoView, uint8(ego.ViewNumber))

	if err := g.LoadLogic(n); err != nil {
		g.log.Warnf("new room %d: %v", n, err)
	}

	switch g.Var(types.VarEgoBorder) {
	case types.BorderTop:
		ego.Y = view.ScreenHeight - 1
	case types.BorderRight:
		ego.X = 0
	case types.BorderBottom:
		ego.Y = view.DefaultHorizon + 1
	case types.BorderLeft:
		ego.X = view.ScreenWidth - ego.Width
	}
	g.SetVar(types.VarEgoBorder, 0)
	g.SetFlag(types.FlagNewRoom, true)
	g.dirty = gfx.Bounds
}

// Restart puts the game back into its initial state and flags the
// restart for logic 0.
func (g *Game) Restart() {
	g.log.Infof("restarting")
	g.subsystems.StopSound()
	g.reset()
	g.SetFlag(types.FlagRestartGame, true)
}

// LoadLogic makes logic n resident.
func (g *Game) LoadLogic(n int) error {
	_, err := g.scripts.Get(n)
	return err
}

func (g *Game) cycleEvent() {
	if g.err == nil && !g.quit {
		g.err = g.Cycle()
	}
	delay := uint64(g.Var(types.VarCycleDelay))
	g.sched.ScheduleEvent(scheduler.GameCycle, max(delay, 1))
}

// clockEvent advances the game clock by one second.
func (g *Game) clockEvent() {
	v := &g.state.Vars
	v[types.VarSeconds]++
	if v[types.VarSeconds] >= 60 {
		v[types.VarSeconds] = 0
		v[types.VarMinutes]++
	}
	if v[types.VarMinutes] >= 60 {
		v[types.VarMinutes] = 0
		v[types.VarHours]++
	}
	if v[types.VarHours] >= 24 {
		v[types.VarHours] = 0
		v[types.VarDays]++
	}
	g.sched.ScheduleEvent(scheduler.Clock, scheduler.TicksPerSecond)
}

func (g *Game) flushEvent() {
	if g.onFrame != nil && !g.dirty.Empty() {
		g.onFrame(g.screen, g.dirty)
	}
	g.dirty = image.Rectangle{}
	g.sched.ScheduleEvent(scheduler.Flush, 1)
}

// Advance moves the game clock forward by n ticks, running the cycles
// that fall due.
func (g *Game) Advance(n uint64) error {
	g.sched.Tick(n)
	return g.err
}

// RunCycles runs n cycles as fast as possible, keeping the game clock
// in step with the cycle delay.
func (g *Game) RunCycles(n int) error {
	target := g.cycles + uint64(n)
	for g.cycles < target && !g.quit && g.err == nil {
		next, ok := g.sched.Next()
		if !ok {
			break
		}
		g.sched.Tick(max(next, 1))
	}
	return g.err
}

// Run runs the game in real time until the context is cancelled, a
// script quits or a fatal error occurs.
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for !g.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.Advance(1); err != nil {
				return err
			}
		}
	}
	return nil
}
