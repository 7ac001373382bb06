package game

import (
	"image"

	"github.com/scummvm/scummvm-sub094/internal/gfx"
	"github.com/scummvm/scummvm-sub094/internal/logic"
	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/pkg/log"
)

// Opt is a function that configures a Game before it is built.
type Opt func(g *Game)

// WithLogger sets the logger shared by every component of the game.
func WithLogger(l log.Logger) Opt {
	return func(g *Game) {
		g.log = l
	}
}

// WithProfile selects the opcode set of an interpreter version.
func WithProfile(p types.Profile) Opt {
	return func(g *Game) {
		g.profile = p
	}
}

// WithVersion overrides the version of the profile, which changes the
// version dependent behaviour without changing the opcode set.
func WithVersion(v types.Version) Opt {
	return func(g *Game) {
		g.profile.Version = v
	}
}

// WithSeed seeds the random numbers used by scripts and by wandering
// objects, making runs reproducible.
func WithSeed(seed int64) Opt {
	return func(g *Game) {
		g.seed = seed
	}
}

// WithSubsystems sets the picture, sound, text, menu and system
// collaborators. The default is a Headless recorder.
func WithSubsystems(s logic.Subsystems) Opt {
	return func(g *Game) {
		g.host = s
	}
}

// WithMaxCallDepth limits nested logic calls.
func WithMaxCallDepth(n int) Opt {
	return func(g *Game) {
		g.maxDepth = n
	}
}

// WithTrace logs every dispatched opcode at debug level.
func WithTrace(on bool) Opt {
	return func(g *Game) {
		g.trace = on
	}
}

// WithObjects sets the capacity of the view table.
func WithObjects(n int) Opt {
	return func(g *Game) {
		if n > 0 {
			g.objects = n
		}
	}
}

// WithInfo sets the dictionary and the inventory of the game.
func WithInfo(info *resource.Info) Opt {
	return func(g *Game) {
		if info == nil {
			return
		}
		g.dict = NewDictionary(info.Words)
		g.initialItems = append([]resource.Item(nil), info.Items...)
	}
}

// WithFrameHandler sets the function receiving the screen and the
// area that changed since the previous frame.
func WithFrameHandler(fn func(s *gfx.Screen, dirty image.Rectangle)) Opt {
	return func(g *Game) {
		g.onFrame = fn
	}
}

// WithRecorder sets the recorder receiving the timing of each cycle.
func WithRecorder(r Recorder) Opt {
	return func(g *Game) {
		g.recorder = r
	}
}
