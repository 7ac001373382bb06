package game

import (
	"fmt"
	"math/rand"

	"github.com/scummvm/scummvm-sub094/internal/logic"
	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
)

const (
	// MaxStrings is the number of string registers.
	MaxStrings = 24
	// MaxStringLength is the longest string a register holds.
	MaxStringLength = 40
	// MaxControllers is the number of controllers keys and menu items
	// can be bound to.
	MaxControllers = 50
	// DefaultObjects is the default capacity of the view table.
	DefaultObjects = 16
)

// State is everything the scripts of one game read and write, apart
// from the view table.
type State struct {
	Flags       [256]bool
	Vars        [256]uint8
	Strings     [MaxStrings]string
	Controllers [MaxControllers]bool
	Items       []resource.Item

	// Words holds the word numbers of the last sentence and WordText
	// the words as typed.
	Words    []uint16
	WordText []string

	PlayerControl bool
	InputEnabled  bool

	// keys maps key codes to controllers.
	keys map[int]int
	// key is the last key pressed and not yet consumed by have.key.
	key int
}

func (s *State) reset(items []resource.Item) {
	*s = State{
		Items:         append([]resource.Item(nil), items...),
		PlayerControl: true,
		InputEnabled:  true,
		keys:          map[int]int{},
	}

	s.Vars[types.VarComputer] = 0
	s.Vars[types.VarSoundType] = 1
	s.Vars[types.VarVolume] = 0x0F
	s.Vars[types.VarInputLength] = 41
	s.Vars[types.VarMonitor] = 3
	s.Vars[types.VarFreeMemory] = 10
	s.Vars[types.VarCycleDelay] = 2
	s.Flags[types.FlagLogicZeroFirst] = true
	s.Flags[types.FlagSound] = true
}

func (g *Game) Flag(f types.Flag) bool { return g.state.Flags[f] }

func (g *Game) SetFlag(f types.Flag, v bool) { g.state.Flags[f] = v }

func (g *Game) Var(v types.Var) uint8 { return g.state.Vars[v] }

func (g *Game) SetVar(v types.Var, val uint8) { g.state.Vars[v] = val }

func (g *Game) PlayerControl() bool { return g.state.PlayerControl }

func (g *Game) SetPlayerControl(on bool) { g.state.PlayerControl = on }

// Version returns the interpreter version the game runs as.
func (g *Game) Version() types.Version { return g.profile.Version.Effective() }

// State exposes the flags, variables and strings.
func (g *Game) State() *State { return &g.state }

// Random returns a number in [lo, hi].
func (g *Game) Random(lo, hi uint8) uint8 { return random(g.rng, lo, hi) }

// Limits bounds the object, item, string and controller operands.
func (g *Game) Limits() logic.Limits {
	return logic.Limits{
		Objects:     g.table.Len(),
		Items:       len(g.state.Items),
		Strings:     MaxStrings,
		Controllers: MaxControllers,
	}
}

func random(rng *rand.Rand, lo, hi uint8) uint8 {
	if hi <= lo {
		return lo
	}
	return lo + uint8(rng.Intn(int(hi-lo)+1))
}

// String returns string register n, empty if there is no such register.
func (g *Game) String(n int) string {
	if n < 0 || n >= MaxStrings {
		return ""
	}
	return g.state.Strings[n]
}

// SetString stores s in register n, cut to MaxStringLength.
func (g *Game) SetString(n int, s string) {
	if n < 0 || n >= MaxStrings {
		return
	}
	if len(s) > MaxStringLength {
		s = s[:MaxStringLength]
	}
	g.state.Strings[n] = s
}

// ItemRoom returns the room item n is in.
func (g *Game) ItemRoom(n int) (uint8, error) {
	if err := g.checkItem(n); err != nil {
		return 0, err
	}
	return g.state.Items[n].Room, nil
}

// SetItemRoom moves item n into room.
func (g *Game) SetItemRoom(n int, room uint8) error {
	if err := g.checkItem(n); err != nil {
		return err
	}
	g.state.Items[n].Room = room
	return nil
}

// ItemName returns the name of item n.
func (g *Game) ItemName(n int) (string, error) {
	if err := g.checkItem(n); err != nil {
		return "", err
	}
	return g.state.Items[n].Name, nil
}

func (g *Game) checkItem(n int) error {
	if n < 0 || n >= len(g.state.Items) {
		return fmt.Errorf("item %d of %d: %w", n, len(g.state.Items), types.ErrBoundsViolation)
	}
	return nil
}
