package logic

import (
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

// Limits bounds the operands of the bounded kinds.
type Limits struct {
	Objects     int
	Items       int
	Strings     int
	Controllers int
}

// State is the flag, variable and string storage of a game.
type State interface {
	Flag(f types.Flag) bool
	SetFlag(f types.Flag, v bool)
	Var(v types.Var) uint8
	SetVar(v types.Var, val uint8)
	String(n int) string
	SetString(n int, s string)
	// Random returns a number in [lo, hi].
	Random(lo, hi uint8) uint8
	PlayerControl() bool
	SetPlayerControl(on bool)
	Version() types.Version
	Limits() Limits
}

// Objects is the view table and the compositor as seen by scripts.
type Objects interface {
	Object(n int) (*view.Object, error)
	Table() *view.Table

	LoadView(n int) error
	DiscardView(n int)
	SetView(o *view.Object, n int) error

	Draw(o *view.Object)
	Erase(o *view.Object)
	StopUpdate(o *view.Object)
	StartUpdate(o *view.Object)
	ForceUpdate(o *view.Object)
	UnanimateAll()
	FixPosition(o *view.Object)
	AddToPic(viewNr, loop, cel, x, y, priority, margin int) error
	SetPriorityBase(base int)

	MoveTo(o *view.Object, x, y, step int, flag types.Flag)
	Follow(o *view.Object, step int, flag types.Flag)
	Wander(o *view.Object)
}

// Rooms covers room changes and logic residency.
type Rooms interface {
	NewRoom(n int)
	// Restart resets the game state and sets types.FlagRestartGame.
	Restart()
	LoadLogic(n int) error
}

// Inventory holds the room of each inventory item. Items carried by
// ego are in types.InventoryRoom.
type Inventory interface {
	ItemRoom(n int) (uint8, error)
	SetItemRoom(n int, room uint8) error
	ItemName(n int) (string, error)
}

// Input is the parsed sentence, the controllers and the keyboard.
type Input interface {
	// Words returns the word numbers of the entered sentence.
	Words() []uint16
	// Word returns the text of word n of the sentence, counted from 1.
	Word(n int) string
	Parse(s string)
	Controller(n int) bool
	HaveKey() bool
	SetKey(code int, ctl int)
	SetInputEnabled(on bool)
	MouseMotion() bool
}

// Commands is everything a script can affect.
type Commands interface {
	State
	Objects
	Rooms
	Inventory
	Input
	Subsystems() Subsystems
}

// Picture draws the background pictures.
type Picture interface {
	LoadPicture(n int) error
	DrawPicture(n int, overlay bool) error
	ShowPicture()
	DiscardPicture(n int)
	ShowPriorityScreen()
}

// Sound plays sounds. done is set once a sound finished.
type Sound interface {
	LoadSound(n int) error
	PlaySound(n int, done types.Flag)
	StopSound()
	DiscardSound(n int)
}

// Text is the text and window output.
type Text interface {
	Print(msg string, row, col, width int)
	Display(row, col int, msg string)
	ClearLines(from, to int, colour uint8)
	ClearTextRect(row1, col1, row2, col2 int, colour uint8)
	TextScreen()
	Graphics()
	SetTextAttribute(fg, bg uint8)
	StatusLine(on bool)
	GetString(prompt string, row, col, max int) string
	GetNum(prompt string) uint8
	CloseWindow()
}

// Menu is the menu bar.
type Menu interface {
	SetMenu(name string)
	SetMenuItem(name string, ctl int)
	SubmitMenu()
	EnableItem(ctl int, on bool)
	MenuInput()
	AllowMenu(on bool)
}

// System covers saving, restarting and the device hints the core does
// not act upon.
type System interface {
	SaveGame()
	// RestoreGame reports whether a game was restored.
	RestoreGame() bool
	// ConfirmRestart reports whether the player agreed to restart.
	ConfirmRestart() bool
	// ConfirmQuit reports whether the player agreed to quit.
	ConfirmQuit() bool
	Quit()
	Pause()
	Status()
	ShowObj(viewNr int)
	Log(msg string)
	// Hint passes an opcode that only concerns the host.
	Hint(name string, args ...int)
}

// Subsystems are the collaborators the host supplies.
type Subsystems interface {
	Picture
	Sound
	Text
	Menu
	System
}
