package game

import (
	"fmt"
	"strings"

	"github.com/scummvm/scummvm-sub094/internal/gfx"
	"github.com/scummvm/scummvm-sub094/internal/logic"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/pkg/log"
)

// subsystems wraps the host collaborators with the bookkeeping the
// game does around them: sprites are lifted off the screen while a
// picture is drawn, and quitting stops the game loop.
type subsystems struct {
	logic.Subsystems
	g *Game
}

func (s subsystems) DrawPicture(n int, overlay bool) error {
	c := s.g.compositor
	c.EraseAll()
	err := s.Subsystems.DrawPicture(n, overlay)
	c.BlitAll()
	return err
}

func (s subsystems) ShowPicture() {
	s.Subsystems.ShowPicture()
	s.g.compositor.Flush(gfx.Bounds)
}

func (s subsystems) PlaySound(n int, done types.Flag) {
	s.g.SetFlag(done, false)
	s.Subsystems.PlaySound(n, done)
}

func (s subsystems) Quit() {
	s.Subsystems.Quit()
	s.g.quit = true
}

func (g *Game) Subsystems() logic.Subsystems { return g.subsystems }

// Headless is a Subsystems without any device. Text output and hints
// are recorded, questions get the configured answers and sounds finish
// as soon as they start.
type Headless struct {
	// Output holds every printed and displayed message.
	Output []string
	// Hints holds the host only opcodes in the order they ran.
	Hints []string
	// Answers are returned by get.string, oldest first.
	Answers []string
	// Number is returned by get.num.
	Number uint8

	AllowRestart bool
	AllowQuit    bool
	Restorable   bool

	flags interface{ SetFlag(types.Flag, bool) }
	log   log.Logger
}

// NewHeadless returns a Headless logging to logger.
func NewHeadless(logger log.Logger) *Headless {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Headless{log: logger, AllowQuit: true}
}

func (h *Headless) hint(name string, args ...int) {
	var b strings.Builder
	b.WriteString(name)
	if len(args) > 0 {
		b.WriteByte('(')
		for i, a := range args {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprint(&b, a)
		}
		b.WriteByte(')')
	}
	h.Hints = append(h.Hints, b.String())
	h.log.Debugf("host: %s", b.String())
}

func (h *Headless) print(msg string) {
	h.Output = append(h.Output, msg)
	h.log.Infof("%s", msg)
}

func (h *Headless) LoadPicture(n int) error { return nil }
func (h *Headless) ShowPicture()            { h.hint("show.pic") }
func (h *Headless) DiscardPicture(n int)    {}
func (h *Headless) ShowPriorityScreen()     { h.hint("show.pri.screen") }

func (h *Headless) DrawPicture(n int, overlay bool) error {
	if overlay {
		h.hint("overlay.pic", n)
	} else {
		h.hint("draw.pic", n)
	}
	return nil
}

func (h *Headless) LoadSound(n int) error { return nil }

// PlaySound finishes the sound at once.
func (h *Headless) PlaySound(n int, done types.Flag) {
	h.hint("sound", n)
	if h.flags != nil {
		h.flags.SetFlag(done, true)
	}
}

func (h *Headless) StopSound()         {}
func (h *Headless) DiscardSound(n int) {}

func (h *Headless) Print(msg string, row, col, width int) { h.print(msg) }
func (h *Headless) Display(row, col int, msg string)      { h.print(msg) }

func (h *Headless) ClearLines(from, to int, colour uint8)                  {}
func (h *Headless) ClearTextRect(row1, col1, row2, col2 int, colour uint8) {}
func (h *Headless) TextScreen()                                            { h.hint("text.screen") }
func (h *Headless) Graphics()                                              { h.hint("graphics") }
func (h *Headless) SetTextAttribute(fg, bg uint8)                          {}
func (h *Headless) StatusLine(on bool)                                     {}
func (h *Headless) CloseWindow()                                           {}

// GetString returns the next answer.
func (h *Headless) GetString(prompt string, row, col, limit int) string {
	if prompt != "" {
		h.print(prompt)
	}
	if len(h.Answers) == 0 {
		return ""
	}
	s := h.Answers[0]
	h.Answers = h.Answers[1:]
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}

func (h *Headless) GetNum(prompt string) uint8 {
	if prompt != "" {
		h.print(prompt)
	}
	return h.Number
}

func (h *Headless) SetMenu(name string)              { h.hint("set.menu") }
func (h *Headless) SetMenuItem(name string, ctl int) { h.hint("set.menu.item", ctl) }
func (h *Headless) SubmitMenu()                      { h.hint("submit.menu") }
func (h *Headless) EnableItem(ctl int, on bool)      {}
func (h *Headless) MenuInput()                       { h.hint("menu.input") }
func (h *Headless) AllowMenu(on bool)                {}

func (h *Headless) SaveGame()            { h.hint("save.game") }
func (h *Headless) ConfirmRestart() bool { return h.AllowRestart }
func (h *Headless) ConfirmQuit() bool    { return h.AllowQuit }
func (h *Headless) Quit()                { h.hint("quit") }
func (h *Headless) Pause()               { h.hint("pause") }
func (h *Headless) Status()              { h.hint("status") }
func (h *Headless) ShowObj(viewNr int)   { h.hint("show.obj", viewNr) }
func (h *Headless) Log(msg string)       { h.log.Infof("log: %s", msg) }

// RestoreGame reports Restorable, there are no saved games to load.
func (h *Headless) RestoreGame() bool {
	h.hint("restore.game")
	return h.Restorable
}

func (h *Headless) Hint(name string, args ...int) { h.hint(name, args...) }
