package game

import (
	"strings"
	"unicode"

	"github.com/scummvm/scummvm-sub094/internal/types"
)

// WordUnknown is the word number given to words missing from the
// dictionary. It never matches a said pattern.
const WordUnknown = 0xFFFF

// Dictionary maps words, and phrases of several words, to their word
// numbers. Words numbered 0 are dropped from sentences.
type Dictionary struct {
	words map[string]uint16
	// longest is the most words in one entry.
	longest int
}

// NewDictionary returns a dictionary over words. Keys are matched
// case-insensitively.
func NewDictionary(words map[string]uint16) *Dictionary {
	d := &Dictionary{words: make(map[string]uint16, len(words)), longest: 1}
	for w, n := range words {
		fields := tokenize(w)
		if len(fields) == 0 {
			continue
		}
		d.words[strings.Join(fields, " ")] = n
		d.longest = max(d.longest, len(fields))
	}
	return d
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.words) }

// match finds the longest entry at the start of tokens.
func (d *Dictionary) match(tokens []string) (n int, id uint16, ok bool) {
	for n = min(d.longest, len(tokens)); n > 0; n-- {
		if id, ok = d.words[strings.Join(tokens[:n], " ")]; ok {
			return n, id, true
		}
	}
	return 0, 0, false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// Parse splits s into words and looks them up. The parse stops at the
// first unknown word, whose position, counted from 1, is stored in
// VarWordNotFound. FlagEnteredInput is set whenever the sentence held
// any word.
func (g *Game) Parse(s string) {
	st := &g.state
	st.Words, st.WordText = st.Words[:0], st.WordText[:0]
	g.SetVar(types.VarWordNotFound, 0)
	g.SetFlag(types.FlagInputAccepted, false)

	tokens := tokenize(s)
	for i := 0; i < len(tokens); {
		n, id, ok := g.dict.match(tokens[i:])
		if !ok {
			st.Words = append(st.Words, WordUnknown)
			st.WordText = append(st.WordText, tokens[i])
			g.SetVar(types.VarWordNotFound, uint8(len(st.Words)))
			break
		}
		if id != 0 {
			st.Words = append(st.Words, id)
			st.WordText = append(st.WordText, strings.Join(tokens[i:i+n], " "))
		}
		i += n
	}

	if len(st.Words) > 0 {
		g.SetFlag(types.FlagEnteredInput, true)
	}
	g.log.Debugf("parsed %q: %v", s, st.Words)
}

// Words returns the word numbers of the last sentence.
func (g *Game) Words() []uint16 { return g.state.Words }

// Word returns word n of the last sentence as typed, counted from 1.
func (g *Game) Word(n int) string {
	if n < 1 || n > len(g.state.WordText) {
		return ""
	}
	return g.state.WordText[n-1]
}

// Enter queues a sentence typed by the player. It is parsed at the
// start of the next cycle, unless input is prevented.
func (g *Game) Enter(sentence string) {
	g.input = append(g.input, sentence)
}

// PressKey queues a key press for the next cycle.
func (g *Game) PressKey(code int) {
	g.keys = append(g.keys, code)
}

// Controller reports whether controller n fired this cycle.
func (g *Game) Controller(n int) bool {
	return n >= 0 && n < MaxControllers && g.state.Controllers[n]
}

// SetKey binds a key code to a controller.
func (g *Game) SetKey(code int, ctl int) {
	g.state.keys[code] = ctl
}

// HaveKey reports whether a key was pressed and consumes it.
func (g *Game) HaveKey() bool {
	k := g.state.key
	g.state.key = 0
	return k != 0
}

func (g *Game) SetInputEnabled(on bool) { g.state.InputEnabled = on }

// MouseMotion is always false, there is no mouse.
func (g *Game) MouseMotion() bool { return false }

// pollInput hands the queued key and sentence to the scripts.
func (g *Game) pollInput() {
	for i := range g.state.Controllers {
		g.state.Controllers[i] = false
	}

	if len(g.keys) > 0 {
		code := g.keys[0]
		g.keys = g.keys[1:]
		if ctl, ok := g.state.keys[code]; ok && ctl < MaxControllers {
			g.state.Controllers[ctl] = true
		} else {
			g.state.key = code
			g.SetVar(types.VarKey, uint8(code))
		}
	}

	if len(g.input) > 0 && g.state.InputEnabled {
		sentence := g.input[0]
		g.input = g.input[1:]
		g.Parse(sentence)
	}
}
