package logic

import (
	"strings"

	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

const (
	// WordAny matches any single word of the sentence.
	WordAny = 1
	// WordRest matches the rest of the sentence.
	WordRest = 9999
)

func init() {
	defineTest(0x01, "equaln", "vn", func(m *Interpreter, a []int) (bool, error) {
		return int(m.cmd.Var(uint8(a[0]))) == a[1], nil
	})
	defineTest(0x02, "equalv", "vv", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.Var(uint8(a[0])) == m.cmd.Var(uint8(a[1])), nil
	})
	defineTest(0x03, "lessn", "vn", func(m *Interpreter, a []int) (bool, error) {
		return int(m.cmd.Var(uint8(a[0]))) < a[1], nil
	})
	defineTest(0x04, "lessv", "vv", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.Var(uint8(a[0])) < m.cmd.Var(uint8(a[1])), nil
	})
	defineTest(0x05, "greatern", "vn", func(m *Interpreter, a []int) (bool, error) {
		return int(m.cmd.Var(uint8(a[0]))) > a[1], nil
	})
	defineTest(0x06, "greaterv", "vv", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.Var(uint8(a[0])) > m.cmd.Var(uint8(a[1])), nil
	})
	defineTest(0x07, "isset", "f", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.Flag(uint8(a[0])), nil
	})
	defineTest(0x08, "issetv", "v", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.Flag(m.cmd.Var(uint8(a[0]))), nil
	})
	defineTest(0x09, "has", "i", func(m *Interpreter, a []int) (bool, error) {
		room, err := m.cmd.ItemRoom(a[0])
		return room == types.InventoryRoom, err
	})
	defineTest(0x0A, "obj.in.room", "iv", func(m *Interpreter, a []int) (bool, error) {
		room, err := m.cmd.ItemRoom(a[0])
		return room == m.cmd.Var(uint8(a[1])), err
	})
	defineTest(0x0B, "posn", "onnnn", inBox(func(o *view.Object) (int, int, int) {
		return o.X, o.X, o.Y
	}))
	defineTest(0x0C, "controller", "c", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.Controller(a[0]), nil
	})
	defineTest(0x0D, "have.key", "", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.HaveKey(), nil
	})
	defineVariadicTest(0x0E, "said", said)
	defineTest(0x0F, "compare.strings", "ss", func(m *Interpreter, a []int) (bool, error) {
		return normalize(m.cmd.String(a[0])) == normalize(m.cmd.String(a[1])), nil
	})
	defineTest(0x10, "obj.in.box", "onnnn", inBox(func(o *view.Object) (int, int, int) {
		return o.X, o.X + o.Width - 1, o.Y
	}))
	defineTest(0x11, "center.posn", "onnnn", inBox(func(o *view.Object) (int, int, int) {
		c := o.X + o.Width/2
		return c, c, o.Y
	}))
	defineTest(0x12, "right.posn", "onnnn", inBox(func(o *view.Object) (int, int, int) {
		r := o.X + o.Width - 1
		return r, r, o.Y
	}))
	defineTest(0x13, "in.motion.using.mouse", "", func(m *Interpreter, a []int) (bool, error) {
		return m.cmd.MouseMotion(), nil
	})
}

// inBox builds a test checking that the span [left, right] at row y of
// an object lies within the box given by the operands.
func inBox(span func(o *view.Object) (left, right, y int)) testFunc {
	return func(m *Interpreter, a []int) (bool, error) {
		o, err := m.cmd.Object(a[0])
		if err != nil {
			return false, err
		}
		l, r, y := span(o)
		return l >= a[1] && y >= a[2] && r <= a[3] && y <= a[4], nil
	}
}

// said matches the entered sentence against the word numbers in a. It
// never matches once a previous said accepted the sentence.
func said(m *Interpreter, a []int) (bool, error) {
	if !m.cmd.Flag(types.FlagEnteredInput) || m.cmd.Flag(types.FlagInputAccepted) {
		return false, nil
	}
	words := m.cmd.Words()
	n := 0
	for _, w := range a {
		if w == WordRest {
			n = len(words)
			break
		}
		if n >= len(words) {
			return false, nil
		}
		if w != WordAny && uint16(w) != words[n] {
			return false, nil
		}
		n++
	}
	if n < len(words) {
		return false, nil
	}
	m.cmd.SetFlag(types.FlagInputAccepted, true)
	return true, nil
}

// normalize drops the characters compare.strings ignores and folds
// case.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '.', ',', ':', ';', '!', '\'':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
