package logic

import (
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/types"
)

// ArgKind is the kind of an operand. The kind decides how an operand
// is validated when it is fetched, never how the opcode is dispatched.
type ArgKind uint8

const (
	ArgNum  ArgKind = 'n' // immediate number
	ArgVar  ArgKind = 'v' // variable number
	ArgFlag ArgKind = 'f' // flag number
	ArgMsg  ArgKind = 'm' // message of the current logic
	ArgObj  ArgKind = 'o' // object of the view table
	ArgItem ArgKind = 'i' // inventory item
	ArgStr  ArgKind = 's' // string slot
	ArgWord ArgKind = 'w' // word of the entered sentence
	ArgCtl  ArgKind = 'c' // controller
)

func (k ArgKind) valid() bool {
	switch k {
	case ArgNum, ArgVar, ArgFlag, ArgMsg, ArgObj, ArgItem, ArgStr, ArgWord, ArgCtl:
		return true
	}
	return false
}

type actionFunc func(m *Interpreter, a []int) error

type testFunc func(m *Interpreter, a []int) (bool, error)

// Action describes an action opcode.
type Action struct {
	Name string
	Args []ArgKind
	fn   actionFunc
}

// Test describes a test opcode. Variadic tests take a count byte
// followed by that many 16 bit word numbers.
type Test struct {
	Name     string
	Args     []ArgKind
	Variadic bool
	fn       testFunc
}

const (
	opReturn = 0x00
	opOr     = 0xFC
	opNot    = 0xFD
	opGoto   = 0xFE
	opIf     = 0xFF

	opQuit = 0x86
)

var (
	actionSet [256]*Action
	testSet   [256]*Test
)

func kinds(sig string) []ArgKind {
	k := make([]ArgKind, len(sig))
	for i := range sig {
		k[i] = ArgKind(sig[i])
	}
	return k
}

// defineAction registers an action opcode in the base set.
func defineAction(op uint8, name, sig string, fn actionFunc) {
	actionSet[op] = &Action{Name: name, Args: kinds(sig), fn: fn}
}

// defineTest registers a test opcode in the base set.
func defineTest(op uint8, name, sig string, fn testFunc) {
	testSet[op] = &Test{Name: name, Args: kinds(sig), fn: fn}
}

// Table is the opcode table of one interpreter version.
type Table struct {
	Profile types.Profile
	Actions [256]*Action
	Tests   [256]*Test
}

// NewTable builds and validates the opcode table for profile p.
func NewTable(p types.Profile) (*Table, error) {
	if p.Actions <= 0 || p.Actions > opOr {
		return nil, fmt.Errorf("version %s: action count %#x out of range", p.Version, p.Actions)
	}
	if p.QuitArgs < 0 || p.QuitArgs > 4 {
		return nil, fmt.Errorf("version %s: quit operand count %d out of range 0-4", p.Version, p.QuitArgs)
	}
	t := &Table{Profile: p}
	for op := 0; op < p.Actions; op++ {
		a := actionSet[op]
		if a == nil {
			return nil, fmt.Errorf("version %s: action %#02x undefined", p.Version, op)
		}
		if op == opQuit && p.QuitArgs != len(a.Args) {
			q := *a
			q.Args = kinds("nnnn"[:p.QuitArgs])
			a = &q
		}
		t.Actions[op] = a
	}
	t.Tests = testSet

	names := map[string]bool{}
	for op, a := range t.Actions {
		if a == nil {
			continue
		}
		if names[a.Name] {
			return nil, fmt.Errorf("action %#02x: duplicate name %q", op, a.Name)
		}
		names[a.Name] = true
		for _, k := range a.Args {
			if !k.valid() {
				return nil, fmt.Errorf("action %s: invalid operand kind %q", a.Name, k)
			}
		}
	}
	for op, tt := range t.Tests {
		if tt == nil {
			continue
		}
		if op == opOr || op == opNot || op == opIf || op == 0 {
			return nil, fmt.Errorf("test %s: opcode %#02x is reserved", tt.Name, op)
		}
		for _, k := range tt.Args {
			if !k.valid() {
				return nil, fmt.Errorf("test %s: invalid operand kind %q", tt.Name, k)
			}
		}
	}
	return t, nil
}

// Action returns the descriptor of op, or nil if the version has none.
func (t *Table) Action(op uint8) *Action { return t.Actions[op] }

// Test returns the descriptor of test op, or nil.
func (t *Table) Test(op uint8) *Test { return t.Tests[op] }

func defineVariadicTest(op uint8, name string, fn testFunc) {
	testSet[op] = &Test{Name: name, Variadic: true, fn: fn}
}
