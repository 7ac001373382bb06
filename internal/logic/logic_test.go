package logic

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scummvm/scummvm-sub094/internal/resource"
	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/internal/view"
)

// fake implements the commands the tests exercise. Calling any other
// method panics on the nil embedded interface.
type fake struct {
	Commands

	flags [256]bool
	vars  [256]uint8
	strs  [24]string
	words []uint16
	text  []string

	controllers map[int]bool
	polled      []int
	rooms       []int
	items       []uint8
	table       *view.Table
	sys         *fakeSystem
}

func newFake() *fake {
	return &fake{
		controllers: map[int]bool{},
		items:       make([]uint8, 4),
		table:       view.NewTable(4),
		sys:         &fakeSystem{},
	}
}

func (f *fake) Flag(n types.Flag) bool             { return f.flags[n] }
func (f *fake) SetFlag(n types.Flag, v bool)       { f.flags[n] = v }
func (f *fake) Var(n types.Var) uint8              { return f.vars[n] }
func (f *fake) SetVar(n types.Var, v uint8)        { f.vars[n] = v }
func (f *fake) String(n int) string                { return f.strs[n] }
func (f *fake) SetString(n int, s string)          { f.strs[n] = s }
func (f *fake) Version() types.Version             { return types.V2936 }
func (f *fake) Words() []uint16                    { return f.words }
func (f *fake) Subsystems() Subsystems             { return f.sys }
func (f *fake) Table() *view.Table                 { return f.table }
func (f *fake) Object(n int) (*view.Object, error) { return f.table.Object(n) }

func (f *fake) Limits() Limits {
	return Limits{Objects: f.table.Len(), Items: len(f.items), Strings: len(f.strs), Controllers: 50}
}

func (f *fake) Word(n int) string {
	if n < 1 || n > len(f.text) {
		return ""
	}
	return f.text[n-1]
}

func (f *fake) Controller(n int) bool {
	f.polled = append(f.polled, n)
	return f.controllers[n]
}

func (f *fake) NewRoom(n int) { f.rooms = append(f.rooms, n) }

func (f *fake) ItemRoom(n int) (uint8, error) { return f.items[n], nil }

func (f *fake) SetItemRoom(n int, room uint8) error {
	f.items[n] = room
	return nil
}

func (f *fake) ItemName(n int) (string, error) { return []string{"nothing", "key", "rock", "lamp"}[n], nil }

type fakeSystem struct {
	Subsystems
	printed []string
	hints   []string
}

func (s *fakeSystem) Print(msg string, row, col, width int) { s.printed = append(s.printed, msg) }
func (s *fakeSystem) Hint(name string, args ...int)         { s.hints = append(s.hints, name) }

// ifThen assembles an if instruction whose true branch is body.
func ifThen(tests, body []byte) []byte {
	code := append([]byte{opIf}, tests...)
	code = append(code, opIf, byte(len(body)), byte(len(body)>>8))
	return append(code, body...)
}

func cat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

type rig struct {
	cmd *fake
	mem *resource.MemoryProvider
	m   *Interpreter
}

func newRig(t *testing.T, opts ...Opt) *rig {
	t.Helper()
	tbl, err := NewTable(types.DefaultProfile)
	require.NoError(t, err)
	r := &rig{cmd: newFake(), mem: resource.NewMemoryProvider()}
	r.m = New(r.cmd, NewScripts(resource.NewCache(r.mem, nil)), tbl, opts...)
	return r
}

func TestRun_Arithmetic(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, []byte{
		0x03, 10, 5, // assignn v10 5
		0x05, 10, 3, // addn v10 3
		0x01, 10,    // increment v10
		0xA5, 10, 2, // mul.n v10 2
		0x03, 11, 0, // assignn v11 0
		0x02, 11,    // decrement v11
		0x00,
		0x03, 12, 1, // never reached
	})

	res, err := r.m.Run(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(18), r.cmd.vars[10])
	assert.Equal(t, uint8(0), r.cmd.vars[11])
	assert.Equal(t, uint8(0), r.cmd.vars[12])
	assert.Equal(t, 7, res.Executed)
}

func TestEvaluate_OrShortCircuit(t *testing.T) {
	r := newRig(t)
	r.cmd.controllers[2] = true
	r.cmd.controllers[3] = true
	r.mem.AddLogic(0, cat(
		ifThen([]byte{opOr, 0x0C, 1, 0x0C, 2, 0x0C, 3, opOr}, []byte{0x0C, 50}),
		[]byte{0x00},
	))

	_, err := r.m.Run(0)
	require.NoError(t, err)
	assert.True(t, r.cmd.flags[50])
	assert.Equal(t, []int{1, 2}, r.cmd.polled)
}

func TestEvaluate_OrGroupFalse(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, cat(
		ifThen([]byte{0x0C, 4, opOr, 0x0C, 1, 0x0C, 2, opOr}, []byte{0x0C, 50}),
		[]byte{0x0C, 51, 0x00},
	))

	_, err := r.m.Run(0)
	require.NoError(t, err)
	assert.False(t, r.cmd.flags[50])
	assert.True(t, r.cmd.flags[51])
	assert.Equal(t, []int{4, 1, 2}, r.cmd.polled)
}

func TestEvaluate_NotIsSingleShot(t *testing.T) {
	r := newRig(t)
	r.cmd.controllers[1] = true
	r.mem.AddLogic(0, cat(
		ifThen([]byte{opNot, 0x07, 3, 0x0C, 1}, []byte{0x0C, 50}),
		ifThen([]byte{opNot, 0x07, 3, opNot, 0x0C, 1}, []byte{0x0C, 51}),
		[]byte{0x00},
	))

	_, err := r.m.Run(0)
	require.NoError(t, err)
	assert.True(t, r.cmd.flags[50])
	assert.False(t, r.cmd.flags[51])
}

func TestEvaluate_AndEvaluatesEveryTerm(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, cat(
		ifThen([]byte{0x0C, 1, 0x0C, 2}, []byte{0x0C, 50}),
		[]byte{0x00},
	))

	_, err := r.m.Run(0)
	require.NoError(t, err)
	assert.False(t, r.cmd.flags[50])
	assert.Equal(t, []int{1, 2}, r.cmd.polled)
}

func TestGoto(t *testing.T) {
	r := newRig(t)
	// skip set f50, then loop back to the if once
	r.mem.AddLogic(0, cat(
		[]byte{opGoto, 2, 0, 0x0C, 50, 0x0C, 51},
		ifThen([]byte{opNot, 0x07, 52}, []byte{0x0C, 52, opGoto, 0xF4, 0xFF}),
		[]byte{0x00},
	))

	_, err := r.m.Run(0)
	require.NoError(t, err)
	assert.False(t, r.cmd.flags[50])
	assert.True(t, r.cmd.flags[51])
	assert.True(t, r.cmd.flags[52])
}

func TestGoto_OutOfBounds(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, []byte{opGoto, 0x40, 0x00})

	res, err := r.m.Run(0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Aborted)
	assert.True(t, errors.Is(r.m.LastError(), ErrBoundsViolation))
	assert.Equal(t, types.ErrorCodeBounds, r.cmd.vars[types.VarErrorCode])
}

func TestCall_ResumesCaller(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, []byte{0x16, 1, 0x0C, 20, 0x00})
	r.mem.AddLogic(1, []byte{0x16, 2, 0x0C, 21, 0x00})
	r.mem.AddLogic(2, []byte{0x03, 30, 7, 0x00})

	_, err := r.m.Run(0)
	require.NoError(t, err)
	assert.True(t, r.cmd.flags[20])
	assert.True(t, r.cmd.flags[21])
	assert.Equal(t, uint8(7), r.cmd.vars[30])
	assert.Equal(t, 0, r.m.Depth())
}

func TestScanStart(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(1, []byte{0x03, 30, 1, 0x91, 0x01, 31, 0x00})

	_, err := r.m.Run(1)
	require.NoError(t, err)
	r.cmd.vars[30] = 0
	_, err = r.m.Run(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), r.cmd.vars[30])
	assert.Equal(t, uint8(2), r.cmd.vars[31])

	sc, err := r.m.Scripts().Get(1)
	require.NoError(t, err)
	assert.Equal(t, 4, sc.ScanStart)
}

func TestBadOpcode_AbortsCalleeOnly(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, []byte{0x16, 1, 0x0C, 22, 0x00})
	r.mem.AddLogic(1, []byte{0x0C, 23, 0xF0, 0x0C, 24, 0x00})

	res, err := r.m.Run(0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Aborted)
	assert.True(t, r.cmd.flags[22])
	assert.True(t, r.cmd.flags[23])
	assert.False(t, r.cmd.flags[24])

	var se *ScriptError
	require.True(t, errors.As(r.m.LastError(), &se))
	assert.Equal(t, 1, se.Script)
	assert.Equal(t, 2, se.IP)
	assert.Equal(t, uint8(0xF0), se.Op)
	assert.True(t, errors.Is(se, ErrBadOpcode))
	assert.Equal(t, types.ErrorCodeBadOpcode, r.cmd.vars[types.VarErrorCode])
	assert.Equal(t, uint8(1), r.cmd.vars[types.VarErrorInfo])
}

func TestStackExhaustion(t *testing.T) {
	r := newRig(t, WithMaxDepth(8))
	r.mem.AddLogic(0, []byte{0x16, 0, 0x00})

	_, err := r.m.Run(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackExhaustion))
	assert.True(t, IsFatal(err))
}

func TestMissingLogic(t *testing.T) {
	r := newRig(t)

	_, err := r.m.Run(0)
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.True(t, errors.Is(err, ErrResourceMissing))

	r.mem.AddLogic(0, []byte{0x16, 9, 0x0C, 25, 0x00})
	res, err := r.m.Run(0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Aborted)
	assert.True(t, r.cmd.flags[25])
	assert.Equal(t, types.ErrorCodeResource, r.cmd.vars[types.VarErrorCode])
}

func TestIsFatal(t *testing.T) {
	missing := fmt.Errorf("view 99: %w", ErrResourceMissing)
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(&ScriptError{Script: 0, Op: 0x1E, Err: missing}), "a view missing while logic 0 runs")
	assert.False(t, IsFatal(&ScriptError{Script: 5, Err: missing, Loading: true}))
	assert.True(t, IsFatal(&ScriptError{Script: 0, Err: missing, Loading: true}))
	assert.True(t, IsFatal(&ScriptError{Script: 3, Err: ErrStackExhaustion}))
}

func TestSaid_OncePerSentence(t *testing.T) {
	r := newRig(t)
	r.cmd.flags[types.FlagEnteredInput] = true
	r.cmd.words = []uint16{10, 20}
	r.mem.AddLogic(0, cat(
		ifThen([]byte{0x0E, 2, 10, 0, 20, 0}, []byte{0x0C, 60}),
		ifThen([]byte{0x0E, 2, 1, 0, 20, 0}, []byte{0x0C, 61}),
		[]byte{0x00},
	))

	_, err := r.m.Run(0)
	require.NoError(t, err)
	assert.True(t, r.cmd.flags[60])
	assert.False(t, r.cmd.flags[61])
	assert.True(t, r.cmd.flags[types.FlagInputAccepted])
}

func TestSaid_Patterns(t *testing.T) {
	tests := []struct {
		name    string
		words   []uint16
		pattern []int
		want    bool
	}{
		{"exact", []uint16{10, 20}, []int{10, 20}, true},
		{"any word", []uint16{10, 20}, []int{WordAny, 20}, true},
		{"rest of line", []uint16{10, 20, 30}, []int{10, WordRest}, true},
		{"too short", []uint16{10}, []int{10, 20}, false},
		{"too long", []uint16{10, 20, 30}, []int{10, 20}, false},
		{"mismatch", []uint16{10, 21}, []int{10, 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			r.cmd.flags[types.FlagEnteredInput] = true
			r.cmd.words = tt.words
			got, err := said(r.m, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	r := newRig(t)
	r.cmd.words = []uint16{10}
	got, _ := said(r.m, []int{10})
	assert.False(t, got, "no sentence entered")
}

func TestNewRoom_ExitsAllLogics(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, []byte{0x16, 1, 0x0C, 71, 0x00})
	r.mem.AddLogic(1, []byte{0x12, 3, 0x0C, 70, 0x00})

	res, err := r.m.Run(0)
	require.NoError(t, err)
	assert.True(t, res.ExitAll)
	assert.Equal(t, []int{3}, r.cmd.rooms)
	assert.False(t, r.cmd.flags[70])
	assert.False(t, r.cmd.flags[71])
}

func TestPrint(t *testing.T) {
	r := newRig(t)
	r.cmd.vars[3] = 7
	r.cmd.strs[1] = "Sir"
	r.cmd.text = []string{"open", "door"}
	r.mem.AddLogic(0, []byte{0x65, 1, 0x65, 2, 0x65, 9, 0x0C, 80, 0x00},
		"Score %v3 of %v3|3, %s1.",
		"You said %w2: %m3",
		"%o1!",
	)

	res, err := r.m.Run(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Score 7 of 007, Sir.", "You said door: key!"}, r.cmd.sys.printed)
	assert.Equal(t, 1, res.Aborted)
	assert.False(t, r.cmd.flags[80])
}

func TestObjectOperands(t *testing.T) {
	r := newRig(t)
	r.mem.AddLogic(0, []byte{
		0x25, 2, 30, 100, // position o2 30 100
		0x36, 2, 9,       // set.priority o2 9
		0x27, 2, 40, 41,  // get.posn o2 v40 v41
		0x5C, 3,          // get i3
		0x25, 9, 0, 0,    // position o9, out of range
		0x0C, 90,
		0x00,
	})

	res, err := r.m.Run(0)
	require.NoError(t, err)
	o, err := r.cmd.table.Object(2)
	require.NoError(t, err)
	assert.Equal(t, 30, o.X)
	assert.Equal(t, 100, o.PrevY)
	assert.True(t, o.Has(view.FixedPriority))
	assert.Equal(t, uint8(9), o.Priority)
	assert.Equal(t, uint8(30), r.cmd.vars[40])
	assert.Equal(t, uint8(100), r.cmd.vars[41])
	assert.Equal(t, uint8(types.InventoryRoom), r.cmd.items[3])
	assert.Equal(t, 1, res.Aborted)
	assert.False(t, r.cmd.flags[90])
}

func TestNewTable(t *testing.T) {
	early, err := NewTable(types.Profile{Version: types.V2089, Actions: 0x9C, QuitArgs: 0})
	require.NoError(t, err)
	assert.Empty(t, early.Action(opQuit).Args)
	assert.Nil(t, early.Action(0xA5))
	assert.Len(t, actionSet[opQuit].Args, 1)

	late, err := NewTable(types.Profile{Version: types.V3002149, Actions: 0xB7, QuitArgs: 1})
	require.NoError(t, err)
	assert.Equal(t, "adj.ego.move.to.x.y", late.Action(0xB6).Name)
	assert.True(t, late.Test(0x0E).Variadic)

	_, err = NewTable(types.Profile{Version: types.V2936, Actions: 0xF0})
	assert.Error(t, err)

	for _, n := range []int{-1, 5} {
		_, err = NewTable(types.Profile{Version: types.V2936, Actions: 0xAF, QuitArgs: n})
		assert.Error(t, err, "quit_args %d", n)
	}
}

func TestDisassemble(t *testing.T) {
	tbl, err := NewTable(types.DefaultProfile)
	require.NoError(t, err)
	code := cat(
		ifThen([]byte{opOr, 0x07, 3, opNot, 0x01, 10, 5, opOr, 0x0E, 1, 0x0F, 0x27}, []byte{0x65, 1}),
		[]byte{opGoto, 0x00, 0x00, 0x00},
	)

	var b bytes.Buffer
	require.NoError(t, Disassemble(&b, code, tbl))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0000  if ((isset(f3) || !equaln(v10, 5)) && said(9999)) else 0012", lines[0])
	assert.Equal(t, "0010  print(m1)", lines[1])
	assert.Equal(t, "0012  goto 0015", lines[2])
	assert.Equal(t, "0015  return", lines[3])

	assert.True(t, errors.Is(Disassemble(&b, []byte{0xF0}, tbl), ErrBadOpcode))
}
