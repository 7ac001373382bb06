// Package logic implements the logic interpreter: the bytecode
// dispatch loop, the test evaluator and the opcode handlers.
package logic

import (
	"errors"
	"fmt"

	"github.com/scummvm/scummvm-sub094/internal/types"
	"github.com/scummvm/scummvm-sub094/pkg/log"
	"github.com/scummvm/scummvm-sub094/pkg/utils"
)

// DefaultMaxDepth is the default limit of nested calls.
const DefaultMaxDepth = 32

type frame struct {
	script *Script
	ip     int
}

// ExecResult summarises a Run.
type ExecResult struct {
	// Executed counts the opcodes and tests dispatched.
	Executed int
	// ExitAll is set when the run was cut short by an exit all logics
	// request, new.room for example.
	ExitAll bool
	// Aborted counts the scripts aborted by recoverable errors.
	Aborted int
}

// Interpreter runs logic scripts. It keeps an explicit stack of call
// frames, so a callee returning resumes its caller where it left off.
type Interpreter struct {
	cmd     Commands
	scripts *Scripts
	table   *Table
	log     log.Logger

	maxDepth int
	trace    bool

	frames  []frame
	exitAll bool
	// pending is the logic requested by call, or -1.
	pending int
	// lastErr holds the last recoverable error.
	lastErr error
}

// Opt configures an Interpreter.
type Opt func(m *Interpreter)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(m *Interpreter) {
		m.log = l
	}
}

// WithMaxDepth sets the nested call limit.
func WithMaxDepth(n int) Opt {
	return func(m *Interpreter) {
		if n > 0 {
			m.maxDepth = n
		}
	}
}

// WithTrace logs every dispatched opcode at debug level.
func WithTrace(on bool) Opt {
	return func(m *Interpreter) {
		m.trace = on
	}
}

// New returns an interpreter dispatching through table t.
func New(cmd Commands, scripts *Scripts, t *Table, opts ...Opt) *Interpreter {
	m := &Interpreter{
		cmd:      cmd,
		scripts:  scripts,
		table:    t,
		log:      log.NewNullLogger(),
		maxDepth: DefaultMaxDepth,
		pending:  -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scripts returns the resident scripts.
func (m *Interpreter) Scripts() *Scripts { return m.scripts }

// Table returns the opcode table.
func (m *Interpreter) Table() *Table { return m.table }

// ExitAll asks every running script to stop before its next opcode.
func (m *Interpreter) ExitAll() { m.exitAll = true }

// LastError returns the last recoverable error, if any.
func (m *Interpreter) LastError() error { return m.lastErr }

// Depth returns the number of active frames.
func (m *Interpreter) Depth() int { return len(m.frames) }

func (m *Interpreter) current() *frame { return &m.frames[len(m.frames)-1] }

// Run executes logic id from its scan start until it returns. Scripts
// failing with a bad opcode, a bounds violation or a missing resource
// are aborted and their callers resume; only fatal errors (see
// IsFatal) are returned.
func (m *Interpreter) Run(id int) (ExecResult, error) {
	var res ExecResult
	m.exitAll = false
	m.frames = m.frames[:0]

	s, err := m.scripts.Get(id)
	if err != nil {
		err = &ScriptError{Script: id, Err: err, Loading: true}
		if IsFatal(err) {
			return res, err
		}
		m.recover(&res, err)
		return res, nil
	}
	m.frames = append(m.frames, frame{script: s, ip: s.ScanStart})

	for len(m.frames) > 0 {
		if m.exitAll {
			m.exitAll = false
			m.frames = m.frames[:0]
			res.ExitAll = true
			break
		}

		f := m.current()
		code := f.script.Code
		if f.ip >= len(code) {
			m.frames = m.frames[:len(m.frames)-1]
			continue
		}

		at := f.ip
		op := code[at]
		f.ip++
		res.Executed++

		err := m.step(f, op)
		if err != nil {
			err = &ScriptError{Script: f.script.ID, IP: at, Op: op, Err: err}
			if IsFatal(err) {
				m.frames = m.frames[:0]
				return res, err
			}
			// abort the failing script only
			m.frames = m.frames[:len(m.frames)-1]
			m.pending = -1
			m.recover(&res, err)
			continue
		}

		if m.pending >= 0 {
			if err := m.push(m.pending); err != nil {
				err = &ScriptError{Script: f.script.ID, IP: at, Op: op, Err: err}
				if errors.Is(err, ErrStackExhaustion) {
					m.frames = m.frames[:0]
					return res, err
				}
				m.recover(&res, err)
			}
		}
	}
	return res, nil
}

func (m *Interpreter) recover(res *ExecResult, err error) {
	res.Aborted++
	m.lastErr = err
	var se *ScriptError
	if errors.As(err, &se) {
		m.cmd.SetVar(types.VarErrorCode, errorCode(err))
		m.cmd.SetVar(types.VarErrorInfo, uint8(se.Script))
	}
	m.log.Errorf("%v", err)
}

func (m *Interpreter) push(id int) error {
	m.pending = -1
	if len(m.frames) >= m.maxDepth {
		return fmt.Errorf("call %d at depth %d: %w", id, len(m.frames), ErrStackExhaustion)
	}
	s, err := m.scripts.Get(id)
	if err != nil {
		return err
	}
	m.frames = append(m.frames, frame{script: s, ip: s.ScanStart})
	return nil
}

// step executes the instruction op whose operands start at f.ip.
func (m *Interpreter) step(f *frame, op uint8) error {
	switch op {
	case opReturn:
		m.frames = m.frames[:len(m.frames)-1]
		return nil
	case opIf:
		_, err := m.evaluate(f)
		return err
	case opGoto:
		off, err := f.int16()
		if err != nil {
			return err
		}
		return f.jump(off)
	}

	a := m.table.Action(op)
	if a == nil {
		return ErrBadOpcode
	}
	args, err := m.fetch(f, a.Args)
	if err != nil {
		return err
	}
	if m.trace {
		m.log.Debugf("logic %d %04x: %s%v", f.script.ID, f.ip, a.Name, args)
	}
	return a.fn(m, args)
}

// fetch reads and validates the operands of an instruction.
func (m *Interpreter) fetch(f *frame, kinds []ArgKind) ([]int, error) {
	if f.ip+len(kinds) > len(f.script.Code) {
		return nil, fmt.Errorf("operands past end of logic: %w", ErrBoundsViolation)
	}
	args := make([]int, len(kinds))
	limits := m.cmd.Limits()
	for i, k := range kinds {
		v := int(f.script.Code[f.ip])
		f.ip++
		args[i] = v

		var bound int
		switch k {
		case ArgObj:
			bound = limits.Objects
		case ArgItem:
			bound = limits.Items
		case ArgStr:
			bound = limits.Strings
		case ArgCtl:
			bound = limits.Controllers
		case ArgMsg:
			if v < 1 || v > len(f.script.Messages) {
				return nil, fmt.Errorf("message %d of %d: %w", v, len(f.script.Messages), ErrBoundsViolation)
			}
			continue
		default:
			continue
		}
		if v >= bound {
			return nil, fmt.Errorf("operand %d (%c) %d of %d: %w", i, k, v, bound, ErrBoundsViolation)
		}
	}
	return args, nil
}

func (f *frame) int16() (int, error) {
	code := f.script.Code
	if f.ip+2 > len(code) {
		return 0, fmt.Errorf("offset past end of logic: %w", ErrBoundsViolation)
	}
	v := int(int16(utils.BytesToUint16(code[f.ip+1], code[f.ip])))
	f.ip += 2
	return v, nil
}

// jump moves the instruction pointer by off bytes. Landing exactly on
// the end of the code is a return.
func (f *frame) jump(off int) error {
	ip := f.ip + off
	if ip < 0 || ip > len(f.script.Code) {
		return fmt.Errorf("jump to %04x outside logic of %d bytes: %w", ip, len(f.script.Code), ErrBoundsViolation)
	}
	f.ip = ip
	return nil
}

// call requests logic id to be run once the current instruction is
// done.
func (m *Interpreter) call(id int) {
	m.pending = id
}

// message returns message n of the current script, formatted.
func (m *Interpreter) message(n int) (string, error) {
	s, err := m.current().script.Message(n)
	if err != nil {
		return "", err
	}
	return m.Format(s), nil
}
