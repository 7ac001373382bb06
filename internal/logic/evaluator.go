package logic

import (
	"fmt"

	"github.com/scummvm/scummvm-sub094/pkg/utils"
)

// evaluate runs the test list starting at f.ip, right after the if
// opcode. It leaves f.ip on the first instruction of the true branch,
// past the else offset, or on the target of the else offset.
//
// 0xFD negates the next term only. 0xFC opens and closes an OR group:
// the first true term of a group makes the group true and the rest of
// the group is skipped without running its tests. Terms outside a
// group are all evaluated and combined with AND. 0xFF ends the list.
func (m *Interpreter) evaluate(f *frame) (bool, error) {
	result := true
	not := false
	inOr, orResult := false, false

	for {
		op, err := f.byte()
		if err != nil {
			return false, err
		}

		switch op {
		case opIf:
			if inOr {
				return false, fmt.Errorf("test list ends inside an OR group: %w", ErrBoundsViolation)
			}
			off, err := f.int16()
			if err != nil {
				return false, err
			}
			if result {
				return true, nil
			}
			return false, f.jump(off)
		case opNot:
			not = !not
			continue
		case opOr:
			if inOr {
				inOr = false
				result = result && orResult
			} else {
				inOr, orResult = true, false
			}
			not = false
			continue
		}

		t := m.table.Test(op)
		if t == nil {
			return false, fmt.Errorf("test %02x: %w", op, ErrBadOpcode)
		}
		args, err := m.fetchTest(f, t)
		if err != nil {
			return false, err
		}
		v, err := t.fn(m, args)
		if err != nil {
			return false, err
		}
		if m.trace {
			m.log.Debugf("logic %d %04x: %s%v = %t (not %t)", f.script.ID, f.ip, t.Name, args, v, not)
		}
		if not {
			v = !v
			not = false
		}

		if !inOr {
			result = result && v
			continue
		}
		if v {
			orResult = true
			if err := m.skipGroup(f); err != nil {
				return false, err
			}
			inOr = false
			result = result && orResult
		}
	}
}

func (f *frame) byte() (uint8, error) {
	if f.ip >= len(f.script.Code) {
		return 0, fmt.Errorf("test list past end of logic: %w", ErrBoundsViolation)
	}
	b := f.script.Code[f.ip]
	f.ip++
	return b, nil
}

func (m *Interpreter) fetchTest(f *frame, t *Test) ([]int, error) {
	if !t.Variadic {
		return m.fetch(f, t.Args)
	}
	n, err := f.byte()
	if err != nil {
		return nil, err
	}
	if f.ip+2*int(n) > len(f.script.Code) {
		return nil, fmt.Errorf("%s: words past end of logic: %w", t.Name, ErrBoundsViolation)
	}
	words := make([]int, n)
	for i := range words {
		c := f.script.Code
		words[i] = int(utils.BytesToUint16(c[f.ip+1], c[f.ip]))
		f.ip += 2
	}
	return words, nil
}

// skipGroup moves f.ip past the 0xFC closing the current OR group,
// stepping over the remaining terms without running them.
func (m *Interpreter) skipGroup(f *frame) error {
	for {
		op, err := f.byte()
		if err != nil {
			return err
		}
		switch op {
		case opOr:
			return nil
		case opNot:
			continue
		case opIf:
			return fmt.Errorf("test list ends inside an OR group: %w", ErrBoundsViolation)
		}
		t := m.table.Test(op)
		if t == nil {
			return fmt.Errorf("test %02x: %w", op, ErrBadOpcode)
		}
		if err := skipOperands(f, t); err != nil {
			return err
		}
	}
}

func skipOperands(f *frame, t *Test) error {
	n := len(t.Args)
	if t.Variadic {
		c, err := f.byte()
		if err != nil {
			return err
		}
		n = 2 * int(c)
	}
	if f.ip+n > len(f.script.Code) {
		return fmt.Errorf("%s: operands past end of logic: %w", t.Name, ErrBoundsViolation)
	}
	f.ip += n
	return nil
}
