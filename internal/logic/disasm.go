package logic

import (
	"fmt"
	"io"
	"strings"

	"github.com/scummvm/scummvm-sub094/pkg/utils"
)

// Disassemble writes a listing of code to w, one instruction per line.
func Disassemble(w io.Writer, code []byte, t *Table) error {
	f := &frame{script: &Script{Code: code}}
	for f.ip < len(code) {
		at := f.ip
		op := code[at]
		f.ip++

		var line string
		switch op {
		case opReturn:
			line = "return"
		case opGoto:
			off, err := f.int16()
			if err != nil {
				return fmt.Errorf("%04x: %w", at, err)
			}
			line = fmt.Sprintf("goto %04x", f.ip+off)
		case opIf:
			cond, err := disasmTests(f, t)
			if err != nil {
				return fmt.Errorf("%04x: %w", at, err)
			}
			off, err := f.int16()
			if err != nil {
				return fmt.Errorf("%04x: %w", at, err)
			}
			line = fmt.Sprintf("if %s else %04x", cond, f.ip+off)
		default:
			a := t.Action(op)
			if a == nil {
				return fmt.Errorf("%04x: opcode %02x: %w", at, op, ErrBadOpcode)
			}
			if f.ip+len(a.Args) > len(code) {
				return fmt.Errorf("%04x: %s: %w", at, a.Name, ErrBoundsViolation)
			}
			line = a.Name + "(" + operands(code[f.ip:f.ip+len(a.Args)], a.Args) + ")"
			f.ip += len(a.Args)
		}
		if _, err := fmt.Fprintf(w, "%04x  %s\n", at, line); err != nil {
			return err
		}
	}
	return nil
}

func disasmTests(f *frame, t *Table) (string, error) {
	var terms []string
	var group []string
	inOr := false
	prefix := ""
	for {
		op, err := f.byte()
		if err != nil {
			return "", err
		}
		switch op {
		case opIf:
			return "(" + strings.Join(terms, " && ") + ")", nil
		case opNot:
			prefix = "!"
			continue
		case opOr:
			if inOr {
				terms = append(terms, "("+strings.Join(group, " || ")+")")
				group = nil
			}
			inOr = !inOr
			continue
		}
		tt := t.Test(op)
		if tt == nil {
			return "", fmt.Errorf("test %02x: %w", op, ErrBadOpcode)
		}
		start := f.ip
		if err := skipOperands(f, tt); err != nil {
			return "", err
		}
		var args string
		if tt.Variadic {
			var words []string
			for i := start + 1; i+1 < f.ip; i += 2 {
				words = append(words, fmt.Sprint(utils.BytesToUint16(f.script.Code[i+1], f.script.Code[i])))
			}
			args = strings.Join(words, ", ")
		} else {
			args = operands(f.script.Code[start:f.ip], tt.Args)
		}
		term := prefix + tt.Name + "(" + args + ")"
		prefix = ""
		if inOr {
			group = append(group, term)
		} else {
			terms = append(terms, term)
		}
	}
}

func operands(b []byte, kinds []ArgKind) string {
	parts := make([]string, len(b))
	for i, v := range b {
		if kinds[i] == ArgNum {
			parts[i] = fmt.Sprint(v)
		} else {
			parts[i] = fmt.Sprintf("%c%d", kinds[i], v)
		}
	}
	return strings.Join(parts, ", ")
}
