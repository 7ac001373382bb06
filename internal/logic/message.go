package logic

import (
	"fmt"
	"strconv"
	"strings"
)

// maxFormatDepth bounds messages referring to other messages.
const maxFormatDepth = 4

// Format expands the references in a message:
//
//	%vN    value of variable N, %vN|W pads it with zeros to W digits
//	%mN    message N of the current logic
//	%gN    message N of logic 0
//	%sN    string N
//	%wN    word N of the entered sentence, from 1
//	%oN    name of inventory item N
//
// References that cannot be resolved expand to nothing.
func (m *Interpreter) Format(s string) string {
	return m.format(s, 0)
}

func (m *Interpreter) format(s string, depth int) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		kind := s[i+1]
		j := i + 2
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i+2 {
			b.WriteByte(c)
			continue
		}
		n, _ := strconv.Atoi(s[i+2 : j])

		switch kind {
		case 'v':
			val := strconv.Itoa(int(m.v(n)))
			if j < len(s) && s[j] == '|' {
				k := j + 1
				for k < len(s) && s[k] >= '0' && s[k] <= '9' {
					k++
				}
				if w, err := strconv.Atoi(s[j+1 : k]); err == nil {
					val = fmt.Sprintf("%0*d", w, m.v(n))
					j = k
				}
			}
			b.WriteString(val)
		case 'm':
			if len(m.frames) > 0 && depth < maxFormatDepth {
				if msg, err := m.current().script.Message(n); err == nil {
					b.WriteString(m.format(msg, depth+1))
				}
			}
		case 'g':
			if depth < maxFormatDepth {
				if sc, err := m.scripts.Get(0); err == nil {
					if msg, err := sc.Message(n); err == nil {
						b.WriteString(m.format(msg, depth+1))
					}
				}
			}
		case 's':
			if n < m.cmd.Limits().Strings {
				b.WriteString(m.cmd.String(n))
			}
		case 'w':
			b.WriteString(m.cmd.Word(n))
		case 'o':
			if name, err := m.cmd.ItemName(n); err == nil {
				b.WriteString(name)
			}
		default:
			b.WriteString(s[i:j])
		}
		i = j - 1
	}
	return b.String()
}
