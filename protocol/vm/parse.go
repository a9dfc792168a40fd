package vm

import (
	"strconv"
	"strings"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// MaxVersion is the newest language version the interpreter knows.
const MaxVersion = 7

// Token is one instruction of the source program.
type Token struct {
	Opcode   string
	Operands []string
	Line     int // 1-based source line
}

// Program is parsed source: its instructions in order and
// the instruction index each label names.
type Program struct {
	Tokens        []Token
	BranchTargets map[string]int
	Version       uint64
	Declared      bool // a #pragma version line was present
}

// Parse splits source into instructions, records label positions
// and reads the version pragma. Opcode names are checked here;
// operands are checked when the program is loaded.
func Parse(source string) (*Program, error) {
	prog := &Program{
		BranchTargets: make(map[string]int),
		Version:       MaxVersion,
	}
	for i, line := range strings.Split(source, "\n") {
		lineno := i + 1
		fields, err := splitLine(line)
		if err != nil {
			return nil, parseErr(lineno, "%v", err)
		}
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "#pragma" {
			if err := prog.pragma(fields, lineno); err != nil {
				return nil, err
			}
			continue
		}

		if label, ok := labelOf(fields[0]); ok {
			if _, dup := prog.BranchTargets[label]; dup {
				return nil, parseErr(lineno, "duplicate label %q", label)
			}
			prog.BranchTargets[label] = len(prog.Tokens)
			fields = fields[1:]
			if len(fields) == 0 {
				continue
			}
		}

		if _, ok := opsByName[fields[0]]; !ok {
			return nil, parseErr(lineno, "unknown opcode %q", fields[0])
		}
		prog.Tokens = append(prog.Tokens, Token{
			Opcode:   fields[0],
			Operands: fields[1:],
			Line:     lineno,
		})
	}
	return prog, nil
}

func parseErr(line int, format string, a ...interface{}) error {
	err := errors.WithDetailf(ErrParse, "line %d: "+format, append([]interface{}{line}, a...)...)
	return errors.WithData(err, "line", line)
}

func (prog *Program) pragma(fields []string, line int) error {
	if len(fields) != 3 || fields[1] != "version" {
		return parseErr(line, "unrecognized pragma %q", strings.Join(fields, " "))
	}
	if prog.Declared {
		return parseErr(line, "version declared twice")
	}
	if len(prog.Tokens) > 0 {
		return parseErr(line, "version pragma must precede all instructions")
	}
	n, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil || n < 1 || n > MaxVersion {
		return parseErr(line, "unsupported version %q, want 1 to %d", fields[2], MaxVersion)
	}
	prog.Version = n
	prog.Declared = true
	return nil
}

func labelOf(field string) (string, bool) {
	if len(field) < 2 || !strings.HasSuffix(field, ":") || strings.HasPrefix(field, `"`) {
		return "", false
	}
	return field[:len(field)-1], true
}

// splitLine breaks a source line into whitespace-separated fields.
// A "//" comment runs to the end of the line. Quoted strings are
// kept whole, quotes and escapes included, as are parenthesized
// forms such as base64(...).
func splitLine(line string) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted:
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				cur.WriteByte(line[i])
			} else if c == '"' {
				quoted = false
			}
		case c == '"':
			quoted = true
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case depth > 0:
			cur.WriteByte(c)
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			flush()
			return fields, nil
		case c == ' ' || c == '\t' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	if quoted {
		return nil, errors.New("unterminated string literal")
	}
	if depth != 0 {
		return nil, errors.New("unbalanced parentheses")
	}
	flush()
	return fields, nil
}
