package vm

import (
	"context"
	"math/big"
	"strconv"

	"github.com/hashprotocol/AlgoTeal-interpreter/crypto/sigverify"
	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

type directiveKind int

const (
	dirAdvance directiveKind = iota
	dirJump
	dirHalt
)

// Directive tells the stepper where control goes after an
// instruction executes.
type Directive struct {
	kind   directiveKind
	target int
}

var (
	advance = Directive{kind: dirAdvance}
	halt    = Directive{kind: dirHalt}
)

func jump(target int) Directive {
	return Directive{kind: dirJump, target: target}
}

// unlimited is the maxOperands of opcodes taking any number of immediates.
const unlimited = -1

type opSpec struct {
	name    string
	version uint64

	minOperands, maxOperands int

	// args are the stack arguments, bottom first.
	args []StackType

	// operands decodes immediates into in; nil means none besides
	// the count bounds.
	operands func(in *instruction, prog *Program) error

	// check runs opcode-specific context checks after depth and
	// type checks pass. It must not mutate cx.
	check func(cx *Context, in *instruction) error

	exec func(ctx context.Context, cx *Context, in *instruction) (Directive, error)
}

// instruction is one token bound to its opcode, plus the
// immediates its operands decode to.
type instruction struct {
	Token
	spec *opSpec

	uints  []uint64
	ints   []*big.Int
	data   []byte
	consts [][]byte
	field  *fieldSpec
	target int
	curve  sigverify.Curve

	decoded bool
	err     error
}

func (in *instruction) uint(i int) uint64 { return in.uints[i] }

// validateOperand checks the operand count and decodes the
// immediates. The result is memoized.
func (in *instruction) validateOperand(prog *Program) error {
	if in.decoded {
		return in.err
	}
	in.decoded = true
	in.err = in.decode(prog)
	return in.err
}

func (in *instruction) decode(prog *Program) error {
	spec := in.spec
	if spec.version > prog.Version {
		return errors.WithDetailf(ErrVersion, "opcode %q requires version %d, program is version %d", in.Opcode, spec.version, prog.Version)
	}
	n := len(in.Operands)
	if n < spec.minOperands {
		return errors.WithDetailf(ErrOperand, "opcode %q takes at least %d operands, got %d", in.Opcode, spec.minOperands, n)
	}
	if spec.maxOperands != unlimited && n > spec.maxOperands {
		return errors.WithDetailf(ErrOperand, "opcode %q takes at most %d operands, got %d", in.Opcode, spec.maxOperands, n)
	}
	if spec.operands == nil {
		return nil
	}
	return spec.operands(in, prog)
}

// validateContext checks that the stack holds the opcode's
// arguments with the right tags, then runs the opcode's own checks.
func (in *instruction) validateContext(cx *Context) error {
	args := in.spec.args
	if len(cx.Stack) < len(args) {
		return errors.WithDetailf(ErrStackUnderflow, "opcode %q needs %d stack values, have %d", in.Opcode, len(args), len(cx.Stack))
	}
	base := len(cx.Stack) - len(args)
	for i, want := range args {
		v := cx.Stack[base+i]
		if want == StackAny {
			continue
		}
		if v.Type() != want {
			return errors.WithDetailf(ErrType, "opcode %q argument %d is %s, want %s", in.Opcode, i+1, v.Type(), want)
		}
		if want == StackUint64 && !v.bigInt().IsUint64() {
			return errors.WithDetailf(ErrArithmetic, "opcode %q argument %d is %s, outside the 64-bit range", in.Opcode, i+1, v)
		}
	}
	if in.spec.check != nil {
		return in.spec.check(cx, in)
	}
	return nil
}

// stack helpers

func (cx *Context) push(v Value) { cx.Stack = append(cx.Stack, v) }

func (cx *Context) pushInt(n uint64) { cx.push(NewUint64(n)) }
func (cx *Context) pushBool(b bool) { cx.push(NewBool(b)) }
func (cx *Context) pushBytes(b []byte) { cx.push(bytesValue(b)) }
func (cx *Context) pushBig(n *big.Int) { cx.push(Value{n: n}) }

func (cx *Context) pop() Value {
	v := cx.Stack[len(cx.Stack)-1]
	cx.Stack = cx.Stack[:len(cx.Stack)-1]
	return v
}

// popInt pops a value validateContext has already checked.
func (cx *Context) popInt() uint64 {
	n, _ := cx.pop().Uint64()
	return n
}

func (cx *Context) popBytes() []byte {
	return cx.pop().b
}

func (cx *Context) top() Value { return cx.Stack[len(cx.Stack)-1] }

// binaryInt pops b then a and pushes f(a, b).
func binaryInt(f func(a, b uint64) (uint64, error)) func(context.Context, *Context, *instruction) (Directive, error) {
	return func(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
		b := cx.popInt()
		a := cx.popInt()
		r, err := f(a, b)
		if err != nil {
			return advance, err
		}
		cx.pushInt(r)
		return advance, nil
	}
}

// binaryBytes pops b then a and pushes f(a, b).
func binaryBytes(f func(a, b []byte) ([]byte, error)) func(context.Context, *Context, *instruction) (Directive, error) {
	return func(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
		b := cx.popBytes()
		a := cx.popBytes()
		r, err := f(a, b)
		if err != nil {
			return advance, err
		}
		cx.pushBytes(r)
		return advance, nil
	}
}

func unaryInt(f func(a uint64) (uint64, error)) func(context.Context, *Context, *instruction) (Directive, error) {
	return func(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
		r, err := f(cx.popInt())
		if err != nil {
			return advance, err
		}
		cx.pushInt(r)
		return advance, nil
	}
}

func unaryBytes(f func(a []byte) ([]byte, error)) func(context.Context, *Context, *instruction) (Directive, error) {
	return func(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
		r, err := f(cx.popBytes())
		if err != nil {
			return advance, err
		}
		cx.pushBytes(r)
		return advance, nil
	}
}

// operand decoders

// uintImmediates decodes every operand as an unsigned integer.
func uintImmediates(in *instruction, _ *Program) error {
	in.uints = make([]uint64, len(in.Operands))
	for i, s := range in.Operands {
		n, err := parseUint(s)
		if err != nil {
			return err
		}
		in.uints[i] = n
	}
	return nil
}

// fixedImmediate returns an operands func that records n, for
// opcodes such as intc_1 that carry their immediate in the name.
func fixedImmediate(n uint64) func(*instruction, *Program) error {
	return func(in *instruction, _ *Program) error {
		in.uints = []uint64{n}
		return nil
	}
}

func byteImmediate(in *instruction, _ *Program) error {
	b, used, err := parseBytes(in.Operands)
	if err != nil {
		return err
	}
	if used != len(in.Operands) {
		return errors.WithDetailf(ErrOperand, "opcode %q: unexpected operand %q after byte literal", in.Opcode, in.Operands[used])
	}
	in.data = b
	return nil
}

func labelImmediate(in *instruction, prog *Program) error {
	label := in.Operands[0]
	target, ok := prog.BranchTargets[label]
	if !ok {
		err := errors.WithDetailf(ErrParse, "line %d: undefined label %q", in.Line, label)
		return errors.WithData(err, "line", in.Line)
	}
	in.target = target
	return nil
}

func curveImmediate(in *instruction, _ *Program) error {
	s := in.Operands[0]
	if c, ok := sigverify.ParseCurve(s); ok {
		in.curve = c
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > uint64(sigverify.Secp256r1) {
		return errors.WithDetailf(ErrOperand, "opcode %q: unknown curve %q", in.Opcode, s)
	}
	in.curve = sigverify.Curve(n)
	return nil
}

// fieldImmediate decodes the operand at position pos as a field of
// group g. array says whether the opcode indexes into the field;
// the remaining operands are decoded as unsigned integers.
func fieldImmediate(g FieldGroup, pos int, array bool) func(*instruction, *Program) error {
	return func(in *instruction, prog *Program) error {
		name := in.Operands[pos]
		f, ok := lookupField(g, name)
		if !ok {
			return errors.WithDetailf(ErrOperand, "opcode %q: unknown %s field %q", in.Opcode, g, name)
		}
		if f.version > prog.Version {
			return errors.WithDetailf(ErrVersion, "%s field %q requires version %d, program is version %d", g, name, f.version, prog.Version)
		}
		if f.array != array {
			if f.array {
				return errors.WithDetailf(ErrType, "opcode %q: field %q is an array, use an indexed form", in.Opcode, name)
			}
			return errors.WithDetailf(ErrType, "opcode %q: field %q is not an array", in.Opcode, name)
		}
		in.field = f
		for i, s := range in.Operands {
			if i == pos {
				continue
			}
			n, err := parseUint(s)
			if err != nil {
				return err
			}
			in.uints = append(in.uints, n)
		}
		return nil
	}
}

// txnFieldImmediate accepts "F" and "F i" after pos leading
// integer operands, as txn and gtxn do.
func txnFieldImmediate(pos int) func(*instruction, *Program) error {
	return func(in *instruction, prog *Program) error {
		array := len(in.Operands) > pos+1
		return fieldImmediate(TxnFields, pos, array)(in, prog)
	}
}
