package vm

import (
	"context"
	"math/big"
	"math/bits"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
	"github.com/hashprotocol/AlgoTeal-interpreter/math/checked"
)

func arith(format string, a ...interface{}) error {
	return errors.WithDetailf(ErrArithmetic, format, a...)
}

func add(a, b uint64) (uint64, error) {
	r, ok := checked.AddUint64(a, b)
	if !ok {
		return 0, arith("%d + %d overflows", a, b)
	}
	return r, nil
}

func sub(a, b uint64) (uint64, error) {
	r, ok := checked.SubUint64(a, b)
	if !ok {
		return 0, arith("%d - %d underflows", a, b)
	}
	return r, nil
}

func mul(a, b uint64) (uint64, error) {
	r, ok := checked.MulUint64(a, b)
	if !ok {
		return 0, arith("%d * %d overflows", a, b)
	}
	return r, nil
}

func div(a, b uint64) (uint64, error) {
	r, ok := checked.DivUint64(a, b)
	if !ok {
		return 0, arith("%d / 0", a)
	}
	return r, nil
}

func mod(a, b uint64) (uint64, error) {
	r, ok := checked.ModUint64(a, b)
	if !ok {
		return 0, arith("%d %% 0", a)
	}
	return r, nil
}

func exp(a, b uint64) (uint64, error) {
	r, ok := checked.ExpUint64(a, b)
	if !ok {
		if a == 0 && b == 0 {
			return 0, arith("0 ** 0 is undefined")
		}
		return 0, arith("%d ** %d overflows", a, b)
	}
	return r, nil
}

func shl(a, b uint64) (uint64, error) {
	if b >= 64 {
		return 0, arith("shift by %d, want less than 64", b)
	}
	return a << b, nil
}

func shr(a, b uint64) (uint64, error) {
	if b >= 64 {
		return 0, arith("shift by %d, want less than 64", b)
	}
	return a >> b, nil
}

func boolInt(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func compare(f func(a, b uint64) bool) func(a, b uint64) (uint64, error) {
	return func(a, b uint64) (uint64, error) {
		return boolInt(f(a, b)), nil
	}
}

var (
	lt     = compare(func(a, b uint64) bool { return a < b })
	gt     = compare(func(a, b uint64) bool { return a > b })
	le     = compare(func(a, b uint64) bool { return a <= b })
	ge     = compare(func(a, b uint64) bool { return a >= b })
	and    = compare(func(a, b uint64) bool { return a != 0 && b != 0 })
	or     = compare(func(a, b uint64) bool { return a != 0 || b != 0 })
	bitOr  = func(a, b uint64) (uint64, error) { return a | b, nil }
	bitAnd = func(a, b uint64) (uint64, error) { return a & b, nil }
	bitXor = func(a, b uint64) (uint64, error) { return a ^ b, nil }
)

func not(a uint64) (uint64, error) { return boolInt(a == 0), nil }
func bitNot(a uint64) (uint64, error) { return ^a, nil }

func sqrt(a uint64) (uint64, error) { return checked.SqrtUint64(a), nil }

// sameTags requires the top two values to share a tag.
func sameTags(cx *Context, in *instruction) error {
	a, b := cx.Stack[len(cx.Stack)-2], cx.Stack[len(cx.Stack)-1]
	if a.Type() != b.Type() {
		return errors.WithDetailf(ErrType, "opcode %q compares %s with %s", in.Opcode, a.Type(), b.Type())
	}
	return nil
}

func opEqual(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b, a := cx.pop(), cx.pop()
	cx.pushBool(a.Equal(b))
	return advance, nil
}

func opNotEqual(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b, a := cx.pop(), cx.pop()
	cx.pushBool(!a.Equal(b))
	return advance, nil
}

func opMulw(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b, a := cx.popInt(), cx.popInt()
	hi, lo := bits.Mul64(a, b)
	cx.pushInt(hi)
	cx.pushInt(lo)
	return advance, nil
}

func opAddw(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b, a := cx.popInt(), cx.popInt()
	sum, carry := bits.Add64(a, b, 0)
	cx.pushInt(carry)
	cx.pushInt(sum)
	return advance, nil
}

func wide(hi, lo uint64) *big.Int {
	n := new(big.Int).SetUint64(hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(lo))
}

var mask64 = new(big.Int).SetUint64(^uint64(0))

func (cx *Context) pushWide(n *big.Int) {
	lo := new(big.Int).And(n, mask64)
	hi := new(big.Int).Rsh(n, 64)
	cx.pushInt(hi.Uint64())
	cx.pushInt(lo.Uint64())
}

// opDivmodw divides (a, b) by (c, d), each a 128-bit hi-lo pair,
// pushing quotient then remainder as pairs.
func opDivmodw(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	dlo, dhi := cx.popInt(), cx.popInt()
	nlo, nhi := cx.popInt(), cx.popInt()
	d := wide(dhi, dlo)
	if d.Sign() == 0 {
		return advance, arith("divmodw by 0")
	}
	q, r := new(big.Int).QuoRem(wide(nhi, nlo), d, new(big.Int))
	cx.pushWide(q)
	cx.pushWide(r)
	return advance, nil
}

func opExpw(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b, a := cx.popInt(), cx.popInt()
	if a == 0 && b == 0 {
		return advance, arith("0 ** 0 is undefined")
	}
	if a > 1 && b >= 128 {
		return advance, arith("%d ** %d overflows 128 bits", a, b)
	}
	r := new(big.Int).Exp(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b), nil)
	if r.BitLen() > 128 {
		return advance, arith("%d ** %d overflows 128 bits", a, b)
	}
	cx.pushWide(r)
	return advance, nil
}

func opBitlen(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	v := cx.pop()
	if v.IsInt() {
		cx.pushInt(uint64(v.bigInt().BitLen()))
		return advance, nil
	}
	cx.pushInt(uint64(new(big.Int).SetBytes(v.b).BitLen()))
	return advance, nil
}
