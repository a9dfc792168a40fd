package vm

import (
	"context"
	"math/big"
)

// MaxByteMathLen bounds the inputs of byte-string arithmetic.
const MaxByteMathLen = 64

// byteMathLimit checks the byte-math input bound on the top n values.
func byteMathLimit(n int) func(*Context, *instruction) error {
	return func(cx *Context, in *instruction) error {
		for _, v := range cx.Stack[len(cx.Stack)-n:] {
			if len(v.b) > MaxByteMathLen {
				return outOfRange("opcode %q input is %d bytes, limit %d", in.Opcode, len(v.b), MaxByteMathLen)
			}
		}
		return nil
	}
}

func bigMath(f func(a, b *big.Int) (*big.Int, error)) func(a, b []byte) ([]byte, error) {
	return func(a, b []byte) ([]byte, error) {
		r, err := f(new(big.Int).SetBytes(a), new(big.Int).SetBytes(b))
		if err != nil {
			return nil, err
		}
		return r.Bytes(), nil
	}
}

var (
	bAdd = bigMath(func(a, b *big.Int) (*big.Int, error) { return a.Add(a, b), nil })
	bMul = bigMath(func(a, b *big.Int) (*big.Int, error) { return a.Mul(a, b), nil })
	bSub = bigMath(func(a, b *big.Int) (*big.Int, error) {
		if a.Cmp(b) < 0 {
			return nil, arith("b- underflows")
		}
		return a.Sub(a, b), nil
	})
	bDiv = bigMath(func(a, b *big.Int) (*big.Int, error) {
		if b.Sign() == 0 {
			return nil, arith("b/ by 0")
		}
		return a.Quo(a, b), nil
	})
	bMod = bigMath(func(a, b *big.Int) (*big.Int, error) {
		if b.Sign() == 0 {
			return nil, arith("b%% by 0")
		}
		return a.Rem(a, b), nil
	})
)

// bCompare makes a byte-math comparison from the sign of a.Cmp(b).
func bCompare(want func(cmp int) bool) func(context.Context, *Context, *instruction) (Directive, error) {
	return func(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
		b := new(big.Int).SetBytes(cx.popBytes())
		a := new(big.Int).SetBytes(cx.popBytes())
		cx.pushBool(want(a.Cmp(b)))
		return advance, nil
	}
}

// bitwise applies f bytewise after left-padding the shorter input with zeros.
func bitwise(f func(x, y byte) byte) func(a, b []byte) ([]byte, error) {
	return func(a, b []byte) ([]byte, error) {
		n := len(a)
		if len(b) > n {
			n = len(b)
		}
		r := make([]byte, n)
		for i := range r {
			var x, y byte
			if j := i - (n - len(a)); j >= 0 {
				x = a[j]
			}
			if j := i - (n - len(b)); j >= 0 {
				y = b[j]
			}
			r[i] = f(x, y)
		}
		return r, nil
	}
}

var (
	bOr  = bitwise(func(x, y byte) byte { return x | y })
	bAnd = bitwise(func(x, y byte) byte { return x & y })
	bXor = bitwise(func(x, y byte) byte { return x ^ y })
)

func bNot(a []byte) ([]byte, error) {
	r := make([]byte, len(a))
	for i, c := range a {
		r[i] = ^c
	}
	return r, nil
}
