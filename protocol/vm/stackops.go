package vm

import (
	"context"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func opPop(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	cx.pop()
	return advance, nil
}

func opDup(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	cx.push(cx.top())
	return advance, nil
}

func opDup2(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	n := len(cx.Stack)
	cx.Stack = append(cx.Stack, cx.Stack[n-2], cx.Stack[n-1])
	return advance, nil
}

func opSwap(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	n := len(cx.Stack)
	cx.Stack[n-2], cx.Stack[n-1] = cx.Stack[n-1], cx.Stack[n-2]
	return advance, nil
}

func opSelect(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	c := cx.popInt()
	b, a := cx.pop(), cx.pop()
	if c != 0 {
		cx.push(b)
	} else {
		cx.push(a)
	}
	return advance, nil
}

// checkDepth requires one value more than the depth immediate.
func checkDepth(cx *Context, in *instruction) error {
	if n := in.uint(0); n >= uint64(len(cx.Stack)) {
		return errors.WithDetailf(ErrStackUnderflow, "opcode %q needs %d stack values, have %d", in.Opcode, n+1, len(cx.Stack))
	}
	return nil
}

func opDig(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.push(cx.Stack[len(cx.Stack)-1-int(in.uint(0))])
	return advance, nil
}

// opCover moves the top value down to depth n.
func opCover(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	n := int(in.uint(0))
	top := len(cx.Stack) - 1
	v := cx.Stack[top]
	copy(cx.Stack[top-n+1:], cx.Stack[top-n:top])
	cx.Stack[top-n] = v
	return advance, nil
}

// opUncover moves the value at depth n to the top.
func opUncover(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	n := int(in.uint(0))
	top := len(cx.Stack) - 1
	v := cx.Stack[top-n]
	copy(cx.Stack[top-n:], cx.Stack[top-n+1:])
	cx.Stack[top] = v
	return advance, nil
}
