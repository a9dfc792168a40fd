package vm

import (
	"context"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func opErr(_ context.Context, _ *Context, _ *instruction) (Directive, error) {
	return advance, ErrFail
}

func opBnz(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	if cx.popInt() != 0 {
		return jump(in.target), nil
	}
	return advance, nil
}

func opBz(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	if cx.popInt() == 0 {
		return jump(in.target), nil
	}
	return advance, nil
}

func opB(_ context.Context, _ *Context, in *instruction) (Directive, error) {
	return jump(in.target), nil
}

// opReturn leaves only the top value on the stack and halts.
func opReturn(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	cx.Stack = append(cx.Stack[:0], cx.top())
	return halt, nil
}

func opAssert(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	if cx.popInt() == 0 {
		return advance, errors.WithDetailf(ErrAssert, "assert at line %d", in.Line)
	}
	return advance, nil
}

func opCallsub(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.CallStack = append(cx.CallStack, cx.IP+1)
	return jump(in.target), nil
}

func checkRetsub(cx *Context, _ *instruction) error {
	if len(cx.CallStack) == 0 {
		return errors.WithDetail(ErrCallStack, "retsub with an empty call stack")
	}
	return nil
}

func opRetsub(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	ret := cx.CallStack[len(cx.CallStack)-1]
	cx.CallStack = cx.CallStack[:len(cx.CallStack)-1]
	return jump(ret), nil
}
