package vm

import (
	"context"
	"testing"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func TestControlOps(t *testing.T) {
	runCases(t, []runCase{
		{src: program("int 1", "bnz skip", "int 7", "skip:", "int 8"), wantStack: ints(8)},
		{src: program("int 0", "bnz skip", "int 7", "skip:", "int 8"), wantStack: ints(7, 8)},
		{src: program("int 0", "bz skip", "int 7", "skip: int 8"), wantStack: ints(8)},
		{src: program("b end", "err", "end:"), wantStack: []Value{}},
		{src: program("err"), wantErr: ErrFail},
		{src: program("int 1", "int 2", "int 3", "return", "int 4"), wantStack: ints(3)},
		{src: program("int 1", "assert", "int 5"), wantStack: ints(5)},
		{src: program("int 0", "assert"), wantErr: ErrAssert},
		{src: program("retsub"), wantErr: ErrCallStack},
		{src: program(
			"int 2",
			"callsub double",
			"callsub double",
			"b done",
			"double:",
			"dup",
			"+",
			"retsub",
			"done:",
		), wantStack: ints(8)},
		{src: program("bnz skip", "skip:"), wantErr: ErrStackUnderflow},
	})
}

func TestForwardBranch(t *testing.T) {
	prog, err := Parse(program("b later", "int 1", "later:", "int 2"))
	if err != nil {
		t.Fatal(err)
	}
	if got := prog.BranchTargets["later"]; got != 2 {
		t.Errorf("BranchTargets[later] = %d want 2", got)
	}
	cx, err := Execute(context.Background(), program("b later", "int 1", "later:", "int 2"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !stackEqual(cx.Stack, ints(2)) {
		t.Errorf("stack = %v want [2]", cx.Stack)
	}
}

func TestUndefinedLabelAtLoad(t *testing.T) {
	// the bad branch is never reached, but loading still fails
	err := New().Load(program("int 1", "return", "b missing"), nil)
	if errors.Root(err) != ErrParse {
		t.Fatalf("Load err = %v want %v", err, ErrParse)
	}
	e, ok := err.(Error)
	if !ok || e.Line != 3 {
		t.Errorf("err = %#v want a vm.Error at line 3", err)
	}
}

func TestCallStackRoundTrip(t *testing.T) {
	vm := New()
	err := vm.Load(program("callsub f", "int 9", "f:", "retsub"), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	vm.Step(ctx)
	if cx := vm.Context(); cx.IP != 2 || len(cx.CallStack) != 1 || cx.CallStack[0] != 1 {
		t.Fatalf("after callsub: ip %d call stack %v", cx.IP, cx.CallStack)
	}
	vm.Step(ctx)
	if cx := vm.Context(); cx.IP != 1 || len(cx.CallStack) != 0 {
		t.Fatalf("after retsub: ip %d call stack %v", cx.IP, cx.CallStack)
	}
	// falls through into f again with an empty call stack
	vm.Step(ctx)
	_, err = vm.Step(ctx)
	if errors.Root(err) != ErrCallStack {
		t.Errorf("second retsub err = %v want %v", err, ErrCallStack)
	}
}
