package vm

import (
	"context"
	"testing"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func TestStackOps(t *testing.T) {
	runCases(t, []runCase{
		{src: program("int 1", "int 2", "pop"), wantStack: ints(1)},
		{src: program("int 1", "dup"), wantStack: ints(1, 1)},
		{src: program("int 1", "int 2", "dup2"), wantStack: ints(1, 2, 1, 2)},
		{src: program("int 1", "int 2", "swap"), wantStack: ints(2, 1)},
		{src: program("int 1", "int 2", "int 3", "dig 2"), wantStack: ints(1, 2, 3, 1)},
		{src: program("int 1", "int 2", "dig 2"), wantErr: ErrStackUnderflow},
		{src: program("int 1", "int 2", "int 0", "select"), wantStack: ints(1)},
		{src: program("int 1", "int 2", "int 5", "select"), wantStack: ints(2)},
		{src: program("int 1", "int 2", "int 3", "int 4", "cover 2"), wantStack: ints(1, 4, 2, 3)},
		{src: program("int 1", "int 2", "int 3", "int 4", "uncover 2"), wantStack: ints(1, 3, 4, 2)},
		{src: program("int 1", "cover 1"), wantErr: ErrStackUnderflow},
		{src: program("int 1", "cover 0"), wantStack: ints(1)},
	})
}

func TestUnderflowLeavesStack(t *testing.T) {
	vm := New()
	if err := vm.Load(program("int 4", "+"), nil); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := vm.Step(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := vm.Step(ctx)
	if errors.Root(err) != ErrStackUnderflow {
		t.Fatalf("err = %v want %v", err, ErrStackUnderflow)
	}
	want := `opcode "+" needs 2 stack values, have 1`
	if d := errors.Detail(err.(Error).Err); d != want {
		t.Errorf("detail = %q want %q", d, want)
	}
	if cx := vm.Context(); !stackEqual(cx.Stack, ints(4)) || cx.IP != 1 {
		t.Errorf("after underflow: stack %v ip %d want [4] at 1", cx.Stack, cx.IP)
	}
}

func TestScratch(t *testing.T) {
	runCases(t, []runCase{
		{src: program("int 5", "store 3", "load 3", "load 4"), wantStack: ints(5, 0)},
		{src: program("int 7", "int 9", "stores", "int 7", "loads"), wantStack: ints(9)},
		{src: program("load 256"), wantErr: ErrRange},
		{src: program("int 256", "loads"), wantErr: ErrRange},
		{src: program("int 256", "int 1", "stores"), wantErr: ErrRange},
	})
}
