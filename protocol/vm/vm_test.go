package vm

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/config"
	"github.com/hashprotocol/AlgoTeal-interpreter/testutil"
)

func program(lines ...string) string {
	return strings.Join(lines, "\n")
}

func ints(ns ...uint64) []Value {
	vs := make([]Value, len(ns))
	for i, n := range ns {
		vs[i] = NewUint64(n)
	}
	return vs
}

func stackEqual(got, want []Value) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			return false
		}
	}
	return true
}

type runCase struct {
	src       string
	doc       *config.Document
	wantStack []Value
	wantErr   error
}

func runCases(t *testing.T, cases []runCase, opts ...Option) {
	t.Helper()
	for _, c := range cases {
		cx, err := Execute(context.Background(), c.src, c.doc, opts...)
		if errors.Root(err) != c.wantErr {
			t.Errorf("Execute(%q) err = %v want %v", c.src, err, c.wantErr)
			continue
		}
		if c.wantErr != nil || c.wantStack == nil {
			continue
		}
		if !stackEqual(cx.Stack, c.wantStack) {
			t.Errorf("Execute(%q) stack = %v want %v", c.src, cx.Stack, c.wantStack)
		}
	}
}

func TestExecute(t *testing.T) {
	runCases(t, []runCase{
		{src: program("int 1", "int 2", "+", "int 3", "=="), wantStack: ints(1)},
		{src: program("byte 0x0000000000000003", "btoi"), wantStack: ints(3)},
		{src: "", wantStack: []Value{}},
		{src: program("#pragma version 2", "int 1", "return", "int 2"), wantStack: ints(1)},
	})
}

func TestStepAfterFinish(t *testing.T) {
	ctx := context.Background()
	vm := New()
	if _, err := vm.Step(ctx); errors.Root(err) != ErrNotLoaded {
		t.Fatalf("Step before Load err = %v want %v", err, ErrNotLoaded)
	}
	err := vm.Load(program("int 1", "int 2"), nil)
	if err != nil {
		testutil.FatalErr(t, err)
	}
	for i := 0; i < 2; i++ {
		ok, err := vm.Step(ctx)
		if err != nil || !ok {
			t.Fatalf("step %d = %v, %v want true, nil", i, ok, err)
		}
	}
	before := append([]Value{}, vm.Context().Stack...)
	ok, err := vm.Step(ctx)
	if ok || err != nil {
		t.Fatalf("Step past end = %v, %v want false, nil", ok, err)
	}
	if !stackEqual(vm.Context().Stack, before) || vm.Context().IP != 2 {
		t.Errorf("Step past end changed state: stack %v ip %d", vm.Context().Stack, vm.Context().IP)
	}
}

func TestErrorContext(t *testing.T) {
	_, err := Execute(context.Background(), program("int 1", "", "int 0", "/"), nil)
	e, ok := err.(Error)
	if !ok {
		t.Fatalf("err = %T %v want vm.Error", err, err)
	}
	if e.Opcode != "/" || e.Line != 4 || e.IP != 2 {
		t.Errorf("Error = %+v want opcode / at line 4, instruction 2", e)
	}
	if errors.Root(err) != ErrArithmetic {
		t.Errorf("Root(err) = %v want %v", errors.Root(err), ErrArithmetic)
	}
	if !strings.Contains(err.Error(), `opcode "/" at line 4`) {
		t.Errorf("err.Error() = %q does not name the opcode and line", err.Error())
	}
}

func TestMaxSteps(t *testing.T) {
	src := program("loop:", "b loop")
	_, err := Execute(context.Background(), src, nil, WithMaxSteps(100))
	if errors.Root(err) != ErrStepLimit {
		t.Fatalf("err = %v want %v", err, ErrStepLimit)
	}
}

func TestCoverage(t *testing.T) {
	src := program(
		"int 3",
		"loop:",
		"int 1",
		"-",
		"dup",
		"bnz loop",
	)
	vm := New(WithCoverage())
	if err := vm.Load(src, nil); err != nil {
		testutil.FatalErr(t, err)
	}
	if err := vm.Run(context.Background()); err != nil {
		testutil.FatalErr(t, err)
	}
	want := []int{1, 3, 3, 3, 3}
	if got := vm.Coverage(); !testutil.DeepEqual(got, want) {
		t.Errorf("Coverage() = %v want %v", got, want)
	}

	var buf bytes.Buffer
	if err := vm.WriteCoverage(&buf); err != nil {
		testutil.FatalErr(t, err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || !strings.Contains(lines[4], "bnz loop") {
		t.Errorf("WriteCoverage = %q", buf.String())
	}
}

func TestCoverageFromDocument(t *testing.T) {
	doc := config.New()
	doc.ShowCodeCoverage = true
	vm := New()
	if err := vm.Load("int 1", doc); err != nil {
		testutil.FatalErr(t, err)
	}
	if got := vm.Coverage(); len(got) != 1 {
		t.Errorf("Coverage() = %v want one counter", got)
	}
	if New().Coverage() != nil {
		t.Error("Coverage() of a fresh interpreter is not nil")
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	_, err := Execute(context.Background(), program("int 7", "dup"), nil, TraceTo(&buf))
	if err != nil {
		testutil.FatalErr(t, err)
	}
	want := "pc 0 line 1 int 7\n  stack 0: 7\npc 1 line 2 dup\n  stack 0: 7\n  stack 1: 7\n"
	if buf.String() != want {
		t.Errorf("trace = %q want %q", buf.String(), want)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		src     string
		wantErr error
	}{
		{"b nowhere", ErrParse},
		{"frobnicate", ErrParse},
		{"int", ErrOperand},
		{"int 1 2", ErrOperand},
		{"int zero", ErrDecode},
		{"byte 0xzz", ErrDecode},
		{"txn Bogus", ErrOperand},
		{"txn Accounts", ErrType},
		{"txna Fee 0", ErrType},
		{"#pragma version 1\ncallsub x\nx:", ErrVersion},
		{"#pragma version 4\ntxn Logs 0", ErrVersion},
		{"itxn_field TxID", ErrOperand},
		{"ecdsa_verify Secp999", ErrOperand},
	}
	for _, c := range cases {
		err := New().Load(c.src, nil)
		if errors.Root(err) != c.wantErr {
			t.Errorf("Load(%q) err = %v want %v", c.src, err, c.wantErr)
			continue
		}
		if _, ok := err.(Error); c.wantErr != ErrParse && !ok {
			t.Errorf("Load(%q) err is %T, want vm.Error", c.src, err)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Execute(ctx, program("loop:", "b loop"), nil)
	if errors.Root(err) != context.Canceled {
		t.Fatalf("err = %v want %v", err, context.Canceled)
	}
}
