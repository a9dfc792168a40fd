package vm

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
	"github.com/hashprotocol/AlgoTeal-interpreter/log"
	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/config"
)

// Interpreter runs one loaded program against one context.
// It is not safe for concurrent use.
type Interpreter struct {
	prog  *Program
	cx    *Context
	insts []instruction

	coverOn  bool
	coverage []int

	steps    int
	maxSteps int

	trace     io.Writer
	logSteps  bool
	onMissing MissingFunc
}

// An Option configures an Interpreter.
type Option func(*Interpreter)

// WithMissing installs the host callback for missing state.
func WithMissing(f MissingFunc) Option {
	return func(vm *Interpreter) { vm.onMissing = f }
}

// WithCoverage counts executions per instruction.
func WithCoverage() Option {
	return func(vm *Interpreter) { vm.coverOn = true }
}

// TraceTo writes a line per step, followed by the resulting stack, to w.
func TraceTo(w io.Writer) Option {
	return func(vm *Interpreter) { vm.trace = w }
}

// WithStepLog writes a log entry per step.
func WithStepLog() Option {
	return func(vm *Interpreter) { vm.logSteps = true }
}

// WithMaxSteps fails the run with ErrStepLimit once n steps have
// executed. Zero means no limit.
func WithMaxSteps(n int) Option {
	return func(vm *Interpreter) { vm.maxSteps = n }
}

func New(opts ...Option) *Interpreter {
	vm := new(Interpreter)
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Load parses source, seeds a fresh context from doc and decodes
// every instruction's operands. A nil doc is an empty document.
func (vm *Interpreter) Load(source string, doc *config.Document) error {
	prog, err := Parse(source)
	if err != nil {
		return err
	}
	cx, err := NewContext(prog, doc)
	if err != nil {
		return errors.Wrap(err, "seeding context")
	}
	cx.OnMissing = vm.onMissing

	insts := make([]instruction, len(prog.Tokens))
	for i, tok := range prog.Tokens {
		insts[i] = instruction{Token: tok, spec: opsByName[tok.Opcode]}
		if err := insts[i].validateOperand(prog); err != nil {
			return wrapErr(err, tok, i)
		}
	}

	vm.prog, vm.cx, vm.insts = prog, cx, insts
	vm.steps = 0
	if doc != nil && doc.ShowCodeCoverage {
		vm.coverOn = true
	}
	vm.coverage = nil
	if vm.coverOn {
		vm.coverage = make([]int, len(insts))
	}
	return nil
}

// Context returns the live context, or nil before Load.
func (vm *Interpreter) Context() *Context { return vm.cx }

// Program returns the loaded program, or nil before Load.
func (vm *Interpreter) Program() *Program { return vm.prog }

// Step executes one instruction. It reports false, without side
// effects, once the program has finished or run off its end.
func (vm *Interpreter) Step(ctx context.Context) (bool, error) {
	cx := vm.cx
	if cx == nil {
		return false, ErrNotLoaded
	}
	if cx.Finished || cx.IP < 0 || cx.IP >= len(vm.insts) {
		return false, nil
	}
	in := &vm.insts[cx.IP]
	ip := cx.IP
	if vm.maxSteps > 0 && vm.steps >= vm.maxSteps {
		return false, wrapErr(errors.WithDetailf(ErrStepLimit, "%d steps", vm.maxSteps), in.Token, ip)
	}
	vm.steps++

	if err := in.validateOperand(vm.prog); err != nil {
		return false, wrapErr(err, in.Token, ip)
	}
	if err := in.validateContext(cx); err != nil {
		return false, wrapErr(err, in.Token, ip)
	}
	if vm.trace != nil {
		fmt.Fprintf(vm.trace, "pc %d line %d %s\n", ip, in.Line, strings.Join(append([]string{in.Opcode}, in.Operands...), " "))
	}
	dir, err := in.spec.exec(ctx, cx, in)
	if vm.coverOn {
		vm.coverage[ip]++
	}
	if err != nil {
		return false, wrapErr(err, in.Token, ip)
	}

	switch dir.kind {
	case dirJump:
		cx.IP = dir.target
	case dirHalt:
		cx.Finished = true
	default:
		cx.IP++
	}

	if vm.trace != nil {
		for i := len(cx.Stack) - 1; i >= 0; i-- {
			fmt.Fprintf(vm.trace, "  stack %d: %s\n", len(cx.Stack)-1-i, cx.Stack[i])
		}
	}
	if vm.logSteps {
		log.Write(ctx, "ip", ip, "line", in.Line, "opcode", in.Opcode, "depth", len(cx.Stack))
	}
	return true, nil
}

// Run steps until the program finishes or fails, or ctx is done.
func (vm *Interpreter) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "run interrupted")
		}
		ok, err := vm.Step(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// Execute loads source against doc and runs it to completion. The
// context is returned even when the run fails, so callers can
// inspect the state at the failing instruction.
func Execute(ctx context.Context, source string, doc *config.Document, opts ...Option) (*Context, error) {
	vm := New(opts...)
	if err := vm.Load(source, doc); err != nil {
		return nil, err
	}
	err := vm.Run(ctx)
	return vm.cx, err
}

// Coverage returns execution counts per instruction index, or nil
// when coverage is off.
func (vm *Interpreter) Coverage() []int {
	if vm.coverage == nil {
		return nil
	}
	return append([]int{}, vm.coverage...)
}

// WriteCoverage writes one line per instruction: its source line,
// how many times it ran, and the instruction text.
func (vm *Interpreter) WriteCoverage(w io.Writer) error {
	if vm.coverage == nil {
		return nil
	}
	for i, in := range vm.insts {
		text := strings.Join(append([]string{in.Opcode}, in.Operands...), " ")
		if _, err := fmt.Fprintf(w, "%4d %6d  %s\n", in.Line, vm.coverage[i], text); err != nil {
			return err
		}
	}
	return nil
}
