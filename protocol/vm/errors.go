package vm

import (
	"fmt"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/config"
)

var (
	ErrParse          = errors.New("parse error")
	ErrDecode         = config.ErrDecode
	ErrOperand        = errors.New("bad operand")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrType           = errors.New("type error")
	ErrRange          = errors.New("range error")
	ErrArithmetic     = errors.New("arithmetic error")
	ErrMissingConfig  = errors.New("missing configuration")
	ErrCallStack      = errors.New("call stack error")
	ErrFail           = errors.New("err opcode executed")
	ErrAssert         = errors.New("assert failed")
	ErrVersion        = errors.New("opcode not available in this version")
	ErrInnerTxn       = errors.New("inner transaction error")
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrNotLoaded      = errors.New("no program loaded")
)

// Error is returned for any failure tied to one instruction,
// whether found at load or while stepping.
type Error struct {
	Err    error
	Opcode string
	Line   int
	IP     int
}

func (e Error) Error() string {
	return fmt.Sprintf("%s [opcode %q at line %d, instruction %d]", e.Err.Error(), e.Opcode, e.Line, e.IP)
}

func (e Error) Unwrap() error {
	return e.Err
}

func wrapErr(err error, tok Token, ip int) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(Error); ok {
		return err
	}
	return Error{
		Err:    err,
		Opcode: tok.Opcode,
		Line:   tok.Line,
		IP:     ip,
	}
}
