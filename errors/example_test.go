package errors_test

import (
	"fmt"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

var ErrStackUnderflow = errors.New("stack underflow")

func Example() {
	err := errors.WithDetailf(ErrStackUnderflow, "opcode %q needs %d stack values, have %d", "+", 2, 1)
	err = errors.Wrap(err, "line 3")

	fmt.Println(errors.Root(err) == ErrStackUnderflow)
	fmt.Println(errors.Detail(err))
	// Output:
	// true
	// opcode "+" needs 2 stack values, have 1
}
