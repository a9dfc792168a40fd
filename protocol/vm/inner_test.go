package vm

import (
	"context"
	"testing"
)

func TestInnerTxns(t *testing.T) {
	pay := []string{
		"itxn_begin",
		`byte "pay"`, "itxn_field Type",
		"int 250", "itxn_field Amount",
		`byte "bob"`, "itxn_field Receiver",
		`byte "a"`, "itxn_field ApplicationArgs",
		`byte "b"`, "itxn_field ApplicationArgs",
	}
	runCases(t, []runCase{
		{src: program(append(pay, "itxn_submit", "itxn Amount", "itxn TypeEnum", "itxn NumAppArgs")...), wantStack: ints(250, 1, 2)},
		{src: program(append(pay, "itxn_submit", "itxna ApplicationArgs 1")...), wantStack: []Value{text("b")}},
		{src: program(append(pay, "itxn_next", "int 4", "itxn_field TypeEnum", "int 9", "itxn_field Amount", "itxn_submit", "itxn Amount")...), wantStack: ints(9)},
		{src: program("itxn_begin", "itxn_begin"), wantErr: ErrInnerTxn},
		{src: program("int 1", "itxn_field Amount"), wantErr: ErrInnerTxn},
		{src: "itxn_submit", wantErr: ErrInnerTxn},
		{src: "itxn_next", wantErr: ErrInnerTxn},
		{src: program("itxn_begin", "int 1", "itxn_field Amount", "itxn_submit"), wantErr: ErrInnerTxn},
		{src: program("itxn_begin", "int 1", "itxn_field Receiver"), wantErr: ErrType},
		{src: program("itxn_begin", "int 1", "itxn_field NumAppArgs"), wantErr: ErrOperand},
		{src: "itxn Amount", wantErr: ErrMissingConfig},
		{src: program("#pragma version 4", "itxn_begin"), wantErr: ErrVersion},
	})
}

func TestInnerTxnLimit(t *testing.T) {
	src := program(
		"int 0",
		"loop:",
		"itxn_begin",
		`byte "pay"`, "itxn_field Type",
		"itxn_submit",
		"int 1", "+", "dup", "int 20", "<", "bnz loop",
	)
	_, err := Execute(context.Background(), src, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	e := err.(Error)
	if e.Opcode != "itxn_submit" {
		t.Errorf("failing opcode = %q want itxn_submit", e.Opcode)
	}

	cx, err := Execute(context.Background(), program("itxn_begin", `byte "pay"`, "itxn_field Type", "itxn_submit"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cx.InnerTxns) != 1 || cx.Itxn != nil {
		t.Errorf("InnerTxns = %d, Itxn = %v want 1, nil", len(cx.InnerTxns), cx.Itxn)
	}
	doc := cx.Serialize()
	if doc.LastItxn["Type"].Value.Literal == "" {
		t.Errorf("lastItxn.Type not serialized: %v", doc.LastItxn)
	}
}
