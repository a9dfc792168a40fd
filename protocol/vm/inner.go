package vm

import (
	"context"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// MaxInnerTxns bounds the inner transactions one run may submit.
const MaxInnerTxns = 16

// Inner transactions are recorded, not applied: submitting one
// leaves balances and holdings unchanged.

func checkBuilding(cx *Context, in *instruction) error {
	if cx.Itxn == nil {
		return errors.WithDetailf(ErrInnerTxn, "opcode %q outside itxn_begin", in.Opcode)
	}
	return nil
}

func checkNotBuilding(cx *Context, in *instruction) error {
	if cx.Itxn != nil {
		return errors.WithDetailf(ErrInnerTxn, "opcode %q while an inner transaction is being built", in.Opcode)
	}
	return nil
}

func checkItxnField(cx *Context, in *instruction) error {
	if err := checkBuilding(cx, in); err != nil {
		return err
	}
	if v := cx.top(); v.Type() != in.field.typ {
		return errors.WithDetailf(ErrType, "inner field %q takes %s, got %s", in.field.name, in.field.typ, v.Type())
	}
	return nil
}

func innerFieldImmediate(in *instruction, prog *Program) error {
	name := in.Operands[0]
	f, ok := lookupField(TxnFields, name)
	if !ok || !f.inner {
		return errors.WithDetailf(ErrOperand, "opcode %q: %q is not a settable inner transaction field", in.Opcode, name)
	}
	if f.version > prog.Version {
		return errors.WithDetailf(ErrVersion, "txn field %q requires version %d, program is version %d", name, f.version, prog.Version)
	}
	in.field = f
	return nil
}

func opItxnBegin(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	cx.Itxn = make(TxnTable)
	cx.itxnGroup = nil
	return advance, nil
}

func opItxnField(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	v := cx.pop()
	f := in.field
	if !f.array {
		cx.Itxn[f.name] = Field{Value: v}
		return advance, nil
	}
	cur := cx.Itxn[f.name]
	cur.IsArray = true
	cur.Array = append(cur.Array, v)
	cx.Itxn[f.name] = cur
	return advance, nil
}

func opItxnNext(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	cx.itxnGroup = append(cx.itxnGroup, cx.Itxn)
	cx.Itxn = make(TxnTable)
	return advance, nil
}

func opItxnSubmit(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	group := append(cx.itxnGroup, cx.Itxn)
	if len(cx.InnerTxns)+len(group) > MaxInnerTxns {
		return advance, errors.WithDetailf(ErrInnerTxn, "more than %d inner transactions", MaxInnerTxns)
	}
	for _, t := range group {
		_, typ := t["Type"]
		_, enum := t["TypeEnum"]
		if !typ && !enum {
			return advance, errors.WithDetail(ErrInnerTxn, "inner transaction sets neither Type nor TypeEnum")
		}
	}
	cx.InnerTxns = append(cx.InnerTxns, group...)
	cx.LastItxn = group[len(group)-1]
	cx.Itxn, cx.itxnGroup = nil, nil
	return advance, nil
}
