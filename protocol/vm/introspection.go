package vm

import (
	"context"
	"strconv"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// MaxLogs bounds the log entries one run may append.
const MaxLogs = 32

func groupPath(t uint64) string { return "txns." + strconv.FormatUint(t, 10) }

// pushField resolves field f of the transaction at path, or one
// element of it when index is non-nil, and pushes it.
func (cx *Context) pushField(ctx context.Context, path string, f *fieldSpec, index *uint64, opcode string) (Directive, error) {
	path += "." + f.name
	if index != nil {
		path += "." + strconv.FormatUint(*index, 10)
	}
	v, err := cx.RequireValue(ctx, path, opcode)
	if err != nil {
		return advance, err
	}
	if v.Type() != f.typ {
		return advance, errors.WithDetailf(ErrType, "field %q holds %s, want %s", path, v.Type(), f.typ)
	}
	cx.push(v)
	return advance, nil
}

// immediateIndex returns the array index immediate at position i, if any.
func (in *instruction) immediateIndex(i int) *uint64 {
	if len(in.uints) <= i {
		return nil
	}
	return &in.uints[i]
}

func opTxn(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.pushField(ctx, "txn", in.field, in.immediateIndex(0), in.Opcode)
}

func opTxnas(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	i := cx.popInt()
	return cx.pushField(ctx, "txn", in.field, &i, in.Opcode)
}

func opGtxn(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.pushField(ctx, groupPath(in.uint(0)), in.field, in.immediateIndex(1), in.Opcode)
}

func opGtxnas(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	i := cx.popInt()
	return cx.pushField(ctx, groupPath(in.uint(0)), in.field, &i, in.Opcode)
}

func opGtxns(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	t := cx.popInt()
	return cx.pushField(ctx, groupPath(t), in.field, in.immediateIndex(0), in.Opcode)
}

func opGtxnsas(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	i := cx.popInt()
	t := cx.popInt()
	return cx.pushField(ctx, groupPath(t), in.field, &i, in.Opcode)
}

// checkGtxnsas checks the group index under the array index.
func checkGtxnsas(cx *Context, _ *instruction) error {
	return cx.checkGroupIndex(cx.stackUint(1))
}

// opItxn reads the last submitted inner transaction.
func opItxn(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.pushField(ctx, "lastItxn", in.field, in.immediateIndex(0), in.Opcode)
}

func opGlobal(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	path := "globals." + in.field.name
	v, err := cx.RequireValue(ctx, path, in.Opcode)
	if err != nil {
		return advance, err
	}
	if v.Type() != in.field.typ {
		return advance, errors.WithDetailf(ErrType, "field %q holds %s, want %s", path, v.Type(), in.field.typ)
	}
	cx.push(v)
	return advance, nil
}

func opLog(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	logs := cx.Txn["Logs"]
	if len(logs.Array) >= MaxLogs {
		return advance, outOfRange("more than %d log entries", MaxLogs)
	}
	logs.IsArray = true
	logs.Array = append(logs.Array, bytesValue(cx.popBytes()))
	cx.Txn["Logs"] = logs
	return advance, nil
}
