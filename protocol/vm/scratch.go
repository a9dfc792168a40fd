package vm

import (
	"context"
	"strconv"
)

func checkSlot(i uint64) error {
	if i >= ScratchSize {
		return outOfRange("scratch slot %d, want less than %d", i, ScratchSize)
	}
	return nil
}

// stackUint reads the integer at depth d from the top.
func (cx *Context) stackUint(d int) uint64 {
	n, _ := cx.Stack[len(cx.Stack)-1-d].Uint64()
	return n
}

func checkSlotImmediate(cx *Context, in *instruction) error { return checkSlot(in.uint(0)) }
func checkLoads(cx *Context, in *instruction) error { return checkSlot(cx.stackUint(0)) }
func checkStores(cx *Context, in *instruction) error { return checkSlot(cx.stackUint(1)) }

func opLoad(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.push(cx.Scratch[in.uint(0)])
	return advance, nil
}

func opStore(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.Scratch[in.uint(0)] = cx.pop()
	return advance, nil
}

func opLoads(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	cx.push(cx.Scratch[cx.popInt()])
	return advance, nil
}

func opStores(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	v := cx.pop()
	cx.Scratch[cx.popInt()] = v
	return advance, nil
}

func (cx *Context) checkGroupIndex(t uint64) error {
	if n := uint64(len(cx.group())); t >= n {
		return outOfRange("group index %d, group has %d transactions", t, n)
	}
	return nil
}

func checkGroupImmediate(cx *Context, in *instruction) error {
	return cx.checkGroupIndex(in.uint(0))
}

func checkGroupTop(cx *Context, _ *instruction) error {
	return cx.checkGroupIndex(cx.stackUint(0))
}

func checkGloadss(cx *Context, _ *instruction) error {
	if err := cx.checkGroupIndex(cx.stackUint(1)); err != nil {
		return err
	}
	return checkSlot(cx.stackUint(0))
}

func checkGloads(cx *Context, in *instruction) error {
	if err := cx.checkGroupIndex(cx.stackUint(0)); err != nil {
		return err
	}
	return checkSlot(in.uint(0))
}

func checkGload(cx *Context, in *instruction) error {
	if err := cx.checkGroupIndex(in.uint(0)); err != nil {
		return err
	}
	return checkSlot(in.uint(1))
}

// groupScratch reads slot i of group transaction t.
func (cx *Context) groupScratch(ctx context.Context, t, i uint64, opcode string) (Directive, error) {
	path := "txnSideEffects." + strconv.FormatUint(t, 10) + "." + strconv.FormatUint(i, 10)
	v, err := cx.RequireValue(ctx, path, opcode)
	if err != nil {
		return advance, err
	}
	cx.push(v)
	return advance, nil
}

func opGload(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.groupScratch(ctx, in.uint(0), in.uint(1), in.Opcode)
}

func opGloads(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.groupScratch(ctx, cx.popInt(), in.uint(0), in.Opcode)
}

func opGloadss(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	i := cx.popInt()
	t := cx.popInt()
	return cx.groupScratch(ctx, t, i, in.Opcode)
}

func (cx *Context) groupAssetID(ctx context.Context, t uint64, opcode string) (Directive, error) {
	v, err := cx.RequireValue(ctx, "gaid."+strconv.FormatUint(t, 10), opcode)
	if err != nil {
		return advance, err
	}
	cx.push(v)
	return advance, nil
}

func opGaid(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.groupAssetID(ctx, in.uint(0), in.Opcode)
}

func opGaids(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.groupAssetID(ctx, cx.popInt(), in.Opcode)
}
