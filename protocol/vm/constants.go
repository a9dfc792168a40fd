package vm

import (
	"context"
	"crypto/sha512"
	"math/big"
	"strconv"
)

func intImmediate(in *instruction, _ *Program) error {
	n, err := parseIntConst(in.Operands[0])
	if err != nil {
		return err
	}
	in.uints = []uint64{n}
	return nil
}

func intcblockImmediates(in *instruction, prog *Program) error {
	if err := uintImmediates(in, prog); err != nil {
		return err
	}
	for _, n := range in.uints {
		in.ints = append(in.ints, new(big.Int).SetUint64(n))
	}
	return nil
}

func bytecblockImmediates(in *instruction, _ *Program) error {
	ops := in.Operands
	for len(ops) > 0 {
		b, used, err := parseBytes(ops)
		if err != nil {
			return err
		}
		in.consts = append(in.consts, b)
		ops = ops[used:]
	}
	return nil
}

func addrImmediate(in *instruction, _ *Program) error {
	b, err := parseAddr(in.Operands[0])
	if err != nil {
		return err
	}
	in.data = b
	return nil
}

// methodImmediate computes the 4-byte ABI selector of a method signature.
func methodImmediate(in *instruction, prog *Program) error {
	if err := byteImmediate(in, prog); err != nil {
		return err
	}
	h := sha512.Sum512_256(in.data)
	in.data = h[:4]
	return nil
}

func opIntcblock(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.IntConstants = in.ints
	return advance, nil
}

func opBytecblock(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.ByteConstants = in.consts
	return advance, nil
}

func checkIntc(cx *Context, in *instruction) error {
	if i := in.uint(0); i >= uint64(len(cx.IntConstants)) {
		return outOfRange("int constant %d of %d", i, len(cx.IntConstants))
	}
	return nil
}

func checkBytec(cx *Context, in *instruction) error {
	if i := in.uint(0); i >= uint64(len(cx.ByteConstants)) {
		return outOfRange("byte constant %d of %d", i, len(cx.ByteConstants))
	}
	return nil
}

func opIntc(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.pushBig(cx.IntConstants[in.uint(0)])
	return advance, nil
}

func opBytec(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.pushBytes(cx.ByteConstants[in.uint(0)])
	return advance, nil
}

func opInt(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.pushInt(in.uint(0))
	return advance, nil
}

// opByte serves byte, pushbytes, addr and method.
func opByte(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	cx.pushBytes(in.data)
	return advance, nil
}

func (cx *Context) pushArg(ctx context.Context, i uint64, opcode string) (Directive, error) {
	v, err := cx.RequireValue(ctx, "args."+strconv.FormatUint(i, 10), opcode)
	if err != nil {
		return advance, err
	}
	cx.push(v)
	return advance, nil
}

func opArg(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.pushArg(ctx, in.uint(0), in.Opcode)
}

func opArgs(ctx context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.pushArg(ctx, cx.popInt(), in.Opcode)
}
