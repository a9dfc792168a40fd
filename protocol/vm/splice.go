package vm

import (
	"context"
	"encoding/binary"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// MaxByteLen bounds every byte string an opcode builds.
const MaxByteLen = 4096

func outOfRange(format string, a ...interface{}) error {
	return errors.WithDetailf(ErrRange, format, a...)
}

func opLen(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	cx.pushInt(uint64(len(cx.popBytes())))
	return advance, nil
}

func opItob(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, cx.popInt())
	cx.pushBytes(b)
	return advance, nil
}

func opBtoi(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b := cx.popBytes()
	if len(b) > 8 {
		return advance, outOfRange("btoi of %d bytes, want at most 8", len(b))
	}
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	cx.pushInt(n)
	return advance, nil
}

func concat(a, b []byte) ([]byte, error) {
	if len(a)+len(b) > MaxByteLen {
		return nil, outOfRange("concat produces %d bytes, limit %d", len(a)+len(b), MaxByteLen)
	}
	r := make([]byte, 0, len(a)+len(b))
	return append(append(r, a...), b...), nil
}

// slice returns b[start:end] without aliasing.
func slice(b []byte, start, end uint64) ([]byte, error) {
	if start > end || end > uint64(len(b)) {
		return nil, outOfRange("range [%d:%d] outside %d bytes", start, end, len(b))
	}
	return append([]byte{}, b[start:end]...), nil
}

func (cx *Context) pushSlice(b []byte, start, end uint64) (Directive, error) {
	r, err := slice(b, start, end)
	if err != nil {
		return advance, err
	}
	cx.pushBytes(r)
	return advance, nil
}

func opSubstring(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	return cx.pushSlice(cx.popBytes(), in.uint(0), in.uint(1))
}

func opSubstring3(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	end, start := cx.popInt(), cx.popInt()
	return cx.pushSlice(cx.popBytes(), start, end)
}

// extractEnd turns a start and length into an end offset. A zero
// length immediate means the rest of b.
func extractEnd(b []byte, start, n uint64, toEnd bool) (uint64, error) {
	if toEnd && n == 0 {
		if start > uint64(len(b)) {
			return 0, outOfRange("start %d beyond %d bytes", start, len(b))
		}
		return uint64(len(b)), nil
	}
	end := start + n
	if end < start {
		return 0, outOfRange("extract %d bytes at %d overflows", n, start)
	}
	return end, nil
}

func opExtract(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	b := cx.popBytes()
	end, err := extractEnd(b, in.uint(0), in.uint(1), true)
	if err != nil {
		return advance, err
	}
	return cx.pushSlice(b, in.uint(0), end)
}

func opExtract3(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	n, start := cx.popInt(), cx.popInt()
	b := cx.popBytes()
	end, err := extractEnd(b, start, n, false)
	if err != nil {
		return advance, err
	}
	return cx.pushSlice(b, start, end)
}

func extractUint(size uint64) func(context.Context, *Context, *instruction) (Directive, error) {
	return func(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
		start := cx.popInt()
		b := cx.popBytes()
		r, err := slice(b, start, start+size)
		if err != nil || start+size < start {
			return advance, outOfRange("extract %d bytes at %d outside %d bytes", size, start, len(b))
		}
		var n uint64
		for _, c := range r {
			n = n<<8 | uint64(c)
		}
		cx.pushInt(n)
		return advance, nil
	}
}

func replace(a []byte, start uint64, b []byte) ([]byte, error) {
	end := start + uint64(len(b))
	if end < start || end > uint64(len(a)) {
		return nil, outOfRange("replacing %d bytes at %d outside %d bytes", len(b), start, len(a))
	}
	r := append([]byte{}, a...)
	copy(r[start:], b)
	return r, nil
}

func opReplace2(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	b := cx.popBytes()
	a := cx.popBytes()
	r, err := replace(a, in.uint(0), b)
	if err != nil {
		return advance, err
	}
	cx.pushBytes(r)
	return advance, nil
}

func opReplace3(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	b := cx.popBytes()
	start := cx.popInt()
	a := cx.popBytes()
	r, err := replace(a, start, b)
	if err != nil {
		return advance, err
	}
	cx.pushBytes(r)
	return advance, nil
}

// Bits of an integer count from the least significant; bits of a
// byte string count from the high bit of its first byte.

func opGetbit(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	i := cx.popInt()
	v := cx.pop()
	if v.IsInt() {
		if i >= 64 {
			return advance, outOfRange("bit %d of a uint64", i)
		}
		n, _ := v.Uint64()
		cx.pushInt(n >> i & 1)
		return advance, nil
	}
	if i >= uint64(len(v.b))*8 {
		return advance, outOfRange("bit %d of %d bytes", i, len(v.b))
	}
	cx.pushInt(uint64(v.b[i/8]>>(7-i%8)) & 1)
	return advance, nil
}

func opSetbit(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	bit := cx.popInt()
	i := cx.popInt()
	v := cx.pop()
	if bit > 1 {
		return advance, outOfRange("setbit value %d, want 0 or 1", bit)
	}
	if v.IsInt() {
		if i >= 64 {
			return advance, outOfRange("bit %d of a uint64", i)
		}
		n, _ := v.Uint64()
		n = n&^(1<<i) | bit<<i
		cx.pushInt(n)
		return advance, nil
	}
	if i >= uint64(len(v.b))*8 {
		return advance, outOfRange("bit %d of %d bytes", i, len(v.b))
	}
	b := append([]byte{}, v.b...)
	m := byte(1) << (7 - i%8)
	if bit == 1 {
		b[i/8] |= m
	} else {
		b[i/8] &^= m
	}
	cx.pushBytes(b)
	return advance, nil
}

func opGetbyte(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	i := cx.popInt()
	b := cx.popBytes()
	if i >= uint64(len(b)) {
		return advance, outOfRange("byte %d of %d bytes", i, len(b))
	}
	cx.pushInt(uint64(b[i]))
	return advance, nil
}

func opSetbyte(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	c := cx.popInt()
	i := cx.popInt()
	b := cx.popBytes()
	if i >= uint64(len(b)) {
		return advance, outOfRange("byte %d of %d bytes", i, len(b))
	}
	if c > 255 {
		return advance, outOfRange("setbyte value %d, want at most 255", c)
	}
	r := append([]byte{}, b...)
	r[i] = byte(c)
	cx.pushBytes(r)
	return advance, nil
}

func opBzero(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	n := cx.popInt()
	if n > MaxByteLen {
		return advance, outOfRange("bzero of %d bytes, limit %d", n, MaxByteLen)
	}
	cx.pushBytes(make([]byte, n))
	return advance, nil
}
