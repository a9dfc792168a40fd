package vm

import (
	"bytes"
	"encoding/hex"
	"math/big"

	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/config"
)

// StackType is the tag of a Value, or StackAny in an opcode's
// argument list to accept either tag.
type StackType byte

const (
	StackAny StackType = iota
	StackUint64
	StackBytes
)

func (t StackType) String() string {
	switch t {
	case StackUint64:
		return "uint64"
	case StackBytes:
		return "[]byte"
	}
	return "any"
}

// Value is an immutable stack value: an integer or a byte string.
// The zero Value is the integer 0.
type Value struct {
	bytes bool
	n     *big.Int
	b     []byte

	// From is the document literal the value was decoded from, if any.
	From *config.Value
}

var bigZero = new(big.Int)

// NewInt makes an integer value. n is copied.
func NewInt(n *big.Int) Value {
	return Value{n: new(big.Int).Set(n)}
}

// NewUint64 makes an integer value.
func NewUint64(n uint64) Value {
	return Value{n: new(big.Int).SetUint64(n)}
}

// NewBool makes the integer 1 or 0.
func NewBool(b bool) Value {
	if b {
		return NewUint64(1)
	}
	return NewUint64(0)
}

// NewBytes makes a byte-string value. b is copied.
func NewBytes(b []byte) Value {
	return Value{bytes: true, b: append([]byte{}, b...)}
}

// bytesValue wraps b without copying; b must not be changed afterwards.
func bytesValue(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{bytes: true, b: b}
}

func (v Value) IsInt() bool   { return !v.bytes }
func (v Value) IsBytes() bool { return v.bytes }

// Type returns StackUint64 or StackBytes.
func (v Value) Type() StackType {
	if v.bytes {
		return StackBytes
	}
	return StackUint64
}

func (v Value) bigInt() *big.Int {
	if v.n == nil {
		return bigZero
	}
	return v.n
}

// BigInt returns a copy of an integer value, or nil for bytes.
func (v Value) BigInt() *big.Int {
	if v.bytes {
		return nil
	}
	return new(big.Int).Set(v.bigInt())
}

// Uint64 returns an integer value that fits in 64 bits.
func (v Value) Uint64() (uint64, bool) {
	if v.bytes || !v.bigInt().IsUint64() {
		return 0, false
	}
	return v.bigInt().Uint64(), true
}

// Bytes returns a copy of a byte-string value, or nil for integers.
func (v Value) Bytes() []byte {
	if !v.bytes {
		return nil
	}
	return append([]byte{}, v.b...)
}

// Equal reports whether v and w have the same tag and content.
// Provenance is ignored.
func (v Value) Equal(w Value) bool {
	if v.bytes != w.bytes {
		return false
	}
	if v.bytes {
		return bytes.Equal(v.b, w.b)
	}
	return v.bigInt().Cmp(w.bigInt()) == 0
}

func (v Value) String() string {
	if v.bytes {
		return "0x" + hex.EncodeToString(v.b)
	}
	return v.bigInt().String()
}

// ToPlain converts v to its document form. A value decoded from a
// document converts back to the literal it came from; others
// become decimal integers or 0x-prefixed hex.
func ToPlain(v Value) config.Value {
	if v.From != nil {
		return *v.From
	}
	if v.bytes {
		return config.Hex(v.b)
	}
	return config.Int(v.bigInt())
}

// FromPlain decodes a document value.
func FromPlain(p config.Value) (Value, error) {
	from := p
	if p.IsInt() {
		n, err := p.BigInt()
		if err != nil {
			return Value{}, err
		}
		return Value{n: n, From: &from}, nil
	}
	b, err := p.Bytes()
	if err != nil {
		return Value{}, err
	}
	return Value{bytes: true, b: b, From: &from}, nil
}
