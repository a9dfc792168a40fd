package config

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/hashprotocol/AlgoTeal-interpreter/encoding/address"
	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// Encoding names how a Value's literal is written.
type Encoding string

const (
	EncInt    Encoding = "int"
	EncUTF8   Encoding = "utf8"
	EncHex    Encoding = "hex"
	EncBase64 Encoding = "base64"
	EncBase32 Encoding = "base32"
	EncAddr   Encoding = "addr"
)

var encodings = map[Encoding]bool{
	EncInt: true, EncUTF8: true, EncHex: true,
	EncBase64: true, EncBase32: true, EncAddr: true,
}

// Valid reports whether e is a known encoding.
func (e Encoding) Valid() bool { return encodings[e] }

// A Value is a document leaf in its written form: the literal
// text together with the encoding it was written in. Integers
// use EncInt with a decimal literal.
type Value struct {
	Encoding Encoding
	Literal  string
}

// Uint makes an integer Value.
func Uint(n uint64) Value {
	return Value{EncInt, new(big.Int).SetUint64(n).String()}
}

// Int makes an integer Value from n, which must not be negative.
func Int(n *big.Int) Value {
	return Value{EncInt, n.String()}
}

// Text makes a utf8 Value.
func Text(s string) Value {
	return Value{EncUTF8, s}
}

// Hex makes a hex Value with a 0x prefix.
func Hex(b []byte) Value {
	return Value{EncHex, "0x" + hex.EncodeToString(b)}
}

// Addr makes an address Value from a 32-byte key.
func Addr(key []byte) (Value, error) {
	s, err := address.Encode(key)
	if err != nil {
		return Value{}, errors.Sub(ErrDecode, err)
	}
	return Value{EncAddr, s}, nil
}

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.Encoding == EncInt }

func (v Value) String() string {
	if v.Encoding == EncInt || v.Encoding == EncUTF8 {
		return v.Literal
	}
	return string(v.Encoding) + ":" + v.Literal
}

// BigInt decodes an integer Value.
func (v Value) BigInt() (*big.Int, error) {
	if v.Encoding != EncInt {
		return nil, errors.WithDetailf(ErrDecode, "%s value %q is not an integer", v.Encoding, v.Literal)
	}
	n, ok := new(big.Int).SetString(v.Literal, 0)
	if !ok || n.Sign() < 0 {
		return nil, errors.WithDetailf(ErrDecode, "malformed integer literal %q", v.Literal)
	}
	return n, nil
}

// Bytes decodes a byte-string Value.
func (v Value) Bytes() ([]byte, error) {
	var (
		b   []byte
		err error
	)
	switch v.Encoding {
	case EncUTF8:
		return []byte(v.Literal), nil
	case EncHex:
		b, err = hex.DecodeString(strings.TrimPrefix(v.Literal, "0x"))
	case EncBase64:
		b, err = base64.StdEncoding.DecodeString(v.Literal)
	case EncBase32:
		b, err = decodeBase32(v.Literal)
	case EncAddr:
		b, err = address.Decode(v.Literal)
	case EncInt:
		return nil, errors.WithDetailf(ErrDecode, "integer value %q is not a byte string", v.Literal)
	default:
		return nil, errors.WithDetailf(ErrDecode, "unsupported encoding %q for literal %q", v.Encoding, v.Literal)
	}
	if err != nil {
		return nil, errors.WithDetailf(ErrDecode, "malformed %s literal %q", v.Encoding, v.Literal)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func decodeBase32(s string) ([]byte, error) {
	if strings.HasSuffix(s, "=") {
		return base32.StdEncoding.DecodeString(s)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
}

// Check reports whether v decodes under its encoding.
func (v Value) Check() error {
	if v.Encoding == EncInt {
		_, err := v.BigInt()
		return err
	}
	_, err := v.Bytes()
	return err
}

// Infer classifies a bare string leaf: a checksummed address is
// EncAddr, a 0x-prefixed hex string is EncHex, anything else is
// EncUTF8 text.
func Infer(s string) Value {
	if address.Valid(s) {
		return Value{EncAddr, s}
	}
	if len(s) > 2 && strings.HasPrefix(s, "0x") {
		if _, err := hex.DecodeString(s[2:]); err == nil {
			return Value{EncHex, s}
		}
	}
	return Value{EncUTF8, s}
}

// bare reports whether v can be written as a plain scalar that
// Infer (or the number decoder) reads back unchanged.
func (v Value) bare() bool {
	switch v.Encoding {
	case EncInt:
		n, err := v.BigInt()
		return err == nil && n.IsInt64() && n.String() == v.Literal
	case EncUTF8:
		return utf8.ValidString(v.Literal) && Infer(v.Literal) == v
	case EncHex, EncAddr:
		return Infer(v.Literal) == v
	}
	return false
}
