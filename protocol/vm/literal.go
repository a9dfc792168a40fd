package vm

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/hashprotocol/AlgoTeal-interpreter/encoding/address"
	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// namedInts are the symbolic constants accepted by int.
var namedInts = map[string]uint64{
	"unknown": 0,
	"pay":     1,
	"keyreg":  2,
	"acfg":    3,
	"axfer":   4,
	"afrz":    5,
	"appl":    6,

	"NoOp":              0,
	"OptIn":             1,
	"CloseOut":          2,
	"ClearState":        3,
	"UpdateApplication": 4,
	"DeleteApplication": 5,
}

// txnTypes maps a transaction Type string to its TypeEnum.
var txnTypes = map[string]uint64{
	"pay": 1, "keyreg": 2, "acfg": 3, "axfer": 4, "afrz": 5, "appl": 6,
}

// parseUint reads a decimal, 0x hex or 0-prefixed octal integer.
func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errors.WithDetailf(ErrDecode, "malformed integer literal %q", s)
	}
	return n, nil
}

// parseIntConst is parseUint plus the named constants.
func parseIntConst(s string) (uint64, error) {
	if n, ok := namedInts[s]; ok {
		return n, nil
	}
	return parseUint(s)
}

var (
	b32  = base32.StdEncoding.WithPadding(base32.NoPadding)
	b32p = base32.StdEncoding
)

// parseBytes decodes one byte-string literal from the front of
// operands and reports how many operands it used. Accepted forms:
//
//	0x0102         "text\n"
//	base64 AQI=    b64 AQI=    base64(AQI=)    b64(AQI=)
//	base32 AEBA    b32 AEBA    base32(AEBA)    b32(AEBA)
func parseBytes(operands []string) ([]byte, int, error) {
	if len(operands) == 0 {
		return nil, 0, errors.WithDetail(ErrOperand, "missing byte literal")
	}
	s := operands[0]
	switch {
	case strings.HasPrefix(s, "0x"):
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, 0, errors.WithDetailf(ErrDecode, "malformed hex literal %q", s)
		}
		return b, 1, nil
	case strings.HasPrefix(s, `"`):
		text, err := strconv.Unquote(s)
		if err != nil {
			return nil, 0, errors.WithDetailf(ErrDecode, "malformed string literal %s", s)
		}
		return []byte(text), 1, nil
	}

	enc, lit, used := s, "", 1
	if i := strings.IndexByte(s, '('); i > 0 && strings.HasSuffix(s, ")") {
		enc, lit = s[:i], s[i+1:len(s)-1]
	} else if len(operands) > 1 {
		lit, used = operands[1], 2
	} else {
		return nil, 0, errors.WithDetailf(ErrDecode, "unrecognized byte literal %q", s)
	}

	var (
		b   []byte
		err error
	)
	switch enc {
	case "base64", "b64":
		b, err = base64.StdEncoding.DecodeString(lit)
	case "base32", "b32":
		if strings.HasSuffix(lit, "=") {
			b, err = b32p.DecodeString(lit)
		} else {
			b, err = b32.DecodeString(lit)
		}
	default:
		return nil, 0, errors.WithDetailf(ErrDecode, "unsupported encoding %q for literal %q", enc, lit)
	}
	if err != nil {
		return nil, 0, errors.WithDetailf(ErrDecode, "malformed %s literal %q", enc, lit)
	}
	if b == nil {
		b = []byte{}
	}
	return b, used, nil
}

// parseAddr decodes an account address literal.
func parseAddr(s string) ([]byte, error) {
	b, err := address.Decode(s)
	if err != nil {
		return nil, errors.Sub(ErrDecode, err)
	}
	return b, nil
}
