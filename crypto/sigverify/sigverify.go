// Package sigverify checks signatures over caller-supplied digests
// for the curves the interpreter's crypto opcodes support.
//
// Malformed inputs (wrong lengths, unknown curves) are reported as
// errors. A well-formed signature that does not verify is not an
// error: the verify functions return false.
package sigverify

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
	"strconv"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/ed25519"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

var (
	ErrShape = errors.New("malformed signature input")
	ErrCurve = errors.New("unsupported curve")
)

// Curve identifies an ECDSA curve by its opcode immediate.
type Curve uint64

const (
	Secp256k1 Curve = 0
	Secp256r1 Curve = 1
)

func (c Curve) String() string {
	switch c {
	case Secp256k1:
		return "Secp256k1"
	case Secp256r1:
		return "Secp256r1"
	}
	return "Curve(" + strconv.FormatUint(uint64(c), 10) + ")"
}

// ParseCurve maps a curve name to its Curve.
func ParseCurve(name string) (Curve, bool) {
	switch name {
	case "Secp256k1":
		return Secp256k1, true
	case "Secp256r1":
		return Secp256r1, true
	}
	return 0, false
}

func (c Curve) params() (elliptic.Curve, error) {
	switch c {
	case Secp256k1:
		return btcec.S256(), nil
	case Secp256r1:
		return elliptic.P256(), nil
	}
	return nil, errors.WithDetailf(ErrCurve, "curve %d", uint64(c))
}

const scalarSize = 32

// Ed25519 reports whether sig is a valid signature of data by pub.
func Ed25519(data, sig, pub []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, errors.WithDetailf(ErrShape, "public key is %d bytes, want %d", len(pub), ed25519.PublicKeySize)
	}
	if len(sig) != ed25519.SignatureSize {
		return false, errors.WithDetailf(ErrShape, "signature is %d bytes, want %d", len(sig), ed25519.SignatureSize)
	}
	return ed25519.Verify(ed25519.PublicKey(pub), data, sig), nil
}

func scalar(name string, b []byte) (*big.Int, error) {
	if len(b) > scalarSize {
		return nil, errors.WithDetailf(ErrShape, "%s is %d bytes, want at most %d", name, len(b), scalarSize)
	}
	return new(big.Int).SetBytes(b), nil
}

// ECDSA reports whether (r, s) signs hash under the public key (x, y)
// on curve c.
func ECDSA(c Curve, hash, r, s, x, y []byte) (bool, error) {
	curve, err := c.params()
	if err != nil {
		return false, err
	}
	if len(hash) != scalarSize {
		return false, errors.WithDetailf(ErrShape, "digest is %d bytes, want %d", len(hash), scalarSize)
	}
	var ints [4]*big.Int
	for i, part := range [][]byte{r, s, x, y} {
		ints[i], err = scalar([]string{"r", "s", "x", "y"}[i], part)
		if err != nil {
			return false, err
		}
	}
	R, S, X, Y := ints[0], ints[1], ints[2], ints[3]
	if !curve.IsOnCurve(X, Y) {
		return false, nil
	}
	if R.Sign() == 0 || S.Sign() == 0 {
		return false, nil
	}

	if c == Secp256k1 {
		sig := btcec.Signature{R: R, S: S}
		return sig.Verify(hash, &btcec.PublicKey{Curve: btcec.S256(), X: X, Y: Y}), nil
	}
	return ecdsa.Verify(&ecdsa.PublicKey{Curve: curve, X: X, Y: Y}, hash, R, S), nil
}

// Decompress expands a 33-byte compressed public key on curve c
// into its 32-byte big-endian coordinates.
func Decompress(c Curve, pk []byte) (x, y []byte, err error) {
	if len(pk) != 33 {
		return nil, nil, errors.WithDetailf(ErrShape, "compressed key is %d bytes, want 33", len(pk))
	}
	var X, Y *big.Int
	switch c {
	case Secp256k1:
		pub, err := btcec.ParsePubKey(pk, btcec.S256())
		if err != nil {
			return nil, nil, errors.WithDetailf(ErrShape, "%v", err)
		}
		X, Y = pub.X, pub.Y
	case Secp256r1:
		X, Y = elliptic.UnmarshalCompressed(elliptic.P256(), pk)
		if X == nil {
			return nil, nil, errors.WithDetail(ErrShape, "not a compressed secp256r1 point")
		}
	default:
		_, err := c.params()
		return nil, nil, err
	}
	return pad(X), pad(Y), nil
}

// Recover returns the public key that produced the signature (r, s)
// over hash with recovery id recid. Only secp256k1 supports recovery.
func Recover(c Curve, hash []byte, recid uint64, r, s []byte) (x, y []byte, err error) {
	if c != Secp256k1 {
		return nil, nil, errors.WithDetailf(ErrCurve, "%s does not support key recovery", c)
	}
	if recid > 3 {
		return nil, nil, errors.WithDetailf(ErrShape, "recovery id %d, want 0..3", recid)
	}
	if len(hash) != scalarSize {
		return nil, nil, errors.WithDetailf(ErrShape, "digest is %d bytes, want %d", len(hash), scalarSize)
	}
	R, err := scalar("r", r)
	if err != nil {
		return nil, nil, err
	}
	S, err := scalar("s", s)
	if err != nil {
		return nil, nil, err
	}

	// compact form: header byte 27+recid, then r and s
	compact := make([]byte, 1, 1+2*scalarSize)
	compact[0] = byte(27 + recid)
	compact = append(compact, pad(R)...)
	compact = append(compact, pad(S)...)
	pub, _, err := btcec.RecoverCompact(btcec.S256(), compact, hash)
	if err != nil {
		return nil, nil, errors.WithDetailf(ErrShape, "%v", err)
	}
	return pad(pub.X), pad(pub.Y), nil
}

func pad(n *big.Int) []byte {
	b := make([]byte, scalarSize)
	return n.FillBytes(b)
}
