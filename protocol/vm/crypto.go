package vm

import (
	"context"
	"crypto/sha512"

	"github.com/btcsuite/fastsha256"
	"golang.org/x/crypto/sha3"

	"github.com/hashprotocol/AlgoTeal-interpreter/crypto/sigverify"
	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

func sha256Digest(b []byte) ([]byte, error) {
	h := fastsha256.Sum256(b)
	return h[:], nil
}

func keccak256Digest(b []byte) ([]byte, error) {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return h.Sum(nil), nil
}

func sha3Digest(b []byte) ([]byte, error) {
	h := sha3.Sum256(b)
	return h[:], nil
}

func sha512_256Digest(b []byte) ([]byte, error) {
	h := sha512.Sum512_256(b)
	return h[:], nil
}

// sigErr maps malformed signature input onto ErrRange.
func sigErr(err error) error {
	switch errors.Root(err) {
	case sigverify.ErrShape, sigverify.ErrCurve:
		return errors.Sub(ErrRange, err)
	}
	return err
}

func opEd25519verify(_ context.Context, cx *Context, _ *instruction) (Directive, error) {
	pub := cx.popBytes()
	sig := cx.popBytes()
	data := cx.popBytes()
	ok, err := sigverify.Ed25519(data, sig, pub)
	if err != nil {
		return advance, sigErr(err)
	}
	cx.pushBool(ok)
	return advance, nil
}

func opEcdsaVerify(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	y := cx.popBytes()
	x := cx.popBytes()
	s := cx.popBytes()
	r := cx.popBytes()
	data := cx.popBytes()
	ok, err := sigverify.ECDSA(in.curve, data, r, s, x, y)
	if err != nil {
		return advance, sigErr(err)
	}
	cx.pushBool(ok)
	return advance, nil
}

func opEcdsaPkDecompress(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	x, y, err := sigverify.Decompress(in.curve, cx.popBytes())
	if err != nil {
		return advance, sigErr(err)
	}
	cx.pushBytes(x)
	cx.pushBytes(y)
	return advance, nil
}

func opEcdsaPkRecover(_ context.Context, cx *Context, in *instruction) (Directive, error) {
	s := cx.popBytes()
	r := cx.popBytes()
	recid := cx.popInt()
	data := cx.popBytes()
	x, y, err := sigverify.Recover(in.curve, data, recid, r, s)
	if err != nil {
		return advance, sigErr(err)
	}
	cx.pushBytes(x)
	cx.pushBytes(y)
	return advance, nil
}
