package vm

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/ed25519"
)

func pushHex(b []byte) string { return "byte 0x" + hex.EncodeToString(b) }

func word(n *big.Int) []byte { return n.FillBytes(make([]byte, 32)) }

func TestDigests(t *testing.T) {
	runCases(t, []runCase{
		{src: program(`byte ""`, "sha256"), wantStack: []Value{hexValue("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")}},
		{src: program(`byte ""`, "sha3_256"), wantStack: []Value{hexValue("a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a")}},
		{src: program(`byte ""`, "sha512_256"), wantStack: []Value{hexValue("c672b8d1ef56ed28ab87c3622c5114069bdd3ad7b8f9737498d0c01ecef0967a")}},
		{src: program(`byte ""`, "keccak256"), wantStack: []Value{hexValue("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")}},
		{src: program("int 1", "sha256"), wantErr: ErrType},
		{src: program("#pragma version 6", `byte ""`, "sha3_256"), wantErr: ErrVersion},
	})
}

func TestEd25519Verify(t *testing.T) {
	priv := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
	pub := priv.Public().(ed25519.PublicKey)
	data := []byte("approve")
	sig := ed25519.Sign(priv, data)

	runCases(t, []runCase{
		{src: program(pushHex(data), pushHex(sig), pushHex(pub), "ed25519verify"), wantStack: ints(1)},
		{src: program(`byte "reject"`, pushHex(sig), pushHex(pub), "ed25519verify"), wantStack: ints(0)},
		{src: program(pushHex(data), pushHex(sig[:12]), pushHex(pub), "ed25519verify"), wantErr: ErrRange},
	})
}

func TestECDSAOps(t *testing.T) {
	// fixed key so the program text is stable across runs
	priv, pub := btcec.PrivKeyFromBytes(btcec.S256(), []byte("a fixed secp256k1 private key!!!"))
	hash := sha256.Sum256([]byte("approve"))
	sig, err := priv.Sign(hash[:])
	if err != nil {
		t.Fatal(err)
	}
	compact, err := btcec.SignCompact(btcec.S256(), priv, hash[:], false)
	if err != nil {
		t.Fatal(err)
	}
	x, y := word(pub.X), word(pub.Y)

	verify := func(digest []byte) string {
		return program(pushHex(digest), pushHex(word(sig.R)), pushHex(word(sig.S)), pushHex(x), pushHex(y), "ecdsa_verify Secp256k1")
	}
	other := sha256.Sum256([]byte("reject"))
	runCases(t, []runCase{
		{src: verify(hash[:]), wantStack: ints(1)},
		{src: verify(other[:]), wantStack: ints(0)},
		{src: verify(hash[:4]), wantErr: ErrRange},
		{src: program(pushHex(pub.SerializeCompressed()), "ecdsa_pk_decompress 0"), wantStack: []Value{NewBytes(x), NewBytes(y)}},
		{src: program(pushHex(x), "ecdsa_pk_decompress Secp256k1"), wantErr: ErrRange},
		{
			src:       program(pushHex(hash[:]), "int "+big.NewInt(int64(compact[0]-27)).String(), pushHex(compact[1:33]), pushHex(compact[33:]), "ecdsa_pk_recover Secp256k1"),
			wantStack: []Value{NewBytes(x), NewBytes(y)},
		},
		{src: program(pushHex(hash[:]), "int 0", pushHex(x), pushHex(y), "ecdsa_pk_recover Secp256r1"), wantErr: ErrRange},
		{src: program(pushHex(hash[:]), "ecdsa_pk_decompress P384"), wantErr: ErrOperand},
	})
}
