// Package address converts between raw 32-byte account keys and
// their printable checksummed form.
//
// The printable form is the base32 encoding (no padding) of the key
// followed by the last four bytes of its SHA-512/256 digest.
package address

import (
	"bytes"
	"crypto/sha512"
	"encoding/base32"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

const (
	// KeySize is the length of a raw account key.
	KeySize = 32

	checksumSize = 4

	// Len is the length of the printable form.
	Len = 58
)

var (
	ErrLength   = errors.New("bad address length")
	ErrChecksum = errors.New("bad address checksum")
	ErrEncoding = errors.New("bad address encoding")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Zero is the printable form of the all-zero key.
var Zero = MustEncode(make([]byte, KeySize))

func checksum(key []byte) []byte {
	sum := sha512.Sum512_256(key)
	return sum[len(sum)-checksumSize:]
}

// Encode returns the printable form of the 32-byte key.
func Encode(key []byte) (string, error) {
	if len(key) != KeySize {
		return "", errors.WithDetailf(ErrLength, "key is %d bytes, want %d", len(key), KeySize)
	}
	buf := make([]byte, 0, KeySize+checksumSize)
	buf = append(buf, key...)
	buf = append(buf, checksum(key)...)
	return encoding.EncodeToString(buf), nil
}

// MustEncode is like Encode but panics on a key of the wrong size.
func MustEncode(key []byte) string {
	s, err := Encode(key)
	if err != nil {
		panic(err)
	}
	return s
}

// Decode parses a printable address and returns its raw key.
func Decode(s string) ([]byte, error) {
	if len(s) != Len {
		return nil, errors.WithDetailf(ErrLength, "address %q is %d characters, want %d", s, len(s), Len)
	}
	b, err := encoding.DecodeString(s)
	if err != nil {
		return nil, errors.WithDetailf(ErrEncoding, "address %q: %v", s, err)
	}
	key, sum := b[:KeySize], b[KeySize:]
	if !bytes.Equal(sum, checksum(key)) {
		return nil, errors.WithDetailf(ErrChecksum, "address %q", s)
	}
	return key, nil
}

// Valid reports whether s is a well-formed address.
func Valid(s string) bool {
	_, err := Decode(s)
	return err == nil
}
