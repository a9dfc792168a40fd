/*
Package checked implements unsigned 64-bit arithmetic
with underflow and overflow checks.
*/
package checked

import (
	"errors"
	"math"
	"math/bits"
)

var ErrOverflow = errors.New("arithmetic overflow")

// AddUint64 returns a + b
// with an integer overflow check.
func AddUint64(a, b uint64) (sum uint64, ok bool) {
	if math.MaxUint64-a < b {
		return 0, false
	}
	return a + b, true
}

// SubUint64 returns a - b
// with an integer underflow check.
func SubUint64(a, b uint64) (diff uint64, ok bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}

// MulUint64 returns a * b
// with an integer overflow check.
func MulUint64(a, b uint64) (product uint64, ok bool) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, false
	}
	return lo, true
}

// DivUint64 returns a / b.
// It fails when b is zero.
func DivUint64(a, b uint64) (quotient uint64, ok bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

// ModUint64 returns a % b.
// It fails when b is zero.
func ModUint64(a, b uint64) (remainder uint64, ok bool) {
	if b == 0 {
		return 0, false
	}
	return a % b, true
}

// ExpUint64 returns a raised to the power b
// with an integer overflow check.
// 0**0 is undefined and fails.
func ExpUint64(a, b uint64) (power uint64, ok bool) {
	if a == 0 && b == 0 {
		return 0, false
	}
	power = 1
	for b > 0 {
		if b&1 == 1 {
			power, ok = MulUint64(power, a)
			if !ok {
				return 0, false
			}
		}
		b >>= 1
		if b > 0 {
			a, ok = MulUint64(a, a)
			if !ok {
				return 0, false
			}
		}
	}
	return power, true
}

// LshiftUint64 returns a << b
// with an integer overflow check.
func LshiftUint64(a, b uint64) (result uint64, ok bool) {
	if b >= 64 {
		return 0, false
	}
	if a > math.MaxUint64>>uint(b) {
		return 0, false
	}
	return a << uint(b), true
}

// SqrtUint64 returns the largest integer r with r*r <= a.
func SqrtUint64(a uint64) uint64 {
	r := uint64(math.Sqrt(float64(a)))
	// float64 rounding can be off by one near 2**64.
	for r > 0 && (r > math.MaxUint32 || r*r > a) {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= a {
		r++
	}
	return r
}
