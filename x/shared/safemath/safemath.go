// Package safemath provides overflow-checked arithmetic over the 256-bit
// integers used throughout the AMM engines. Every operation either returns
// an exact result or an error; nothing saturates or wraps.
package safemath

import (
	"errors"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

var (
	// ErrOverflow is returned when a result exceeds the 256-bit range.
	ErrOverflow = errors.New("safemath: overflow")
	// ErrUnderflow is returned when a subtraction would go negative.
	ErrUnderflow = errors.New("safemath: underflow")
	// ErrDivisionByZero is returned for any division with a zero divisor.
	ErrDivisionByZero = errors.New("safemath: division by zero")
)

// maxInt is the exclusive upper bound of math.Int (2^256).
var maxInt = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// Add adds two math.Int values with overflow checking.
func Add(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxInt) >= 0 {
		return math.Int{}, fmt.Errorf("%w: %s + %s", ErrOverflow, a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// Sub subtracts b from a with underflow checking.
func Sub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, fmt.Errorf("%w: %s - %s", ErrUnderflow, a, b)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// Mul multiplies two math.Int values with overflow checking.
func Mul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.Cmp(maxInt) >= 0 {
		return math.Int{}, fmt.Errorf("%w: %s * %s", ErrOverflow, a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// Quo divides a by b, truncating toward zero.
func Quo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, ErrDivisionByZero
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// MulDiv computes (a * b) / c without intermediate overflow into the
// result range. The full-width product is formed in big.Int, so only the
// final quotient is range-checked.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, ErrDivisionByZero
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := new(big.Int).Quo(intermediate, c.BigInt())
	if result.Cmp(maxInt) >= 0 {
		return math.Int{}, fmt.Errorf("%w: (%s * %s) / %s", ErrOverflow, a, b, c)
	}
	return math.NewIntFromBigInt(result), nil
}

// AddUint64 adds two uint64 values with overflow checking.
func AddUint64(a, b uint64) (uint64, error) {
	if a > (1<<64-1)-b {
		return 0, fmt.Errorf("%w: uint64 addition", ErrOverflow)
	}
	return a + b, nil
}

// SubUint64 subtracts b from a with underflow checking.
func SubUint64(a, b uint64) (uint64, error) {
	if a < b {
		return 0, fmt.Errorf("%w: uint64 subtraction", ErrUnderflow)
	}
	return a - b, nil
}

// MulUint64 multiplies two uint64 values with overflow checking.
func MulUint64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	result := a * b
	if result/a != b {
		return 0, fmt.Errorf("%w: uint64 multiplication", ErrOverflow)
	}
	return result, nil
}
