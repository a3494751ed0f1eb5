package factorial

import (
	"math/big"
	"testing"
)

// TestBigIntArithmeticMulDoesNotAlias verifies that Mul allocates a fresh
// value instead of mutating its operands. Workers share nothing, so aliasing
// would only surface as rare corruption under concurrency.
func TestBigIntArithmeticMulDoesNotAlias(t *testing.T) {
	t.Parallel()
	arith := BigIntArithmetic{}
	a := big.NewInt(6)
	b := big.NewInt(7)

	got := arith.Mul(a, b)
	if got.String() != "42" {
		t.Errorf("Mul(6, 7) = %s, want 42", got)
	}
	if a.String() != "6" || b.String() != "7" {
		t.Errorf("operands mutated: a=%s b=%s", a, b)
	}
	if got == a || got == b {
		t.Error("Mul returned an operand instead of a fresh value")
	}
}

// TestBigIntArithmeticFromUint64 covers the full uint64 range, including
// values beyond int64.
func TestBigIntArithmeticFromUint64(t *testing.T) {
	t.Parallel()
	arith := BigIntArithmetic{}

	if got := arith.FromUint64(0); got.Sign() != 0 {
		t.Errorf("FromUint64(0) = %s", got)
	}
	max := ^uint64(0)
	if got := arith.FromUint64(max); got.String() != "18446744073709551615" {
		t.Errorf("FromUint64(max) = %s", got)
	}
}

// TestUint64ArithmeticIdentity verifies identity and ordinary products for
// the native arithmetic.
func TestUint64ArithmeticIdentity(t *testing.T) {
	t.Parallel()
	arith := Uint64Arithmetic{}

	if got := arith.FromUint64(1); got != 1 {
		t.Errorf("FromUint64(1) = %d", got)
	}
	if got := arith.Mul(6, 7); got != 42 {
		t.Errorf("Mul(6, 7) = %d", got)
	}
}
