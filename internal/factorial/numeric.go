package factorial

import "math/big"

// Arithmetic is the minimal numeric capability the reduction engine requires:
// construction from an unsigned integer (which also supplies the identity, 1)
// and multiplication. Implementations must guarantee that Mul is associative
// with 1 as its identity, and that it never mutates its operands: partial
// products are handed between goroutines without synchronization and folded
// in arbitrary completion order.
type Arithmetic[T any] interface {
	// FromUint64 constructs a value of T from v.
	FromUint64(v uint64) T

	// Mul returns the product a*b without modifying a or b.
	Mul(a, b T) T
}

// Uint64Arithmetic implements Arithmetic over native uint64 values.
// Overflow wraps silently, as native multiplication does; selecting a type
// wide enough for the target range is the caller's responsibility
// (n ≤ MaxFactUint64 for factorials).
type Uint64Arithmetic struct{}

// FromUint64 returns v unchanged.
func (Uint64Arithmetic) FromUint64(v uint64) uint64 { return v }

// Mul returns a*b with wrapping semantics.
func (Uint64Arithmetic) Mul(a, b uint64) uint64 { return a * b }

// BigIntArithmetic implements Arithmetic over math/big integers.
// Mul allocates a fresh product so operands remain immutable once sent
// across a worker boundary.
type BigIntArithmetic struct{}

// FromUint64 returns a new big.Int holding v.
func (BigIntArithmetic) FromUint64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// Mul returns a new big.Int holding a*b.
func (BigIntArithmetic) Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}
