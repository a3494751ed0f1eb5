package factorial

// RangeProduct returns the inclusive product of all integers in [from, to],
// seeded with the identity. When from > to the range is empty and the
// identity (1) is returned, which covers the factorial of 0 and 1.
//
// The fold proceeds in ascending numeric order. The function is pure and
// touches no shared state, so independent workers may call it concurrently.
func RangeProduct[T any](arith Arithmetic[T], from, to uint64) T {
	acc := arith.FromUint64(1)
	for v := from; v <= to; v++ {
		acc = arith.Mul(acc, arith.FromUint64(v))
	}
	return acc
}

// Factorial computes n! on the calling goroutine via a single range product.
// It serves both as the baseline implementation and as the reference oracle
// for the concurrent path.
func Factorial[T any](arith Arithmetic[T], n uint64) T {
	return RangeProduct(arith, 1, n)
}
