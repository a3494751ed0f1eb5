// Package factorial computes factorials of large integers, either on a
// single goroutine or by splitting the multiplication range into fixed-size
// windows distributed across a bounded set of concurrent workers.
//
// The package exposes a `Calculator` interface that abstracts the execution
// strategy, allowing the sequential and windowed-parallel implementations to
// be used interchangeably. The underlying reduction engine is generic over
// any numeric type satisfying the Arithmetic capability, so the same code
// drives math/big, fixed-width integers and (with the gmp build tag) GMP.
package factorial
