//go:build gmp

// This file provides GMP-backed arithmetic, conditionally compiled with the
// "gmp" build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: Requires MinGW or WSL with libgmp

package factorial

import (
	"math"
	"math/big"

	"github.com/ncw/gmp"
)

// GMPArithmetic implements Arithmetic over GMP integers. It leverages GMP's
// assembly-optimized multiplication routines, which outperform math/big for
// very large operands at the cost of CGO call overhead per operation.
type GMPArithmetic struct{}

// FromUint64 returns a new gmp.Int holding v.
func (GMPArithmetic) FromUint64(v uint64) *gmp.Int {
	if v <= math.MaxInt64 {
		return gmp.NewInt(int64(v))
	}
	return new(gmp.Int).SetBytes(new(big.Int).SetUint64(v).Bytes())
}

// Mul returns a new gmp.Int holding a*b.
func (GMPArithmetic) Mul(a, b *gmp.Int) *gmp.Int {
	return new(gmp.Int).Mul(a, b)
}

// gmpToStdBigInt converts a gmp.Int to a standard library big.Int.
func gmpToStdBigInt(g *gmp.Int) *big.Int {
	return new(big.Int).SetBytes(g.Bytes())
}
