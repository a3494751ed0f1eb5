//go:build gmp

package factorial

import (
	"context"
	"math/big"
)

func init() {
	RegisterCalculator("gmp", func() coreCalculator { return &GMPWindowed{} })
}

// GMPWindowed runs the windowed reduction over GMP integers. It requires the
// 'gmp' build tag and the libgmp library installed on the system. The GMP
// path pays a CGO call per multiplication, so it only wins for very large n
// where operand sizes dominate.
type GMPWindowed struct{}

// Name returns the name of the strategy.
func (c *GMPWindowed) Name() string {
	return "GMP (Windowed Parallel)"
}

// CalculateCore runs the reduction on gmp.Int values and converts the final
// accumulator to a standard big.Int for presentation.
func (c *GMPWindowed) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (*big.Int, error) {
	result, err := NewReducer(GMPArithmetic{}, opts).Reduce(ctx, n, reporter)
	if err != nil {
		return nil, err
	}
	return gmpToStdBigInt(result), nil
}
