package factorial

import (
	"context"
	"math/big"
)

// WindowedParallel computes n! with the bounded-concurrency windowed
// reduction over math/big integers.
type WindowedParallel struct{}

// Name returns the name of the strategy.
func (c *WindowedParallel) Name() string {
	return "Windowed Parallel (Bounded Workers)"
}

// CalculateCore delegates to a Reducer configured from opts.
func (c *WindowedParallel) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (*big.Int, error) {
	return NewReducer[*big.Int](BigIntArithmetic{}, opts).Reduce(ctx, n, reporter)
}
