package factorial

import (
	"context"
	"math/big"
)

// SequentialRange computes n! as a single ascending range product on the
// calling goroutine. It is both the baseline for benchmarking the windowed
// strategy and the reference oracle used by the comparison mode.
type SequentialRange struct{}

// Name returns the name of the strategy.
func (c *SequentialRange) Name() string {
	return "Sequential (Range Product)"
}

// CalculateCore folds [1, n] in ascending order, one window at a time.
// Chunking by window keeps the cancellation check and progress reporting off
// the per-element hot path while preserving the exact semantics of
// RangeProduct(1, n).
func (c *SequentialRange) CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (*big.Int, error) {
	opts = normalizeOptions(opts)
	arith := BigIntArithmetic{}

	acc := arith.FromUint64(1)
	total := totalWindows(n, opts.WindowSize)
	var done uint64
	for start := uint64(1); start <= n; {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		end := windowEnd(start, opts.WindowSize, n)
		acc = arith.Mul(acc, RangeProduct[*big.Int](arith, start, end))
		done++
		if reporter != nil && total > 0 {
			reporter(float64(done) / float64(total))
		}
		start = end + 1
	}
	return acc, nil
}
