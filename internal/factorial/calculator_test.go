package factorial

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"
)

// TestCalculatorSmallFastPath verifies that values fitting in a uint64 are
// computed on the native fast path and still exact.
func TestCalculatorSmallFastPath(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&WindowedParallel{})

	testCases := []struct {
		n        uint64
		expected string
	}{
		{0, "1"},
		{1, "1"},
		{10, "3628800"},
		{MaxFactUint64, "2432902008176640000"},
	}

	for _, tc := range testCases {
		got, err := calc.Calculate(context.Background(), nil, 0, tc.n, Options{})
		if err != nil {
			t.Fatalf("Calculate(%d): %v", tc.n, err)
		}
		if got.String() != tc.expected {
			t.Errorf("Calculate(%d) = %s, want %s", tc.n, got, tc.expected)
		}
	}
}

// TestCalculatorLargeMatchesOracle verifies the decorated windowed strategy
// beyond the fast-path threshold.
func TestCalculatorLargeMatchesOracle(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&WindowedParallel{})

	const n = 500
	got, err := calc.Calculate(context.Background(), nil, 0, n, Options{Workers: 4, WindowSize: 16, WindowTimeout: noSweep})
	if err != nil {
		t.Fatalf("Calculate(%d): %v", n, err)
	}
	if want := bigProduct(1, n); got.Cmp(want) != 0 {
		t.Errorf("Calculate(%d) mismatch with oracle", n)
	}
}

// TestCalculatorCancellation verifies that an expired context aborts the
// calculation with the context error.
func TestCalculatorCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	calc := NewCalculator(&WindowedParallel{})
	_, err := calc.Calculate(ctx, nil, 0, 5_000_000, Options{WindowSize: 1000})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

// TestCalculatorReportsCompletion verifies that the progress adapter
// delivers the final update without blocking the calculation.
func TestCalculatorReportsCompletion(t *testing.T) {
	t.Parallel()
	progressChan := make(chan ProgressUpdate, 64)

	calc := NewCalculator(&SequentialRange{})
	if _, err := calc.Calculate(context.Background(), progressChan, 3, 100, Options{WindowSize: 10}); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	close(progressChan)

	var last ProgressUpdate
	count := 0
	for update := range progressChan {
		if update.CalculatorIndex != 3 {
			t.Errorf("CalculatorIndex = %d, want 3", update.CalculatorIndex)
		}
		last = update
		count++
	}
	if count == 0 {
		t.Fatal("no progress updates received")
	}
	if last.Value != 1.0 {
		t.Errorf("final progress = %f, want 1.0", last.Value)
	}
}

// TestCalculatorNilProgressChannel ensures a nil channel is tolerated.
func TestCalculatorNilProgressChannel(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(&SequentialRange{})
	got, err := calc.Calculate(context.Background(), nil, 0, 50, Options{WindowSize: 7})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if want := bigProduct(1, 50); got.Cmp(want) != 0 {
		t.Errorf("Calculate(50) = %s, want %s", got, want)
	}
}

// TestNewCalculatorPanicsOnNilCore documents the constructor contract.
func TestNewCalculatorPanicsOnNilCore(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("NewCalculator(nil) did not panic")
		}
	}()
	NewCalculator(nil)
}

// TestCalculatorNames pins the display names used in the comparison table.
func TestCalculatorNames(t *testing.T) {
	t.Parallel()
	if got := (&SequentialRange{}).Name(); got != "Sequential (Range Product)" {
		t.Errorf("SequentialRange.Name() = %q", got)
	}
	if got := (&WindowedParallel{}).Name(); got != "Windowed Parallel (Bounded Workers)" {
		t.Errorf("WindowedParallel.Name() = %q", got)
	}
	calc := NewCalculator(&WindowedParallel{})
	if calc.Name() != (&WindowedParallel{}).Name() {
		t.Error("decorator does not forward the core name")
	}
}

// TestSequentialRangeMatchesOracle checks the oracle strategy itself against
// a plain fold, for window sizes that do and do not divide n.
func TestSequentialRangeMatchesOracle(t *testing.T) {
	t.Parallel()
	seq := &SequentialRange{}
	for _, size := range []uint64{1, 7, 10, 64} {
		got, err := seq.CalculateCore(context.Background(), nil, 100, Options{WindowSize: size})
		if err != nil {
			t.Fatalf("CalculateCore(window=%d): %v", size, err)
		}
		if want := bigProduct(1, 100); got.Cmp(want) != 0 {
			t.Errorf("CalculateCore(window=%d) mismatch with oracle", size)
		}
	}
}

var benchResult *big.Int

// BenchmarkSequential and BenchmarkWindowed compare the two strategies on a
// mid-size target.
func BenchmarkSequential(b *testing.B) {
	seq := &SequentialRange{}
	for i := 0; i < b.N; i++ {
		benchResult, _ = seq.CalculateCore(context.Background(), nil, 50_000, Options{})
	}
}

func BenchmarkWindowed(b *testing.B) {
	win := &WindowedParallel{}
	for i := 0; i < b.N; i++ {
		benchResult, _ = win.CalculateCore(context.Background(), nil, 50_000, Options{WindowSize: 2000})
	}
}
