package orchestration

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"
	"time"

	apperrors "github.com/agbru/bigfact/internal/errors"
	"github.com/agbru/bigfact/internal/factorial"
)

// MockCalculator is a mock implementation of factorial.Calculator used for
// testing the orchestration logic without invoking real strategies.
type MockCalculator struct {
	NameFunc      func() string
	CalculateFunc func(ctx context.Context, reporter factorial.ProgressReporter, index int, n uint64, opts factorial.Options) (*big.Int, error)
}

// Name returns the mocked name of the calculator.
func (m *MockCalculator) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "Mock"
}

// Calculate invokes the mocked CalculateFunc.
func (m *MockCalculator) Calculate(ctx context.Context, progressChan chan<- factorial.ProgressUpdate, index int, n uint64, opts factorial.Options) (*big.Int, error) {
	if m.CalculateFunc != nil {
		// Create a dummy reporter that sends to the channel
		reporter := func(progress float64) {
			if progressChan != nil {
				progressChan <- factorial.ProgressUpdate{CalculatorIndex: index, Value: progress}
			}
		}
		return m.CalculateFunc(ctx, reporter, index, n, opts)
	}
	return big.NewInt(0), nil
}

// mockPresenter records presentation calls for assertions.
type mockPresenter struct {
	tablePresented  bool
	resultPresented bool
	presentedResult CalculationResult
}

func (m *mockPresenter) PresentComparisonTable(results []CalculationResult, out io.Writer) {
	m.tablePresented = true
}

func (m *mockPresenter) PresentResult(result CalculationResult, n uint64, verbose, details, showValue bool, out io.Writer) {
	m.resultPresented = true
	m.presentedResult = result
}

// mockErrorHandler maps every error to a fixed exit code.
type mockErrorHandler struct {
	exitCode int
	lastErr  error
}

func (m *mockErrorHandler) HandleError(err error, duration time.Duration, out io.Writer) int {
	m.lastErr = err
	return m.exitCode
}

// TestExecuteCalculations verifies that the orchestrator runs every
// calculator and aggregates the results.
func TestExecuteCalculations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		calculators []factorial.Calculator
		expectError bool
	}{
		{
			name: "Single success",
			calculators: []factorial.Calculator{
				&MockCalculator{
					CalculateFunc: func(ctx context.Context, reporter factorial.ProgressReporter, index int, n uint64, opts factorial.Options) (*big.Int, error) {
						reporter(1.0)
						return big.NewInt(120), nil
					},
				},
			},
		},
		{
			name: "Single failure",
			calculators: []factorial.Calculator{
				&MockCalculator{
					CalculateFunc: func(ctx context.Context, reporter factorial.ProgressReporter, index int, n uint64, opts factorial.Options) (*big.Int, error) {
						return nil, errors.New("mock error")
					},
				},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteCalculations(context.Background(), tt.calculators, 5, factorial.Options{}, NullProgressReporter{}, io.Discard)
			if len(results) != len(tt.calculators) {
				t.Fatalf("expected %d results, got %d", len(tt.calculators), len(results))
			}
			if tt.expectError && results[0].Err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && results[0].Err != nil {
				t.Errorf("unexpected error: %v", results[0].Err)
			}
		})
	}
}

// TestExecuteCalculationsRunsAllConcurrently verifies that every calculator
// observes the same input and reports its own name.
func TestExecuteCalculationsRunsAllConcurrently(t *testing.T) {
	t.Parallel()
	mk := func(name string, value int64) factorial.Calculator {
		return &MockCalculator{
			NameFunc: func() string { return name },
			CalculateFunc: func(ctx context.Context, reporter factorial.ProgressReporter, index int, n uint64, opts factorial.Options) (*big.Int, error) {
				return big.NewInt(value), nil
			},
		}
	}
	calculators := []factorial.Calculator{mk("A", 1), mk("B", 2)}

	results := ExecuteCalculations(context.Background(), calculators, 5, factorial.Options{}, NullProgressReporter{}, io.Discard)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Results keep the dispatch order regardless of completion order.
	if results[0].Name != "A" || results[1].Name != "B" {
		t.Errorf("result order = %q, %q", results[0].Name, results[1].Name)
	}
}

// TestAnalyzeComparisonResultsSuccess verifies the happy path: consistent
// results yield exit code 0 and the fastest result is presented.
func TestAnalyzeComparisonResultsSuccess(t *testing.T) {
	t.Parallel()
	results := []CalculationResult{
		{Name: "slow", Result: big.NewInt(120), Duration: 20 * time.Millisecond},
		{Name: "fast", Result: big.NewInt(120), Duration: 5 * time.Millisecond},
	}

	presenter := &mockPresenter{}
	handler := &mockErrorHandler{exitCode: apperrors.ExitErrorGeneric}

	code := AnalyzeComparisonResults(results, PresentationOptions{N: 5}, presenter, handler, io.Discard)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !presenter.tablePresented {
		t.Error("comparison table was not presented")
	}
	if !presenter.resultPresented {
		t.Error("result was not presented")
	}
	if presenter.presentedResult.Name != "fast" {
		t.Errorf("presented result = %q, want the fastest", presenter.presentedResult.Name)
	}
}

// TestAnalyzeComparisonResultsMismatch verifies that disagreeing strategies
// produce the mismatch exit code without presenting a result.
func TestAnalyzeComparisonResultsMismatch(t *testing.T) {
	t.Parallel()
	results := []CalculationResult{
		{Name: "a", Result: big.NewInt(120), Duration: time.Millisecond},
		{Name: "b", Result: big.NewInt(121), Duration: time.Millisecond},
	}

	presenter := &mockPresenter{}
	handler := &mockErrorHandler{exitCode: apperrors.ExitErrorGeneric}

	code := AnalyzeComparisonResults(results, PresentationOptions{N: 5}, presenter, handler, io.Discard)
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if presenter.resultPresented {
		t.Error("a result was presented despite the mismatch")
	}
}

// TestAnalyzeComparisonResultsAllFailed verifies that total failure defers to
// the error handler with the first error.
func TestAnalyzeComparisonResultsAllFailed(t *testing.T) {
	t.Parallel()
	failure := errors.New("boom")
	results := []CalculationResult{
		{Name: "a", Err: failure},
		{Name: "b", Err: errors.New("late boom")},
	}

	presenter := &mockPresenter{}
	handler := &mockErrorHandler{exitCode: apperrors.ExitErrorTimeout}

	code := AnalyzeComparisonResults(results, PresentationOptions{N: 5}, presenter, handler, io.Discard)
	if code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want the handler's code %d", code, apperrors.ExitErrorTimeout)
	}
	if handler.lastErr == nil {
		t.Error("handler did not receive an error")
	}
}

// TestAnalyzeComparisonResultsPartialFailure verifies that one failed
// strategy does not mask a successful one.
func TestAnalyzeComparisonResultsPartialFailure(t *testing.T) {
	t.Parallel()
	results := []CalculationResult{
		{Name: "broken", Err: errors.New("boom")},
		{Name: "ok", Result: big.NewInt(3628800), Duration: time.Millisecond},
	}

	presenter := &mockPresenter{}
	handler := &mockErrorHandler{exitCode: apperrors.ExitErrorGeneric}

	code := AnalyzeComparisonResults(results, PresentationOptions{N: 10}, presenter, handler, io.Discard)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if presenter.presentedResult.Name != "ok" {
		t.Errorf("presented result = %q, want %q", presenter.presentedResult.Name, "ok")
	}
}

// TestNullProgressReporterDrains ensures the no-op reporter consumes the
// channel so producers never block.
func TestNullProgressReporterDrains(t *testing.T) {
	t.Parallel()
	mock := &MockCalculator{
		CalculateFunc: func(ctx context.Context, reporter factorial.ProgressReporter, index int, n uint64, opts factorial.Options) (*big.Int, error) {
			for i := 0; i < 100; i++ {
				reporter(float64(i) / 100)
			}
			return big.NewInt(1), nil
		},
	}

	done := make(chan struct{})
	go func() {
		ExecuteCalculations(context.Background(), []factorial.Calculator{mock}, 1, factorial.Options{}, NullProgressReporter{}, io.Discard)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("orchestration blocked on progress channel")
	}
}
