package factorial

import (
	"context"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factorial_calculations_total",
			Help: "The total number of factorial calculations processed",
		},
		[]string{"algorithm", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "factorial_calculation_duration_seconds",
			Help: "The duration of factorial calculations in seconds",
		},
		[]string{"algorithm"},
	)
)

// Calculator defines the public interface for a factorial calculator.
// It is the primary abstraction used by the application's orchestration layer
// to interact with the different execution strategies.
type Calculator interface {
	// Calculate executes the calculation of n!. It is designed for safe
	// concurrent execution and supports cancellation through the provided
	// context. Progress updates are sent asynchronously to progressChan.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - progressChan: The channel for sending progress updates (may be nil).
	//   - calcIndex: A unique index for the calculator instance.
	//   - n: The number whose factorial to calculate.
	//   - opts: Configuration options for the calculation.
	//
	// Returns:
	//   - *big.Int: The calculated factorial.
	//   - error: An error if one occurred (e.g., context cancellation).
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error)

	// Name returns the display name of the execution strategy.
	Name() string
}

// coreCalculator defines the internal interface for a pure calculation
// strategy.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressReporter, n uint64, opts Options) (*big.Int, error)
	Name() string
}

// FactCalculator implements Calculator by wrapping a coreCalculator with
// cross-cutting concerns: the native-integer fast path for small n, progress
// channel adaptation, metrics and tracing.
type FactCalculator struct {
	core coreCalculator
}

// NewCalculator constructs a FactCalculator around the given core strategy.
// It panics if core is nil.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("factorial: the `coreCalculator` implementation cannot be nil")
	}
	return &FactCalculator{core: core}
}

// Name returns the name of the encapsulated core strategy.
func (c *FactCalculator) Name() string {
	return c.core.Name()
}

// Calculate orchestrates the calculation process.
// Small values of n (≤ MaxFactUint64) are computed with native integer
// multiplication, skipping the full machinery. For larger values the
// progressChan is adapted into a ProgressReporter callback and the core
// strategy does the work. Progress sends never block: a slow consumer drops
// samples rather than stalling the calculation.
func (c *FactCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (result *big.Int, err error) {
	tracer := otel.Tracer("factorial")
	ctx, span := tracer.Start(ctx, "Calculate")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		algoName := c.core.Name()
		calculationsTotal.WithLabelValues(algoName, status).Inc()
		calculationDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Uint64("n", n).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	reporter := func(float64) {}
	if progressChan != nil {
		reporter = func(pct float64) {
			select {
			case progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: pct}:
			default:
			}
		}
	}

	if n <= MaxFactUint64 {
		reporter(1.0)
		return calculateSmall(n), nil
	}

	result, err = c.core.CalculateCore(ctx, reporter, n, opts)
	if err == nil && result != nil {
		reporter(1.0)
	}
	return result, err
}

// calculateSmall returns n! for n ≤ MaxFactUint64 using native uint64
// products.
func calculateSmall(n uint64) *big.Int {
	acc := uint64(1)
	for v := uint64(2); v <= n; v++ {
		acc *= v
	}
	return new(big.Int).SetUint64(acc)
}
