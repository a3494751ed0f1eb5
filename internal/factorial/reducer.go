package factorial

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var (
	windowsRedispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factorial_windows_redispatched_total",
			Help: "The total number of stalled windows re-dispatched to a replacement worker",
		},
	)
	strayResultsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "factorial_stray_results_discarded_total",
			Help: "The total number of window results discarded because their window was no longer in flight",
		},
	)
)

// WindowError reports a window whose workers exhausted the retry budget.
type WindowError struct {
	// Start and End delimit the inclusive multiplication range of the window.
	Start, End uint64
	// Attempts is the number of dispatches performed for the window.
	Attempts int
}

// Error returns a formatted message describing the failed window.
func (e *WindowError) Error() string {
	return fmt.Sprintf("window [%d, %d] timed out after %d attempts", e.Start, e.End, e.Attempts)
}

// completion is the payload a worker sends when its window product is ready.
// It is immutable once sent; ownership transfers to the reduction loop.
type completion[T any] struct {
	product T
	start   uint64
}

// window tracks one dispatched-but-not-folded unit of work.
type window struct {
	end      uint64
	attempts int
	issuedAt time.Time
}

// Reducer folds the product of [1, n] by splitting the range into consecutive
// fixed-size windows and keeping at most Options.Workers windows in flight.
// Each window is computed by an independent worker goroutine via RangeProduct
// and reported on a single completion channel; the reduction loop folds each
// result into the accumulator exactly once, in whatever order workers finish.
// Fold order is immaterial because Arithmetic.Mul is associative and 1 is its
// identity.
//
// The in-flight set and the accumulator are owned exclusively by the goroutine
// running Reduce; workers are pure functions over their window bounds and never
// touch shared state, so no locking is involved.
type Reducer[T any] struct {
	arith Arithmetic[T]
	opts  Options

	// Test hooks; nil outside of white-box tests.
	onDispatch   func(inFlight int)
	onRedispatch func(start uint64, attempt int)
}

// NewReducer creates a reducer over the given arithmetic with normalized
// options.
func NewReducer[T any](arith Arithmetic[T], opts Options) *Reducer[T] {
	return &Reducer[T]{arith: arith, opts: normalizeOptions(opts)}
}

// Reduce computes the product of [1, n]. The reporter, when non-nil, receives
// the fraction of folded windows after each fold.
//
// The loop alternates a dispatch phase (issue windows in ascending start
// order while capacity remains) and a collect phase (block for one completion,
// a stale-window sweep tick, or cancellation). It terminates when every
// window has been issued and folded. Cancellation of ctx aborts the reduction
// with ctx.Err(); a window exceeding its retry budget aborts it with a
// *WindowError.
func (r *Reducer[T]) Reduce(ctx context.Context, n uint64, reporter ProgressReporter) (T, error) {
	var zero T
	if r.opts.Workers < 1 {
		return zero, fmt.Errorf("factorial: workers must be at least 1, got %d", r.opts.Workers)
	}

	s := &reduction[T]{
		r:         r,
		n:         n,
		nextStart: 1,
		inFlight:  make(map[uint64]*window, r.opts.Workers),
		acc:       r.arith.FromUint64(1),
		total:     totalWindows(n, r.opts.WindowSize),
		reporter:  reporter,
		// Capacity covers every attempt that can be outstanding at once, so a
		// superseded worker finishing after Reduce returns never blocks.
		results: make(chan completion[T], r.opts.Workers*r.opts.MaxAttempts),
	}

	// A nil sweep channel blocks forever, turning the timeout arm off when
	// re-dispatch is disabled.
	var sweep <-chan time.Time
	if r.opts.WindowTimeout > 0 {
		interval := r.opts.WindowTimeout / 2
		if interval <= 0 {
			interval = r.opts.WindowTimeout
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		sweep = ticker.C
	}

	for s.nextStart <= n || len(s.inFlight) > 0 {
		s.dispatch(ctx)

		select {
		case res := <-s.results:
			s.fold(res)
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-sweep:
			if err := s.redispatchStale(ctx); err != nil {
				return zero, err
			}
		}
	}

	// n = 0 or 1 issues no windows at all; report completion regardless.
	if reporter != nil {
		reporter(1.0)
	}
	return s.acc, nil
}

// reduction is the per-call state machine of one Reduce invocation:
// (nextStart, inFlight, acc), plus the completion channel linking workers to
// the fold.
type reduction[T any] struct {
	r         *Reducer[T]
	n         uint64
	nextStart uint64
	inFlight  map[uint64]*window
	acc       T
	folded    uint64
	total     uint64
	results   chan completion[T]
	reporter  ProgressReporter
}

// dispatch issues windows in ascending start order until the target is
// exhausted or the worker bound is reached.
func (s *reduction[T]) dispatch(ctx context.Context) {
	for s.nextStart <= s.n && len(s.inFlight) < s.r.opts.Workers {
		start := s.nextStart
		end := windowEnd(start, s.r.opts.WindowSize, s.n)
		s.launch(ctx, start, end)
		s.inFlight[start] = &window{end: end, attempts: 1, issuedAt: time.Now()}
		s.nextStart = end + 1
		if s.r.onDispatch != nil {
			s.r.onDispatch(len(s.inFlight))
		}
	}
}

// launch spawns one worker computing the product of [start, end]. The send is
// guarded by ctx so an abandoned worker cannot block once the reduction has
// been cancelled.
func (s *reduction[T]) launch(ctx context.Context, start, end uint64) {
	go func() {
		product := RangeProduct(s.r.arith, start, end)
		select {
		case s.results <- completion[T]{product: product, start: start}:
		case <-ctx.Done():
		}
	}()
}

// fold incorporates one completed window product into the accumulator.
// A result whose start offset is no longer in flight (a duplicate delivery,
// or a superseded attempt finishing after its replacement) is discarded, so
// every window is folded exactly once. Returns whether the result was folded.
func (s *reduction[T]) fold(res completion[T]) bool {
	if _, ok := s.inFlight[res.start]; !ok {
		strayResultsDiscarded.Inc()
		log.Debug().Uint64("start", res.start).Msg("discarding stray window result")
		return false
	}
	delete(s.inFlight, res.start)
	s.acc = s.r.arith.Mul(s.acc, res.product)
	s.folded++
	if s.reporter != nil && s.total > 0 {
		s.reporter(float64(s.folded) / float64(s.total))
	}
	return true
}

// redispatchStale re-issues every in-flight window older than the window
// timeout. The original worker is left to finish or be abandoned; whichever
// attempt reports first wins and the rest are discarded by fold. A window
// that exhausts its attempt budget fails the reduction.
func (s *reduction[T]) redispatchStale(ctx context.Context) error {
	now := time.Now()
	for start, w := range s.inFlight {
		if now.Sub(w.issuedAt) < s.r.opts.WindowTimeout {
			continue
		}
		if w.attempts >= s.r.opts.MaxAttempts {
			return &WindowError{Start: start, End: w.end, Attempts: w.attempts}
		}
		w.attempts++
		w.issuedAt = now
		s.launch(ctx, start, w.end)
		windowsRedispatched.Inc()
		log.Warn().
			Uint64("start", start).
			Uint64("end", w.end).
			Int("attempt", w.attempts).
			Msg("window stalled, dispatching replacement worker")
		if s.r.onRedispatch != nil {
			s.r.onRedispatch(start, w.attempts)
		}
	}
	return nil
}

// windowEnd returns the inclusive end of the window beginning at start,
// truncated to n. The overflow check keeps start+size-1 from wrapping for
// targets near the top of the uint64 range.
func windowEnd(start, size, n uint64) uint64 {
	end := start + size - 1
	if end < start || end > n {
		return n
	}
	return end
}

// totalWindows returns the number of windows [1, n] splits into.
func totalWindows(n, size uint64) uint64 {
	if n == 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ParallelFactorial computes n! with the windowed reduction, using default
// options except for the worker bound.
func ParallelFactorial[T any](ctx context.Context, arith Arithmetic[T], n uint64, workers int) (T, error) {
	return NewReducer(arith, Options{Workers: workers}).Reduce(ctx, n, nil)
}
