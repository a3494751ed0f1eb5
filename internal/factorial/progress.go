package factorial

// ProgressReporter receives the completed fraction of a calculation,
// in the range [0.0, 1.0]. Implementations must be cheap: reporters are
// invoked from the hot path of the reduction loop.
type ProgressReporter func(pct float64)

// ProgressUpdate carries one progress sample from a calculation goroutine to
// a display consumer.
type ProgressUpdate struct {
	// CalculatorIndex identifies which concurrent calculation produced the sample.
	CalculatorIndex int
	// Value is the completed fraction in [0.0, 1.0].
	Value float64
}
