package factorial

import "time"

// MaxFactUint64 = 20 because 20! is the largest factorial that fits in a
// uint64, as 21! exceeds 2^64. Values up to this bound are computed with
// native integer multiplication instead of the full reduction machinery.
const (
	MaxFactUint64 = 20 // Justified above
)

// Default tuning values for the windowed reduction. They can be overridden
// per calculation through Options, or globally via CLI flags and BIGFACT_*
// environment variables.
const (
	// DefaultWindowSize is the element count of one unit of multiplication
	// work. A fixed window bounds per-task latency variance and keeps the
	// memory held by any single worker independent of n.
	DefaultWindowSize uint64 = 10_000

	// DefaultWindowTimeout is the deadline after which an in-flight window is
	// considered stalled and a replacement worker is dispatched. Windows hold
	// at most DefaultWindowSize multiplications, which completes well inside
	// this budget on any supported hardware.
	DefaultWindowTimeout = 30 * time.Second

	// DefaultMaxAttempts caps the dispatch attempts per window (the initial
	// dispatch plus replacements). Exceeding it fails the whole reduction
	// instead of hanging on a window that will never complete.
	DefaultMaxAttempts = 3
)
