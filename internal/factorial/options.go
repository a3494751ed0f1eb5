package factorial

import (
	"runtime"
	"time"
)

// Options configures a factorial calculation.
type Options struct {
	// Workers caps the number of windows in flight at any instant. This is
	// the sole backpressure mechanism of the windowed reduction: dispatch
	// stops once the bound is reached, regardless of how large n is.
	// If 0, the number of logical processors is used.
	Workers int
	// WindowSize is the element count of each multiplication window.
	// If 0, DefaultWindowSize is used.
	WindowSize uint64
	// WindowTimeout is the per-window deadline before a replacement worker is
	// dispatched for a stalled window. If 0, DefaultWindowTimeout is used;
	// a negative value disables re-dispatch entirely.
	WindowTimeout time.Duration
	// MaxAttempts caps dispatch attempts per window, counting the initial
	// dispatch. If 0, DefaultMaxAttempts is used.
	MaxAttempts int
}

// normalizeOptions returns a copy of opts with default values filled in for
// zero values. This keeps tuning handling consistent across the sequential
// and windowed implementations.
func normalizeOptions(opts Options) Options {
	normalized := opts
	if normalized.Workers <= 0 {
		normalized.Workers = runtime.GOMAXPROCS(0)
	}
	if normalized.WindowSize == 0 {
		normalized.WindowSize = DefaultWindowSize
	}
	if normalized.WindowTimeout == 0 {
		normalized.WindowTimeout = DefaultWindowTimeout
	}
	if normalized.MaxAttempts <= 0 {
		normalized.MaxAttempts = DefaultMaxAttempts
	}
	return normalized
}
