package config

import "runtime"

// Worker count resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (BIGFACT_WORKERS)
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveDefaults fills in hardware-dependent settings when they are
// left at their zero default. User-specified values via command-line flags
// or environment variables are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers provides a heuristic worker count based on the CPU
// count. Window multiplication is CPU-bound, so there is little to gain from
// oversubscribing cores, and a small machine benefits from leaving one core
// for the folding loop.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 8:
		return numCPU - 1 // Leave a core for the fold loop and sweeper
	default:
		return numCPU
	}
}
