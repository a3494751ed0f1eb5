// Package config provides the configuration management for the bigfact
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/bigfact/internal/errors"
	"github.com/agbru/bigfact/internal/factorial"
)

const (
	// EnvPrefix is the prefix for all environment variables used by bigfact.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "BIGFACT_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultN is the default number whose factorial to calculate.
	DefaultN uint64 = 100_000
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultAlgo is the default strategy selection.
	DefaultAlgo = "windowed"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the target number to concurrency tuning parameters.
type AppConfig struct {
	// N is the number whose factorial is to be calculated.
	N uint64
	// Verbose, if true, instructs the application to display the full
	// calculated number rather than the mantissa/exponent form.
	Verbose bool
	// Details, if true, provides a detailed report including performance metrics.
	Details bool
	// Timeout sets the maximum duration for the whole calculation.
	Timeout time.Duration
	// Algo specifies the strategy to use ("all", "sequential", "windowed", ...).
	Algo string
	// Workers caps the number of multiplication windows in flight at once.
	// If 0, an adaptive default based on the CPU count is applied.
	Workers int
	// WindowSize is the element count of each multiplication window.
	WindowSize uint64
	// WindowTimeout is the per-window deadline before a stalled window is
	// re-dispatched to a replacement worker.
	WindowTimeout time.Duration
	// MaxAttempts caps dispatch attempts per window, counting the initial one.
	MaxAttempts int
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress bars, banners, and informational messages.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ShowValue, if true, displays the calculated value section.
	// Set with -c/--calculate.
	ShowValue bool
}

// ToCalculationOptions converts the application configuration into
// factorial.Options for use by the calculators.
func (c AppConfig) ToCalculationOptions() factorial.Options {
	return factorial.Options{
		Workers:       c.Workers,
		WindowSize:    c.WindowSize,
		WindowTimeout: c.WindowTimeout,
		MaxAttempts:   c.MaxAttempts,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen strategy is registered.
//
// Parameters:
//   - availableAlgos: A slice of strings listing the valid strategy names
//     (e.g., ["sequential", "windowed"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	if c.WindowSize == 0 {
		return apperrors.NewConfigError("window size must be at least 1")
	}
	if c.MaxAttempts < 1 {
		return apperrors.NewConfigError("max attempts per window must be at least 1: %d", c.MaxAttempts)
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != "all" && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized strategy: '%s'. Valid strategies are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, environment variables are
// applied for flags not explicitly set, and the resulting configuration is
// validated.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableAlgos: A slice of valid strategy names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Strategy to use: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", DefaultN, "Number whose factorial to calculate.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result (can be very long).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Details, "d", false, "Display performance details and result metadata.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&config.Workers, "workers", 0, "Maximum windows in flight at once (0 = number of logical CPUs).")
	fs.Uint64Var(&config.WindowSize, "window-size", factorial.DefaultWindowSize, "Element count of each multiplication window.")
	fs.DurationVar(&config.WindowTimeout, "window-timeout", factorial.DefaultWindowTimeout, "Deadline before a stalled window is re-dispatched.")
	fs.IntVar(&config.MaxAttempts, "max-attempts", factorial.DefaultMaxAttempts, "Dispatch attempts per window before giving up.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ShowValue, "calculate", false, "Display the calculated value (disabled by default).")
	fs.BoolVar(&config.ShowValue, "c", false, "Display the calculated value (shorthand).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
