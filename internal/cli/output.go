// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatMantissaExponent].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigfact/internal/format"
	"github.com/agbru/bigfact/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full result value.
	Verbose bool
	// ShowValue enables the calculated value display when true (disabled by default).
	ShowValue bool
}

// FormatMantissaExponent renders a positive integer as a normalized base-2
// approximation "m * 2^e" with the mantissa in [1, 2). This compact form is
// the default way a factorial is reported, since the full decimal expansion
// of a large n! runs to hundreds of thousands of digits.
//
// Parameters:
//   - result: The value to approximate. Must be positive.
//
// Returns:
//   - string: A string like "2.425825 * 2^8529".
func FormatMantissaExponent(result *big.Int) string {
	f := new(big.Float).SetInt(result)
	var mant big.Float
	exp := f.MantExp(&mant)
	// MantExp normalizes to [0.5, 1); shift once for the conventional [1, 2).
	m, _ := new(big.Float).Add(&mant, &mant).Float64()
	return fmt.Sprintf("%.6f * 2^%d", m, exp-1)
}

// WriteResultToFile writes a calculation result to a file.
//
// Parameters:
//   - result: The calculated factorial.
//   - n: The factorial argument.
//   - duration: The calculation duration.
//   - algo: The strategy name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result *big.Int, n uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Factorial Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Strategy: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", n)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(result.String()))
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "%d! =\n%s\n", n, result.String())

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line result suitable for scripting. The full decimal
// expansion is only produced when verbose is set; otherwise the compact
// mantissa form keeps pipelines fast even for huge n.
//
// Parameters:
//   - result: The calculated factorial.
//   - verbose: If true, returns the full decimal expansion.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(result *big.Int, verbose bool) string {
	if verbose {
		return result.String()
	}
	return FormatMantissaExponent(result)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - result: The calculated factorial.
//   - verbose: If true, prints the full decimal expansion.
func DisplayQuietResult(out io.Writer, result *big.Int, verbose bool) {
	fmt.Fprintln(out, FormatQuietResult(result, verbose))
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - result: The calculated factorial.
//   - n: The factorial argument.
//   - duration: The calculation duration.
//   - algo: The strategy name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n uint64, duration time.Duration, algo string, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, result, config.Verbose)
	} else {
		// Use standard display
		DisplayResult(result, n, duration, config.Verbose, true, config.ShowValue, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(result, n, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}

// DisplayResult formats and prints the final calculation result.
// It provides different levels of detail based on the verbose and details
// flags, including metadata like binary size, number of digits, and
// scientific notation. The default rendering is the compact mantissa
// approximation; the full decimal value is shown with verbose, truncated to
// its edges otherwise.
//
// Parameters:
//   - result: The calculation result.
//   - n: The factorial argument.
//   - duration: The time taken for the calculation.
//   - verbose: If true, prints the full number regardless of size.
//   - details: If true, prints detailed execution metrics.
//   - showValue: If true, displays the calculated value section (disabled by default).
//   - out: The io.Writer for the output.
func DisplayResult(result *big.Int, n uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	bitLen := result.BitLen()
	fmt.Fprintf(out, "Result binary size: %s%s%s bits.\n", ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", bitLen)), ColorReset())
	fmt.Fprintf(out, "%d! ≈ %s%s%s\n", n, ColorGreen(), FormatMantissaExponent(result), ColorReset())

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ColorBold(), ColorReset())
		durationStr := FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Calculation time        : %s%s%s\n", ColorGreen(), durationStr, ColorReset())

		resultStr := result.String()
		numDigits := len(resultStr)
		fmt.Fprintf(out, "Number of digits      : %s%s%s\n", ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", numDigits)), ColorReset())

		if numDigits > 6 {
			f := new(big.Float).SetInt(result)
			fmt.Fprintf(out, "Scientific notation    : %s%.6e%s\n", ColorCyan(), f, ColorReset())
		}
	}

	// Skip calculated value display unless -c/--calculate flag is set
	if !showValue {
		return
	}

	resultStr := result.String()
	numDigits := len(resultStr)

	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ColorBold(), ColorReset())
	if verbose {
		fmt.Fprintf(out, "%s%d%s! =\n%s%s%s\n", ColorMagenta(), n, ColorReset(), ColorGreen(), format.FormatNumberString(resultStr), ColorReset())
	} else if numDigits > TruncationLimit {
		fmt.Fprintf(out, "%s%d%s! (truncated) = %s%s...%s%s\n",
			ColorMagenta(), n, ColorReset(),
			ColorGreen(), resultStr[:DisplayEdges], resultStr[numDigits-DisplayEdges:], ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display the full value)\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
	} else {
		fmt.Fprintf(out, "%s%d%s! = %s%s%s\n", ColorMagenta(), n, ColorReset(), ColorGreen(), format.FormatNumberString(resultStr), ColorReset())
	}
}
