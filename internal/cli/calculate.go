package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigfact/internal/config"
	"github.com/agbru/bigfact/internal/factorial"
	"github.com/agbru/bigfact/internal/format"
	"github.com/agbru/bigfact/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the factorial argument, timeout, environment details, and the
// window tuning parameters.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %s%d!%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Window tuning: size=%s%s%s, workers=%s%d%s, per-window timeout=%s%s%s.\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", cfg.WindowSize)), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), cfg.WindowTimeout, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs comparison).
//
// Parameters:
//   - calculators: The slice of calculators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(calculators []factorial.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Parallel comparison of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s strategy",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
