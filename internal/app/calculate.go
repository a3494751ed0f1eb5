package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/bigfact/internal/cli"
	apperrors "github.com/agbru/bigfact/internal/errors"
	"github.com/agbru/bigfact/internal/logging"
	"github.com/agbru/bigfact/internal/metrics"
	"github.com/agbru/bigfact/internal/orchestration"
	"github.com/agbru/bigfact/internal/sysmon"
	"github.com/agbru/bigfact/internal/ui"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Get calculators to run
	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	a.Logger.Debug("starting calculation",
		logging.Uint64("n", a.Config.N),
		logging.String("algo", a.Config.Algo),
		logging.Int("workers", a.Config.Workers),
		logging.Uint64("window_size", a.Config.WindowSize),
		logging.Dur("window_timeout", a.Config.WindowTimeout))

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	memCollector := metrics.NewMemoryCollector()
	memBefore := memCollector.Snapshot()

	// Execute calculations
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, a.Config.ToCalculationOptions(), progressReporter, progressOut)

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}

	exitCode := a.analyzeResultsWithOutput(results, outputCfg, out)

	if a.Config.Details && !a.Config.Quiet {
		delta := memCollector.Snapshot().Delta(memBefore)
		cli.DisplayMemoryStats(delta.HeapAlloc, delta.TotalAlloc, delta.NumGC, delta.PauseTotalNs, out)
		sys := sysmon.Sample()
		fmt.Fprintf(out, "\nSystem Stats:\n")
		fmt.Fprintf(out, "  CPU usage:       %.1f%%\n", sys.CPUPercent)
		fmt.Fprintf(out, "  Memory usage:    %.1f%%\n", sys.MemPercent)
		fmt.Fprintf(out, "  Load (1m):       %.2f\n", sys.Load1)
	}

	return exitCode
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result, outputCfg.Verbose)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.N, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
