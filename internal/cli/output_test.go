package cli

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigfact/internal/ui"
)

// withNoColorTheme runs fn under the colorless theme so assertions can match
// plain text.
func withNoColorTheme(t *testing.T, fn func()) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(prev)
	fn()
}

// TestFormatMantissaExponent pins the normalized base-2 rendering, with the
// mantissa in [1, 2).
func TestFormatMantissaExponent(t *testing.T) {
	withNoColorTheme(t, func() {
		testCases := []struct {
			value    int64
			expected string
		}{
			{1, "1.000000 * 2^0"},
			{2, "1.000000 * 2^1"},
			{3, "1.500000 * 2^1"},
			{1024, "1.000000 * 2^10"},
			{3628800, "1.730347 * 2^21"}, // 10!
		}
		for _, tc := range testCases {
			if got := FormatMantissaExponent(big.NewInt(tc.value)); got != tc.expected {
				t.Errorf("FormatMantissaExponent(%d) = %q, want %q", tc.value, got, tc.expected)
			}
		}
	})
}

// TestFormatQuietResult verifies the two quiet-mode renderings.
func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	v := big.NewInt(3628800)

	if got := FormatQuietResult(v, true); got != "3628800" {
		t.Errorf("verbose quiet result = %q", got)
	}
	if got := FormatQuietResult(v, false); !strings.Contains(got, "2^21") {
		t.Errorf("compact quiet result = %q, want a mantissa form", got)
	}
}

// TestDisplayResult verifies the default, details and show-value renderings.
func TestDisplayResult(t *testing.T) {
	withNoColorTheme(t, func() {
		v := big.NewInt(3628800)

		var out strings.Builder
		DisplayResult(v, 10, time.Millisecond, false, false, false, &out)
		s := out.String()
		if !strings.Contains(s, "binary size") {
			t.Errorf("missing binary size line: %q", s)
		}
		if !strings.Contains(s, "10! ≈ 1.730347 * 2^21") {
			t.Errorf("missing mantissa line: %q", s)
		}
		if strings.Contains(s, "Calculated value") {
			t.Errorf("value section shown without the flag: %q", s)
		}

		out.Reset()
		DisplayResult(v, 10, time.Millisecond, false, true, true, &out)
		s = out.String()
		if !strings.Contains(s, "Detailed result analysis") {
			t.Errorf("missing details section: %q", s)
		}
		if !strings.Contains(s, "10! = 3,628,800") {
			t.Errorf("missing value line: %q", s)
		}
	})
}

// TestDisplayResultTruncation verifies that long values are truncated with a
// verbose hint.
func TestDisplayResultTruncation(t *testing.T) {
	withNoColorTheme(t, func() {
		// A value with far more digits than TruncationLimit.
		v := new(big.Int).Exp(big.NewInt(10), big.NewInt(200), nil)

		var out strings.Builder
		DisplayResult(v, 120, time.Millisecond, false, false, true, &out)
		s := out.String()
		if !strings.Contains(s, "(truncated)") {
			t.Errorf("long value not truncated: %q", s)
		}
		if !strings.Contains(s, "--verbose") {
			t.Errorf("missing verbose hint: %q", s)
		}
	})
}

// TestWriteResultToFile verifies file output, header metadata included.
func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out", "result.txt")
	cfg := OutputConfig{OutputFile: path}

	err := WriteResultToFile(big.NewInt(120), 5, time.Second, "Windowed Parallel (Bounded Workers)", cfg)
	if err != nil {
		t.Fatalf("WriteResultToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "5! =\n120") {
		t.Errorf("missing result: %q", content)
	}
	if !strings.Contains(content, "# N: 5") || !strings.Contains(content, "# Strategy: Windowed") {
		t.Errorf("missing header metadata: %q", content)
	}
}

// TestWriteResultToFileNoPath verifies the no-op when no file is configured.
func TestWriteResultToFileNoPath(t *testing.T) {
	t.Parallel()
	if err := WriteResultToFile(big.NewInt(1), 1, 0, "x", OutputConfig{}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

// TestDisplayResultWithConfigQuiet verifies that quiet mode emits a single
// line.
func TestDisplayResultWithConfigQuiet(t *testing.T) {
	withNoColorTheme(t, func() {
		var out strings.Builder
		err := DisplayResultWithConfig(&out, big.NewInt(120), 5, time.Second, "seq", OutputConfig{Quiet: true, Verbose: true})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig: %v", err)
		}
		if got := strings.TrimSpace(out.String()); got != "120" {
			t.Errorf("quiet output = %q, want %q", got, "120")
		}
	})
}

// TestProgressBar verifies fill proportions and clamping.
func TestProgressBar(t *testing.T) {
	t.Parallel()
	if got := progressBar(0.5, 10); strings.Count(got, "█") != 5 {
		t.Errorf("progressBar(0.5, 10) = %q", got)
	}
	if got := progressBar(-1, 4); strings.Count(got, "█") != 0 {
		t.Errorf("progressBar(-1, 4) = %q", got)
	}
	if got := progressBar(2, 4); strings.Count(got, "░") != 0 {
		t.Errorf("progressBar(2, 4) = %q", got)
	}
}

// TestProgressStateAverage verifies the consolidated progress computation.
func TestProgressStateAverage(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	ps.Update(0, 0.25)
	ps.Update(1, 0.75)
	if got := ps.CalculateAverage(); got != 0.5 {
		t.Errorf("average = %f, want 0.5", got)
	}

	// Out-of-range indices are ignored.
	ps.Update(5, 1.0)
	if got := ps.CalculateAverage(); got != 0.5 {
		t.Errorf("average after bad index = %f, want 0.5", got)
	}

	if got := NewProgressState(0).CalculateAverage(); got != 0 {
		t.Errorf("empty state average = %f, want 0", got)
	}
}

// TestFormatETA pins the adaptive ETA renderings.
func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		eta      time.Duration
		expected string
	}{
		{0, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{5 * time.Second, "5s"},
		{150 * time.Second, "2m30s"},
		{2 * time.Minute, "2m"},
		{75 * time.Minute, "1h15m"},
		{2 * time.Hour, "2h"},
	}
	for _, tc := range testCases {
		if got := FormatETA(tc.eta); got != tc.expected {
			t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
		}
	}
}
