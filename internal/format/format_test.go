package format

import (
	"testing"
	"time"
)

// TestFormatNumberString verifies thousand separator insertion.
func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234567", "-1,234,567"},
		{"-123", "-123"},
	}
	for _, tc := range testCases {
		if got := FormatNumberString(tc.input); got != tc.expected {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

// TestFormatExecutionDuration verifies the unit selection per magnitude.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{3 * time.Second, "3s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tc := range testCases {
		if got := FormatExecutionDuration(tc.d); got != tc.expected {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tc.d, got, tc.expected)
		}
	}
}

// TestFormatBytes verifies binary unit scaling.
func TestFormatBytes(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tc := range testCases {
		if got := FormatBytes(tc.bytes); got != tc.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.bytes, got, tc.expected)
		}
	}
}
